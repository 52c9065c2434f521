package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/glowbook/salon-booking/docs"
	"github.com/glowbook/salon-booking/internal/api/handler"
	"github.com/glowbook/salon-booking/internal/api/middleware"
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
	"github.com/glowbook/salon-booking/internal/infrastructure/http/handlers"
)

// Deps are the services and settings the HTTP surface is built from.
type Deps struct {
	JWTSecret       string
	DefaultBusiness string

	Auth         ports.AuthService
	Appointments ports.AppointmentService
	Catalog      ports.CatalogService
	Customers    ports.CustomerService
	Settings     ports.SettingsService
	Revocations  middleware.RevocationChecker

	// Readiness dependencies; empty means always ready.
	Probes []handlers.Dependency
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("salon"))

	// --- Operational endpoints (no auth required) ---
	handlers.Register(e, d.Probes...)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	business := handler.BusinessResolver{Fallback: d.DefaultBusiness}
	authHandler := handler.NewAuthHandler(d.Auth, business)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments, d.Customers, business)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, business)
	customerHandler := handler.NewCustomerHandler(d.Customers, business)
	settingsHandler := handler.NewSettingsHandler(d.Settings, business)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	authed := api.Group("", middleware.Auth(d.JWTSecret, d.Revocations))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/user/me", authHandler.Me)

	// --- Appointments ---
	authed.GET("/appointments", appointmentHandler.List)
	authed.GET("/appointments/:id", appointmentHandler.Get)
	authed.POST("/appointments", appointmentHandler.Create)
	authed.PATCH("/appointments/:id", appointmentHandler.Update)

	// --- Services ---
	authed.GET("/services", catalogHandler.ListServices)
	authed.GET("/services/:id", catalogHandler.GetService)
	authed.GET("/services/staff/:staffId", catalogHandler.ListServicesByStaff)
	authed.POST("/services", catalogHandler.CreateService, adminOnly)
	authed.PUT("/services/:id", catalogHandler.UpdateService, adminOnly)
	authed.DELETE("/services/:id", catalogHandler.DeleteService, adminOnly)

	// --- Staff ---
	authed.GET("/staff", catalogHandler.ListStaff)
	authed.GET("/staff/:id", catalogHandler.GetStaff)
	authed.GET("/staff/service/:serviceId", catalogHandler.ListStaffByService)
	authed.POST("/staff", catalogHandler.CreateStaff, adminOnly)
	authed.PUT("/staff/:id", catalogHandler.UpdateStaff, adminOnly)
	authed.DELETE("/staff/:id", catalogHandler.DeleteStaff, adminOnly)

	// --- Customers (admin screen) ---
	authed.GET("/customers", customerHandler.List, adminOnly)
	authed.POST("/customers", customerHandler.Create, adminOnly)
	authed.GET("/customers/:id", customerHandler.Get, adminOnly)
	authed.PUT("/customers/:id", customerHandler.Update, adminOnly)

	// --- Settings ---
	authed.GET("/settings", settingsHandler.Get)
	authed.PUT("/settings", settingsHandler.Save, adminOnly)

	return e
}
