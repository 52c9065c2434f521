// @title                       Salon Booking API
// @version                     1.0
// @description                 Appointments, catalog, customers and settings for the salon booking portal.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowbook/salon-booking/internal/api"
	"github.com/glowbook/salon-booking/internal/core/ports"
	"github.com/glowbook/salon-booking/internal/core/service"
	"github.com/glowbook/salon-booking/internal/infrastructure/config"
	mongodb "github.com/glowbook/salon-booking/internal/infrastructure/db/mongo"
	redisdb "github.com/glowbook/salon-booking/internal/infrastructure/db/redis"
	"github.com/glowbook/salon-booking/internal/infrastructure/events"
	"github.com/glowbook/salon-booking/internal/infrastructure/http/handlers"
	"github.com/glowbook/salon-booking/internal/infrastructure/queue"
	"github.com/glowbook/salon-booking/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootLog := logger.Init(logger.OptionsFor(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"), "salon-api"))
	cfg := config.Load(bootLog)
	if cfg.JWTSecret == "" {
		bootLog.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	users := mongodb.NewAuthRepository(db)
	customers := mongodb.NewCustomerRepository(db)
	appointments := mongodb.NewAppointmentRepository(db)
	servicesRepo := mongodb.NewServiceRepository(db)
	staffRepo := mongodb.NewStaffRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, customers, appointments, servicesRepo, staffRepo); err != nil {
		bootLog.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
	}

	tokens := redisdb.NewTokenStore(rdb)
	idempotency := redisdb.NewIdempotencyStore(rdb)

	probes := []handlers.Dependency{
		handlers.MongoDependency(db),
		handlers.RedisDependency(rdb),
	}

	var sink ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger.Component("kafka"))
		defer kp.Close()
		sink = kp
		probes = append(probes, handlers.Dependency{Name: "kafka", Check: events.ReadyCheck(cfg.Kafka.Brokers)})
	} else {
		bootLog.Warn().Msg("KAFKA_BROKERS not set, appointment events are only logged")
		sink = events.NewLogPublisher(logger.Component("events"))
	}

	// Cancelled only after the HTTP server has stopped accepting requests.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, sink, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	authSvc := service.NewAuthService(users, customers, tokens, service.AuthOptions{
		JWTSecret:  cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, logger.Component("auth"))
	appointmentSvc := service.NewAppointmentService(appointments, servicesRepo, staffRepo, idempotency, dispatcher, logger.Component("appointments"))
	catalogSvc := service.NewCatalogService(servicesRepo, staffRepo, logger.Component("catalog"))
	customerSvc := service.NewCustomerService(customers)
	settingsSvc := service.NewSettingsService(settingsRepo)

	e := api.NewRouter(api.Deps{
		JWTSecret:       cfg.JWTSecret,
		DefaultBusiness: cfg.BusinessID,
		Auth:            authSvc,
		Appointments:    appointmentSvc,
		Catalog:         catalogSvc,
		Customers:       customerSvc,
		Settings:        settingsSvc,
		Revocations:     tokens,
		Probes:          probes,
		Logger:          logger.Component("http"),
	})

	go func() {
		bootLog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting salon booking API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			bootLog.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-ctx.Done()
	bootLog.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		bootLog.Error().Err(err).Msg("HTTP server shutdown error")
	}

	stopWorkers()
	dispatcher.Wait()
	bootLog.Info().Msg("Stopped")
}
