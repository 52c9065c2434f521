package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glowbook/salon-booking/internal/core/ports"
)

type SettingsHandler struct {
	service  ports.SettingsService
	business BusinessResolver
}

func NewSettingsHandler(service ports.SettingsService, business BusinessResolver) *SettingsHandler {
	return &SettingsHandler{service: service, business: business}
}

// Get handles GET /api/settings.
//
// @Summary      Business settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  query     string  false  "Business id"
// @Success      200         {object}  domain.BusinessSettings
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	s, err := h.service.Get(c.Request().Context(), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Save handles PUT /api/settings.
//
// @Summary      Save business settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  domain.BusinessSettings
// @Failure      400   {object}  errorResponse
// @Router       /settings [put]
func (h *SettingsHandler) Save(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	var req settingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	saved, err := h.service.Save(c.Request().Context(), toSettings(req, businessID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}
