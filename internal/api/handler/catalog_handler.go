package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glowbook/salon-booking/internal/core/ports"
)

// CatalogHandler serves services and staff.
type CatalogHandler struct {
	service  ports.CatalogService
	business BusinessResolver
}

func NewCatalogHandler(service ports.CatalogService, business BusinessResolver) *CatalogHandler {
	return &CatalogHandler{service: service, business: business}
}

func (h *CatalogHandler) scope(c echo.Context) (string, error) {
	actor, err := ctxActor(c)
	if err != nil {
		return "", err
	}
	return h.business.resolve(c, actor)
}

// ListServices handles GET /api/services.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  query    string  false  "Business id"
// @Success      200         {array}  domain.Service
// @Router       /services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListServices(c.Request().Context(), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// GetService handles GET /api/services/:id.
//
// @Summary      Get a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Service id"
// @Param        businessId  query     string  false  "Business id"
// @Success      200         {object}  domain.Service
// @Failure      404         {object}  errorResponse
// @Router       /services/{id} [get]
func (h *CatalogHandler) GetService(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	s, err := h.service.GetService(c.Request().Context(), c.Param("id"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// ListServicesByStaff handles GET /api/services/staff/:staffId.
//
// @Summary      Services a staff member performs
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        staffId     path     string  true   "Staff id"
// @Param        businessId  query    string  false  "Business id"
// @Success      200         {array}  domain.Service
// @Failure      404         {object} errorResponse
// @Router       /services/staff/{staffId} [get]
func (h *CatalogHandler) ListServicesByStaff(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListServicesByStaff(c.Request().Context(), c.Param("staffId"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// CreateService handles POST /api/services.
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.Service
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /services [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	return h.saveService(c, "", http.StatusCreated)
}

// UpdateService handles PUT /api/services/:id.
//
// @Summary      Replace a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Service id"
// @Param        body  body      serviceRequest  true  "Service"
// @Success      200   {object}  domain.Service
// @Failure      404   {object}  errorResponse
// @Router       /services/{id} [put]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	if _, err := h.service.GetService(c.Request().Context(), c.Param("id"), businessID); err != nil {
		return err
	}
	return h.saveService(c, c.Param("id"), http.StatusOK)
}

func (h *CatalogHandler) saveService(c echo.Context, id string, status int) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	saved, err := h.service.SaveService(c.Request().Context(), toService(req, id, businessID))
	if err != nil {
		return err
	}
	return c.JSON(status, saved)
}

// DeleteService handles DELETE /api/services/:id.
//
// @Summary      Delete a service
// @Tags         services
// @Security     BearerAuth
// @Param        id  path  string  true  "Service id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteService(c.Request().Context(), c.Param("id"), businessID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListStaff handles GET /api/staff.
//
// @Summary      List staff
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  query    string  false  "Business id"
// @Success      200         {array}  domain.StaffMember
// @Router       /staff [get]
func (h *CatalogHandler) ListStaff(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListStaff(c.Request().Context(), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// GetStaff handles GET /api/staff/:id.
//
// @Summary      Get a staff member
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Staff id"
// @Param        businessId  query     string  false  "Business id"
// @Success      200         {object}  domain.StaffMember
// @Failure      404         {object}  errorResponse
// @Router       /staff/{id} [get]
func (h *CatalogHandler) GetStaff(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	m, err := h.service.GetStaff(c.Request().Context(), c.Param("id"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// ListStaffByService handles GET /api/staff/service/:serviceId.
//
// @Summary      Active staff offering a service
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        serviceId   path     string  true   "Service id"
// @Param        businessId  query    string  false  "Business id"
// @Success      200         {array}  domain.StaffMember
// @Failure      404         {object} errorResponse
// @Router       /staff/service/{serviceId} [get]
func (h *CatalogHandler) ListStaffByService(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListStaffByService(c.Request().Context(), c.Param("serviceId"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// CreateStaff handles POST /api/staff.
//
// @Summary      Create a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      staffRequest  true  "Staff member"
// @Success      201   {object}  domain.StaffMember
// @Failure      400   {object}  errorResponse
// @Router       /staff [post]
func (h *CatalogHandler) CreateStaff(c echo.Context) error {
	return h.saveStaff(c, "", http.StatusCreated)
}

// UpdateStaff handles PUT /api/staff/:id.
//
// @Summary      Replace a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Staff id"
// @Param        body  body      staffRequest  true  "Staff member"
// @Success      200   {object}  domain.StaffMember
// @Failure      404   {object}  errorResponse
// @Router       /staff/{id} [put]
func (h *CatalogHandler) UpdateStaff(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	if _, err := h.service.GetStaff(c.Request().Context(), c.Param("id"), businessID); err != nil {
		return err
	}
	return h.saveStaff(c, c.Param("id"), http.StatusOK)
}

func (h *CatalogHandler) saveStaff(c echo.Context, id string, status int) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	var req staffRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	saved, err := h.service.SaveStaff(c.Request().Context(), toStaffMember(req, id, businessID))
	if err != nil {
		return err
	}
	return c.JSON(status, saved)
}

// DeleteStaff handles DELETE /api/staff/:id.
//
// @Summary      Delete a staff member
// @Tags         staff
// @Security     BearerAuth
// @Param        id  path  string  true  "Staff id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /staff/{id} [delete]
func (h *CatalogHandler) DeleteStaff(c echo.Context) error {
	businessID, err := h.scope(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteStaff(c.Request().Context(), c.Param("id"), businessID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
