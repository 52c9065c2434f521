package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glowbook/salon-booking/internal/core/ports"
)

// CustomerHandler backs the admin customer screen.
type CustomerHandler struct {
	service  ports.CustomerService
	business BusinessResolver
}

func NewCustomerHandler(service ports.CustomerService, business BusinessResolver) *CustomerHandler {
	return &CustomerHandler{service: service, business: business}
}

// List handles GET /api/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Customer
// @Failure      403  {object}  errorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// Get handles GET /api/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	cust, err := h.service.Get(c.Request().Context(), c.Param("id"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cust)
}

// Create handles POST /api/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Customer"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	return h.save(c, "", http.StatusCreated)
}

// Update handles PUT /api/customers/:id. Setting status toggles the account.
//
// @Summary      Replace a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer"
// @Success      200   {object}  domain.Customer
// @Failure      404   {object}  errorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	return h.save(c, c.Param("id"), http.StatusOK)
}

func (h *CustomerHandler) save(c echo.Context, id string, status int) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	saved, err := h.service.Save(c.Request().Context(), toCustomer(req, id, businessID))
	if err != nil {
		return err
	}
	return c.JSON(status, saved)
}
