package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service   ports.AppointmentService
	customers ports.CustomerService
	business  BusinessResolver
}

func NewAppointmentHandler(service ports.AppointmentService, customers ports.CustomerService, business BusinessResolver) *AppointmentHandler {
	return &AppointmentHandler{service: service, customers: customers, business: business}
}

// List handles GET /api/appointments.
//
// @Summary      List appointments
// @Description  Customers only ever receive their own appointments.
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  query     string  false  "Business id"
// @Param        customerId  query     string  false  "Filter by customer"
// @Param        staffId     query     string  false  "Filter by staff member"
// @Param        status      query     string  false  "Filter by status"
// @Param        from        query     string  false  "Start at or after (RFC 3339)"
// @Param        to          query     string  false  "Start before (RFC 3339)"
// @Success      200         {array}   domain.Appointment
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), actor, ports.AppointmentFilter{
		BusinessID: businessID,
		CustomerID: c.QueryParam("customerId"),
		StaffID:    c.QueryParam("staffId"),
		Status:     domain.AppointmentStatus(c.QueryParam("status")),
		From:       from,
		To:         to,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// Get handles GET /api/appointments/:id.
//
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Appointment id"
// @Param        businessId  query     string  false  "Business id"
// @Success      200         {object}  domain.Appointment
// @Failure      404         {object}  errorResponse
// @Router       /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}

	a, err := h.service.Get(c.Request().Context(), actor, c.Param("id"), businessID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /api/appointments.
//
// @Summary      Book an appointment
// @Description  The end time is derived from the service duration. Slot availability is not checked.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                    false  "Idempotency key to prevent duplicate bookings"
// @Param        businessId       query     string                    false  "Business id"
// @Param        body             body      createAppointmentRequest  true   "Booking"
// @Success      201              {object}  domain.Appointment
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := toCreateAppointmentInput(req, actor, businessID, c.Request().Header.Get("Idempotency-Key"))
	if in.CustomerName == "" {
		in.CustomerName = h.customerName(c, in.CustomerID, businessID)
	}

	a, err := h.service.Create(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update handles PATCH /api/appointments/:id.
//
// @Summary      Partially update an appointment
// @Description  Cancel with {"status":"cancelled"}; reschedule with a new startTime and status "rescheduled".
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string                    true   "Appointment id"
// @Param        businessId  query     string                    false  "Business id"
// @Param        body        body      updateAppointmentRequest  true   "Fields to change"
// @Success      200         {object}  domain.Appointment
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      409         {object}  errorResponse
// @Router       /appointments/{id} [patch]
func (h *AppointmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	businessID, err := h.business.resolve(c, actor)
	if err != nil {
		return err
	}

	var req updateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), businessID, toAppointmentPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// customerName looks up the display name for the booking; a miss leaves it empty.
func (h *AppointmentHandler) customerName(c echo.Context, customerID, businessID string) string {
	if h.customers == nil || customerID == "" {
		return ""
	}
	cust, err := h.customers.Get(c.Request().Context(), customerID, businessID)
	if err != nil {
		return ""
	}
	return cust.Name
}
