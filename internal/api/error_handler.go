package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<status text>", "message": "<detail>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: http.StatusText(code), Message: msg})
	}
}

type errorMapping struct {
	target error
	code   int
	msg    string // empty means err.Error()
}

var domainErrors = []errorMapping{
	{domain.ErrAppointmentNotFound, http.StatusNotFound, "appointment not found"},
	{domain.ErrServiceNotFound, http.StatusNotFound, "service not found"},
	{domain.ErrStaffNotFound, http.StatusNotFound, "staff member not found"},
	{domain.ErrCustomerNotFound, http.StatusNotFound, "customer not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrVersionConflict, http.StatusConflict, "appointment was modified concurrently, please retry"},
	{domain.ErrInvalidStatus, http.StatusUnprocessableEntity, ""},
	{domain.ErrStaffCannotPerform, http.StatusUnprocessableEntity, ""},
	{domain.ErrPasswordMismatch, http.StatusBadRequest, ""},
	{domain.ErrEmptyPatch, http.StatusBadRequest, ""},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			if m.msg == "" {
				return m.code, m.target.Error()
			}
			return m.code, m.msg
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
