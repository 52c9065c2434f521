package domain

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrForbidden           = errors.New("access forbidden")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrVersionConflict     = errors.New("appointment was modified concurrently")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrStaffCannotPerform  = errors.New("staff member does not perform this service")
	ErrEmptyPatch          = errors.New("update contains no fields")
)
