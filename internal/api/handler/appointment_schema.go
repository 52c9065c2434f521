package handler

import "time"

type createAppointmentRequest struct {
	StaffID   string    `json:"staffId"   validate:"required"`
	ServiceID string    `json:"serviceId" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	Notes     string    `json:"notes"`
	// Only honoured for back-office callers booking on behalf of a customer.
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
}

type updateAppointmentRequest struct {
	StartTime *time.Time `json:"startTime"`
	Status    *string    `json:"status"  validate:"omitempty,oneof=scheduled rescheduled completed cancelled no-show"`
	Notes     *string    `json:"notes"`
	StaffID   *string    `json:"staffId" validate:"omitempty,min=1"`
}
