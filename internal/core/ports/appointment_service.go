package ports

import (
	"context"
	"time"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// CreateAppointmentInput carries all data needed to book an appointment.
type CreateAppointmentInput struct {
	BusinessID     string
	CustomerID     string
	CustomerName   string
	StaffID        string
	ServiceID      string
	StartTime      time.Time
	Notes          string
	IdempotencyKey string
}

// AppointmentService defines use-case operations for appointments.
type AppointmentService interface {
	List(ctx context.Context, actor domain.Actor, filter AppointmentFilter) ([]domain.Appointment, error)
	Get(ctx context.Context, actor domain.Actor, id, businessID string) (*domain.Appointment, error)
	Create(ctx context.Context, actor domain.Actor, input CreateAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, actor domain.Actor, id, businessID string, patch domain.AppointmentPatch) (*domain.Appointment, error)
}
