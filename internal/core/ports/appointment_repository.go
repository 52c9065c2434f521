package ports

import (
	"context"
	"time"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// AppointmentFilter carries the query parameters for listing appointments.
// Empty fields do not filter.
type AppointmentFilter struct {
	BusinessID string
	CustomerID string
	StaffID    string
	Status     domain.AppointmentStatus
	From       time.Time // start >= From
	To         time.Time // start < To
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id, businessID string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	// Replace writes a only if the stored version equals expectedVersion and
	// bumps the version. It returns domain.ErrVersionConflict otherwise.
	Replace(ctx context.Context, a *domain.Appointment, expectedVersion int64) error
}

// IdempotencyStore remembers which appointment a creation key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, businessID, key string) (string, bool, error)
	Remember(ctx context.Context, businessID, key, appointmentID string) error
}

// EventPublisher hands appointment events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
}
