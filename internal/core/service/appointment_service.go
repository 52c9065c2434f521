package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/api/metrics"
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

// maxUpdateAttempts bounds the read-apply-write loop on version conflicts.
const maxUpdateAttempts = 3

type AppointmentService struct {
	repo        ports.AppointmentRepository
	services    ports.ServiceRepository
	staff       ports.StaffRepository
	idempotency ports.IdempotencyStore
	events      ports.EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	services ports.ServiceRepository,
	staff ports.StaffRepository,
	idempotency ports.IdempotencyStore,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		services:    services,
		staff:       staff,
		idempotency: idempotency,
		events:      events,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns appointments ordered by start instant. Customers only ever
// see their own appointments regardless of the requested customer id.
func (s *AppointmentService) List(ctx context.Context, actor domain.Actor, filter ports.AppointmentFilter) ([]domain.Appointment, error) {
	if actor.Role == domain.RoleCustomer {
		if filter.CustomerID != "" && filter.CustomerID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		filter.CustomerID = actor.UserID
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	domain.SortByStart(list)
	return list, nil
}

func (s *AppointmentService) Get(ctx context.Context, actor domain.Actor, id, businessID string) (*domain.Appointment, error) {
	a, err := s.repo.FindByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCustomer(a.CustomerID) {
		// Do not reveal that the appointment exists.
		return nil, domain.ErrAppointmentNotFound
	}
	return a, nil
}

// Create books an appointment. The end instant is derived from the service
// duration; slot availability is not checked.
func (s *AppointmentService) Create(ctx context.Context, actor domain.Actor, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	if actor.Role == domain.RoleCustomer {
		in.CustomerID = actor.UserID
	}
	if in.CustomerID == "" {
		return nil, domain.ErrCustomerNotFound
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		id, ok, err := s.idempotency.Lookup(ctx, in.BusinessID, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if ok {
			existing, err := s.repo.FindByID(ctx, id, in.BusinessID)
			if err == nil {
				metrics.IdempotencyTotal.WithLabelValues("hit").Inc()
				s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("appointment_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	if in.IdempotencyKey != "" {
		metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
	}

	svc, err := s.services.FindByID(ctx, in.ServiceID, in.BusinessID)
	if err != nil {
		return nil, err
	}
	member, err := s.staff.FindByID(ctx, in.StaffID, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if !member.CanPerform(svc.ID) {
		return nil, domain.ErrStaffCannotPerform
	}

	now := s.now()
	start := in.StartTime.UTC()
	a := &domain.Appointment{
		ID:           uuid.NewString(),
		StaffID:      member.ID,
		Staff:        member.Summary(),
		ServiceID:    svc.ID,
		Service:      svc.Summary(),
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		StartTime:    start,
		EndTime:      domain.EndFor(start, svc.DurationMinutes),
		Status:       domain.StatusScheduled,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		BusinessID:   in.BusinessID,
		Version:      1,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, in.BusinessID, in.IdempotencyKey, a.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	metrics.AppointmentsCreatedTotal.WithLabelValues(a.ServiceID).Inc()
	s.publish(ctx, domain.EventAppointmentCreated, *a)
	s.logger.Info().
		Str("appointment_id", a.ID).
		Str("customer_id", a.CustomerID).
		Str("service_id", a.ServiceID).
		Msg("appointment created")

	return a, nil
}

// Update applies a partial update using optimistic concurrency. A conflicting
// concurrent write causes the patch to be re-applied on the fresh record.
func (s *AppointmentService) Update(ctx context.Context, actor domain.Actor, id, businessID string, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, err := s.Get(ctx, actor, id, businessID)
		if err != nil {
			return nil, err
		}

		next := current.Apply(patch, s.now())
		if patch.StaffID != nil && *patch.StaffID != current.StaffID {
			member, err := s.staff.FindByID(ctx, *patch.StaffID, businessID)
			if err != nil {
				return nil, err
			}
			if !member.CanPerform(current.ServiceID) {
				return nil, domain.ErrStaffCannotPerform
			}
			next.Staff = member.Summary()
		}
		next.Version = current.Version + 1

		err = s.repo.Replace(ctx, &next, current.Version)
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.VersionConflictsTotal.Inc()
			s.logger.Debug().Str("appointment_id", id).Int("attempt", attempt).Msg("version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update appointment: %w", err)
		}

		typ := domain.EventTypeFor(patch)
		metrics.AppointmentsUpdatedTotal.WithLabelValues(string(typ)).Inc()
		s.publish(ctx, typ, next)
		s.logger.Info().Str("appointment_id", id).Str("status", string(next.Status)).Msg("appointment updated")
		return &next, nil
	}
	return nil, domain.ErrVersionConflict
}

func (s *AppointmentService) publish(ctx context.Context, typ domain.AppointmentEventType, a domain.Appointment) {
	if s.events == nil {
		return
	}
	ev := domain.AppointmentEvent{
		ID:          uuid.NewString(),
		Type:        typ,
		Appointment: a,
		OccurredAt:  s.now(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", a.ID).Str("event", string(typ)).Msg("failed to publish event")
	}
}
