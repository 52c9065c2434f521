package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// LogPublisher records events in the application log. It is used when no
// broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev domain.AppointmentEvent) error {
	p.log.Info().
		Str("event_id", ev.ID).
		Str("event", string(ev.Type)).
		Str("appointment_id", ev.Appointment.ID).
		Str("status", string(ev.Appointment.Status)).
		Time("occurred_at", ev.OccurredAt).
		Msg("appointment event")
	return nil
}
