package domain

import "time"

type AppointmentEventType string

const (
	EventAppointmentCreated     AppointmentEventType = "appointment.created"
	EventAppointmentUpdated     AppointmentEventType = "appointment.updated"
	EventAppointmentCancelled   AppointmentEventType = "appointment.cancelled"
	EventAppointmentRescheduled AppointmentEventType = "appointment.rescheduled"
)

// AppointmentEvent is emitted after every successful appointment write.
type AppointmentEvent struct {
	ID          string               `json:"id"`
	Type        AppointmentEventType `json:"type"`
	Appointment Appointment          `json:"appointment"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

// EventTypeFor picks the event type describing the given patch.
func EventTypeFor(p AppointmentPatch) AppointmentEventType {
	if p.Status != nil {
		switch *p.Status {
		case StatusCancelled:
			return EventAppointmentCancelled
		case StatusRescheduled:
			return EventAppointmentRescheduled
		}
	}
	return EventAppointmentUpdated
}
