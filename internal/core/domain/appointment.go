package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no-show"
)

// Valid reports whether s is a known status. Any known status may follow any
// other one; there is no transition table.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// StaffSummary is the staff snapshot embedded in an appointment at booking time.
type StaffSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// ServiceSummary is the service snapshot embedded in an appointment at booking time.
type ServiceSummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration"`
}

// Appointment is the canonical booking record shared by the customer and
// admin sides. Snapshots in Staff and Service may drift from the catalog.
type Appointment struct {
	ID           string            `json:"id"`
	StaffID      string            `json:"staffId"`
	Staff        StaffSummary      `json:"staff"`
	ServiceID    string            `json:"serviceId"`
	Service      ServiceSummary    `json:"service"`
	CustomerID   string            `json:"customerId"`
	CustomerName string            `json:"customerName"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      time.Time         `json:"endTime"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	BusinessID   string            `json:"businessId"`
	Version      int64             `json:"version"`
}

// AppointmentPatch is a partial update. Nil fields are left untouched.
type AppointmentPatch struct {
	StartTime *time.Time         `json:"startTime,omitempty"`
	Status    *AppointmentStatus `json:"status,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	StaffID   *string            `json:"staffId,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p AppointmentPatch) IsEmpty() bool {
	return p.StartTime == nil && p.Status == nil && p.Notes == nil && p.StaffID == nil
}

// CancelPatch is the status-only update used to cancel.
func CancelPatch() AppointmentPatch {
	status := StatusCancelled
	return AppointmentPatch{Status: &status}
}

// ReschedulePatch moves the start instant and marks the appointment rescheduled.
// The end instant is not recomputed.
func ReschedulePatch(start time.Time) AppointmentPatch {
	status := StatusRescheduled
	return AppointmentPatch{StartTime: &start, Status: &status}
}

// EndFor returns the end instant of an appointment starting at start for a
// service lasting durationMinutes.
func EndFor(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// Apply returns a copy of a with the patch applied and UpdatedAt set to now.
func (a Appointment) Apply(p AppointmentPatch, now time.Time) Appointment {
	out := a
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.StaffID != nil {
		out.StaffID = *p.StaffID
	}
	out.UpdatedAt = now
	return out
}

// Cancel is Apply(CancelPatch()).
func (a Appointment) Cancel(now time.Time) Appointment {
	return a.Apply(CancelPatch(), now)
}

// Reschedule is Apply(ReschedulePatch(start)).
func (a Appointment) Reschedule(start, now time.Time) Appointment {
	return a.Apply(ReschedulePatch(start), now)
}

// Partition splits list relative to now. Upcoming holds appointments starting
// strictly after now in ascending order; past holds the rest in descending
// order. The input slice is not modified.
func Partition(list []Appointment, now time.Time) (upcoming, past []Appointment) {
	upcoming = make([]Appointment, 0, len(list))
	past = make([]Appointment, 0, len(list))
	for _, a := range list {
		if a.StartTime.After(now) {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].StartTime.After(past[j].StartTime)
	})
	return upcoming, past
}

// SortByStart orders list ascending by start instant in place.
func SortByStart(list []Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.Before(list[j].StartTime)
	})
}
