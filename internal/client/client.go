// Package client defines the remote operations the portal performs against
// the booking API. Two implementations exist: package mock serves them from
// an in-memory backend, package live calls the HTTP API.
package client

import (
	"context"
	"time"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// TokenSource hands out the access token attached to authenticated calls.
type TokenSource interface {
	AccessToken() string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// NewAppointment is the booking payload. Customer fields are only honoured
// when a back-office user books on behalf of someone else.
type NewAppointment struct {
	StaffID      string    `json:"staffId"`
	ServiceID    string    `json:"serviceId"`
	StartTime    time.Time `json:"startTime"`
	Notes        string    `json:"notes,omitempty"`
	CustomerID   string    `json:"customerId,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
}

type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*domain.Tokens, error)
	Register(ctx context.Context, reg Registration) (*domain.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*domain.User, error)
}

type AppointmentAPI interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error)
	Get(ctx context.Context, id string) (*domain.Appointment, error)
	Create(ctx context.Context, in NewAppointment) (*domain.Appointment, error)
	Update(ctx context.Context, id string, patch domain.AppointmentPatch) (*domain.Appointment, error)
}

type ServiceAPI interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	ByStaff(ctx context.Context, staffID string) ([]domain.Service, error)
}

type StaffAPI interface {
	List(ctx context.Context) ([]domain.StaffMember, error)
	Get(ctx context.Context, id string) (*domain.StaffMember, error)
	ByService(ctx context.Context, serviceID string) ([]domain.StaffMember, error)
}

type SettingsAPI interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Save(ctx context.Context, s domain.BusinessSettings) (*domain.BusinessSettings, error)
}

// Set is the group of APIs the portal runs against, chosen once at startup.
type Set struct {
	Auth         AuthAPI
	Appointments AppointmentAPI
	Services     ServiceAPI
	Staff        StaffAPI
	Settings     SettingsAPI

	// Reset clears session-scoped simulated state. No-op for live APIs.
	Reset func()
}
