// Package mock serves the portal APIs from memory with artificial latency.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

const DefaultLatency = 300 * time.Millisecond

// Options configures a Backend.
type Options struct {
	Latency    time.Duration
	BusinessID string
	// Tokens resolves the current session for Me, Logout and Create.
	Tokens client.TokenSource
	Now    func() time.Time
}

// Backend is the in-memory stand-in for the booking API. Catalog data is
// seeded once; appointments are generated per customer on first read and
// live until Reset.
type Backend struct {
	mu sync.Mutex

	latency    time.Duration
	businessID string
	tokens     client.TokenSource
	now        func() time.Time

	services []domain.Service
	staff    []domain.StaffMember
	users    map[string]*account // by email
	sessions map[string]string   // access token -> user id
	settings domain.BusinessSettings

	appointments map[string][]domain.Appointment // by customer id
	calls        map[string]int
}

func NewBackend(opts Options) *Backend {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.BusinessID == "" {
		opts.BusinessID = "default"
	}
	b := &Backend{
		latency:      opts.Latency,
		businessID:   opts.BusinessID,
		tokens:       opts.Tokens,
		now:          opts.Now,
		services:     seedServices(opts.BusinessID),
		staff:        seedStaff(opts.BusinessID),
		users:        seedUsers(opts.BusinessID),
		sessions:     map[string]string{},
		settings:     domain.DefaultSettings(opts.BusinessID),
		appointments: map[string][]domain.Appointment{},
		calls:        map[string]int{},
	}
	return b
}

// Set exposes the backend through the client interfaces.
func (b *Backend) Set() *client.Set {
	return &client.Set{
		Auth:         authAPI{b},
		Appointments: appointmentAPI{b},
		Services:     serviceAPI{b},
		Staff:        staffAPI{b},
		Settings:     settingsAPI{b},
		Reset:        b.Reset,
	}
}

func (b *Backend) AuthAPI() client.AuthAPI               { return authAPI{b} }
func (b *Backend) AppointmentAPI() client.AppointmentAPI { return appointmentAPI{b} }
func (b *Backend) ServiceAPI() client.ServiceAPI         { return serviceAPI{b} }
func (b *Backend) StaffAPI() client.StaffAPI             { return staffAPI{b} }
func (b *Backend) SettingsAPI() client.SettingsAPI       { return settingsAPI{b} }

// Reset drops the simulated appointment store and every session. Called on logout.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appointments = map[string][]domain.Appointment{}
	b.sessions = map[string]string{}
}

// Calls returns how many times op was invoked, e.g. "appointments.list".
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// simulate counts the call and waits out the configured latency.
func (b *Backend) simulate(ctx context.Context, op string) error {
	b.mu.Lock()
	b.calls[op]++
	b.mu.Unlock()

	if b.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(b.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sessionUser returns the account behind the current access token. Callers hold b.mu.
func (b *Backend) sessionUser() (*account, bool) {
	if b.tokens == nil {
		return nil, false
	}
	id, ok := b.sessions[b.tokens.AccessToken()]
	if !ok {
		return nil, false
	}
	for _, acc := range b.users {
		if acc.user.ID == id {
			return acc, true
		}
	}
	return nil, false
}
