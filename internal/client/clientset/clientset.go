// Package clientset picks the mock or live implementation of each portal API
// once, at startup.
package clientset

import (
	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/client/live"
	"github.com/glowbook/salon-booking/internal/client/mock"
	"github.com/glowbook/salon-booking/internal/infrastructure/config"
)

// New builds the API set described by cfg. Mock resources share one
// backend, whose Reset becomes the set's Reset.
func New(cfg *config.PortalConfig, tokens client.TokenSource, log zerolog.Logger) *client.Set {
	var backend *mock.Backend
	mocked := func() *mock.Backend {
		if backend == nil {
			backend = mock.NewBackend(mock.Options{
				Latency:    cfg.MockLatency,
				BusinessID: cfg.BusinessID,
				Tokens:     tokens,
			})
		}
		return backend
	}
	remote := live.New(live.Options{
		BaseURL:    cfg.APIURL,
		BusinessID: cfg.BusinessID,
		Tokens:     tokens,
		Timeout:    cfg.RequestTimeout,
		Logger:     log,
	})

	set := &client.Set{
		Auth:         remote.AuthAPI(),
		Appointments: remote.AppointmentAPI(),
		Services:     remote.ServiceAPI(),
		Staff:        remote.StaffAPI(),
		Settings:     remote.SettingsAPI(),
		Reset:        func() {},
	}
	if cfg.MockAuth {
		set.Auth = mocked().AuthAPI()
	}
	if cfg.MockAppointments {
		set.Appointments = mocked().AppointmentAPI()
	}
	if cfg.MockServices {
		set.Services = mocked().ServiceAPI()
	}
	if cfg.MockStaff {
		set.Staff = mocked().StaffAPI()
	}
	if cfg.MockSettings {
		set.Settings = mocked().SettingsAPI()
	}
	if backend != nil {
		set.Reset = backend.Reset
	}

	log.Info().
		Bool("mock_auth", cfg.MockAuth).
		Bool("mock_appointments", cfg.MockAppointments).
		Bool("mock_services", cfg.MockServices).
		Bool("mock_staff", cfg.MockStaff).
		Bool("mock_settings", cfg.MockSettings).
		Str("api_url", cfg.APIURL).
		Msg("portal client configured")
	return set
}
