package portal

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/infrastructure/config"
)

// Options sets the staleness windows and the clock.
type Options struct {
	AppointmentsStale time.Duration
	CatalogStale      time.Duration
	UserStale         time.Duration
	Now               func() time.Time
}

func OptionsFrom(cfg *config.PortalConfig) Options {
	return Options{
		AppointmentsStale: cfg.AppointmentsStaleTime,
		CatalogStale:      cfg.CatalogStaleTime,
		UserStale:         cfg.UserStaleTime,
	}
}

// Portal is the full client state of one signed-in browser session.
type Portal struct {
	Auth         *AuthStore
	Appointments *AppointmentStore
	Detail       *AppointmentDetailStore
	Services     *ServiceStore
	Staff        *StaffStore
	Settings     *SettingsStore
	Guard        *Guard
}

// New wires the stores over apis. Logging out resets the API set and drops
// every appointment cache.
func New(apis *client.Set, storage Storage, notifier Notifier, opts Options, log zerolog.Logger) *Portal {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	auth := NewAuthStore(apis.Auth, storage, opts.UserStale, now, log.With().Str("store", "auth").Logger())
	appointments := NewAppointmentStore(apis.Appointments, notifier, opts.AppointmentsStale, now, log.With().Str("store", "appointments").Logger())
	detail := NewAppointmentDetailStore(apis.Appointments, apis.Staff, apis.Services, opts.AppointmentsStale, log.With().Str("store", "detail").Logger())

	appointments.OnChange(detail.Invalidate)
	if apis.Reset != nil {
		auth.OnLogout(apis.Reset)
	}
	auth.OnLogout(appointments.Reset)
	auth.OnLogout(detail.Reset)

	return &Portal{
		Auth:         auth,
		Appointments: appointments,
		Detail:       detail,
		Services:     NewServiceStore(apis.Services, opts.CatalogStale, now),
		Staff:        NewStaffStore(apis.Staff, opts.CatalogStale, now),
		Settings:     NewSettingsStore(apis.Settings, notifier),
		Guard:        NewGuard(auth),
	}
}
