package portal

import (
	"context"
	"sync"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

// SettingsStore holds the business profile edited on the admin settings page.
type SettingsStore struct {
	api      client.SettingsAPI
	notifier Notifier

	mu      sync.Mutex
	current *domain.BusinessSettings
	saving  bool
	lastErr error
}

func NewSettingsStore(api client.SettingsAPI, notifier Notifier) *SettingsStore {
	return &SettingsStore{api: api, notifier: notifier}
}

// Load returns the held settings, fetching them the first time.
func (s *SettingsStore) Load(ctx context.Context) (*domain.BusinessSettings, error) {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur != nil {
		out := *cur
		return &out, nil
	}

	got, err := withRetry(ctx, s.api.Get)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Lock()
	s.current = got
	s.lastErr = nil
	s.mu.Unlock()
	out := *got
	return &out, nil
}

// Save stores in through the API and keeps the saved copy.
func (s *SettingsStore) Save(ctx context.Context, in domain.BusinessSettings) (*domain.BusinessSettings, error) {
	s.mu.Lock()
	s.saving = true
	s.mu.Unlock()

	saved, err := s.api.Save(ctx, in)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.notifier.Error("Failed to save settings: " + err.Error())
		return nil, err
	}
	s.current = saved
	s.lastErr = nil
	s.mu.Unlock()

	s.notifier.Success("Settings saved")
	out := *saved
	return &out, nil
}

func (s *SettingsStore) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

func (s *SettingsStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
