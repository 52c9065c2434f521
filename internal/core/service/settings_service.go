package service

import (
	"context"
	"time"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the saved settings or the defaults when none exist.
func (s *SettingsService) Get(ctx context.Context, businessID string) (*domain.BusinessSettings, error) {
	saved, err := s.repo.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		def := domain.DefaultSettings(businessID)
		return &def, nil
	}
	return saved, nil
}

func (s *SettingsService) Save(ctx context.Context, settings domain.BusinessSettings) (*domain.BusinessSettings, error) {
	settings.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
