package ports

import (
	"context"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// SettingsRepository persists the per-business settings singleton.
type SettingsRepository interface {
	// Get returns nil, nil when nothing was saved yet.
	Get(ctx context.Context, businessID string) (*domain.BusinessSettings, error)
	Save(ctx context.Context, s *domain.BusinessSettings) error
}

type SettingsService interface {
	Get(ctx context.Context, businessID string) (*domain.BusinessSettings, error)
	Save(ctx context.Context, s domain.BusinessSettings) (*domain.BusinessSettings, error)
}
