package ports

import (
	"context"
	"travel-cost-service/internal/domain"
)

// Port: storage boundary for a professional's travel pricing configuration.
type SettingsStore interface {
	// Load returns (nil, nil) when the professional has never saved settings.
	Load(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error)
	// Save upserts the settings row and fully replaces both child collections
	// in one transaction, then returns the persisted result as confirmation.
	Save(ctx context.Context, s *domain.TravelCostSettings) (*domain.TravelCostSettings, error)
}
