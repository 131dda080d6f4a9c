package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/ports"
)

// SettingsService loads and saves a professional's travel pricing
// configuration.
//
// Reads never fail: a missing record or an unreachable store both yield the
// hard-coded defaults (logged, not persisted), so a pricing estimate can
// always be produced. Only an explicit save requires the store to be
// healthy.
type SettingsService struct {
	Store ports.SettingsStore
}

func NewSettingsService(store ports.SettingsStore) *SettingsService {
	return &SettingsService{Store: store}
}

// Get returns the professional's saved settings, or the defaults when none
// exist or the store is unreachable.
func (ss *SettingsService) Get(ctx context.Context, professionalID int64) *domain.TravelCostSettings {
	s, err := ss.Store.Load(ctx, professionalID)
	if err != nil {
		log.Printf("load travel cost settings failed professional=%d err=%v (using defaults)", professionalID, err)
		return domain.DefaultSettings(professionalID)
	}
	if s == nil {
		return domain.DefaultSettings(professionalID)
	}
	return s
}

// Save validates and persists a configuration, returning the stored result
// as read back from the store. Store failures propagate as retryable errors.
func (ss *SettingsService) Save(ctx context.Context, s *domain.TravelCostSettings) (*domain.TravelCostSettings, error) {
	if err := ValidateSettings(s); err != nil {
		return nil, fmt.Errorf("save travel cost settings: %w", err)
	}

	saved, err := ss.Store.Save(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("save travel cost settings professional=%d: %w", s.ProfessionalID, err)
	}
	return saved, nil
}

// ValidateSettings rejects malformed configurations before they reach the
// store. Reversed or overlapping range bands are refused at write time;
// reads stay lenient so rows written before this check keep pricing.
func ValidateSettings(s *domain.TravelCostSettings) error {
	if s == nil {
		return fmt.Errorf("settings must be non-nil")
	}
	if s.ProfessionalID <= 0 {
		return fmt.Errorf("professional id must be positive")
	}
	if s.BaseCost < 0 {
		return fmt.Errorf("base cost must not be negative")
	}
	if s.FreeDistanceKm < 0 {
		return fmt.Errorf("free distance must not be negative")
	}

	ranges := make([]domain.CostRange, len(s.CostRanges))
	copy(ranges, s.CostRanges)
	slices.SortFunc(ranges, func(a, b domain.CostRange) int {
		return a.FromKm - b.FromKm
	})

	for i, r := range ranges {
		if r.FromKm < 0 {
			return fmt.Errorf("range %d: from_km must not be negative", i)
		}
		if r.CostPerKm < 0 {
			return fmt.Errorf("range %d: cost_per_km must not be negative", i)
		}
		if r.ToKm != nil && *r.ToKm <= r.FromKm {
			return fmt.Errorf("range %d: to_km (%d) must be greater than from_km (%d)", i, *r.ToKm, r.FromKm)
		}
		if i > 0 {
			prev := ranges[i-1]
			if prev.ToKm == nil {
				return fmt.Errorf("range %d: previous range is unbounded", i)
			}
			if r.FromKm < *prev.ToKm {
				return fmt.Errorf("range %d: overlaps previous range ending at %d", i, *prev.ToKm)
			}
		}
	}

	for i, sup := range s.Supplements {
		switch sup.Kind {
		case domain.SupplementWeekend, domain.SupplementNight, domain.SupplementHoliday, domain.SupplementUrgent:
		default:
			return fmt.Errorf("supplement %d: unknown kind %q", i, sup.Kind)
		}
		if sup.Percentage < 0 || sup.Percentage > 100 {
			return fmt.Errorf("supplement %d: percentage must be between 0 and 100", i)
		}
		if sup.FixedAmount < 0 {
			return fmt.Errorf("supplement %d: fixed amount must not be negative", i)
		}
	}

	return nil
}
