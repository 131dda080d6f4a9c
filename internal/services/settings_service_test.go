package services

import (
	"context"
	"errors"
	"testing"
	"travel-cost-service/internal/domain"
)

type mockSettingsStore struct {
	loadFn func(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error)
	saveFn func(ctx context.Context, s *domain.TravelCostSettings) (*domain.TravelCostSettings, error)

	saveCalls int
}

func (m *mockSettingsStore) Load(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, professionalID)
	}
	return nil, nil
}

func (m *mockSettingsStore) Save(ctx context.Context, s *domain.TravelCostSettings) (*domain.TravelCostSettings, error) {
	m.saveCalls++
	if m.saveFn != nil {
		return m.saveFn(ctx, s)
	}
	return s, nil
}

func TestGetReturnsDefaultsWhenMissing(t *testing.T) {
	service := NewSettingsService(&mockSettingsStore{})

	got := service.Get(context.Background(), 42)

	if got == nil {
		t.Fatal("expected defaults, got nil")
	}
	if got.ProfessionalID != 42 {
		t.Fatalf("professional id = %d, want 42", got.ProfessionalID)
	}
	if got.Active {
		t.Fatal("defaults must be inactive")
	}
	if got.BaseCost != 1000 || got.FreeDistanceKm != 0 {
		t.Fatalf("defaults = base %d free %d, want 1000/0", got.BaseCost, got.FreeDistanceKm)
	}
	if len(got.CostRanges) != 3 {
		t.Fatalf("expected 3 default ranges, got %d", len(got.CostRanges))
	}
	if len(got.Supplements) != 4 {
		t.Fatalf("expected 4 default supplements, got %d", len(got.Supplements))
	}
	for _, s := range got.Supplements {
		if s.Active {
			t.Fatalf("default supplement %s must be inactive", s.Kind)
		}
	}
}

func TestGetReturnsDefaultsOnStoreError(t *testing.T) {
	store := &mockSettingsStore{
		loadFn: func(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error) {
			return nil, errors.New("store unreachable")
		},
	}
	service := NewSettingsService(store)

	got := service.Get(context.Background(), 42)

	if got == nil {
		t.Fatal("store errors must degrade to defaults, got nil")
	}
	if got.BaseCost != domain.DefaultBaseCost {
		t.Fatalf("base cost = %d, want default %d", got.BaseCost, domain.DefaultBaseCost)
	}
}

func TestGetReturnsStoredSettings(t *testing.T) {
	stored := &domain.TravelCostSettings{ProfessionalID: 42, BaseCost: 500, Active: true}
	store := &mockSettingsStore{
		loadFn: func(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error) {
			return stored, nil
		},
	}
	service := NewSettingsService(store)

	if got := service.Get(context.Background(), 42); got != stored {
		t.Fatalf("expected stored settings, got %+v", got)
	}
}

func TestSaveRejectsOverlappingRanges(t *testing.T) {
	store := &mockSettingsStore{}
	service := NewSettingsService(store)

	settings := &domain.TravelCostSettings{
		ProfessionalID: 1,
		BaseCost:       1000,
		CostRanges: []domain.CostRange{
			{FromKm: 0, ToKm: intp(20), CostPerKm: 100},
			{FromKm: 10, ToKm: intp(50), CostPerKm: 80},
		},
	}

	if _, err := service.Save(context.Background(), settings); err == nil {
		t.Fatal("expected overlap validation error")
	}
	if store.saveCalls != 0 {
		t.Fatal("invalid settings must not reach the store")
	}
}

func TestSaveRejectsReversedRange(t *testing.T) {
	service := NewSettingsService(&mockSettingsStore{})

	settings := &domain.TravelCostSettings{
		ProfessionalID: 1,
		CostRanges: []domain.CostRange{
			{FromKm: 20, ToKm: intp(10), CostPerKm: 100},
		},
	}

	if _, err := service.Save(context.Background(), settings); err == nil {
		t.Fatal("expected reversed-bounds validation error")
	}
}

func TestSaveRejectsBadSupplement(t *testing.T) {
	service := NewSettingsService(&mockSettingsStore{})

	settings := &domain.TravelCostSettings{
		ProfessionalID: 1,
		Supplements: []domain.Supplement{
			{Kind: domain.SupplementWeekend, Percentage: 120},
		},
	}

	if _, err := service.Save(context.Background(), settings); err == nil {
		t.Fatal("expected percentage validation error")
	}

	settings.Supplements = []domain.Supplement{{Kind: "RUSH_HOUR", Percentage: 10}}
	if _, err := service.Save(context.Background(), settings); err == nil {
		t.Fatal("expected unknown-kind validation error")
	}
}

func TestSaveValidConfiguration(t *testing.T) {
	store := &mockSettingsStore{}
	service := NewSettingsService(store)

	settings := &domain.TravelCostSettings{
		ProfessionalID: 1,
		BaseCost:       1500,
		FreeDistanceKm: 5,
		Active:         true,
		CostRanges: []domain.CostRange{
			{FromKm: 0, ToKm: intp(30), CostPerKm: 90},
			{FromKm: 30, ToKm: nil, CostPerKm: 70},
		},
		Supplements: []domain.Supplement{
			{Kind: domain.SupplementUrgent, FixedAmount: 1000, Active: true},
		},
	}

	saved, err := service.Save(context.Background(), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != settings {
		t.Fatalf("expected store-confirmed settings, got %+v", saved)
	}
	if store.saveCalls != 1 {
		t.Fatalf("store called %d times, want 1", store.saveCalls)
	}
}

func TestSaveStoreErrorPropagates(t *testing.T) {
	store := &mockSettingsStore{
		saveFn: func(ctx context.Context, s *domain.TravelCostSettings) (*domain.TravelCostSettings, error) {
			return nil, errors.New("store unreachable")
		},
	}
	service := NewSettingsService(store)

	settings := &domain.TravelCostSettings{ProfessionalID: 1, BaseCost: 1000}
	if _, err := service.Save(context.Background(), settings); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
