package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"travel-cost-service/internal/api/dto"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/services"
)

type stubSettingsStore struct {
	loadErr error
	saved   *domain.TravelCostSettings
}

func (s *stubSettingsStore) Load(ctx context.Context, professionalID int64) (*domain.TravelCostSettings, error) {
	return nil, s.loadErr
}

func (s *stubSettingsStore) Save(ctx context.Context, in *domain.TravelCostSettings) (*domain.TravelCostSettings, error) {
	s.saved = in
	return in, nil
}

func TestSettingsGetNeverFails(t *testing.T) {
	// A broken store still yields a 200 with the hard-coded defaults.
	h := &SettingsHandler{Service: services.NewSettingsService(&stubSettingsStore{
		loadErr: errors.New("store unreachable"),
	})}

	req := httptest.NewRequest(http.MethodGet, "/settings?professional_id=42", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got dto.SettingsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ProfessionalID != 42 || got.BaseCost != 1000 || got.Active {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if len(got.CostRanges) != 3 || len(got.Supplements) != 4 {
		t.Fatalf("unexpected default collections: %d ranges, %d supplements", len(got.CostRanges), len(got.Supplements))
	}
}

func TestSettingsGetRejectsBadID(t *testing.T) {
	h := &SettingsHandler{Service: services.NewSettingsService(&stubSettingsStore{})}

	req := httptest.NewRequest(http.MethodGet, "/settings?professional_id=abc", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSettingsSaveRejectsOverlap(t *testing.T) {
	store := &stubSettingsStore{}
	h := &SettingsHandler{Service: services.NewSettingsService(store)}

	body := `{
		"professional_id": 1,
		"base_cost": 1000,
		"free_distance_km": 0,
		"active": true,
		"cost_ranges": [
			{"from_km": 0, "to_km": 20, "cost_per_km": 100},
			{"from_km": 10, "to_km": 50, "cost_per_km": 80}
		],
		"supplements": []
	}`

	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if store.saved != nil {
		t.Fatal("invalid settings must not reach the store")
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	store := &stubSettingsStore{}
	h := &SettingsHandler{Service: services.NewSettingsService(store)}

	body := `{
		"professional_id": 1,
		"base_cost": 1500,
		"free_distance_km": 5,
		"active": true,
		"cost_ranges": [
			{"from_km": 0, "to_km": 30, "cost_per_km": 90},
			{"from_km": 30, "to_km": null, "cost_per_km": 70}
		],
		"supplements": [
			{"kind": "URGENT", "percentage": 0, "fixed_amount": 1000, "active": true}
		]
	}`

	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if store.saved == nil || store.saved.BaseCost != 1500 || len(store.saved.CostRanges) != 2 {
		t.Fatalf("stored settings = %+v", store.saved)
	}

	var got dto.SettingsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.CostRanges[1].ToKm != nil {
		t.Fatal("unbounded range must round-trip as null")
	}
}

func TestQuoteUsesSettings(t *testing.T) {
	h := &TravelHandler{Settings: services.NewSettingsService(&stubSettingsStore{})}

	// Defaults: base 1000, no free distance, 0-10@100 then 10-50@80.
	body := `{"professional_id": 1, "distance_km": 25}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got dto.QuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 10@100 + 15@80
	if got.DistanceCost != 2200 {
		t.Fatalf("distance cost = %d, want 2200", got.DistanceCost)
	}
	if got.Total != 3200 {
		t.Fatalf("total = %d, want 3200", got.Total)
	}
}

func TestQuoteRejectsNegativeDistance(t *testing.T) {
	h := &TravelHandler{Settings: services.NewSettingsService(&stubSettingsStore{})}

	body := `{"professional_id": 1, "distance_km": -3}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
