package geocode

import (
	"context"
	"fmt"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/ports"
)

type MockRoute struct {
	From, To domain.Coordinates
	Km       float64
	Minutes  float64
}

// MockGeocoder is a deterministic in-memory Geocoder for tests.
type MockGeocoder struct {
	addresses map[string]domain.Coordinates
	routes    []MockRoute

	GeocodeCalls  int
	DistanceCalls int
}

func NewMockGeocoder(addresses map[string]domain.Coordinates, routes []MockRoute) *MockGeocoder {
	return &MockGeocoder{addresses: addresses, routes: routes}
}

func (m *MockGeocoder) Geocode(ctx context.Context, addr domain.Address) (*domain.Coordinates, error) {
	m.GeocodeCalls++
	c, ok := m.addresses[addr.SingleLine()]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MockGeocoder) Distance(ctx context.Context, a, b domain.Coordinates) (*ports.DistanceResult, error) {
	m.DistanceCalls++
	for _, r := range m.routes {
		if r.From == a && r.To == b {
			return &ports.DistanceResult{DistanceKm: r.Km, DurationMinutes: r.Minutes}, nil
		}
	}
	return nil, fmt.Errorf("missing route %v -> %v", a, b)
}
