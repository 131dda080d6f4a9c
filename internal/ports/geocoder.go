package ports

import (
	"context"
	"travel-cost-service/internal/domain"
)

// Distance and travel duration between two coordinate pairs.
type DistanceResult struct {
	DistanceKm      float64
	DurationMinutes float64
}

// Contract for the external geocoding/mapping collaborator.
//
// Both methods return (nil, nil) when the provider has no match for the
// input; an error means the provider itself failed (network, timeout, bad
// response). Callers decide how much of that distinction to surface.
type Geocoder interface {
	// Resolve a postal address to coordinates.
	Geocode(ctx context.Context, addr domain.Address) (*domain.Coordinates, error)
	// Return driving distance and estimated duration between two points.
	Distance(ctx context.Context, a, b domain.Coordinates) (*DistanceResult, error)
}
