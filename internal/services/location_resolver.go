package services

import (
	"context"
	"fmt"
	"log"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/ports"
)

// LocationResolver turns stored addresses into usable coordinates.
//
// Resolution order: cached coordinates win unconditionally (no network call
// is ever made on a cache hit, regardless of age); a complete address is
// geocoded exactly once and written through to the store; anything else is
// "not resolvable", expressed as (nil, nil).
//
// At most one write-back happens per call, and only on a true cache miss
// followed by a successful geocode.
type LocationResolver struct {
	Geocoder ports.Geocoder
	Store    ports.CoordinateStore
}

func NewLocationResolver(geocoder ports.Geocoder, store ports.CoordinateStore) *LocationResolver {
	return &LocationResolver{Geocoder: geocoder, Store: store}
}

// ResolveOrigin resolves the coordinates a professional travels from,
// selecting residence or declared work address per the profile flag.
// A nil result with nil error means the origin cannot be resolved yet
// (incomplete address or no geocoder match); callers treat that as a normal
// outcome, not a failure.
func (lr *LocationResolver) ResolveOrigin(ctx context.Context, profile *domain.WorkProfile) (*domain.Coordinates, error) {
	if profile == nil {
		return nil, nil
	}

	if cached := profile.OriginCoords(); cached != nil {
		return cached, nil
	}

	addr := profile.OriginAddress()
	coords, ok := lr.geocodeComplete(ctx, addr)
	if !ok {
		return nil, nil
	}

	residence := profile.UseResidenceAsOrigin || profile.WorkAddress == nil
	if err := lr.Store.SaveProfileCoordinates(ctx, profile.ProfessionalID, residence, *coords); err != nil {
		return nil, fmt.Errorf("resolve origin: save coordinates for professional %d: %w", profile.ProfessionalID, err)
	}

	if residence {
		profile.ResidenceCoords = coords
	} else {
		profile.WorkCoords = coords
	}

	return coords, nil
}

// ResolveDestination follows the identical algorithm against the request's
// own address and coordinate fields.
func (lr *LocationResolver) ResolveDestination(ctx context.Context, loc *domain.ServiceRequestLocation) (*domain.Coordinates, error) {
	if loc == nil {
		return nil, nil
	}

	if loc.Coords != nil {
		return loc.Coords, nil
	}

	coords, ok := lr.geocodeComplete(ctx, loc.Address)
	if !ok {
		return nil, nil
	}

	if err := lr.Store.SaveRequestCoordinates(ctx, loc.RequestID, *coords); err != nil {
		return nil, fmt.Errorf("resolve destination: save coordinates for request %d: %w", loc.RequestID, err)
	}

	loc.Coords = coords
	return coords, nil
}

// geocodeComplete geocodes a complete address exactly once. Provider outages
// and no-match responses both collapse to "not resolved"; only the log line
// tells them apart. No internal retry: retry policy belongs to the caller.
func (lr *LocationResolver) geocodeComplete(ctx context.Context, addr domain.Address) (*domain.Coordinates, bool) {
	if !addr.Complete() {
		return nil, false
	}

	coords, err := lr.Geocoder.Geocode(ctx, addr)
	if err != nil {
		log.Printf("geocode failed addr=%q err=%v", addr.SingleLine(), err)
		return nil, false
	}
	if coords == nil {
		log.Printf("no geocode result addr=%q", addr.SingleLine())
		return nil, false
	}

	return coords, true
}
