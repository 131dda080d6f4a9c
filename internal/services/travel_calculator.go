package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/ports"
)

// Bound on concurrent per-request computations in ComputeBatch.
const batchWorkers = 5

// TravelCalculator turns an origin profile and a request location into a
// priced TravelInfo using the professional's flat per-kilometer rate.
//
// "Cannot price this route yet" is a normal outcome expressed as (nil, nil):
// the caller prompts the professional to complete their address instead of
// showing an error. Only infrastructure failures (store unreachable) surface
// as errors.
type TravelCalculator struct {
	Resolver *LocationResolver
	Geocoder ports.Geocoder
	Profiles ports.ProfileRepository
	// Fallback flat rate when a profile has none set.
	DefaultRatePerKm int64
}

func NewTravelCalculator(resolver *LocationResolver, geocoder ports.Geocoder, profiles ports.ProfileRepository) *TravelCalculator {
	return &TravelCalculator{
		Resolver:         resolver,
		Geocoder:         geocoder,
		Profiles:         profiles,
		DefaultRatePerKm: domain.DefaultRatePerKm,
	}
}

// Compute resolves both endpoints, fetches distance and duration, and prices
// the route at ratePerKm minor units per kilometer.
//
// Origin is resolved before destination so diagnostics can attribute which
// side failed; the two resolutions are logically independent.
func (tc *TravelCalculator) Compute(
	ctx context.Context,
	profile *domain.WorkProfile,
	location *domain.ServiceRequestLocation,
	ratePerKm int64,
) (*domain.TravelInfo, error) {
	origin, err := tc.Resolver.ResolveOrigin(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("compute travel info: %w", err)
	}
	if origin == nil {
		return nil, nil
	}

	destination, err := tc.Resolver.ResolveDestination(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("compute travel info: %w", err)
	}
	if destination == nil {
		return nil, nil
	}

	result, err := tc.Geocoder.Distance(ctx, *origin, *destination)
	if err != nil {
		// Provider outage degrades this single quote, never the pipeline.
		log.Printf("distance lookup failed professional=%d err=%v", profile.ProfessionalID, err)
		return nil, nil
	}
	if result == nil {
		return nil, nil
	}

	distanceKm := roundTo2(result.DistanceKm)
	return &domain.TravelInfo{
		DistanceKm:      distanceKm,
		DurationMinutes: int(math.Round(result.DurationMinutes)),
		Cost:            int64(math.Round(distanceKm * float64(ratePerKm))),
	}, nil
}

// ComputeForRequest loads the professional's profile and the request's
// location, then prices the route. The profile's flat rate applies, falling
// back to the default rate when unset.
func (tc *TravelCalculator) ComputeForRequest(ctx context.Context, professionalID, requestID int64) (*domain.TravelInfo, error) {
	profile, err := tc.Profiles.GetWorkProfile(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("compute for request: load profile %d: %w", professionalID, err)
	}

	location, err := tc.Profiles.GetRequestLocation(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("compute for request: load request %d: %w", requestID, err)
	}

	rate := profile.RatePerKm
	if rate <= 0 {
		rate = tc.DefaultRatePerKm
	}

	return tc.Compute(ctx, profile, location, rate)
}

// BatchTravelInfo is one per-request outcome of a batch computation.
// A nil TravelInfo means that request could not be priced.
type BatchTravelInfo struct {
	RequestID  int64
	TravelInfo *domain.TravelInfo
}

// ComputeBatch prices N requests against one professional. Each item is
// independent; a failing request never aborts the others. Items run under a
// bounded worker pool and the result preserves input order.
func (tc *TravelCalculator) ComputeBatch(ctx context.Context, professionalID int64, requestIDs []int64) []BatchTravelInfo {
	out := make([]BatchTravelInfo, len(requestIDs))

	sem := make(chan struct{}, batchWorkers)
	var wg sync.WaitGroup

	for i, id := range requestIDs {
		wg.Add(1)
		go func(i int, id int64) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			info, err := tc.ComputeForRequest(ctx, professionalID, id)
			if err != nil {
				log.Printf("batch travel info failed professional=%d request=%d err=%v", professionalID, id, err)
				info = nil
			}
			out[i] = BatchTravelInfo{RequestID: id, TravelInfo: info}
		}(i, id)
	}

	wg.Wait()
	return out
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
