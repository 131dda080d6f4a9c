package ports

import (
	"context"
	"travel-cost-service/internal/domain"
)

// Port: a boundary for retrieving professional profiles and request
// locations from a data source.
type ProfileRepository interface {
	// Retrieve the travel profile of a professional.
	GetWorkProfile(ctx context.Context, professionalID int64) (*domain.WorkProfile, error)
	// Retrieve the location a service request must be fulfilled at.
	GetRequestLocation(ctx context.Context, requestID int64) (*domain.ServiceRequestLocation, error)
}
