package ports

import (
	"context"
	"travel-cost-service/internal/domain"
)

// Port: write-through cache for resolved coordinates on professional and
// request records. Writes are idempotent (the same address always geocodes
// to the same point), so concurrent duplicate writes are last-writer-wins.
// Write failures must propagate; they are never swallowed.
type CoordinateStore interface {
	// Persist resolved coordinates on a professional's residence or work slot.
	SaveProfileCoordinates(ctx context.Context, professionalID int64, residence bool, c domain.Coordinates) error
	// Persist resolved coordinates on a service request.
	SaveRequestCoordinates(ctx context.Context, requestID int64, c domain.Coordinates) error
}
