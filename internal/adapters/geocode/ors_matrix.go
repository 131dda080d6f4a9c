package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"
	"travel-cost-service/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Distance retrieves driving distance and duration between two coordinate
// pairs using the OpenRouteService matrix endpoint. Returns (nil, nil) when
// the service has no route between the points.
func (o *ORSGeocoder) Distance(ctx context.Context, a, b domain.Coordinates) (_ *ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.Distance")(&err)

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	bodyObj := matrixRequest{
		Locations:    [][]float64{a.CoordsToList(), b.CoordsToList()},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}
	if len(mr.Distances[0]) != 1 || len(mr.Durations[0]) != 1 {
		return nil, fmt.Errorf(
			"expected 1 destination column; got distances=%d durations=%d",
			len(mr.Distances[0]), len(mr.Durations[0]),
		)
	}

	metersPtr := mr.Distances[0][0]
	secondsPtr := mr.Durations[0][0]

	// Null metrics mean the matrix service found no route between the points.
	if metersPtr == nil || secondsPtr == nil {
		return nil, nil
	}

	return &ports.DistanceResult{
		DistanceKm:      *metersPtr / 1000,
		DurationMinutes: *secondsPtr / 60,
	}, nil
}
