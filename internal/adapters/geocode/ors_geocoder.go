package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"travel-cost-service/internal/adapters/cache"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"
	"travel-cost-service/internal/ports"
)

// ORSGeocoder implements the Geocoder port using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - An optional shared address -> coordinates cache
//   - External API calls with retry/backoff
//
// Distance results are never cached here; routes are re-derived per request.
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	addressCache *cache.RedisGeocodeCache
}

func NewORSGeocoder(apiKey string, addressCache *cache.RedisGeocodeCache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		addressCache: addressCache,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address using OpenRouteService (/geocode/search).
// Returns (nil, nil) when the provider has no match.
func (o *ORSGeocoder) Geocode(ctx context.Context, addr domain.Address) (_ *domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	text := o.normalize(addr.SingleLine())
	if text == "" {
		return nil, errors.New("geocode: address text is empty")
	}

	if o.addressCache != nil {
		hit, err := o.addressCache.Get(ctx, text)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if hit != nil {
			return hit, nil
		}
	}

	endpoint := o.baseURL + "/geocode/search"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", text)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, nil
	}

	raw := decoded.Features[0].Geometry.Coordinates
	if len(raw) != 2 {
		return nil, fmt.Errorf("invalid coordinate format for %q", text)
	}

	coords := &domain.Coordinates{Lon: raw[0], Lat: raw[1]}

	if o.addressCache != nil {
		if err := o.addressCache.Put(ctx, text, *coords); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

var _ ports.Geocoder = (*ORSGeocoder)(nil)
