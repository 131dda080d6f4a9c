package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"travel-cost-service/internal/domain"
	"travel-cost-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a redis-backed cache mapping normalized address
// strings to coordinates. Entries never expire: the same address always
// geocodes to the same point, so staleness is not a concern.
//
// Address keys are expected to be consistent (e.g., normalized) by the
// caller.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

type cachedCoordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Get fetches cached coordinates for one address; (nil, nil) on a miss.
func (c *RedisGeocodeCache) Get(ctx context.Context, address string) (_ *domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: client is nil")
	}
	if strings.TrimSpace(address) == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	raw, err := c.Client.Get(ctx, geocodeKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: %w", err)
	}

	var cc cachedCoordinates
	if err := json.Unmarshal([]byte(raw), &cc); err != nil {
		return nil, fmt.Errorf("get geocode cache: decode entry for %q: %w", address, err)
	}

	return &domain.Coordinates{Lat: cc.Lat, Lon: cc.Lon}, nil
}

// Put stores one address -> coordinates mapping.
func (c *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if c.Client == nil {
		return errors.New("geocode cache: client is nil")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	payload, err := json.Marshal(cachedCoordinates{Lat: coords.Lat, Lon: coords.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode entry for %q: %w", address, err)
	}

	if err := c.Client.Set(ctx, geocodeKeyPrefix+address, payload, 0).Err(); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
