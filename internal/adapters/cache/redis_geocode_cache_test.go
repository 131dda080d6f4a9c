package cache

import (
	"context"
	"testing"
	"travel-cost-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client)
}

func TestGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	addr := "Via Roma 12, 10121, Torino, TO"
	coords := domain.Coordinates{Lat: 45.0703, Lon: 7.6869}

	got, err := c.Get(ctx, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %v", got)
	}

	if err := c.Put(ctx, addr, coords); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err = c.Get(ctx, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != coords {
		t.Fatalf("cached coordinates = %v, want %v", got, coords)
	}
}

func TestGeocodeCacheRejectsEmptyAddress(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "  "); err == nil {
		t.Fatal("expected error for blank address on get")
	}
	if err := c.Put(ctx, "", domain.Coordinates{}); err == nil {
		t.Fatal("expected error for blank address on put")
	}
}

func TestGeocodeCacheOverwriteIsLastWriterWins(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	addr := "Piazza Castello 1, 10122, Torino, TO"
	first := domain.Coordinates{Lat: 45.0, Lon: 7.6}
	second := domain.Coordinates{Lat: 45.071, Lon: 7.685}

	if err := c.Put(ctx, addr, first); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := c.Put(ctx, addr, second); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := c.Get(ctx, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != second {
		t.Fatalf("cached coordinates = %v, want %v", got, second)
	}
}
