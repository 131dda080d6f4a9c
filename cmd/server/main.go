package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"travel-cost-service/internal/adapters/cache"
	"travel-cost-service/internal/adapters/geocode"
	"travel-cost-service/internal/adapters/repositories"
	"travel-cost-service/internal/api"
	"travel-cost-service/internal/config"
	"travel-cost-service/internal/platform/db"
	"travel-cost-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	// Shared geocode cache is optional: without REDIS_URL every geocode goes
	// to the provider (record-level coordinate caching still applies).
	var addressCache *cache.RedisGeocodeCache
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		addressCache = cache.NewRedisGeocodeCache(redis.NewClient(opts))
	}

	geocoder, err := geocode.NewORSGeocoder(orsKey, addressCache)
	if err != nil {
		log.Fatal(err)
	}

	profiles := repositories.NewPostgresProfileRepository(pg)
	settingsStore := repositories.NewPostgresSettingsStore(pg)

	resolver := services.NewLocationResolver(geocoder, profiles)
	calculator := services.NewTravelCalculator(resolver, geocoder, profiles)
	settings := services.NewSettingsService(settingsStore)

	router := api.NewRouter(settings, calculator)

	// Timeouts are tuned for cold-cache geocoding (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
