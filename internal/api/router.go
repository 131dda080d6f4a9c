package api

import (
	"net/http"
	"travel-cost-service/internal/api/handlers"
	"travel-cost-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(settings *services.SettingsService, calculator *services.TravelCalculator) http.Handler {
	mux := http.NewServeMux()

	settingsHandler := &handlers.SettingsHandler{Service: settings}
	travelHandler := &handlers.TravelHandler{
		Calculator: calculator,
		Settings:   settings,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/settings", settingsHandler.Handle)
	mux.HandleFunc("/travel-info", travelHandler.Compute)
	mux.HandleFunc("/travel-info/batch", travelHandler.ComputeBatch)
	mux.HandleFunc("/quote", travelHandler.Quote)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(mux)
}
