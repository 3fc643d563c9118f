package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Trips    *services.TripService
	Geocoder ports.Geocoder
	// Optional; when set /health pings it.
	DB handlers.Pinger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{DB: deps.DB}
	distanceHandler := &handlers.DistanceHandler{Service: deps.Trips}
	locationHandler := &handlers.LocationHandler{Geocoder: deps.Geocoder}
	tripHandler := &handlers.TripHandler{Service: deps.Trips}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/distance", distanceHandler.Estimate)
	mux.HandleFunc("/locations/search", locationHandler.Search)
	mux.HandleFunc("/trips", tripHandler.Collection)
	mux.HandleFunc("/trips/{id}", tripHandler.Item)
	mux.HandleFunc("/trips.geojson", tripHandler.GeoJSON)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(recoverMiddleware(loggingMiddleware(mux)))
}
