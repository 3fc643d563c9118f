package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

type TripService interface {
	CreateTrip(ctx context.Context, req services.CreateTripRequest) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

// TripHandler exposes the saved trip collection.
type TripHandler struct {
	Service TripService
}

// Collection serves GET and POST on /trips.
func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

// Item serves GET and DELETE on /trips/{id}.
func (h *TripHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		trip, err := h.Service.GetTrip(r.Context(), id)
		if err != nil {
			h.fail(w, r, "get trip failed", err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
	case http.MethodDelete:
		if err := h.Service.DeleteTrip(r.Context(), id); err != nil {
			h.fail(w, r, "delete trip failed", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

// GeoJSON exports all trip endpoints as a FeatureCollection for map display.
func (h *TripHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	trips, err := h.Service.ListTrips(r.Context())
	if err != nil {
		h.fail(w, r, "list trips failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(services.TripsFeatureCollection(trips)); err != nil {
		obs.WithContext(r.Context()).Warn("encode failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Service.ListTrips(r.Context())
	if err != nil {
		h.fail(w, r, "list trips failed", err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.Service.CreateTrip(r.Context(), services.CreateTripRequest{
		Name:  req.Name,
		Start: req.StartLocation.Location(),
		End:   req.EndLocation.Location(),
	})
	if err != nil {
		h.fail(w, r, "create trip failed", err)
		return
	}

	w.Header().Set("Location", "/trips/"+trip.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewTripResponse(trip))
}

// fail maps service errors onto HTTP statuses.
func (h *TripHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, ports.ErrTripNotFound):
		writeError(w, r, http.StatusNotFound, "trip not found")
	case errors.Is(err, domain.ErrInvalidTrip), errors.Is(err, domain.ErrInvalidGeoPoint):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		obs.WithContext(r.Context()).Error(msg, zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
