package dto

import (
	"time"
	"trip-planner-service/internal/domain"
)

type CreateTripRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	StartLocation *LocationRequest `json:"start_location" validate:"required"`
	EndLocation   *LocationRequest `json:"end_location" validate:"required"`
}

type TripResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	StartLocation LocationResponse `json:"start_location"`
	EndLocation   LocationResponse `json:"end_location"`
	DistanceKm    int              `json:"distance_km"`
	CreatedAt     time.Time        `json:"created_at"`
}

func NewTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		Name:          t.Name,
		StartLocation: NewLocationResponse(t.Start),
		EndLocation:   NewLocationResponse(t.End),
		DistanceKm:    int(t.DistanceKm),
		CreatedAt:     t.CreatedAt,
	}
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
