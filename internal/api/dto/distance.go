package dto

import "trip-planner-service/internal/domain"

// Coordinates are pointers so that a missing field is told apart from 0.
type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (p *PointRequest) GeoPoint() domain.GeoPoint {
	return domain.GeoPoint{Lat: *p.Lat, Lng: *p.Lng}
}

type DistanceRequest struct {
	Start *PointRequest `json:"start" validate:"required"`
	End   *PointRequest `json:"end" validate:"required"`
}

type DistanceResponse struct {
	DistanceKm int    `json:"distance_km"`
	Strategy   string `json:"strategy"`
}
