package dto

import "trip-planner-service/internal/domain"

type LocationRequest struct {
	Name string   `json:"name" validate:"max=200"`
	Lat  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng  *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (l *LocationRequest) Location() domain.Location {
	return domain.Location{
		Name:     l.Name,
		GeoPoint: domain.GeoPoint{Lat: *l.Lat, Lng: *l.Lng},
	}
}

type LocationResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{Name: l.Name, Lat: l.Lat, Lng: l.Lng}
}

type SearchLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}
