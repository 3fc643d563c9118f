package ports

import (
	"context"
	"errors"
	"trip-planner-service/internal/domain"
)

var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for storing and retrieving Trip entities.
type TripRepository interface {
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve all trips, oldest first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}
