package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTrip = errors.New("invalid trip")

// A named place picked by the user, either from address search or from the map.
type Location struct {
	Name string
	GeoPoint
}

func (l Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("location name must not be empty")
	}
	return l.GeoPoint.Validate()
}

// Represents a planned trip between two locations.
// DistanceKm is computed once at creation time and stored with the trip.
type Trip struct {
	ID         string
	Name       string
	Start      Location
	End        Location
	DistanceKm DistanceEstimate
	CreatedAt  time.Time
}

func (t *Trip) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidTrip)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidTrip)
	}
	if err := t.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start location: %w", ErrInvalidTrip, err)
	}
	if err := t.End.Validate(); err != nil {
		return fmt.Errorf("%w: end location: %w", ErrInvalidTrip, err)
	}
	if t.DistanceKm < 0 {
		return fmt.Errorf("%w: distance must be non-negative, got %d", ErrInvalidTrip, t.DistanceKm)
	}
	return nil
}
