package ports

import (
	"context"
	"errors"
	"trip-planner-service/internal/domain"
)

// ErrProviderUnavailable marks any failure of a remote routing provider:
// transport errors, non-success status, or a payload without a usable distance.
var ErrProviderUnavailable = errors.New("distance provider unavailable")

// Contract for a routing strategy that may fail.
type DistanceProvider interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// Return the travel distance in kilometers between two points.
	// A non-nil error means the provider could not answer; the result is then ignored.
	TryEstimate(ctx context.Context, start, end domain.GeoPoint) (float64, error)
}

// Contract for a local strategy that always produces a distance.
type LocalDistanceProvider interface {
	Name() string
	Estimate(start, end domain.GeoPoint) float64
}
