package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Boundary for resolving free-text addresses into candidate locations.
type Geocoder interface {
	// Return up to limit candidate locations for query, best match first.
	Search(ctx context.Context, query string, limit int) ([]domain.Location, error)
}
