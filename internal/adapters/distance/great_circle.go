package distance

import (
	"math"
	"trip-planner-service/internal/domain"
)

// DefaultRoadFactor approximates road detours over straight-line distance.
const DefaultRoadFactor = 1.3

// GreatCircleEstimator is the local last-resort strategy: haversine distance
// scaled by a road-curvature factor. It needs no network and cannot fail.
type GreatCircleEstimator struct {
	RoadFactor float64
}

func NewGreatCircleEstimator(roadFactor float64) *GreatCircleEstimator {
	if roadFactor <= 0 || math.IsNaN(roadFactor) || math.IsInf(roadFactor, 0) {
		roadFactor = DefaultRoadFactor
	}
	return &GreatCircleEstimator{RoadFactor: roadFactor}
}

func (g *GreatCircleEstimator) Name() string { return "great_circle" }

// Estimate returns haversine(start, end) * RoadFactor in kilometers.
func (g *GreatCircleEstimator) Estimate(start, end domain.GeoPoint) float64 {
	factor := g.RoadFactor
	if factor <= 0 {
		factor = DefaultRoadFactor
	}

	km := domain.HaversineKm(start, end) * factor
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0
	}
	return km
}
