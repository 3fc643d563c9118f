package domain

import "math"

// DistanceEstimate is a travel distance in whole kilometers.
// It carries no provenance; every strategy produces the same type.
type DistanceEstimate int

// RoundKm converts a raw kilometer value into a DistanceEstimate.
// The second result is false when km is not a usable distance (NaN, Inf or negative).
func RoundKm(km float64) (DistanceEstimate, bool) {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return 0, false
	}
	return DistanceEstimate(math.Round(km)), true
}
