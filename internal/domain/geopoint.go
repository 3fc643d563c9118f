package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

const EarthRadiusKm = 6371.0

var ErrInvalidGeoPoint = errors.New("invalid geo point")

// Immutable geographic point in degrees.
// Latitude comes first here; routing APIs expect longitude first, see LngLat.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate reports whether the point is finite and within WGS84 degree ranges.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidGeoPoint, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidGeoPoint, p.Lng)
	}
	return nil
}

// Return the point as "lng,lat" for routing API compatibility.
func (p GeoPoint) LngLat() string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// Point returns the orb representation, which is ordered [lon, lat].
func (p GeoPoint) Point() orb.Point { return orb.Point{p.Lng, p.Lat} }

func GeoPointFromOrb(pt orb.Point) GeoPoint { return GeoPoint{Lat: pt.Lat(), Lng: pt.Lon()} }

// HaversineKm returns the great-circle distance between a and b on a sphere
// of radius EarthRadiusKm.
func HaversineKm(a, b GeoPoint) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push h just past 1 near antipodes; sqrt(1-h) must stay real.
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
