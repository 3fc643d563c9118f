package services

import (
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb/geojson"
)

// TripsFeatureCollection renders trips for the map view: one Point feature
// per trip endpoint. No route geometry is produced.
func TripsFeatureCollection(trips []*domain.Trip) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, t := range trips {
		for _, end := range []struct {
			role string
			loc  domain.Location
		}{
			{"start", t.Start},
			{"end", t.End},
		} {
			f := geojson.NewFeature(end.loc.Point())
			f.ID = t.ID + ":" + end.role
			f.Properties["trip_id"] = t.ID
			f.Properties["trip_name"] = t.Name
			f.Properties["role"] = end.role
			f.Properties["name"] = end.loc.Name
			f.Properties["distance_km"] = int(t.DistanceKm)
			fc.Append(f)
		}
	}

	return fc
}
