package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_name TEXT NOT NULL,
		start_lat DOUBLE PRECISION NOT NULL,
		start_lng DOUBLE PRECISION NOT NULL,
		end_name TEXT NOT NULL,
		end_lat DOUBLE PRECISION NOT NULL,
		end_lng DOUBLE PRECISION NOT NULL,
		distance_km INTEGER NOT NULL CHECK (distance_km >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
    ON trips(created_at, id);
	`

	statements := []string{
		createTripsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type locationSeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// TripSeed mirrors one entry of the browser "travel-trips" localStorage export.
type TripSeed struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StartLocation locationSeed `json:"startLocation"`
	EndLocation   locationSeed `json:"endLocation"`
	Distance      int          `json:"distance"`
	CreatedAt     string       `json:"createdAt"`
}

func (s TripSeed) toTrip() (*domain.Trip, error) {
	createdAt := time.Now().UTC()
	if strings.TrimSpace(s.CreatedAt) != "" {
		t, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse createdAt %q: %w", s.CreatedAt, err)
		}
		createdAt = t.UTC()
	}

	trip := &domain.Trip{
		ID:   strings.TrimSpace(s.ID),
		Name: strings.TrimSpace(s.Name),
		Start: domain.Location{
			Name:     strings.TrimSpace(s.StartLocation.Name),
			GeoPoint: domain.GeoPoint{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
		},
		End: domain.Location{
			Name:     strings.TrimSpace(s.EndLocation.Name),
			GeoPoint: domain.GeoPoint{Lat: s.EndLocation.Lat, Lng: s.EndLocation.Lng},
		},
		DistanceKm: domain.DistanceEstimate(s.Distance),
		CreatedAt:  createdAt,
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return trip, nil
}

// Populate the database with trips from a localStorage JSON export.
// Existing trips with the same id are replaced.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed trips: parse json: %w", err)
	}

	trips := make([]*domain.Trip, 0, len(data))
	for i, item := range data {
		trip, err := item.toTrip()
		if err != nil {
			return 0, fmt.Errorf("seed trips: item at index %d: %w", i+1, err)
		}
		trips = append(trips, trip)
	}

	repo := NewPostgresTripRepository(db)
	if err := repo.SaveTrips(ctx, trips); err != nil {
		return 0, fmt.Errorf("seed trips: %w", err)
	}

	return len(trips), nil
}
