package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

const upsertTripQuery = `
	INSERT INTO trips (
		id, name,
		start_name, start_lat, start_lng,
		end_name, end_lat, end_lng,
		distance_km, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		start_name = EXCLUDED.start_name,
		start_lat = EXCLUDED.start_lat,
		start_lng = EXCLUDED.start_lng,
		end_name = EXCLUDED.end_name,
		end_lat = EXCLUDED.end_lat,
		end_lng = EXCLUDED.end_lng,
		distance_km = EXCLUDED.distance_km,
		created_at = EXCLUDED.created_at;
	`

const selectTripColumns = `
	SELECT
		id, name,
		start_name, start_lat, start_lng,
		end_name, end_lat, end_lng,
		distance_km, created_at
	FROM trips
	`

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

func tripArgs(t *domain.Trip) []any {
	return []any{
		t.ID, t.Name,
		t.Start.Name, t.Start.Lat, t.Start.Lng,
		t.End.Name, t.End.Lat, t.End.Lng,
		int(t.DistanceKm), t.CreatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var t domain.Trip
	var km int
	if err := row.Scan(
		&t.ID, &t.Name,
		&t.Start.Name, &t.Start.Lat, &t.Start.Lng,
		&t.End.Name, &t.End.Lat, &t.End.Lng,
		&km, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.DistanceKm = domain.DistanceEstimate(km)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (s *PostgresTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("save trip: trip is nil")
	}

	if _, err := s.DB.ExecContext(ctx, upsertTripQuery, tripArgs(trip)...); err != nil {
		return fmt.Errorf("save trip id=%q: %w", trip.ID, err)
	}
	return nil
}

// Store many trips in one transaction.
func (s *PostgresTripRepository) SaveTrips(ctx context.Context, trips []*domain.Trip) error {
	if s.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}
	if len(trips) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trips: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertTripQuery)
	if err != nil {
		return fmt.Errorf("save trips: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range trips {
		if _, err := stmt.ExecContext(ctx, tripArgs(t)...); err != nil {
			return fmt.Errorf("save trips id=%q: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trips commit: %w", err)
	}

	return nil
}

// Return all trips, oldest first.
func (s *PostgresTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectTripColumns+"ORDER BY created_at, id;")
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (s *PostgresTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, selectTripColumns+"WHERE id = $1;", id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%q: %w", id, err)
	}
	return t, nil
}

func (s *PostgresTripRepository) DeleteTrip(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM trips WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete trip id=%q: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip id=%q: rows affected: %w", id, err)
	}
	if n == 0 {
		return ports.ErrTripNotFound
	}
	return nil
}
