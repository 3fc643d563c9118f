package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Estimator is the part of DistanceEstimator the trip workflow depends on.
type Estimator interface {
	EstimateDetailed(ctx context.Context, start, end domain.GeoPoint) (domain.DistanceEstimate, string)
}

type CreateTripRequest struct {
	Name  string
	Start domain.Location
	End   domain.Location
}

// TripService owns the trip lifecycle: it validates input, attaches a
// distance estimate and hands the record to the repository.
type TripService struct {
	repo      ports.TripRepository
	estimator Estimator
	now       func() time.Time
	newID     func() string
}

func NewTripService(repo ports.TripRepository, estimator Estimator) *TripService {
	return &TripService{
		repo:      repo,
		estimator: estimator,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// WithClock overrides time and id generation, for deterministic tests.
func (s *TripService) WithClock(now func() time.Time, newID func() string) *TripService {
	if now != nil {
		s.now = now
	}
	if newID != nil {
		s.newID = newID
	}
	return s
}

// EstimateDistance validates both points and returns the estimate together
// with the strategy that produced it.
func (s *TripService) EstimateDistance(
	ctx context.Context,
	start domain.GeoPoint,
	end domain.GeoPoint,
) (domain.DistanceEstimate, string, error) {
	if err := start.Validate(); err != nil {
		return 0, "", fmt.Errorf("estimate distance: start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return 0, "", fmt.Errorf("estimate distance: end: %w", err)
	}

	d, strategy := s.estimator.EstimateDetailed(ctx, start, end)
	return d, strategy, nil
}

func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("create trip: %w: name is required", domain.ErrInvalidTrip)
	}

	start := namedLocation(req.Start)
	end := namedLocation(req.End)
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("create trip: %w: start location: %w", domain.ErrInvalidTrip, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("create trip: %w: end location: %w", domain.ErrInvalidTrip, err)
	}

	d, strategy := s.estimator.EstimateDetailed(ctx, start.GeoPoint, end.GeoPoint)

	trip := &domain.Trip{
		ID:         s.newID(),
		Name:       name,
		Start:      start,
		End:        end,
		DistanceKm: d,
		CreatedAt:  s.now().UTC(),
	}
	if err := trip.Validate(); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	if err := s.repo.SaveTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: save: %w", err)
	}

	obs.WithContext(ctx).Info("trip created",
		zap.String("trip_id", trip.ID),
		zap.Int("distance_km", int(trip.DistanceKm)),
		zap.String("strategy", strategy),
	)
	return trip, nil
}

func (s *TripService) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.repo.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

func (s *TripService) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrTripNotFound
	}

	trip, err := s.repo.GetTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", id, err)
	}
	return trip, nil
}

func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ports.ErrTripNotFound
	}

	if err := s.repo.DeleteTrip(ctx, id); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			return err
		}
		return fmt.Errorf("delete trip %q: %w", id, err)
	}

	obs.WithContext(ctx).Info("trip deleted", zap.String("trip_id", id))
	return nil
}

// namedLocation fills in a coordinate label for points picked without a name.
func namedLocation(l domain.Location) domain.Location {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		l.Name = fmt.Sprintf("%.5f, %.5f", l.Lat, l.Lng)
	}
	return l
}
