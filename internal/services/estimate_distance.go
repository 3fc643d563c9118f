package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

const DefaultProviderTimeout = 5 * time.Second

// DistanceEstimator turns two points into a best-effort travel distance.
//
// Remote providers are tried strictly in order, one attempt each, each
// bounded by its own timeout. The local provider answers when every remote
// provider has failed or the caller's context is done. The estimator keeps
// no state between calls and is safe for concurrent use.
type DistanceEstimator struct {
	providers []ports.DistanceProvider
	fallback  ports.LocalDistanceProvider
	timeout   time.Duration
}

func NewDistanceEstimator(
	providers []ports.DistanceProvider,
	fallback ports.LocalDistanceProvider,
	timeout time.Duration,
) (*DistanceEstimator, error) {
	if fallback == nil {
		return nil, errors.New("new distance estimator: fallback provider must be non-nil")
	}
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}

	chain := make([]ports.DistanceProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			chain = append(chain, p)
		}
	}

	return &DistanceEstimator{
		providers: chain,
		fallback:  fallback,
		timeout:   timeout,
	}, nil
}

// Estimate returns the travel distance in whole kilometers. It never fails.
func (e *DistanceEstimator) Estimate(ctx context.Context, start, end domain.GeoPoint) domain.DistanceEstimate {
	d, _ := e.EstimateDetailed(ctx, start, end)
	return d
}

// EstimateDetailed is Estimate plus the name of the strategy that produced
// the result, for logging and API responses.
func (e *DistanceEstimator) EstimateDetailed(
	ctx context.Context,
	start domain.GeoPoint,
	end domain.GeoPoint,
) (domain.DistanceEstimate, string) {
	for _, p := range e.providers {
		// A done caller context skips remaining network attempts; the local fallback still answers.
		if err := ctx.Err(); err != nil {
			obs.WithContext(ctx).Debug("skipping remote distance providers",
				zap.String("provider", p.Name()), zap.Error(err))
			break
		}

		d, err := e.attempt(ctx, p, start, end)
		if err != nil {
			obs.ProviderFailuresTotal.WithLabelValues(p.Name()).Inc()
			obs.WithContext(ctx).Warn("distance provider failed",
				zap.String("provider", p.Name()), zap.Error(err))
			continue
		}

		return e.served(ctx, p.Name(), d), p.Name()
	}

	d, ok := domain.RoundKm(e.fallback.Estimate(start, end))
	if !ok {
		d = 0
	}
	return e.served(ctx, e.fallback.Name(), d), e.fallback.Name()
}

// attempt runs one provider call in its own failure domain: a timeout,
// an error, an unusable value or a panic all count as unavailable.
func (e *DistanceEstimator) attempt(
	ctx context.Context,
	p ports.DistanceProvider,
	start domain.GeoPoint,
	end domain.GeoPoint,
) (_ domain.DistanceEstimate, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	began := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ports.ErrProviderUnavailable, p.Name(), r)
		}

		result := "ok"
		if err != nil {
			result = "error"
		}
		obs.ProviderDuration.WithLabelValues(p.Name(), result).Observe(time.Since(began).Seconds())
	}()

	km, err := p.TryEstimate(attemptCtx, start, end)
	if err != nil {
		return 0, err
	}

	d, ok := domain.RoundKm(km)
	if !ok {
		return 0, fmt.Errorf("%w: %s returned unusable distance %v", ports.ErrProviderUnavailable, p.Name(), km)
	}
	return d, nil
}

func (e *DistanceEstimator) served(ctx context.Context, strategy string, d domain.DistanceEstimate) domain.DistanceEstimate {
	obs.EstimatesTotal.WithLabelValues(strategy).Inc()
	obs.WithContext(ctx).Debug("distance estimated",
		zap.String("strategy", strategy), zap.Int("distance_km", int(d)))
	return d
}
