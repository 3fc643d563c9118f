package distance

import (
	"context"
	"sync/atomic"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// MockDistanceProvider answers with a fixed distance or a fixed failure
// and counts how often it was asked.
type MockDistanceProvider struct {
	name  string
	km    float64
	err   error
	calls atomic.Int32
}

func NewMockDistanceProvider(name string, km float64) *MockDistanceProvider {
	return &MockDistanceProvider{name: name, km: km}
}

func NewFailingDistanceProvider(name string, err error) *MockDistanceProvider {
	if err == nil {
		err = ports.ErrProviderUnavailable
	}
	return &MockDistanceProvider{name: name, err: err}
}

func (p *MockDistanceProvider) Name() string { return p.name }

func (p *MockDistanceProvider) TryEstimate(ctx context.Context, start, end domain.GeoPoint) (float64, error) {
	p.calls.Add(1)
	if p.err != nil {
		return 0, p.err
	}
	return p.km, nil
}

func (p *MockDistanceProvider) Calls() int { return int(p.calls.Load()) }
