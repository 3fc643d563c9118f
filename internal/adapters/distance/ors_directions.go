package distance

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/tidwall/gjson"
)

const orsDistancePath = "features.0.properties.segments.0.distance"

// ORSDirectionsProvider implements DistanceProvider using the
// OpenRouteService directions endpoint (GET /v2/directions/{profile}).
//
// The provider is safe for concurrent use.
type ORSDirectionsProvider struct {
	client  *httpx.Client
	apiKey  string
	profile string
}

func NewORSDirectionsProvider(apiKey, baseURL, profile string, timeout time.Duration) (*ORSDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	if profile == "" {
		profile = "driving-car"
	}

	// The key travels only as the api_key query parameter.
	return &ORSDirectionsProvider{
		client:  httpx.NewClient(baseURL, timeout, nil),
		apiKey:  apiKey,
		profile: profile,
	}, nil
}

func (o *ORSDirectionsProvider) Name() string { return "openrouteservice" }

// TryEstimate asks ORS for the driving distance of a single start->end route.
// Coordinates go out as "lng,lat".
func (o *ORSDirectionsProvider) TryEstimate(
	ctx context.Context,
	start domain.GeoPoint,
	end domain.GeoPoint,
) (_ float64, err error) {
	defer obs.Time(ctx, "ors.TryEstimate")(&err)

	q := url.Values{}
	q.Set("api_key", o.apiKey)
	q.Set("start", start.LngLat())
	q.Set("end", end.LngLat())

	body, err := o.client.Get(ctx, "/v2/directions/"+o.profile, q)
	if err != nil {
		return 0, fmt.Errorf("%w: ors directions: %w", ports.ErrProviderUnavailable, err)
	}

	meters, err := metersAt(body, orsDistancePath)
	if err != nil {
		return 0, fmt.Errorf("%w: ors directions: %w", ports.ErrProviderUnavailable, err)
	}

	return meters / 1000, nil
}

// metersAt extracts a numeric distance in meters at a gjson path, guarding
// against missing route data in otherwise successful responses.
func metersAt(body []byte, path string) (float64, error) {
	if !gjson.ValidBytes(body) {
		return 0, errors.New("response is not valid json")
	}

	v := gjson.GetBytes(body, path)
	if !v.Exists() {
		return 0, fmt.Errorf("response has no %s", path)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%s is %s, want number", path, v.Type)
	}

	meters := v.Float()
	if meters < 0 {
		return 0, fmt.Errorf("%s is negative: %v", path, meters)
	}
	return meters, nil
}
