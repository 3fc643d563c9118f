package distance

import (
	"context"
	"fmt"
	"net/url"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/tidwall/gjson"
)

// OSRMRouteProvider implements DistanceProvider using the OSRM route service.
// The public demo server needs no authentication.
type OSRMRouteProvider struct {
	client  *httpx.Client
	profile string
}

func NewOSRMRouteProvider(baseURL, profile string, timeout time.Duration) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	if profile == "" {
		profile = "driving"
	}

	return &OSRMRouteProvider{
		client:  httpx.NewClient(baseURL, timeout, nil),
		profile: profile,
	}
}

func (o *OSRMRouteProvider) Name() string { return "osrm" }

func (o *OSRMRouteProvider) TryEstimate(
	ctx context.Context,
	start domain.GeoPoint,
	end domain.GeoPoint,
) (_ float64, err error) {
	defer obs.Time(ctx, "osrm.TryEstimate")(&err)

	// OSRM takes "lng,lat;lng,lat" in the path.
	path := fmt.Sprintf("/route/v1/%s/%s;%s", o.profile, start.LngLat(), end.LngLat())

	body, err := o.client.Get(ctx, path, url.Values{"overview": []string{"false"}})
	if err != nil {
		return 0, fmt.Errorf("%w: osrm route: %w", ports.ErrProviderUnavailable, err)
	}

	if code := gjson.GetBytes(body, "code"); code.Exists() && code.String() != "Ok" {
		return 0, fmt.Errorf("%w: osrm route: code %q", ports.ErrProviderUnavailable, code.String())
	}

	meters, err := metersAt(body, "routes.0.distance")
	if err != nil {
		return 0, fmt.Errorf("%w: osrm route: %w", ports.ErrProviderUnavailable, err)
	}

	return meters / 1000, nil
}
