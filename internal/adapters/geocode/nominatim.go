package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpx"
	"trip-planner-service/internal/platform/obs"
)

const (
	MinQueryLength = 3
	DefaultLimit   = 5
	MaxLimit       = 10
)

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimGeocoder resolves free-text addresses with the OpenStreetMap
// Nominatim search API. Results are not cached.
type NominatimGeocoder struct {
	client *httpx.Client
}

func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	// Nominatim's usage policy rejects requests without an identifying User-Agent.
	header := http.Header{}
	header.Set("User-Agent", userAgent)

	return &NominatimGeocoder{client: httpx.NewClient(baseURL, timeout, header)}
}

// Search returns candidate locations for query. Queries shorter than
// MinQueryLength return no results without calling the API.
func (g *NominatimGeocoder) Search(
	ctx context.Context,
	query string,
	limit int,
) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Search")(&err)

	query = strings.Join(strings.Fields(query), " ")
	if len([]rune(query)) < MinQueryLength {
		return []domain.Location{}, nil
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")

	body, err := g.client.Get(ctx, "/search", q)
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", query, err)
	}

	var decoded []searchResult
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	out := make([]domain.Location, 0, len(decoded))
	for _, r := range decoded {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}

		loc := domain.Location{
			Name:     strings.TrimSpace(r.DisplayName),
			GeoPoint: domain.GeoPoint{Lat: lat, Lng: lng},
		}
		if loc.Validate() != nil {
			continue
		}
		out = append(out, loc)
	}

	return out, nil
}
