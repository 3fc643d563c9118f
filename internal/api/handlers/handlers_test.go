package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDistanceService struct {
	km       domain.DistanceEstimate
	strategy string
	gotStart domain.GeoPoint
	gotEnd   domain.GeoPoint
}

func (f *fakeDistanceService) EstimateDistance(_ context.Context, start, end domain.GeoPoint) (domain.DistanceEstimate, string, error) {
	f.gotStart, f.gotEnd = start, end
	return f.km, f.strategy, nil
}

type fakeGeocoder struct {
	locs     []domain.Location
	err      error
	gotQuery string
	gotLimit int
}

func (f *fakeGeocoder) Search(_ context.Context, query string, limit int) ([]domain.Location, error) {
	f.gotQuery, f.gotLimit = query, limit
	return f.locs, f.err
}

type fakeTripService struct {
	trips     []*domain.Trip
	createErr error
	listErr   error
	created   services.CreateTripRequest
	deleted   string
}

func (f *fakeTripService) CreateTrip(_ context.Context, req services.CreateTripRequest) (*domain.Trip, error) {
	f.created = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Trip{
		ID:         "trip-1",
		Name:       req.Name,
		Start:      req.Start,
		End:        req.End,
		DistanceKm: 171,
		CreatedAt:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}, nil
}

func (f *fakeTripService) ListTrips(context.Context) ([]*domain.Trip, error) {
	return f.trips, f.listErr
}

func (f *fakeTripService) GetTrip(_ context.Context, id string) (*domain.Trip, error) {
	for _, t := range f.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrTripNotFound)
}

func (f *fakeTripService) DeleteTrip(_ context.Context, id string) error {
	f.deleted = id
	if _, err := f.GetTrip(context.Background(), id); err != nil {
		return err
	}
	return nil
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func sampleTrip() *domain.Trip {
	return &domain.Trip{
		ID:         "trip-1",
		Name:       "Weekend in Colombo",
		Start:      domain.Location{Name: "Matara", GeoPoint: domain.GeoPoint{Lat: 5.9485, Lng: 80.5353}},
		End:        domain.Location{Name: "Colombo", GeoPoint: domain.GeoPoint{Lat: 6.9271, Lng: 79.8612}},
		DistanceKm: 171,
		CreatedAt:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{}

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHealth_DatabaseDown(t *testing.T) {
	h := &HealthHandler{DB: failingPinger{}}

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, rec.Body.String())
}

func TestDistanceEstimate(t *testing.T) {
	svc := &fakeDistanceService{km: 171, strategy: "great_circle"}
	h := &DistanceHandler{Service: svc}

	body := `{"start":{"lat":5.9485,"lng":80.5353},"end":{"lat":6.9271,"lng":79.8612}}`
	rec := httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodPost, "/distance", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"distance_km":171,"strategy":"great_circle"}`, rec.Body.String())
	assert.Equal(t, domain.GeoPoint{Lat: 5.9485, Lng: 80.5353}, svc.gotStart)
	assert.Equal(t, domain.GeoPoint{Lat: 6.9271, Lng: 79.8612}, svc.gotEnd)
}

func TestDistanceEstimate_ZeroCoordinatesAreValid(t *testing.T) {
	svc := &fakeDistanceService{km: 0, strategy: "osrm"}
	h := &DistanceHandler{Service: svc}

	body := `{"start":{"lat":0,"lng":0},"end":{"lat":0,"lng":0}}`
	rec := httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodPost, "/distance", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"distance_km":0,"strategy":"osrm"}`, rec.Body.String())
}

func TestDistanceEstimate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing end", `{"start":{"lat":1,"lng":2}}`, "end is required"},
		{"missing lat", `{"start":{"lng":2},"end":{"lat":1,"lng":2}}`, "start.lat is required"},
		{"latitude out of range", `{"start":{"lat":91,"lng":2},"end":{"lat":1,"lng":2}}`, "start.lat must be <= 90"},
		{"longitude out of range", `{"start":{"lat":1,"lng":2},"end":{"lat":1,"lng":-181}}`, "end.lng must be >= -180"},
		{"unknown field", `{"start":{"lat":1,"lng":2},"end":{"lat":1,"lng":2},"mode":"walk"}`, "invalid json body"},
		{"trailing data", `{"start":{"lat":1,"lng":2},"end":{"lat":1,"lng":2}} {}`, "only one JSON object"},
		{"not json", `nope`, "invalid json body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &DistanceHandler{Service: &fakeDistanceService{}}
			rec := httptest.NewRecorder()
			h.Estimate(rec, httptest.NewRequest(http.MethodPost, "/distance", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec)["error"], tt.wantMsg)
		})
	}
}

func TestDistanceEstimate_MethodNotAllowed(t *testing.T) {
	h := &DistanceHandler{Service: &fakeDistanceService{}}
	rec := httptest.NewRecorder()
	h.Estimate(rec, httptest.NewRequest(http.MethodGet, "/distance", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestLocationSearch(t *testing.T) {
	geo := &fakeGeocoder{locs: []domain.Location{
		{Name: "Colombo, Western Province, Sri Lanka", GeoPoint: domain.GeoPoint{Lat: 6.9271, Lng: 79.8612}},
	}}
	h := &LocationHandler{Geocoder: geo}

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/locations/search?q=Colombo&limit=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"locations":[{"name":"Colombo, Western Province, Sri Lanka","lat":6.9271,"lng":79.8612}]}`,
		rec.Body.String(),
	)
	assert.Equal(t, "Colombo", geo.gotQuery)
	assert.Equal(t, 3, geo.gotLimit)
}

func TestLocationSearch_EmptyResultIsArray(t *testing.T) {
	h := &LocationHandler{Geocoder: &fakeGeocoder{}}

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/locations/search?q=Co", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"locations":[]}`, rec.Body.String())
}

func TestLocationSearch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		geo    *fakeGeocoder
		status int
	}{
		{"missing query", "/locations/search", &fakeGeocoder{}, http.StatusBadRequest},
		{"bad limit", "/locations/search?q=Colombo&limit=abc", &fakeGeocoder{}, http.StatusBadRequest},
		{"zero limit", "/locations/search?q=Colombo&limit=0", &fakeGeocoder{}, http.StatusBadRequest},
		{"upstream down", "/locations/search?q=Colombo", &fakeGeocoder{err: errors.New("boom")}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &LocationHandler{Geocoder: tt.geo}
			rec := httptest.NewRecorder()
			h.Search(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestTrips_Create(t *testing.T) {
	svc := &fakeTripService{}
	h := &TripHandler{Service: svc}

	body := `{
		"name": "Weekend in Colombo",
		"start_location": {"name": "Matara", "lat": 5.9485, "lng": 80.5353},
		"end_location": {"lat": 6.9271, "lng": 79.8612}
	}`
	rec := httptest.NewRecorder()
	h.Collection(rec, httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/trips/trip-1", rec.Header().Get("Location"))
	assert.JSONEq(t, `{
		"id": "trip-1",
		"name": "Weekend in Colombo",
		"start_location": {"name": "Matara", "lat": 5.9485, "lng": 80.5353},
		"end_location": {"name": "", "lat": 6.9271, "lng": 79.8612},
		"distance_km": 171,
		"created_at": "2025-03-01T09:30:00Z"
	}`, rec.Body.String())

	assert.Equal(t, "Matara", svc.created.Start.Name)
	assert.Equal(t, 79.8612, svc.created.End.Lng)
}

func TestTrips_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"missing name", `{"start_location":{"lat":1,"lng":1},"end_location":{"lat":2,"lng":2}}`, nil},
		{"missing end", `{"name":"x","start_location":{"lat":1,"lng":1}}`, nil},
		{"blank name rejected by service", `{"name":" ","start_location":{"lat":1,"lng":1},"end_location":{"lat":2,"lng":2}}`,
			fmt.Errorf("create trip: %w: name is required", domain.ErrInvalidTrip)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &TripHandler{Service: &fakeTripService{createErr: tt.err}}
			rec := httptest.NewRecorder()
			h.Collection(rec, httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestTrips_CreateInternalError(t *testing.T) {
	h := &TripHandler{Service: &fakeTripService{createErr: errors.New("create trip: save: db down")}}

	body := `{"name":"x","start_location":{"lat":1,"lng":1},"end_location":{"lat":2,"lng":2}}`
	rec := httptest.NewRecorder()
	h.Collection(rec, httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
}

func TestTrips_List(t *testing.T) {
	h := &TripHandler{Service: &fakeTripService{trips: []*domain.Trip{sampleTrip()}}}

	rec := httptest.NewRecorder()
	h.Collection(rec, httptest.NewRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Trips []struct {
			ID         string `json:"id"`
			DistanceKm int    `json:"distance_km"`
		} `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Trips, 1)
	assert.Equal(t, "trip-1", res.Trips[0].ID)
	assert.Equal(t, 171, res.Trips[0].DistanceKm)
}

func TestTrips_CollectionMethodNotAllowed(t *testing.T) {
	h := &TripHandler{Service: &fakeTripService{}}

	rec := httptest.NewRecorder()
	h.Collection(rec, httptest.NewRequest(http.MethodPut, "/trips", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestTrips_Item(t *testing.T) {
	svc := &fakeTripService{trips: []*domain.Trip{sampleTrip()}}
	h := &TripHandler{Service: svc}

	req := httptest.NewRequest(http.MethodGet, "/trips/trip-1", nil)
	req.SetPathValue("id", "trip-1")
	rec := httptest.NewRecorder()
	h.Item(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Weekend in Colombo", decodeBody(t, rec)["name"])

	req = httptest.NewRequest(http.MethodGet, "/trips/missing", nil)
	req.SetPathValue("id", "missing")
	rec = httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/trips/trip-1", nil)
	req.SetPathValue("id", "trip-1")
	rec = httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "trip-1", svc.deleted)

	req = httptest.NewRequest(http.MethodDelete, "/trips/missing", nil)
	req.SetPathValue("id", "missing")
	rec = httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/trips/trip-1", nil)
	req.SetPathValue("id", "trip-1")
	rec = httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, DELETE", rec.Header().Get("Allow"))
}

func TestTrips_GeoJSON(t *testing.T) {
	h := &TripHandler{Service: &fakeTripService{trips: []*domain.Trip{sampleTrip()}}}

	rec := httptest.NewRecorder()
	h.GeoJSON(rec, httptest.NewRequest(http.MethodGet, "/trips.geojson", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "FeatureCollection", body["type"])
	features, ok := body["features"].([]any)
	require.True(t, ok)
	assert.Len(t, features, 2)
}

func TestTrips_GeoJSONListFailure(t *testing.T) {
	h := &TripHandler{Service: &fakeTripService{listErr: errors.New("db down")}}

	rec := httptest.NewRecorder()
	h.GeoJSON(rec, httptest.NewRequest(http.MethodGet, "/trips.geojson", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
