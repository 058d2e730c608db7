package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = logger.InitLogger("test", logger.LevelError)

type fakePointService struct {
	points  []models.Point
	nearest models.NearestPoint
	err     error
	query   locator.Coordinate
	created *models.Point
}

func (f *fakePointService) Create(_ context.Context, p *models.Point) error {
	p.ID = 1
	f.created = p
	return f.err
}

func (f *fakePointService) Get(_ context.Context, id int64) (*models.Point, error) {
	for _, p := range f.points {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("PointRepo.Get: %w", types.ErrPointNotFound)
}

func (f *fakePointService) List(context.Context, models.Filters) ([]models.Point, models.Metadata, error) {
	return f.points, models.Metadata{}, f.err
}

func (f *fakePointService) All(context.Context) ([]models.Point, error) {
	return f.points, f.err
}

func (f *fakePointService) Update(context.Context, *models.Point) error { return f.err }

func (f *fakePointService) Delete(context.Context, int64) error { return f.err }

func (f *fakePointService) Nearest(_ context.Context, query locator.Coordinate) (models.NearestPoint, error) {
	f.query = query
	return f.nearest, f.err
}

func ptr(f float64) *float64 { return &f }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPointNearest(t *testing.T) {
	svc := &fakePointService{nearest: models.NearestPoint{
		Nearest:    models.Point{ID: 1, Name: "Bogota", Latitude: ptr(4.6097), Longitude: ptr(-74.0817)},
		DistanceKm: 11.31,
	}}
	h := NewPoint(svc, testLogger)

	rec := httptest.NewRecorder()
	h.Nearest(rec, httptest.NewRequest(http.MethodGet, "/points/nearest?lat=4.7110&lon=-74.0721", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, locator.Coordinate{Latitude: 4.7110, Longitude: -74.0721}, svc.query)

	body := decode(t, rec)
	assert.InDelta(t, 11.31, body["distance_km"], 1e-9)
	nearest := body["nearest"].(map[string]any)
	assert.Equal(t, "Bogota", nearest["name"])
	assert.NotContains(t, body, "skipped_point_ids")
}

func TestPointNearest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "missing lat", query: "lon=1", field: "lat"},
		{name: "missing lon", query: "lat=1", field: "lon"},
		{name: "not a number", query: "lat=abc&lon=1", field: "lat"},
		{name: "lat out of range", query: "lat=90.5&lon=1", field: "lat"},
		{name: "lon out of range", query: "lat=1&lon=-181", field: "lon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPoint(&fakePointService{}, testLogger)

			rec := httptest.NewRecorder()
			h.Nearest(rec, httptest.NewRequest(http.MethodGet, "/points/nearest?"+tt.query, nil))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			errs := decode(t, rec)["error"].(map[string]any)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestPointNearest_NoPoints(t *testing.T) {
	h := NewPoint(&fakePointService{err: fmt.Errorf("PointService.Nearest: %w", types.ErrNoPoints)}, testLogger)

	rec := httptest.NewRecorder()
	h.Nearest(rec, httptest.NewRequest(http.MethodGet, "/points/nearest?lat=0&lon=0", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no points available", decode(t, rec)["error"])
}

func TestPointGet(t *testing.T) {
	h := NewPoint(&fakePointService{points: []models.Point{{ID: 3, Name: "station"}}}, testLogger)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/points/3", nil)
		req.SetPathValue("id", "3")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "station", decode(t, rec)["name"])
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/points/4", nil)
		req.SetPathValue("id", "4")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "point not found", decode(t, rec)["error"])
	})

	t.Run("bad id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/points/x", nil)
		req.SetPathValue("id", "x")
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPointCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := &fakePointService{}
		h := NewPoint(svc, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/points",
			strings.NewReader(`{"name":" Finca ","latitude":4.6,"longitude":-74.1}`)))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.created)
		assert.Equal(t, "Finca", svc.created.Name)
	})

	t.Run("half a coordinate", func(t *testing.T) {
		h := NewPoint(&fakePointService{}, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/points",
			strings.NewReader(`{"name":"Finca","latitude":4.6}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		h := NewPoint(&fakePointService{}, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/points",
			strings.NewReader(`{"name":"Finca","lat":4.6}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPointGeoJSON(t *testing.T) {
	svc := &fakePointService{points: []models.Point{
		{ID: 1, Name: "a", Latitude: ptr(4.6), Longitude: ptr(-74.1), ElevationM: ptr(2600)},
		{ID: 2, Name: "no coordinates"},
	}}
	h := NewPoint(svc, testLogger)

	rec := httptest.NewRecorder()
	h.GeoJSON(rec, httptest.NewRequest(http.MethodGet, "/points.geojson", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, geoJSONContentType, rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, "FeatureCollection", body["type"])
	features := body["features"].([]any)
	require.Len(t, features, 1)

	geometry := features[0].(map[string]any)["geometry"].(map[string]any)
	assert.Equal(t, []any{-74.1, 4.6}, geometry["coordinates"])
}

func TestPointNearestGeoJSON(t *testing.T) {
	svc := &fakePointService{nearest: models.NearestPoint{
		Nearest:    models.Point{ID: 5, Name: "b", Latitude: ptr(1), Longitude: ptr(2)},
		DistanceKm: 3.5,
	}}
	h := NewPoint(svc, testLogger)

	rec := httptest.NewRecorder()
	h.NearestGeoJSON(rec, httptest.NewRequest(http.MethodGet, "/points/nearest.geojson?lat=0&lon=0", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Feature", body["type"])
	assert.InDelta(t, 3.5, body["properties"].(map[string]any)["distance_km"], 1e-9)
}

type fakePolicyService struct {
	created *models.Policy
	err     error
}

func (f *fakePolicyService) Create(_ context.Context, p *models.Policy) error {
	f.created = p
	return f.err
}

func (f *fakePolicyService) Get(context.Context, int64) (*models.Policy, error) {
	return nil, types.ErrPolicyNotFound
}

func (f *fakePolicyService) List(context.Context, int64, models.Filters) ([]models.Policy, models.Metadata, error) {
	return nil, models.Metadata{}, f.err
}

func (f *fakePolicyService) Update(context.Context, *models.Policy) error { return f.err }

func (f *fakePolicyService) Delete(context.Context, int64) error { return f.err }

func TestPolicyCreate(t *testing.T) {
	const valid = `{"policy_number":"P-1","client_id":1,"crop_id":2,"insured_amount":1000,
		"premium":50,"start_date":"2024/01/15","end_date":"15-01-2025","status":"active"}`

	t.Run("coerces dates and status", func(t *testing.T) {
		svc := &fakePolicyService{}
		h := NewPolicy(svc, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/policies", strings.NewReader(valid)))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.created)
		assert.Equal(t, "2024-01-15", svc.created.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2025-01-15", svc.created.EndDate.Format("2006-01-02"))
		assert.Equal(t, types.PolicyStatus("ACTIVE"), svc.created.Status)
	})

	t.Run("end before start", func(t *testing.T) {
		h := NewPolicy(&fakePolicyService{}, testLogger)

		body := strings.Replace(valid, "15-01-2025", "2023-12-31", 1)
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/policies", strings.NewReader(body)))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "end_date")
	})

	t.Run("unknown client", func(t *testing.T) {
		h := NewPolicy(&fakePolicyService{err: fmt.Errorf("PolicyRepo.Create: %w", types.ErrInvalidReference)}, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/policies", strings.NewReader(valid)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate number", func(t *testing.T) {
		h := NewPolicy(&fakePolicyService{err: types.ErrPolicyNumberTaken}, testLogger)

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/policies", strings.NewReader(valid)))

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "policy number already exists", decode(t, rec)["error"])
	})
}

func TestPolicyList_BadSort(t *testing.T) {
	h := NewPolicy(&fakePolicyService{}, testLogger)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/policies?sort=password", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "sort")
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealth("svc", fakePinger{}, testLogger).HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "available", decode(t, rec)["status"])
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealth("svc", fakePinger{err: errors.New("refused")}, testLogger).HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "degraded", decode(t, rec)["status"])
	})
}

func TestRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealth("svc", fakePinger{}, testLogger).Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: &locator.CandidateError{Index: 2}, want: http.StatusBadRequest},
		{err: locator.ErrNoCandidates, want: http.StatusNotFound},
		{err: fmt.Errorf("op: %w", types.ErrClientNotFound), want: http.StatusNotFound},
		{err: types.ErrStillReferenced, want: http.StatusConflict},
		{err: types.ErrDocumentTaken, want: http.StatusConflict},
		{err: types.ErrInvalidValue, want: http.StatusUnprocessableEntity},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestServiceErrorResponse_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	serviceErrorResponse(rec, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, internalErrorMessage, decode(t, rec)["error"])
}
