package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lane-strategy-service/internal/adapters/cache"
	"lane-strategy-service/internal/api"
	"lane-strategy-service/internal/api/dto"
	"lane-strategy-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	svc := services.NewStrategyService(cache.NewMemoryStrategyCache(), 2)
	return api.NewRouter(svc, "memory")
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","cache":"memory"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestPlanStrategy(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodPost, "/strategies", `{"distance_km":1000,"available_lanes":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.StrategyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, 3, res.OptimalTimeHours)
	assert.Equal(t, 1, res.MaxPeople)
	assert.Equal(t, 1000, res.TotalDistanceKm)
	assert.Equal(t, 4, res.AvailableLanes)
	assert.Zero(t, res.UncoveredKm)

	p1, ok := res.JourneyBreakdown["Person 1"]
	require.True(t, ok)
	assert.Equal(t, 4, p1.LanesReserved)
	assert.Equal(t, "C4 (400 km) + C4 (400 km) + C2 (200 km)", p1.Route)
	assert.Equal(t, 1000, p1.TotalDistanceCovered)
	require.Len(t, p1.Segments, 3)
	assert.Equal(t, dto.SegmentResult{Class: "C2", Lanes: 2, DistanceKm: 200}, p1.Segments[2])
}

func TestPlanStrategyExactRemainders(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodPost, "/strategies", `{"distance_km":1050,"available_lanes":4,"exact_remainders":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.StrategyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "C4 (400 km) + C4 (400 km) + C3 (250 km)", res.JourneyBreakdown["Person 1"].Route)
	assert.Zero(t, res.UncoveredKm)
}

func TestPlanStrategyFailures(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/strategies", `{"distance_km":0,"available_lanes":4}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"Error":"Distance must be greater than 0."}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/strategies", `{"distance_km":100,"available_lanes":0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t,
		`{"Error":"Insufficient lanes. At least 1 lane required to start any journey.","Time":"N/A","People":0}`,
		rec.Body.String())
}

func TestPlanStrategyBadRequests(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{name: "wrong method", method: http.MethodGet, want: http.StatusMethodNotAllowed},
		{name: "malformed", method: http.MethodPost, body: `{"distance_km":`, want: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, body: `{"distance":10}`, want: http.StatusBadRequest},
		{name: "trailing object", method: http.MethodPost, body: `{"distance_km":1} {}`, want: http.StatusBadRequest},
		{name: "distance too large", method: http.MethodPost, body: `{"distance_km":1000001,"available_lanes":4}`, want: http.StatusBadRequest},
		{name: "lanes too large", method: http.MethodPost, body: `{"distance_km":100,"available_lanes":10001}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/strategies", tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPlanBatch(t *testing.T) {
	body := `{"requests":[
		{"distance_km":800,"available_lanes":8},
		{"distance_km":-1,"available_lanes":8},
		{"distance_km":100,"available_lanes":2}
	]}`
	rec := do(t, newTestRouter(), http.MethodPost, "/strategies/batch", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results, 3)

	require.NotNil(t, res.Results[0].Strategy)
	assert.Equal(t, 2, res.Results[0].Strategy.MaxPeople)
	assert.Len(t, res.Results[0].Strategy.JourneyBreakdown, 2)

	require.NotNil(t, res.Results[1].Failure)
	assert.Nil(t, res.Results[1].Strategy)
	assert.Equal(t, dto.InvalidDistanceMessage, res.Results[1].Failure.Error)
	assert.Empty(t, res.Results[1].Failure.Time)
	assert.Nil(t, res.Results[1].Failure.People)

	require.NotNil(t, res.Results[2].Strategy)
	assert.Equal(t, "C2 (200 km)", res.Results[2].Strategy.JourneyBreakdown["Person 1"].Route)
}

func TestPlanBatchRejectsEmptyAndOversized(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/strategies/batch", `{"requests":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	items := make([]string, 101)
	for i := range items {
		items[i] = `{"distance_km":100,"available_lanes":4}`
	}
	rec = do(t, h, http.MethodPost, "/strategies/batch", `{"requests":[`+strings.Join(items, ",")+`]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
