package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealer-benchmark/internal/benchmark"
	"dealer-benchmark/internal/benchmark/cost"
	"dealer-benchmark/internal/benchmark/narrative"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/catalog"
	"dealer-benchmark/internal/common/config"
	"dealer-benchmark/internal/common/logger"
	"dealer-benchmark/internal/common/observability"
)

type fakeSource struct {
	vehicles map[string]record.Vehicle
	listErr  error
}

func (f *fakeSource) Get(_ context.Context, id string) (record.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return v, nil
}

func (f *fakeSource) List(_ context.Context, _ catalog.Filter) ([]record.Vehicle, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]record.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, nil
}

type fakeGenerator struct {
	sections []narrative.Section
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, _ record.Vehicle, _ []record.Vehicle) ([]narrative.Section, error) {
	return f.sections, f.err
}

func testPrices() cost.PriceTable {
	return cost.PriceTable{
		Prices: map[cost.Category]float64{
			cost.GasolineRegular: 24.0,
			cost.GasolinePremium: 26.0,
			cost.Diesel:          25.5,
			cost.BatteryElectric: 2.8,
		},
	}
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	cfg := config.ServerConfig{Address: ":0", MaxCompetitors: 3}
	source := &fakeSource{vehicles: map[string]record.Vehicle{
		"veh-001": {"marca": "Chevrolet", "modelo": "Montana"},
	}}
	return New(cfg, benchmark.New(testPrices()), source, logger.NewTestLogger(t), opts...)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCompare_Success(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"own": {"marca": "Chevrolet", "modelo": "Montana", "precio_lista": 394900},
		"competitors": [{"marca": "Nissan", "modelo": "Frontier", "precio_lista": 414900}]
	}`
	rec := doRequest(t, s, http.MethodPost, "/v1/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result benchmark.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Competitors, 1)
	assert.Equal(t, 20000.0, result.Competitors[0].Deltas["msrp"])
}

func TestCompare_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/compare", `{"competitors": []}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestCompare_EmptyOwnIsUnprocessable(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/compare", `{"own": {}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "BASE_VEHICLE_MISSING")
}

func TestCompare_TooManyCompetitors(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/compare",
		`{"own": {"marca": "GMC"}, "competitors": [{}, {}, {}, {}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOO_MANY_COMPETITORS")
}

func TestRadar_ReturnsSamples(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"own": {"marca": "Chevrolet", "segmento_display": "Pickup", "equip_pilar_safety": 80},
		"competitors": [{"marca": "Nissan", "segmento_display": "Pickup", "equip_pilar_safety": 70}]
	}`
	rec := doRequest(t, s, http.MethodPost, "/v1/radar", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		Samples []map[string]interface{} `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Len(t, reply.Samples, 5)
}

func TestNarrativeFallback_NoCompetitors(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/narrative/fallback",
		`{"own": {"marca": "Chevrolet", "modelo": "Montana"}, "competitors": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply narrativeReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.False(t, reply.Generated)
	require.Len(t, reply.Sections, 3)
	assert.Equal(t, narrative.SectionHeadToHead, reply.Sections[1].Key)
}

func TestNarrative_GeneratorFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("model timeout")}
	s := newTestServer(t, WithGenerator(gen))

	rec := doRequest(t, s, http.MethodPost, "/v1/narrative",
		`{"own": {"marca": "Chevrolet", "modelo": "Montana"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply narrativeReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.False(t, reply.Generated)
	assert.Len(t, reply.Sections, 3)
}

func TestNarrative_GeneratorSuccess(t *testing.T) {
	gen := &fakeGenerator{sections: []narrative.Section{
		{Key: "opening", Title: "Generado", Items: []narrative.Item{{Title: "x", Body: "y"}}},
	}}
	s := newTestServer(t, WithGenerator(gen))

	rec := doRequest(t, s, http.MethodPost, "/v1/narrative",
		`{"own": {"marca": "Chevrolet"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply narrativeReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.True(t, reply.Generated)
	require.Len(t, reply.Sections, 1)
	assert.Equal(t, "Generado", reply.Sections[0].Title)
}

func TestCatalog_ListAndGet(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/catalog?brand=Chevrolet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Montana")

	rec = doRequest(t, s, http.MethodGet, "/v1/catalog/veh-001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Montana")

	rec = doRequest(t, s, http.MethodGet, "/v1/catalog/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_QueryFailure(t *testing.T) {
	cfg := config.ServerConfig{Address: ":0", MaxCompetitors: 3}
	source := &fakeSource{listErr: fmt.Errorf("connection refused")}
	s := New(cfg, benchmark.New(testPrices()), source, logger.NewTestLogger(t))

	rec := doRequest(t, s, http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "CATALOG_QUERY_FAILED")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestObservabilityRecordsRequests(t *testing.T) {
	obs := observability.New("server-test")
	defer obs.Shutdown()

	s := newTestServer(t, WithObservability(obs))

	rec := doRequest(t, s, http.MethodPost, "/v1/compare",
		`{"own": {"marca": "Chevrolet", "precio_lista": 394900}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDAssigned(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
