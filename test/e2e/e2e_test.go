// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealer-benchmark/internal/benchmark"
	"dealer-benchmark/internal/benchmark/cost"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/catalog"
	"dealer-benchmark/internal/common/config"
	"dealer-benchmark/internal/common/logger"
	"dealer-benchmark/internal/server"
)

// memorySource mimics the relational catalog for end-to-end runs.
type memorySource struct {
	vehicles map[string]record.Vehicle
}

func (m *memorySource) Get(_ context.Context, id string) (record.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return v, nil
}

func (m *memorySource) List(_ context.Context, filter catalog.Filter) ([]record.Vehicle, error) {
	out := []record.Vehicle{}
	for _, v := range m.vehicles {
		if filter.Brand != "" && v.String("marca") != filter.Brand {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func startStack(t *testing.T) (*httptest.Server, *memorySource) {
	source := &memorySource{vehicles: map[string]record.Vehicle{
		"mont-ltz": {
			"marca":        "Chevrolet",
			"modelo":       "Montana",
			"version":      "LTZ 1.2 Turbo",
			"precio_lista": 394900.0,
			"combustible":  "Gasolina",
		},
		"front-pro": {
			"marca":        "Nissan",
			"modelo":       "Frontier",
			"version":      "PRO-4X 2.5",
			"precio_lista": 414900.0,
			"combustible":  "Gasolina",
		},
	}}

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	log := logger.NewTestLogger(t)
	cached := catalog.NewCachedSource(source, cache, time.Minute, log)

	prices := cost.PriceTable{
		AsOf: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Prices: map[cost.Category]float64{
			cost.GasolineRegular: 23.94,
			cost.GasolinePremium: 25.81,
			cost.Diesel:          25.47,
			cost.BatteryElectric: 2.82,
		},
	}

	srv := server.New(
		config.ServerConfig{Address: ":0", MaxCompetitors: 10},
		benchmark.New(prices),
		cached,
		log,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, source
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return res
}

func TestEndToEnd_CompareFlow(t *testing.T) {
	ts, source := startStack(t)

	// Pull both vehicles from the catalog, as the dealer UI would.
	res, err := http.Get(ts.URL + "/v1/catalog/mont-ltz")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var own record.Vehicle
	require.NoError(t, json.NewDecoder(res.Body).Decode(&own))
	assert.Equal(t, "Montana", own.String("modelo"))

	competitor := source.vehicles["front-pro"]

	// Run the comparison.
	res = postJSON(t, ts.URL+"/v1/compare", map[string]interface{}{
		"own":         own,
		"competitors": []record.Vehicle{competitor},
	})
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var result benchmark.Result
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	require.Len(t, result.Competitors, 1)
	assert.Equal(t, 20000.0, result.Competitors[0].Deltas["msrp"])

	// The enriched own record still cleans back to its template shape.
	cleaned := record.CleanRow(result.Own)
	assert.Equal(t, "Montana", cleaned.String("modelo"))
	_, hasDerived := cleaned[record.KeyDerivedHorsepower]
	assert.False(t, hasDerived)
}

func TestEndToEnd_RadarAndNarrative(t *testing.T) {
	ts, source := startStack(t)

	payload := map[string]interface{}{
		"own":         source.vehicles["mont-ltz"],
		"competitors": []record.Vehicle{source.vehicles["front-pro"]},
	}

	res := postJSON(t, ts.URL+"/v1/radar", payload)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var radarReply struct {
		Samples []map[string]interface{} `json:"samples"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&radarReply))
	assert.Len(t, radarReply.Samples, 5)

	res = postJSON(t, ts.URL+"/v1/narrative/fallback", payload)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var narrativeReply struct {
		Sections []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
		} `json:"sections"`
		Generated bool `json:"generated"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&narrativeReply))
	assert.False(t, narrativeReply.Generated)
	require.Len(t, narrativeReply.Sections, 3)
	assert.Equal(t, "opening", narrativeReply.Sections[0].Key)
}

func TestEndToEnd_ValidationAndLimits(t *testing.T) {
	ts, _ := startStack(t)

	res := postJSON(t, ts.URL+"/v1/compare", map[string]interface{}{"competitors": []record.Vehicle{}})
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = postJSON(t, ts.URL+"/v1/compare", map[string]interface{}{"own": record.Vehicle{}})
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	many := make([]record.Vehicle, 11)
	for i := range many {
		many[i] = record.Vehicle{"marca": fmt.Sprintf("Marca%d", i)}
	}
	res = postJSON(t, ts.URL+"/v1/compare", map[string]interface{}{
		"own":         record.Vehicle{"marca": "GMC"},
		"competitors": many,
	})
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestEndToEnd_CacheServesRepeatLookups(t *testing.T) {
	ts, source := startStack(t)

	for i := 0; i < 3; i++ {
		res, err := http.Get(ts.URL + "/v1/catalog/front-pro")
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	// Removing the row from the backing source does not break cached reads.
	delete(source.vehicles, "front-pro")

	res, err := http.Get(ts.URL + "/v1/catalog/front-pro")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
