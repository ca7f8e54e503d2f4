package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/common/config"
)

func TestHTTPGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req narrativeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Chevrolet", req.Own.String("marca"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sections": []map[string]interface{}{
				{"key": "opening", "title": "Apertura", "items": []interface{}{}},
			},
		})
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(config.NarrativeConfig{URL: srv.URL, Timeout: 2000, Enabled: true})

	sections, err := gen.Generate(context.Background(),
		record.Vehicle{"marca": "Chevrolet"}, []record.Vehicle{{"marca": "Nissan"}})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Apertura", sections[0].Title)
}

func TestHTTPGenerator_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(config.NarrativeConfig{URL: srv.URL, Timeout: 2000})

	_, err := gen.Generate(context.Background(), record.Vehicle{"marca": "GMC"}, nil)
	assert.Error(t, err)
}

func TestHTTPGenerator_EmptySectionsIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"sections": []interface{}{}})
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(config.NarrativeConfig{URL: srv.URL, Timeout: 2000})

	_, err := gen.Generate(context.Background(), record.Vehicle{"marca": "GMC"}, nil)
	assert.Error(t, err)
}

func TestHTTPGenerator_ServiceDown(t *testing.T) {
	gen := NewHTTPGenerator(config.NarrativeConfig{URL: "http://127.0.0.1:1", Timeout: 500})

	_, err := gen.Generate(context.Background(), record.Vehicle{"marca": "GMC"}, nil)
	assert.Error(t, err)
}
