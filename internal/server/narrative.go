// internal/server/narrative.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dealer-benchmark/internal/benchmark/narrative"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/common/config"
)

// Generator produces the sales narrative for a comparison. The external
// model-backed service implements it; when it fails, the handler falls back
// to the deterministic script.
type Generator interface {
	Generate(ctx context.Context, own record.Vehicle, competitors []record.Vehicle) ([]narrative.Section, error)
}

// HTTPGenerator calls the external narrative service.
type HTTPGenerator struct {
	url    string
	client *http.Client
}

// NewHTTPGenerator creates a generator for the configured narrative service.
func NewHTTPGenerator(cfg config.NarrativeConfig) *HTTPGenerator {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGenerator{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

type narrativeRequest struct {
	Own         record.Vehicle   `json:"own"`
	Competitors []record.Vehicle `json:"competitors"`
}

type narrativeResponse struct {
	Sections []narrative.Section `json:"sections"`
}

// Generate posts the vehicles to the narrative service and returns its
// sections. Any transport or decode failure is returned to the caller.
func (g *HTTPGenerator) Generate(ctx context.Context, own record.Vehicle, competitors []record.Vehicle) ([]narrative.Section, error) {
	payload, err := json.Marshal(narrativeRequest{Own: own, Competitors: competitors})
	if err != nil {
		return nil, fmt.Errorf("encode narrative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build narrative request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call narrative service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("narrative service returned %s", res.Status)
	}

	var parsed narrativeResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode narrative response: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("narrative service returned no sections")
	}
	return parsed.Sections, nil
}
