// internal/server/server.go
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dealer-benchmark/internal/benchmark"
	"dealer-benchmark/internal/catalog"
	"dealer-benchmark/internal/common/config"
	"dealer-benchmark/internal/common/logger"
	"dealer-benchmark/internal/common/observability"
)

// Server exposes the comparison engine and the catalog over HTTP.
type Server struct {
	cfg       config.ServerConfig
	engine    *benchmark.Engine
	source    catalog.Source
	generator Generator
	obs       *observability.Observability
	logger    logger.Logger
	router    *mux.Router
}

// Option tweaks optional server collaborators.
type Option func(*Server)

// WithGenerator attaches the external narrative generator. Without it, the
// narrative endpoint always serves the deterministic fallback.
func WithGenerator(g Generator) Option {
	return func(s *Server) { s.generator = g }
}

// WithObservability attaches the otel instruments to the request middleware.
func WithObservability(obs *observability.Observability) Option {
	return func(s *Server) { s.obs = obs }
}

// New wires the HTTP surface.
func New(cfg config.ServerConfig, engine *benchmark.Engine, source catalog.Source, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		source: source,
		logger: log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware, s.metricsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/compare", s.handleCompare).Methods(http.MethodPost)
	v1.HandleFunc("/radar", s.handleRadar).Methods(http.MethodPost)
	v1.HandleFunc("/narrative", s.handleNarrative).Methods(http.MethodPost)
	v1.HandleFunc("/narrative/fallback", s.handleNarrativeFallback).Methods(http.MethodPost)
	v1.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	v1.HandleFunc("/catalog/{id}", s.handleCatalogVehicle).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
