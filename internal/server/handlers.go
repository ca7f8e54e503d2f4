// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"dealer-benchmark/internal/benchmark/narrative"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/catalog"
	"dealer-benchmark/internal/common/errors"
	"dealer-benchmark/internal/common/metrics"
	"dealer-benchmark/internal/common/validation"

	"github.com/gorilla/mux"
)

type compareRequest struct {
	Own         record.Vehicle   `json:"own"`
	Competitors []record.Vehicle `json:"competitors"`
}

// readCompareRequest validates and decodes the shared compare/radar payload.
func (s *Server) readCompareRequest(w http.ResponseWriter, r *http.Request) (*compareRequest, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, errors.NewValidationError("unreadable request body"))
		return nil, false
	}

	if err := validation.ValidateCompareRequest(body); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return nil, false
	}

	var req compareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return nil, false
	}

	if len(req.Own) == 0 {
		s.writeError(w, errors.NewBaseVehicleMissingError())
		return nil, false
	}
	if limit := s.cfg.MaxCompetitors; limit > 0 && len(req.Competitors) > limit {
		s.writeError(w, errors.NewTooManyCompetitorsError(len(req.Competitors), limit))
		return nil, false
	}

	return &req, true
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readCompareRequest(w, r)
	if !ok {
		metrics.ComparisonsTotal.WithLabelValues("rejected").Inc()
		return
	}

	result := s.engine.Compare(req.Own, req.Competitors)

	metrics.ComparisonsTotal.WithLabelValues("success").Inc()
	metrics.CompetitorsPerComparison.Observe(float64(len(req.Competitors)))

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readCompareRequest(w, r)
	if !ok {
		return
	}

	samples := s.engine.BuildRadar(req.Own, req.Competitors)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"samples": samples})
}

type narrativeReply struct {
	Sections  []narrative.Section `json:"sections"`
	Generated bool                `json:"generated"`
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, errors.NewValidationError("unreadable request body"))
		return
	}
	if err := validation.ValidateNarrativeRequest(body); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	var req compareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	if s.generator != nil {
		sections, genErr := s.generator.Generate(r.Context(), req.Own, req.Competitors)
		if genErr == nil {
			s.writeJSON(w, http.StatusOK, narrativeReply{Sections: sections, Generated: true})
			return
		}
		s.logger.WithError(genErr).Warn("Narrative generation failed, serving fallback", nil)
		metrics.NarrativeFallbacksTotal.Inc()
	}

	sections := s.engine.BuildFallback(req.Own, req.Competitors)
	s.writeJSON(w, http.StatusOK, narrativeReply{Sections: sections, Generated: false})
}

// handleNarrativeFallback always serves the deterministic script, bypassing
// the external generator.
func (s *Server) handleNarrativeFallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, errors.NewValidationError("unreadable request body"))
		return
	}
	if err := validation.ValidateNarrativeRequest(body); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	var req compareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	sections := s.engine.BuildFallback(req.Own, req.Competitors)
	s.writeJSON(w, http.StatusOK, narrativeReply{Sections: sections, Generated: false})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Brand:   q.Get("brand"),
		Model:   q.Get("model"),
		Segment: q.Get("segment"),
		Query:   q.Get("q"),
	}
	if raw := q.Get("year"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.ModelYear = n
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = n
		}
	}

	vehicles, err := s.source.List(r.Context(), filter)
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []record.Vehicle{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

func (s *Server) handleCatalogVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	v, err := s.source.Get(r.Context(), id)
	if stderrors.Is(err, catalog.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error": map[string]interface{}{"message": "vehicle not found", "id": id},
		})
		return
	}
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) {
		s.writeError(w, errors.NewCatalogTimeoutError())
		return
	}
	s.writeError(w, errors.NewCatalogQueryError(err.Error()))
}

func (s *Server) writeError(w http.ResponseWriter, stdErr *errors.StandardError) {
	s.writeJSON(w, stdErr.HTTPStatus(), map[string]interface{}{"error": stdErr})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response", nil)
	}
}
