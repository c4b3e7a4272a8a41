package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Bool("explain", query.Explain))
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := searchResponseView{
		SearchID:   response.SearchID,
		Query:      response.Query,
		Language:   response.Language,
		Total:      response.Total,
		Shown:      response.Shown(),
		Results:    make([]recordView, 0, response.Shown()),
		QueryTime:  response.QueryTime,
		DidYouMean: response.Suggestion,
	}
	for _, h := range response.Hits {
		v := s.summary(h.Record, response.Language)
		v.Score = h.Score
		v.Breakdown = h.Breakdown
		view.Results = append(view.Results, v)
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	lang := catalog.ResolveLanguage(r.URL.Query().Get("lang"))
	audience := search.CanonicalAudience(r.URL.Query().Get("audience"))

	records := search.Filter{Audience: audience}.Apply(snap.Records())
	view := listResponseView{
		Total:    len(records),
		Audience: audience,
		Records:  make([]recordView, 0, len(records)),
	}
	for _, rec := range records {
		view.Records = append(view.Records, s.summary(rec, lang))
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	rec, err := snap.Lookup(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.detail(rec, catalog.ResolveLanguage(r.URL.Query().Get("lang"))))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, catalog.ComputeStats(snap.Records(), s.checker))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.catalog.Reload(r.Context())
	if err != nil {
		s.logger.Error("catalog reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "reloaded",
		"source":      snap.Source(),
		"records":     snap.Len(),
		"fingerprint": snap.Fingerprint(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.catalog.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"source":      snap.Source(),
		"records":     snap.Len(),
		"fingerprint": snap.Fingerprint(),
	})
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*catalog.Snapshot, bool) {
	snap, err := s.catalog.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return nil, false
	}
	return snap, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
