package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/matsen/confnet/internal/dashboard"
	"github.com/matsen/confnet/internal/record"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

// flagsFromQuery reads display flags from either repeated options= labels
// (the dashboard checklist) or the remove_sandy/remove_posters booleans.
func flagsFromQuery(q url.Values) (record.Flags, error) {
	if opts, ok := q["options"]; ok {
		return record.FlagsFromOptions(opts), nil
	}

	flags := record.DefaultFlags()
	for key, dst := range map[string]*bool{
		"remove_sandy":   &flags.IncludeNamedIndividual,
		"remove_posters": &flags.IncludePosters,
	} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		remove, err := strconv.ParseBool(raw)
		if err != nil {
			return flags, fmt.Errorf("%s: expected a boolean, got %q", key, raw)
		}
		*dst = !remove
	}
	return flags, nil
}

// render snapshots the current dataset and builds a model for r's flags.
func (s *Server) render(r *http.Request) (*dashboard.Model, int, error) {
	flags, err := flagsFromQuery(r.URL.Query())
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	start := time.Now()
	model, err := dashboard.Render(s.source.Dataset(), flags, s.opts.Render)
	if err != nil {
		return nil, http.StatusServiceUnavailable, err
	}
	s.metrics.ObserveRender(flags, time.Since(start))
	return model, http.StatusOK, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	model, status, err := s.render(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	page := s.opts.Page
	page.Live = true
	html, err := model.HTML(page)
	if err != nil {
		s.logger.Error("Rendering dashboard page failed",
			zap.String("requestID", GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "rendering dashboard page failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	model, status, err := s.render(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// PeoplePapersResponse lists the records one participant appears on.
type PeoplePapersResponse struct {
	Name   string          `json:"name"`
	Papers []record.Record `json:"papers"`
}

func (s *Server) handlePeoplePapers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.index == nil {
		writeError(w, http.StatusServiceUnavailable, "paper index not available")
		return
	}

	papers, err := s.index.PapersByParticipant(name)
	if err != nil {
		s.logger.Error("Paper lookup failed",
			zap.String("name", name),
			zap.String("requestID", GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "paper lookup failed")
		return
	}
	if len(papers) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no papers for %q", name))
		return
	}
	writeJSON(w, http.StatusOK, PeoplePapersResponse{Name: name, Papers: papers})
}

// HealthResponse reports the loaded dataset.
type HealthResponse struct {
	Status   string    `json:"status"`
	Records  int       `json:"records"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.source.Dataset()
	if ds == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "no dataset"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Records:  ds.Len(),
		Source:   ds.Source(),
		LoadedAt: ds.LoadedAt(),
	})
}
