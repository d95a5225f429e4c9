// CLAUDE:SUMMARY HTTP surface: extraction and run history endpoints on a chi router.

// Package httpapi exposes the extractor over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/papersec/kit"
	"github.com/hazyhaar/papersec/papersec"
	"github.com/hazyhaar/papersec/runlog"
)

// Server handles extraction requests.
type Server struct {
	extractor *papersec.Extractor
	runs      *runlog.Store // optional
	logger    *slog.Logger
}

// New returns a Server. runs may be nil to disable run history.
func New(extractor *papersec.Extractor, runs *runlog.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{extractor: extractor, runs: runs, logger: logger}
}

// Router builds the HTTP router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestContext)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/extract", s.handleExtract)
	r.Get("/v1/runs", s.handleRuns)
	return r
}

// requestContext carries the chi request ID into the endpoint context.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = kit.WithRequestID(ctx, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExtractRequest is the body for POST /v1/extract.
type ExtractRequest struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.extractor.Extract(r.Context(), req.Markdown)
	if err != nil {
		if errors.Is(err, papersec.ErrEmptyDocument) {
			http.Error(w, "markdown required", http.StatusBadRequest)
			return
		}
		s.logger.Error("extraction failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("extraction served",
		"request_id", kit.GetRequestID(r.Context()),
		"sections", len(result.Sections),
		"escalated", result.Escalated)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		http.Error(w, "run log disabled", http.StatusNotFound)
		return
	}
	records, err := s.runs.Recent(r.Context(), 50)
	if err != nil {
		s.logger.Error("run history query failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []runlog.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
