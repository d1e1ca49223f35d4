// Package server exposes a dataset's force-directed graph over HTTP.
//
// The graph endpoint rebuilds the graph from the dataset on every request:
// a graph is a per-request construction artifact, serialized once and
// discarded, never shared mutable state. The package also serves a small
// embedded viewer page that renders the graph with a browser-side
// force-directed engine.
package server

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skein-dev/skein/internal/dataset"
	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/forcegraph"
)

//go:embed viewer.html
var viewerHTML []byte

// Server serves a dataset's graph and viewer.
type Server struct {
	ds     *dataset.Dataset
	logger *log.Logger
}

// New creates a server for the given dataset.
func New(ds *dataset.Dataset, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{ds: ds, logger: logger}
}

// Handler builds the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/graph/flat", s.handleGraphFlat)
		r.Get("/focus", s.handleFocus)
	})
	r.Get("/", s.handleViewer)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGraph serves the two-level wire shape: nodes and edges keyed by
// variant, then id.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.ds.BuildGraph()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// handleGraphFlat serves the flattened nodes/links lists most renderers
// consume directly.
func (s *Server) handleGraphFlat(w http.ResponseWriter, r *http.Request) {
	g, err := s.ds.BuildGraph()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, forcegraph.Flatten(g))
}

// handleFocus serves the initial zoom target, or 204 when the dataset
// declares none.
func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ds.FocusID()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(viewerHTML)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.Error("build graph", "err", err)
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrCodeInvalidDataset) {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
