// Package api serves the scenario pipeline as an HTTP/JSON dashboard API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"

	"pes-mcp/internal/config"
	"pes-mcp/internal/simulation"
)

// Server holds the dependencies of the HTTP API.
type Server struct {
	engine  *simulation.Engine
	presets []config.Preset
	metrics *Metrics
	router  *chi.Mux
}

// NewServer builds the router. A nil registry gets a fresh one.
func NewServer(engine *simulation.Engine, presets []config.Preset, reg *prometheus.Registry) *Server {
	if len(presets) == 0 {
		presets = []config.Preset{config.Baseline()}
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		engine:  engine,
		presets: presets,
		metrics: NewMetrics(reg),
		router:  chi.NewRouter(),
	}
	s.mountRoutes()
	return s
}

// Handler returns the gzip-wrapped router.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

func (s *Server) mountRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger)
	s.router.Use(s.metrics.Middleware)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dataset", s.handleDataset)
		r.Get("/presets", s.handlePresets)
		r.Post("/scenarios/run", s.handleRunScenario)
		r.Get("/scenarios/{preset}", s.handleRunPreset)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, newError(http.StatusNotFound, "not_found", "no route for "+r.URL.Path))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, newError(http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path))
	})
}
