// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness and build version
//	POST /v1/layout                  lay out a JSON scene (?format=json|svg|dot, ?refresh=true)
//	GET  /v1/layouts/{runID}         fetch a stored layout
//	POST /v1/partition/{regionID}    free-space partition of one region of a JSON scene
//
// Requests may carry an X-Tenant header; cache keys are then scoped to that
// tenant.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/store"
)

// Defaults for Config.
const (
	DefaultMaxBodyBytes   = 4 << 20
	DefaultRequestTimeout = 2 * time.Minute
	DefaultMaxIterations  = 20000
)

// TenantHeader selects the cache namespace of a request.
const TenantHeader = "X-Tenant"

// Config configures a Server.
type Config struct {
	Runner         *pipeline.Runner
	Store          store.Store // nil uses an in-memory store
	Logger         *log.Logger
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	MaxIterations  int // scenes asking for more iterations are rejected
}

// Server is the HTTP front end of the pipeline.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	maxIter int
}

// New builds a Server. The store is registered as a sink on the runner.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	cfg.Runner.Sinks = append(cfg.Runner.Sinks, cfg.Store)
	return &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
		timeout: cfg.RequestTimeout,
		maxIter: cfg.MaxIterations,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Post("/layout", s.handleLayout)
		r.Get("/layouts/{runID}", s.handleGetLayout)
		r.Post("/partition/{regionID}", s.handlePartition)
	})
	return r
}

// runnerFor returns the runner for a request, scoped to its tenant.
func (s *Server) runnerFor(r *http.Request) *pipeline.Runner {
	tenant := r.Header.Get(TenantHeader)
	if tenant == "" {
		return s.runner
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "tenant:"+tenant+":")
	return &scoped
}
