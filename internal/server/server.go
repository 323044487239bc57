// Package server exposes generation runs over HTTP.
//
// The server triggers runs, archives them in a store, and serves the
// resulting diagram text and rendered artifacts:
//
//	POST /api/runs                          trigger a run, archive and return it
//	GET  /api/runs                          list archived runs, newest first
//	GET  /api/runs/{id}                     fetch one run with its diagram text
//	GET  /api/runs/{id}/diagrams/{key}      fetch one diagram's text
//	GET  /api/runs/{id}/diagrams/{key}/svg  render one diagram on demand
//	GET  /healthz                           liveness probe
//
// Runs triggered over HTTP always stay in memory; rendering happens on
// demand per diagram so the archive stores text only.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/archmap/archmap/pkg/generator"
	"github.com/archmap/archmap/pkg/render"
	"github.com/archmap/archmap/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address. Empty selects ":8080".
	Addr string

	// Generator runs the aggregation pipeline. Required.
	Generator *generator.Generator

	// Store archives runs. nil selects an in-memory store.
	Store store.Store

	// Renderer produces artifacts for the on-demand render endpoint.
	// nil disables that endpoint.
	Renderer render.Renderer

	// Roots are the default source roots for runs that don't name any.
	Roots []string

	// Logger receives request and handler logs. nil selects the default.
	Logger *log.Logger
}

// Server is the HTTP API around the generator and the run archive.
type Server struct {
	generator *generator.Generator
	store     store.Store
	renderer  render.Renderer
	roots     []string
	logger    *log.Logger
	http      *http.Server
}

// New creates a server with its routes mounted.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		generator: opts.Generator,
		store:     opts.Store,
		renderer:  opts.Renderer,
		roots:     opts.Roots,
		logger:    opts.Logger,
	}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// routes mounts middleware and handlers.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID())
	r.Use(recoverPanics(s.logger))
	r.Use(logRequests(s.logger))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/runs", s.handleCreateRun)
		r.Get("/runs", s.handleListRuns)
		r.Route("/runs/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetRun)
			r.Get("/diagrams/{key}", s.handleGetDiagram)
			r.Get("/diagrams/{key}/svg", s.handleRenderDiagram)
		})
	})
	return r
}

// Handler returns the mounted routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start listens and serves until Shutdown or failure.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
