// Package server provides the HTTP API for Stödlotsen.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/config"
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/metrics"
	"github.com/hyperjump/stodlotsen/internal/search"
)

// Catalog is the catalog holder the API reads from and reloads.
type Catalog interface {
	catalog.Source
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}

// Server is the HTTP server for the Stödlotsen API.
type Server struct {
	engine  *search.Engine
	catalog Catalog
	checker *freshness.Checker
	mcp     http.Handler
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. mcpHandler is
// mounted at /mcp when non-nil.
func NewServer(
	engine *search.Engine,
	cat Catalog,
	checker *freshness.Checker,
	mcpHandler http.Handler,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	if checker == nil {
		checker = freshness.NewChecker(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:  engine,
		catalog: cat,
		checker: checker,
		mcp:     mcpHandler,
		config:  cfg,
		logger:  logger,
	}
}

// Router returns the HTTP routes with middleware applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(middleware.Compress(5))

		r.Post("/search", s.handleSearch)
		r.Get("/records", s.handleListRecords)
		r.Get("/records/{id}", s.handleGetRecord)
		r.Get("/stats", s.handleStats)
		r.Post("/catalog/reload", s.handleReload)
	})
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if s.mcp != nil {
		r.Handle("/mcp", s.mcp)
	}
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
