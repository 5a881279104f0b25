// Package server exposes audits over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness probe
//	GET  /v1/catalog              categories with their packages
//	GET  /v1/catalog/{category}   one category
//	GET  /v1/history?limit=N      recorded audits, most recent first
//	POST /v1/audit                audit a manifest (and optional tree)
//
// The server never runs npm: clients send the manifest and, for a full
// audit, the `npm ls --json --all` output in the request body.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sillydeps/pkg/pipeline"
)

// MaxBodyBytes bounds POST /v1/audit bodies. npm trees of large monorepos
// run to a few megabytes.
const MaxBodyBytes = 32 << 20

// Server serves the HTTP API for one runner.
type Server struct {
	runner     *pipeline.Runner
	logger     *log.Logger
	httpServer *http.Server
}

// New creates a server listening on addr.
func New(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("API server stopped")
	return <-errc
}
