// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api provides the HTTP surface that serves the skwatch settings
// document to the host and validates documents and submissions.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/ManuGH/skwatch/internal/config"
	"github.com/ManuGH/skwatch/internal/document"
	"github.com/ManuGH/skwatch/internal/health"
	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/version"
)

// Server represents the HTTP API server for skwatch.
type Server struct {
	cfg     config.APIConfig
	service string
	holder  *document.Holder
	health  *health.Manager
	handler http.Handler

	started atomic.Bool
}

// Option configures a Server.
type Option func(*Server)

// WithTracing enables otelhttp server spans under serviceName.
func WithTracing(serviceName string) Option {
	return func(s *Server) { s.service = serviceName }
}

// New creates a server that serves the document held by holder.
func New(cfg config.APIConfig, holder *document.Holder, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		holder: holder,
		health: health.NewManager(version.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.health.RegisterChecker(health.NewDocumentChecker(func() (uint64, error) {
		return holder.Get().Revision, holder.LastError()
	}))
	if path := holder.Get().Path; path != "" {
		s.health.RegisterChecker(health.NewFileChecker("document_file", path))
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("server already started")
	}
	logger := xglog.WithComponent("api")

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str(xglog.FieldEvent, "server.listening").
			Str(xglog.FieldListenAddr, ln.Addr().String()).
			Msg("HTTP server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Str(xglog.FieldEvent, "server.shutdown").Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}
