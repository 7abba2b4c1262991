// Package server exposes the explorer over HTTP: the static assets at "/"
// and a small JSON API under /api/ that drives the analysis, glossary,
// tooltip, builder and table views.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/config"
)

// Server is the HTTP front of an App.
type Server struct {
	cfg    config.ServerConfig
	http   *http.Server
	logger *slog.Logger
}

// New creates a server for app. Rate limiting follows rl.
func New(cfg config.ServerConfig, rl config.RateLimitConfig, app *App) *Server {
	var limiter *sarf.RateLimiter
	if rl.Enabled {
		limiter = sarf.NewRateLimiter(sarf.RateLimitConfig{
			RequestsPerMinute: rl.RequestsPerMinute,
			BurstSize:         rl.Burst,
		})
	}

	return &Server{
		cfg:    cfg,
		logger: app.Logger,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      app.Handler(limiter, rl.RequestsPerMinute),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run listens until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
