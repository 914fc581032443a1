// Package server exposes the single worker over HTTP. Every computation goes
// through the same dispatcher as the other front ends, so a second request
// arriving while one is in flight is refused with 409 Conflict.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/orchestration"
)

// Runner is the part of the dispatcher the server uses.
type Runner interface {
	orchestration.Runner
	Busy() bool
}

// Server is the HTTP front end.
type Server struct {
	runner         Runner
	store          *history.Store
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a server listening on addr (":8080" form). store may be
// nil, in which case /history answers with an empty list.
func NewServer(runner Runner, store *history.Store, addr string, opts ...Option) *Server {
	s := &Server{
		runner:         runner,
		store:          store,
		logger:         logging.Component("server"),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/compute", s.wrapWithMiddleware(s.handleCompute))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware(s.handleAlgorithms))
	mux.HandleFunc("/history", s.wrapWithMiddleware(s.handleHistory))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
		ErrorLog:     s.stdLogger(),
	}
	return s
}

// Handler returns the routed handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Order: Security -> RateLimit -> Logging -> Metrics -> Handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

func (s *Server) stdLogger() *log.Logger {
	if z, ok := s.logger.(*logging.ZerologAdapter); ok {
		return z.StdLogger()
	}
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully within
// the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to gracefully shutdown server: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
