package server

import (
	"time"

	"github.com/agbru/fibbench/internal/logging"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default "server" component logger. nil is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequestTimeout sets how long /compute waits for the worker.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeouts.RequestTimeout = d
		}
	}
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

// WithSecurityConfig replaces the default security configuration.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxN sets the largest n accepted by /compute.
func WithMaxN(maxN uint64) Option {
	return func(s *Server) {
		s.securityConfig.MaxNValue = maxN
	}
}

// Timeouts holds the HTTP server timeouts.
type Timeouts struct {
	// RequestTimeout bounds the wait for one result.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns the defaults. WriteTimeout exceeds
// RequestTimeout so that a timed-out request still gets its answer.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
