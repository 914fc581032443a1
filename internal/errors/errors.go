package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // A computation failed or an unexpected error occurred.
	ExitErrorTimeout  = 2   // The host stopped waiting for the worker.
	ExitErrorMismatch = 3   // Algorithms disagreed on the value of F(n).
	ExitErrorConfig   = 4   // Invalid flags, environment or input.
	ExitErrorCanceled = 130 // Interrupted by SIGINT/SIGTERM.
)

// ConfigError reports invalid user configuration.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ComputationError attaches the request coordinates to a failed computation
// while keeping the engine's error reachable through Unwrap.
type ComputationError struct {
	Algorithm fibonacci.Algorithm
	N         uint64
	Cause     error
}

func (e ComputationError) Error() string {
	return fmt.Sprintf("%s F(%d): %v", e.Algorithm, e.N, e.Cause)
}

func (e ComputationError) Unwrap() error { return e.Cause }

// TimeoutError reports that the host gave up waiting after Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) match.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError adds context to err with %w, returning nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
