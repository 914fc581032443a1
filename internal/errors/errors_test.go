package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("invalid value %d for flag %s", -1, "--history-size")
	if err.Error() != "invalid value -1 for flag --history-size" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestComputationError(t *testing.T) {
	t.Parallel()

	cause := &fibonacci.InputTooLargeError{Algorithm: fibonacci.Recursive, N: 41, Limit: 40}
	err := ComputationError{Algorithm: fibonacci.Recursive, N: 41, Cause: cause}

	if !strings.HasPrefix(err.Error(), "recursive F(41): ") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, fibonacci.ErrInputTooLarge) {
		t.Error("errors.Is should find ErrInputTooLarge in the chain")
	}
	if err.Unwrap() != error(cause) {
		t.Error("Unwrap should return the original cause")
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	err := TimeoutError{Operation: "compute", Limit: 30 * time.Second}
	if err.Error() != `operation "compute" timed out after 30s` {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	var err error = ValidationError{Field: "n", Message: "must be a non-negative integer"}
	if err.Error() != `validation error for "n": must be a non-negative integer` {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("disk full")
	err := WrapError(base, "saving history to %s", "/tmp/h.json")
	if err.Error() != "saving history to /tmp/h.json: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match its cause")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("waiting: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout", TimeoutError{Operation: "x", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), ExitErrorCanceled},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "n"}, ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleComputationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		duration time.Duration
		wantCode int
		contains string
	}{
		{"nil", nil, 0, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, time.Second, ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, 0, ExitErrorCanceled, "Canceled"},
		{"refused", &fibonacci.InputTooLargeError{Algorithm: fibonacci.Recursive, N: 50, Limit: 40}, 0, ExitErrorGeneric, "Refused"},
		{"failure", errors.New("out of memory"), 0, ExitErrorGeneric, "out of memory"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleComputationError(tt.err, tt.duration, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}
