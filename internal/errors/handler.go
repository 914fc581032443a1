package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// ColorProvider supplies terminal color codes. It keeps this package free
// of a dependency on the ui package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleComputationError prints a status line for err and returns the exit
// code. Timeouts and cancellations are distinguished from failures reported
// by the engine.
func HandleComputationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The worker did not answer in time%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, fibonacci.ErrInputTooLarge):
		fmt.Fprintf(out, "%sStatus: Refused.%s %v\n", colors.Yellow(), colors.Reset(), err)
		return ExitErrorGeneric
	}
	fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}
