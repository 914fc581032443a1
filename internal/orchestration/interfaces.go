package orchestration

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"io"
	"time"

	"github.com/agbru/fibbench/internal/engine"
)

// ResultSink receives every result the worker produces, in order, before the
// waiting caller does. The history store is the production implementation.
type ResultSink interface {
	Record(res engine.Result) error
}

// Runner dispatches one request and waits for its result.
type Runner interface {
	Dispatch(ctx context.Context, req engine.Request) (engine.Result, error)
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N       uint64
	Verbose bool
	Details bool
}

// ProgressReporter shows that a computation is outstanding. Begin is called
// right before a request is dispatched and the returned function once its
// result (or an error) is back.
type ProgressReporter interface {
	Begin(req engine.Request, out io.Writer) (end func())
}

// NullProgressReporter shows nothing. Used in quiet mode and tests.
type NullProgressReporter struct{}

// Begin returns a no-op.
func (NullProgressReporter) Begin(engine.Request, io.Writer) func() { return func() {} }

// ResultPresenter renders results. It decouples the comparison logic from
// terminal formatting.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per algorithm.
	PresentComparisonTable(results []engine.Result, out io.Writer)

	// PresentResult displays a single successful result.
	PresentResult(res engine.Result, opts PresentationOptions, out io.Writer)

	// HandleError prints err and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
