package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibbench/internal/cli"
	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/ui"
)

// runCalculate computes F(n) with every selected algorithm through the
// worker and presents the outcome.
func (a *Application) runCalculate(ctx context.Context, c engine.Computer, store *history.Store, budget uint64, out io.Writer) int {
	algos, err := a.Config.Algorithms()
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Configuration error:", err)
		return apperrors.ExitErrorConfig
	}

	d := a.newDispatcher(c, store)
	d.Start(ctx)
	defer stopDispatcher(d)

	plain := a.Config.Quiet || a.Config.JSONOutput
	if !plain {
		cli.PrintExecutionConfig(a.Config, budget, out)
		cli.PrintExecutionMode(algos, out)
	}

	var reporter orchestration.ProgressReporter = cli.SpinnerReporter{}
	progressOut := out
	if plain {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	runner := orchestration.Timed(d, a.Config.Timeout)
	results, err := orchestration.RunAll(ctx, runner, a.Config.N, algos, reporter, progressOut)
	if err != nil {
		return a.handleDispatchError(err, results, out)
	}

	if a.Config.JSONOutput {
		return a.presentJSON(results, out)
	}

	var presenter orchestration.ResultPresenter = cli.Presenter{}
	if a.Config.Quiet {
		presenter = cli.QuietPresenter{}
	}
	opts := orchestration.PresentationOptions{
		N:       a.Config.N,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	code := orchestration.AnalyzeComparisonResults(results, opts, presenter, out)

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(collector.Snapshot().Since(before), out)
	}
	if code == apperrors.ExitSuccess && a.Config.ExportFile != "" {
		code = a.export(results, out)
	}
	return code
}

// handleDispatchError reports a request that got no result: a timeout, an
// interruption or a refused dispatch.
func (a *Application) handleDispatchError(err error, partial []engine.Result, out io.Writer) int {
	if !a.Config.Quiet && !a.Config.JSONOutput && len(partial) > 0 {
		cli.Presenter{}.PresentComparisonTable(partial, out)
		fmt.Fprintln(out)
	}
	var limit time.Duration
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: fmt.Sprintf("F(%d)", a.Config.N), Limit: a.Config.Timeout}
		limit = a.Config.Timeout
	}
	return apperrors.HandleComputationError(err, limit, out, ui.ErrorColors{})
}

func (a *Application) presentJSON(results []engine.Result, out io.Writer) int {
	if err := cli.DisplayJSON(results, out); err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		return apperrors.ExitErrorGeneric
	}
	if err := orchestration.CheckConsistency(results); err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		return apperrors.ExitErrorMismatch
	}
	for _, res := range results {
		if res.Success() {
			return apperrors.ExitSuccess
		}
	}
	return apperrors.ExitErrorGeneric
}

// export writes the fastest successful result to the --export path.
func (a *Application) export(results []engine.Result, out io.Writer) int {
	var best *engine.Result
	for i := range results {
		if results[i].Success() && (best == nil || results[i].Elapsed < best.Elapsed) {
			best = &results[i]
		}
	}
	if best == nil {
		return apperrors.ExitSuccess
	}
	entry, _ := history.EntryFromResult(*best, time.Now())
	path, err := history.ExportFile(a.Config.ExportFile, entry)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", apperrors.WrapError(err, "exporting F(%d)", best.N))
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		cli.DisplayExported(path, out)
	}
	return apperrors.ExitSuccess
}
