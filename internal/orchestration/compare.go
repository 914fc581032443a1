package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// suffixCheckDigits is how many trailing digits of each success are checked
// against the modular computation of F(n).
const suffixCheckDigits = 18

// RunAll dispatches F(n) once per algorithm, sequentially, and returns the
// results in the order given. It stops at the first dispatch error (timeout,
// cancellation, busy) and returns the results gathered so far with it.
func RunAll(ctx context.Context, r Runner, n uint64, algos []fibonacci.Algorithm, reporter ProgressReporter, out io.Writer) ([]engine.Result, error) {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	results := make([]engine.Result, 0, len(algos))
	for _, algo := range algos {
		req := engine.Request{N: n, Algorithm: algo}
		end := reporter.Begin(req, out)
		res, err := r.Dispatch(ctx, req)
		end()
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Timed returns a Runner that bounds every Dispatch of r by timeout.
// A non-positive timeout returns r unchanged.
func Timed(r Runner, timeout time.Duration) Runner {
	if timeout <= 0 {
		return r
	}
	return timedRunner{r: r, timeout: timeout}
}

type timedRunner struct {
	r       Runner
	timeout time.Duration
}

func (t timedRunner) Dispatch(ctx context.Context, req engine.Request) (engine.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.r.Dispatch(ctx, req)
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents them and checks that every success holds the same value with the
// expected trailing digits. It returns the process exit code.
func AnalyzeComparisonResults(results []engine.Result, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Success() != results[j].Success() {
			return results[i].Success()
		}
		return results[i].Elapsed < results[j].Elapsed
	})

	var firstValid *engine.Result
	var firstFailure *engine.Result
	for i := range results {
		if results[i].Success() {
			if firstValid == nil {
				firstValid = &results[i]
			}
		} else if firstFailure == nil {
			firstFailure = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if firstValid == nil {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the computation.\n")
		}
		if firstFailure == nil {
			return apperrors.ExitErrorGeneric
		}
		err := apperrors.ComputationError{Algorithm: firstFailure.Algorithm, N: firstFailure.N, Cause: firstFailure.Err}
		return presenter.HandleError(err, firstFailure.Elapsed, out)
	}

	if err := CheckConsistency(results); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", err)
		return apperrors.ExitErrorMismatch
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// CheckConsistency verifies that all successful results carry the same value
// and that this value ends with the digits of F(n) mod 10^k.
func CheckConsistency(results []engine.Result) error {
	var ref *engine.Result
	for i := range results {
		res := &results[i]
		if !res.Success() {
			continue
		}
		if ref == nil {
			ref = res
			if err := fibonacci.VerifySuffix(res.N, res.Value, suffixCheckDigits); err != nil {
				return fmt.Errorf("%s produced a wrong value: %w", res.Algorithm, err)
			}
			continue
		}
		if res.Value != ref.Value {
			return fmt.Errorf("%s and %s disagree on F(%d)", ref.Algorithm, res.Algorithm, res.N)
		}
	}
	return nil
}
