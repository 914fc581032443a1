package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/ui"
)

// Presenter implements orchestration.ResultPresenter for terminal output.
type Presenter struct{}

var _ orchestration.ResultPresenter = Presenter{}

// PresentComparisonTable prints one row per result. Padding is computed on
// the plain text so that color codes do not break the alignment.
func (Presenter) PresentComparisonTable(results []engine.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Algorithm"), len("Duration")
	for _, res := range results {
		nameW = max(nameW, len(res.Algorithm.String()))
		durW = max(durW, utf8.RuneCountInString(format.FormatExecutionDuration(res.Elapsed)))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameW-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		name := res.Algorithm.String()
		dur := format.FormatExecutionDuration(res.Elapsed)
		var status string
		if res.Success() {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s❌ Failure (%s)%s", ui.ColorRed(), res.ErrorMessage(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), name, ui.ColorReset(), pad(nameW-len(name)),
			ui.ColorYellow(), dur, ui.ColorReset(), pad(durW-utf8.RuneCountInString(dur)),
			status)
	}
}

// PresentResult prints a single successful result.
func (Presenter) PresentResult(res engine.Result, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(res, opts, out)
}

// HandleError prints err and maps it to an exit code.
func (Presenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleComputationError(err, duration, out, ui.ErrorColors{})
}

// QuietPresenter prints only the value of the fastest success.
type QuietPresenter struct{}

var _ orchestration.ResultPresenter = QuietPresenter{}

func (QuietPresenter) PresentComparisonTable([]engine.Result, io.Writer) {}

func (QuietPresenter) PresentResult(res engine.Result, _ orchestration.PresentationOptions, out io.Writer) {
	DisplayQuietResult(res, out)
}

func (QuietPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleComputationError(err, duration, out, apperrors.DefaultColorProvider{})
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
