// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string and perform no I/O.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/ui"
)

// FormatValue returns the value as displayed: the full number with thousand
// separators when verbose, otherwise shortened above TruncationLimit digits.
func FormatValue(value string, verbose bool) (string, bool) {
	if verbose {
		return format.FormatNumberString(value), false
	}
	if out, truncated := format.Truncate(value, TruncationLimit, DisplayEdges); truncated {
		return out, true
	}
	return format.FormatNumberString(value), false
}

// DisplayResult prints a successful result: its size, optionally a detailed
// analysis, then the value.
func DisplayResult(res engine.Result, opts orchestration.PresentationOptions, out io.Writer) {
	v, ok := new(big.Int).SetString(res.Value, 10)
	if !ok {
		fmt.Fprintf(out, "%sMalformed value for F(%d).%s\n", ui.ColorRed(), res.N, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "Result binary size: %s%s%s bits.\n", ui.ColorCyan(), format.FormatUint(uint64(v.BitLen())), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Algorithm             : %s%s%s\n", ui.ColorBlue(), res.Algorithm.Description(), ui.ColorReset())
		fmt.Fprintf(out, "Computation time      : %s%s%s (%s)\n", ui.ColorGreen(), format.FormatExecutionDuration(res.Elapsed), ui.ColorReset(), format.FormatMillis(res.ElapsedMillis()))
		fmt.Fprintf(out, "Number of digits      : %s%s%s\n", ui.ColorCyan(), format.FormatUint(uint64(res.Digits())), ui.ColorReset())
		if res.Digits() > 6 {
			f := new(big.Float).SetInt(v)
			fmt.Fprintf(out, "Scientific notation   : %s%.6e%s\n", ui.ColorCyan(), f, ui.ColorReset())
		}
		est := fibonacci.EstimateMemory(res.N, res.Algorithm)
		fmt.Fprintf(out, "Estimated memory      : %s%s%s\n", ui.ColorCyan(), fibonacci.FormatBytes(est.TotalBytes), ui.ColorReset())
	}

	fmt.Fprintf(out, "\n%s--- Computed value ---%s\n", ui.ColorBold(), ui.ColorReset())
	shown, truncated := FormatValue(res.Value, opts.Verbose)
	if truncated {
		fmt.Fprintf(out, "F(%s%d%s) (truncated) = %s%s%s\n", ui.ColorMagenta(), res.N, ui.ColorReset(), ui.ColorGreen(), shown, ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use %s-v%s or %s--verbose%s to display the full value)\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n", ui.ColorMagenta(), res.N, ui.ColorReset(), ui.ColorGreen(), shown, ui.ColorReset())
}

// DisplayQuietResult prints only the value, or the error for a failure.
func DisplayQuietResult(res engine.Result, out io.Writer) {
	if res.Success() {
		fmt.Fprintln(out, res.Value)
		return
	}
	fmt.Fprintf(out, "error: %s\n", res.ErrorMessage())
}

// DisplayJSON writes one response message per result, one per line.
func DisplayJSON(results []engine.Result, out io.Writer) error {
	enc := json.NewEncoder(out)
	for _, res := range results {
		if err := enc.Encode(engine.NewResponseMessage(res)); err != nil {
			return err
		}
	}
	return nil
}

// DisplayMemoryStats shows what the process allocated during the run.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", fibonacci.FormatBytes(d.PeakHeap))
	fmt.Fprintf(out, "  Allocated:       %s\n", fibonacci.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.PauseNs)/1e6)
}

// DisplayExported confirms that a result was written to path.
func DisplayExported(path string, out io.Writer) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
