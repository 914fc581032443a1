package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/sysmon"
	"github.com/agbru/fibbench/internal/ui"
)

// PrintExecutionConfig displays the target, the limits and the environment.
func PrintExecutionConfig(cfg config.AppConfig, memoryBudget uint64, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	budget := "none"
	if memoryBudget > 0 {
		budget = fibonacci.FormatBytes(memoryBudget)
	}
	fmt.Fprintf(out, "Limits: recursion up to n=%s%d%s, memory budget %s%s%s.\n",
		ui.ColorCyan(), cfg.RecursionLimit, ui.ColorReset(), ui.ColorCyan(), budget, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, CPU features: %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), sysmon.CPUFeatures(), ui.ColorReset())
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(algos []fibonacci.Algorithm, out io.Writer) {
	var modeDesc string
	if len(algos) > 1 {
		names := make([]string, len(algos))
		for i, a := range algos {
			names[i] = a.String()
		}
		modeDesc = fmt.Sprintf("Sequential comparison of %s", strings.Join(names, ", "))
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s algorithm",
			ui.ColorGreen(), algos[0].Description(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
