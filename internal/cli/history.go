package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/ui"
)

const (
	historyValueEdges = 8
	statsBarWidth     = 30
)

// DisplayHistory prints the entries, newest first.
func DisplayHistory(entries []history.Entry, out io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "History is empty.")
		return
	}
	fmt.Fprintf(out, "%s--- History (%d) ---%s\n", ui.ColorBold(), len(entries), ui.ColorReset())
	fmt.Fprintf(out, "%-4s %-19s %-13s %12s %14s %8s  %s\n", "#", "When", "Algorithm", "n", "Time", "Digits", "F(n)")
	for i, e := range entries {
		value, _ := format.Truncate(e.Result, 2*historyValueEdges+3, historyValueEdges)
		fmt.Fprintf(out, "%-4d %-19s %s%-13s%s %12d %14s %8d  %s%s%s\n",
			i+1,
			e.Timestamp.Local().Format(time.DateTime),
			ui.ColorBlue(), e.Algorithm, ui.ColorReset(),
			e.N,
			format.FormatMillis(e.ElapsedMillis),
			e.Digits,
			ui.ColorGreen(), value, ui.ColorReset())
	}
}

// DisplayStats prints one line per algorithm with a bar proportional to its
// mean time.
func DisplayStats(stats []history.AlgorithmStats, out io.Writer) {
	if len(stats) == 0 {
		fmt.Fprintln(out, "No statistics yet: the history is empty.")
		return
	}
	slowest := 0.0
	for _, st := range stats {
		slowest = max(slowest, st.MeanMillis)
	}

	fmt.Fprintf(out, "%s--- Statistics ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "%-13s %5s %12s %12s %12s  %s\n", "Algorithm", "Runs", "Min", "Mean", "Max", "Mean time")
	for _, st := range stats {
		fmt.Fprintf(out, "%s%-13s%s %5d %12s %12s %12s  %s%s%s\n",
			ui.ColorBlue(), st.Algorithm, ui.ColorReset(),
			st.Runs,
			format.FormatMillis(st.MinMillis),
			format.FormatMillis(st.MeanMillis),
			format.FormatMillis(st.MaxMillis),
			ui.ColorYellow(), Bar(st.MeanMillis, slowest, statsBarWidth), ui.ColorReset())
	}
}

// Bar renders value relative to full as a bar of width cells. A positive
// value always gets at least one cell.
func Bar(value, full float64, width int) string {
	if width <= 0 {
		return ""
	}
	n := 0
	if full > 0 && value > 0 {
		n = int(value / full * float64(width))
		n = min(max(n, 1), width)
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
