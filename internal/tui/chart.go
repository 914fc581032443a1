package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/history"
)

// ChartModel renders one sparkline of recent timings per algorithm. All
// lines share the same scale so that algorithms can be compared at a glance.
type ChartModel struct {
	width int
}

// SetWidth updates the available width.
func (c *ChartModel) SetWidth(w int) {
	c.width = w
}

const chartLabelWidth = 13

// View renders the chart from the history store.
func (c ChartModel) View(store *history.Store, algos []fibonacci.Algorithm) string {
	// label + space + sparkline + "  last 123.456 ms"
	points := max(c.width-chartLabelWidth-24, 5)

	series := make([][]float64, len(algos))
	ceiling := 0.0
	for i, a := range algos {
		series[i] = store.Series(a, points)
		for _, v := range series[i] {
			ceiling = max(ceiling, v)
		}
	}
	if ceiling == 0 {
		return dimStyle.Render("No timings yet: run a computation.")
	}

	var b strings.Builder
	for i, a := range algos {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s ", labelStyle.Render(fmt.Sprintf("%-*s", chartLabelWidth, a)))
		if len(series[i]) == 0 {
			b.WriteString(dimStyle.Render("-"))
			continue
		}
		b.WriteString(chartSparkStyle.Render(RenderSparkline(series[i], ceiling)))
		fmt.Fprintf(&b, "  %s", valueStyle.Render("last "+format.FormatMillis(series[i][len(series[i])-1])))
	}
	return b.String()
}
