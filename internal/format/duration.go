// Package format holds the pure string formatting helpers shared by the CLI,
// the TUI and the HTTP layer.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a duration for display. Sub-millisecond
// durations are shown in microseconds, sub-second durations in milliseconds
// and everything else with time.Duration's own representation. A zero
// duration is shown as "< 1µs".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMillis formats a millisecond timing with three decimals.
func FormatMillis(ms float64) string {
	return fmt.Sprintf("%.3f ms", ms)
}
