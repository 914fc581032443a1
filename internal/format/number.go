package format

import (
	"strconv"
	"strings"
)

// FormatNumberString inserts thousand separators into a decimal string.
func FormatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	first := n % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatUint formats v with thousand separators.
func FormatUint(v uint64) string {
	return FormatNumberString(strconv.FormatUint(v, 10))
}

// Truncate shortens a decimal string longer than limit to its first and last
// edge digits joined by "...". truncated reports whether it did.
func Truncate(s string, limit, edge int) (out string, truncated bool) {
	if len(s) <= limit || edge <= 0 || 2*edge >= len(s) {
		return s, false
	}
	return s[:edge] + "..." + s[len(s)-edge:], true
}
