package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "< 1µs"},
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	t.Parallel()
	if got := FormatMillis(1.23456); got != "1.235 ms" {
		t.Errorf("FormatMillis = %q", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", ""},
		{"5", "5"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatUint(12200160415121876738); got != "12,200,160,415,121,876,738" {
		t.Errorf("FormatUint = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	short := "354224848179261915075"
	if got, ok := Truncate(short, 100, 25); ok || got != short {
		t.Errorf("Truncate(short) = %q, %v", got, ok)
	}

	long := strings.Repeat("1", 50) + strings.Repeat("2", 60)
	got, ok := Truncate(long, 100, 25)
	if !ok {
		t.Fatal("Truncate(long) did not truncate")
	}
	if want := strings.Repeat("1", 25) + "..." + strings.Repeat("2", 25); got != want {
		t.Errorf("Truncate(long) = %q, want %q", got, want)
	}
}
