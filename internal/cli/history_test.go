package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
)

func TestDisplayHistory(t *testing.T) {
	useNoColor(t)

	var buf bytes.Buffer
	DisplayHistory(nil, &buf)
	if !strings.Contains(buf.String(), "History is empty") {
		t.Errorf("empty history output = %q", buf.String())
	}

	buf.Reset()
	entries := []history.Entry{
		{Algorithm: fibonacci.Matrix, N: 100, ElapsedMillis: 0.5, Result: f100, Digits: 21, Timestamp: time.Now()},
		{Algorithm: fibonacci.Iterative, N: 10, ElapsedMillis: 0.01, Result: "55", Digits: 2, Timestamp: time.Now()},
	}
	DisplayHistory(entries, &buf)
	out := buf.String()
	for _, want := range []string{"History (2)", "matrix", "35422484...61915075", "0.500 ms", " 55"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "matrix") > strings.Index(out, "iterative") {
		t.Error("entries should keep the most-recent-first order")
	}
}

func TestDisplayStats(t *testing.T) {
	useNoColor(t)

	var buf bytes.Buffer
	DisplayStats(nil, &buf)
	if !strings.Contains(buf.String(), "history is empty") {
		t.Errorf("empty stats output = %q", buf.String())
	}

	buf.Reset()
	DisplayStats([]history.AlgorithmStats{
		{Algorithm: fibonacci.Iterative, Runs: 2, MinMillis: 1, MeanMillis: 2, MaxMillis: 3},
		{Algorithm: fibonacci.Memoized, Runs: 1, MinMillis: 4, MeanMillis: 4, MaxMillis: 4},
	}, &buf)
	out := buf.String()
	if !strings.Contains(out, strings.Repeat("█", statsBarWidth)) {
		t.Errorf("slowest algorithm should get a full bar, got:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("█", statsBarWidth/2)+strings.Repeat("░", statsBarWidth/2)) {
		t.Errorf("half as slow should get half a bar, got:\n%s", out)
	}
}

func TestBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value, full float64
		width       int
		want        string
	}{
		{0, 10, 4, "░░░░"},
		{10, 10, 4, "████"},
		{5, 10, 4, "██░░"},
		{0.01, 10, 4, "█░░░"},
		{20, 10, 4, "████"},
		{1, 0, 4, "░░░░"},
		{1, 1, 0, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.full, tt.width); got != tt.want {
			t.Errorf("Bar(%v, %v, %d) = %q, want %q", tt.value, tt.full, tt.width, got, tt.want)
		}
	}
}
