package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
)

func TestPrintExecutionConfig(t *testing.T) {
	useNoColor(t)

	var buf bytes.Buffer
	cfg := config.AppConfig{N: 1000, Timeout: time.Minute, RecursionLimit: 40}
	PrintExecutionConfig(cfg, 1<<30, &buf)

	out := buf.String()
	for _, want := range []string{"F(1000)", "1m0s", "n=40", "1.0 GiB", "logical processors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintExecutionConfig(cfg, 0, &buf)
	if !strings.Contains(buf.String(), "memory budget none") {
		t.Errorf("zero budget should read as none, got:\n%s", buf.String())
	}
}

func TestPrintExecutionMode(t *testing.T) {
	useNoColor(t)

	var buf bytes.Buffer
	PrintExecutionMode([]fibonacci.Algorithm{fibonacci.Matrix}, &buf)
	if !strings.Contains(buf.String(), "Single computation with the Matrix Exponentiation") {
		t.Errorf("single mode output = %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(fibonacci.Algorithms(), &buf)
	if !strings.Contains(buf.String(), "Sequential comparison of iterative, recursive, fastDoubling, matrix, memo") {
		t.Errorf("comparison mode output = %q", buf.String())
	}
}
