package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/orchestration"
)

func TestPresenter_ComparisonTable(t *testing.T) {
	useNoColor(t)

	results := []engine.Result{
		success(fibonacci.FastDoubling, 100, 250*time.Microsecond, f100),
		success(fibonacci.Memoized, 100, 3*time.Millisecond, f100),
		engine.Failed(engine.Request{N: 100, Algorithm: fibonacci.Recursive}, 0,
			&fibonacci.InputTooLargeError{Algorithm: fibonacci.Recursive, N: 100, Limit: 40}),
	}
	var buf bytes.Buffer
	Presenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, header and 3 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], "fastDoubling   250µs") {
		t.Errorf("row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "memo") || !strings.Contains(lines[3], "Success") {
		t.Errorf("row = %q", lines[3])
	}
	if !strings.Contains(lines[4], "Failure (n=100 is too large for recursive computation (limit 40))") {
		t.Errorf("row = %q", lines[4])
	}
}

func TestPresenter_AnalyzeComparison(t *testing.T) {
	useNoColor(t)

	results := []engine.Result{
		success(fibonacci.Matrix, 100, 2*time.Millisecond, f100),
		success(fibonacci.Iterative, 100, time.Millisecond, f100),
	}
	var buf bytes.Buffer
	code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{N: 100}, Presenter{}, &buf)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	out := buf.String()
	if !strings.Contains(out, "All valid results are consistent") || !strings.Contains(out, "F(100) = 354,224,848,179,261,915,075") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPresenter_HandleError(t *testing.T) {
	useNoColor(t)

	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled, "Canceled"},
		{"refused", &fibonacci.InputTooLargeError{Algorithm: fibonacci.Recursive, N: 99, Limit: 40}, apperrors.ExitErrorGeneric, "Refused"},
		{"failure", errors.New("boom"), apperrors.ExitErrorGeneric, "Failure"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if code := (Presenter{}).HandleError(tt.err, time.Second, &buf); code != tt.code {
			t.Errorf("%s: code = %d, want %d", tt.name, code, tt.code)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("%s: output %q should contain %q", tt.name, buf.String(), tt.want)
		}
	}
}

func TestQuietPresenter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := QuietPresenter{}
	p.PresentComparisonTable([]engine.Result{success(fibonacci.Iterative, 10, 0, "55")}, &buf)
	if buf.Len() != 0 {
		t.Errorf("quiet comparison table should print nothing, got %q", buf.String())
	}
	p.PresentResult(success(fibonacci.Iterative, 10, 0, "55"), orchestration.PresentationOptions{}, &buf)
	if buf.String() != "55\n" {
		t.Errorf("quiet result = %q", buf.String())
	}
}
