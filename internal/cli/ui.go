//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

// Package cli renders results, comparisons, history and statistics on a
// terminal and shows a spinner while the worker is computing.
package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
)

const (
	// TruncationLimit is the digit count above which values are shortened
	// unless --verbose is set.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// value is shortened.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
)

// Spinner abstracts the terminal spinner so the reporter can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter implements orchestration.ProgressReporter with a spinner
// that shows the outstanding request and the time spent waiting for it.
type SpinnerReporter struct{}

var _ orchestration.ProgressReporter = SpinnerReporter{}

// Begin starts the spinner. The returned function stops it and clears the line.
func (SpinnerReporter) Begin(req engine.Request, out io.Writer) func() {
	s := newSpinner(spinner.WithWriter(out))
	label := fmt.Sprintf(" Computing F(%d) with %s", req.N, req.Algorithm)
	s.UpdateSuffix(label + "...")
	s.Start()

	start := time.Now()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(ProgressRefreshRate)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.UpdateSuffix(fmt.Sprintf("%s... %s", label, format.FormatExecutionDuration(time.Since(start).Truncate(time.Millisecond))))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			s.Stop()
		})
	}
}
