package tui

import (
	"time"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/sysmon"
)

// ResultMsg carries a result delivered by the worker, including results
// that arrive after the dashboard stopped waiting for them.
type ResultMsg struct {
	Result engine.Result
}

// DispatchDoneMsg ends a single run. Err is set when the dashboard could not
// get a result (busy worker, timeout).
type DispatchDoneMsg struct {
	Err error
}

// CompareDoneMsg ends a run of every algorithm.
type CompareDoneMsg struct {
	Results []engine.Result
	Err     error
}

// ExportedMsg reports the outcome of an export.
type ExportedMsg struct {
	Path string
	Err  error
}

// TickMsg drives the periodic system sampling.
type TickMsg time.Time

// SysStatsMsg carries a system sample.
type SysStatsMsg sysmon.Stats
