package tui

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/sysmon"
)

// Runner is the part of the dispatcher the dashboard uses.
type Runner interface {
	orchestration.Runner
	Busy() bool
}

// Bridge forwards worker results to the running program. It survives the
// model copies bubbletea makes on every Update, and it exists before the
// program so it can be installed as the dispatcher's observer.
type Bridge struct {
	mu      sync.RWMutex
	program *tea.Program
}

// NewBridge returns a bridge with no program attached; Send is a no-op until
// SetProgram is called.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetProgram attaches the program.
func (b *Bridge) SetProgram(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

// Send delivers msg to the program, if any.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Observe is the dispatcher observer: every result becomes a ResultMsg.
func (b *Bridge) Observe(res engine.Result) {
	b.Send(ResultMsg{Result: res})
}

// dispatchCmd runs one request. The result itself reaches the model through
// the observer; only the dispatch error is returned here.
func dispatchCmd(ctx context.Context, r Runner, req engine.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		_, err := orchestration.Timed(r, timeout).Dispatch(ctx, req)
		return DispatchDoneMsg{Err: err}
	}
}

// compareCmd runs every algorithm in turn with a timeout per request.
func compareCmd(ctx context.Context, r Runner, n uint64, algos []fibonacci.Algorithm, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		results, err := orchestration.RunAll(ctx, orchestration.Timed(r, timeout), n, algos, nil, io.Discard)
		return CompareDoneMsg{Results: results, Err: err}
	}
}

func exportCmd(dir string, e history.Entry) tea.Cmd {
	return func() tea.Msg {
		path, err := history.ExportFile(dir, e)
		return ExportedMsg{Path: path, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}
