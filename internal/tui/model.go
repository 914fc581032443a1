// Package tui implements the interactive dashboard: an n input, an
// algorithm selector, the latest result, the history and per-algorithm
// timing sparklines, all driven through the single worker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/orchestration"
)

// Options configures the dashboard.
type Options struct {
	Runner     Runner
	Store      *history.Store
	Algorithms []fibonacci.Algorithm
	N          uint64
	Timeout    time.Duration
	// ExportDir receives exported results; "" means the working directory.
	ExportDir string
	Version   string
}

// Model is the root bubbletea model.
type Model struct {
	keymap KeyMap
	input  textinput.Model
	header HeaderModel
	chart  ChartModel

	algos  []fibonacci.Algorithm
	cursor int

	ctx     context.Context
	runner  Runner
	store   *history.Store
	timeout time.Duration
	export  string

	running   bool
	last      *engine.Result
	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates the dashboard model.
func NewModel(ctx context.Context, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "n = "
	ti.Placeholder = "index"
	ti.CharLimit = 20
	ti.Width = 22
	if opts.N > 0 {
		ti.SetValue(strconv.FormatUint(opts.N, 10))
	}
	ti.Focus()

	algos := opts.Algorithms
	if len(algos) == 0 {
		algos = fibonacci.Algorithms()
	}

	return Model{
		keymap:  DefaultKeyMap(),
		input:   ti,
		header:  NewHeaderModel(opts.Version),
		algos:   algos,
		ctx:     ctx,
		runner:  opts.Runner,
		store:   opts.Store,
		timeout: opts.Timeout,
		export:  opts.ExportDir,
		status:  "Type n, pick an algorithm and press enter.",
	}
}

// Init starts the cursor blink and the system sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, sampleSysStatsCmd(), tickCmd())
}

// Selected returns the algorithm under the cursor.
func (m Model) Selected() fibonacci.Algorithm {
	return m.algos[m.cursor]
}

// Busy reports whether a request is outstanding, as the worker sees it or
// as the dashboard does.
func (m Model) Busy() bool {
	return m.running || (m.runner != nil && m.runner.Busy())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(m.width)
		m.chart.SetWidth(m.width - 4)
		return m, nil

	case ResultMsg:
		res := msg.Result
		m.last = &res
		if res.Success() {
			m.setStatus(fmt.Sprintf("F(%d) computed by %s in %s.", res.N, res.Algorithm, format.FormatMillis(res.ElapsedMillis())), false)
		} else {
			m.setStatus(fmt.Sprintf("%s failed: %s", res.Algorithm, res.ErrorMessage()), true)
		}
		return m, nil

	case DispatchDoneMsg:
		m.running = false
		if msg.Err != nil {
			m.setStatus(m.describeDispatchError(msg.Err), true)
		}
		return m, nil

	case CompareDoneMsg:
		m.running = false
		switch {
		case msg.Err != nil:
			m.setStatus(m.describeDispatchError(msg.Err), true)
		default:
			if err := orchestration.CheckConsistency(msg.Results); err != nil {
				m.setStatus("Mismatch: "+err.Error(), true)
			} else {
				ok := 0
				for _, r := range msg.Results {
					if r.Success() {
						ok++
					}
				}
				m.setStatus(fmt.Sprintf("%d of %d algorithms succeeded; all values agree.", ok, len(msg.Results)), false)
			}
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			m.setStatus("Exported to "+msg.Path, false)
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.header.UpdateSysStats(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Run):
		return m.run()
	case key.Matches(msg, m.keymap.Compare):
		return m.compare()
	case key.Matches(msg, m.keymap.NextAlgo):
		m.cursor = (m.cursor + 1) % len(m.algos)
		return m, nil
	case key.Matches(msg, m.keymap.PrevAlgo):
		m.cursor = (m.cursor - 1 + len(m.algos)) % len(m.algos)
		return m, nil
	case key.Matches(msg, m.keymap.ClearHistory):
		if err := m.store.Clear(); err != nil {
			m.setStatus("Could not clear history: "+err.Error(), true)
		} else {
			m.setStatus("History cleared.", false)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Export):
		return m.exportLatest()
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) parseN() (uint64, bool) {
	n, err := strconv.ParseUint(m.input.Value(), 10, 64)
	return n, err == nil
}

func (m Model) run() (tea.Model, tea.Cmd) {
	n, ok := m.parseN()
	if !ok {
		m.setStatus(fmt.Sprintf("Invalid n: %q", m.input.Value()), true)
		return m, nil
	}
	if m.Busy() {
		m.setStatus(orchestration.ErrBusy.Error(), true)
		return m, nil
	}
	m.running = true
	algo := m.Selected()
	m.setStatus(fmt.Sprintf("Computing F(%d) with %s...", n, algo), false)
	return m, dispatchCmd(m.ctx, m.runner, engine.Request{N: n, Algorithm: algo}, m.timeout)
}

func (m Model) compare() (tea.Model, tea.Cmd) {
	n, ok := m.parseN()
	if !ok {
		m.setStatus(fmt.Sprintf("Invalid n: %q", m.input.Value()), true)
		return m, nil
	}
	if m.Busy() {
		m.setStatus(orchestration.ErrBusy.Error(), true)
		return m, nil
	}
	m.running = true
	m.setStatus(fmt.Sprintf("Computing F(%d) with every algorithm...", n), false)
	return m, compareCmd(m.ctx, m.runner, n, m.algos, m.timeout)
}

// exportLatest exports the newest history entry for the current n, falling
// back to the newest entry overall.
func (m Model) exportLatest() (tea.Model, tea.Cmd) {
	var (
		e  history.Entry
		ok bool
	)
	if n, valid := m.parseN(); valid {
		e, ok = m.store.Find(n, m.Selected())
	}
	if !ok {
		e, ok = m.store.Latest()
	}
	if !ok {
		m.setStatus("Nothing to export: the history is empty.", true)
		return m, nil
	}
	return m, exportCmd(m.export, e)
}

func (m Model) describeDispatchError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Timed out after %s; the worker stays busy until it answers.", m.timeout)
	case errors.Is(err, orchestration.ErrBusy):
		return err.Error()
	}
	return "Error: " + err.Error()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// Run starts the dashboard and blocks until the user quits. The bridge must
// be the observer of the dispatcher behind opts.Runner.
func Run(ctx context.Context, bridge *Bridge, opts Options) int {
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.SetProgram(p)
	defer bridge.SetProgram(nil)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
