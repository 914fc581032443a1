package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/orchestration"
)

// fakeRunner answers every request with F(10) unless err is set.
type fakeRunner struct {
	mu       sync.Mutex
	busy     bool
	err      error
	requests []engine.Request
	deadline bool
}

func (f *fakeRunner) Dispatch(ctx context.Context, req engine.Request) (engine.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return engine.Result{}, f.err
	}
	return engine.Succeeded(req, time.Millisecond, "55"), nil
}

func (f *fakeRunner) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func newTestModel(t *testing.T, r *fakeRunner, n uint64) Model {
	t.Helper()
	return NewModel(context.Background(), Options{
		Runner:    r,
		Store:     history.NewStore(),
		N:         n,
		Timeout:   time.Second,
		ExportDir: t.TempDir(),
		Version:   "v1.2.3",
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestNewModel_Defaults(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 1000)
	if got := m.input.Value(); got != "1000" {
		t.Errorf("input = %q, want 1000", got)
	}
	if len(m.algos) != len(fibonacci.Algorithms()) {
		t.Errorf("algos = %v, want all", m.algos)
	}
	if m.Selected() != fibonacci.Algorithms()[0] {
		t.Errorf("Selected() = %v", m.Selected())
	}
	if m.Busy() {
		t.Error("new model should be idle")
	}
}

func TestModel_AlgorithmNavigationWraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	algos := fibonacci.Algorithms()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selected() != algos[len(algos)-1] {
		t.Errorf("shift+tab from first = %v, want %v", m.Selected(), algos[len(algos)-1])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != algos[0] {
		t.Errorf("tab from last = %v, want %v", m.Selected(), algos[0])
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != algos[1] {
		t.Errorf("down = %v, want %v", m.Selected(), algos[1])
	}
}

func TestModel_InputAcceptsDigitsOnly(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 0)
	for _, k := range []string{"4", "x", "2", "-"} {
		m, _ = update(t, m, runes(k))
	}
	if got := m.input.Value(); got != "42" {
		t.Errorf("input = %q, want 42", got)
	}
}

func TestModel_QuitKey(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_RunDispatchesSelectedAlgorithm(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	m := newTestModel(t, r, 10)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if !m.Busy() {
		t.Error("model should be busy while a request is outstanding")
	}

	msg := cmd()
	done, ok := msg.(DispatchDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("command returned %#v", msg)
	}
	if len(r.requests) != 1 || r.requests[0].N != 10 || r.requests[0].Algorithm != fibonacci.Algorithms()[1] {
		t.Errorf("requests = %+v", r.requests)
	}
	if !r.deadline {
		t.Error("dispatch should carry the configured timeout")
	}

	m, _ = update(t, m, done)
	if m.Busy() {
		t.Error("model should be idle after DispatchDoneMsg")
	}
}

func TestModel_RunRefused(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		n      uint64
		busy   bool
		status string
	}{
		{"empty input", 0, false, "Invalid n"},
		{"busy worker", 10, true, orchestration.ErrBusy.Error()},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &fakeRunner{busy: tt.busy}
			m := newTestModel(t, r, tt.n)
			m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if cmd != nil {
				t.Error("a refused run should not return a command")
			}
			if !m.statusErr || !strings.Contains(m.status, tt.status) {
				t.Errorf("status = %q (err=%v), want %q", m.status, m.statusErr, tt.status)
			}
			if len(r.requests) != 0 {
				t.Errorf("requests = %+v, want none", r.requests)
			}
		})
	}
}

func TestModel_ResultMsg(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	req := engine.Request{N: 10, Algorithm: fibonacci.Matrix}

	m, _ = update(t, m, ResultMsg{Result: engine.Succeeded(req, time.Millisecond, "55")})
	if m.last == nil || m.last.Value != "55" || m.statusErr {
		t.Errorf("last = %+v, status = %q", m.last, m.status)
	}
	if !strings.Contains(m.View(), "55") {
		t.Error("view should show the last value")
	}

	m, _ = update(t, m, ResultMsg{Result: engine.Failed(req, 0, errors.New("boom"))})
	if !m.statusErr || !strings.Contains(m.status, "boom") {
		t.Errorf("status = %q, want failure", m.status)
	}
}

func TestModel_DispatchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "Timed out"},
		{orchestration.ErrBusy, orchestration.ErrBusy.Error()},
		{errors.New("other"), "Error: other"},
	}
	for _, tt := range tests {
		m := newTestModel(t, &fakeRunner{}, 10)
		m.running = true
		m, _ = update(t, m, DispatchDoneMsg{Err: tt.err})
		if m.running || !m.statusErr || !strings.Contains(m.status, tt.want) {
			t.Errorf("err %v: status = %q, want %q", tt.err, m.status, tt.want)
		}
	}
}

func TestModel_CompareDone(t *testing.T) {
	t.Parallel()

	ok := func(algo fibonacci.Algorithm, v string) engine.Result {
		return engine.Succeeded(engine.Request{N: 10, Algorithm: algo}, time.Millisecond, v)
	}

	m := newTestModel(t, &fakeRunner{}, 10)
	m, _ = update(t, m, CompareDoneMsg{Results: []engine.Result{ok(fibonacci.Iterative, "55"), ok(fibonacci.Matrix, "55")}})
	if m.statusErr || !strings.Contains(m.status, "2 of 2") {
		t.Errorf("status = %q", m.status)
	}

	m, _ = update(t, m, CompareDoneMsg{Results: []engine.Result{ok(fibonacci.Iterative, "55"), ok(fibonacci.Matrix, "56")}})
	if !m.statusErr || !strings.Contains(m.status, "Mismatch") {
		t.Errorf("status = %q, want mismatch", m.status)
	}
}

func TestModel_CompareRunsEveryAlgorithm(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	m := newTestModel(t, r, 10)
	_, cmd := update(t, m, runes("a"))
	if cmd == nil {
		t.Fatal("a returned no command")
	}
	done, ok := cmd().(CompareDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("command returned %#v", done)
	}
	if len(done.Results) != len(fibonacci.Algorithms()) {
		t.Errorf("got %d results, want %d", len(done.Results), len(fibonacci.Algorithms()))
	}
}

func TestModel_ClearHistory(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	m.store.Add(history.Entry{N: 10, Algorithm: fibonacci.Iterative, Result: "55"})

	m, _ = update(t, m, runes("c"))
	if m.store.Len() != 0 {
		t.Errorf("Len() = %d after clear", m.store.Len())
	}
	if m.statusErr {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_Export(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	m, cmd := update(t, m, runes("e"))
	if cmd != nil || !strings.Contains(m.status, "Nothing to export") {
		t.Errorf("export of an empty history: status = %q", m.status)
	}

	m.store.Add(history.Entry{N: 10, Algorithm: fibonacci.Matrix, Result: "55", Digits: 2})
	m, cmd = update(t, m, runes("e"))
	if cmd == nil {
		t.Fatal("e returned no command")
	}
	exported, ok := cmd().(ExportedMsg)
	if !ok || exported.Err != nil {
		t.Fatalf("command returned %#v", exported)
	}
	if !strings.HasSuffix(exported.Path, history.ExportFileName(10)) {
		t.Errorf("path = %q", exported.Path)
	}

	m, _ = update(t, m, exported)
	if m.statusErr || !strings.Contains(m.status, exported.Path) {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_ViewAndResize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, &fakeRunner{}, 10)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, SysStatsMsg{CPUPercent: 12.5, MemPercent: 40})
	m.store.Add(history.Entry{N: 10, Algorithm: fibonacci.Memoized, Result: "55", ElapsedMillis: 0.5})

	view := m.View()
	for _, want := range []string{"fibbench v1.2.3", "idle", "History (1/50)", "memo", "12.5%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
