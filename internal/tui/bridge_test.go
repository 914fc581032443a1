package tui

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
)

func TestBridge_WithoutProgram(t *testing.T) {
	t.Parallel()

	b := NewBridge()
	// Must not block or panic.
	b.Observe(engine.Succeeded(engine.Request{N: 1}, 0, "1"))
	b.SetProgram(nil)
	b.Send(TickMsg(time.Now()))
}

func TestDispatchCmd_ReturnsError(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{err: errors.New("refused")}
	msg := dispatchCmd(context.Background(), r, engine.Request{N: 5}, time.Second)()
	done, ok := msg.(DispatchDoneMsg)
	if !ok || done.Err == nil || done.Err.Error() != "refused" {
		t.Errorf("got %#v", msg)
	}
}

func TestCompareCmd_StopsOnError(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{err: context.DeadlineExceeded}
	msg := compareCmd(context.Background(), r, 5, fibonacci.Algorithms(), time.Second)()
	done, ok := msg.(CompareDoneMsg)
	if !ok || !errors.Is(done.Err, context.DeadlineExceeded) {
		t.Fatalf("got %#v", msg)
	}
	if len(r.requests) != 1 {
		t.Errorf("dispatched %d requests, want 1", len(r.requests))
	}
	if !r.deadline {
		t.Error("each request should carry a deadline")
	}
}

func TestExportCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	msg := exportCmd(dir, history.Entry{N: 7, Algorithm: fibonacci.Iterative, Result: "13", Digits: 2})()
	exported, ok := msg.(ExportedMsg)
	if !ok || exported.Err != nil {
		t.Fatalf("got %#v", msg)
	}
	if _, err := os.Stat(exported.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
