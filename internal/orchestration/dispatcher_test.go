package orchestration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/fibbench/internal/engine"
	enginemocks "github.com/agbru/fibbench/internal/engine/mocks"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/orchestration/mocks"
)

// startDispatcher starts d and stops it when the test ends.
func startDispatcher(t *testing.T, d *orchestration.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	t.Cleanup(func() {
		cancel()
		if err := d.Wait(); err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	})
}

// TestDispatcher_RecordsAndDelivers checks the happy path: the sink sees the
// result, the caller gets it and the busy flag is cleared.
func TestDispatcher_RecordsAndDelivers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sink := mocks.NewMockResultSink(ctrl)
	sink.EXPECT().Record(gomock.Any()).DoAndReturn(func(res engine.Result) error {
		if res.Value != "55" || res.RequestID != "req-1" {
			t.Errorf("sink got %+v", res)
		}
		return nil
	})

	var observed []engine.Result
	d := orchestration.NewDispatcher(engine.New(),
		orchestration.WithSink(sink),
		orchestration.WithIDGenerator(func() string { return "req-1" }),
		orchestration.WithObserver(func(r engine.Result) { observed = append(observed, r) }),
	)
	startDispatcher(t, d)

	res, err := d.Dispatch(context.Background(), engine.Request{N: 10, Algorithm: fibonacci.Iterative})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if res.Value != "55" || res.RequestID != "req-1" {
		t.Errorf("Dispatch = %+v, want F(10)=55 with id req-1", res)
	}
	if d.Busy() {
		t.Error("dispatcher still busy after the result was delivered")
	}
	if len(observed) != 1 {
		t.Errorf("observer saw %d results, want 1", len(observed))
	}
}

// TestDispatcher_FailuresAreResults checks that an engine failure is a
// result, not a dispatch error.
func TestDispatcher_FailuresAreResults(t *testing.T) {
	t.Parallel()

	d := orchestration.NewDispatcher(engine.New())
	startDispatcher(t, d)

	res, err := d.Dispatch(context.Background(), engine.Request{ID: "x", N: 41, Algorithm: fibonacci.Recursive})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if res.Success() || !errors.Is(res.Err, fibonacci.ErrInputTooLarge) {
		t.Errorf("result = %+v, want InputTooLarge failure", res)
	}
	if res.RequestID != "x" {
		t.Errorf("RequestID = %q, want caller-supplied id", res.RequestID)
	}
}

// TestDispatcher_BusyUntilResultArrives checks that a second request is
// refused while the first is outstanding, even after its caller gave up.
func TestDispatcher_BusyUntilResultArrives(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	computer := enginemocks.NewMockComputer(ctrl)
	sink := mocks.NewMockResultSink(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	computer.EXPECT().Compute(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r engine.Request) engine.Result {
		close(started)
		<-release
		return engine.Succeeded(r, time.Millisecond, "832040")
	})
	recorded := make(chan engine.Result, 1)
	sink.EXPECT().Record(gomock.Any()).DoAndReturn(func(res engine.Result) error {
		recorded <- res
		return nil
	})

	d := orchestration.NewDispatcher(computer, orchestration.WithSink(sink))
	startDispatcher(t, d)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		_, err := d.Dispatch(ctx, engine.Request{N: 30, Algorithm: fibonacci.Recursive})
		errc <- err
	}()
	<-started

	if _, err := d.Dispatch(context.Background(), engine.Request{N: 1}); !errors.Is(err, orchestration.ErrBusy) {
		t.Errorf("second Dispatch error = %v, want ErrBusy", err)
	}

	if err := <-errc; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("first Dispatch error = %v, want DeadlineExceeded", err)
	}
	if !d.Busy() {
		t.Error("busy flag cleared before the worker answered")
	}

	close(release)
	select {
	case res := <-recorded:
		if res.Value != "832040" {
			t.Errorf("recorded %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("abandoned result never reached the sink")
	}

	deadline := time.Now().Add(5 * time.Second)
	for d.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if d.Busy() {
		t.Error("busy flag not cleared after the result arrived")
	}
}

// TestDispatcher_SinkErrorDoesNotLoseResult checks that a failing sink is
// logged and the caller still receives the result.
func TestDispatcher_SinkErrorDoesNotLoseResult(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sink := mocks.NewMockResultSink(ctrl)
	sink.EXPECT().Record(gomock.Any()).Return(errors.New("disk full"))

	d := orchestration.NewDispatcher(engine.New(), orchestration.WithSink(sink))
	startDispatcher(t, d)

	res, err := d.Dispatch(context.Background(), engine.Request{N: 0, Algorithm: fibonacci.FastDoubling})
	if err != nil || res.Value != "0" {
		t.Errorf("Dispatch = (%+v, %v), want F(0)=0", res, err)
	}
}

// TestDispatcher_NotStarted checks Dispatch before Start.
func TestDispatcher_NotStarted(t *testing.T) {
	t.Parallel()

	d := orchestration.NewDispatcher(engine.New())
	if _, err := d.Dispatch(context.Background(), engine.Request{N: 1}); !errors.Is(err, orchestration.ErrNotStarted) {
		t.Errorf("Dispatch error = %v, want ErrNotStarted", err)
	}
	if err := d.Wait(); err != nil {
		t.Errorf("Wait() on a dispatcher never started = %v", err)
	}
}

// TestDispatcher_GeneratesUniqueIDs checks the default uuid generator.
func TestDispatcher_GeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	d := orchestration.NewDispatcher(engine.New())
	startDispatcher(t, d)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		res, err := d.Dispatch(context.Background(), engine.Request{N: uint64(i), Algorithm: fibonacci.Matrix})
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if len(res.RequestID) != 36 || seen[res.RequestID] {
			t.Errorf("request id %q is not a fresh uuid", res.RequestID)
		}
		seen[res.RequestID] = true
	}
}
