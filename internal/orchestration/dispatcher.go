package orchestration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/logging"
)

// ErrBusy is returned by Dispatch while another computation is outstanding.
var ErrBusy = errors.New("a computation is already in progress")

// ErrNotStarted is returned by Dispatch before Start or after Wait.
var ErrNotStarted = errors.New("dispatcher is not running")

// Dispatcher owns an engine.Worker and the busy flag in front of it.
//
// The flag is raised by Dispatch and cleared only when the worker's result
// arrives, never when the caller gives up. A caller that stops waiting
// therefore cannot start a second computation behind the first one.
type Dispatcher struct {
	worker   *engine.Worker
	sink     ResultSink
	logger   logging.Logger
	newID    func() string
	observer func(engine.Result)

	busy    atomic.Bool
	running atomic.Bool

	mu     sync.Mutex
	waiter chan engine.Result

	group *errgroup.Group
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSink records every result in sink before it is delivered.
func WithSink(sink ResultSink) DispatcherOption {
	return func(d *Dispatcher) { d.sink = sink }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logging.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithIDGenerator replaces the uuid generator used for requests without an id.
func WithIDGenerator(f func() string) DispatcherOption {
	return func(d *Dispatcher) { d.newID = f }
}

// WithObserver calls f with every result, after the sink and before the
// waiting caller. f runs on the dispatcher's goroutine and must not block.
func WithObserver(f func(engine.Result)) DispatcherOption {
	return func(d *Dispatcher) { d.observer = f }
}

// NewDispatcher creates a Dispatcher around a fresh worker for c.
func NewDispatcher(c engine.Computer, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		worker: engine.NewWorker(c),
		logger: logging.Nop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the worker and the response pump. They stop when ctx is
// cancelled or Wait is called.
func (d *Dispatcher) Start(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	d.group = g
	g.Go(func() error { return d.worker.Run(gctx) })
	g.Go(d.pump)
	d.running.Store(true)
}

// pump forwards worker results to the sink, the observer and the waiter.
func (d *Dispatcher) pump() error {
	for res := range d.worker.Responses() {
		if d.sink != nil {
			if err := d.sink.Record(res); err != nil {
				d.logger.Error("failed to record result", err,
					logging.String("id", res.RequestID))
			}
		}
		if d.observer != nil {
			d.observer(res)
		}

		d.mu.Lock()
		w := d.waiter
		d.waiter = nil
		d.mu.Unlock()
		d.busy.Store(false)

		if w != nil {
			w <- res
		}
	}

	// The worker is gone; release a caller still waiting on it.
	d.mu.Lock()
	d.running.Store(false)
	if d.waiter != nil {
		close(d.waiter)
		d.waiter = nil
	}
	d.mu.Unlock()
	return nil
}

// Busy reports whether a computation is outstanding.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Dispatch sends req to the worker and waits for its result. A request
// without an ID gets a fresh uuid. If ctx ends first Dispatch returns
// ctx.Err(); the computation still completes and its result still reaches
// the sink.
func (d *Dispatcher) Dispatch(ctx context.Context, req engine.Request) (engine.Result, error) {
	if !d.running.Load() {
		return engine.Result{}, ErrNotStarted
	}
	if !d.busy.CompareAndSwap(false, true) {
		return engine.Result{}, ErrBusy
	}
	if req.ID == "" {
		req.ID = d.newID()
	}

	w := make(chan engine.Result, 1)
	d.mu.Lock()
	if !d.running.Load() {
		d.mu.Unlock()
		d.busy.Store(false)
		return engine.Result{}, ErrNotStarted
	}
	d.waiter = w
	d.mu.Unlock()

	d.logger.Debug("dispatching request",
		logging.String("id", req.ID),
		logging.String("algo", req.Algorithm.String()),
		logging.Uint64("n", req.N))

	if err := d.worker.Post(ctx, req); err != nil {
		d.mu.Lock()
		d.waiter = nil
		d.mu.Unlock()
		d.busy.Store(false)
		return engine.Result{}, err
	}

	select {
	case res, ok := <-w:
		if !ok {
			return engine.Result{}, ErrNotStarted
		}
		return res, nil
	case <-ctx.Done():
		d.logger.Warn("stopped waiting for result",
			logging.String("id", req.ID), logging.Err(ctx.Err()))
		return engine.Result{}, ctx.Err()
	}
}

// Wait stops accepting requests, lets the outstanding computation finish and
// returns once the worker has exited. Context cancellation is not an error.
// Dispatch must not be called concurrently with Wait.
func (d *Dispatcher) Wait() error {
	if d.group == nil {
		return nil
	}
	d.worker.Close()
	err := d.group.Wait()
	d.running.Store(false)
	if apperrors.IsContextError(err) {
		return nil
	}
	return err
}
