package engine

import (
	"context"
	"sync"
)

// Worker serves Requests on one dedicated goroutine. The host posts to the
// inbox and reads Results from the outbox; nothing else is shared. Requests
// are processed in arrival order, one at a time, and each produces exactly
// one Result.
type Worker struct {
	computer Computer
	inbox    chan Request
	outbox   chan Result

	closeOnce sync.Once
}

// NewWorker creates a Worker around c. Call Run to start it.
func NewWorker(c Computer) *Worker {
	return &Worker{
		computer: c,
		inbox:    make(chan Request, 1),
		outbox:   make(chan Result, 1),
	}
}

// Run processes requests until the inbox is closed or ctx is cancelled, then
// closes the outbox. A computation in progress is always finished; if ctx is
// cancelled meanwhile, its Result is dropped.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.outbox)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-w.inbox:
			if !ok {
				return nil
			}
			res := w.computer.Compute(ctx, req)
			select {
			case w.outbox <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Post hands req to the worker. It blocks only while the mailbox is full and
// returns ctx.Err() if ctx ends first. Post must not be called after Close.
func (w *Worker) Post(ctx context.Context, req Request) error {
	select {
	case w.inbox <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Responses returns the outbox. It is closed when Run returns.
func (w *Worker) Responses() <-chan Result {
	return w.outbox
}

// Close closes the inbox. Run drains any posted request and then returns.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.inbox) })
}
