package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
)

// maxMessageSize bounds one request line in worker mode.
const maxMessageSize = 1 << 20

// workerInput is one request line, or the marker for a line that exceeded
// maxMessageSize and was discarded.
type workerInput struct {
	line      []byte
	oversized bool
}

// readRequestLine returns the next line without its terminator. A line longer
// than the reader's buffer is consumed up to its newline and reported as
// oversized.
func readRequestLine(r *bufio.Reader) (line []byte, oversized bool, err error) {
	line, err = r.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return bytes.Clone(bytes.TrimSpace(line)), false, err
	}
	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = r.ReadSlice('\n')
	}
	return nil, true, err
}

// runWorker serves newline-delimited request messages from a.In and writes
// one response message per line to out, in order, until the input ends.
// A line longer than maxMessageSize is answered with a rejection and the
// worker keeps serving.
func (a *Application) runWorker(ctx context.Context, c engine.Computer, out io.Writer) int {
	inputs := make(chan workerInput)
	readErr := make(chan error, 1)

	// The reader is not part of the group: a blocked Read cannot be
	// interrupted, and cancellation must not wait for it.
	go func() {
		defer close(inputs)
		br := bufio.NewReaderSize(a.In, maxMessageSize)
		for {
			line, oversized, err := readRequestLine(br)
			if oversized || len(line) > 0 {
				select {
				case inputs <- workerInput{line: line, oversized: oversized}:
				case <-ctx.Done():
					readErr <- ctx.Err()
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	responses := make(chan engine.ResponseMessage, 1)

	g.Go(func() error {
		defer close(responses)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case in, ok := <-inputs:
				if !ok {
					return <-readErr
				}
				var resp engine.ResponseMessage
				if in.oversized {
					resp = engine.RejectedResponse(engine.RequestMessage{},
						fmt.Errorf("%w: request exceeds %d bytes", engine.ErrMalformedRequest, maxMessageSize))
				} else {
					resp = engine.Handle(gctx, c, in.line)
				}
				select {
				case responses <- resp:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		}
	})

	g.Go(func() error {
		enc := json.NewEncoder(out)
		for resp := range responses {
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
		return nil
	})

	err := g.Wait()
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	}
	fmt.Fprintln(a.ErrWriter, "Error:", err)
	return apperrors.ExitErrorGeneric
}
