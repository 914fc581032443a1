package engine

import (
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// Request asks for F(N) computed with Algorithm. It is passed by value and
// never modified after it is issued.
type Request struct {
	// ID correlates the Result with its Request. Optional; echoed verbatim.
	ID        string
	N         uint64
	Algorithm fibonacci.Algorithm
}

// Result is the outcome of one Request. Exactly one of Value and Err is set:
// a success carries the decimal value, a failure carries the error.
type Result struct {
	RequestID string
	Algorithm fibonacci.Algorithm
	N         uint64
	// Elapsed is the wall-clock time spent inside the algorithm.
	Elapsed time.Duration
	Value   string
	Err     error
}

// Succeeded builds a success Result for req.
func Succeeded(req Request, elapsed time.Duration, value string) Result {
	return Result{
		RequestID: req.ID,
		Algorithm: req.Algorithm,
		N:         req.N,
		Elapsed:   elapsed,
		Value:     value,
	}
}

// Failed builds a failure Result for req. err must not be nil.
func Failed(req Request, elapsed time.Duration, err error) Result {
	return Result{
		RequestID: req.ID,
		Algorithm: req.Algorithm,
		N:         req.N,
		Elapsed:   elapsed,
		Err:       err,
	}
}

// Success reports whether the computation produced a value.
func (r Result) Success() bool {
	return r.Err == nil
}

// ElapsedMillis returns Elapsed in fractional milliseconds.
func (r Result) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Digits returns the decimal length of the value, or 0 for a failure.
func (r Result) Digits() int {
	return len(r.Value)
}

// ErrorMessage returns the failure text, or "" for a success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
