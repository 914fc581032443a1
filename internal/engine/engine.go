// Package engine runs Fibonacci computations on behalf of a host. A Request
// names n and one algorithm; the Engine answers with exactly one Result that
// is either a success carrying the decimal value or a failure carrying an
// error. Nothing escapes as a panic.
//
// Worker puts an Engine behind a single goroutine with an inbox and an
// outbox so the host never computes on its own goroutine.
package engine

//go:generate mockgen -source=engine.go -destination=mocks/mock_computer.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/fibbench/internal/fibonacci"
)

var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibbench_computations_total",
			Help: "The total number of Fibonacci computations processed by the engine",
		},
		[]string{"algorithm", "status"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibbench_computation_duration_seconds",
			Help:    "Time spent inside the Fibonacci algorithm, excluding formatting",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 14),
		},
		[]string{"algorithm"},
	)
)

// ErrResourceExhausted is matched (via errors.Is) by every ResourceError.
var ErrResourceExhausted = errors.New("resource exhausted")

// ResourceError reports a computation that could not complete because the
// memory it needed was refused, either by the configured budget or by the
// runtime.
type ResourceError struct {
	Algorithm fibonacci.Algorithm
	N         uint64
	Reason    string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s computation of F(%d) exhausted resources: %s", e.Algorithm, e.N, e.Reason)
}

// Is makes errors.Is(err, ErrResourceExhausted) succeed.
func (e *ResourceError) Is(target error) bool {
	return target == ErrResourceExhausted
}

// Computer computes one Result per Request.
type Computer interface {
	Compute(ctx context.Context, req Request) Result
}

// Engine is the default Computer. It holds only immutable options, so one
// Engine may serve concurrent callers.
type Engine struct {
	opts        fibonacci.Options
	memoryLimit uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecursionLimit overrides fibonacci.DefaultRecursionLimit.
func WithRecursionLimit(limit uint64) Option {
	return func(e *Engine) { e.opts.RecursionLimit = limit }
}

// WithMemoryLimit rejects requests whose estimated peak heap exceeds limit
// bytes. Zero disables the check.
func WithMemoryLimit(limit uint64) Option {
	return func(e *Engine) { e.memoryLimit = limit }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs req to completion. The context only carries tracing; a
// computation that has started is never interrupted.
//
// Elapsed covers the algorithm call alone. Decimal formatting of the value,
// metrics and logging happen outside the measured interval.
func (e *Engine) Compute(ctx context.Context, req Request) (res Result) {
	_, span := otel.Tracer("fibbench/engine").Start(ctx, "Compute")
	span.SetAttributes(spanAttributes(req)...)
	defer span.End()

	defer func() {
		status := "success"
		if !res.Success() {
			status = "error"
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		computationsTotal.WithLabelValues(req.Algorithm.String(), status).Inc()
		computationDuration.WithLabelValues(req.Algorithm.String()).Observe(res.Elapsed.Seconds())

		log.Debug().
			Str("id", req.ID).
			Str("algo", req.Algorithm.String()).
			Uint64("n", req.N).
			Float64("duration_ms", res.ElapsedMillis()).
			Int("digits", res.Digits()).
			Str("status", status).
			Msg("computation completed")
	}()

	if e.memoryLimit > 0 && req.Algorithm.Valid() {
		est := fibonacci.EstimateMemory(req.N, req.Algorithm)
		if est.TotalBytes > e.memoryLimit {
			return Failed(req, 0, &ResourceError{
				Algorithm: req.Algorithm,
				N:         req.N,
				Reason: fmt.Sprintf("estimated %s exceeds memory limit %s",
					fibonacci.FormatBytes(est.TotalBytes), fibonacci.FormatBytes(e.memoryLimit)),
			})
		}
	}

	v, elapsed, err := e.run(req)
	if err != nil {
		return Failed(req, elapsed, err)
	}
	return Succeeded(req, elapsed, v.String())
}

// spanAttributes describes req on a trace span. n is a string so that
// indices above math.MaxInt64 keep their value.
func spanAttributes(req Request) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("fibonacci.algorithm", req.Algorithm.String()),
		attribute.String("fibonacci.n", strconv.FormatUint(req.N, 10)),
		attribute.String("request.id", req.ID),
	}
}

// run invokes the algorithm and converts a runtime panic into a ResourceError.
// Allocation failures that the runtime treats as fatal cannot be recovered
// here; WithMemoryLimit exists to refuse those requests up front.
func (e *Engine) run(req Request) (v *big.Int, elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &ResourceError{Algorithm: req.Algorithm, N: req.N, Reason: fmt.Sprint(r)}
		}
	}()

	start := time.Now()
	defer func() { elapsed = time.Since(start) }()

	v, err = fibonacci.Compute(req.N, req.Algorithm, e.opts)
	return
}
