package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fibbench/internal/logging"
)

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fibbench_http_active_requests",
		Help: "Current number of HTTP requests being served",
	})
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fibbench_http_requests_total",
		Help: "Total number of HTTP requests by path and status code",
	}, []string{"path", "code"})
)

// Metrics serves the Prometheus registry and tracks request counts.
// Computation metrics are recorded by the engine.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics backed by the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.Int("status", rec.status),
			logging.String("duration", time.Since(start).String()))
	}
}
