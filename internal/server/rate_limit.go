package server

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures a RateLimiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the sustained refill rate per client. Default: 60.
	RequestsPerMinute int
	// Burst is the bucket size. Default: RequestsPerMinute.
	Burst int
	// CleanupInterval between sweeps of idle clients. Default: 5 minutes.
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		Burst:             60,
		CleanupInterval:   5 * time.Minute,
	}
}

// RateLimiter keeps one rate.Limiter per client IP. A client whose bucket
// has refilled completely is forgotten by the cleanup goroutine.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Stop to release it.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := newRateLimiter(config, time.Now)
	go rl.cleanupLoop(config.CleanupInterval)
	return rl
}

func newRateLimiter(config RateLimiterConfig, now func() time.Time) *RateLimiter {
	def := DefaultRateLimiterConfig()
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = def.RequestsPerMinute
	}
	if config.Burst <= 0 {
		config.Burst = config.RequestsPerMinute
	}
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(config.RequestsPerMinute) / 60),
		burst:   config.Burst,
		now:     now,
		stop:    make(chan struct{}),
	}
}

func (rl *RateLimiter) limiter(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.clients[clientIP]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[clientIP] = l
	}
	return l
}

// Allow takes one token from clientIP's bucket and reports whether there was
// one to take.
func (rl *RateLimiter) Allow(clientIP string) bool {
	return rl.limiter(clientIP).AllowN(rl.now(), 1)
}

// RetryAfter is the number of whole seconds until clientIP regains a token.
func (rl *RateLimiter) RetryAfter(clientIP string) int {
	rl.mu.Lock()
	l, ok := rl.clients[clientIP]
	rl.mu.Unlock()
	if !ok {
		return 0
	}

	now := rl.now()
	missing := 1 - l.TokensAt(now)
	if missing <= 0 {
		return 0
	}
	return int(math.Ceil(missing / float64(rl.limit)))
}

// sweep drops limiters whose bucket is full again.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, l := range rl.clients {
		if l.TokensAt(now) >= float64(rl.burst) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRateLimiterConfig().CleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// RateLimitMiddleware answers 429 once a client has drained its bucket.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := getClientIP(r)
		if !rl.Allow(ip) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(max(1, rl.RetryAfter(ip))))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "rate limit exceeded, retry later",
			})
			return
		}
		next(w, r)
	}
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the connection's remote address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
