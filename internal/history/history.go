// Package history keeps the bounded, most-recent-first list of successful
// computations, persists it as JSON and derives per-algorithm statistics and
// chart series from it.
package history

import (
	"sync"
	"time"

	"github.com/agbru/fibbench/internal/engine"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// MaxEntries is the largest number of entries a Store retains.
const MaxEntries = 50

// Entry is one successful computation.
type Entry struct {
	ID            string              `json:"id"`
	Algorithm     fibonacci.Algorithm `json:"type"`
	N             uint64              `json:"n"`
	ElapsedMillis float64             `json:"time"`
	Result        string              `json:"result"`
	Digits        int                 `json:"digits"`
	Timestamp     time.Time           `json:"timestamp"`
}

// EntryFromResult converts a successful engine result. ok is false for a
// failure, which never becomes an Entry.
func EntryFromResult(res engine.Result, at time.Time) (e Entry, ok bool) {
	if !res.Success() {
		return Entry{}, false
	}
	return Entry{
		ID:            res.RequestID,
		Algorithm:     res.Algorithm,
		N:             res.N,
		ElapsedMillis: res.ElapsedMillis(),
		Result:        res.Value,
		Digits:        res.Digits(),
		Timestamp:     at,
	}, true
}

// Store is a bounded history. The newest entry is at index 0 and the oldest
// entry is evicted once the capacity is reached. Store is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	path     string
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity bounds the store to n entries, clamped to [1, MaxEntries].
func WithCapacity(n int) Option {
	return func(s *Store) {
		switch {
		case n < 1:
			s.capacity = 1
		case n > MaxEntries:
			s.capacity = MaxEntries
		default:
			s.capacity = n
		}
	}
}

// WithPath makes Record and Clear persist the store to path.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store. Call Load to read a persisted history.
func NewStore(opts ...Option) *Store {
	s := &Store{capacity: MaxEntries, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts e at the front, evicting the oldest entry when full.
func (s *Store) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(e)
}

func (s *Store) addLocked(e Entry) {
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

// Record adds a successful result and persists the store when a path is
// set. Failures are ignored. It implements orchestration.ResultSink.
func (s *Store) Record(res engine.Result) error {
	e, ok := EntryFromResult(res, s.now())
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(e)
	if s.path == "" {
		return nil
	}
	return s.saveLocked(s.path)
}

// Entries returns a copy of the entries, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Latest returns the newest entry.
func (s *Store) Latest() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// Find returns the newest entry for F(n), preferring algo when it is valid.
func (s *Store) Find(n uint64, algo fibonacci.Algorithm) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var fallback *Entry
	for i := range s.entries {
		e := &s.entries[i]
		if e.N != n {
			continue
		}
		if !algo.Valid() || e.Algorithm == algo {
			return *e, true
		}
		if fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Capacity returns the maximum number of entries.
func (s *Store) Capacity() int {
	return s.capacity
}

// Clear removes every entry and persists the empty store when a path is set.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	if s.path == "" {
		return nil
	}
	return s.saveLocked(s.path)
}
