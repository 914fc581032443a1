package history

import (
	"math"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// AlgorithmStats summarizes the recorded timings of one algorithm.
type AlgorithmStats struct {
	Algorithm  fibonacci.Algorithm
	Runs       int
	MinMillis  float64
	MaxMillis  float64
	MeanMillis float64
	LastMillis float64
	LastN      uint64
	MaxDigits  int
}

// Stats returns one summary per algorithm that has at least one entry, in
// declaration order.
func (s *Store) Stats() []AlgorithmStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byAlgo := make(map[fibonacci.Algorithm]*AlgorithmStats)
	// Iterate oldest to newest so that Last* end up holding the newest entry.
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		st, ok := byAlgo[e.Algorithm]
		if !ok {
			st = &AlgorithmStats{Algorithm: e.Algorithm, MinMillis: math.Inf(1)}
			byAlgo[e.Algorithm] = st
		}
		st.Runs++
		st.MinMillis = math.Min(st.MinMillis, e.ElapsedMillis)
		st.MaxMillis = math.Max(st.MaxMillis, e.ElapsedMillis)
		st.MeanMillis += e.ElapsedMillis
		st.LastMillis = e.ElapsedMillis
		st.LastN = e.N
		if e.Digits > st.MaxDigits {
			st.MaxDigits = e.Digits
		}
	}

	out := make([]AlgorithmStats, 0, len(byAlgo))
	for _, algo := range fibonacci.Algorithms() {
		if st, ok := byAlgo[algo]; ok {
			st.MeanMillis /= float64(st.Runs)
			out = append(out, *st)
		}
	}
	return out
}

// Series returns up to limit timings (ms) of algo in chronological order,
// oldest first. limit <= 0 means all.
func (s *Store) Series(algo fibonacci.Algorithm, limit int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var series []float64
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Algorithm == algo {
			series = append(series, s.entries[i].ElapsedMillis)
		}
	}
	if limit > 0 && len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series
}
