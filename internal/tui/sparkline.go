package tui

// sparklineChars maps levels 0..7 to the block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer of samples.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity (at least 1).
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push adds a sample, overwriting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of samples held.
func (r *RingBuffer) Len() int { return r.count }

// Last returns the most recent sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// RenderSparkline draws values scaled against ceiling, one block per value.
// A non-positive ceiling uses the largest value. Values are clamped to
// [0, ceiling].
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	if ceiling <= 0 {
		for _, v := range values {
			ceiling = max(ceiling, v)
		}
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 && v > 0 {
			level = int(min(v, ceiling) / ceiling * 7)
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}
