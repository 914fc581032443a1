package fibonacci

import (
	"fmt"
	"strconv"
	"strings"
)

// log2Phi is log₂(φ); F(n) has about n*log2Phi bits.
const log2Phi = 0.6942419136306174

// log10Phi is log₁₀(φ); F(n) has about n*log10Phi decimal digits.
const log10Phi = 0.20898764024997873

// EstimateBits approximates the bit length of F(n).
func EstimateBits(n uint64) uint64 {
	return uint64(float64(n)*log2Phi) + 1
}

// EstimateDigits approximates the decimal length of F(n).
func EstimateDigits(n uint64) uint64 {
	return uint64(float64(n)*log10Phi) + 1
}

// MemoryEstimate is the heap an algorithm is expected to hold at its peak.
type MemoryEstimate struct {
	Algorithm  Algorithm
	N          uint64
	ValueBytes uint64 // size of F(n) itself
	TotalBytes uint64 // peak working set including temporaries and tables
}

// EstimateMemory returns a rough peak-heap estimate for computing F(n) with
// algo. Only Memoized keeps more than a handful of operands alive: its table
// holds every F(i), i ≤ n, which sums to about n² * log2Phi / 16 bytes.
func EstimateMemory(n uint64, algo Algorithm) MemoryEstimate {
	valueBytes := EstimateBits(n)/8 + 1
	est := MemoryEstimate{Algorithm: algo, N: n, ValueBytes: valueBytes}

	switch algo {
	case Memoized:
		// Table slots plus big.Int headers, then the values themselves.
		headers := float64(n+1) * 40
		values := float64(n) * float64(n) * log2Phi / 16
		est.TotalBytes = saturate(headers + values)
	case Matrix:
		// Two live matrices plus product temporaries.
		est.TotalBytes = saturate(float64(valueBytes) * 16)
	case FastDoubling:
		// One pair per recursion level, dominated by the top level.
		est.TotalBytes = saturate(float64(valueBytes) * 8)
	default:
		est.TotalBytes = saturate(float64(valueBytes) * 4)
	}
	return est
}

func saturate(f float64) uint64 {
	const maxUint64 = float64(^uint64(0))
	if f >= maxUint64 {
		return ^uint64(0)
	}
	return uint64(f)
}

// ParseMemoryLimit parses sizes such as "512M", "8G" or "1073741824".
// Suffixes K, M, G and T are powers of 1024; a trailing "B" or "iB" is allowed.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	s = strings.TrimSuffix(s, "IB")
	s = strings.TrimSuffix(s, "B")

	multiplier := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1 << 10
	case strings.HasSuffix(s, "M"):
		multiplier = 1 << 20
	case strings.HasSuffix(s, "G"):
		multiplier = 1 << 30
	case strings.HasSuffix(s, "T"):
		multiplier = 1 << 40
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	if v > ^uint64(0)/multiplier {
		return 0, fmt.Errorf("memory limit %q overflows", s)
	}
	return v * multiplier, nil
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
