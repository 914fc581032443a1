package fibonacci

import "testing"

func TestEstimateDigits(t *testing.T) {
	t.Parallel()

	for _, n := range []uint64{100, 1000, 10000} {
		exact := uint64(len(mustCompute(t, n, FastDoubling).String()))
		got := EstimateDigits(n)
		if got+1 < exact || got > exact+1 {
			t.Errorf("EstimateDigits(%d) = %d, exact %d", n, got, exact)
		}
	}
}

func TestEstimateMemory_MemoizedDominates(t *testing.T) {
	t.Parallel()

	const n = 1_000_000
	memo := EstimateMemory(n, Memoized)
	doubling := EstimateMemory(n, FastDoubling)
	if memo.TotalBytes <= doubling.TotalBytes {
		t.Errorf("memo estimate %d not above doubling estimate %d", memo.TotalBytes, doubling.TotalBytes)
	}
	if memo.TotalBytes < 1<<34 {
		t.Errorf("memo estimate for n=%d is %s, expected tens of GiB", uint64(n), FormatBytes(memo.TotalBytes))
	}
}

func TestEstimateMemory_Saturates(t *testing.T) {
	t.Parallel()

	est := EstimateMemory(^uint64(0), Memoized)
	if est.TotalBytes != ^uint64(0) {
		t.Errorf("TotalBytes = %d, want saturation", est.TotalBytes)
	}
}

func TestParseMemoryLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"8K", 8 << 10, false},
		{"512M", 512 << 20, false},
		{"512MB", 512 << 20, false},
		{"8G", 8 << 30, false},
		{"8gib", 8 << 30, false},
		{"1T", 1 << 40, false},
		{"", 0, true},
		{"lots", 0, true},
		{"-1G", 0, true},
		{"99999999999T", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMemoryLimit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMemoryLimit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMemoryLimit(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
