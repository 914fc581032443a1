package fibonacci

import (
	"fmt"
	"math/big"
	"testing"
)

func TestMod_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    uint64
		mod  int64
		want int64
	}{
		{0, 1000, 0},
		{1, 1000, 1},
		{10, 1000, 55},
		{100, 10000, 5075},
		{1000, 1000000, 228875},
		{500, 1000000000000, 222521294125},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("N=%d_mod_%d", tc.n, tc.mod), func(t *testing.T) {
			t.Parallel()
			result, err := Mod(tc.n, big.NewInt(tc.mod))
			if err != nil {
				t.Fatalf("Mod error: %v", err)
			}
			if result.Int64() != tc.want {
				t.Errorf("Mod(%d, %d) = %d, want %d", tc.n, tc.mod, result.Int64(), tc.want)
			}
		})
	}
}

func TestMod_ConsistentWithFull(t *testing.T) {
	t.Parallel()

	full := mustCompute(t, 3000, Matrix)
	m := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	want := new(big.Int).Mod(full, m)

	got, err := Mod(3000, m)
	if err != nil {
		t.Fatalf("Mod error: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("Mod(3000, 10^100) disagrees with full computation")
	}
}

func TestMod_InvalidModulus(t *testing.T) {
	t.Parallel()

	for _, m := range []*big.Int{nil, big.NewInt(0), big.NewInt(-7)} {
		if _, err := Mod(10, m); err == nil {
			t.Errorf("Mod(10, %v) succeeded, want error", m)
		}
	}
}

func TestLastDigits_Padding(t *testing.T) {
	t.Parallel()

	got, err := LastDigits(10, 5)
	if err != nil {
		t.Fatalf("LastDigits error: %v", err)
	}
	if got != "00055" {
		t.Errorf("LastDigits(10, 5) = %q, want %q", got, "00055")
	}
	if _, err := LastDigits(10, 0); err == nil {
		t.Error("LastDigits(10, 0) succeeded, want error")
	}
}

func TestVerifySuffix(t *testing.T) {
	t.Parallel()

	f1000 := mustCompute(t, 1000, Iterative).String()

	tests := []struct {
		name    string
		n       uint64
		value   string
		k       int
		wantErr bool
	}{
		{"zero", 0, "0", 12, false},
		{"short value", 10, "55", 12, false},
		{"long value", 1000, f1000, 12, false},
		{"wrong tail", 1000, f1000[:len(f1000)-1] + "0", 12, true},
		{"wrong short value", 10, "56", 12, true},
		{"padded short value", 10, "055", 12, true},
		{"empty", 10, "", 12, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := VerifySuffix(tt.n, tt.value, tt.k)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifySuffix() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
