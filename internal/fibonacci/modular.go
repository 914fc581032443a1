package fibonacci

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Mod computes F(n) mod m with iterative fast doubling over the bits of n.
// Intermediate values never exceed m², so memory is O(log m) for any n.
func Mod(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}

	a := big.NewInt(0) // F(k)
	b := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2F(k+1) - F(k))
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mod(t1, m)
		t1.Mul(t1, a)
		t1.Mod(t1, m)

		// F(2k+1) = F(k)² + F(k+1)²
		t2.Mul(b, b)
		a.Mul(a, a)
		t2.Add(t2, a)
		t2.Mod(t2, m)

		a.Set(t1)
		b.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			t1.Mod(t1, m)
			a.Set(b)
			b.Set(t1)
		}
	}

	return a.Mod(a, m), nil
}

// LastDigits returns the last k decimal digits of F(n), zero-padded to k.
func LastDigits(n uint64, k int) (string, error) {
	if k <= 0 {
		return "", fmt.Errorf("digit count must be positive, got %d", k)
	}
	m := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	r, err := Mod(n, m)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*s", k, r.String()), nil
}

// VerifySuffix checks the trailing digits of a decimal value against
// F(n) mod 10^k. Values shorter than k are compared in full.
func VerifySuffix(n uint64, value string, k int) error {
	if k > len(value) {
		k = len(value)
	}
	if k == 0 {
		return fmt.Errorf("empty value for F(%d)", n)
	}
	want, err := LastDigits(n, k)
	if err != nil {
		return err
	}
	got := value[len(value)-k:]
	if len(value) == k {
		// A short value must not carry leading zeros beyond "0" itself.
		want = strings.TrimLeft(want, "0")
		if want == "" {
			want = "0"
		}
		got = value
	}
	if got != want {
		return fmt.Errorf("F(%d) ends in %s, want %s", n, got, want)
	}
	return nil
}
