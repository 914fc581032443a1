//go:build !gmp

package fibonacci

import "math/big"

// fastDoubling returns F(n) by recursive halving of the index.
func fastDoubling(n uint64) *big.Int {
	f, _ := doublingPair(n)
	return f
}

// doublingPair returns (F(n), F(n+1)). With k = n/2, c = F(2k) and d = F(2k+1):
//
//	F(2k)   = F(k) * (2F(k+1) - F(k))
//	F(2k+1) = F(k)² + F(k+1)²
//
// The parity of n then selects (c, d) or (d, c+d). Depth is bits.Len64(n).
func doublingPair(n uint64) (*big.Int, *big.Int) {
	if n == 0 {
		return big.NewInt(0), big.NewInt(1)
	}
	a, b := doublingPair(n >> 1)

	c := new(big.Int).Lsh(b, 1)
	c.Sub(c, a)
	c.Mul(c, a)

	d := new(big.Int).Mul(a, a)
	b.Mul(b, b)
	d.Add(d, b)

	if n&1 == 0 {
		return c, d
	}
	return d, c.Add(c, d)
}
