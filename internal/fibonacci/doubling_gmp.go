//go:build gmp

// Building with -tags=gmp moves the fast doubling arithmetic onto libgmp
// through cgo. The other strategies stay on math/big.
//
// System requirements:
//   - Linux: sudo apt-get install libgmp-dev
//   - macOS: brew install gmp

package fibonacci

import (
	"math/big"

	"github.com/ncw/gmp"
)

// fastDoubling returns F(n) by recursive halving of the index, on GMP integers.
func fastDoubling(n uint64) *big.Int {
	f, _ := gmpDoublingPair(n)
	return new(big.Int).SetBytes(f.Bytes())
}

// gmpDoublingPair returns (F(n), F(n+1)); see doubling.go for the identities.
func gmpDoublingPair(n uint64) (*gmp.Int, *gmp.Int) {
	if n == 0 {
		return gmp.NewInt(0), gmp.NewInt(1)
	}
	a, b := gmpDoublingPair(n >> 1)

	c := gmp.NewInt(0)
	c.MulUint32(b, 2)
	c.Sub(c, a)
	c.Mul(c, a)

	d := gmp.NewInt(0)
	d.Mul(a, a)
	b.Mul(b, b)
	d.Add(d, b)

	if n&1 == 0 {
		return c, d
	}
	return d, c.Add(c, d)
}
