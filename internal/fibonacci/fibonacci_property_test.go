package fibonacci

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// calcF computes F(n) and reports errors as a failed property.
func calcF(algo Algorithm, n uint64) (*big.Int, bool) {
	v, err := Compute(n, algo, Options{})
	return v, err == nil
}

// TestCassinisIdentity_PropertyBased verifies Cassini's identity
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
//
// for every unrestricted algorithm over randomly generated n.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	t.Parallel()

	for _, algo := range fastAlgorithms {
		algo := algo
		t.Run(algo.String(), func(t *testing.T) {
			t.Parallel()

			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 50
			properties := gopter.NewProperties(parameters)

			properties.Property("Cassini's identity holds", prop.ForAll(
				func(n uint64) bool {
					fnm1, ok1 := calcF(algo, n-1)
					fn, ok2 := calcF(algo, n)
					fnp1, ok3 := calcF(algo, n+1)
					if !ok1 || !ok2 || !ok3 {
						return false
					}
					lhs := new(big.Int).Mul(fnm1, fnp1)
					lhs.Sub(lhs, new(big.Int).Mul(fn, fn))

					want := big.NewInt(1)
					if n%2 == 1 {
						want.Neg(want)
					}
					return lhs.Cmp(want) == 0
				},
				gen.UInt64Range(1, 5000),
			))

			properties.TestingRun(t)
		})
	}
}

// TestRecurrence_PropertyBased verifies F(n) = F(n-1) + F(n-2).
func TestRecurrence_PropertyBased(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("F(n) = F(n-1) + F(n-2)", prop.ForAll(
		func(n uint64, pick int) bool {
			algo := fastAlgorithms[pick]
			a, ok1 := calcF(algo, n-2)
			b, ok2 := calcF(algo, n-1)
			c, ok3 := calcF(algo, n)
			if !ok1 || !ok2 || !ok3 {
				return false
			}
			return new(big.Int).Add(a, b).Cmp(c) == 0
		},
		gen.UInt64Range(2, 3000),
		gen.IntRange(0, len(fastAlgorithms)-1),
	))

	properties.TestingRun(t)
}

// TestGCDProperty_PropertyBased verifies gcd(F(m), F(n)) = F(gcd(m, n)),
// mixing algorithms so each side is computed differently.
func TestGCDProperty_PropertyBased(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("gcd(F(m), F(n)) = F(gcd(m, n))", prop.ForAll(
		func(m, n uint64) bool {
			fm, ok1 := calcF(Matrix, m)
			fn, ok2 := calcF(FastDoubling, n)
			if !ok1 || !ok2 {
				return false
			}
			g := new(big.Int).GCD(nil, nil, fm, fn)

			a, b := m, n
			for b != 0 {
				a, b = b, a%b
			}
			fg, ok := calcF(Iterative, a)
			return ok && g.Cmp(fg) == 0
		},
		gen.UInt64Range(1, 2000),
		gen.UInt64Range(1, 2000),
	))

	properties.TestingRun(t)
}

// TestRecursiveMatchesIterative_PropertyBased covers the accepted range of
// the naive recursion at sizes that keep the test fast.
func TestRecursiveMatchesIterative_PropertyBased(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("recursive agrees with iterative", prop.ForAll(
		func(n uint64) bool {
			r, ok1 := calcF(Recursive, n)
			i, ok2 := calcF(Iterative, n)
			return ok1 && ok2 && r.Cmp(i) == 0
		},
		gen.UInt64Range(0, 22),
	))

	properties.TestingRun(t)
}
