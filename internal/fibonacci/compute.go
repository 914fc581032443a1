// Package fibonacci implements exact computation of Fibonacci numbers on
// arbitrary-precision integers with five interchangeable strategies.
//
// All strategies agree on every input they accept: F(0) = 0, F(1) = 1 and
// F(n) = F(n-1) + F(n-2). They differ only in cost, which is what the rest
// of the application measures.
package fibonacci

import "math/big"

// DefaultRecursionLimit is the largest index the naive recursive strategy
// accepts unless Options.RecursionLimit overrides it.
const DefaultRecursionLimit uint64 = 40

// Options tunes the strategies. The zero value is ready to use.
type Options struct {
	// RecursionLimit is the largest n accepted by Recursive.
	// Zero selects DefaultRecursionLimit.
	RecursionLimit uint64
}

func (o Options) recursionLimit() uint64 {
	if o.RecursionLimit == 0 {
		return DefaultRecursionLimit
	}
	return o.RecursionLimit
}

// Compute returns F(n) using the selected algorithm.
//
// The only policy failures are an algorithm outside the supported set and
// Recursive receiving n above its limit. The returned integer is owned by
// the caller.
func Compute(n uint64, algo Algorithm, opts Options) (*big.Int, error) {
	switch algo {
	case Iterative:
		return iterative(n), nil
	case Recursive:
		return recursive(n, opts.recursionLimit())
	case FastDoubling:
		return fastDoubling(n), nil
	case Matrix:
		return matrixPower(n), nil
	case Memoized:
		return memoized(n), nil
	default:
		return nil, &UnknownAlgorithmError{Name: algo.String()}
	}
}
