package fibonacci

import "math/big"

// recursive evaluates the definition directly. The guard runs once, before
// any recursion, so a rejected request costs nothing.
func recursive(n, limit uint64) (*big.Int, error) {
	if n > limit {
		return nil, &InputTooLargeError{Algorithm: Recursive, N: n, Limit: limit}
	}
	return naive(n), nil
}

func naive(n uint64) *big.Int {
	if n < 2 {
		return new(big.Int).SetUint64(n)
	}
	a := naive(n - 1)
	return a.Add(a, naive(n-2))
}
