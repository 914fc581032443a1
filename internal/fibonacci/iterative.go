package fibonacci

import "math/big"

// iterative walks the pair (prev, curr) = (F(i), F(i+1)) forward n times.
func iterative(n uint64) *big.Int {
	prev, curr := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		// prev becomes the old curr, curr becomes prev+curr.
		prev.Add(prev, curr)
		prev, curr = curr, prev
	}
	return prev
}
