package fibonacci

import "math/big"

// memoized fills table[0..n] forward and returns table[n]. Every entry stays
// reachable until the call returns, so memory grows with the total size of
// F(0)..F(n).
func memoized(n uint64) *big.Int {
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(0)
	if n == 0 {
		return table[0]
	}
	table[1] = big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		table[i] = new(big.Int).Add(table[i-1], table[i-2])
	}
	return table[n]
}
