package fibonacci

import "math/big"

// matrix is a 2x2 matrix of big integers laid out as
//
//	| a b |
//	| c d |
type matrix struct {
	a, b, c, d *big.Int
}

func identity() matrix {
	return matrix{big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(1)}
}

// qMatrix returns [[1,1],[1,0]], whose k-th power is [[F(k+1),F(k)],[F(k),F(k-1)]].
func qMatrix() matrix {
	return matrix{big.NewInt(1), big.NewInt(1), big.NewInt(1), big.NewInt(0)}
}

// mul returns the product m*o as a new matrix.
func (m matrix) mul(o matrix) matrix {
	cell := func(x, y, z, w *big.Int) *big.Int {
		p := new(big.Int).Mul(x, y)
		return p.Add(p, new(big.Int).Mul(z, w))
	}
	return matrix{
		a: cell(m.a, o.a, m.b, o.c),
		b: cell(m.a, o.b, m.b, o.d),
		c: cell(m.c, o.a, m.d, o.c),
		d: cell(m.c, o.b, m.d, o.d),
	}
}

// pow computes m^e by square-and-multiply on the bits of e.
func (m matrix) pow(e uint64) matrix {
	result := identity()
	base := m
	for e > 0 {
		if e&1 == 1 {
			result = result.mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.mul(base)
		}
	}
	return result
}

// matrixPower returns F(n) as the top-left entry of Q^(n-1).
func matrixPower(n uint64) *big.Int {
	if n < 2 {
		return new(big.Int).SetUint64(n)
	}
	return qMatrix().pow(n - 1).a
}
