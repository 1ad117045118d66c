package gf

import (
	"math/big"

	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// Matrix is a K*K arena of field elements, column-major to match
// spec.md §4.8's column-oriented elimination: At(row, col) is the
// element in row `row`, column `col`. Using a single contiguous arena
// of *big.Int rather than a matrix of matrices keeps allocation and
// zeroization simple, per spec.md §9's design note.
type Matrix struct {
	k     int
	cells []*big.Int
}

// NewMatrix allocates a zero-valued k*k matrix.
func NewMatrix(k int) *Matrix {
	cells := make([]*big.Int, k*k)
	for i := range cells {
		cells[i] = new(big.Int)
	}
	return &Matrix{k: k, cells: cells}
}

// At returns the element at (row, col).
func (mx *Matrix) At(row, col int) *big.Int {
	return mx.cells[col*mx.k+row]
}

// SwapColumnsFrom swaps columns i and j for rows i..k-1 (not the full
// column), matching ssss.c's restore_secret which only swaps the
// as-yet-untriangularized rows.
func (p *Params) SwapColumnsFrom(mx *Matrix, i, j int) {
	for row := i; row < mx.k; row++ {
		p.Swap(mx.At(row, i), mx.At(row, j))
	}
}

// Solve runs Gaussian elimination over GF(2^m) on the k*k matrix AA
// and right-hand side b, per spec.md §4.8. It returns the secret
// (b[k-1] after triangularization, divided by the final pivot). If
// recover is true, it additionally back-substitutes so that b holds
// the full coefficient vector in descending-degree order (recovery
// mode, spec.md §4.8/§4.10).
//
// On success b is mutated in place; the caller owns zeroizing both AA
// and b. Solve never partially mutates AA's already-triangularized
// prefix once an inconsistency is detected — it returns immediately
// with ErrInconsistent, as ssss.c's restore_secret does.
func (p *Params) Solve(mx *Matrix, b []*big.Int, recover bool) (*big.Int, error) {
	k := mx.k
	h := new(big.Int)

	for i := 0; i < k; i++ {
		if p.Cmp0(mx.At(i, i)) {
			found := -1
			for j := i + 1; j < k; j++ {
				if !p.Cmp0(mx.At(i, j)) {
					found = j
					break
				}
			}
			if found < 0 {
				return nil, sigilerr.ErrInconsistent
			}
			p.SwapColumnsFrom(mx, i, found)
			p.Swap(b[i], b[found])
		}

		pivot := mx.At(i, i)
		for j := i + 1; j < k; j++ {
			if p.Cmp0(mx.At(i, j)) {
				continue
			}
			col := mx.At(i, j)
			for row := i + 1; row < k; row++ {
				p.Mul(h, mx.At(row, i), col)
				p.Mul(mx.At(row, j), mx.At(row, j), pivot)
				p.Add(mx.At(row, j), mx.At(row, j), h)
			}
			p.Mul(h, b[i], col)
			p.Mul(b[j], b[j], pivot)
			p.Add(b[j], b[j], h)
		}
	}

	inv := new(big.Int)
	p.Inv(inv, mx.At(k-1, k-1))
	p.Mul(b[k-1], b[k-1], inv)

	if recover {
		p.backSubstitute(mx, b)
	}

	return b[k-1], nil
}

// backSubstitute implements spec.md §4.8's recovery-mode completion:
// from i = k-2 downTo 0, b[i] -= sum_{j>i} b[j]*AA[j][i], then divide
// by the diagonal pivot AA[i][i].
func (p *Params) backSubstitute(mx *Matrix, b []*big.Int) {
	k := mx.k
	term := new(big.Int)
	inv := new(big.Int)

	for i := k - 2; i >= 0; i-- {
		for j := i + 1; j < k; j++ {
			p.Mul(term, b[j], mx.At(j, i))
			p.Add(b[i], b[i], term)
		}
		p.Inv(inv, mx.At(i, i))
		p.Mul(b[i], b[i], inv)
	}
}
