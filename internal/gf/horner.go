package gf

import "math/big"

// Horner evaluates the share polynomial at x using coeff[0..n-1] as
// ascending-degree coefficients (coeff[0] is the constant term). It
// follows ssss.c's convention exactly: y starts at x rather than 0,
// which adds an extra x^n term to the ordinary polynomial c_0 + c_1 x
// + ... + c_{n-1} x^{n-1}. Combine's matrix construction (linsolve.go)
// subtracts that term back off, per spec.md §4.7-4.8.
func (p *Params) Horner(n int, x *big.Int, coeff []*big.Int) *big.Int {
	y := new(big.Int).Set(x)
	for i := n - 1; i > 0; i-- {
		p.Add(y, y, coeff[i])
		p.Mul(y, y, x)
	}
	p.Add(y, y, coeff[0])
	return y
}

// HornerR evaluates the same polynomial form as Horner but reads its
// coefficients in reverse: coeffDesc holds them highest-degree-first,
// as produced by LinSolve's recovery back-substitution (spec.md §4.8).
// Used by recovery mode to regenerate shares from the recovered
// coefficient vector.
func (p *Params) HornerR(n int, x *big.Int, coeffDesc []*big.Int) *big.Int {
	coeff := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		coeff[i] = coeffDesc[n-1-i]
	}
	return p.Horner(n, x, coeff)
}
