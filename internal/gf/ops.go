package gf

import "math/big"

// Add sets z = x XOR y. Subtraction in GF(2^m) is identical, so there
// is no separate Sub.
func (p *Params) Add(z, x, y *big.Int) {
	z.Xor(x, y)
}

// Mul sets z = x*y in GF(2^m) via shift-and-add reduction against the
// field's irreducible polynomial. z and y must not be the same
// *big.Int (the accumulator in z is built incrementally while y's
// bits are scanned); x may alias z.
func (p *Params) Mul(z, x, y *big.Int) {
	if z == y {
		panic("gf: Mul requires z and y to be distinct")
	}

	b := new(big.Int).Set(x)
	if y.Bit(0) == 1 {
		z.Set(b)
	} else {
		z.SetInt64(0)
	}

	for i := 1; i < p.M; i++ {
		b.Lsh(b, 1)
		if b.Bit(p.M) == 1 {
			b.Xor(b, p.P)
		}
		if y.Bit(i) == 1 {
			z.Xor(z, b)
		}
	}
}

// Inv sets z = x^-1 in GF(2^m) using the extended binary GCD. x must
// be nonzero; inverting zero is a programming error, not a user-input
// error (spec.md §4.4), so callers must check Cmp0 first.
func (p *Params) Inv(z, x *big.Int) {
	if x.Sign() == 0 {
		panic("gf: Inv of zero")
	}

	u := new(big.Int).Set(x)
	v := new(big.Int).Set(p.P)
	g := big.NewInt(0)
	z.SetInt64(1)
	h := new(big.Int)

	for u.Cmp(bigOne) != 0 {
		j := sizeInBits(u) - sizeInBits(v)
		if j < 0 {
			p.Swap(u, v)
			p.Swap(z, g)
			j = -j
		}
		h.Lsh(v, uint(j))
		u.Xor(u, h)
		h.Lsh(g, uint(j))
		z.Xor(z, h)
	}
}

// Swap exchanges the values held by a and b (not the pointers), so
// callers that hold other references to a or b observe the swap.
func (p *Params) Swap(a, b *big.Int) {
	h := new(big.Int).Set(a)
	a.Set(b)
	b.Set(h)
}

// Cmp0 reports whether x is the zero element.
func (p *Params) Cmp0(x *big.Int) bool {
	return x.Sign() == 0
}

// TestBit reports whether bit i of x is set.
func (p *Params) TestBit(x *big.Int, i int) bool {
	return x.Bit(i) == 1
}

// SetBit sets bit i of x.
func (p *Params) SetBit(x *big.Int, i int) {
	x.SetBit(x, i, 1)
}

// ClrBit clears bit i of x.
func (p *Params) ClrBit(x *big.Int, i int) {
	x.SetBit(x, i, 0)
}

var bigOne = big.NewInt(1)

// sizeInBits mirrors ssss.c's mpz_sizeinbits macro: 0 for the zero
// value (rather than big.Int.BitLen's already-matching behavior, kept
// as a named helper for clarity at call sites).
func sizeInBits(x *big.Int) int {
	return x.BitLen()
}
