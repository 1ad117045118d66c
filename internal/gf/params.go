// Package gf implements GF(2^m) arithmetic (C3/C4 from spec.md §4.3-4.4),
// the codec between field elements and text (C5), Horner polynomial
// evaluation (C7), and Gaussian elimination over the field (C8).
//
// Field elements are represented with math/big.Int, which plays the
// "bignum integer library" role spec.md §1 and §9 explicitly scope out
// of the core: the core only ever calls bit-test/set/clear, shift,
// xor, compare, and byte import/export, all of which big.Int provides
// natively. See DESIGN.md for why this is the one deliberate
// standard-library choice in an otherwise third-party-heavy module.
package gf

import (
	"math/big"
	"strconv"

	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// MaxDegree is the largest supported field degree, matching ssss.c's
// MAXDEGREE and spec.md's m ∈ {8,...,1024}.
const MaxDegree = 1024

// irredCoeff holds, for each supported degree m (indexed by m/8 - 1),
// the three middle nonzero exponents of a fixed irreducible polynomial
// of degree m over GF(2). Reproduced verbatim from the reference
// table (spec.md §6); P_m(x) = x^m + x^a + x^b + x^c + 1.
var irredCoeff = [MaxDegree / 8 * 3]byte{
	4, 3, 1, 5, 3, 1, 4, 3, 1, 7, 3, 2, 5, 4, 3,
	5, 3, 2, 7, 4, 2, 4, 3, 1, 10, 9, 3, 9, 4, 2,
	7, 6, 2, 10, 9, 6, 4, 3, 1, 5, 4, 3, 4, 3, 1,
	7, 2, 1, 5, 3, 2, 7, 4, 2, 6, 3, 2, 5, 3, 2,
	15, 3, 2, 11, 3, 2, 9, 8, 7, 7, 2, 1, 5, 3, 2,
	9, 3, 1, 7, 3, 1, 9, 8, 3, 9, 4, 2, 8, 5, 3,
	15, 14, 10, 10, 5, 2, 9, 6, 2, 9, 3, 2, 9, 5, 2,
	11, 10, 1, 7, 3, 2, 11, 2, 1, 9, 7, 4, 4, 3, 1,
	8, 3, 1, 7, 4, 1, 7, 2, 1, 13, 11, 6, 5, 3, 2,
	7, 3, 2, 8, 7, 5, 12, 3, 2, 13, 10, 6, 5, 3, 2,
	5, 3, 2, 9, 5, 2, 9, 7, 2, 13, 4, 3, 4, 3, 1,
	11, 6, 4, 18, 9, 6, 19, 18, 13, 11, 3, 2, 15, 9, 6,
	4, 3, 1, 16, 5, 2, 15, 14, 6, 8, 5, 2, 15, 11, 2,
	11, 6, 2, 7, 5, 3, 8, 3, 1, 19, 16, 9, 11, 9, 6,
	15, 7, 6, 13, 4, 3, 14, 13, 3, 13, 6, 3, 9, 5, 2,
	19, 13, 6, 19, 10, 3, 11, 6, 5, 9, 2, 1, 14, 3, 2,
	13, 3, 1, 7, 5, 4, 11, 9, 8, 11, 6, 5, 23, 16, 9,
	19, 14, 6, 23, 10, 2, 8, 3, 2, 5, 4, 3, 9, 6, 4,
	4, 3, 2, 13, 8, 6, 13, 11, 1, 13, 10, 3, 11, 6, 5,
	19, 17, 4, 15, 14, 7, 13, 9, 6, 9, 7, 3, 9, 7, 1,
	14, 3, 2, 11, 8, 2, 11, 6, 4, 13, 5, 2, 11, 5, 1,
	11, 4, 1, 19, 10, 3, 21, 10, 6, 13, 3, 1, 15, 7, 5,
	19, 18, 10, 7, 5, 3, 12, 7, 2, 7, 5, 1, 14, 9, 6,
	10, 3, 2, 15, 13, 12, 12, 11, 9, 16, 9, 7, 12, 9, 3,
	9, 5, 2, 17, 10, 6, 24, 9, 3, 17, 15, 13, 5, 4, 3,
	19, 17, 8, 15, 6, 3, 19, 6, 1,
}

// Params carries the active field degree and its irreducible
// polynomial (C3). A Params value is process-wide for the duration of
// one split or combine operation (spec.md §5) but is passed explicitly
// rather than kept global, per spec.md §9's design note.
type Params struct {
	M int      // field degree
	P *big.Int // irreducible polynomial of degree M
}

// Valid reports whether m is a supported field degree: 8 <= m <= 1024
// and m is a multiple of 8.
func Valid(m int) bool {
	return m >= 8 && m <= MaxDegree && m%8 == 0
}

// New builds the Params for field degree m, setting bit m, bit 0, and
// the three table-driven middle bits of the irreducible polynomial.
func New(m int) (*Params, error) {
	if !Valid(m) {
		return nil, sigilerr.WithDetail(sigilerr.ErrInvalidSecurityLevel, "m", strconv.Itoa(m))
	}

	p := new(big.Int)
	p.SetBit(p, m, 1)
	off := 3 * (m/8 - 1)
	p.SetBit(p, int(irredCoeff[off+0]), 1)
	p.SetBit(p, int(irredCoeff[off+1]), 1)
	p.SetBit(p, int(irredCoeff[off+2]), 1)
	p.SetBit(p, 0, 1)

	return &Params{M: m, P: p}, nil
}
