package gf_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJoy/ssss/internal/gf"
)

func randomElement(t *testing.T, p *gf.Params) *big.Int {
	t.Helper()
	buf := make([]byte, p.M/8)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	x := new(big.Int).SetBytes(buf)
	x.SetBit(x, p.M, 0) // ensure degree < m
	for i := p.M; i < x.BitLen(); i++ {
		x.SetBit(x, i, 0)
	}
	return x
}

func TestFieldLaws(t *testing.T) {
	t.Parallel()

	for _, m := range []int{8, 16, 128} {
		m := m
		t.Run("", func(t *testing.T) {
			t.Parallel()
			p, err := gf.New(m)
			require.NoError(t, err)

			a := randomElement(t, p)
			b := randomElement(t, p)
			c := randomElement(t, p)

			// Addition: commutative, associative, identity 0.
			ab := new(big.Int)
			ba := new(big.Int)
			p.Add(ab, a, b)
			p.Add(ba, b, a)
			assert.Equal(t, 0, ab.Cmp(ba), "add must commute")

			abc1 := new(big.Int)
			tmp := new(big.Int)
			p.Add(tmp, a, b)
			p.Add(abc1, tmp, c)
			abc2 := new(big.Int)
			p.Add(tmp, b, c)
			p.Add(abc2, a, tmp)
			assert.Equal(t, 0, abc1.Cmp(abc2), "add must associate")

			zero := new(big.Int)
			z := new(big.Int)
			p.Add(z, a, zero)
			assert.Equal(t, 0, z.Cmp(a), "0 must be additive identity")

			// Multiplication: commutative, identity 1, distributes over add.
			if a.Sign() != 0 {
				ab2 := new(big.Int)
				ba2 := new(big.Int)
				p.Mul(ab2, a, b)
				p.Mul(ba2, b, a)
				assert.Equal(t, 0, ab2.Cmp(ba2), "mul must commute")

				one := big.NewInt(1)
				r := new(big.Int)
				p.Mul(r, a, one)
				assert.Equal(t, 0, r.Cmp(a), "1 must be multiplicative identity")

				inv := new(big.Int)
				p.Inv(inv, a)
				prod := new(big.Int)
				p.Mul(prod, a, inv)
				assert.Equal(t, 0, prod.Cmp(one), "a * inv(a) must equal 1")

				// distributivity: a*(b+c) == a*b + a*c
				bc := new(big.Int)
				p.Add(bc, b, c)
				left := new(big.Int)
				p.Mul(left, a, bc)

				abMul := new(big.Int)
				acMul := new(big.Int)
				p.Mul(abMul, a, b)
				p.Mul(acMul, a, c)
				right := new(big.Int)
				p.Add(right, abMul, acMul)
				assert.Equal(t, 0, left.Cmp(right), "mul must distribute over add")
			}
		})
	}
}

func TestSwap(t *testing.T) {
	t.Parallel()
	p, err := gf.New(8)
	require.NoError(t, err)

	a := big.NewInt(3)
	b := big.NewInt(7)
	p.Swap(a, b)
	assert.Equal(t, int64(7), a.Int64())
	assert.Equal(t, int64(3), b.Int64())
}

func TestSetClrTestBit(t *testing.T) {
	t.Parallel()
	p, err := gf.New(8)
	require.NoError(t, err)

	x := new(big.Int)
	p.SetBit(x, 3)
	assert.True(t, p.TestBit(x, 3))
	p.ClrBit(x, 3)
	assert.False(t, p.TestBit(x, 3))
}

func TestNewRejectsInvalidDegree(t *testing.T) {
	t.Parallel()

	for _, m := range []int{0, 1, 7, 9, 1025, 1032} {
		_, err := gf.New(m)
		assert.Error(t, err, "m=%d should be rejected", m)
	}
}
