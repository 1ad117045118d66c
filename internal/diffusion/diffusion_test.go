package diffusion_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJoy/ssss/internal/diffusion"
)

func randomFieldElement(t *testing.T, m int) *big.Int {
	t.Helper()
	buf := make([]byte, m/8)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return new(big.Int).SetBytes(buf)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	// 72 exercises the odd-length fold (m % 16 == 8); the others don't.
	for _, m := range []int{64, 72, 128, 256} {
		m := m
		t.Run("", func(t *testing.T) {
			t.Parallel()
			require.True(t, diffusion.Applicable(m))

			x := randomFieldElement(t, m)
			encoded := diffusion.Encode(x, m)
			decoded := diffusion.Decode(encoded, m)
			assert.Equal(t, 0, x.Cmp(decoded), "decode(encode(x)) must equal x")
			assert.LessOrEqual(t, encoded.BitLen(), m)
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, m := range []int{64, 72, 128} {
		m := m
		t.Run("", func(t *testing.T) {
			t.Parallel()
			x := randomFieldElement(t, m)
			decoded := diffusion.Decode(x, m)
			encoded := diffusion.Encode(decoded, m)
			assert.Equal(t, 0, x.Cmp(encoded), "encode(decode(x)) must equal x")
		})
	}
}

func TestEncodeIsNotIdentity(t *testing.T) {
	t.Parallel()
	x := big.NewInt(0x0102030405060708)
	got := diffusion.Encode(x, 64)
	assert.NotEqual(t, 0, x.Cmp(got))
}

func TestApplicableRejectsSmallDegrees(t *testing.T) {
	t.Parallel()
	assert.False(t, diffusion.Applicable(8))
	assert.False(t, diffusion.Applicable(32))
	assert.True(t, diffusion.Applicable(64))
}
