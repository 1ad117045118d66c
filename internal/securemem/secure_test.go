package securemem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJoy/ssss/internal/securemem"
)

func TestBufferRelease(t *testing.T) {
	t.Parallel()

	b := securemem.New(32)
	require.Equal(t, 32, b.Len())

	data := b.Bytes()
	for i := range data {
		data[i] = 0xAB
	}

	b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Bytes())

	// Releasing twice must not panic.
	require.NotPanics(t, func() { b.Release() })
}

func TestFromBytesCopies(t *testing.T) {
	t.Parallel()

	src := []byte{1, 2, 3, 4}
	b := securemem.FromBytes(src)
	defer b.Release()

	assert.Equal(t, src, b.Bytes())

	// Mutating the secure copy must not affect the original.
	b.Bytes()[0] = 0xFF
	assert.Equal(t, byte(1), src[0])
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()

	data := []byte("super secret")
	securemem.ZeroBytes(data)
	for _, c := range data {
		assert.Equal(t, byte(0), c)
	}
}
