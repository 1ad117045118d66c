// Package diffusion implements the all-or-nothing transform described in
// spec.md §4.6: a 64-bit block permutation (the XTEA round function with
// an all-zero key) lifted, via a sliding 8-byte window, into a bijection
// on m-bit field elements. It is applied to the constant coefficient
// before splitting and undone after combining, so that an attacker
// needs every byte of every share to learn anything about the secret
// (spec.md §4.9/§4.10).
package diffusion

import (
	"math/big"

	"github.com/MrJoy/ssss/internal/securemem"
)

// MinFieldDegree is the smallest field degree the transform may be
// applied to; below it the 8-byte sliding window no longer makes sense
// (spec.md §4.6). Callers are responsible for warning and skipping
// diffusion when the active degree is smaller.
const MinFieldDegree = 64

// Applicable reports whether the diffusion layer may be used at field
// degree m.
func Applicable(m int) bool {
	return m >= MinFieldDegree
}

const xteaDelta = 0x9E3779B9

func xteaEncipherBlock(v *[2]uint32) {
	var sum uint32
	for i := 0; i < 32; i++ {
		v[0] += (((v[1] << 4) ^ (v[1] >> 5)) + v[1]) ^ sum
		sum += xteaDelta
		v[1] += (((v[0] << 4) ^ (v[0] >> 5)) + v[0]) ^ sum
	}
}

func xteaDecipherBlock(v *[2]uint32) {
	sum := uint32(0xC6EF3720)
	for i := 0; i < 32; i++ {
		v[1] -= ((v[0]<<4 ^ v[0]>>5) + v[0]) ^ sum
		sum -= xteaDelta
		v[0] -= ((v[1]<<4 ^ v[1]>>5) + v[1]) ^ sum
	}
}

// encodeSlice reads one 8-byte window starting at idx (wrapping modulo
// length) out of data, runs it through block, and writes the result
// back into the same wrapped window. length is the logical span of the
// diffusion buffer, which may be one byte shorter than len(data) when
// the odd-length fold (below) is in play.
func encodeSlice(data []byte, idx, length int, block func(*[2]uint32)) {
	var v [2]uint32
	for i := 0; i < 2; i++ {
		v[i] = uint32(data[(idx+4*i)%length])<<24 |
			uint32(data[(idx+4*i+1)%length])<<16 |
			uint32(data[(idx+4*i+2)%length])<<8 |
			uint32(data[(idx+4*i+3)%length])
	}
	block(&v)
	for i := 0; i < 2; i++ {
		data[(idx+4*i+0)%length] = byte(v[i] >> 24)
		data[(idx+4*i+1)%length] = byte(v[i] >> 16)
		data[(idx+4*i+2)%length] = byte(v[i] >> 8)
		data[(idx+4*i+3)%length] = byte(v[i])
	}
}

// Encode applies the forward transform to x at field degree m.
func Encode(x *big.Int, m int) *big.Int {
	return transform(x, m, true)
}

// Decode applies the inverse transform to x at field degree m.
func Decode(x *big.Int, m int) *big.Int {
	return transform(x, m, false)
}

// transform implements spec.md §4.6 exactly: x is exported into a
// little-endian sequence of 2-byte big-endian limbs (the wire format
// the rest of the buffer arithmetic operates on), the 8-byte sliding
// window is run forward (encode) or backward (decode) for 40*L rounds
// where L is the byte length of the field, and the result is imported
// back into a field element. When m is 8 mod 16, L is odd; the limb
// buffer is one byte longer than L, so the extra high byte is folded
// into the working window before the rounds and unfolded afterward.
func transform(x *big.Int, m int, encode bool) *big.Int {
	l := m / 8
	bufLen := (m + 8) / 16 * 2
	oddFold := m%16 == 8

	raw := securemem.New(bufLen)
	defer raw.Release()
	rawBytes := raw.Bytes()
	x.FillBytes(rawBytes)

	v := securemem.New(bufLen)
	defer v.Release()
	vBytes := v.Bytes()

	nWords := bufLen / 2
	for k := 0; k < nWords; k++ {
		srcOff := bufLen - 2*(k+1)
		vBytes[2*k] = rawBytes[srcOff]
		vBytes[2*k+1] = rawBytes[srcOff+1]
	}

	if oddFold {
		vBytes[l-1] = vBytes[l]
	}

	rounds := 40 * l
	if encode {
		for i := 0; i < rounds; i += 2 {
			encodeSlice(vBytes, i, l, xteaEncipherBlock)
		}
	} else {
		for i := rounds - 2; i >= 0; i -= 2 {
			encodeSlice(vBytes, i, l, xteaDecipherBlock)
		}
	}

	if oddFold {
		vBytes[l] = vBytes[l-1]
		vBytes[l-1] = 0
	}

	out := securemem.New(bufLen)
	defer out.Release()
	outBytes := out.Bytes()
	for k := 0; k < nWords; k++ {
		dstOff := bufLen - 2*(k+1)
		outBytes[dstOff] = vBytes[2*k]
		outBytes[dstOff+1] = vBytes[2*k+1]
	}

	return new(big.Int).SetBytes(outBytes)
}
