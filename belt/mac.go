package belt

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// MAC computes the belt CBC-MAC-like authentication tag over x: two 128-bit
// subkeys are derived by encrypting the zero block, selected by whether the
// final block needs 0x80 padding. The default tag length is 8 bytes
// (MACStepG2 truncates further, up to 8 bytes).
func MAC(key, x []byte) ([]byte, error) {
	return macTag(key, x, 8)
}

// MACStepG2 returns a tag truncated to n <= 8 bytes.
func MACStepG2(key, x []byte, n int) ([]byte, error) {
	if n < 1 || n > 8 {
		return nil, bee2err.New("belt.MACStepG2", bee2err.BadInput)
	}
	return macTag(key, x, n)
}

// MACVerify is the constant-time counterpart of MAC.
func MACVerify(key, x, tag []byte) error {
	want, err := macTag(key, x, len(tag))
	if err != nil {
		return err
	}
	if !u.Eq(want, tag) {
		return bee2err.New("belt.MACVerify", bee2err.BadMAC)
	}
	return nil
}

func macTag(key, x []byte, tagLen int) ([]byte, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	var zero [BlockSize]byte
	var k1, k2 [BlockSize]byte
	c.encryptBlock(k1[:], zero[:])
	// k2 derived from k1 by doubling in GF(2^128) with the belt reduction
	// polynomial, the same CMAC-style subkey derivation used throughout.
	k2arr := gfDouble(k1)
	copy(k2[:], k2arr[:])

	n := len(x)
	full := n / BlockSize
	rem := n % BlockSize
	if n != 0 && rem == 0 {
		full--
		rem = BlockSize
	}

	state := make([]byte, BlockSize)
	for i := 0; i < full; i++ {
		xorInto(state, state, x[i*BlockSize:(i+1)*BlockSize])
		c.encryptBlock(state, state)
	}

	last := make([]byte, BlockSize)
	copy(last, x[full*BlockSize:full*BlockSize+rem])
	var subkey [BlockSize]byte
	if rem == BlockSize {
		subkey = k1
	} else {
		last[rem] = 0x80
		subkey = k2
	}
	xorInto(last, last, subkey[:])
	xorInto(state, state, last)
	c.encryptBlock(state, state)

	return state[:tagLen], nil
}

// gfDouble doubles a 128-bit value in GF(2^128) reduced by
// x^128+x^7+x^2+x+1, the field belt's DWP mode also multiplies in.
func gfDouble(in [BlockSize]byte) [BlockSize]byte {
	var out [BlockSize]byte
	carry := byte(0)
	for i := BlockSize - 1; i >= 0; i-- {
		v := in[i]
		out[i] = (v << 1) | carry
		carry = v >> 7
	}
	if carry != 0 {
		out[BlockSize-1] ^= 0x87
	}
	return out
}
