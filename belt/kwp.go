package belt

import (
	"encoding/binary"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// KWPWrap implements belt's AES-KW-style authenticated key wrap: a 128-bit
// header (zeroes if none) authenticates the wrapped payload, run for 2n
// rounds where n = ceil(len(x)/16).
func KWPWrap(key, header, x []byte) ([]byte, error) {
	if len(header) != 0 && len(header) != BlockSize {
		return nil, bee2err.New("belt.KWPWrap", bee2err.BadInput)
	}
	hdr := make([]byte, BlockSize)
	copy(hdr, header)

	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := (len(x) + BlockSize - 1) / BlockSize
	padded := make([]byte, n*BlockSize)
	copy(padded, x)

	a := make([]byte, BlockSize)
	copy(a, hdr)
	r := make([][]byte, n)
	for i := range r {
		r[i] = append([]byte(nil), padded[i*BlockSize:(i+1)*BlockSize]...)
	}

	t := uint64(0)
	for j := 0; j < 2*n; j++ {
		for i := 0; i < n; i++ {
			t++
			in := make([]byte, BlockSize)
			xorInto(in, a, r[i])
			block := make([]byte, BlockSize)
			c.encryptBlock(block, in)
			tbuf := make([]byte, 8)
			binary.LittleEndian.PutUint64(tbuf, t)
			a = block[:BlockSize/2]
			aFull := make([]byte, BlockSize)
			copy(aFull, a)
			xorInto(aFull[:8], aFull[:8], tbuf)
			a = aFull
			r[i] = append([]byte(nil), block[BlockSize/2:]...)
		}
	}

	out := make([]byte, 0, BlockSize+len(padded))
	out = append(out, a...)
	for _, blk := range r {
		out = append(out, blk...)
	}
	return out, nil
}

// KWPUnwrap is the inverse of KWPWrap; it fails with BAD_KEYTOKEN if the
// header authentication check fails.
func KWPUnwrap(key, header, wrapped []byte) ([]byte, error) {
	if len(wrapped) < BlockSize || (len(wrapped)-BlockSize)%BlockSize != 0 {
		return nil, bee2err.New("belt.KWPUnwrap", bee2err.BadLength)
	}
	hdr := make([]byte, BlockSize)
	copy(hdr, header)

	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := (len(wrapped) - BlockSize) / BlockSize
	a := append([]byte(nil), wrapped[:BlockSize]...)
	r := make([][]byte, n)
	for i := range r {
		r[i] = append([]byte(nil), wrapped[BlockSize+i*BlockSize:BlockSize+(i+1)*BlockSize]...)
	}

	t := uint64(2 * n * n)
	for j := 2*n - 1; j >= 0; j-- {
		for i := n - 1; i >= 0; i-- {
			tbuf := make([]byte, 8)
			binary.LittleEndian.PutUint64(tbuf, t)
			t--
			aHalf := make([]byte, BlockSize/2)
			copy(aHalf, a[:BlockSize/2])
			xorInto(aHalf[:8], aHalf[:8], tbuf)
			block := make([]byte, BlockSize)
			copy(block[:BlockSize/2], aHalf)
			copy(block[BlockSize/2:], r[i])
			dec := make([]byte, BlockSize)
			c.decryptBlock(dec, block)
			a = dec[:BlockSize/2]
			aFull := make([]byte, BlockSize)
			copy(aFull, a)
			a = aFull
			r[i] = append([]byte(nil), dec[BlockSize/2:]...)
		}
	}

	if !u.Eq(a[:BlockSize], hdr) {
		return nil, bee2err.New("belt.KWPUnwrap", bee2err.BadKeyToken)
	}
	out := make([]byte, 0, n*BlockSize)
	for _, blk := range r {
		out = append(out, blk...)
	}
	return out, nil
}
