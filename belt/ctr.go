package belt

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// CTR is a streaming belt-CTR keystream generator: gamma is the encryption
// of a monotonically incremented counter. The counter is four 32-bit
// little-endian words with carry propagated across words.
type CTR struct {
	c       *Cipher
	counter [4]uint32
	block   [BlockSize]byte
	pos     int // bytes of block already consumed
}

// NewCTR builds a CTR keystream generator seeded from a 16-byte IV.
func NewCTR(key, iv []byte) (*CTR, error) {
	if len(iv) != BlockSize {
		return nil, bee2err.New("belt.NewCTR", bee2err.BadInput)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	ctr := &CTR{c: c, pos: BlockSize}
	for i := 0; i < 4; i++ {
		ctr.counter[i] = u.GetU32LE(iv[4*i:])
	}
	return ctr, nil
}

// Zero scrubs the underlying key schedule and counter state.
func (g *CTR) Zero() {
	g.c.Zero()
	for i := range g.counter {
		g.counter[i] = 0
	}
	u.Zero(g.block[:])
}

func (g *CTR) refill() {
	var iv [BlockSize]byte
	for i := 0; i < 4; i++ {
		u.PutU32LE(iv[4*i:], g.counter[i])
	}
	g.c.encryptBlock(g.block[:], iv[:])
	g.pos = 0
	for i := 0; i < 4; i++ {
		g.counter[i]++
		if g.counter[i] != 0 {
			break
		}
	}
}

// XORKeyStream XORs src with the CTR keystream into dst (len(dst)==len(src)).
func (g *CTR) XORKeyStream(dst, src []byte) {
	for i := 0; i < len(src); i++ {
		if g.pos == BlockSize {
			g.refill()
		}
		dst[i] = src[i] ^ g.block[g.pos]
		g.pos++
	}
}

// CTREncrypt and CTRDecrypt are the one-shot forms of CTR (encryption and
// decryption are the same XOR-with-keystream operation).
func CTREncrypt(key, iv, x []byte) ([]byte, error) {
	g, err := NewCTR(key, iv)
	if err != nil {
		return nil, err
	}
	defer g.Zero()
	out := make([]byte, len(x))
	g.XORKeyStream(out, x)
	return out, nil
}

func CTRDecrypt(key, iv, y []byte) ([]byte, error) {
	return CTREncrypt(key, iv, y)
}
