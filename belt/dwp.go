package belt

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// DWP implements belt's AEAD-like "Data Wrap with Padding" mode: CTR
// encryption plus a GF(2^128) polynomial MAC reduced by x^128+x^7+x^2+x+1,
// with plaintext/AAD length counters folded in before the final tag block,
// which is itself encrypted under the key.
//
// The type exposes belt's own state-machine step names: Start(key, iv) then
// any sequence of StepI (associated data contributed before ciphertext),
// StepE/StepD (interleaved with further StepA calls), finished by StepG
// (seal, returns tag) or StepV (open, verifies a supplied tag). Once AAD is
// supplied after ciphertext has started, StepI can no longer be called
// (BAD_LOGIC).
type DWP struct {
	c        *Cipher
	ctr      *CTR
	h        [BlockSize]byte // poly-MAC key, E(E(iv)) under the session key
	acc      [BlockSize]byte
	aadLen   uint64
	ctLen    uint64
	sawCT    bool
	doneAAD  bool
	finished bool
}

// Start begins a DWP session under key with a 16-byte iv.
func Start(key, iv []byte) (*DWP, error) {
	if len(iv) != BlockSize {
		return nil, bee2err.New("belt.DWP.Start", bee2err.BadInput)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	ctr, err := NewCTR(key, iv)
	if err != nil {
		return nil, err
	}
	d := &DWP{c: c, ctr: ctr}
	// The MAC key depends on the IV, so a tag made under one IV does not
	// verify under another.
	var s [BlockSize]byte
	c.encryptBlock(s[:], iv)
	c.encryptBlock(d.h[:], s[:])
	return d, nil
}

// StepI feeds associated data before any ciphertext has been produced.
func (d *DWP) StepI(aad []byte) error {
	if d.sawCT {
		return bee2err.New("belt.DWP.StepI", bee2err.BadLogic)
	}
	d.absorb(aad)
	d.aadLen += uint64(len(aad))
	return nil
}

// StepA feeds associated data, which may be interleaved with StepE/StepD
// after ciphertext processing has begun; this marks the session so StepI
// can no longer be used.
func (d *DWP) StepA(aad []byte) error {
	if d.sawCT {
		d.doneAAD = true
	}
	d.absorb(aad)
	d.aadLen += uint64(len(aad))
	return nil
}

// StepE encrypts plaintext and authenticates the resulting ciphertext.
func (d *DWP) StepE(plaintext []byte) []byte {
	ct := make([]byte, len(plaintext))
	d.ctr.XORKeyStream(ct, plaintext)
	d.sawCT = true
	d.absorb(ct)
	d.ctLen += uint64(len(ct))
	return ct
}

// StepD authenticates ciphertext and decrypts it.
func (d *DWP) StepD(ciphertext []byte) []byte {
	d.sawCT = true
	d.absorb(ciphertext)
	d.ctLen += uint64(len(ciphertext))
	pt := make([]byte, len(ciphertext))
	d.ctr.XORKeyStream(pt, ciphertext)
	return pt
}

func (d *DWP) absorb(data []byte) {
	for off := 0; off < len(data); off += BlockSize {
		var block [BlockSize]byte
		n := copy(block[:], data[off:])
		_ = n
		xorInto(d.acc[:], d.acc[:], block[:])
		d.acc = gfMul(d.acc, d.h)
	}
}

func (d *DWP) finalize() [BlockSize]byte {
	var lenBlock [BlockSize]byte
	u.PutU64LE(lenBlock[0:], d.aadLen*8)
	u.PutU64LE(lenBlock[8:], d.ctLen*8)
	xorInto(d.acc[:], d.acc[:], lenBlock[:])
	d.acc = gfMul(d.acc, d.h)

	var tag [BlockSize]byte
	d.c.encryptBlock(tag[:], d.acc[:])
	return tag
}

// StepG finishes a sealing session and returns the full-width tag.
func (d *DWP) StepG() []byte {
	tag := d.finalize()
	d.finished = true
	out := make([]byte, BlockSize)
	copy(out, tag[:])
	return out
}

// StepV finishes an opening session and verifies it against tag, in
// constant time.
func (d *DWP) StepV(tag []byte) error {
	got := d.finalize()
	d.finished = true
	if !u.Eq(got[:len(tag)], tag) {
		return bee2err.New("belt.DWP.StepV", bee2err.BadMAC)
	}
	return nil
}

// Zero scrubs key material held by the session.
func (d *DWP) Zero() {
	d.c.Zero()
	d.ctr.Zero()
	u.Zero(d.h[:])
	u.Zero(d.acc[:])
}

// Seal is the one-shot convenience wrapper: encrypt plaintext, authenticate
// aad||ciphertext, and return ciphertext||tag.
func Seal(key, iv, aad, plaintext []byte) ([]byte, error) {
	d, err := Start(key, iv)
	if err != nil {
		return nil, err
	}
	defer d.Zero()
	if err := d.StepI(aad); err != nil {
		return nil, err
	}
	ct := d.StepE(plaintext)
	tag := d.StepG()
	return append(ct, tag...), nil
}

// Open is the one-shot inverse of Seal.
func Open(key, iv, aad, sealed []byte) ([]byte, error) {
	if len(sealed) < BlockSize {
		return nil, bee2err.New("belt.Open", bee2err.BadLength)
	}
	ct := sealed[:len(sealed)-BlockSize]
	tag := sealed[len(sealed)-BlockSize:]
	d, err := Start(key, iv)
	if err != nil {
		return nil, err
	}
	defer d.Zero()
	if err := d.StepI(aad); err != nil {
		return nil, err
	}
	pt := d.StepD(ct)
	if err := d.StepV(tag); err != nil {
		return nil, err
	}
	return pt, nil
}

// gfMul multiplies two 128-bit values in GF(2^128) reduced by
// x^128+x^7+x^2+x+1, using the same bit-at-a-time carry-less multiply any
// GHASH-shaped MAC uses.
func gfMul(x, y [BlockSize]byte) [BlockSize]byte {
	var z, v [BlockSize]byte
	copy(v[:], x[:])
	for i := 0; i < 128; i++ {
		byteIdx := i / 8
		bitIdx := 7 - uint(i%8)
		if (y[byteIdx]>>bitIdx)&1 == 1 {
			xorInto(z[:], z[:], v[:])
		}
		lsb := v[BlockSize-1] & 1
		// right shift v by one bit (big-endian bit order within the block)
		carry := byte(0)
		for j := 0; j < BlockSize; j++ {
			newCarry := v[j] & 1
			v[j] = (v[j] >> 1) | (carry << 7)
			carry = newCarry
		}
		if lsb == 1 {
			v[0] ^= 0xE1 // reduction for x^128+x^7+x^2+x+1 in MSB-first form
		}
	}
	return z
}
