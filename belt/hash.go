package belt

import "github.com/agievich/bee2-sub002/u"

// Size is the belt-hash digest length in bytes.
const Size = 32

// Sigma1 computes Δ = sigma1(X, h):
// buf := h0 XOR h1; buf := belt-encrypt(buf, X) XOR buf.
// X is a 32-byte block, h is the 32-byte chaining value.
func Sigma1(X, h [32]byte) [16]byte {
	var h0, h1 [16]byte
	copy(h0[:], h[:16])
	copy(h1[:], h[16:])
	var buf [16]byte
	xorInto(buf[:], h0[:], h1[:])
	enc, _ := encryptBlockWith(X[:], buf[:])
	var out [16]byte
	xorInto(out[:], enc, buf[:])
	return out
}

// Sigma2 computes h' = sigma2(X, h): two derived 256-bit keys
// theta1 = h, theta2 = ~sigma1(X,h) || h1; new halves
// h'0 = belt-encrypt(X0, theta1) XOR X0 and
// h'1 = belt-encrypt(X1, ~sigma1(X,h) || h1) XOR X1.
func Sigma2(X, h [32]byte) [32]byte {
	s1 := Sigma1(X, h)
	var h1 [16]byte
	copy(h1[:], h[16:])

	theta1 := h[:]
	var theta2 [32]byte
	var notS1 [16]byte
	for i := range s1 {
		notS1[i] = ^s1[i]
	}
	copy(theta2[:16], notS1[:])
	copy(theta2[16:], h1[:])

	var X0, X1 [16]byte
	copy(X0[:], X[:16])
	copy(X1[:], X[16:])

	encX0, _ := encryptBlockWith(theta1, X0[:])
	encX1, _ := encryptBlockWith(theta2[:], X1[:])

	var out [32]byte
	xorInto(out[:16], encX0, X0[:])
	xorInto(out[16:], encX1, X1[:])
	return out
}

// Hash is a streaming belt-hash. The zero value is not usable; construct
// with NewHash.
type Hash struct {
	h       [32]byte
	len     uint64
	pending [32]byte
	fill    int
}

// NewHash returns a fresh belt-hash state seeded from the belt S-box.
func NewHash() *Hash {
	return &Hash{h: hBytes()}
}

// Size returns the belt-hash digest length.
func (*Hash) Size() int { return Size }

// BlockSize reports the belt-hash compression block size.
func (*Hash) BlockSize() int { return 32 }

// Write absorbs data, buffering a partial 32-byte block across calls
// (invariant: fill stays below 32 between absorb calls).
func (hh *Hash) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		k := copy(hh.pending[hh.fill:], p)
		hh.fill += k
		p = p[k:]
		if hh.fill == 32 {
			hh.absorb(hh.pending)
			hh.fill = 0
		}
	}
	hh.len += uint64(n)
	return n, nil
}

func (hh *Hash) absorb(block [32]byte) {
	hh.h = Sigma2(block, hh.h)
}

// Sum finalizes a copy of the hash state and appends the digest to b,
// matching hash.Hash's contract without mutating hh.
func (hh *Hash) Sum(b []byte) []byte {
	clone := *hh
	return append(b, clone.finalize()...)
}

func (hh *Hash) finalize() []byte {
	var last [32]byte
	copy(last[:], hh.pending[:hh.fill])
	// Finalization hashes the zero-padded last block, then one more
	// sigma2 over the bit length.
	hh.h = Sigma2(last, hh.h)

	var lenBlock [32]byte
	u.PutU64LE(lenBlock[:8], hh.len*8)
	hh.h = Sigma2(lenBlock, hh.h)

	out := make([]byte, 32)
	copy(out, hh.h[:])
	return out
}

// Reset restores the hash to its initial state.
func (hh *Hash) Reset() {
	hh.h = hBytes()
	hh.len = 0
	hh.fill = 0
}

// SumBytes is the one-shot convenience form of belt-hash.
func SumBytes(data []byte) [32]byte {
	hh := NewHash()
	hh.Write(data)
	var out [32]byte
	copy(out[:], hh.finalize())
	return out
}

// StepG2 returns the first k<=32 bytes of the hash of data.
func StepG2(data []byte, k int) []byte {
	full := SumBytes(data)
	return full[:k]
}
