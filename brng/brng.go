// Package brng provides the deterministic random generators built from
// belt: a CTR-mode generator for bulk pseudorandom output, an HMAC-mode
// generator for smaller derived streams, and a keyed nonce derivation
// helper for contexts that must not repeat a nonce for a given input.
// It also holds the process-wide default generator used by packages that
// accept an optional u.Rng and fall back to a shared default.
package brng

import (
	"sync"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/u"
)

// CTR wraps belt's CTR keystream as a u.Rng: every Read call draws the next
// bytes of a single long keystream derived from key and iv. Two CTR
// generators built from the same key and iv produce the same sequence,
// which is what makes this suitable for reproducible test vectors and nothing
// else — callers needing unpredictability must seed key/iv from real entropy.
type CTR struct {
	mu    sync.Mutex
	inner *belt.CTR
}

// NewCTR builds a CTR-mode generator from a 16/24/32-byte key and a
// 16-byte initial counter block.
func NewCTR(key []byte, iv []byte) (*CTR, error) {
	c, err := belt.NewCTR(key, iv)
	if err != nil {
		return nil, bee2err.Newf("brng.NewCTR", bee2err.BadRNG, "%v", err)
	}
	return &CTR{inner: c}, nil
}

// Read fills buf with the next len(buf) keystream bytes.
func (g *CTR) Read(buf []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inner.XORKeyStream(buf, make([]byte, len(buf)))
	return nil
}

var _ u.Rng = (*CTR)(nil)

// HMAC is a counter-mode generator built on belt-HMAC: each output block is
// HMAC(key, counter), with the 64-bit counter encoded little-endian as the
// whole MAC input and incremented after every block, so that truncated output never repeats a previous
// block and correlates with neither past nor future blocks within the
// same stream.
type HMAC struct {
	mu      sync.Mutex
	key     []byte
	counter uint64
	buf     []byte // unconsumed tail of the last generated block
}

// NewHMAC builds an HMAC-mode generator keyed by key.
func NewHMAC(key []byte) *HMAC {
	return &HMAC{key: append([]byte(nil), key...)}
}

func (g *HMAC) nextBlock() []byte {
	var ctr [8]byte
	u.PutU64LE(ctr[:], g.counter)
	g.counter++
	return belt.HMACSum(g.key, ctr[:])
}

// Read fills buf with the next len(buf) generator bytes.
func (g *HMAC) Read(buf []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for len(buf) > 0 {
		if len(g.buf) == 0 {
			g.buf = g.nextBlock()
		}
		n := copy(buf, g.buf)
		buf = buf[n:]
		g.buf = g.buf[n:]
	}
	return nil
}

var _ u.Rng = (*HMAC)(nil)

// DeterministicNonce derives a fixed-length nonce from a key and a context
// label so that the same (key, label) pair always yields the same nonce,
// while distinct labels yield independent nonces: label || 0x00 is HMACed
// under key and the result truncated or extended via belt.KRP-style
// counters when more bytes than one MAC output are needed.
func DeterministicNonce(key, label []byte, n int) []byte {
	out := make([]byte, 0, n)
	var ctr byte
	for len(out) < n {
		block := belt.HMACSum(key, append(append([]byte{}, label...), ctr))
		out = append(out, block...)
		ctr++
	}
	return out[:n]
}

var (
	globalMu  sync.Mutex
	globalRng u.Rng = u.CryptoRand
)

// SetGlobalRNG overrides the process-wide default generator; tests use this
// to inject a deterministic CTR or HMAC generator so randomized operations
// become reproducible.
func SetGlobalRNG(r u.Rng) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRng = r
}

// Global returns a u.Rng that reads from the current process-wide default,
// re-checking it on every call so a SetGlobalRNG swap takes effect for
// subsequent reads without needing callers to re-fetch it.
func Global() u.Rng {
	return u.RngFunc(func(buf []byte) error {
		globalMu.Lock()
		r := globalRng
		globalMu.Unlock()
		return r.Read(buf)
	})
}
