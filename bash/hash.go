package bash

import "github.com/agievich/bee2-sub002/bee2err"

// Hash is a bash-hash instance at a fixed security level (128, 192 or 256),
// implemented as a sponge over the bash-f permutation: the state is a
// 192-byte block split into a rate (absorbed/squeezed) and a capacity
// (never touched directly) whose byte length is level/4, chosen so the
// capacity length equals the digest length.
type Hash struct {
	level int
	rate  int
	state [stateSize]byte
	buf   []byte // pending rate-sized absorption buffer
	done  bool
}

// NewHash128/192/256 construct a sponge hash at the named security level.
func NewHash128() *Hash { return newHash(128) }
func NewHash192() *Hash { return newHash(192) }
func NewHash256() *Hash { return newHash(256) }

func newHash(level int) *Hash {
	cap := level / 4
	return &Hash{
		level: level,
		rate:  stateSize - cap,
		buf:   make([]byte, 0, stateSize-cap),
	}
}

// Size returns the digest length in bytes (level/4).
func (h *Hash) Size() int { return h.level / 4 }

// BlockSize returns the sponge's rate in bytes.
func (h *Hash) BlockSize() int { return h.rate }

// Write absorbs more input, permuting the state whenever a full rate-sized
// block accumulates.
func (h *Hash) Write(p []byte) (int, error) {
	if h.done {
		return 0, bee2err.Newf("bash.Hash.Write", bee2err.BadLogic, "hash already finalized")
	}
	n := len(p)
	for len(p) > 0 {
		room := h.rate - len(h.buf)
		take := room
		if take > len(p) {
			take = len(p)
		}
		h.buf = append(h.buf, p[:take]...)
		p = p[take:]
		if len(h.buf) == h.rate {
			h.absorbBlock(h.buf)
			h.buf = h.buf[:0]
		}
	}
	return n, nil
}

func (h *Hash) absorbBlock(block []byte) {
	for i, b := range block {
		h.state[i] ^= b
	}
	Permute(&h.state)
}

// finalize pads the pending buffer with the 0x40 domain-separation byte
// followed by zeros, absorbs the last block, and squeezes Size() bytes.
func (h *Hash) finalize() []byte {
	if !h.done {
		pad := make([]byte, h.rate-len(h.buf))
		pad[0] = 0x40
		h.buf = append(h.buf, pad...)
		h.absorbBlock(h.buf)
		h.done = true
	}
	out := make([]byte, h.Size())
	copy(out, h.state[:h.Size()])
	return out
}

// Sum appends the digest to b without mutating hash state for further
// writes (matching hash.Hash semantics), by finalizing a scratch copy.
func (h *Hash) Sum(b []byte) []byte {
	if h.done {
		return append(b, h.state[:h.Size()]...)
	}
	clone := *h
	clone.buf = append([]byte(nil), h.buf...)
	digest := clone.finalize()
	return append(b, digest...)
}

// Reset restores the hash to its initial, empty-input state.
func (h *Hash) Reset() {
	h.state = [stateSize]byte{}
	h.buf = h.buf[:0]
	h.done = false
}

// SumBytes is the one-shot convenience form at the given security level.
func SumBytes(level int, data []byte) ([]byte, error) {
	var h *Hash
	switch level {
	case 128:
		h = NewHash128()
	case 192:
		h = NewHash192()
	case 256:
		h = NewHash256()
	default:
		return nil, bee2err.Newf("bash.SumBytes", bee2err.BadInput, "level must be 128, 192 or 256")
	}
	h.Write(data)
	return h.Sum(nil), nil
}
