package bash

import "github.com/agievich/bee2-sub002/bee2err"

// PRF is a keyed sponge used as a MAC/XOF: the key is absorbed first, then
// arbitrary data, and output of any length can be squeezed by re-permuting
// between rate-sized blocks. The domain-separation byte distinguishes a
// finalized-for-output state from a still-absorbing one, same as Hash.
type PRF struct {
	level int
	rate  int
	state [stateSize]byte
	buf   []byte
	squeezing bool
	outPos    int
}

// NewPRF keys a sponge PRF at the given security level (128, 192 or 256).
func NewPRF(level int, key []byte) (*PRF, error) {
	switch level {
	case 128, 192, 256:
	default:
		return nil, bee2err.Newf("bash.NewPRF", bee2err.BadInput, "level must be 128, 192 or 256")
	}
	cap := level / 4
	p := &PRF{level: level, rate: stateSize - cap, buf: make([]byte, 0, stateSize-cap)}
	p.Write(key)
	p.absorbPending(0x01) // domain-separate the key-absorption boundary from data
	return p, nil
}

func (p *PRF) absorbPending(domain byte) {
	pad := make([]byte, p.rate-len(p.buf))
	pad[0] = domain
	p.buf = append(p.buf, pad...)
	p.absorbBlock(p.buf)
	p.buf = p.buf[:0]
}

func (p *PRF) absorbBlock(block []byte) {
	for i, b := range block {
		p.state[i] ^= b
	}
	Permute(&p.state)
}

// Write absorbs more data after keying.
func (p *PRF) Write(data []byte) (int, error) {
	if p.squeezing {
		return 0, bee2err.Newf("bash.PRF.Write", bee2err.BadLogic, "cannot absorb after squeezing has started")
	}
	n := len(data)
	for len(data) > 0 {
		room := p.rate - len(p.buf)
		take := room
		if take > len(data) {
			take = len(data)
		}
		p.buf = append(p.buf, data[:take]...)
		data = data[take:]
		if len(p.buf) == p.rate {
			p.absorbBlock(p.buf)
			p.buf = p.buf[:0]
		}
	}
	return n, nil
}

// Squeeze returns the next n bytes of keystream/tag material.
func (p *PRF) Squeeze(n int) []byte {
	if !p.squeezing {
		p.absorbPending(0x40)
		p.squeezing = true
		p.outPos = 0
	}
	out := make([]byte, 0, n)
	for len(out) < n {
		avail := p.rate - p.outPos
		if avail == 0 {
			Permute(&p.state)
			p.outPos = 0
			avail = p.rate
		}
		take := avail
		if need := n - len(out); take > need {
			take = need
		}
		out = append(out, p.state[p.outPos:p.outPos+take]...)
		p.outPos += take
	}
	return out
}

// MAC computes a tag of tagLen bytes for data under key at the given level.
func MAC(level int, key, data []byte, tagLen int) ([]byte, error) {
	p, err := NewPRF(level, key)
	if err != nil {
		return nil, err
	}
	p.Write(data)
	return p.Squeeze(tagLen), nil
}
