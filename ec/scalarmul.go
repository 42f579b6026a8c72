package ec

import "math/big"

// MulCT returns k*p using a fixed-iteration Montgomery ladder, for secret
// scalars k (private keys, one-time nonces). bitLen bounds the number of
// ladder steps (callers pass the group order's bit length plus 8, so the
// number of steps does not depend on the true bit length of k either).
func (c *Curve) MulCT(k *big.Int, p *Point, bitLen int) *Point {
	r0 := c.Infinity()
	r1 := p
	for i := bitLen - 1; i >= 0; i-- {
		bit := k.Bit(i)
		if bit == 0 {
			r1 = c.Add(r0, r1)
			r0 = c.Double(r0)
		} else {
			r0 = c.Add(r0, r1)
			r1 = c.Double(r1)
		}
	}
	return r0
}

// Mul returns k*p using plain double-and-add, for public scalars/points only
// (verification-side operations, where running time leaking k is harmless).
func (c *Curve) Mul(k *big.Int, p *Point) *Point {
	r := c.Infinity()
	base := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			r = c.Add(r, base)
		}
		base = c.Double(base)
	}
	return r
}

// AddMul computes a multi-scalar sum s1*p1 + s2*p2 + ... via Shamir's trick,
// for public scalars only (bign verification's R = s1*G + (s0+2^l)*Q is the
// canonical caller).
func (c *Curve) AddMul(pairs ...ScalarPoint) *Point {
	maxBits := 0
	for _, pp := range pairs {
		if n := pp.S.BitLen(); n > maxBits {
			maxBits = n
		}
	}
	r := c.Infinity()
	for i := maxBits - 1; i >= 0; i-- {
		r = c.Double(r)
		for _, pp := range pairs {
			if pp.S.Bit(i) == 1 {
				r = c.Add(r, pp.P)
			}
		}
	}
	return r
}

// ScalarPoint pairs a public scalar with a point for AddMul.
type ScalarPoint struct {
	S *big.Int
	P *Point
}
