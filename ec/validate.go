package ec

import "math/big"

// HasOrder verifies q*p = O.
func (c *Curve) HasOrder(p *Point, q *big.Int) bool {
	return c.Mul(q, p).IsInfinity()
}

// IsSafeGroup checks p^k != 1 (mod q) for small k, the anti-MOV/anti-Weil-
// descent condition every safe curve must satisfy for k up to maxK. P is
// the field's modulus, Q the curve order.
func (c *Curve) IsSafeGroup(maxK int) bool {
	p := new(big.Int).Mod(c.F.P, c.Q)
	t := big.NewInt(1)
	for k := 1; k <= maxK; k++ {
		t.Mul(t, p)
		t.Mod(t, c.Q)
		if t.Cmp(big.NewInt(1)) == 0 {
			return false
		}
	}
	return true
}
