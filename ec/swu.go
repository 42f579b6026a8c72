package ec

import "github.com/agievich/bee2-sub002/qr"

// SWU is a deterministic map from a field element to a curve point, with no
// input rejected, used by bake's BPACE to turn a password-derived field
// element into a blinding point. It implements the simplified SWU
// construction of RFC 9380 §4.2 with Z = -1, which is valid for every field
// in this module because every named bign curve has p = 3 (mod 4) and -1 is
// therefore always a quadratic non-residue mod p (Jacobi(-1, p) = -1 when
// p = 3 mod 4). That is the one free parameter simplified SWU needs, so the
// construction is fully determined and correct for this curve family; see
// DESIGN.md.
func (c *Curve) SWU(u *qr.Elt) *Point {
	f := c.F
	negOne := f.FromInt(-1)

	tv1 := negOne.Mul(u.Sqr()) // Z*u^2, Z=-1
	tv2 := tv1.Sqr()
	x1 := tv1.Add(tv2)
	x1 = inv0(x1)
	isZero := x1.IsZero()
	x1 = x1.Add(f.One())
	if isZero {
		zInv, _ := negOne.Inv() // 1/Z = 1/-1 = -1
		x1 = zInv
	}
	negBOverA := negBOverA(c)
	x1 = x1.Mul(negBOverA)

	gx1 := gCurve(c, x1)
	x2 := tv1.Mul(x1)
	tv2 = tv1.Mul(tv2)
	gx2 := gx1.Mul(tv2)

	var x, y2 *qr.Elt
	if gx1.IsQR() || gx1.IsZero() {
		x, y2 = x1, gx1
	} else {
		x, y2 = x2, gx2
	}
	y := f.Sqrt(y2)
	if sign0(y) != sign0(u) {
		y = y.Neg()
	}
	return c.FromAffine(x, y)
}

// inv0 returns the inverse of e, or the zero element if e is zero (the
// "inv0" helper of RFC 9380's pseudocode, which never errors).
func inv0(e *qr.Elt) *qr.Elt {
	if e.IsZero() {
		return e
	}
	r, err := e.Inv()
	if err != nil {
		return e
	}
	return r
}

func negBOverA(c *Curve) *qr.Elt {
	aInv, err := c.A.Inv()
	if err != nil {
		// a == 0 cannot happen for a validated curve (0 < a < p is
		// required), but fall back to B unscaled rather than panicking.
		return c.B.Neg()
	}
	return c.B.Neg().Mul(aInv)
}

func gCurve(c *Curve, x *qr.Elt) *qr.Elt {
	return x.Sqr().Mul(x).Add(c.A.Mul(x)).Add(c.B)
}

// sign0 reports the low bit of e's canonical integer representative.
func sign0(e *qr.Elt) uint {
	return e.Big().Bit(0)
}
