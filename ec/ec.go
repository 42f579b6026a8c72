// Package ec implements the short-Weierstrass elliptic curve group these
// suites run on: a curve descriptor over a qr.Field, points carried in
// Jacobian coordinates internally and affine coordinates at the I/O
// boundary, constant-time scalar multiplication for secret scalars, and the
// SWU map-to-curve used by BPACE.
package ec

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/qr"
)

// Curve describes a short-Weierstrass curve: a field, Weierstrass
// coefficients a, b (as field elements), a base point G, the group order q
// and cofactor. Immutable after New.
type Curve struct {
	F        *qr.Field
	A, B     *qr.Elt
	Gx, Gy   *qr.Elt
	Q        *big.Int // group order
	Cofactor int64
	L        int // security level in bits: 128/192/256 for the named curves, 16 for the toy curves
}

// Point is a curve point carried in Jacobian coordinates (X, Y, Z); Z == 0
// denotes the point at infinity.
type Point struct {
	c       *Curve
	X, Y, Z *qr.Elt
}

// New builds a curve descriptor. It does not itself run the full domain
// parameter validation algorithm (bign.ValidateParams composes this with
// primality/safe-group checks); New just assembles the descriptor and
// computes the base point's Jacobian form.
func New(f *qr.Field, a, b, gx, gy *qr.Elt, q *big.Int, cofactor int64, l int) *Curve {
	return &Curve{F: f, A: a, B: b, Gx: gx, Gy: gy, Q: q, Cofactor: cofactor, L: l}
}

// Infinity returns the point at infinity for this curve.
func (c *Curve) Infinity() *Point {
	return &Point{c: c, X: c.F.One(), Y: c.F.One(), Z: c.F.Zero()}
}

// G returns the curve's base point in Jacobian form.
func (c *Curve) G() *Point {
	return c.FromAffine(c.Gx, c.Gy)
}

// FromAffine lifts an affine (x, y) pair into Jacobian coordinates (Z=1).
func (c *Curve) FromAffine(x, y *qr.Elt) *Point {
	return &Point{c: c, X: x, Y: y, Z: c.F.One()}
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool { return p.Z.IsZero() }

// Affine returns the affine (x, y) coordinates of p, or ok=false if p is the
// point at infinity.
func (p *Point) Affine() (x, y *qr.Elt, ok bool) {
	if p.IsInfinity() {
		return nil, nil, false
	}
	zInv, err := p.Z.Inv()
	if err != nil {
		return nil, nil, false
	}
	zInv2 := zInv.Sqr()
	zInv3 := zInv2.Mul(zInv)
	return p.X.Mul(zInv2), p.Y.Mul(zInv3), true
}

// FromOctets decodes a point from its x||y wire form, serialized as
// 2*F.No bytes (F.No being the field's octet width).
func (c *Curve) FromOctets(b []byte) (*Point, error) {
	no := c.F.No
	if len(b) != 2*no {
		return nil, bee2err.New("ec.FromOctets", bee2err.BadPoint)
	}
	x, err := c.F.FromOctets(b[:no])
	if err != nil {
		return nil, bee2err.New("ec.FromOctets", bee2err.BadPoint)
	}
	y, err := c.F.FromOctets(b[no:])
	if err != nil {
		return nil, bee2err.New("ec.FromOctets", bee2err.BadPoint)
	}
	p := c.FromAffine(x, y)
	if !c.IsOnCurveAffine(p) {
		return nil, bee2err.New("ec.FromOctets", bee2err.BadPoint)
	}
	return p, nil
}

// ToOctets encodes p's affine coordinates as x||y. Fails if p is infinity.
func (p *Point) ToOctets() ([]byte, error) {
	x, y, ok := p.Affine()
	if !ok {
		return nil, bee2err.New("ec.ToOctets", bee2err.BadPoint)
	}
	out := make([]byte, 0, 2*p.c.F.No)
	out = append(out, x.ToOctets()...)
	out = append(out, y.ToOctets()...)
	return out, nil
}

// IsOnCurveAffine checks y^2 = x^3 + a*x + b for p's affine coordinates.
// Infinity trivially fails (callers must check IsInfinity separately when
// infinity is an acceptable input).
func (c *Curve) IsOnCurveAffine(p *Point) bool {
	x, y, ok := p.Affine()
	if !ok {
		return false
	}
	lhs := y.Sqr()
	rhs := x.Sqr().Mul(x).Add(c.A.Mul(x)).Add(c.B)
	return lhs.Equal(rhs)
}

// Double returns 2*p in Jacobian coordinates using the standard a-generic
// doubling formula (valid for any short-Weierstrass a, not just a = -3).
func (c *Curve) Double(p *Point) *Point {
	if p.IsInfinity() || p.Y.IsZero() {
		return c.Infinity()
	}
	f := c.F
	X, Y, Z := p.X, p.Y, p.Z
	ySq := Y.Sqr()
	s := X.Mul(ySq).Mul(f.FromInt(4))
	m := X.Sqr().Mul(f.FromInt(3)).Add(c.A.Mul(Z.Sqr().Sqr()))
	x3 := m.Sqr().Sub(s).Sub(s)
	y3 := m.Mul(s.Sub(x3)).Sub(ySq.Sqr().Mul(f.FromInt(8)))
	z3 := Y.Mul(Z).Mul(f.FromInt(2))
	return &Point{c: c, X: x3, Y: y3, Z: z3}
}

// Add returns p+q in Jacobian coordinates (general add, handles p==q and
// either operand being infinity).
func (c *Curve) Add(p, q *Point) *Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	f := c.F
	z1z1 := p.Z.Sqr()
	z2z2 := q.Z.Sqr()
	u1 := p.X.Mul(z2z2)
	u2 := q.X.Mul(z1z1)
	s1 := p.Y.Mul(q.Z).Mul(z2z2)
	s2 := q.Y.Mul(p.Z).Mul(z1z1)
	if u1.Equal(u2) {
		if !s1.Equal(s2) {
			return c.Infinity()
		}
		return c.Double(p)
	}
	h := u2.Sub(u1)
	i := h.Add(h).Sqr()
	j := h.Mul(i)
	r := s2.Sub(s1).Add(s2.Sub(s1))
	v := u1.Mul(i)
	x3 := r.Sqr().Sub(j).Sub(v).Sub(v)
	y3 := r.Mul(v.Sub(x3)).Sub(s1.Mul(j).Add(s1.Mul(j)))
	z3 := p.Z.Mul(q.Z).Mul(h).Mul(f.FromInt(2))
	return &Point{c: c, X: x3, Y: y3, Z: z3}
}
