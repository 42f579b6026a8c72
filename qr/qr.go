// Package qr implements prime field GF(p) arithmetic: a field descriptor
// carrying the modulus plus a little-endian-octet-aware element type built
// on package zz.
package qr

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// Field describes an odd prime modulus p, its octet width, and (for curves
// over fields with p = 3 mod 4, which is every named bign curve) a
// precomputed sqrt exponent (p+1)/4. Immutable after New.
type Field struct {
	P  *big.Int
	No int // ceil(bitlen(p)/8), the fixed octet width of every element
	// sqrtExp is (P+1)/4, used by Sqrt when P = 3 (mod 4).
	sqrtExp *big.Int
}

// New builds a field descriptor for modulus p. It does not itself validate
// primality of p (bign.ValidateParams does that as part of domain-parameter
// validation) — a Field can be constructed for any odd modulus, primality
// being a property checked once at a higher layer.
func New(p *big.Int, octetWidth int) *Field {
	f := &Field{P: new(big.Int).Set(p), No: octetWidth}
	f.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2)
	return f
}

// Elt is a field element: an integer in [0, p) together with a reference to
// its field. Elements from different fields must never be mixed; all
// operations below assume both operands share the same Field.
type Elt struct {
	f *Field
	v *big.Int
}

// Zero and One construct the additive and multiplicative identities.
func (f *Field) Zero() *Elt { return &Elt{f: f, v: big.NewInt(0)} }
func (f *Field) One() *Elt  { return &Elt{f: f, v: big.NewInt(1)} }

// FromBig builds an element from an arbitrary *big.Int, reducing mod p.
func (f *Field) FromBig(v *big.Int) *Elt {
	return &Elt{f: f, v: zz.Mod(v, f.P)}
}

// FromInt builds an element from a small public integer constant (used by
// curve arithmetic for the literal coefficients in the doubling/addition
// formulas: 2, 3, 4, 8, ...).
func (f *Field) FromInt(v int64) *Elt {
	return &Elt{f: f, v: zz.Mod(big.NewInt(v), f.P)}
}

// FromOctets decodes a little-endian octet string into a field element,
// failing if the value is out of range [0, p).
func (f *Field) FromOctets(b []byte) (*Elt, error) {
	v := new(big.Int).SetBytes(u.Reverse(b))
	if v.Cmp(f.P) >= 0 {
		return nil, bee2err.New("qr.FromOctets", bee2err.BadPoint)
	}
	return &Elt{f: f, v: v}, nil
}

// ToOctets encodes e as f.No little-endian bytes.
func (e *Elt) ToOctets() []byte {
	be := e.v.Bytes()
	le := u.Reverse(be)
	return u.Pad(le, e.f.No)
}

// Big returns the element's value as a *big.Int in [0, p).
func (e *Elt) Big() *big.Int { return new(big.Int).Set(e.v) }

// IsZero reports whether e is the additive identity.
func (e *Elt) IsZero() bool { return e.v.Sign() == 0 }

func (f *Field) wrap(v *big.Int) *Elt { return &Elt{f: f, v: v} }

// Add, Sub, Neg, Mul, Sqr implement the field's ring operations.
func (e *Elt) Add(o *Elt) *Elt { return e.f.wrap(zz.AddMod(e.v, o.v, e.f.P)) }
func (e *Elt) Sub(o *Elt) *Elt { return e.f.wrap(zz.SubMod(e.v, o.v, e.f.P)) }
func (e *Elt) Neg() *Elt       { return e.f.wrap(zz.NegMod(e.v, e.f.P)) }
func (e *Elt) Mul(o *Elt) *Elt { return e.f.wrap(zz.MulMod(e.v, o.v, e.f.P)) }
func (e *Elt) Sqr() *Elt       { return e.f.wrap(zz.SqrMod(e.v, e.f.P)) }

// Inv returns the multiplicative inverse of e, or an error if e is zero.
func (e *Elt) Inv() (*Elt, error) {
	if e.IsZero() {
		return nil, bee2err.New("qr.Inv", bee2err.BadInput)
	}
	return e.f.wrap(zz.InvMod(e.v, e.f.P)), nil
}

// Power returns e^k mod p for a public exponent k (used by verification-side
// curve checks; never called with a secret k).
func (e *Elt) Power(k *big.Int) *Elt {
	return e.f.wrap(zz.PowMod(e.v, k, e.f.P))
}

// Sqrt returns a square root of e, valid only when the field's modulus is
// p = 3 (mod 4) (true of every named bign curve), computed as e^((p+1)/4).
// The caller must verify the result squares back to e; Sqrt itself does not
// check that e was a quadratic residue.
func (f *Field) Sqrt(e *Elt) *Elt {
	return f.wrap(zz.PowMod(e.v, f.sqrtExp, f.P))
}

// IsQR reports whether e is a nonzero quadratic residue mod p, via the
// Jacobi symbol.
func (e *Elt) IsQR() bool {
	return zz.Jacobi(e.v, e.f.P) == 1
}

// Equal reports whether e and o hold the same value (both fields assumed
// identical by the caller).
func (e *Elt) Equal(o *Elt) bool {
	return e.v.Cmp(o.v) == 0
}
