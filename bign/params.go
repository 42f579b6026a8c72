// Package bign implements the signature, key establishment and identity-
// based signature suite built on package ec: domain parameter validation,
// key generation, bign-sign/bign-sign2/bign-verify, bign-dh key agreement,
// bign-keywrap key transport, and the identity-based variant that derives a
// signer's private key from an identity string plus a master secret.
package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/der"
)

// Params bundles a named curve with its registration OID and security
// level; every operation in this package takes a *Params rather than a bare
// *ec.Curve so the OID travels with the key material into wire encodings.
type Params struct {
	Name  string
	OID   []int
	Curve *ec.Curve
}

// bignArc is the OBJECT IDENTIFIER arc registered for this suite's domain
// parameter sets (STB 34.101.45), mirroring belt's own arc used by der_test.
var bignArc = []int{1, 2, 112, 0, 2, 0, 34, 101, 45, 3}

// OID returns the full OID arcs for a named parameter set's numbered leaf.
func OID(leaf int) []int {
	return append(append([]int(nil), bignArc...), leaf)
}

// EncodeOID DER-encodes p's OID.
func (p *Params) EncodeOID() ([]byte, error) {
	return der.EncodeOID(p.OID)
}

// ValidateParams runs the domain-parameter validation checks a verifier
// must perform before trusting a curve it didn't generate itself: p and q
// prime, p = 3 (mod 4) (required by qr.Field.Sqrt), the curve nonsingular
// (4a^3+27b^2 != 0), the base point on the curve and of order q, and the
// safe-group (anti-MOV/anti-anomalous) condition.
func ValidateParams(p *Params) error {
	c := p.Curve
	if !c.F.P.ProbablyPrime(40) {
		return bee2err.Newf("bign.ValidateParams", bee2err.NotPrime, "field modulus is not prime")
	}
	if !c.Q.ProbablyPrime(40) {
		return bee2err.Newf("bign.ValidateParams", bee2err.NotPrime, "group order is not prime")
	}
	if new(big.Int).Mod(c.F.P, big.NewInt(4)).Int64() != 3 {
		return bee2err.Newf("bign.ValidateParams", bee2err.BadParams, "field modulus must be 3 mod 4")
	}
	a3 := c.A.Mul(c.A).Mul(c.A)
	b2 := c.B.Mul(c.B)
	disc := c.F.FromInt(4).Mul(a3).Add(c.F.FromInt(27).Mul(b2))
	if disc.IsZero() {
		return bee2err.Newf("bign.ValidateParams", bee2err.BadParams, "curve is singular")
	}
	g := c.G()
	if !c.IsOnCurveAffine(g) {
		return bee2err.Newf("bign.ValidateParams", bee2err.BadParams, "base point not on curve")
	}
	if !c.HasOrder(g, c.Q) {
		return bee2err.Newf("bign.ValidateParams", bee2err.BadParams, "base point does not have order q")
	}
	if !c.IsSafeGroup(50) {
		return bee2err.Newf("bign.ValidateParams", bee2err.BadParams, "curve fails safe-group condition")
	}
	return nil
}

// levelHash derives the belt-hash-based message digest this suite uses
// throughout (sign, dh, wrap all hash with belt-hash regardless of curve
// security level; only the number of leading bytes consumed differs).
func levelHash(data ...[]byte) [32]byte {
	h := belt.NewHash()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
