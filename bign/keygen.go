package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// KeyPair is a bign private/public key pair bound to a particular domain
// parameter set: the private key is a scalar in [1, q-1], the public key
// its multiple of the base point.
type KeyPair struct {
	Params *Params
	D      *big.Int
	Q      *ec.Point
}

// GenKeyPair draws a fresh private scalar from rng and computes the
// matching public point via constant-time scalar multiplication (the
// private key is secret input, so the ladder form is mandatory here).
func GenKeyPair(p *Params, rng u.Rng) (*KeyPair, error) {
	d, err := zz.RandNZMod(p.Curve.Q, (p.Curve.Q.BitLen()+7)/8, rng)
	if err != nil {
		return nil, bee2err.Newf("bign.GenKeyPair", bee2err.BadRNG, "%v", err)
	}
	pub := p.Curve.MulCT(d, p.Curve.G(), p.Curve.Q.BitLen()+8)
	return &KeyPair{Params: p, D: d, Q: pub}, nil
}

// PublicKeyOctets encodes the public key in the curve's x||y wire form.
func (kp *KeyPair) PublicKeyOctets() ([]byte, error) {
	return kp.Q.ToOctets()
}

// PrivateKeyOctets encodes the private scalar as fixed-width little-endian
// octets matching the curve's order length.
func (kp *KeyPair) PrivateKeyOctets() []byte {
	no := (kp.Params.Curve.Q.BitLen() + 7) / 8
	be := kp.D.Bytes()
	le := u.Reverse(be)
	return u.Pad(le, no)
}

// ValidatePublicKey checks that a decoded public point is non-infinite, on
// the curve, and of the expected order — every check a verifier must run
// on a counterparty-supplied key before using it (otherwise a small-
// subgroup or invalid-curve point could leak information about a private
// scalar used against it).
func ValidatePublicKey(p *Params, pub *ec.Point) error {
	if pub.IsInfinity() {
		return bee2err.Newf("bign.ValidatePublicKey", bee2err.BadPubkey, "public key is the point at infinity")
	}
	if !p.Curve.IsOnCurveAffine(pub) {
		return bee2err.Newf("bign.ValidatePublicKey", bee2err.BadPubkey, "public key is not on curve")
	}
	if !p.Curve.HasOrder(pub, p.Curve.Q) {
		return bee2err.Newf("bign.ValidatePublicKey", bee2err.BadPubkey, "public key does not have order q")
	}
	return nil
}
