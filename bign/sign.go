package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// Signature is a bign-sign signature: s0 is the low belt-hash-width half
// bound to the ephemeral point's x-coordinate, s1 is the scalar response.
type Signature struct {
	S0 *big.Int
	S1 *big.Int
}

// l is the fixed digest width this suite hashes to (belt-hash is always
// 256-bit output; s0 only ever uses the low l bits of it, where l is the
// curve's declared security level in bits).
func lBytes(p *Params) int { return p.Curve.L / 8 }

// Sign produces a bign-sign signature over message under private key d,
// drawing the per-signature ephemeral scalar from rng. s0 is derived from
// the low l bits of (ephemeral point's x-coordinate + H(message)); s1
// binds the ephemeral scalar to the private key so that recovering d from
// a single signature requires solving the curve discrete log, and reusing
// k across two signatures leaks d directly (Sign2 exists precisely to let
// callers keep d wrapped instead of holding it in the clear, not to avoid
// this nonce requirement).
func Sign(p *Params, d *big.Int, message []byte, rng u.Rng) (*Signature, error) {
	h := levelHash(message)
	ln := lBytes(p)

	k, err := zz.RandNZMod(p.Curve.Q, (p.Curve.Q.BitLen()+7)/8, rng)
	if err != nil {
		return nil, bee2err.Newf("bign.Sign", bee2err.BadRNG, "%v", err)
	}
	R := p.Curve.MulCT(k, p.Curve.G(), p.Curve.Q.BitLen()+8)
	rx, _, ok := R.Affine()
	if !ok {
		return nil, bee2err.Newf("bign.Sign", bee2err.BadLogic, "ephemeral point is infinity")
	}

	hInt := new(big.Int).SetBytes(h[:ln])
	mod := new(big.Int).Lsh(big.NewInt(1), uint(ln*8))
	s0 := new(big.Int).Add(rx.Big(), hInt)
	s0.Mod(s0, mod)

	twoL := new(big.Int).Lsh(big.NewInt(1), uint(ln*8))
	coeff := new(big.Int).Add(s0, twoL)
	s1 := zz.SubMod(k, zz.MulMod(coeff, d, p.Curve.Q), p.Curve.Q)

	return &Signature{S0: s0, S1: s1}, nil
}

// Verify checks sig against message and public key pub, following the same
// R = s1*G + (s0+2^l)*Q reconstruction documented on ec.AddMul.
func Verify(p *Params, pub *ec.Point, message []byte, sig *Signature) error {
	ln := lBytes(p)
	twoL := new(big.Int).Lsh(big.NewInt(1), uint(ln*8))
	if sig.S0.Sign() < 0 || sig.S0.Cmp(twoL) >= 0 {
		return bee2err.Newf("bign.Verify", bee2err.BadSig, "s0 out of range")
	}
	if sig.S1.Sign() < 0 || sig.S1.Cmp(p.Curve.Q) >= 0 {
		return bee2err.Newf("bign.Verify", bee2err.BadSig, "s1 out of range")
	}

	coeff := new(big.Int).Add(sig.S0, twoL)
	R := p.Curve.AddMul(
		ec.ScalarPoint{S: sig.S1, P: p.Curve.G()},
		ec.ScalarPoint{S: coeff, P: pub},
	)
	if R.IsInfinity() {
		return bee2err.Newf("bign.Verify", bee2err.BadSig, "reconstructed point is infinity")
	}
	rx, _, ok := R.Affine()
	if !ok {
		return bee2err.Newf("bign.Verify", bee2err.BadSig, "reconstructed point has no affine form")
	}

	h := levelHash(message)
	hInt := new(big.Int).SetBytes(h[:ln])
	mod := new(big.Int).Lsh(big.NewInt(1), uint(ln*8))
	want := new(big.Int).Add(rx.Big(), hInt)
	want.Mod(want, mod)

	if want.Cmp(sig.S0) != 0 {
		return bee2err.Newf("bign.Verify", bee2err.BadSig, "signature does not verify")
	}
	return nil
}

// Sign2 signs with a private key that stays wrapped at rest: token is a
// belt.KWP-wrapped scalar under a key derived from pwd via belt.PBKDF, so
// the raw scalar is reconstructed only for the duration of this call.
func Sign2(p *Params, token, pwd, message []byte, rng u.Rng) (*Signature, error) {
	d, err := unwrapScalar(p, token, pwd)
	if err != nil {
		return nil, err
	}
	return Sign(p, d, message, rng)
}
