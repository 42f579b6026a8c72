package bign

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// Wrap implements bign-keywrap, a one-pass ECIES-style key transport: a
// fresh ephemeral scalar e is drawn, V = e*G is sent in the clear, and the
// ECDH value e*Qrecipient is hashed into a belt.KWP key that authenticates
// and encrypts payload under header V. The recipient recovers the same
// ECDH value as d*V (since e*Q = e*d*G = d*(e*G) = d*V), so Unwrap never
// needs the sender's ephemeral scalar.
func Wrap(p *Params, recipient *KeyPair, payload []byte, rng u.Rng) ([]byte, error) {
	e, err := zz.RandNZMod(p.Curve.Q, (p.Curve.Q.BitLen()+7)/8, rng)
	if err != nil {
		return nil, bee2err.Newf("bign.Wrap", bee2err.BadRNG, "%v", err)
	}
	V := p.Curve.MulCT(e, p.Curve.G(), p.Curve.Q.BitLen()+8)
	vOctets, err := V.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("bign.Wrap", bee2err.BadLogic, "%v", err)
	}

	shared := p.Curve.MulCT(e, recipient.Q, p.Curve.Q.BitLen()+8)
	sx, sy, ok := shared.Affine()
	if !ok {
		return nil, bee2err.Newf("bign.Wrap", bee2err.BadSharedkey, "ephemeral shared point is infinity")
	}
	key := levelHash(sx.ToOctets(), sy.ToOctets())

	var header [16]byte
	copy(header[:], vOctets)
	wrapped, err := belt.KWPWrap(key[:], header[:], payload)
	if err != nil {
		return nil, bee2err.Newf("bign.Wrap", bee2err.BadLogic, "%v", err)
	}
	return append(vOctets, wrapped...), nil
}

// Unwrap reverses Wrap using the recipient's private scalar.
func Unwrap(p *Params, recipient *KeyPair, blob []byte) ([]byte, error) {
	no := 2 * p.Curve.F.No
	if len(blob) < no {
		return nil, bee2err.Newf("bign.Unwrap", bee2err.BadKeyToken, "blob too short to contain ephemeral point")
	}
	vOctets := blob[:no]
	wrapped := blob[no:]

	V, err := p.Curve.FromOctets(vOctets)
	if err != nil {
		return nil, bee2err.Newf("bign.Unwrap", bee2err.BadKeyToken, "%v", err)
	}
	shared := p.Curve.MulCT(recipient.D, V, p.Curve.Q.BitLen()+8)
	sx, sy, ok := shared.Affine()
	if !ok {
		return nil, bee2err.Newf("bign.Unwrap", bee2err.BadSharedkey, "ephemeral shared point is infinity")
	}
	key := levelHash(sx.ToOctets(), sy.ToOctets())

	var header [16]byte
	copy(header[:], vOctets)
	payload, err := belt.KWPUnwrap(key[:], header[:], wrapped)
	if err != nil {
		return nil, bee2err.Newf("bign.Unwrap", bee2err.BadKeyToken, "%v", err)
	}
	return payload, nil
}
