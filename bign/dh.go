package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/ec"
)

// DH computes the bign-dh shared secret for a local private scalar and a
// peer's public point: d*Qpeer, reduced to a fixed-length key via
// belt-hash so both sides derive identical key bytes regardless of which
// affine x representation their big.Int libraries would otherwise produce.
func DH(p *Params, d *big.Int, peer *ec.Point) ([]byte, error) {
	if err := ValidatePublicKey(p, peer); err != nil {
		return nil, bee2err.Newf("bign.DH", bee2err.BadPubkey, "%v", err)
	}
	shared := p.Curve.MulCT(d, peer, p.Curve.Q.BitLen()+8)
	if shared.IsInfinity() {
		return nil, bee2err.Newf("bign.DH", bee2err.BadSharedkey, "shared point is infinity")
	}
	x, y, ok := shared.Affine()
	if !ok {
		return nil, bee2err.Newf("bign.DH", bee2err.BadSharedkey, "shared point has no affine form")
	}
	digest := levelHash(x.ToOctets(), y.ToOctets())
	return digest[:], nil
}
