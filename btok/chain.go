package btok

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
)

// VerifyChain checks a certificate chain rooted at a trust anchor whose
// public key the verifier already holds out of band: chain[0] must be
// issued by trustAnchor, chain[1] by chain[0]'s holder key, and so on,
// with every link's validity window checked against now.
func VerifyChain(params *bign.Params, trustAnchor *ec.Point, chain []*Cert, now uint32) error {
	if len(chain) == 0 {
		return bee2err.Newf("btok.VerifyChain", bee2err.BadCert, "empty chain")
	}
	issuerPub := trustAnchor
	for i, c := range chain {
		if err := Verify(params, issuerPub, c, now); err != nil {
			return bee2err.Newf("btok.VerifyChain", bee2err.BadCert, "link %d: %v", i, err)
		}
		issuerPub = c.PubKey
	}
	return nil
}
