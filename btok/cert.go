// Package btok implements the card-oriented layer built on bign and belt:
// CV (card-verifiable) certificates and chain validation, APDU secure
// messaging, a PIN/PUK retry automaton, and BAUTH, a smart-card mutual
// authentication handshake built from the same blinded-PAKE shape as
// bake's BPACE.
package btok

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/der"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
)

// Cert is a card-verifiable certificate: no external CA infrastructure is
// assumed, so everything a verifier needs — issuer and holder identifiers,
// the holder's public key, a validity window, and the issuer's signature —
// travels in the certificate body itself.
type Cert struct {
	Holder    []byte // holder reference, e.g. a card serial number
	Issuer    []byte // issuer reference
	NotBefore uint32 // seconds since epoch
	NotAfter  uint32
	PubKey    *ec.Point
	Sig       *bign.Signature
}

// Encode renders the certificate as a DER SEQUENCE of its fields, with the
// signature appended last; the signed body is everything except Sig, and
// SignedBody reproduces exactly those bytes for both issuing and
// verification.
func (c *Cert) Encode() ([]byte, error) {
	body, err := c.SignedBody()
	if err != nil {
		return nil, err
	}
	sigBytes := der.EncodeSequence(
		der.EncodeInteger(c.Sig.S0.Bytes()),
		der.EncodeInteger(c.Sig.S1.Bytes()),
	)
	return der.EncodeSequence(der.Encode(der.TagSequence, body), sigBytes), nil
}

// SignedBody returns the DER encoding of every certificate field except
// the signature, the exact bytes bign.Sign/Verify operate over.
func (c *Cert) SignedBody() ([]byte, error) {
	pubOctets, err := c.PubKey.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("btok.Cert.SignedBody", bee2err.BadPubkey, "%v", err)
	}
	body := der.EncodeSequence(
		der.EncodeOctetString(c.Holder),
		der.EncodeOctetString(c.Issuer),
		der.EncodeInteger(big.NewInt(int64(c.NotBefore)).Bytes()),
		der.EncodeInteger(big.NewInt(int64(c.NotAfter)).Bytes()),
		der.EncodeOctetString(pubOctets),
	)
	return body, nil
}

// Issue signs a certificate body with the issuer's private key, producing
// a complete, verifiable Cert.
func Issue(params *bign.Params, issuerD *big.Int, holder, issuer []byte, notBefore, notAfter uint32, pub *ec.Point, rng u.Rng) (*Cert, error) {
	c := &Cert{Holder: holder, Issuer: issuer, NotBefore: notBefore, NotAfter: notAfter, PubKey: pub}
	body, err := c.SignedBody()
	if err != nil {
		return nil, err
	}
	sig, err := bign.Sign(params, issuerD, body, rng)
	if err != nil {
		return nil, bee2err.Newf("btok.Issue", bee2err.BadSig, "%v", err)
	}
	c.Sig = sig
	return c, nil
}

// Verify checks c's signature against the issuer's public key and its
// validity window against now.
func Verify(params *bign.Params, issuerPub *ec.Point, c *Cert, now uint32) error {
	if now < c.NotBefore || now > c.NotAfter {
		return bee2err.Newf("btok.Verify", bee2err.BadCert, "certificate outside its validity window")
	}
	body, err := c.SignedBody()
	if err != nil {
		return err
	}
	if err := bign.Verify(params, issuerPub, body, c.Sig); err != nil {
		return bee2err.Newf("btok.Verify", bee2err.BadCert, "%v", err)
	}
	return nil
}
