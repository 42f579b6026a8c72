package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/brng"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// IdentityKey is the private key material a trusted authority issues to a
// user for a given identity string: a Schnorr-style certificate (Rid, Sid)
// the authority produces with its master secret, satisfying
// Sid*G = Rid + e*Qmaster where e = H(id || Rid). A user who knows Sid can
// sign on behalf of id without the verifier ever needing id's own public
// key — only the single, long-lived master public key.
type IdentityKey struct {
	ID  []byte
	Rid *ec.Point
	Sid *big.Int
}

// Extract derives id's identity-based private key from the master secret
// scalar. The per-identity nonce is drawn from a deterministic generator
// keyed by the master secret and id rather than fresh randomness, so
// re-extracting the same identity always yields the same key material
// (required: the authority must not need to remember every key it issued).
func Extract(p *Params, masterD *big.Int, id []byte) (*IdentityKey, error) {
	masterBytes := u.Pad(u.Reverse(masterD.Bytes()), (p.Curve.Q.BitLen()+7)/8)
	gen := brng.NewHMAC(append(append([]byte(nil), masterBytes...), id...))

	k, err := zz.RandNZMod(p.Curve.Q, (p.Curve.Q.BitLen()+7)/8, gen)
	if err != nil {
		return nil, bee2err.Newf("bign.Extract", bee2err.BadLogic, "%v", err)
	}
	R := p.Curve.MulCT(k, p.Curve.G(), p.Curve.Q.BitLen()+8)
	rOctets, err := R.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("bign.Extract", bee2err.BadLogic, "%v", err)
	}
	e := challenge(p, id, rOctets)
	sid := zz.AddMod(k, zz.MulMod(e, masterD, p.Curve.Q), p.Curve.Q)
	return &IdentityKey{ID: append([]byte(nil), id...), Rid: R, Sid: sid}, nil
}

// challenge hashes its parts into a scalar mod q via belt-hash, the same
// hash-to-scalar pattern bign-sign uses for its own s0.
func challenge(p *Params, parts ...[]byte) *big.Int {
	h := levelHash(parts...)
	return zz.Mod(new(big.Int).SetBytes(h[:]), p.Curve.Q)
}

// IdentitySignature is a signature produced under an IdentityKey: the
// one-time commitment T and the Schnorr response resp, alongside the
// signer's certificate Rid (needed by the verifier to reconstruct the
// signer's effective public key Rid + e*Qmaster).
type IdentitySignature struct {
	Rid  *ec.Point
	T    *ec.Point
	Resp *big.Int
}

// SignIdentity signs message under an identity-based private key.
func SignIdentity(p *Params, key *IdentityKey, message []byte, rng u.Rng) (*IdentitySignature, error) {
	t, err := zz.RandNZMod(p.Curve.Q, (p.Curve.Q.BitLen()+7)/8, rng)
	if err != nil {
		return nil, bee2err.Newf("bign.SignIdentity", bee2err.BadRNG, "%v", err)
	}
	T := p.Curve.MulCT(t, p.Curve.G(), p.Curve.Q.BitLen()+8)
	tOctets, err := T.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("bign.SignIdentity", bee2err.BadLogic, "%v", err)
	}
	ridOctets, err := key.Rid.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("bign.SignIdentity", bee2err.BadLogic, "%v", err)
	}
	c := challenge(p, key.ID, ridOctets, tOctets, message)
	resp := zz.AddMod(t, zz.MulMod(c, key.Sid, p.Curve.Q), p.Curve.Q)
	return &IdentitySignature{Rid: key.Rid, T: T, Resp: resp}, nil
}

// VerifyIdentity checks sig against id and message under the authority's
// master public key Qmaster.
func VerifyIdentity(p *Params, qMaster *ec.Point, id []byte, message []byte, sig *IdentitySignature) error {
	ridOctets, err := sig.Rid.ToOctets()
	if err != nil {
		return bee2err.Newf("bign.VerifyIdentity", bee2err.BadSig, "%v", err)
	}
	e := challenge(p, id, ridOctets)
	tOctets, err := sig.T.ToOctets()
	if err != nil {
		return bee2err.Newf("bign.VerifyIdentity", bee2err.BadSig, "%v", err)
	}
	c := challenge(p, id, ridOctets, tOctets, message)

	// effective public key = Rid + e*Qmaster
	lhs := p.Curve.MulCT(sig.Resp, p.Curve.G(), p.Curve.Q.BitLen()+8)
	rhs := p.Curve.AddMul(
		ec.ScalarPoint{S: big.NewInt(1), P: sig.T},
		ec.ScalarPoint{S: c, P: sig.Rid},
		ec.ScalarPoint{S: zz.MulMod(c, e, p.Curve.Q), P: qMaster},
	)
	lx, ly, lok := lhs.Affine()
	rx, ry, rok := rhs.Affine()
	if lok != rok {
		return bee2err.Newf("bign.VerifyIdentity", bee2err.BadSig, "signature does not verify")
	}
	if lok && (!lx.Equal(rx) || !ly.Equal(ry)) {
		return bee2err.Newf("bign.VerifyIdentity", bee2err.BadSig, "signature does not verify")
	}
	return nil
}
