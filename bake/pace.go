package bake

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
)

// PACESession runs BPACE, a password-authenticated key exchange: a
// password-derived curve point W blinds an otherwise ordinary
// Diffie-Hellman exchange (each side sends its ephemeral public key plus
// W, so an eavesdropper sees only blinded points), and a belt-MAC
// confirmation round after deriving the key proves both sides blinded
// with the same password without ever revealing it on the wire.
type PACESession struct {
	poisonable
	params   *bign.Params
	settings Settings
	role     Role
	w        *ec.Point
	ephPriv  *big.Int
	ephPub   *ec.Point
	ownStar  *ec.Point
	peerStar *ec.Point
	key      []byte
}

// StartPACE begins a session keyed by a shared password and salt; both
// sides must derive the identical W, so both must agree on salt out of
// band (or use a fixed, protocol-wide salt).
func StartPACE(params *bign.Params, settings Settings, role Role, pwd, salt []byte) (*PACESession, error) {
	seed := belt.HMACSum(salt, pwd)
	elt, err := params.Curve.F.FromOctets(u.Pad(seed[:params.Curve.F.No], params.Curve.F.No))
	if err != nil {
		return nil, bee2err.Newf("bake.StartPACE", bee2err.BadLogic, "%v", err)
	}
	w := params.Curve.SWU(elt)
	return &PACESession{params: params, settings: settings, role: role, w: w}, nil
}

func negPoint(c *ec.Curve, p *ec.Point) (*ec.Point, error) {
	x, y, ok := p.Affine()
	if !ok {
		return nil, bee2err.Newf("bake.negPoint", bee2err.BadPoint, "point is infinity")
	}
	return c.FromAffine(x, y.Neg()), nil
}

// StepA is the initiator's first message: its blinded ephemeral key
// X* = xG + W.
func (s *PACESession) StepA() ([]byte, error) {
	if err := s.checkLive("bake.PACESession.StepA"); err != nil {
		return nil, err
	}
	if s.role != Initiator {
		return nil, bee2err.Newf("bake.PACESession.StepA", bee2err.BadLogic, "only the initiator calls StepA")
	}
	return s.genBlinded()
}

// StepB is the responder's reply: absorb X*, send Y* = yG + W, and derive
// the shared key plus its own confirmation tag.
func (s *PACESession) StepB(peerMsg []byte) (msg, confirm []byte, err error) {
	if err := s.checkLive("bake.PACESession.StepB"); err != nil {
		return nil, nil, err
	}
	if s.role != Responder {
		return nil, nil, bee2err.Newf("bake.PACESession.StepB", bee2err.BadLogic, "only the responder calls StepB")
	}
	peerStar, perr := s.params.Curve.FromOctets(peerMsg)
	if perr != nil {
		return nil, nil, bee2err.Newf("bake.PACESession.StepB", bee2err.BadPoint, "%v", perr)
	}
	s.peerStar = peerStar

	out, gerr := s.genBlinded()
	if gerr != nil {
		return nil, nil, gerr
	}
	if derr := s.deriveKey(); derr != nil {
		return nil, nil, derr
	}
	tag := s.confirmTag(s.settings.Kcb, s.settings.HelloB)
	return out, tag, nil
}

// StepC is the initiator's second message: absorb Y* and the responder's
// confirmation tag, derive the shared key, verify that tag, and produce
// its own confirmation tag.
func (s *PACESession) StepC(peerMsg, peerConfirm []byte) ([]byte, error) {
	if err := s.checkLive("bake.PACESession.StepC"); err != nil {
		return nil, err
	}
	if s.role != Initiator {
		return nil, bee2err.Newf("bake.PACESession.StepC", bee2err.BadLogic, "only the initiator calls StepC")
	}
	peerStar, err := s.params.Curve.FromOctets(peerMsg)
	if err != nil {
		return nil, bee2err.Newf("bake.PACESession.StepC", bee2err.BadPoint, "%v", err)
	}
	s.peerStar = peerStar
	if err := s.deriveKey(); err != nil {
		return nil, err
	}
	if !u.Eq(s.confirmTag(s.settings.Kcb, s.settings.HelloB), peerConfirm) {
		return nil, bee2err.Newf("bake.PACESession.StepC", bee2err.Auth, "responder confirmation failed; wrong password")
	}
	return s.confirmTag(s.settings.Kca, s.settings.HelloA), nil
}

// StepV is the responder's final step: verify the initiator's
// confirmation tag.
func (s *PACESession) StepV(peerConfirm []byte) error {
	if err := s.checkLive("bake.PACESession.StepV"); err != nil {
		return err
	}
	if s.role != Responder {
		return bee2err.Newf("bake.PACESession.StepV", bee2err.BadLogic, "only the responder calls StepV")
	}
	if !u.Eq(s.confirmTag(s.settings.Kca, s.settings.HelloA), peerConfirm) {
		return bee2err.Newf("bake.PACESession.StepV", bee2err.Auth, "initiator confirmation failed; wrong password")
	}
	return nil
}

func (s *PACESession) genBlinded() ([]byte, error) {
	k, err := randScalar(s.params, s.settings.Rng)
	if err != nil {
		return nil, bee2err.Newf("bake.PACESession.genBlinded", bee2err.BadRNG, "%v", err)
	}
	s.ephPriv = k
	s.ephPub = s.params.Curve.MulCT(k, s.params.Curve.G(), s.params.Curve.Q.BitLen()+8)
	s.ownStar = s.params.Curve.Add(s.ephPub, s.w)
	return s.ownStar.ToOctets()
}

func (s *PACESession) deriveKey() error {
	negW, err := negPoint(s.params.Curve, s.w)
	if err != nil {
		return bee2err.Newf("bake.PACESession.deriveKey", bee2err.BadLogic, "%v", err)
	}
	peerUnblinded := s.params.Curve.Add(s.peerStar, negW)
	shared := s.params.Curve.MulCT(s.ephPriv, peerUnblinded, s.params.Curve.Q.BitLen()+8)
	octets, err := sharedOctets(shared)
	if err != nil {
		return bee2err.Newf("bake.PACESession.deriveKey", bee2err.BadSharedkey, "%v", err)
	}
	key, err := kdf(octets, "bake-pace  ", s.settings.HelloA, s.settings.HelloB, 32)
	if err != nil {
		return err
	}
	s.key = key
	return nil
}

func (s *PACESession) confirmTag(confirmKey, hello []byte) []byte {
	tag, _ := belt.MAC(confirmKey, append(append([]byte{}, s.key...), hello...))
	return tag
}

// Key returns the derived session key once StepC/StepB has run on each
// side respectively, valid for use only after the matching confirmation
// step has also succeeded.
func (s *PACESession) Key() []byte { return s.key }

// Cancel zeroizes key material and poisons the session.
func (s *PACESession) Cancel() {
	u.Zero(s.key)
	if s.ephPriv != nil {
		s.ephPriv.SetInt64(0)
	}
	s.poisoned = true
}
