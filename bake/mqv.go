package bake

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
	"github.com/agievich/bee2-sub002/zz"
)

// MQVSession runs BMQV: both parties already hold each other's static
// public key out of band (e.g. from a certificate exchanged earlier), so
// the two messages on the wire carry only fresh ephemeral public keys.
// Static-key possession alone authenticates the resulting session key —
// there is no separate confirmation round built into BMQV itself, unlike
// BSTS's explicit signatures.
type MQVSession struct {
	poisonable
	params        *bign.Params
	settings      Settings
	role          Role
	staticPriv    *big.Int
	staticPub     *ec.Point
	peerStaticPub *ec.Point
	ephPriv       *big.Int
	ephPub        *ec.Point
	peerEphPub    *ec.Point
	key           []byte
}

// StartMQV begins a session for the given role, own static keypair and the
// peer's already-trusted static public key.
func StartMQV(params *bign.Params, settings Settings, role Role, staticPriv *big.Int, staticPub, peerStaticPub *ec.Point) (*MQVSession, error) {
	if err := bign.ValidatePublicKey(params, peerStaticPub); err != nil {
		return nil, bee2err.Newf("bake.StartMQV", bee2err.BadPubkey, "%v", err)
	}
	return &MQVSession{params: params, settings: settings, role: role, staticPriv: staticPriv, staticPub: staticPub, peerStaticPub: peerStaticPub}, nil
}

// StepA generates the initiator's outbound message: a fresh ephemeral
// public key.
func (s *MQVSession) StepA() ([]byte, error) {
	if err := s.checkLive("bake.MQVSession.StepA"); err != nil {
		return nil, err
	}
	if s.role != Initiator {
		return nil, bee2err.Newf("bake.MQVSession.StepA", bee2err.BadLogic, "only the initiator calls StepA")
	}
	return s.genEphemeral()
}

// StepB is the responder's reply to StepA: it absorbs the initiator's
// ephemeral key, generates its own, and computes the shared key (the
// responder finishes first in MQV since it has both ephemeral keys after
// one inbound message).
func (s *MQVSession) StepB(peerMsg []byte) ([]byte, error) {
	if err := s.checkLive("bake.MQVSession.StepB"); err != nil {
		return nil, err
	}
	if s.role != Responder {
		return nil, bee2err.Newf("bake.MQVSession.StepB", bee2err.BadLogic, "only the responder calls StepB")
	}
	peerEph, err := s.params.Curve.FromOctets(peerMsg)
	if err != nil {
		return nil, bee2err.Newf("bake.MQVSession.StepB", bee2err.BadPoint, "%v", err)
	}
	s.peerEphPub = peerEph

	out, err := s.genEphemeral()
	if err != nil {
		return nil, err
	}
	if err := s.deriveKey(); err != nil {
		return nil, err
	}
	return out, nil
}

// StepC is the initiator's final step: absorb the responder's ephemeral
// key and compute the same shared key independently.
func (s *MQVSession) StepC(peerMsg []byte) error {
	if err := s.checkLive("bake.MQVSession.StepC"); err != nil {
		return err
	}
	if s.role != Initiator {
		return bee2err.Newf("bake.MQVSession.StepC", bee2err.BadLogic, "only the initiator calls StepC")
	}
	peerEph, err := s.params.Curve.FromOctets(peerMsg)
	if err != nil {
		return bee2err.Newf("bake.MQVSession.StepC", bee2err.BadPoint, "%v", err)
	}
	s.peerEphPub = peerEph
	return s.deriveKey()
}

func (s *MQVSession) genEphemeral() ([]byte, error) {
	k, err := randScalar(s.params, s.settings.Rng)
	if err != nil {
		return nil, bee2err.Newf("bake.MQVSession.genEphemeral", bee2err.BadRNG, "%v", err)
	}
	s.ephPriv = k
	s.ephPub = s.params.Curve.MulCT(k, s.params.Curve.G(), s.params.Curve.Q.BitLen()+8)
	return s.ephPub.ToOctets()
}

func (s *MQVSession) deriveKey() error {
	z, err := mqvCombine(s.params, s.staticPriv, s.ephPriv, s.ephPub, s.peerStaticPub, s.peerEphPub)
	if err != nil {
		return bee2err.Newf("bake.MQVSession.deriveKey", bee2err.BadSharedkey, "%v", err)
	}
	shared, err := sharedOctets(z)
	if err != nil {
		return bee2err.Newf("bake.MQVSession.deriveKey", bee2err.BadSharedkey, "%v", err)
	}
	key, err := kdf(shared, "bake-mqv   ", s.settings.HelloA, s.settings.HelloB, 32)
	if err != nil {
		return err
	}
	s.key = key
	return nil
}

// Key returns the derived session key once both steps have completed.
func (s *MQVSession) Key() []byte { return s.key }

// Cancel zeroizes the session's key material and poisons it against
// further use.
func (s *MQVSession) Cancel() {
	u.Zero(s.key)
	if s.staticPriv != nil {
		s.staticPriv.SetInt64(0)
	}
	if s.ephPriv != nil {
		s.ephPriv.SetInt64(0)
	}
	s.poisoned = true
}

func randScalar(params *bign.Params, rng u.Rng) (*big.Int, error) {
	no := (params.Curve.Q.BitLen() + 7) / 8
	return zz.RandNZMod(params.Curve.Q, no, rng)
}
