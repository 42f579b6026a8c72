package bake

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
)

// STSSession runs BSTS: a plain Diffie-Hellman exchange of ephemeral keys
// followed by each party signing the transcript (both ephemeral public
// keys, in a fixed order) with its long-lived bign signing key, so
// authentication is explicit rather than implicit the way BMQV's static
// keys are. Anyone who intercepts and forwards messages without holding
// either party's private signing key cannot produce a valid signature over
// the transcript, which is what defeats a basic man-in-the-middle.
type STSSession struct {
	poisonable
	params     *bign.Params
	settings   Settings
	role       Role
	signD      *big.Int // own signing private key
	signQ      *ec.Point
	peerSignQ  *ec.Point
	ephPriv    *big.Int
	ephPub     *ec.Point
	peerEphPub *ec.Point
	key        []byte
}

// StartSTS begins a session for the given role, own signing keypair, and
// the peer's already-trusted signing public key.
func StartSTS(params *bign.Params, settings Settings, role Role, signD *big.Int, signQ, peerSignQ *ec.Point) (*STSSession, error) {
	if err := bign.ValidatePublicKey(params, peerSignQ); err != nil {
		return nil, bee2err.Newf("bake.StartSTS", bee2err.BadPubkey, "%v", err)
	}
	return &STSSession{params: params, settings: settings, role: role, signD: signD, signQ: signQ, peerSignQ: peerSignQ}, nil
}

// StepA is the initiator's first message: its ephemeral DH public key.
func (s *STSSession) StepA() ([]byte, error) {
	if err := s.checkLive("bake.STSSession.StepA"); err != nil {
		return nil, err
	}
	if s.role != Initiator {
		return nil, bee2err.Newf("bake.STSSession.StepA", bee2err.BadLogic, "only the initiator calls StepA")
	}
	return s.genEphemeral()
}

// transcript builds the bytes both signatures are computed over: the two
// ephemeral public keys in a fixed A-then-B order, regardless of which
// side is signing, so both parties sign (and verify) identical bytes.
func (s *STSSession) transcript(aPub, bPub []byte) []byte {
	out := append([]byte{}, aPub...)
	return append(out, bPub...)
}

// StepB is the responder's reply: absorb the initiator's ephemeral key,
// generate its own, compute the shared secret, and sign the transcript.
func (s *STSSession) StepB(peerMsg []byte) (ephOut, sigOut []byte, err error) {
	if err := s.checkLive("bake.STSSession.StepB"); err != nil {
		return nil, nil, err
	}
	if s.role != Responder {
		return nil, nil, bee2err.Newf("bake.STSSession.StepB", bee2err.BadLogic, "only the responder calls StepB")
	}
	peerEph, perr := s.params.Curve.FromOctets(peerMsg)
	if perr != nil {
		return nil, nil, bee2err.Newf("bake.STSSession.StepB", bee2err.BadPoint, "%v", perr)
	}
	s.peerEphPub = peerEph

	ownMsg, gerr := s.genEphemeral()
	if gerr != nil {
		return nil, nil, gerr
	}
	if derr := s.deriveDH(); derr != nil {
		return nil, nil, derr
	}

	tr := s.transcript(peerMsg, ownMsg)
	sig, serr := bign.Sign(s.params, s.signD, tr, s.settings.Rng)
	if serr != nil {
		return nil, nil, bee2err.Newf("bake.STSSession.StepB", bee2err.BadSig, "%v", serr)
	}
	return ownMsg, encodeSig(sig), nil
}

// StepC is the initiator's second message: absorb the responder's
// ephemeral key and signature, verify it, derive the shared secret, and
// produce its own signature over the same transcript.
func (s *STSSession) StepC(peerMsg, peerSig []byte) ([]byte, error) {
	if err := s.checkLive("bake.STSSession.StepC"); err != nil {
		return nil, err
	}
	if s.role != Initiator {
		return nil, bee2err.Newf("bake.STSSession.StepC", bee2err.BadLogic, "only the initiator calls StepC")
	}
	peerEph, err := s.params.Curve.FromOctets(peerMsg)
	if err != nil {
		return nil, bee2err.Newf("bake.STSSession.StepC", bee2err.BadPoint, "%v", err)
	}
	s.peerEphPub = peerEph
	if err := s.deriveDH(); err != nil {
		return nil, err
	}

	ownMsg, err := s.ephPub.ToOctets()
	if err != nil {
		return nil, bee2err.Newf("bake.STSSession.StepC", bee2err.BadLogic, "%v", err)
	}
	tr := s.transcript(ownMsg, peerMsg)
	sig, err := decodeSig(peerSig)
	if err != nil {
		return nil, err
	}
	if err := bign.Verify(s.params, s.peerSignQ, tr, sig); err != nil {
		return nil, bee2err.Newf("bake.STSSession.StepC", bee2err.BadSig, "%v", err)
	}

	ownTr := s.transcript(ownMsg, peerMsg)
	ownSig, err := bign.Sign(s.params, s.signD, ownTr, s.settings.Rng)
	if err != nil {
		return nil, bee2err.Newf("bake.STSSession.StepC", bee2err.BadSig, "%v", err)
	}
	return encodeSig(ownSig), nil
}

// StepD is the responder's final step: verify the initiator's signature
// over the transcript.
func (s *STSSession) StepD(peerSig []byte) error {
	if err := s.checkLive("bake.STSSession.StepD"); err != nil {
		return err
	}
	if s.role != Responder {
		return bee2err.Newf("bake.STSSession.StepD", bee2err.BadLogic, "only the responder calls StepD")
	}
	ownMsg, err := s.ephPub.ToOctets()
	if err != nil {
		return bee2err.Newf("bake.STSSession.StepD", bee2err.BadLogic, "%v", err)
	}
	peerMsg, err := s.peerEphPub.ToOctets()
	if err != nil {
		return bee2err.Newf("bake.STSSession.StepD", bee2err.BadLogic, "%v", err)
	}
	tr := s.transcript(peerMsg, ownMsg)
	sig, err := decodeSig(peerSig)
	if err != nil {
		return err
	}
	return bign.Verify(s.params, s.peerSignQ, tr, sig)
}

func (s *STSSession) genEphemeral() ([]byte, error) {
	k, err := randScalar(s.params, s.settings.Rng)
	if err != nil {
		return nil, bee2err.Newf("bake.STSSession.genEphemeral", bee2err.BadRNG, "%v", err)
	}
	s.ephPriv = k
	s.ephPub = s.params.Curve.MulCT(k, s.params.Curve.G(), s.params.Curve.Q.BitLen()+8)
	return s.ephPub.ToOctets()
}

func (s *STSSession) deriveDH() error {
	shared := s.params.Curve.MulCT(s.ephPriv, s.peerEphPub, s.params.Curve.Q.BitLen()+8)
	octets, err := sharedOctets(shared)
	if err != nil {
		return err
	}
	key, err := kdf(octets, "bake-sts   ", s.settings.HelloA, s.settings.HelloB, 32)
	if err != nil {
		return err
	}
	s.key = key
	return nil
}

// Key returns the derived session key after both sides have exchanged
// ephemeral keys (valid even before signature verification completes, so
// callers must still check the Step error before trusting it).
func (s *STSSession) Key() []byte { return s.key }

// Cancel zeroizes session key material and poisons the session.
func (s *STSSession) Cancel() {
	u.Zero(s.key)
	if s.ephPriv != nil {
		s.ephPriv.SetInt64(0)
	}
	s.poisoned = true
}

func encodeSig(sig *bign.Signature) []byte {
	s0 := sig.S0.Bytes()
	s1 := sig.S1.Bytes()
	out := make([]byte, 0, 2+len(s0)+2+len(s1))
	out = append(out, byte(len(s0)>>8), byte(len(s0)))
	out = append(out, s0...)
	out = append(out, byte(len(s1)>>8), byte(len(s1)))
	out = append(out, s1...)
	return out
}

func decodeSig(b []byte) (*bign.Signature, error) {
	if len(b) < 2 {
		return nil, bee2err.Newf("bake.decodeSig", bee2err.BadFormat, "truncated signature")
	}
	n0 := int(b[0])<<8 | int(b[1])
	b = b[2:]
	if len(b) < n0+2 {
		return nil, bee2err.Newf("bake.decodeSig", bee2err.BadFormat, "truncated signature")
	}
	s0 := new(big.Int).SetBytes(b[:n0])
	b = b[n0:]
	n1 := int(b[0])<<8 | int(b[1])
	b = b[2:]
	if len(b) < n1 {
		return nil, bee2err.Newf("bake.decodeSig", bee2err.BadFormat, "truncated signature")
	}
	s1 := new(big.Int).SetBytes(b[:n1])
	return &bign.Signature{S0: s0, S1: s1}, nil
}
