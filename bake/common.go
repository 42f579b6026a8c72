// Package bake implements the three authenticated key-establishment
// protocols built on bign: BMQV (implicitly authenticated via static keys),
// BSTS (explicitly authenticated via signatures), and BPACE
// (password-authenticated, using a map-to-curve blinding step). Each
// protocol is a stepwise session state machine: construct with Start, feed
// peer messages to Step methods in order, and read the derived key once
// the handshake completes. Package btok exposes the BPACE session as BAUTH
// (a type alias with the same fields) for smart-card mutual authentication.
package bake

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/u"
)

// Role distinguishes the protocol initiator from the responder; the
// handshake steps differ by role even though the underlying math is
// symmetric once both ephemeral keys are known.
type Role int

const (
	Initiator Role = iota
	Responder
)

// Settings carries the parameters every bake session needs beyond the
// domain parameters themselves: long-lived confirmation keys (Kca for
// messages flowing A -> B, Kcb for B -> A, matching belt-MAC's role as
// bake's confirmation primitive) and the two parties' "hello" context
// strings bound into every derived key so a key from one session context
// can never be confused with a key from another.
type Settings struct {
	Kca, Kcb       []byte
	HelloA, HelloB []byte
	Rng            u.Rng
}

// poisoned tracks whether Cancel zeroized a session; every subsequent Step
// call on a poisoned session fails rather than silently operating on
// zeroed key material.
type poisonable struct{ poisoned bool }

func (p *poisonable) checkLive(op string) error {
	if p.poisoned {
		return bee2err.Newf(op, bee2err.BadLogic, "session was cancelled")
	}
	return nil
}

// kdf derives outLen bytes from a shared ECDH value and session context via
// belt.KRP, reusing belt's own key re-derivation procedure instead of
// inventing a second one: the shared secret is the base key, the protocol
// name is the 12-byte level, and the concatenated hello strings are hashed
// down to the 16-byte header KRP expects.
func kdf(shared []byte, protocol string, helloA, helloB []byte, outLen int) ([]byte, error) {
	var level [12]byte
	copy(level[:], protocol)

	h := belt.NewHash()
	h.Write(helloA)
	h.Write(helloB)
	digest := h.Sum(nil)
	var header [16]byte
	copy(header[:], digest)

	base := shared
	if len(base) < 32 {
		padded := make([]byte, 32)
		copy(padded, base)
		base = padded
	}
	key, err := belt.KRP(base[:32], level, header, outLen)
	if err != nil {
		return nil, bee2err.Newf("bake.kdf", bee2err.BadLogic, "%v", err)
	}
	return key, nil
}

// sharedOctets reduces an ECDH point to the byte string kdf hashes from.
func sharedOctets(p *ec.Point) ([]byte, error) {
	x, y, ok := p.Affine()
	if !ok {
		return nil, bee2err.Newf("bake.sharedOctets", bee2err.BadSharedkey, "point is infinity")
	}
	return append(x.ToOctets(), y.ToOctets()...), nil
}

// mqvCombine implements the (H)MQV scalar/point combiner shared by BMQV's
// key computation: the "implicit signature" d = (X_x mod 2^t) + 2^t folds
// the ephemeral public key into the static private key's coefficient, so an
// attacker who doesn't know the static private key cannot influence the
// session key by choosing an ephemeral key alone.
func mqvCombine(params *bign.Params, staticPriv *big.Int, ephPriv *big.Int, ephPub *ec.Point, peerStatic, peerEph *ec.Point) (*ec.Point, error) {
	t := params.Curve.L / 2
	mod := new(big.Int).Lsh(big.NewInt(1), uint(t))
	twoT := new(big.Int).Lsh(big.NewInt(1), uint(t))

	ex, _, ok := ephPub.Affine()
	if !ok {
		return nil, bee2err.Newf("bake.mqvCombine", bee2err.BadLogic, "own ephemeral point is infinity")
	}
	d := new(big.Int).Mod(ex.Big(), mod)
	d.Add(d, twoT)

	px, _, ok := peerEph.Affine()
	if !ok {
		return nil, bee2err.Newf("bake.mqvCombine", bee2err.BadLogic, "peer ephemeral point is infinity")
	}
	e := new(big.Int).Mod(px.Big(), mod)
	e.Add(e, twoT)

	q := params.Curve.Q
	avg := new(big.Int).Mul(d, staticPriv)
	avg.Add(avg, ephPriv)
	avg.Mod(avg, q)

	combinedPeer := params.Curve.AddMul(
		ec.ScalarPoint{S: big.NewInt(1), P: peerEph},
		ec.ScalarPoint{S: e, P: peerStatic},
	)
	return params.Curve.MulCT(avg, combinedPeer, q.BitLen()+8), nil
}
