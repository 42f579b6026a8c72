package btok

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/u"
)

// SecureChannel wraps APDU command/response bodies with belt.DWP under a
// session key established by BAUTH. Each command/response round shares one
// counter value, distinguished by a direction byte folded into the IV, so
// a captured command can never be replayed back as that round's response
// and vice versa; the counter advances only once both halves of a round
// have completed, keeping a host-side and card-side SecureChannel in sync
// as long as APDUs are processed strictly in order.
type SecureChannel struct {
	key   []byte
	round uint64
}

// NewSecureChannel starts a channel from a session key (the output of a
// completed BAUTH/BPACE handshake).
func NewSecureChannel(key []byte) *SecureChannel {
	return &SecureChannel{key: append([]byte(nil), key...)}
}

func (sc *SecureChannel) iv(direction byte) []byte {
	iv := make([]byte, belt.BlockSize)
	u.PutU64LE(iv[:8], sc.round)
	iv[15] = direction
	return iv
}

// WrapCommand authenticates header and seals data for this round's command
// leg.
func (sc *SecureChannel) WrapCommand(header, data []byte) ([]byte, error) {
	out, err := belt.Seal(sc.key, sc.iv(0x00), header, data)
	if err != nil {
		return nil, bee2err.Newf("btok.SecureChannel.WrapCommand", bee2err.BadLogic, "%v", err)
	}
	return out, nil
}

// UnwrapCommand is the card side's inverse of WrapCommand.
func (sc *SecureChannel) UnwrapCommand(header, wrapped []byte) ([]byte, error) {
	pt, err := belt.Open(sc.key, sc.iv(0x00), header, wrapped)
	if err != nil {
		return nil, bee2err.Newf("btok.SecureChannel.UnwrapCommand", bee2err.BadMAC, "%v", err)
	}
	return pt, nil
}

// WrapResponse seals this round's response leg and advances the round
// counter, since the response is always the last message of a round.
func (sc *SecureChannel) WrapResponse(header, data []byte) ([]byte, error) {
	out, err := belt.Seal(sc.key, sc.iv(0x01), header, data)
	if err != nil {
		return nil, bee2err.Newf("btok.SecureChannel.WrapResponse", bee2err.BadLogic, "%v", err)
	}
	sc.round++
	return out, nil
}

// UnwrapResponse is the host side's inverse of WrapResponse; it also
// advances the round counter.
func (sc *SecureChannel) UnwrapResponse(header, wrapped []byte) ([]byte, error) {
	pt, err := belt.Open(sc.key, sc.iv(0x01), header, wrapped)
	if err != nil {
		return nil, bee2err.Newf("btok.SecureChannel.UnwrapResponse", bee2err.BadMAC, "%v", err)
	}
	sc.round++
	return pt, nil
}

// Zero scrubs the session key.
func (sc *SecureChannel) Zero() {
	u.Zero(sc.key)
}
