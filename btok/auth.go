package btok

import (
	"github.com/agievich/bee2-sub002/bake"
	"github.com/agievich/bee2-sub002/bign"
)

// BAUTH is a smart-card mutual authentication handshake, identical in
// mechanism to bake.BPACE (a PIN-blinded Diffie-Hellman exchange with a
// belt-MAC confirmation round) but renamed to the terminal/card vocabulary
// this package otherwise uses: the card is always the Responder, the
// terminal always the Initiator, and the shared secret is a PIN rather
// than an arbitrary password.
type BAUTH = bake.PACESession

// StartTerminal and StartCard are named constructors over bake.StartPACE so callers
// never need to remember which bake.Role value corresponds to which side
// of a terminal/card session.
func StartTerminal(params *bign.Params, settings bake.Settings, pin []byte, salt []byte) (*BAUTH, error) {
	return bake.StartPACE(params, settings, bake.Initiator, pin, salt)
}

func StartCard(params *bign.Params, settings bake.Settings, pin []byte, salt []byte) (*BAUTH, error) {
	return bake.StartPACE(params, settings, bake.Responder, pin, salt)
}
