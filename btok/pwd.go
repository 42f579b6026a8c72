package btok

import (
	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// PwdState is a PIN/PUK attempt counter with lockout: maxAttempts wrong
// guesses in a row lock the credential until Unlock is called with the
// matching PUK (or, for a PUK itself, the card is bricked — modeled here
// by Unlock simply being unavailable once a PUK locks out).
type PwdState struct {
	expected    []byte
	maxAttempts int
	remaining   int
	locked      bool
}

// NewPwdState creates an attempt automaton bound to an expected secret.
func NewPwdState(expected []byte, maxAttempts int) *PwdState {
	return &PwdState{expected: append([]byte(nil), expected...), maxAttempts: maxAttempts, remaining: maxAttempts}
}

// Remaining reports how many attempts are left before lockout.
func (p *PwdState) Remaining() int { return p.remaining }

// Locked reports whether the credential is currently locked out.
func (p *PwdState) Locked() bool { return p.locked }

// Check verifies guess against the expected secret. A correct guess resets
// the remaining-attempts counter; a wrong guess consumes one attempt and
// locks the credential once none remain. Checking a locked credential
// always fails without consuming an attempt.
func (p *PwdState) Check(guess []byte) error {
	if p.locked {
		return bee2err.Newf("btok.PwdState.Check", bee2err.AccessDenied, "credential is locked")
	}
	if u.Eq(guess, p.expected) {
		p.remaining = p.maxAttempts
		return nil
	}
	p.remaining--
	if p.remaining <= 0 {
		p.remaining = 0
		p.locked = true
	}
	return bee2err.Newf("btok.PwdState.Check", bee2err.BadPwd, "incorrect credential, %d attempt(s) remaining", p.remaining)
}

// Unlock resets a locked PIN using its PUK counterpart and a new PIN
// value; pukState itself is checked the same way any other credential is,
// so a wrong PUK also consumes one of its own attempts.
func (p *PwdState) Unlock(pukState *PwdState, puk, newExpected []byte) error {
	if err := pukState.Check(puk); err != nil {
		return bee2err.Newf("btok.PwdState.Unlock", bee2err.BadPwd, "%v", err)
	}
	p.expected = append([]byte(nil), newExpected...)
	p.remaining = p.maxAttempts
	p.locked = false
	return nil
}
