// Package bee2err defines the error taxonomy shared by every package in this
// module.
//
// Every fallible operation in bee2-sub002 returns a plain Go error that wraps
// one of the Code values below, never a panic on attacker-controlled input.
package bee2err

import "fmt"

// Code names one of the error conditions a cryptographic operation can fail
// with. Numeric values are not meaningful outside this module; only the
// identity of the Code (via errors.Is) is part of the contract.
type Code int

const (
	OK Code = iota
	Sys
	BadUnit
	BadFile
	BadFunction
	BadCommand
	BadLength
	BadInput
	OutOfMemory
	AccessDenied
	NotReady
	Busy
	Timeout
	NotImplemented
	After
	BadOID
	BadEntropy
	BadRNG
	BadAng
	BadFormat
	BadTime
	BadPoint
	NotPrime
	NotCoprime
	NotIrred
	BadParams
	BadSeckey
	BadPrivkey
	BadPubkey
	BadCert
	BadSharedkey
	BadSharekey
	BadHash
	BadSig
	BadMAC
	BadKeyToken
	BadLogic
	BadPwd
	KeyNotFound
	Auth
	SelfTest
	StatTest
	BadName
)

var names = map[Code]string{
	OK:             "OK",
	Sys:            "SYS",
	BadUnit:        "BAD_UNIT",
	BadFile:        "BAD_FILE",
	BadFunction:    "BAD_FUNCTION",
	BadCommand:     "BAD_COMMAND",
	BadLength:      "BAD_LENGTH",
	BadInput:       "BAD_INPUT",
	OutOfMemory:    "OUTOFMEMORY",
	AccessDenied:   "ACCESS_DENIED",
	NotReady:       "NOT_READY",
	Busy:           "BUSY",
	Timeout:        "TIMEOUT",
	NotImplemented: "NOT_IMPLEMENTED",
	After:          "AFTER",
	BadOID:         "BAD_OID",
	BadEntropy:     "BAD_ENTROPY",
	BadRNG:         "BAD_RNG",
	BadAng:         "BAD_ANG",
	BadFormat:      "BAD_FORMAT",
	BadTime:        "BAD_TIME",
	BadPoint:       "BAD_POINT",
	NotPrime:       "NOT_PRIME",
	NotCoprime:     "NOT_COPRIME",
	NotIrred:       "NOT_IRRED",
	BadParams:      "BAD_PARAMS",
	BadSeckey:      "BAD_SECKEY",
	BadPrivkey:     "BAD_PRIVKEY",
	BadPubkey:      "BAD_PUBKEY",
	BadCert:        "BAD_CERT",
	BadSharedkey:   "BAD_SHAREDKEY",
	BadSharekey:    "BAD_SHAREKEY",
	BadHash:        "BAD_HASH",
	BadSig:         "BAD_SIG",
	BadMAC:         "BAD_MAC",
	BadKeyToken:    "BAD_KEYTOKEN",
	BadLogic:       "BAD_LOGIC",
	BadPwd:         "BAD_PWD",
	KeyNotFound:    "KEY_NOT_FOUND",
	Auth:           "AUTH",
	SelfTest:       "SELFTEST",
	StatTest:       "STATTEST",
	BadName:        "BAD_NAME",
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Err is the error type returned by every package in this module. It carries
// a Code from the taxonomy above plus an optional human-readable note, and
// never leaks secret material in its message.
type Err struct {
	Code Code
	Op   string // package/operation that produced the error, e.g. "belt.Decrypt"
	Note string
}

func (e *Err) Error() string {
	if e.Note == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Note)
}

// Is reports whether target is an *Err with the same Code, so callers can
// write errors.Is(err, bee2err.New("", BadSig)) or compare against package
// level sentinels built with New.
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New builds an *Err for the given operation and code.
func New(op string, code Code) *Err {
	return &Err{Op: op, Code: code}
}

// Newf builds an *Err with a formatted note.
func Newf(op string, code Code, format string, args ...any) *Err {
	return &Err{Op: op, Code: code, Note: fmt.Sprintf(format, args...)}
}
