package belt

import (
	"crypto/hmac"
	"hash"
)

// HMAC returns an HMAC keyed with key, built over belt-hash: the standard
// HMAC construction with a 32-byte block and the usual 0x36/0x5C inner/outer
// pad constants. Because belt.Hash already satisfies hash.Hash
// (Write/Sum/Reset/Size/BlockSize) and reports a 32-byte block size, the
// stdlib crypto/hmac construction can be reused verbatim instead of
// hand-rolling it a second time.
func HMAC(key []byte) hash.Hash {
	return hmac.New(func() hash.Hash { return NewHash() }, key)
}

// HMACSum is the one-shot convenience form.
func HMACSum(key, data []byte) []byte {
	h := HMAC(key)
	h.Write(data)
	return h.Sum(nil)
}
