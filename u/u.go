// Package u provides the leaf-level octet/word primitives that every other
// package in bee2-sub002 is built on: fixed-width endian conversion,
// timing-safe equality, and zeroization.
package u

import (
	"crypto/subtle"
	"encoding/binary"
)

// Eq reports whether a and b hold the same bytes, in constant time with
// respect to the content (though not the lengths, which are public in every
// call site in this module).
func Eq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero overwrites buf with zeroes. Used to scrub secret material (private
// scalars, session keys, PINs) at the end of its lifetime.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// PutU32LE and GetU32LE convert between a 32-bit word and its 4-byte
// little-endian representation; all multi-octet numbers in this module are
// little-endian.
func PutU32LE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func GetU32LE(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }

// PutU64LE and GetU64LE are the 64-bit analogues of PutU32LE/GetU32LE.
func PutU64LE(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func GetU64LE(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

// Xor writes dst[i] = a[i] ^ b[i] for i in range; dst may alias a or b.
// len(dst) == len(a) == len(b) is required by every call site.
func Xor(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Reverse returns a new slice with the bytes of b in reverse order. Used at
// the handful of points where a big-endian hash digest or DER integer needs
// to become a little-endian scalar, or vice versa.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// Pad grows b to n bytes by appending zero bytes, matching the convention
// used throughout bign/bake wire formats (fixed-width little-endian scalars).
// It never truncates; callers are expected to have validated len(b) <= n.
func Pad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
