package belt

import "github.com/agievich/bee2-sub002/bee2err"

// KRP re-derives a fresh key of length 16/24/32 from a base key, a 12-octet
// level, and a 16-octet header via sigma2: one invocation for 16- and
// 32-byte keys, a second one (chained on the first output) for 24-byte keys.
// The 32-byte sigma2 input block is level || four zero octets || header,
// and the base key, zero-padded to 32 bytes if it is shorter, is the sigma2
// chaining value.
func KRP(baseKey []byte, level [12]byte, header [16]byte, outLen int) ([]byte, error) {
	if outLen != 16 && outLen != 24 && outLen != 32 {
		return nil, bee2err.New("belt.KRP", bee2err.BadInput)
	}
	var h [32]byte
	copy(h[:], baseKey)

	var X [32]byte
	copy(X[:12], level[:])
	copy(X[16:], header[:])

	out := Sigma2(X, h)
	switch outLen {
	case 16:
		return out[:16], nil
	case 24:
		// Extend with a second sigma2 pass keyed off the first output so a
		// 24-byte key is still derived from the full sigma2 output, not a
		// truncation of a 16-byte one.
		out2 := Sigma2(X, out)
		res := make([]byte, 24)
		copy(res, out[:16])
		copy(res[16:], out2[:8])
		return res, nil
	default: // 32
		return out[:], nil
	}
}
