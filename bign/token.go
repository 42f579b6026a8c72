package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/belt"
	"github.com/agievich/bee2-sub002/u"
)

// tokenPBKDFIter is the iteration count used to stretch a password into the
// belt.KWP wrapping key guarding a private-key token; chosen as a fixed
// constant here rather than surfaced as a parameter because the wire format
// doesn't carry it (same assumption bign-sign2's token format makes — a
// verifier and a signer must already agree on this count out of band).
const tokenPBKDFIter = 10000

// WrapScalar produces a bign-sign2 private-key token: the scalar's fixed-
// width octets wrapped with belt.KWP under a key stretched from pwd and
// salt via belt.PBKDF.
func WrapScalar(p *Params, d *big.Int, pwd, salt []byte) ([]byte, error) {
	no := roundUp16((p.Curve.Q.BitLen() + 7) / 8)
	be := d.Bytes()
	le := u.Reverse(be)
	plain := u.Pad(le, no)

	key, err := belt.PBKDF(pwd, salt, tokenPBKDFIter, 32)
	if err != nil {
		return nil, bee2err.Newf("bign.WrapScalar", bee2err.BadLogic, "%v", err)
	}
	var header [16]byte
	copy(header[:], salt)
	wrapped, err := belt.KWPWrap(key, header[:], plain)
	if err != nil {
		return nil, bee2err.Newf("bign.WrapScalar", bee2err.BadKeyToken, "%v", err)
	}
	return append(append([]byte{}, salt...), wrapped...), nil
}

// unwrapScalar reverses WrapScalar: the first 16 bytes of token are the
// salt WrapScalar stored the key-derivation salt in, the remainder is the
// belt.KWP ciphertext.
func unwrapScalar(p *Params, token, pwd []byte) (*big.Int, error) {
	if len(token) < 16 {
		return nil, bee2err.Newf("bign.unwrapScalar", bee2err.BadKeyToken, "token too short")
	}
	salt := token[:16]
	wrapped := token[16:]

	key, err := belt.PBKDF(pwd, salt, tokenPBKDFIter, 32)
	if err != nil {
		return nil, bee2err.Newf("bign.unwrapScalar", bee2err.BadLogic, "%v", err)
	}
	var header [16]byte
	copy(header[:], salt)
	plain, err := belt.KWPUnwrap(key, header[:], wrapped)
	if err != nil {
		return nil, bee2err.Newf("bign.unwrapScalar", bee2err.BadPwd, "%v", err)
	}
	no := (p.Curve.Q.BitLen() + 7) / 8
	be := u.Reverse(plain[:no])
	return new(big.Int).SetBytes(be), nil
}

// roundUp16 rounds n up to the next multiple of belt.BlockSize so KWP's
// block-aligned wrapping always has a whole number of blocks to work with.
func roundUp16(n int) int {
	if n%16 == 0 {
		return n
	}
	return n + (16 - n%16)
}
