package belt

import "github.com/agievich/bee2-sub002/bee2err"

// CFBEncrypt produces ciphertext y = x XOR gamma, where gamma is the
// encryption of the running state seeded by iv and fed back by ciphertext.
// Any length >= 0 is accepted; the final partial block uses a truncated
// keystream block.
func CFBEncrypt(key, iv, x []byte) ([]byte, error) {
	return cfb(key, iv, x, true)
}

// CFBDecrypt is the inverse of CFBEncrypt (CFB keystream generation is
// identical for both directions; only the feedback source differs).
func CFBDecrypt(key, iv, y []byte) ([]byte, error) {
	return cfb(key, iv, y, false)
}

func cfb(key, iv, in []byte, encrypting bool) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, bee2err.New("belt.CFB", bee2err.BadInput)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	out := make([]byte, len(in))
	state := make([]byte, BlockSize)
	copy(state, iv)
	for off := 0; off < len(in); off += BlockSize {
		n := BlockSize
		if off+n > len(in) {
			n = len(in) - off
		}
		gamma := make([]byte, BlockSize)
		c.encryptBlock(gamma, state)
		for i := 0; i < n; i++ {
			out[off+i] = in[off+i] ^ gamma[i]
		}
		if encrypting {
			copy(state, out[off:off+n])
			copy(state[n:], gamma[n:])
		} else {
			copy(state, in[off:off+n])
			copy(state[n:], gamma[n:])
		}
	}
	return out, nil
}
