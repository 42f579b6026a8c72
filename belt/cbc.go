package belt

import "github.com/agievich/bee2-sub002/bee2err"

// CBCEncrypt XOR-then-encrypts x in CBC chaining mode under key/iv. Tail
// 1 <= r < 16 uses ciphertext stealing (swap the last two blocks' tails).
func CBCEncrypt(key, iv, x []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, bee2err.New("belt.CBCEncrypt", bee2err.BadInput)
	}
	if len(x) < BlockSize {
		return nil, bee2err.New("belt.CBCEncrypt", bee2err.BadLength)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := len(x) / BlockSize
	r := len(x) % BlockSize
	out := make([]byte, len(x))
	prev := make([]byte, BlockSize)
	copy(prev, iv)
	blocksToChain := n
	if r != 0 {
		blocksToChain = n - 1
	}
	for i := 0; i < blocksToChain; i++ {
		in := make([]byte, BlockSize)
		xorInto(in, x[i*BlockSize:(i+1)*BlockSize], prev)
		c.encryptBlock(out[i*BlockSize:], in)
		copy(prev, out[i*BlockSize:(i+1)*BlockSize])
	}
	if r == 0 {
		return out, nil
	}
	// Final short block: ciphertext steal by encrypting the padded last
	// full plaintext block first, then the short tail chained off it.
	lastFull := blocksToChain * BlockSize
	in := make([]byte, BlockSize)
	xorInto(in, x[lastFull:lastFull+BlockSize], prev)
	encLast := make([]byte, BlockSize)
	c.encryptBlock(encLast, in)

	tailPlain := x[lastFull+BlockSize:]
	in2 := make([]byte, BlockSize)
	copy(in2, encLast)
	xorInto(in2[:r], tailPlain, encLast[:r])
	encTail := make([]byte, BlockSize)
	c.encryptBlock(encTail, in2)

	copy(out[lastFull:], encTail)
	copy(out[lastFull+BlockSize:], encLast[:r])
	return out, nil
}

// CBCDecrypt is the inverse of CBCEncrypt.
func CBCDecrypt(key, iv, y []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, bee2err.New("belt.CBCDecrypt", bee2err.BadInput)
	}
	if len(y) < BlockSize {
		return nil, bee2err.New("belt.CBCDecrypt", bee2err.BadLength)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := len(y) / BlockSize
	r := len(y) % BlockSize
	out := make([]byte, len(y))
	prev := make([]byte, BlockSize)
	copy(prev, iv)
	blocksToChain := n
	if r != 0 {
		blocksToChain = n - 1
	}
	if r == 0 {
		for i := 0; i < blocksToChain; i++ {
			dec := make([]byte, BlockSize)
			c.decryptBlock(dec, y[i*BlockSize:])
			xorInto(out[i*BlockSize:(i+1)*BlockSize], dec, prev)
			copy(prev, y[i*BlockSize:(i+1)*BlockSize])
		}
		return out, nil
	}
	for i := 0; i < blocksToChain; i++ {
		dec := make([]byte, BlockSize)
		c.decryptBlock(dec, y[i*BlockSize:])
		xorInto(out[i*BlockSize:(i+1)*BlockSize], dec, prev)
		copy(prev, y[i*BlockSize:(i+1)*BlockSize])
	}
	lastFull := blocksToChain * BlockSize
	encTail := y[lastFull+BlockSize : lastFull+BlockSize+r]
	encLastCT := y[lastFull : lastFull+BlockSize]

	decTailBlock := make([]byte, BlockSize)
	c.decryptBlock(decTailBlock, encLastCT)
	tailPlain := make([]byte, r)
	xorInto(tailPlain, encTail, decTailBlock[:r])

	reconstructed := make([]byte, BlockSize)
	copy(reconstructed, encTail)
	copy(reconstructed[r:], decTailBlock[r:])
	decLastPlain := make([]byte, BlockSize)
	c.decryptBlock(decLastPlain, reconstructed)
	xorInto(out[lastFull:lastFull+BlockSize], decLastPlain, prev)
	copy(out[lastFull+BlockSize:], tailPlain)
	return out, nil
}

func xorInto(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
