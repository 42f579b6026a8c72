package belt

import "github.com/agievich/bee2-sub002/bee2err"

// ECBEncrypt encrypts x under key in ECB mode. Any tail 1 <= r < 16 uses
// ciphertext stealing against the previous block; x must be at least 16
// bytes (BadLength otherwise).
func ECBEncrypt(key, x []byte) ([]byte, error) {
	if len(x) < BlockSize {
		return nil, bee2err.New("belt.ECBEncrypt", bee2err.BadLength)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := len(x) / BlockSize
	r := len(x) % BlockSize
	out := make([]byte, len(x))
	for i := 0; i < n; i++ {
		c.encryptBlock(out[i*BlockSize:], x[i*BlockSize:])
	}
	if r == 0 {
		return out, nil
	}
	// Ciphertext stealing: re-encrypt the last full ciphertext block with
	// its first r bytes replaced by the tail, and publish the displaced r
	// bytes as the tail ciphertext.
	last := (n - 1) * BlockSize
	tail := x[n*BlockSize:]
	padded := make([]byte, BlockSize)
	copy(padded, out[last:last+BlockSize])
	copy(padded, tail)
	stolen := make([]byte, BlockSize)
	copy(stolen, out[last:last+BlockSize])
	c.encryptBlock(out[last:], padded)
	copy(out[n*BlockSize:], stolen[:r])
	return out, nil
}

// ECBDecrypt is the inverse of ECBEncrypt.
func ECBDecrypt(key, y []byte) ([]byte, error) {
	if len(y) < BlockSize {
		return nil, bee2err.New("belt.ECBDecrypt", bee2err.BadLength)
	}
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	defer c.Zero()

	n := len(y) / BlockSize
	r := len(y) % BlockSize
	out := make([]byte, len(y))
	if r == 0 {
		for i := 0; i < n; i++ {
			c.decryptBlock(out[i*BlockSize:], y[i*BlockSize:])
		}
		return out, nil
	}
	for i := 0; i < n-1; i++ {
		c.decryptBlock(out[i*BlockSize:], y[i*BlockSize:])
	}
	last := (n - 1) * BlockSize
	stolenTail := y[n*BlockSize:]
	fullLast := make([]byte, BlockSize)
	copy(fullLast, y[last:last+BlockSize])
	decLast := make([]byte, BlockSize)
	c.decryptBlock(decLast, fullLast)
	padded := make([]byte, BlockSize)
	copy(padded, decLast)
	copy(padded, stolenTail)
	c.decryptBlock(out[last:], padded)
	copy(out[n*BlockSize:], decLast[:r])
	return out, nil
}
