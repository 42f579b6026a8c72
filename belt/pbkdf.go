package belt

import "github.com/agievich/bee2-sub002/bee2err"

// PBKDF implements PBKDF2 keyed by belt-HMAC: iter >= 1 iterations, with the
// 4-byte block index (starting at 1) appended to the salt in little-endian
// order. The loop has the shape of golang.org/x/crypto/pbkdf2's Key (salt ||
// block index, iterated HMAC, XOR-accumulated) over belt.HMAC, which is
// crypto/hmac around belt-hash; pbkdf2.Key encodes the block index
// big-endian, so the two do not produce the same keys.
func PBKDF(password, salt []byte, iter, dkLen int) ([]byte, error) {
	if iter < 1 || dkLen < 1 {
		return nil, bee2err.New("belt.PBKDF", bee2err.BadInput)
	}
	prf := HMAC(password)
	hLen := prf.Size()

	numBlocks := (dkLen + hLen - 1) / hLen
	dk := make([]byte, 0, numBlocks*hLen)

	for blockIdx := 1; blockIdx <= numBlocks; blockIdx++ {
		prf.Reset()
		prf.Write(salt)
		var idx [4]byte
		idx[0] = byte(blockIdx)
		idx[1] = byte(blockIdx >> 8)
		idx[2] = byte(blockIdx >> 16)
		idx[3] = byte(blockIdx >> 24)
		prf.Write(idx[:])
		u := prf.Sum(nil)
		t := append([]byte(nil), u...)
		for i := 1; i < iter; i++ {
			prf.Reset()
			prf.Write(u)
			u = prf.Sum(nil)
			for j := range t {
				t[j] ^= u[j]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:dkLen], nil
}
