package u

import (
	"crypto/rand"
	"io"

	"github.com/agievich/bee2-sub002/bee2err"
)

// Rng is the randomness contract consumed by every randomized operation in
// this module. Unlike io.Reader, a short read is always an error: callers
// never partially fill a secret buffer.
type Rng interface {
	Read(buf []byte) error
}

// RngFunc adapts a plain function to Rng.
type RngFunc func(buf []byte) error

func (f RngFunc) Read(buf []byte) error { return f(buf) }

// cryptoRandRng wraps crypto/rand.Reader to satisfy Rng. It is the default
// generator handed to callers who do not supply their own; brng.CTR/HMAC
// are the generators to use for anything that must be reproducible.
type cryptoRandRng struct{}

func (cryptoRandRng) Read(buf []byte) error {
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return bee2err.Newf("u.Rng", bee2err.BadEntropy, "%v", err)
	}
	return nil
}

// CryptoRand is the default Rng backed by crypto/rand.
var CryptoRand Rng = cryptoRandRng{}
