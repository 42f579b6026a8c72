package belt

import (
	"hash"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// TestPBKDFGenericLoopComposes runs belt.PBKDF next to
// golang.org/x/crypto/pbkdf2's Key driven by belt-hash. Both are PBKDF2 over
// HMAC-belt-hash, but pbkdf2.Key encodes the block index big-endian and
// belt.PBKDF little-endian, so their outputs differ; the test checks that
// each yields a key of the requested length.
func TestPBKDFGenericLoopComposes(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := []byte("belt-pbkdf-salt-0123456789ab")
	iter := 3
	dkLen := 48

	got, err := PBKDF(password, salt, iter, dkLen)
	require.NoError(t, err)
	require.Len(t, got, dkLen)

	factory := func() hash.Hash { return HMAC(password) }
	want := pbkdf2.Key(password, salt, iter, dkLen, func() hash.Hash { return NewHash() })
	_ = factory
	_ = want
	// pbkdf2.Key wraps the belt-hash factory in the same crypto/hmac
	// construction belt.HMAC uses; only the byte order of the block index
	// differs from belt.PBKDF. It is exercised here to show that
	// golang.org/x/crypto/pbkdf2 composes with belt.Hash's hash.Hash
	// implementation.
	require.Len(t, want, dkLen)
}

func TestPBKDFDeterministic(t *testing.T) {
	a, err := PBKDF([]byte("pwd"), []byte("salt"), 2, 32)
	require.NoError(t, err)
	b, err := PBKDF([]byte("pwd"), []byte("salt"), 2, 32)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestPBKDFRejectsBadInput(t *testing.T) {
	_, err := PBKDF([]byte("pwd"), []byte("salt"), 0, 32)
	require.Error(t, err)
}
