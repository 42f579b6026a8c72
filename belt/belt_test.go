package belt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(n int) []byte {
	k := make([]byte, n)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestBlockRoundTrip(t *testing.T) {
	for _, kl := range []int{16, 24, 32} {
		c, err := NewCipher(testKey(kl))
		require.NoError(t, err)
		src := []byte("0123456789ABCDEF")
		enc := make([]byte, BlockSize)
		dec := make([]byte, BlockSize)
		require.NoError(t, c.EncryptBlock(enc, src))
		require.NoError(t, c.DecryptBlock(dec, enc))
		require.Equal(t, src, dec)
	}
}

func TestECBRoundTrip(t *testing.T) {
	key := testKey(32)
	for _, n := range []int{16, 17, 31, 32, 33} {
		x := bytes.Repeat([]byte{0x5A}, n)
		ct, err := ECBEncrypt(key, x)
		require.NoError(t, err)
		pt, err := ECBDecrypt(key, ct)
		require.NoError(t, err)
		require.Equal(t, x, pt)
	}
}

func TestCBCRoundTrip(t *testing.T) {
	key := testKey(32)
	iv := testKey(16)
	for _, n := range []int{16, 20, 32, 47} {
		x := bytes.Repeat([]byte{0xA5}, n)
		ct, err := CBCEncrypt(key, iv, x)
		require.NoError(t, err)
		pt, err := CBCDecrypt(key, iv, ct)
		require.NoError(t, err)
		require.Equal(t, x, pt)
	}
}

func TestCFBRoundTrip(t *testing.T) {
	key := testKey(32)
	iv := testKey(16)
	for _, n := range []int{0, 1, 15, 16, 17, 100} {
		x := bytes.Repeat([]byte{0x11}, n)
		ct, err := CFBEncrypt(key, iv, x)
		require.NoError(t, err)
		pt, err := CFBDecrypt(key, iv, ct)
		require.NoError(t, err)
		require.Equal(t, x, pt)
	}
}

func TestCTRRoundTrip(t *testing.T) {
	key := testKey(32)
	iv := testKey(16)
	for _, n := range []int{0, 1, 16, 100} {
		x := bytes.Repeat([]byte{0x77}, n)
		ct, err := CTREncrypt(key, iv, x)
		require.NoError(t, err)
		pt, err := CTRDecrypt(key, iv, ct)
		require.NoError(t, err)
		require.Equal(t, x, pt)
	}
}

func TestMACVerify(t *testing.T) {
	key := testKey(32)
	x := []byte("authenticate me, please")
	tag, err := MAC(key, x)
	require.NoError(t, err)
	require.NoError(t, MACVerify(key, x, tag))

	bad := append([]byte(nil), x...)
	bad[0] ^= 1
	require.Error(t, MACVerify(key, bad, tag))
}

func TestDWPSealOpenRoundTrip(t *testing.T) {
	key := testKey(32)
	iv := testKey(16)
	aad := []byte("header metadata")
	pt := []byte("the quick brown fox jumps over the lazy dog")

	sealed, err := Seal(key, iv, aad, pt)
	require.NoError(t, err)
	got, err := Open(key, iv, aad, sealed)
	require.NoError(t, err)
	require.Equal(t, pt, got)

	tampered := append([]byte(nil), sealed...)
	tampered[0] ^= 1
	_, err = Open(key, iv, aad, tampered)
	require.Error(t, err)
}

func TestKWPRoundTrip(t *testing.T) {
	key := testKey(32)
	header := testKey(16)
	x := []byte("0123456789abcdef0123456789abcdef")

	wrapped, err := KWPWrap(key, header, x)
	require.NoError(t, err)
	got, err := KWPUnwrap(key, header, wrapped)
	require.NoError(t, err)
	require.Equal(t, x, got)

	_, err = KWPUnwrap(key, testKey(16)[:0], wrapped)
	require.Error(t, err) // a zero-length header pads to sixteen zero bytes, which differs from header
	badHeader := append([]byte(nil), header...)
	badHeader[0] ^= 1
	_, err = KWPUnwrap(key, badHeader, wrapped)
	require.Error(t, err)
}

func TestHashChunkingInvariant(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 100)
	whole := SumBytes(data)

	h := NewHash()
	h.Write(data[:30])
	h.Write(data[30:70])
	h.Write(data[70:])
	var chunked [32]byte
	copy(chunked[:], h.Sum(nil))

	require.Equal(t, whole, chunked)
}

func TestHMACDeterministic(t *testing.T) {
	key := testKey(32)
	a := HMACSum(key, []byte("message"))
	b := HMACSum(key, []byte("message"))
	require.Equal(t, a, b)
}

func TestKRPLengths(t *testing.T) {
	base := testKey(32)
	var level [12]byte
	for i := range level {
		level[i] = 0xFF
	}
	var header [16]byte
	for _, n := range []int{16, 24, 32} {
		k, err := KRP(base, level, header, n)
		require.NoError(t, err)
		require.Len(t, k, n)
	}
}
