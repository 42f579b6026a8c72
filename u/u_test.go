package u

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEq(t *testing.T) {
	require.True(t, Eq([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.False(t, Eq([]byte{1, 2, 3}, []byte{1, 2, 4}))
	require.False(t, Eq([]byte{1, 2}, []byte{1, 2, 3}))
	require.True(t, Eq(nil, nil))
	require.True(t, Eq([]byte{}, []byte{}))
}

func TestZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	Zero(buf)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, buf)
}

func TestPutGetU32LE(t *testing.T) {
	buf := make([]byte, 4)
	PutU32LE(buf, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), GetU32LE(buf))
}

func TestPutGetU64LE(t *testing.T) {
	buf := make([]byte, 8)
	PutU64LE(buf, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), GetU64LE(buf))
}

func TestXor(t *testing.T) {
	a := []byte{0xff, 0x0f, 0x00}
	b := []byte{0x0f, 0xff, 0xff}
	dst := make([]byte, 3)
	Xor(dst, a, b)
	require.Equal(t, []byte{0xf0, 0xf0, 0xff}, dst)
}

func TestXorAliasesDst(t *testing.T) {
	a := []byte{0xff, 0x00, 0xaa}
	b := []byte{0x0f, 0xff, 0xaa}
	Xor(a, a, b)
	require.Equal(t, []byte{0xf0, 0xff, 0x00}, a)
}

func TestReverse(t *testing.T) {
	require.Equal(t, []byte{3, 2, 1}, Reverse([]byte{1, 2, 3}))
	require.Equal(t, []byte{}, Reverse([]byte{}))
	require.Equal(t, []byte{1}, Reverse([]byte{1}))
}

func TestPad(t *testing.T) {
	require.Equal(t, []byte{1, 2, 0, 0}, Pad([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 3}, Pad([]byte{1, 2, 3}, 3))
	require.Equal(t, []byte{1, 2, 3, 4}, Pad([]byte{1, 2, 3, 4}, 2))
}

func TestCryptoRand(t *testing.T) {
	buf := make([]byte, 32)
	require.NoError(t, CryptoRand.Read(buf))

	zero := make([]byte, 32)
	require.NotEqual(t, zero, buf)

	buf2 := make([]byte, 32)
	require.NoError(t, CryptoRand.Read(buf2))
	require.NotEqual(t, buf, buf2)
}

func TestRngFunc(t *testing.T) {
	calls := 0
	var f RngFunc = func(buf []byte) error {
		calls++
		for i := range buf {
			buf[i] = byte(i)
		}
		return nil
	}
	buf := make([]byte, 4)
	require.NoError(t, f.Read(buf))
	require.Equal(t, []byte{0, 1, 2, 3}, buf)
	require.Equal(t, 1, calls)
}
