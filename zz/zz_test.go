package zz

import (
	"errors"
	"math/big"
	"testing"

	"github.com/agievich/bee2-sub002/u"
	"github.com/stretchr/testify/require"
)

func TestAddSubNegMod(t *testing.T) {
	m := big.NewInt(17)
	a := big.NewInt(12)
	b := big.NewInt(9)

	require.Equal(t, big.NewInt(4), AddMod(a, b, m)) // 21 mod 17
	require.Equal(t, big.NewInt(3), SubMod(a, b, m))
	require.Equal(t, big.NewInt(5), NegMod(a, m)) // 17-12
	require.Equal(t, int64(0), AddMod(NegMod(a, m), a, m).Int64())
}

func TestMulSqrMod(t *testing.T) {
	m := big.NewInt(101)
	a := big.NewInt(37)
	b := big.NewInt(54)

	want := new(big.Int).Mod(new(big.Int).Mul(a, b), m)
	require.Equal(t, want, MulMod(a, b, m))
	require.Equal(t, MulMod(a, a, m), SqrMod(a, m))
}

func TestModNormalizesNegative(t *testing.T) {
	m := big.NewInt(7)
	got := Mod(big.NewInt(-3), m)
	require.Equal(t, big.NewInt(4), got)
	require.True(t, got.Sign() >= 0)
}

func TestGcd(t *testing.T) {
	require.Equal(t, big.NewInt(6), Gcd(big.NewInt(54), big.NewInt(24)))
	require.Equal(t, big.NewInt(1), Gcd(big.NewInt(17), big.NewInt(5)))
}

func TestInvMod(t *testing.T) {
	m := big.NewInt(101)
	a := big.NewInt(37)
	inv := InvMod(a, m)
	require.NotNil(t, inv)
	require.Equal(t, int64(1), MulMod(a, inv, m).Int64())

	require.Nil(t, InvMod(big.NewInt(10), big.NewInt(100)))
}

func TestJacobi(t *testing.T) {
	// 4 is a QR mod 7 (2*2), Jacobi == 1.
	require.Equal(t, 1, Jacobi(big.NewInt(4), big.NewInt(7)))
	// 3 is not a QR mod 7.
	require.Equal(t, -1, Jacobi(big.NewInt(3), big.NewInt(7)))
}

func TestPowMod(t *testing.T) {
	m := big.NewInt(101)
	a := big.NewInt(5)
	e := big.NewInt(13)
	require.Equal(t, new(big.Int).Exp(a, e, m), PowMod(a, e, m))
}

func TestPowModCTAgreesWithPowMod(t *testing.T) {
	m := big.NewInt(1000000007)
	a := big.NewInt(123456789)
	e := big.NewInt(987654321)

	want := PowMod(a, e, m)
	got := PowModCT(a, e, m, e.BitLen())
	require.Equal(t, want, got)
}

func TestPowModCTHandlesLeadingZeroBits(t *testing.T) {
	m := big.NewInt(101)
	a := big.NewInt(7)
	e := big.NewInt(5)

	want := PowMod(a, e, m)
	// bitLen wider than e's true bit length must not change the result.
	got := PowModCT(a, e, m, 32)
	require.Equal(t, want, got)
}

func TestRandNZModIsInRangeAndNonZero(t *testing.T) {
	m := big.NewInt(251)
	for i := 0; i < 50; i++ {
		v, err := RandNZMod(m, 2, u.CryptoRand)
		require.NoError(t, err)
		require.True(t, v.Sign() > 0)
		require.True(t, v.Cmp(m) < 0)
	}
}

func TestRandNZModRejectsOutOfRangeCandidates(t *testing.T) {
	m := big.NewInt(5)
	// First candidate is 0 (rejected), second is >= m (rejected), third is valid.
	seq := [][]byte{{0, 0}, {10, 0}, {3, 0}}
	call := 0
	rng := u.RngFunc(func(buf []byte) error {
		copy(buf, seq[call])
		call++
		return nil
	})
	v, err := RandNZMod(m, 2, rng)
	require.NoError(t, err)
	require.Equal(t, int64(3), v.Int64())
	require.Equal(t, 3, call)
}

func TestRandNZModPropagatesRngError(t *testing.T) {
	rng := u.RngFunc(func(buf []byte) error {
		return errors.New("rng failure")
	})
	_, err := RandNZMod(big.NewInt(5), 2, rng)
	require.Error(t, err)
}
