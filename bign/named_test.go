package bign

import (
	"testing"

	"github.com/agievich/bee2-sub002/u"
	"github.com/stretchr/testify/require"
)

func TestParamsTableCoversAllFourLevels(t *testing.T) {
	for _, l := range []Level{Level96, Level128, Level192, Level256} {
		p, err := ByLevel(l)
		require.NoError(t, err, "level %d", l)
		require.NoError(t, ValidateParams(p), "level %d", l)
	}
}

func TestByOIDMatchesByLevel(t *testing.T) {
	for l, leaf := range levelLeaf {
		want, err := ByLevel(l)
		require.NoError(t, err)
		got, err := ByOID(OID(leaf))
		require.NoError(t, err)
		require.Equal(t, want.Name, got.Name)
	}
}

func TestByOIDRejectsUnknownArc(t *testing.T) {
	_, err := ByOID([]int{1, 2, 3})
	require.Error(t, err)

	foreign := append(append([]int(nil), bignArc...), 99)
	_, err = ByOID(foreign)
	require.Error(t, err)
}

func TestLoad128SignVerifyRoundTrip(t *testing.T) {
	p, err := Load128()
	require.NoError(t, err)
	require.NoError(t, ValidateParams(p))

	kp, err := GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	require.NoError(t, ValidatePublicKey(p, kp.Q))

	msg := []byte("bign over a real-sized named curve, not only the toy field")
	sig, err := Sign(p, kp.D, msg, u.CryptoRand)
	require.NoError(t, err)
	require.NoError(t, Verify(p, kp.Q, msg, sig))

	require.Error(t, Verify(p, kp.Q, []byte("tampered"), sig))
}

func TestLoad128DHAgreement(t *testing.T) {
	p, err := Load128()
	require.NoError(t, err)

	a, err := GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	b, err := GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)

	ka, err := DH(p, a.D, b.Q)
	require.NoError(t, err)
	kb, err := DH(p, b.D, a.Q)
	require.NoError(t, err)
	require.Equal(t, ka, kb)
}

func TestLoad192And256Validate(t *testing.T) {
	for _, loader := range []func() (*Params, error){Load192, Load256} {
		p, err := loader()
		require.NoError(t, err)
		require.NoError(t, ValidateParams(p))

		kp, err := GenKeyPair(p, u.CryptoRand)
		require.NoError(t, err)
		require.NoError(t, ValidatePublicKey(p, kp.Q))
	}
}
