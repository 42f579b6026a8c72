package bake

import (
	"math/big"
	"testing"

	"github.com/agievich/bee2-sub002/bign"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/qr"
	"github.com/agievich/bee2-sub002/u"
	"github.com/stretchr/testify/require"
)

func toyParams(t *testing.T) *bign.Params {
	t.Helper()
	p := big.NewInt(10007)
	f := qr.New(p, 2)
	a := f.FromInt(-3)
	b := f.FromInt(7)

	order := big.NewInt(1)
	var gx, gy *qr.Elt
	for x := int64(0); x < 10007; x++ {
		xe := f.FromInt(x)
		rhs := xe.Sqr().Mul(xe).Add(a.Mul(xe)).Add(b)
		switch {
		case rhs.IsZero():
			order.Add(order, big.NewInt(1))
		case rhs.IsQR():
			order.Add(order, big.NewInt(2))
			if gx == nil {
				y := f.Sqrt(rhs)
				if y.Sqr().Equal(rhs) {
					gx, gy = xe, y
				}
			}
		}
	}
	require.NotNil(t, gx)
	curve := ec.New(f, a, b, gx, gy, order, 1, 16)
	require.True(t, curve.HasOrder(curve.G(), order))
	return &bign.Params{Name: "toy-16", OID: bign.OID(1), Curve: curve}
}

func toySettings() Settings {
	return Settings{
		Kca:    []byte("0123456789abcdef0123456789abcdef"),
		Kcb:    []byte("fedcba9876543210fedcba9876543210"),
		HelloA: []byte("alice"),
		HelloB: []byte("bob"),
		Rng:    u.CryptoRand,
	}
}

func TestMQVRoundTrip(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()

	a, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	b, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)

	initiator, err := StartMQV(p, settings, Initiator, a.D, a.Q, b.Q)
	require.NoError(t, err)
	responder, err := StartMQV(p, settings, Responder, b.D, b.Q, a.Q)
	require.NoError(t, err)

	msgA, err := initiator.StepA()
	require.NoError(t, err)
	msgB, err := responder.StepB(msgA)
	require.NoError(t, err)
	require.NoError(t, initiator.StepC(msgB))

	require.NotEmpty(t, initiator.Key())
	require.Equal(t, initiator.Key(), responder.Key())
}

func TestSTSRoundTrip(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()

	a, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	b, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)

	initiator, err := StartSTS(p, settings, Initiator, a.D, a.Q, b.Q)
	require.NoError(t, err)
	responder, err := StartSTS(p, settings, Responder, b.D, b.Q, a.Q)
	require.NoError(t, err)

	msgA, err := initiator.StepA()
	require.NoError(t, err)
	msgB, sigB, err := responder.StepB(msgA)
	require.NoError(t, err)
	sigA, err := initiator.StepC(msgB, sigB)
	require.NoError(t, err)
	require.NoError(t, responder.StepD(sigA))

	require.Equal(t, initiator.Key(), responder.Key())
}

func TestSTSRejectsForgedSignature(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()

	a, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	b, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	mallory, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)

	initiator, err := StartSTS(p, settings, Initiator, a.D, a.Q, b.Q)
	require.NoError(t, err)
	responder, err := StartSTS(p, settings, Responder, b.D, b.Q, a.Q)
	require.NoError(t, err)

	msgA, err := initiator.StepA()
	require.NoError(t, err)
	msgB, _, err := responder.StepB(msgA)
	require.NoError(t, err)

	forgedSig, err := bign.Sign(p, mallory.D, append(append([]byte{}, msgA...), msgB...), u.CryptoRand)
	require.NoError(t, err)
	_, err = initiator.StepC(msgB, encodeSig(forgedSig))
	require.Error(t, err)
}

func TestPACERoundTrip(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()
	pwd := []byte("correct horse battery staple")
	salt := []byte("shared-salt")

	initiator, err := StartPACE(p, settings, Initiator, pwd, salt)
	require.NoError(t, err)
	responder, err := StartPACE(p, settings, Responder, pwd, salt)
	require.NoError(t, err)

	msgA, err := initiator.StepA()
	require.NoError(t, err)
	msgB, confirmB, err := responder.StepB(msgA)
	require.NoError(t, err)
	confirmA, err := initiator.StepC(msgB, confirmB)
	require.NoError(t, err)
	require.NoError(t, responder.StepV(confirmA))

	require.Equal(t, initiator.Key(), responder.Key())
}

func TestPACEWrongPasswordFails(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()

	initiator, err := StartPACE(p, settings, Initiator, []byte("password1"), []byte("salt"))
	require.NoError(t, err)
	responder, err := StartPACE(p, settings, Responder, []byte("password2"), []byte("salt"))
	require.NoError(t, err)

	msgA, err := initiator.StepA()
	require.NoError(t, err)
	msgB, confirmB, err := responder.StepB(msgA)
	require.NoError(t, err)
	_, err = initiator.StepC(msgB, confirmB)
	require.Error(t, err)
}

func TestCancelPoisonsSession(t *testing.T) {
	p := toyParams(t)
	settings := toySettings()
	a, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)
	b, err := bign.GenKeyPair(p, u.CryptoRand)
	require.NoError(t, err)

	initiator, err := StartMQV(p, settings, Initiator, a.D, a.Q, b.Q)
	require.NoError(t, err)
	initiator.Cancel()
	_, err = initiator.StepA()
	require.Error(t, err)
}
