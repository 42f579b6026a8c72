package qr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testField(t *testing.T) *Field {
	t.Helper()
	p := big.NewInt(10007) // prime, 10007 mod 4 == 3
	require.True(t, p.ProbablyPrime(20))
	return New(p, 2)
}

func TestZeroOne(t *testing.T) {
	f := testField(t)
	require.True(t, f.Zero().IsZero())
	require.False(t, f.One().IsZero())
	require.True(t, f.One().Equal(f.FromInt(1)))
}

func TestFromBigReduces(t *testing.T) {
	f := testField(t)
	e := f.FromBig(big.NewInt(20014)) // 2*10007
	require.True(t, e.IsZero())
}

func TestOctetRoundTrip(t *testing.T) {
	f := testField(t)
	e := f.FromInt(1234)
	enc := e.ToOctets()
	require.Len(t, enc, f.No)

	dec, err := f.FromOctets(enc)
	require.NoError(t, err)
	require.True(t, e.Equal(dec))
}

func TestFromOctetsRejectsOutOfRange(t *testing.T) {
	f := testField(t)
	// 0xFFFF = 65535 > 10007.
	_, err := f.FromOctets([]byte{0xff, 0xff})
	require.Error(t, err)
}

func TestAddSubNeg(t *testing.T) {
	f := testField(t)
	a := f.FromInt(4000)
	b := f.FromInt(7000)

	sum := a.Add(b)
	require.True(t, sum.Equal(f.FromInt(4000+7000-10007)))

	diff := b.Sub(a)
	require.True(t, diff.Equal(f.FromInt(3000)))

	require.True(t, a.Add(a.Neg()).IsZero())
}

func TestMulSqr(t *testing.T) {
	f := testField(t)
	a := f.FromInt(123)
	b := f.FromInt(456)
	require.True(t, a.Mul(b).Equal(f.FromInt(123*456%10007)))
	require.True(t, a.Sqr().Equal(a.Mul(a)))
}

func TestInv(t *testing.T) {
	f := testField(t)
	a := f.FromInt(9999)
	inv, err := a.Inv()
	require.NoError(t, err)
	require.True(t, a.Mul(inv).Equal(f.One()))

	_, err = f.Zero().Inv()
	require.Error(t, err)
}

func TestPowerAgreesWithRepeatedMul(t *testing.T) {
	f := testField(t)
	a := f.FromInt(5)
	got := a.Power(big.NewInt(4))
	want := a.Mul(a).Mul(a).Mul(a)
	require.True(t, got.Equal(want))
}

func TestSqrtAndIsQR(t *testing.T) {
	f := testField(t)
	// Find a nonzero QR by brute force and confirm Sqrt inverts squaring.
	var qrElt *Elt
	for x := int64(1); x < 10007; x++ {
		e := f.FromInt(x)
		if e.IsQR() {
			qrElt = e
			break
		}
	}
	require.NotNil(t, qrElt)

	root := f.Sqrt(qrElt)
	require.True(t, root.Sqr().Equal(qrElt))
}

func TestIsQRRejectsNonResidue(t *testing.T) {
	f := testField(t)
	var nonResidue *Elt
	for x := int64(1); x < 10007; x++ {
		e := f.FromInt(x)
		if !e.IsQR() {
			nonResidue = e
			break
		}
	}
	require.NotNil(t, nonResidue)
	root := f.Sqrt(nonResidue)
	require.False(t, root.Sqr().Equal(nonResidue))
}

func TestEqual(t *testing.T) {
	f := testField(t)
	require.True(t, f.FromInt(42).Equal(f.FromInt(42)))
	require.False(t, f.FromInt(42).Equal(f.FromInt(43)))
}
