package ec

import (
	"math/big"
	"testing"

	"github.com/agievich/bee2-sub002/qr"
	"github.com/stretchr/testify/require"
)

// smallCurve builds a toy curve over a small prime where the group order can
// be found by brute-force point counting, so tests don't depend on any
// externally sourced domain parameters.
func smallCurve(t *testing.T) (*Curve, *big.Int) {
	t.Helper()
	p := big.NewInt(10007) // prime, 10007 mod 4 == 3
	require.True(t, p.ProbablyPrime(20))
	require.Equal(t, int64(3), new(big.Int).Mod(p, big.NewInt(4)).Int64())

	f := qr.New(p, 2)
	a := f.FromInt(-3)
	b := f.FromInt(7)

	// Count points by brute force: for each x, y^2 = x^3+ax+b has 0, 1 or 2
	// roots depending on whether the RHS is a QR, zero, or a non-residue.
	order := big.NewInt(1) // point at infinity
	for x := int64(0); x < 10007; x++ {
		xe := f.FromInt(x)
		rhs := xe.Sqr().Mul(xe).Add(a.Mul(xe)).Add(b)
		if rhs.IsZero() {
			order.Add(order, big.NewInt(1))
		} else if rhs.IsQR() {
			order.Add(order, big.NewInt(2))
		}
	}

	// Find a generator: any point not equal to infinity works for testing
	// purposes as long as we use its own order consistently, so search for
	// the lowest x with two roots and use scalar mult to confirm q*G = O.
	var gx, gy *qr.Elt
	for x := int64(0); x < 10007; x++ {
		xe := f.FromInt(x)
		rhs := xe.Sqr().Mul(xe).Add(a.Mul(xe)).Add(b)
		if rhs.IsQR() && !rhs.IsZero() {
			gy = f.Sqrt(rhs)
			if gy.Sqr().Equal(rhs) {
				gx = xe
				break
			}
		}
	}
	require.NotNil(t, gx)

	c := New(f, a, b, gx, gy, order, 1, 16)
	g := c.G()
	require.True(t, c.HasOrder(g, order))
	return c, order
}

func TestDoubleAddConsistency(t *testing.T) {
	c, order := smallCurve(t)
	g := c.G()
	two := c.Double(g)
	twoViaAdd := c.Add(g, g)
	gx1, gy1, ok1 := two.Affine()
	gx2, gy2, ok2 := twoViaAdd.Affine()
	require.True(t, ok1)
	require.True(t, ok2)
	require.True(t, gx1.Equal(gx2))
	require.True(t, gy1.Equal(gy2))

	require.True(t, c.Mul(order, g).IsInfinity())
}

func TestScalarMulCTMatchesMul(t *testing.T) {
	c, order := smallCurve(t)
	g := c.G()
	k := big.NewInt(37)
	a := c.Mul(k, g)
	b := c.MulCT(k, g, order.BitLen()+8)
	ax, ay, aok := a.Affine()
	bx, by, bok := b.Affine()
	require.Equal(t, aok, bok)
	require.True(t, ax.Equal(bx))
	require.True(t, ay.Equal(by))
}

func TestAddMulShamir(t *testing.T) {
	c, _ := smallCurve(t)
	g := c.G()
	h := c.Mul(big.NewInt(5), g)
	s1 := big.NewInt(3)
	s2 := big.NewInt(11)
	want := c.Add(c.Mul(s1, g), c.Mul(s2, h))
	got := c.AddMul(ScalarPoint{S: s1, P: g}, ScalarPoint{S: s2, P: h})
	wx, wy, _ := want.Affine()
	gx, gy, _ := got.Affine()
	require.True(t, wx.Equal(gx))
	require.True(t, wy.Equal(gy))
}

func TestPointOctetsRoundTrip(t *testing.T) {
	c, _ := smallCurve(t)
	g := c.G()
	enc, err := g.ToOctets()
	require.NoError(t, err)
	dec, err := c.FromOctets(enc)
	require.NoError(t, err)
	gx, gy, _ := g.Affine()
	dx, dy, _ := dec.Affine()
	require.True(t, gx.Equal(dx))
	require.True(t, gy.Equal(dy))
}

func TestIsSafeGroupOnToyCurve(t *testing.T) {
	c, _ := smallCurve(t)
	// A 16-bit toy curve is far too small to actually be MOV-resistant; this
	// only checks the helper runs and returns a bool without panicking.
	_ = c.IsSafeGroup(10)
}
