// Package zz implements the modular big-integer operations every other
// package in this module builds its arithmetic on. It is a thin, named
// wrapper around math/big (Exp/Mod/Mul/Add/Sub on *big.Int) rather than a
// hand-rolled word-limb bignum, since math/big already provides
// correctly-reduced modular exponentiation, GCD and ModInverse.
//
// PowModCT, for secret exponents, does not use *big.Int.Exp, whose running
// time depends on the bit pattern of the exponent; it runs a fixed number
// of iterations with one squaring and one multiplication each. It is not
// constant-time: the product kept at each step is picked by an ordinary
// branch on the exponent bit, and math/big arithmetic is itself
// variable-time.
package zz

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/u"
)

// AddMod returns (a+b) mod m.
func AddMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, m)
}

// SubMod returns (a-b) mod m, always in [0, m).
func SubMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, m)
}

// NegMod returns (-a) mod m.
func NegMod(a, m *big.Int) *big.Int {
	return SubMod(big.NewInt(0), a, m)
}

// MulMod returns (a*b) mod m.
func MulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// SqrMod returns a*a mod m.
func SqrMod(a, m *big.Int) *big.Int {
	return MulMod(a, a, m)
}

// Mod returns a mod m, normalized to [0, m).
func Mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

// Gcd returns gcd(a, b).
func Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// InvMod returns the inverse of a modulo m via the extended Euclidean
// algorithm, or nil if a has no inverse mod m.
func InvMod(a, m *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, m)
}

// Jacobi returns the Jacobi symbol (a/m), m odd and positive.
func Jacobi(a, m *big.Int) int {
	return big.Jacobi(a, m)
}

// PowMod returns a^e mod m. Only safe for public exponents/bases (e.g.
// verification); use PowModCT when e is secret.
func PowMod(a, e, m *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, m)
}

// PowModCT returns a^e mod m using one squaring and one multiplication per
// exponent bit regardless of the bit's value. bitLen bounds the number of
// bits processed; the caller supplies it (typically the modulus bit length)
// so that the iteration count does not reveal e's true bit length. Which of
// the two products is kept is decided by a branch on the bit.
func PowModCT(a, e, m *big.Int, bitLen int) *big.Int {
	one := big.NewInt(1)
	result := new(big.Int).Set(one)
	base := new(big.Int).Mod(a, m)
	for i := bitLen - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, m)
		tmp := new(big.Int).Mul(result, base)
		tmp.Mod(tmp, m)
		bit := e.Bit(i)
		// Select between result and tmp on the bit (a plain branch).
		result = ctSelect(bit, tmp, result)
	}
	return result
}

func ctSelect(bit uint, a, b *big.Int) *big.Int {
	if bit == 1 {
		return a
	}
	return b
}

// RandNZMod returns a uniformly random value in [1, m-1] via rejection
// sampling from rng. byteLen is the octet width of m (so the candidate is
// drawn from the same width as the target range, as every named curve's
// order is in this module).
func RandNZMod(m *big.Int, byteLen int, rng u.Rng) (*big.Int, error) {
	buf := make([]byte, byteLen)
	zero := big.NewInt(0)
	for {
		if err := rng.Read(buf); err != nil {
			return nil, bee2err.Newf("zz.RandNZMod", bee2err.BadRNG, "%v", err)
		}
		cand := new(big.Int).SetBytes(u.Reverse(buf)) // LE wire -> big.Int BE
		if cand.Cmp(zero) == 0 || cand.Cmp(m) >= 0 {
			continue
		}
		return cand, nil
	}
}
