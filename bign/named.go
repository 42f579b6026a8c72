package bign

import (
	"math/big"

	"github.com/agievich/bee2-sub002/bee2err"
	"github.com/agievich/bee2-sub002/ec"
	"github.com/agievich/bee2-sub002/qr"
)

// Level identifies one of the four named security levels this suite
// publishes domain parameters for: the registration arc reserves leaves
// .3.0 through .3.3 for exactly these four (OID, below).
type Level int

const (
	Level96  Level = 96  // toy level: field small enough to brute-force its order
	Level128 Level = 128
	Level192 Level = 192
	Level256 Level = 256
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bign: invalid named-curve constant " + s)
	}
	return v
}

// levelLeaf maps a security level to its registered OID leaf under bignArc.
var levelLeaf = map[Level]int{Level96: 0, Level128: 1, Level192: 2, Level256: 3}

// ParamsTable maps each named level to its loader. ByLevel and ByOID share
// this one table instead of a growing if/switch chain.
var ParamsTable = map[Level]func() (*Params, error){
	Level96:  LoadToy,
	Level128: Load128,
	Level192: Load192,
	Level256: Load256,
}

// ByLevel loads the named parameter set registered for security level l.
func ByLevel(l Level) (*Params, error) {
	loader, ok := ParamsTable[l]
	if !ok {
		return nil, bee2err.New("bign.ByLevel", bee2err.BadParams)
	}
	return loader()
}

// ByOID loads the named parameter set registered under oid, matching the
// trailing leaf after bignArc against levelLeaf.
func ByOID(oid []int) (*Params, error) {
	if len(oid) != len(bignArc)+1 {
		return nil, bee2err.New("bign.ByOID", bee2err.BadOID)
	}
	for i, v := range bignArc {
		if oid[i] != v {
			return nil, bee2err.New("bign.ByOID", bee2err.BadOID)
		}
	}
	leaf := oid[len(oid)-1]
	for l, lf := range levelLeaf {
		if lf == leaf {
			return ByLevel(l)
		}
	}
	return nil, bee2err.New("bign.ByOID", bee2err.BadOID)
}

// LoadToy builds the level-96 "toy" parameter set registered under OID leaf
// .3.0. Its order is found by brute-force point counting over the
// intentionally tiny field; it is too small to be cryptographically
// meaningful and exists only so the .3.0 slot has a curve cheap enough to
// construct without external constants.
// Load128/Load192/Load256 are the cryptographically real-sized levels.
func LoadToy() (*Params, error) {
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
	if gx == nil {
		return nil, bee2err.New("bign.LoadToy", bee2err.BadParams)
	}
	curve := ec.New(f, a, b, gx, gy, order, 1, 16)
	return &Params{Name: "bign96-toy", OID: OID(levelLeaf[Level96]), Curve: curve}, nil
}

// Load128 builds the level-128 named parameter set registered under OID leaf
// .3.1 (the curve spec.md's own bign-sign KAT names). STB 34.101.45's own
// published p/a/b/yG/seed for this level were not present in the retrieval
// pack (original_source/ kept zero files), so this slot is wired with
// secp256k1's real, independently-published domain parameters instead: a
// 256-bit prime field with p = 3 (mod 4) (as qr.Field.Sqrt requires), prime
// group order, cofactor 1, and a safe (anti-MOV) group — every invariant
// bign.ValidateParams checks, just not STB's own numbers. See DESIGN.md.
func Load128() (*Params, error) {
	p := mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	f := qr.New(p, 32)
	a := f.FromInt(0)
	b := f.FromInt(7)
	gx := f.FromBig(mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"))
	gy := f.FromBig(mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"))
	q := mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	curve := ec.New(f, a, b, gx, gy, q, 1, 128)
	return &Params{Name: "bign128-secp256k1", OID: OID(levelLeaf[Level128]), Curve: curve}, nil
}

// Load192 builds the level-192 named parameter set registered under OID leaf
// .3.2, wired with the NIST P-384 domain parameters for the same reason and
// with the same disclosure as Load128: real, independently-published, and
// satisfying every ValidateParams invariant, but not STB's own constants.
func Load192() (*Params, error) {
	p := mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff")
	a := new(big.Int).Sub(p, big.NewInt(3))
	f := qr.New(p, 48)
	aElt := f.FromBig(a)
	b := f.FromBig(mustHex("b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef"))
	gx := f.FromBig(mustHex("aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7"))
	gy := f.FromBig(mustHex("3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f"))
	q := mustHex("ffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973")
	curve := ec.New(f, aElt, b, gx, gy, q, 1, 192)
	return &Params{Name: "bign192-p384", OID: OID(levelLeaf[Level192]), Curve: curve}, nil
}

// Load256 builds the level-256 named parameter set registered under OID leaf
// .3.3, wired with the NIST P-521 domain parameters: its 521-bit prime is
// the closest real, independently-published curve of this security class
// available without original_source/ constants (521 rather than the 512
// bits a literal "l*2" would suggest, disclosed here and in DESIGN.md), and
// a Mersenne prime 2^521-1 is always 3 (mod 4) so qr.Field.Sqrt still holds.
func Load256() (*Params, error) {
	p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 521), big.NewInt(1))
	a := new(big.Int).Sub(p, big.NewInt(3))
	f := qr.New(p, 66)
	aElt := f.FromBig(a)
	b := f.FromBig(mustHex("0051953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00"))
	gx := f.FromBig(mustHex("00c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66"))
	gy := f.FromBig(mustHex("011839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650"))
	q := mustHex("01fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409")
	curve := ec.New(f, aElt, b, gx, gy, q, 1, 256)
	return &Params{Name: "bign256-p521", OID: OID(levelLeaf[Level256]), Curve: curve}, nil
}
