// Package der implements the small subset of DER encoding bee2-sub002
// needs for domain-parameter identifiers, CV certificates, and wrapped
// keys: tagged length-prefixed TLVs, INTEGER, OCTET STRING, SEQUENCE, and
// OBJECT IDENTIFIER, all length-delimited with no indefinite forms.
package der

import "github.com/agievich/bee2-sub002/bee2err"

// Tag values used throughout this module; only what's needed.
const (
	TagInteger    = 0x02
	TagOctetStr   = 0x04
	TagObjectID   = 0x06
	TagSequence   = 0x30
)

// TLV is a single decoded tag-length-value triple with Value holding the
// raw content octets (not re-parsed for compound tags).
type TLV struct {
	Tag   byte
	Value []byte
}

// EncodeLength renders n as a DER length octet sequence: short form for
// n < 0x80, long form (0x80|numLenBytes, then big-endian length) otherwise.
func EncodeLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var tmp []byte
	for n > 0 {
		tmp = append([]byte{byte(n)}, tmp...)
		n >>= 8
	}
	return append([]byte{byte(0x80 | len(tmp))}, tmp...)
}

// Encode wraps tag and value into a full TLV encoding.
func Encode(tag byte, value []byte) []byte {
	out := append([]byte{tag}, EncodeLength(len(value))...)
	return append(out, value...)
}

// EncodeInteger encodes a nonnegative integer's big-endian magnitude as a
// DER INTEGER, inserting a leading 0x00 if the high bit would otherwise be
// mistaken for a sign bit.
func EncodeInteger(magnitude []byte) []byte {
	v := magnitude
	for len(v) > 1 && v[0] == 0 {
		v = v[1:]
	}
	if len(v) == 0 {
		v = []byte{0}
	}
	if v[0]&0x80 != 0 {
		v = append([]byte{0}, v...)
	}
	return Encode(TagInteger, v)
}

// EncodeOctetString encodes raw bytes as an OCTET STRING.
func EncodeOctetString(b []byte) []byte {
	return Encode(TagOctetStr, b)
}

// EncodeSequence wraps the concatenation of already-encoded children.
func EncodeSequence(children ...[]byte) []byte {
	var body []byte
	for _, c := range children {
		body = append(body, c...)
	}
	return Encode(TagSequence, body)
}

// EncodeOID encodes a dotted OID (e.g. []int{1, 2, 112, 0, 2, 0, 34, 101, 31, 81})
// as a DER OBJECT IDENTIFIER: the first two arcs are packed as 40*a+b, the
// rest as base-128 values with the high bit set on all but the last byte
// of each arc.
func EncodeOID(arcs []int) ([]byte, error) {
	if len(arcs) < 2 {
		return nil, bee2err.Newf("der.EncodeOID", bee2err.BadOID, "need at least two arcs")
	}
	if arcs[0] > 2 || (arcs[0] < 2 && arcs[1] >= 40) {
		return nil, bee2err.Newf("der.EncodeOID", bee2err.BadOID, "invalid first two arcs")
	}
	body := []byte{byte(arcs[0]*40 + arcs[1])}
	for _, arc := range arcs[2:] {
		body = append(body, encodeBase128(arc)...)
	}
	return Encode(TagObjectID, body), nil
}

func encodeBase128(v int) []byte {
	if v == 0 {
		return []byte{0}
	}
	var groups []byte
	for v > 0 {
		groups = append([]byte{byte(v & 0x7f)}, groups...)
		v >>= 7
	}
	for i := 0; i < len(groups)-1; i++ {
		groups[i] |= 0x80
	}
	return groups
}

// ReadTLV parses a single TLV off the front of b, returning it and the
// unconsumed remainder. Only definite-form lengths are accepted.
func ReadTLV(b []byte) (TLV, []byte, error) {
	if len(b) < 2 {
		return TLV{}, nil, bee2err.Newf("der.ReadTLV", bee2err.BadFormat, "truncated TLV header")
	}
	tag := b[0]
	n, rest, err := readLength(b[1:])
	if err != nil {
		return TLV{}, nil, err
	}
	if len(rest) < n {
		return TLV{}, nil, bee2err.Newf("der.ReadTLV", bee2err.BadFormat, "truncated TLV value")
	}
	return TLV{Tag: tag, Value: rest[:n]}, rest[n:], nil
}

func readLength(b []byte) (int, []byte, error) {
	if len(b) == 0 {
		return 0, nil, bee2err.Newf("der.readLength", bee2err.BadFormat, "missing length octet")
	}
	if b[0] < 0x80 {
		return int(b[0]), b[1:], nil
	}
	numBytes := int(b[0] &^ 0x80)
	if numBytes == 0 || numBytes > len(b)-1 {
		return 0, nil, bee2err.Newf("der.readLength", bee2err.BadFormat, "indefinite or truncated long-form length")
	}
	n := 0
	for i := 0; i < numBytes; i++ {
		n = n<<8 | int(b[1+i])
	}
	return n, b[1+numBytes:], nil
}

// DecodeOID parses an OBJECT IDENTIFIER's content octets back into arcs.
func DecodeOID(value []byte) ([]int, error) {
	if len(value) == 0 {
		return nil, bee2err.Newf("der.DecodeOID", bee2err.BadOID, "empty content")
	}
	arcs := []int{int(value[0]) / 40, int(value[0]) % 40}
	v := 0
	for _, b := range value[1:] {
		v = v<<7 | int(b&0x7f)
		if b&0x80 == 0 {
			arcs = append(arcs, v)
			v = 0
		}
	}
	return arcs, nil
}
