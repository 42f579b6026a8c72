package der

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeLengthForms(t *testing.T) {
	require.Equal(t, []byte{0x05}, EncodeLength(5))
	require.Equal(t, []byte{0x81, 0x80}, EncodeLength(128))
	require.Equal(t, []byte{0x82, 0x01, 0x00}, EncodeLength(256))
}

func TestOIDRoundTrip(t *testing.T) {
	arcs := []int{1, 2, 112, 0, 2, 0, 34, 101, 31, 81}
	enc, err := EncodeOID(arcs)
	require.NoError(t, err)

	tlv, rest, err := ReadTLV(enc)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, byte(TagObjectID), tlv.Tag)

	got, err := DecodeOID(tlv.Value)
	require.NoError(t, err)
	require.Equal(t, arcs, got)
}

func TestIntegerSignPadding(t *testing.T) {
	enc := EncodeInteger([]byte{0x80})
	tlv, _, err := ReadTLV(enc)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x80}, tlv.Value)
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := EncodeSequence(EncodeInteger([]byte{0x01}), EncodeOctetString([]byte("hi")))
	tlv, rest, err := ReadTLV(seq)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, byte(TagSequence), tlv.Tag)

	inner1, innerRest, err := ReadTLV(tlv.Value)
	require.NoError(t, err)
	require.Equal(t, byte(TagInteger), inner1.Tag)
	inner2, innerRest2, err := ReadTLV(innerRest)
	require.NoError(t, err)
	require.Empty(t, innerRest2)
	require.Equal(t, []byte("hi"), inner2.Value)
}

func TestReadTLVTruncated(t *testing.T) {
	_, _, err := ReadTLV([]byte{0x02})
	require.Error(t, err)
}
