package ber

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeDecodeLength(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantHex string
	}{
		{"short form zero", 0, "00"},
		{"short form max", 127, "7f"},
		{"long form one byte", 128, "8180"},
		{"long form 0xff", 255, "81ff"},
		{"long form two bytes", 256, "820100"},
		{"long form three bytes", 0x10000, "83010000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeLength(nil, tt.n)
			assert.Equal(t, tt.wantHex, hex.EncodeToString(got))

			length, rest, err := DecodeLength(hexBytes(t, tt.wantHex))
			require.NoError(t, err)
			assert.Equal(t, tt.n, length)
			assert.Empty(t, rest)
		})
	}
}

func TestDecodeLengthIndefinite(t *testing.T) {
	length, rest, err := DecodeLength([]byte{0x80, 0xAA})
	require.NoError(t, err)
	assert.Equal(t, lengthIndefinite, length)
	assert.Equal(t, []byte{0xAA}, rest)
}

func TestDecodeLengthErrors(t *testing.T) {
	_, _, err := DecodeLength(nil)
	assert.Error(t, err)

	_, _, err = DecodeLength([]byte{0x82, 0x01})
	assert.Error(t, err)
}

func TestEncodeDecodeIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		id      Identifier
		wantHex string
	}{
		{"universal primitive low tag", Identifier{ClassUniversal, false, TagInteger}, "02"},
		{"universal constructed sequence", Identifier{ClassUniversal, true, TagSequence}, "30"},
		{"context constructed tag 0", Identifier{ClassContextSpecific, true, 0}, "a0"},
		{"application primitive tag 5", Identifier{ClassApplication, false, 5}, "45"},
		{"high tag number 31", Identifier{ClassContextSpecific, false, 31}, "9f1f"},
		{"high tag number 128", Identifier{ClassContextSpecific, false, 128}, "9f8100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeIdentifier(nil, tt.id)
			assert.Equal(t, tt.wantHex, hex.EncodeToString(got))

			id, rest, err := DecodeIdentifier(hexBytes(t, tt.wantHex))
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Empty(t, rest)
		})
	}
}

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		name    string
		v       int64
		wantHex string
	}{
		{"zero", 0, "00"},
		{"small positive", 1, "01"},
		{"needs padding", 128, "0080"},
		{"255", 255, "00ff"},
		{"minus one", -1, "ff"},
		{"minus 128 exact", -128, "80"},
		{"minus 129 needs two bytes", -129, "ff7f"},
		{"large positive", 0x7FFF, "7fff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeInteger(big.NewInt(tt.v))
			assert.Equal(t, tt.wantHex, hex.EncodeToString(got))

			back, err := DecodeInteger(hexBytes(t, tt.wantHex))
			require.NoError(t, err)
			assert.Equal(t, tt.v, back.Int64())
		})
	}
}

func TestDecodeIntegerToleratesRedundantPadding(t *testing.T) {
	v, err := DecodeInteger(hexBytes(t, "0000ff"))
	require.NoError(t, err)
	assert.Equal(t, int64(0xff), v.Int64())

	v, err = DecodeInteger(hexBytes(t, "ffff80"))
	require.NoError(t, err)
	assert.Equal(t, int64(-128), v.Int64())
}

func TestBooleanRoundTrip(t *testing.T) {
	assert.Equal(t, []byte{0xFF}, EncodeBoolean(true))
	assert.Equal(t, []byte{0x00}, EncodeBoolean(false))

	v, err := DecodeBoolean([]byte{0xFF})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = DecodeBoolean([]byte{0x01})
	require.NoError(t, err)
	assert.True(t, v, "any non-zero byte means true")

	_, err = DecodeBoolean([]byte{0x00, 0x00})
	assert.Error(t, err)
}

func TestElementEncodeDecodeRoundTrip(t *testing.T) {
	inner := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(42)))
	seq := NewConstructed(ClassUniversal, TagSequence, inner)

	encoded, err := Encode(seq)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.Constructed)
	assert.True(t, decoded.IsUniversal(TagSequence))
	require.Len(t, decoded.Children(), 1)

	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestSetOfSortsAndMerges(t *testing.T) {
	a := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(2)))
	b := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(1)))
	c := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(1)))
	set := NewConstructed(ClassUniversal, TagSet, a, b, c).WithSetKind(SetOf)

	encoded, err := Encode(set)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Children(), 2, "duplicate DER encodings must be merged")

	first, err := Encode(decoded.Children()[0])
	require.NoError(t, err)
	second, err := Encode(decoded.Children()[1])
	require.NoError(t, err)
	assert.Less(t, string(first), string(second))
}

func TestSetDERRejectsDuplicateTags(t *testing.T) {
	a := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(1)))
	b := NewPrimitive(ClassUniversal, TagInteger, EncodeInteger(big.NewInt(2)))
	set := NewConstructed(ClassUniversal, TagSet, a, b).WithSetKind(SetDER)

	_, err := Encode(set)
	assert.Error(t, err)
}

func TestDecodeRejectsPrimitiveSequence(t *testing.T) {
	_, err := Decode(hexBytes(t, "1000"))
	assert.Error(t, err)
}

func TestDecodeRespectsMaxDepth(t *testing.T) {
	dec := NewDecoder(WithMaxDepth(1))
	nested := NewConstructed(ClassUniversal, TagSequence,
		NewConstructed(ClassUniversal, TagSequence,
			NewPrimitive(ClassUniversal, TagNull, nil)))
	encoded, err := Encode(nested)
	require.NoError(t, err)

	_, err = dec.Decode(encoded)
	assert.Error(t, err)
}

func TestOIDRoundTrip(t *testing.T) {
	v, err := DecodeOID(hexBytes(t, "2a864886f70d01010b"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.113549.1.1.11", v.String())

	encoded, err := EncodeOID(v)
	require.NoError(t, err)
	assert.Equal(t, "2a864886f70d01010b", hex.EncodeToString(encoded))
}

func TestBitStringEncodeClearsIgnoredBits(t *testing.T) {
	v := BitString{Bytes: []byte{0xFF}, UnusedBits: 4}
	got := EncodeBitString(v)
	assert.Equal(t, []byte{0x04, 0xF0}, got)
}

func TestCharStringRoundTrip(t *testing.T) {
	b, err := EncodeCharString(TagPrintableString, "Go 1.24")
	require.NoError(t, err)
	s, err := DecodeCharString(TagPrintableString, b)
	require.NoError(t, err)
	assert.Equal(t, "Go 1.24", s)

	_, err = EncodeCharString(TagPrintableString, "no@signs")
	assert.Error(t, err)
}

func TestUTCTimeRoundTrip(t *testing.T) {
	v, err := DecodeUTCTime([]byte("250730120000Z"))
	require.NoError(t, err)
	assert.Equal(t, 2025, v.Year())

	got := EncodeUTCTime(v)
	assert.Equal(t, "250730120000Z", string(got))
}

func TestGeneralizedTimeRoundTrip(t *testing.T) {
	v, frac, err := DecodeGeneralizedTime([]byte("20250730120000.5Z"))
	require.NoError(t, err)
	assert.Equal(t, "5", frac)

	got := EncodeGeneralizedTime(v, frac)
	assert.Equal(t, "20250730120000.5Z", string(got))
}
