package asn1kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asn1kit/asn1kit/mder"
)

func TestKitBuildEncodeDecodePretty(t *testing.T) {
	k := New()

	elt, err := k.Build(`(sequence (int 1) (bool true))`, nil)
	require.NoError(t, err)

	encoded, err := k.Encode(elt)
	require.NoError(t, err)

	decoded, err := k.Decode(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(elt))

	text, err := k.Pretty(decoded)
	require.NoError(t, err)
	assert.Equal(t, "(sequence\n    (int 1)\n    (bool true)\n)", text)
}

func TestKitMatch(t *testing.T) {
	k := New()
	elt, err := k.Build(`(sequence (int 42))`, nil)
	require.NoError(t, err)

	params, err := k.Match(`(sequence (int %0))`, elt)
	require.NoError(t, err)
	require.Len(t, params, 1)

	v, err := params[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.Int64())
}

func TestKitWithNumericOID(t *testing.T) {
	k := New(WithNumericOID())
	elt, err := mder.Build(`(oid id-at-commonName)`, nil)
	require.NoError(t, err)

	text, err := k.Pretty(elt)
	require.NoError(t, err)
	assert.Equal(t, "(oid 2.5.4.3)", text)
}

func TestKitWithCompactIndent(t *testing.T) {
	k := New(WithIndent("null"))
	elt, err := k.Build(`(sequence (int 1) (bool true))`, nil)
	require.NoError(t, err)

	text, err := k.Pretty(elt)
	require.NoError(t, err)
	assert.Equal(t, "(sequence (int 1) (bool true))", text)
}

func TestKitRegistryDefaultsToGlobal(t *testing.T) {
	k := New()
	assert.NotNil(t, k.Registry())
}
