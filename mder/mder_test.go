package mder

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asn1kit/asn1kit/ber"
)

func TestBuildBooleanTrue(t *testing.T) {
	elt, err := Build(`(bool true)`, nil)
	require.NoError(t, err)
	encoded, err := ber.Encode(elt)
	require.NoError(t, err)
	assert.Equal(t, "0101ff", hex.EncodeToString(encoded))
}

func TestBuildLargeInteger(t *testing.T) {
	elt, err := Build(`(int 18446744073709551615)`, nil)
	require.NoError(t, err)
	encoded, err := ber.Encode(elt)
	require.NoError(t, err)
	assert.Equal(t, "020900ffffffffffffffff", hex.EncodeToString(encoded))
}

func TestBuildOIDSymbolic(t *testing.T) {
	elt, err := Build(`(oid id-at-commonName)`, nil)
	require.NoError(t, err)
	encoded, err := ber.Encode(elt)
	require.NoError(t, err)
	assert.Equal(t, "0603550403", hex.EncodeToString(encoded))
}

func TestBuildSetOfSortsChildren(t *testing.T) {
	elt, err := Build(`(setof (blob 02) (blob 01))`, nil)
	require.NoError(t, err)
	encoded, err := ber.Encode(elt)
	require.NoError(t, err)
	// 04 01 01 must precede 04 01 02 after sorting.
	assert.Equal(t, "3106040101040102", hex.EncodeToString(encoded))
}

func TestBuildImplicitTagOverride(t *testing.T) {
	elt, err := Build(`([0] ia5 "foo")`, nil)
	require.NoError(t, err)
	assert.Equal(t, ber.ClassContextSpecific, elt.Class)
	assert.Equal(t, ber.Tag(0), elt.Tag)
	assert.False(t, elt.Constructed)
	encoded, err := ber.Encode(elt)
	require.NoError(t, err)
	assert.Equal(t, "8003666f6f", hex.EncodeToString(encoded))
}

func TestMatchWithOptionalAndReplacement(t *testing.T) {
	elt, err := Build(`(sequence (int 1))`, nil)
	require.NoError(t, err)

	params, err := Match(`(sequence (int %0) ?(bool %1):(%1 (bool false)))`, elt)
	require.NoError(t, err)
	require.Len(t, params, 2)

	v, err := params[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int64())

	b, err := params[1].AsBool()
	require.NoError(t, err)
	assert.False(t, b)
}

func TestBuildMatchDuality(t *testing.T) {
	spec := `(sequence (int %0) (bool %1) (oid %2))`
	params := []Param{IntP(big.NewInt(7)), BoolP(true), StringP("2.5.4.3")}
	elt, err := Build(spec, params)
	require.NoError(t, err)

	got, err := Match(spec, elt)
	require.NoError(t, err)
	require.Len(t, got, 3)

	v, err := got[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int64())

	b, err := got[1].AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := got[2].AsString()
	require.NoError(t, err)
	assert.Equal(t, "2.5.4.3", s)
}

func TestMatchTagMismatchFails(t *testing.T) {
	elt, err := Build(`(sequence (int 1))`, nil)
	require.NoError(t, err)
	_, err = Match(`(sequence (bool %0))`, elt)
	assert.Error(t, err)
}

func TestSetDERRejectsDuplicateTagsThroughBuild(t *testing.T) {
	elt, err := Build(`(setder (int 1) (int 2))`, nil)
	require.NoError(t, err)
	_, err = ber.Encode(elt)
	assert.Error(t, err)
}
