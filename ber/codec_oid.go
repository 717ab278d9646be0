package ber

import (
	"fmt"

	"github.com/asn1kit/asn1kit/oid"
)

// EncodeOID returns the DER content octets of an OBJECT IDENTIFIER: the
// first two arcs folded into a single value (40*x+y per spec.md §4.2),
// each subsequent arc base-128 encoded with the high bit set on every
// byte but the last.
func EncodeOID(v oid.OID) ([]byte, error) {
	arcs := v.Components()
	if len(arcs) < 2 {
		return nil, fmt.Errorf("ber: OID must have at least 2 arcs, got %d", len(arcs))
	}
	if arcs[0] > 2 {
		return nil, fmt.Errorf("ber: OID first arc %d out of range 0..2", arcs[0])
	}
	if arcs[0] < 2 && arcs[1] >= 40 {
		return nil, fmt.Errorf("ber: OID second arc %d out of range 0..39 for first arc %d", arcs[1], arcs[0])
	}

	var out []byte
	first := arcs[0]*40 + arcs[1]
	out = appendBase128(out, first)
	for _, arc := range arcs[2:] {
		out = appendBase128(out, arc)
	}
	return out, nil
}

// DecodeOID decodes BER OBJECT IDENTIFIER content octets back into an OID.
func DecodeOID(content []byte) (oid.OID, error) {
	if len(content) == 0 {
		return oid.OID{}, fmt.Errorf("ber: OID has zero-length content")
	}

	var arcs []uint64
	var acc uint64
	started := false
	for i, b := range content {
		acc = acc<<7 | uint64(b&0x7F)
		started = true
		if b&0x80 == 0 {
			arcs = append(arcs, acc)
			acc = 0
			started = false
		} else if i == len(content)-1 {
			return oid.OID{}, fmt.Errorf("ber: OID truncated, last byte has continuation bit set")
		}
	}
	if started {
		return oid.OID{}, fmt.Errorf("ber: OID malformed base-128 sequence")
	}
	if len(arcs) == 0 {
		return oid.OID{}, fmt.Errorf("ber: OID decoded to zero arcs")
	}

	first := arcs[0]
	var x, y uint64
	switch {
	case first < 40:
		x, y = 0, first
	case first < 80:
		x, y = 1, first-40
	default:
		x, y = 2, first-80
	}

	out := make([]uint64, 0, len(arcs)+1)
	out = append(out, x, y)
	out = append(out, arcs[1:]...)
	return oid.FromComponents(out), nil
}
