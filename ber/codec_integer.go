package ber

import (
	"fmt"
	"math/big"
)

// EncodeInteger returns the minimal signed big-endian two's-complement DER
// encoding of v, suitable for INTEGER and ENUMERATED. v must not be nil.
//
// The arbitrary-precision type is *math/big.Int directly rather than a
// wrapper interface — per spec.md's §1 "external collaborator" framing,
// the core only needs decimal parse, signed big-endian roundtrip,
// comparison, and sign, all of which math/big.Int already provides, and
// every from-scratch ASN.1 codec in the retrieval pack that needs
// arbitrary precision reaches for the same type (see DESIGN.md).
func EncodeInteger(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0x00}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	// Negative: two's complement of n = |v|-1 is NOT(n), with n itself
	// padded to keep its own top bit clear first. This mirrors the
	// positive-number padding rule and always yields the minimal byte
	// count (see DESIGN.md for the derivation).
	n := new(big.Int).Sub(new(big.Int).Neg(v), big.NewInt(1))
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	out := make([]byte, len(b))
	for i, by := range b {
		out[i] = ^by
	}
	return out
}

// DecodeInteger decodes a BER-encoded signed INTEGER or ENUMERATED. Per
// spec.md §6, redundant leading 0x00 or 0xFF bytes are tolerated on input
// even though EncodeInteger never produces them.
func DecodeInteger(content []byte) (*big.Int, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("ber: INTEGER has zero-length content")
	}
	negative := content[0]&0x80 != 0
	if !negative {
		return new(big.Int).SetBytes(content), nil
	}
	// Two's complement: invert and add one, or equivalently subtract
	// 2^(8*len) from the unsigned interpretation.
	unsigned := new(big.Int).SetBytes(content)
	full := new(big.Int).Lsh(big.NewInt(1), uint(len(content)*8))
	return new(big.Int).Sub(unsigned, full), nil
}
