package ber

import "fmt"

// EncodeBoolean returns the canonical one-byte DER encoding of a BOOLEAN:
// 0xFF for true, 0x00 for false.
func EncodeBoolean(v bool) []byte {
	if v {
		return []byte{0xFF}
	}
	return []byte{0x00}
}

// DecodeBoolean decodes a BER BOOLEAN value. Per spec.md §4.2, any
// non-zero byte means true and a single zero byte means false; any other
// length is an error.
func DecodeBoolean(content []byte) (bool, error) {
	if len(content) != 1 {
		return false, fmt.Errorf("ber: BOOLEAN must be 1 byte, got %d", len(content))
	}
	return content[0] != 0, nil
}
