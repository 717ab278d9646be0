// Package charset implements the character-set conversions the string
// codecs in package ber need: Latin-1 for TeletexString/GeneralString,
// UTF-16 for BMPString, UTF-32 for UniversalString, and BOM/surrogate
// repair for UTF8String. The two real charset conversions lean on
// golang.org/x/text; UTF-32 has no ecosystem codec in the wild and is
// hand-rolled (see DESIGN.md).
package charset

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// DecodeLatin1 converts ISO-8859-1 bytes (used by convention for
// TeletexString and GeneralString) to a Go string.
func DecodeLatin1(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().String(string(b))
	if err != nil {
		return "", fmt.Errorf("latin1 decode: %w", err)
	}
	return s, nil
}

// EncodeLatin1 converts a Go string back to ISO-8859-1 bytes. It fails if s
// contains a code point outside the Latin-1 repertoire.
func EncodeLatin1(s string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("latin1 encode: %w", err)
	}
	return []byte(out), nil
}

// DecodeBMPString converts BMPString content octets to a Go string. Per
// X.690 convention the content is UTF-16BE; a leading BOM, if present,
// overrides the endianness to whatever it specifies.
func DecodeBMPString(b []byte) (string, error) {
	dec := xunicode.UTF16(xunicode.BigEndian, xunicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("bmpstring decode: %w", err)
	}
	return string(out), nil
}

// EncodeBMPString converts a Go string to canonical BMPString content:
// big-endian UTF-16, no BOM.
func EncodeBMPString(s string) ([]byte, error) {
	enc := xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("bmpstring encode: %w", err)
	}
	return out, nil
}

var (
	utf32BOMBE = [4]byte{0x00, 0x00, 0xFE, 0xFF}
	utf32BOMLE = [4]byte{0xFF, 0xFE, 0x00, 0x00}
)

// DecodeUniversalString converts UniversalString content octets (UTF-32)
// to a Go string. A leading BOM selects little-endian; otherwise the
// content is assumed big-endian, per spec.
func DecodeUniversalString(b []byte) (string, error) {
	if len(b)%4 != 0 {
		return "", fmt.Errorf("universalstring decode: length %d is not a multiple of 4", len(b))
	}
	little := false
	if len(b) >= 4 && [4]byte(b[:4]) == utf32BOMLE {
		little = true
		b = b[4:]
	} else if len(b) >= 4 && [4]byte(b[:4]) == utf32BOMBE {
		b = b[4:]
	}
	buf := make([]byte, 0, len(b))
	for i := 0; i+4 <= len(b); i += 4 {
		var cp uint32
		if little {
			cp = uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		} else {
			cp = uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		}
		if cp > 0x10FFFF {
			return "", fmt.Errorf("universalstring decode: code point U+%X out of range", cp)
		}
		buf = utf8.AppendRune(buf, rune(cp))
	}
	return string(buf), nil
}

// EncodeUniversalString converts a Go string to canonical UniversalString
// content: big-endian UTF-32, no BOM.
func EncodeUniversalString(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*4)
	for _, r := range s {
		if r > 0x10FFFF {
			return nil, fmt.Errorf("universalstring encode: code point U+%X out of range", r)
		}
		cp := uint32(r)
		out = append(out, byte(cp>>24), byte(cp>>16), byte(cp>>8), byte(cp))
	}
	return out, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeUTF8String strips a leading U+FEFF BOM if present and reassembles
// UTF-8-encoded surrogate halves (as produced by some non-conforming BER
// encoders) into their combined code point above the BMP.
func DecodeUTF8String(b []byte) (string, error) {
	if len(b) >= 3 && string(b[:3]) == string(utf8BOM) {
		b = b[3:]
	}
	// decode is utf8.DecodeRune, except that it also accepts the three-byte
	// encoding of a surrogate half (0xED 0xA0..0xBF 0x80..0xBF), which
	// utf8.DecodeRune rejects, so that the pairing below can combine them.
	decode := func(p []byte) (rune, int) {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size <= 1 && len(p) >= 3 && p[0] == 0xED && p[1]&0xE0 == 0xA0 && p[2]&0xC0 == 0x80 {
			return 0xD000 | rune(p[1]&0x3F)<<6 | rune(p[2]&0x3F), 3
		}
		return r, size
	}
	var out []byte
	for len(b) > 0 {
		r, size := decode(b)
		if r == utf8.RuneError && size <= 1 {
			return "", fmt.Errorf("utf8string decode: invalid byte 0x%02x", b[0])
		}
		if utf16.IsSurrogate(r) {
			if len(b) < size {
				return "", fmt.Errorf("utf8string decode: truncated surrogate")
			}
			r2, size2 := decode(b[size:])
			combined := utf16.DecodeRune(r, r2)
			if combined == utf8.RuneError {
				return "", fmt.Errorf("utf8string decode: unpaired surrogate U+%X", r)
			}
			out = utf8.AppendRune(out, combined)
			b = b[size+size2:]
			continue
		}
		out = utf8.AppendRune(out, r)
		b = b[size:]
	}
	return string(out), nil
}

// EncodeUTF8String converts a Go string to canonical UTF8String content:
// plain UTF-8, no BOM, no surrogate halves (Go strings cannot contain
// unpaired surrogates, so this is a direct conversion).
func EncodeUTF8String(s string) []byte {
	return []byte(s)
}
