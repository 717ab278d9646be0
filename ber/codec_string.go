package ber

import (
	"fmt"

	"github.com/asn1kit/asn1kit/charset"
)

// DecodeCharString decodes the content octets of any of the eight
// character-string universal types into a Go string, per spec.md §4.2's
// type table. NumericString, PrintableString, IA5String, VisibleString,
// and CharacterString are validated as restricted ASCII subsets directly;
// TeletexString and GeneralString go through Latin-1, BMPString through
// UTF-16, and UniversalString through UTF-32 via package charset.
func DecodeCharString(tag Tag, content []byte) (string, error) {
	switch tag {
	case TagNumericString:
		return decodeRestricted(content, isNumericChar, "NumericString")
	case TagPrintableString:
		return decodeRestricted(content, isPrintableChar, "PrintableString")
	case TagIA5String, TagVisibleString, TagCharacterString:
		return decodeRestricted(content, isASCIIChar, UniversalTagName(tag))
	case TagUTF8String:
		return charset.DecodeUTF8String(content)
	case TagTeletexString, TagGeneralString:
		return charset.DecodeLatin1(content)
	case TagVideotexString, TagGraphicString:
		return charset.DecodeLatin1(content)
	case TagBMPString:
		return charset.DecodeBMPString(content)
	case TagUniversalString:
		return charset.DecodeUniversalString(content)
	default:
		return "", fmt.Errorf("ber: tag %d is not a character-string type", tag)
	}
}

// EncodeCharString is the inverse of DecodeCharString: it converts a Go
// string to the canonical content octets for the given character-string
// universal type.
func EncodeCharString(tag Tag, s string) ([]byte, error) {
	switch tag {
	case TagNumericString:
		return encodeRestricted(s, isNumericChar, "NumericString")
	case TagPrintableString:
		return encodeRestricted(s, isPrintableChar, "PrintableString")
	case TagIA5String, TagVisibleString, TagCharacterString:
		return encodeRestricted(s, isASCIIChar, UniversalTagName(tag))
	case TagUTF8String:
		return charset.EncodeUTF8String(s), nil
	case TagTeletexString, TagGeneralString, TagVideotexString, TagGraphicString:
		return charset.EncodeLatin1(s)
	case TagBMPString:
		return charset.EncodeBMPString(s)
	case TagUniversalString:
		return charset.EncodeUniversalString(s)
	default:
		return nil, fmt.Errorf("ber: tag %d is not a character-string type", tag)
	}
}

func isNumericChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == ' '
}

func isPrintableChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

func isASCIIChar(c byte) bool {
	return c < 0x80
}

func decodeRestricted(content []byte, allowed func(byte) bool, typeName string) (string, error) {
	for _, c := range content {
		if !allowed(c) {
			return "", fmt.Errorf("ber: %s contains invalid byte 0x%02x", typeName, c)
		}
	}
	return string(content), nil
}

func encodeRestricted(s string, allowed func(byte) bool, typeName string) ([]byte, error) {
	b := []byte(s)
	for _, c := range b {
		if !allowed(c) {
			return nil, fmt.Errorf("ber: %s contains invalid byte 0x%02x", typeName, c)
		}
	}
	return b, nil
}
