package dder

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/asn1kit/asn1kit/ber"
	"github.com/asn1kit/asn1kit/oid"
)

// Pretty renders e as a parenthesised text spec, per spec.md §4.6. The
// result is always a single complete object: "(keyword value...)" for a
// leaf, or "(keyword child...)" for a constructed element.
func Pretty(e *ber.Element, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	var b strings.Builder
	if err := printNode(&b, e, 0, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// head returns the text-form keyword or bracketed tag for e, and known=false
// if e carries no universal meaning this package can render as a named
// keyword.
func head(e *ber.Element) (text string, known bool) {
	if e.Class != ber.ClassUniversal {
		return tagBracket(e.Class, e.Tag), false
	}
	if kw, ok := universalKeyword(e.Tag); ok {
		return kw, true
	}
	return fmt.Sprintf("[universal %d]", e.Tag), false
}

// tagBracket renders a non-universal (or unknown-universal) identifier as
// spec.md §4.6 describes: "[application N]", "[N]" for context (the
// implied class, so no keyword is written), or "[private N]".
func tagBracket(class ber.TagClass, tag ber.Tag) string {
	switch class {
	case ber.ClassApplication:
		return fmt.Sprintf("[application %d]", tag)
	case ber.ClassContextSpecific:
		return fmt.Sprintf("[%d]", tag)
	case ber.ClassPrivate:
		return fmt.Sprintf("[private %d]", tag)
	default:
		return fmt.Sprintf("[universal %d]", tag)
	}
}

// universalKeyword returns the object keyword for a known universal tag.
// Every constructed element keeps the validity check spec.md §4.6 requires
// (fail rather than print if the primitive/constructed bit disagrees with
// the type), performed by printNode before this is consulted.
func universalKeyword(tag ber.Tag) (string, bool) {
	switch tag {
	case ber.TagBoolean:
		return "bool", true
	case ber.TagInteger:
		return "int", true
	case ber.TagEnumerated:
		return "enum", true
	case ber.TagBitString:
		return "bits", true
	case ber.TagOctetString:
		return "blob", true
	case ber.TagOID:
		return "oid", true
	case ber.TagNull:
		return "null", true
	case ber.TagSequence:
		return "sequence", true
	case ber.TagSet:
		return "set", true
	case ber.TagNumericString:
		return "numeric", true
	case ber.TagPrintableString:
		return "printable", true
	case ber.TagIA5String:
		return "ia5", true
	case ber.TagTeletexString:
		return "teletex", true
	case ber.TagVideotexString:
		return "videotex", true
	case ber.TagGraphicString:
		return "graphic", true
	case ber.TagVisibleString:
		return "visible", true
	case ber.TagGeneralString:
		return "general", true
	case ber.TagUniversalString:
		return "universal", true
	case ber.TagCharacterString:
		return "character", true
	case ber.TagUTF8String:
		return "utf8", true
	case ber.TagBMPString:
		return "bmp", true
	case ber.TagUTCTime:
		return "utc", true
	case ber.TagGeneralizedTime:
		return "gentime", true
	default:
		return "", false
	}
}

// wantsConstructed reports whether the known universal keyword for tag is
// inherently a constructed type (SEQUENCE/SET). Every other universal type
// is primitive.
func wantsConstructed(tag ber.Tag) bool {
	return tag == ber.TagSequence || tag == ber.TagSet
}

func printNode(b *strings.Builder, e *ber.Element, depth int, cfg config) error {
	text, known := head(e)

	if known && wantsConstructed(e.Tag) != e.Constructed {
		return fmt.Errorf("dder: tag %s has the wrong primitive/constructed bit for its type", text)
	}

	b.WriteByte('(')
	b.WriteString(text)

	if e.Constructed {
		if err := printChildren(b, e, depth, cfg); err != nil {
			return err
		}
	} else {
		val, err := printValue(e, depth, cfg, known)
		if err != nil {
			return err
		}
		if val != "" {
			b.WriteByte(' ')
			b.WriteString(val)
		}
	}
	b.WriteByte(')')
	return nil
}

func printChildren(b *strings.Builder, e *ber.Element, depth int, cfg config) error {
	children := e.Children()
	// The encoder applies a SET's DER child order (and SET OF's merging of
	// duplicates), so a SET prints its children as its encoding holds them.
	if e.IsUniversal(ber.TagSet) {
		if der, err := ber.Encode(e); err == nil {
			if d, err := ber.Decode(der); err == nil {
				children = d.Children()
			}
		}
	}
	if cfg.compact() {
		for _, c := range children {
			b.WriteByte(' ')
			if err := printNode(b, c, depth+1, cfg); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range children {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(cfg.indent, depth+1))
		if err := printNode(b, c, depth+1, cfg); err != nil {
			return err
		}
	}
	if len(children) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(cfg.indent, depth))
	}
	return nil
}

// printValue renders the value portion of a primitive leaf, per type.
func printValue(e *ber.Element, depth int, cfg config, known bool) (string, error) {
	if !known {
		return printGenericPayload(e, depth, cfg)
	}
	switch e.Tag {
	case ber.TagBoolean:
		v, err := ber.DecodeBoolean(e.Value())
		if err != nil {
			return "", err
		}
		if v {
			return "true", nil
		}
		return "false", nil
	case ber.TagInteger, ber.TagEnumerated:
		v, err := ber.DecodeInteger(e.Value())
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case ber.TagNull:
		return "", nil
	case ber.TagOID:
		v, err := ber.DecodeOID(e.Value())
		if err != nil {
			return "", err
		}
		return formatOID(v, cfg), nil
	case ber.TagBitString:
		return printBitString(e, depth, cfg)
	case ber.TagOctetString:
		return printOctetString(e, depth, cfg)
	case ber.TagUTCTime, ber.TagGeneralizedTime:
		return printTime(e, cfg)
	default:
		return printCharString(e)
	}
}

func formatOID(v oid.OID, cfg config) string {
	numeric := v.String()
	if cfg.numericOID {
		return numeric
	}
	return oid.Default().ToName(numeric)
}

func printCharString(e *ber.Element) (string, error) {
	s, err := ber.DecodeCharString(e.Tag, e.Value())
	if err != nil {
		return "", err
	}
	return quote(s), nil
}

func printTime(e *ber.Element, cfg config) (string, error) {
	raw := string(e.Value())
	var comment string
	if e.Tag == ber.TagUTCTime {
		t, err := ber.DecodeUTCTime(e.Value())
		if err != nil {
			return "", err
		}
		comment = t.UTC().Format("2006-01-02 15:04:05") + " UTC"
	} else {
		t, frac, err := ber.DecodeGeneralizedTime(e.Value())
		if err != nil {
			return "", err
		}
		layout := "2006-01-02 15:04:05"
		s := t.UTC().Format(layout)
		if frac != "" {
			s += "." + frac
		}
		comment = s + " UTC"
	}
	out := raw
	if !cfg.compact() {
		out += " {" + comment + "}"
	}
	return out, nil
}

// printBitString renders a BIT STRING value: "N blob" where N is the
// unused-bit count, followed either by a tentative nested object (only
// when N==0 and the payload safely re-decodes, spec.md §4.6) or a hex
// dump with an optional ASCII-peek comment.
func printBitString(e *ber.Element, depth int, cfg config) (string, error) {
	bs, err := ber.DecodeBitString(e.Value())
	if err != nil {
		return "", err
	}
	payload := fmt.Sprintf("%d ", bs.UnusedBits) + hexOrNested(bs.Bytes, bs.UnusedBits == 0, depth, cfg)
	return payload, nil
}

func printOctetString(e *ber.Element, depth int, cfg config) (string, error) {
	return hexOrNested(e.Value(), true, depth, cfg), nil
}

// hexOrNested implements the tentative sub-object decode spec.md §4.6
// describes: try to decode payload as a DER Element, and only trust the
// nested rendering if re-encoding a Duplicate of it reproduces payload
// byte-for-byte (the signal that payload was already canonical DER).
func hexOrNested(payload []byte, eligible bool, depth int, cfg config) string {
	if eligible {
		if nested, ok := tryNested(payload); ok {
			inner, err := renderNested(nested, depth, cfg)
			if err == nil {
				return inner
			}
		}
	}
	return hexDump(payload, cfg)
}

func tryNested(payload []byte) (*ber.Element, bool) {
	elt, err := ber.Decode(payload)
	if err != nil {
		return nil, false
	}
	dup := elt.Duplicate()
	reenc, err := ber.Encode(dup)
	if err != nil || !bytes.Equal(reenc, payload) {
		return nil, false
	}
	return dup, true
}

func renderNested(e *ber.Element, depth int, cfg config) (string, error) {
	var b strings.Builder
	if err := printNode(&b, e, depth, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

func hexDump(payload []byte, cfg config) string {
	s := hex.EncodeToString(payload)
	if cfg.compact() || !isASCIIPeekable(payload) {
		return s
	}
	return s + ` {"` + escapeASCIIPeek(payload) + `"}`
}

// isASCIIPeekable reports whether every byte of payload is a printable
// ASCII character or one of tab/LF/CR, per spec.md §4.6's ASCII-peek rule.
func isASCIIPeekable(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	for _, c := range payload {
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

func escapeASCIIPeek(payload []byte) string {
	var b strings.Builder
	for _, c := range payload {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// printGenericPayload renders a non-universal or unrecognised-universal
// primitive's raw content octets, attempting the same tentative nested
// decode as OCTET STRING since implicit tagging commonly hides a
// structured value behind a context tag.
func printGenericPayload(e *ber.Element, depth int, cfg config) (string, error) {
	return hexOrNested(e.Value(), true, depth, cfg), nil
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
