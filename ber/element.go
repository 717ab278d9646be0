package ber

// Element is an immutable ASN.1 node: an identifier plus either content
// octets (primitive) or an ordered list of children (constructed). See
// spec.md §3 for the invariants this type upholds.
//
// source is the memoised encoded span (identifier + length + content) when
// the Element came from Decode; it is nil for an Element built from
// scratch. The Decoder shares one buffer across every Element produced by
// a single call, so source is a sub-slice of that buffer rather than a
// per-node copy (spec.md §5, §9).
type Element struct {
	Class       TagClass
	Tag         Tag
	Constructed bool

	value    []byte
	children []*Element
	source   []byte
	setKind  SetKind
}

// NewPrimitive builds a primitive Element from scratch; it has no
// memoised source bytes and will always be re-encoded.
func NewPrimitive(class TagClass, tag Tag, value []byte) *Element {
	return &Element{Class: class, Tag: tag, Constructed: false, value: value}
}

// NewConstructed builds a constructed Element from scratch out of the
// given children, in order.
func NewConstructed(class TagClass, tag Tag, children ...*Element) *Element {
	cs := make([]*Element, len(children))
	copy(cs, children)
	return &Element{Class: class, Tag: tag, Constructed: true, children: cs}
}

// Identifier returns the tag/class/constructed triple as an Identifier
// value, for use with EncodeIdentifier or pattern matching.
func (e *Element) Identifier() Identifier {
	return Identifier{Class: e.Class, Constructed: e.Constructed, Tag: e.Tag}
}

// Value returns the content octets of a primitive Element, or nil for a
// constructed one.
func (e *Element) Value() []byte {
	if e.Constructed {
		return nil
	}
	return e.value
}

// Children returns the ordered child list of a constructed Element, or
// nil for a primitive one. The returned slice must not be mutated.
func (e *Element) Children() []*Element {
	if !e.Constructed {
		return nil
	}
	return e.children
}

// SourceBytes returns the memoised encoded span and true if e was produced
// by Decode, or (nil, false) if e was built from scratch.
func (e *Element) SourceBytes() ([]byte, bool) {
	if e.source == nil {
		return nil, false
	}
	return e.source, true
}

// IsUniversal reports whether e carries the given universal tag.
func (e *Element) IsUniversal(tag Tag) bool {
	return e.Class == ClassUniversal && e.Tag == tag
}

// Equal reports whether e and other have the same DER encoding. It ignores
// memoised source bytes, comparing only the public structure.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	a, errA := NewEncoder().Encode(e)
	b, errB := NewEncoder().Encode(other)
	if errA != nil || errB != nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Duplicate rebuilds a copy of e from scratch: every primitive value is
// re-parsed and re-encoded through its canonical codec instead of being
// copied verbatim, and no source bytes are retained. This is the "duplicate"
// operation spec.md §4.6/§9 requires before the pretty-printer trusts a
// tentative BIT STRING/OCTET STRING sub-object decode: re-encoding a
// Duplicate is only byte-identical to the original when the original was
// already canonical, which is exactly the property the safety check needs.
func (e *Element) Duplicate() *Element {
	if e.Constructed {
		children := make([]*Element, len(e.children))
		for i, c := range e.children {
			children[i] = c.Duplicate()
		}
		return NewConstructed(e.Class, e.Tag, children...)
	}
	return NewPrimitive(e.Class, e.Tag, duplicateValue(e))
}

// duplicateValue re-derives canonical content octets for the known
// universal primitive types, falling back to a verbatim copy for types
// with no canonicalisation rule (OCTET STRING, or any non-universal
// primitive whose content this package does not interpret).
func duplicateValue(e *Element) []byte {
	if e.Class != ClassUniversal {
		return cloneBytes(e.value)
	}
	switch e.Tag {
	case TagBoolean:
		if v, err := DecodeBoolean(e.value); err == nil {
			return EncodeBoolean(v)
		}
	case TagInteger, TagEnumerated:
		if v, err := DecodeInteger(e.value); err == nil {
			return EncodeInteger(v)
		}
	case TagBitString:
		if v, err := DecodeBitString(e.value); err == nil {
			return EncodeBitString(v)
		}
	case TagOID:
		if v, err := DecodeOID(e.value); err == nil {
			if b, err := EncodeOID(v); err == nil {
				return b
			}
		}
	case TagUTF8String, TagNumericString, TagPrintableString, TagIA5String,
		TagTeletexString, TagVideotexString, TagGraphicString, TagVisibleString,
		TagGeneralString, TagUniversalString, TagBMPString, TagCharacterString:
		if s, err := DecodeCharString(e.Tag, e.value); err == nil {
			if b, err := EncodeCharString(e.Tag, s); err == nil {
				return b
			}
		}
	case TagUTCTime:
		if t, err := DecodeUTCTime(e.value); err == nil {
			return EncodeUTCTime(t)
		}
	case TagGeneralizedTime:
		if t, frac, err := DecodeGeneralizedTime(e.value); err == nil {
			return EncodeGeneralizedTime(t, frac)
		}
	case TagNull:
		return nil
	}
	return cloneBytes(e.value)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
