package ber

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/asn1kit/asn1kit/asn1err"
)

// SetKind records which SET discipline a constructed SET element should be
// encoded with. It is set by the text builder (package mder) when a node
// comes from the "set", "setof", or "setder" keywords (spec.md §4.8);
// Elements assembled directly with NewConstructed default to SetNone,
// which preserves insertion order (appropriate for SEQUENCE, and for the
// plain "set" keyword which spec.md deliberately leaves unsorted).
type SetKind int

const (
	// SetNone preserves child order as given.
	SetNone SetKind = iota
	// SetOf sorts children by the lexicographic order of their DER
	// encodings and merges exact duplicates, per spec.md §3/§8.
	SetOf
	// SetDER sorts children by (tag class, tag value) and fails
	// encoding if two children share a (class, tag) pair.
	SetDER
)

// WithSetKind returns a copy of e (shallow: children are shared) with its
// SET discipline set to kind. Only meaningful on a constructed Element;
// calling it on a primitive one is a no-op.
func (e *Element) WithSetKind(kind SetKind) *Element {
	if !e.Constructed {
		return e
	}
	clone := *e
	clone.setKind = kind
	return &clone
}

// Encoder produces strict DER bytes from an Element tree.
type Encoder struct {
	cfg config
}

// NewEncoder creates an Encoder. Options override the default depth cap
// and attach a debug logger.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// Encode serialises e to strict DER: minimal identifier and length
// octets, canonical primitive content, and SET/SET-OF ordering applied
// per e's SetKind. It never consults e's memoised source bytes — the
// result is always freshly, canonically derived, which is what makes
// encode(decode(B)) == B hold whenever B was already strict DER.
func (enc *Encoder) Encode(e *Element) ([]byte, error) {
	return enc.encodeOne(e, 0)
}

// Encode is a convenience wrapper around NewEncoder().Encode.
func Encode(e *Element) ([]byte, error) {
	return NewEncoder().Encode(e)
}

func (enc *Encoder) encodeOne(e *Element, depth int) ([]byte, error) {
	if depth > enc.cfg.maxDepth {
		return nil, asn1err.NewCodec("encode", -1, fmt.Errorf("maximum nesting depth %d exceeded", enc.cfg.maxDepth))
	}
	if !e.Constructed {
		content := duplicateValue(e)
		buf := EncodeIdentifier(nil, e.Identifier())
		buf = EncodeLength(buf, len(content))
		return append(buf, content...), nil
	}

	encodedChildren := make([][]byte, len(e.children))
	for i, c := range e.children {
		b, err := enc.encodeOne(c, depth+1)
		if err != nil {
			return nil, err
		}
		encodedChildren[i] = b
	}

	switch e.setKind {
	case SetOf:
		encodedChildren = sortAndMergeSetOf(encodedChildren)
	case SetDER:
		if err := checkSetDERDuplicates(e.children); err != nil {
			return nil, err
		}
		encodedChildren = sortSetDER(e.children, encodedChildren)
	}

	var content bytes.Buffer
	for _, b := range encodedChildren {
		content.Write(b)
	}
	buf := EncodeIdentifier(nil, e.Identifier())
	buf = EncodeLength(buf, content.Len())
	return append(buf, content.Bytes()...), nil
}

// sortAndMergeSetOf implements the SET OF discipline: children sorted by
// the lexicographic order of their own DER encodings, exact duplicates
// merged (spec.md §3, §8 "SET OF determinism").
func sortAndMergeSetOf(encoded [][]byte) [][]byte {
	sorted := make([][]byte, len(encoded))
	copy(sorted, encoded)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	out := sorted[:0:0]
	for i, b := range sorted {
		if i > 0 && bytes.Equal(b, sorted[i-1]) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// checkSetDERDuplicates fails if any two children of a setder share a
// (class, tag) pair, per spec.md §3/§4.4.
func checkSetDERDuplicates(children []*Element) error {
	type key struct {
		class TagClass
		tag   Tag
	}
	seen := make(map[key]bool, len(children))
	for _, c := range children {
		k := key{c.Class, c.Tag}
		if seen[k] {
			return asn1err.NewCodec("encode", -1, fmt.Errorf("setder: duplicate tag (%s %d)", c.Class, c.Tag))
		}
		seen[k] = true
	}
	return nil
}

// sortSetDER implements the SET (not SET OF) discipline: children sorted
// by (tag class, tag value) rather than by encoded bytes.
func sortSetDER(children []*Element, encoded [][]byte) [][]byte {
	idx := make([]int, len(children))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		a, b := children[idx[i]], children[idx[j]]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Tag < b.Tag
	})
	out := make([][]byte, len(encoded))
	for i, j := range idx {
		out[i] = encoded[j]
	}
	return out
}
