// Package oid implements canonical OBJECT IDENTIFIER parsing and a
// bidirectional name registry, per spec.md §4.5.
package oid

import (
	"fmt"
	"strconv"
	"strings"
)

// OID is a parsed, validated sequence of arcs.
type OID []uint64

// Parse validates and parses a numeric dotted OID string such as
// "2.5.4.3". It enforces the rules in spec.md §4.5: only digits and dots,
// no leading or trailing dot, no adjacent dots, at least one dot, first
// arc in {0,1,2}, second arc < 40 when the first arc is 0 or 1.
func Parse(s string) (OID, error) {
	if s == "" {
		return nil, fmt.Errorf("oid: empty string")
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return nil, fmt.Errorf("oid: %q has a leading or trailing dot", s)
	}
	if !strings.Contains(s, ".") {
		return nil, fmt.Errorf("oid: %q has no dot", s)
	}
	parts := strings.Split(s, ".")
	out := make(OID, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("oid: %q has adjacent dots", s)
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("oid: %q contains non-digit %q", s, c)
			}
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("oid: %q: %w", s, err)
		}
		out = append(out, v)
	}
	if out[0] > 2 {
		return nil, fmt.Errorf("oid: %q: first arc must be 0, 1, or 2", s)
	}
	if out[0] < 2 && len(out) > 1 && out[1] >= 40 {
		return nil, fmt.Errorf("oid: %q: second arc must be < 40 when first arc is 0 or 1", s)
	}
	return out, nil
}

// String renders the canonical decimal-dotted form: no leading zeros per
// component, except that a single "0" component is kept as "0".
func (o OID) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two OIDs have identical arcs.
func (o OID) Equal(other OID) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// Components returns the arc values in order. The returned slice is o
// itself; callers must not mutate it.
func (o OID) Components() []uint64 {
	return o
}

// FromComponents builds an OID directly from already-validated arc values,
// bypassing the textual parsing and validation Parse performs. Used by
// codecs that derive arcs from a trusted wire or arithmetic source.
func FromComponents(arcs []uint64) OID {
	out := make(OID, len(arcs))
	copy(out, arcs)
	return out
}
