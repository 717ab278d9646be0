package mder

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/asn1kit/asn1kit/asn1err"
	"github.com/asn1kit/asn1kit/ber"
	"github.com/asn1kit/asn1kit/oid"
)

// Build compiles and runs spec in build mode against params, producing an
// Element tree. A top-level result of nil means the whole spec resolved
// to "absent" (spec.md §4.8's null-propagation rule).
func Build(spec string, params []Param) (*ber.Element, error) {
	n, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	return BuildNode(n, params)
}

// BuildNode runs an already-parsed spec in build mode. Exposed so callers
// that build the same spec repeatedly with different parameters (a common
// MDer-core usage) can parse once.
func BuildNode(n *node, params []Param) (*ber.Element, error) {
	return buildObject(n, params)
}

func buildObject(n *node, params []Param) (*ber.Element, error) {
	info, ok := keywords[n.keyword]
	if !ok {
		return nil, asn1err.NewFormat("build", -1, fmt.Errorf("unknown keyword %q", n.keyword))
	}

	class, tag := ber.ClassUniversal, info.tag
	if n.tag != nil {
		rt, isNull, err := resolveTagOverride(n.tag, params)
		if err != nil {
			return nil, asn1err.NewFormat("build", -1, err)
		}
		if isNull {
			return nil, nil
		}
		class, tag = rt.class, rt.tag
	}

	switch info.cat {
	case catTag:
		if n.tag == nil || len(n.children) != 1 {
			return nil, asn1err.NewFormat("build", -1, fmt.Errorf("tag wrapper requires a leading [class value] and one sub-object"))
		}
		child, err := buildObject(n.children[0], params)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, nil
		}
		return ber.NewConstructed(class, tag, child), nil

	case catConstructed:
		var children []*ber.Element
		for _, c := range n.children {
			if c.marker == '*' || c.marker == '+' {
				expanded, err := buildRepeated(c, params)
				if err != nil {
					return nil, err
				}
				children = append(children, expanded...)
				continue
			}
			child, err := buildObject(c, params)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue
			}
			children = append(children, child)
		}
		if info.nz && len(children) == 0 {
			return nil, nil
		}
		return ber.NewConstructed(class, tag, children...).WithSetKind(setKindOf(n.keyword)), nil

	case catBool:
		v, isNull, err := boolLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		return ber.NewPrimitive(class, tag, ber.EncodeBoolean(v)), nil

	case catInt:
		v, isNull, err := intLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		return ber.NewPrimitive(class, tag, ber.EncodeInteger(v)), nil

	case catOID:
		v, isNull, err := oidLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		parsed, err := oid.Parse(v)
		if err != nil {
			return nil, asn1err.NewFormat("build", -1, err)
		}
		content, err := ber.EncodeOID(parsed)
		if err != nil {
			return nil, asn1err.NewCodec("build", -1, err)
		}
		return ber.NewPrimitive(class, tag, content), nil

	case catString:
		v, isNull, err := stringLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		content, err := ber.EncodeCharString(info.tag, v)
		if err != nil {
			return nil, asn1err.NewCodec("build", -1, err)
		}
		return ber.NewPrimitive(class, tag, content), nil

	case catTime:
		v, isNull, err := timeLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		var content []byte
		if info.tag == ber.TagUTCTime {
			content = ber.EncodeUTCTime(v)
		} else {
			content = ber.EncodeGeneralizedTime(v, "")
		}
		return ber.NewPrimitive(class, tag, content), nil

	case catBits:
		unused, isNull, err := intLeaf(n, params)
		if err != nil || isNull {
			return nil, err
		}
		payload, isNull, err := buildBlobLikePayload(n, params)
		if err != nil || isNull {
			return nil, err
		}
		bs := ber.BitString{Bytes: payload, UnusedBits: int(unused.Int64())}
		return ber.NewPrimitive(class, tag, ber.EncodeBitString(bs)), nil

	case catBlob:
		payload, isNull, err := buildBlobLikePayload(n, params)
		if err != nil || isNull {
			return nil, err
		}
		return ber.NewPrimitive(class, tag, payload), nil

	case catNull:
		return ber.NewPrimitive(class, tag, nil), nil
	}
	return nil, asn1err.NewFormat("build", -1, fmt.Errorf("unhandled keyword category for %q", n.keyword))
}

// buildRepeated expands a "*spec"/"+spec" child into zero or more built
// Elements. It implements the common single-iterable-parameter case of
// spec.md §4.8's lockstep rule: the first %N parameter reachable from spec
// that holds a KindList value drives the iteration count; every build
// pass rebinds that slot to the current list element. A "+spec" with zero
// iterations is a format error.
func buildRepeated(n *node, params []Param) ([]*ber.Element, error) {
	idx, ok := firstListParam(n, params)
	if !ok {
		if n.marker == '+' {
			return nil, asn1err.NewFormat("build", -1, fmt.Errorf("+spec has no iterable parameter"))
		}
		return nil, nil
	}
	items := params[idx].List
	if n.marker == '+' && len(items) == 0 {
		return nil, asn1err.NewFormat("build", -1, fmt.Errorf("+spec requires at least one repetition"))
	}
	var out []*ber.Element
	for _, item := range items {
		bound := make([]Param, len(params))
		copy(bound, params)
		bound[idx] = item
		child, err := buildObject(n, bound)
		if err != nil {
			return nil, err
		}
		if child != nil {
			out = append(out, child)
		}
	}
	return out, nil
}

// firstListParam finds a parameter index referenced anywhere under n whose
// bound value is a KindList.
func firstListParam(n *node, params []Param) (int, bool) {
	check := func(p *int) (int, bool) {
		if p == nil {
			return 0, false
		}
		if *p >= 0 && *p < len(params) && params[*p].IsList() {
			return *p, true
		}
		return 0, false
	}
	if idx, ok := check(n.leafParam); ok {
		return idx, true
	}
	if idx, ok := check(n.payloadParam); ok {
		return idx, true
	}
	if n.tag != nil {
		if n.tag.value.isParam {
			if idx, ok := check(&n.tag.value.param); ok {
				return idx, true
			}
		}
		if n.tag.hasClass && n.tag.class.isParam {
			if idx, ok := check(&n.tag.class.param); ok {
				return idx, true
			}
		}
	}
	for _, c := range n.children {
		if idx, ok := firstListParam(c, params); ok {
			return idx, true
		}
	}
	return 0, false
}

func buildBlobLikePayload(n *node, params []Param) ([]byte, bool, error) {
	switch {
	case len(n.children) == 1:
		child, err := buildObject(n.children[0], params)
		if err != nil {
			return nil, false, err
		}
		if child == nil {
			return nil, true, nil
		}
		b, err := ber.Encode(child)
		return b, false, err
	case n.payloadParam != nil:
		p := params[*n.payloadParam]
		if p.IsNull() {
			return nil, true, nil
		}
		b, err := p.AsBytes()
		return b, false, err
	case n.blobIsSubSpec:
		child, err := Build(n.leafLiteral2, params)
		if err != nil {
			return nil, false, err
		}
		if child == nil {
			return nil, true, nil
		}
		b, err := ber.Encode(child)
		return b, false, err
	case n.hasHex:
		return n.leafHex, false, nil
	default:
		return nil, false, nil
	}
}

func boolLeaf(n *node, params []Param) (bool, bool, error) {
	if n.leafParam != nil {
		p := params[*n.leafParam]
		if p.IsNull() {
			return false, true, nil
		}
		v, err := p.AsBool()
		return v, false, err
	}
	switch n.leafLiteral {
	case "true", "on", "yes", "1":
		return true, false, nil
	case "false", "off", "no", "0":
		return false, false, nil
	}
	return false, false, fmt.Errorf("mder: %q is not a bool literal", n.leafLiteral)
}

func intLeaf(n *node, params []Param) (*big.Int, bool, error) {
	if n.leafParam != nil {
		p := params[*n.leafParam]
		if p.IsNull() {
			return nil, true, nil
		}
		v, err := p.AsInt()
		return v, false, err
	}
	v, ok := new(big.Int).SetString(n.leafLiteral, 10)
	if !ok {
		return nil, false, fmt.Errorf("mder: %q is not a decimal integer", n.leafLiteral)
	}
	return v, false, nil
}

func oidLeaf(n *node, params []Param) (string, bool, error) {
	if n.leafParam != nil {
		p := params[*n.leafParam]
		if p.IsNull() {
			return "", true, nil
		}
		switch p.Kind {
		case KindString:
			s, err := oid.Default().ToOID(p.Str)
			return s, false, err
		case KindElement:
			return "", false, fmt.Errorf("mder: oid parameter cannot be an Element")
		}
		s, err := p.AsString()
		return s, false, err
	}
	s, err := oid.Default().ToOID(n.leafLiteral)
	return s, false, err
}

func stringLeaf(n *node, params []Param) (string, bool, error) {
	if n.leafParam != nil {
		p := params[*n.leafParam]
		if p.IsNull() {
			return "", true, nil
		}
		v, err := p.AsString()
		return v, false, err
	}
	return n.leafLiteral, false, nil
}

func timeLeaf(n *node, params []Param) (time.Time, bool, error) {
	if n.leafParam != nil {
		p := params[*n.leafParam]
		if p.IsNull() {
			return time.Time{}, true, nil
		}
		if p.Kind == KindTime {
			if p.Time.IsZero() {
				return time.Time{}, true, nil
			}
			return p.Time, false, nil
		}
		return time.Time{}, false, fmt.Errorf("mder: parameter is not a time: %+v", p)
	}
	v, _, err := ber.DecodeGeneralizedTime([]byte(normalizeTimeLiteral(n.leafLiteral)))
	if err != nil {
		return time.Time{}, false, err
	}
	return v, false, nil
}

// normalizeTimeLiteral accepts either a UTCTime or GeneralizedTime literal
// spelling for a time-typed keyword's literal form by left-padding a
// two-digit year to four digits using the same century rule as
// ber.DecodeUTCTime, so both can share one parse path.
func normalizeTimeLiteral(s string) string {
	if len(s) >= 2 && len(s) < 14 {
		if yy, err := strconv.Atoi(s[0:2]); err == nil {
			year := 1950 + yy
			if yy < 50 {
				year = 2000 + yy
			}
			return fmt.Sprintf("%04d", year) + s[2:]
		}
	}
	return s
}

// parseUintDecimal parses a non-negative decimal tag-value literal.
func parseUintDecimal(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 32)
}
