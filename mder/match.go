package mder

import (
	"fmt"
	"math/big"
	"time"

	"github.com/asn1kit/asn1kit/asn1err"
	"github.com/asn1kit/asn1kit/ber"
	"github.com/asn1kit/asn1kit/oid"
)

// Match compiles spec and runs it in match mode against root, returning the
// parameter vector populated by %N captures. Parameters are sized lazily:
// the vector grows to accommodate the highest index referenced.
func Match(spec string, root *ber.Element) ([]Param, error) {
	n, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	m := &matcher{params: nil}
	if err := m.matchOne(n, root); err != nil {
		return m.params, err
	}
	return m.params, nil
}

type matcher struct {
	params    []Param
	accumulate bool
}

func (m *matcher) ensure(idx int) {
	for len(m.params) <= idx {
		m.params = append(m.params, Null())
	}
}

func (m *matcher) store(idx int, v Param) {
	m.ensure(idx)
	if m.accumulate {
		if !m.params[idx].IsList() {
			m.params[idx] = ListP()
		}
		m.params[idx].List = append(m.params[idx].List, v)
		return
	}
	m.params[idx] = v
}

// matchOne matches a non-repeated, non-optional top-level spec n against
// elt (which may be nil, meaning "no element present" — used when a
// constructed parent has run out of children).
func (m *matcher) matchOne(n *node, elt *ber.Element) error {
	ok, err := m.tryMatch(n, elt)
	if err != nil {
		return err
	}
	if !ok {
		return asn1err.NewMatch("match", "", fmt.Errorf("required sub-object did not match"))
	}
	return nil
}

// tryMatch attempts to match n against elt. It returns (false, nil) for a
// clean non-match of a "?"/"*"-marked spec (caller must not consume elt),
// and an error for a hard format/match failure.
func (m *matcher) tryMatch(n *node, elt *ber.Element) (bool, error) {
	info, ok := keywords[n.keyword]
	if !ok {
		return false, asn1err.NewFormat("match", -1, fmt.Errorf("unknown keyword %q", n.keyword))
	}

	if elt == nil {
		return m.handleAbsent(n)
	}

	class, tag := ber.ClassUniversal, info.tag
	if n.tag != nil {
		rt, isNull, err := resolveTagOverride(n.tag, m.params)
		if err != nil {
			return false, asn1err.NewFormat("match", -1, err)
		}
		if isNull {
			return m.handleAbsent(n)
		}
		class, tag = rt.class, rt.tag
	}

	if elt.Class != class || elt.Tag != tag {
		if n.marker == '?' || n.marker == '*' {
			return false, m.applyReplacement(n)
		}
		return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("tag mismatch: expected (%s %d), got (%s %d)", class, tag, elt.Class, elt.Tag))
	}

	switch info.cat {
	case catTag:
		if len(n.children) != 1 {
			return false, asn1err.NewFormat("match", -1, fmt.Errorf("tag wrapper requires one sub-object"))
		}
		if !elt.Constructed || len(elt.Children()) != 1 {
			return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("explicit tag wrapper must hold exactly one child"))
		}
		return true, m.matchOne(n.children[0], elt.Children()[0])

	case catConstructed:
		if !elt.Constructed {
			return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected a constructed element"))
		}
		children := elt.Children()
		if info.nz && len(children) == 0 {
			return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("-nz variant matched an empty constructed element"))
		}
		offset := 0
		for _, c := range n.children {
			consumed, err := m.matchChild(c, children, &offset)
			if err != nil {
				return false, err
			}
			_ = consumed
		}
		if offset != len(children) {
			return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("%d trailing child/children not matched by spec", len(children)-offset))
		}
		return true, nil

	case catBool:
		v, err := ber.DecodeBoolean(elt.Value())
		if err != nil {
			return false, asn1err.NewCodec("match", -1, err)
		}
		return true, m.bindOrCheckBool(n, v)

	case catInt:
		v, err := ber.DecodeInteger(elt.Value())
		if err != nil {
			return false, asn1err.NewCodec("match", -1, err)
		}
		return true, m.bindOrCheckInt(n, v)

	case catOID:
		v, err := ber.DecodeOID(elt.Value())
		if err != nil {
			return false, asn1err.NewCodec("match", -1, err)
		}
		return true, m.bindOrCheckOID(n, v.String())

	case catString:
		v, err := ber.DecodeCharString(info.tag, elt.Value())
		if err != nil {
			return false, asn1err.NewCodec("match", -1, err)
		}
		return true, m.bindOrCheckString(n, v)

	case catTime:
		return true, m.bindTimeFromElement(n, info, elt)

	case catBits:
		bs, err := ber.DecodeBitString(elt.Value())
		if err != nil {
			return false, asn1err.NewCodec("match", -1, err)
		}
		return true, m.bindBits(n, bs)

	case catBlob:
		return true, m.bindBlob(n, elt.Value())

	case catNull:
		if len(elt.Value()) != 0 {
			return false, asn1err.NewCodec("match", -1, fmt.Errorf("NULL must have zero-length content"))
		}
		return true, nil
	}
	return false, asn1err.NewFormat("match", -1, fmt.Errorf("unhandled keyword category for %q", n.keyword))
}

func (m *matcher) handleAbsent(n *node) (bool, error) {
	if n.marker == '?' || n.marker == '*' {
		return false, m.applyReplacement(n)
	}
	return false, asn1err.NewMatch("match", n.keyword, fmt.Errorf("required sub-object is missing"))
}

// matchChild matches one spec entry against the child list at *offset,
// advancing *offset by however many children it consumes (0 for a
// "?"-marked non-match, 1 for an ordinary match, N for a repetition).
func (m *matcher) matchChild(c *node, children []*ber.Element, offset *int) (int, error) {
	switch c.marker {
	case '*', '+':
		prevAccum := m.accumulate
		m.accumulate = true
		defer func() { m.accumulate = prevAccum }()
		count := 0
		for *offset < len(children) {
			ok, err := m.tryMatch(c, children[*offset])
			if err != nil {
				return count, err
			}
			if !ok {
				break
			}
			*offset++
			count++
		}
		if c.marker == '+' && count == 0 {
			return 0, asn1err.NewMatch("match", c.keyword, fmt.Errorf("+spec matched zero times"))
		}
		return count, nil
	case '?':
		var elt *ber.Element
		if *offset < len(children) {
			elt = children[*offset]
		}
		ok, err := m.tryMatch(c, elt)
		if err != nil {
			return 0, err
		}
		if ok {
			*offset++
			return 1, nil
		}
		return 0, nil
	default:
		var elt *ber.Element
		if *offset < len(children) {
			elt = children[*offset]
		}
		if err := m.matchOne(c, elt); err != nil {
			return 0, err
		}
		*offset++
		return 1, nil
	}
}

func (m *matcher) applyReplacement(n *node) error {
	for _, a := range n.replacement {
		if a.typ == "asn" {
			elt, err := BuildNode(a.nested, m.params)
			if err != nil {
				return err
			}
			m.store(a.param, ElementP(elt))
			continue
		}
		v, err := replacementValue(a)
		if err != nil {
			return asn1err.NewFormat("match", -1, err)
		}
		m.store(a.param, v)
	}
	return nil
}

func replacementValue(a replacementAssign) (Param, error) {
	switch a.typ {
	case "bool":
		switch a.literal {
		case "true", "on", "yes", "1":
			return BoolP(true), nil
		case "false", "off", "no", "0":
			return BoolP(false), nil
		}
		return Param{}, fmt.Errorf("mder: %q is not a bool literal", a.literal)
	case "int":
		v, ok := new(big.Int).SetString(a.literal, 10)
		if !ok {
			return Param{}, fmt.Errorf("mder: %q is not a decimal integer", a.literal)
		}
		return IntP(v), nil
	case "blob":
		return StringP(a.literal), nil
	case "oid":
		canonical, err := oidToOID(a.literal)
		if err != nil {
			return Param{}, err
		}
		return StringP(canonical), nil
	default:
		return StringP(a.literal), nil
	}
}

func (m *matcher) bindOrCheckBool(n *node, v bool) error {
	if n.leafParam != nil {
		m.store(*n.leafParam, BoolP(v))
		return nil
	}
	want, _, err := boolLeaf(n, nil)
	if err != nil {
		return asn1err.NewFormat("match", -1, err)
	}
	if want != v {
		return asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected bool %v, got %v", want, v))
	}
	return nil
}

func (m *matcher) bindOrCheckInt(n *node, v *big.Int) error {
	if n.leafParam != nil {
		m.store(*n.leafParam, IntP(v))
		return nil
	}
	want, ok := new(big.Int).SetString(n.leafLiteral, 10)
	if !ok {
		return asn1err.NewFormat("match", -1, fmt.Errorf("%q is not a decimal integer", n.leafLiteral))
	}
	if want.Cmp(v) != 0 {
		return asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected int %s, got %s", want, v))
	}
	return nil
}

func (m *matcher) bindOrCheckOID(n *node, canonical string) error {
	if n.leafParam != nil {
		m.store(*n.leafParam, StringP(canonical))
		return nil
	}
	want, err := oidToOID(n.leafLiteral)
	if err != nil {
		return asn1err.NewFormat("match", -1, err)
	}
	if want != canonical {
		return asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected oid %s, got %s", want, canonical))
	}
	return nil
}

func (m *matcher) bindOrCheckString(n *node, v string) error {
	if n.leafParam != nil {
		m.store(*n.leafParam, StringP(v))
		return nil
	}
	if n.leafLiteral != v {
		return asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected %q, got %q", n.leafLiteral, v))
	}
	return nil
}

func (m *matcher) bindTimeFromElement(n *node, info keywordInfo, elt *ber.Element) error {
	tm, err := decodeTimeElement(info, elt)
	if err != nil {
		return asn1err.NewCodec("match", -1, err)
	}
	if n.leafParam != nil {
		m.store(*n.leafParam, TimeP(tm))
		return nil
	}
	want, _, err := timeLeaf(n, nil)
	if err != nil {
		return asn1err.NewFormat("match", -1, err)
	}
	if !want.Equal(tm) {
		return asn1err.NewMatch("match", n.keyword, fmt.Errorf("expected time %s, got %s", want, tm))
	}
	return nil
}

func decodeTimeElement(info keywordInfo, elt *ber.Element) (time.Time, error) {
	if info.tag == ber.TagUTCTime {
		return ber.DecodeUTCTime(elt.Value())
	}
	v, _, err := ber.DecodeGeneralizedTime(elt.Value())
	return v, err
}

func (m *matcher) bindBits(n *node, bs ber.BitString) error {
	if n.leafParam != nil {
		m.store(*n.leafParam, IntP(big.NewInt(int64(bs.UnusedBits))))
	}
	return m.bindBlobPayload(n, bs.Bytes)
}

func (m *matcher) bindBlob(n *node, payload []byte) error {
	return m.bindBlobPayload(n, payload)
}

func (m *matcher) bindBlobPayload(n *node, payload []byte) error {
	switch {
	case len(n.children) == 1:
		child, err := ber.Decode(payload)
		if err != nil {
			return asn1err.NewCodec("match", -1, err)
		}
		return m.matchOne(n.children[0], child)
	case n.payloadParam != nil:
		m.store(*n.payloadParam, BytesP(payload))
		return nil
	case n.blobIsSubSpec:
		sub, err := Match(n.leafLiteral2, mustDecode(payload))
		if err != nil {
			return err
		}
		for i, p := range sub {
			m.ensure(i)
			m.params[i] = p
		}
		return nil
	case n.hasHex:
		if string(payload) != string(n.leafHex) {
			return asn1err.NewMatch("match", n.keyword, fmt.Errorf("blob content mismatch"))
		}
		return nil
	default:
		return nil
	}
}

func mustDecode(b []byte) *ber.Element {
	e, err := ber.Decode(b)
	if err != nil {
		return nil
	}
	return e
}

func oidToOID(literal string) (string, error) {
	return oid.Default().ToOID(literal)
}
