package mder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asn1kit/asn1kit/ber"
)

// resolvedTag is the (class, tag) pair a "[ tagclass? tagvalue ]" override
// resolves to.
type resolvedTag struct {
	class ber.TagClass
	tag   ber.Tag
}

// resolveTagOverride evaluates a parsed tagOverride against params. It
// returns isNull true when either field resolves through a %N parameter
// whose bound value is null, per spec.md §4.8's null-propagation rule —
// the caller must then treat the whole node as absent.
func resolveTagOverride(ov *tagOverride, params []Param) (resolvedTag, bool, error) {
	if ov == nil {
		return resolvedTag{}, false, nil
	}

	var tag ber.Tag
	viaSymbolic := false

	if ov.value.isParam {
		p, isNull, err := lookupRefParam(ov.value.param, params)
		if err != nil || isNull {
			return resolvedTag{}, isNull, err
		}
		switch p.Kind {
		case KindInt:
			tag = ber.Tag(p.Int.Int64())
		case KindString:
			if t, ok := tagValueKeyword(strings.ToLower(p.Str)); ok {
				tag, viaSymbolic = t, true
			} else if n, err := strconv.ParseUint(p.Str, 10, 32); err == nil {
				tag = ber.Tag(n)
			} else {
				return resolvedTag{}, false, fmt.Errorf("mder: %q is not a tag value", p.Str)
			}
		default:
			return resolvedTag{}, false, fmt.Errorf("mder: parameter is not a valid tag value: %+v", p)
		}
	} else {
		word := ov.value.literal
		if t, ok := tagValueKeyword(strings.ToLower(word)); ok {
			tag, viaSymbolic = t, true
		} else {
			n, err := strconv.ParseUint(word, 10, 32)
			if err != nil {
				return resolvedTag{}, false, fmt.Errorf("mder: %q is not a recognised tag value", word)
			}
			tag = ber.Tag(n)
		}
	}

	class := ber.ClassContextSpecific
	if viaSymbolic {
		class = ber.ClassUniversal
	}

	if ov.hasClass {
		var word string
		if ov.class.isParam {
			p, isNull, err := lookupRefParam(ov.class.param, params)
			if err != nil || isNull {
				return resolvedTag{}, isNull, err
			}
			s, err := p.AsString()
			if err != nil {
				return resolvedTag{}, false, err
			}
			word = s
		} else {
			word = ov.class.literal
		}
		c, ok := tagClassKeywords[strings.ToLower(word)]
		if !ok {
			return resolvedTag{}, false, fmt.Errorf("mder: %q is not a recognised tag class", word)
		}
		class = c
	}

	return resolvedTag{class: class, tag: tag}, false, nil
}

func lookupRefParam(idx int, params []Param) (Param, bool, error) {
	if idx < 0 || idx >= len(params) {
		return Param{}, false, fmt.Errorf("mder: parameter index %%%d out of range", idx)
	}
	p := params[idx]
	return p, p.IsNull(), nil
}
