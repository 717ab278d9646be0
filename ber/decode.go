package ber

import (
	"fmt"

	"github.com/asn1kit/asn1kit/asn1err"
)

// Decoder consumes a BER byte buffer and produces an Element tree. It
// tolerates the non-strict variants spec.md §6 lists: non-minimal
// tag/length encodings and indefinite-length constructed values. The
// buffer passed to Decode is retained by reference in every Element's
// source bytes, so the caller must not mutate it afterwards.
type Decoder struct {
	cfg config
}

// NewDecoder creates a Decoder. Options override the default depth cap
// (256) and attach a debug logger.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newConfig(opts)}
}

// Decode parses exactly one BER-encoded element from data and fails if any
// bytes remain afterwards.
func (d *Decoder) Decode(data []byte) (*Element, error) {
	elt, rest, err := d.decodeOne(data, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, asn1err.NewCodec("decode", len(data)-len(rest), fmt.Errorf("%d trailing byte(s) after top-level element", len(rest)))
	}
	return elt, nil
}

// Decode is a convenience wrapper around NewDecoder().Decode with default
// options.
func Decode(data []byte) (*Element, error) {
	return NewDecoder().Decode(data)
}

func (d *Decoder) decodeOne(data []byte, depth int) (*Element, []byte, error) {
	if depth > d.cfg.maxDepth {
		return nil, nil, asn1err.NewCodec("decode", -1, fmt.Errorf("maximum nesting depth %d exceeded", d.cfg.maxDepth))
	}
	start := data

	id, rest, err := DecodeIdentifier(data)
	if err != nil {
		return nil, nil, asn1err.NewCodec("decode", -1, err)
	}
	// spec.md §4.6: a SEQUENCE or SET tag with the constructed bit clear
	// is malformed, not merely unusual — reject it outright rather than
	// only failing later at pretty-print time (§9's "reject, matching
	// the stricter behaviour" resolution of the legacy-vs-new decoder
	// discrepancy).
	if id.Class == ClassUniversal && (id.Tag == TagSequence || id.Tag == TagSet) && !id.Constructed {
		return nil, nil, asn1err.NewCodec("decode", -1, fmt.Errorf("SEQUENCE/SET tag %d must be constructed", id.Tag))
	}

	length, rest, err := DecodeLength(rest)
	if err != nil {
		return nil, nil, asn1err.NewCodec("decode", -1, err)
	}

	if length == lengthIndefinite {
		if !id.Constructed {
			return nil, nil, asn1err.NewCodec("decode", -1, fmt.Errorf("indefinite length on a primitive element"))
		}
		d.cfg.logger.Debug("ber: decoding indefinite-length %s", id)
		var children []*Element
		cur := rest
		for {
			if len(cur) < 2 {
				return nil, nil, asn1err.NewCodec("decode", -1, fmt.Errorf("truncated input before end-of-contents"))
			}
			if cur[0] == 0x00 && cur[1] == 0x00 {
				cur = cur[2:]
				break
			}
			child, next, err := d.decodeOne(cur, depth+1)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, child)
			cur = next
		}
		elt := &Element{
			Class: id.Class, Tag: id.Tag, Constructed: true,
			children: children,
			source:   start[:len(start)-len(cur)],
		}
		return elt, cur, nil
	}

	if length > len(rest) {
		return nil, nil, asn1err.NewCodec("decode", -1, fmt.Errorf("declared length %d exceeds remaining %d byte(s)", length, len(rest)))
	}
	content := rest[:length]
	remainder := rest[length:]

	if id.Constructed {
		var children []*Element
		cur := content
		for len(cur) > 0 {
			child, next, err := d.decodeOne(cur, depth+1)
			if err != nil {
				return nil, nil, err
			}
			children = append(children, child)
			cur = next
		}
		elt := &Element{
			Class: id.Class, Tag: id.Tag, Constructed: true,
			children: children,
			source:   start[:len(start)-len(remainder)],
		}
		return elt, remainder, nil
	}

	elt := &Element{
		Class: id.Class, Tag: id.Tag, Constructed: false,
		value:  content,
		source: start[:len(start)-len(remainder)],
	}
	return elt, remainder, nil
}
