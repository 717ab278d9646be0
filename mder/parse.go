package mder

import (
	"fmt"
	"strings"

	"github.com/asn1kit/asn1kit/asn1err"
	"github.com/asn1kit/asn1kit/text"
)

// Parse compiles a text spec (spec.md §4.7/§4.8 grammar) into a reusable
// AST that both Build and Match walk. Parsing itself never consults a
// parameter vector; parameter references are only resolved during build
// or match.
func Parse(src string) (*node, error) {
	p := &parser{lx: text.New([]byte(src))}
	n, err := p.parseObject()
	if err != nil {
		return nil, asn1err.NewFormat("parse", -1, err)
	}
	tok, err := p.lx.Next()
	if err != nil {
		return nil, asn1err.NewFormat("parse", -1, err)
	}
	if tok.Kind != text.KindEOF {
		return nil, asn1err.NewFormat("parse", tok.Pos, fmt.Errorf("unexpected trailing %s after top-level object", tok.Kind))
	}
	return n, nil
}

type parser struct {
	lx *text.Lexer
}

func (p *parser) parseObject() (*node, error) {
	marker, err := p.tryMarker()
	if err != nil {
		return nil, err
	}
	if err := p.expect(text.KindLParen); err != nil {
		return nil, err
	}
	tagOv, err := p.tryTagOverride()
	if err != nil {
		return nil, err
	}

	kwTok, err := p.lx.Next()
	if err != nil {
		return nil, err
	}
	if kwTok.Kind != text.KindWord {
		return nil, fmt.Errorf("offset %d: expected a keyword, got %s", kwTok.Pos, kwTok.Kind)
	}
	keyword := strings.ToLower(kwTok.Text)
	info, ok := keywords[keyword]
	if !ok {
		return nil, fmt.Errorf("offset %d: unknown keyword %q", kwTok.Pos, kwTok.Text)
	}

	n := &node{marker: marker, tag: tagOv, keyword: keyword}

	switch info.cat {
	case catConstructed, catTag:
		for {
			b, ok, err := p.lx.PeekByte()
			if err != nil {
				return nil, err
			}
			if !ok || b == ')' {
				break
			}
			child, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		}
		if info.cat == catTag && len(n.children) != 1 {
			return nil, fmt.Errorf("offset %d: tag wrapper requires exactly one sub-object", kwTok.Pos)
		}

	case catBool, catInt, catOID, catString, catTime:
		lit, litParam, err := p.parseLeafLiteral()
		if err != nil {
			return nil, err
		}
		n.leafLiteral, n.leafParam = lit, litParam

	case catBits:
		lit, litParam, err := p.parseLeafLiteral()
		if err != nil {
			return nil, err
		}
		n.leafLiteral, n.leafParam = lit, litParam
		if err := p.parseBlobLikePayload(n); err != nil {
			return nil, err
		}

	case catBlob:
		if err := p.parseBlobLikePayload(n); err != nil {
			return nil, err
		}

	case catNull:
		// no body
	}

	if err := p.expect(text.KindRParen); err != nil {
		return nil, err
	}

	if marker == '?' || marker == '*' || marker == '+' {
		hasColon, err := p.lx.ConsumeByteIf(':')
		if err != nil {
			return nil, err
		}
		if hasColon {
			repl, err := p.parseReplacement()
			if err != nil {
				return nil, err
			}
			n.replacement = repl
		}
	}

	return n, nil
}

// parseLeafLiteral reads a word/string literal or a %N parameter
// reference for a scalar-valued keyword.
func (p *parser) parseLeafLiteral() (string, *int, error) {
	tok, err := p.lx.Next()
	if err != nil {
		return "", nil, err
	}
	switch tok.Kind {
	case text.KindParam:
		n := tok.Param
		return "", &n, nil
	case text.KindWord, text.KindString:
		return tok.Text, nil, nil
	default:
		return "", nil, fmt.Errorf("offset %d: expected a value or %%N, got %s", tok.Pos, tok.Kind)
	}
}

// parseBlobLikePayload parses the payload shared by "bits" (after its
// ignored-bit count) and "blob": a nested object, a %N reference, a
// string (re-parsed as a nested spec at build/match time), or a hex-blob
// run, per spec.md §4.8.
func (p *parser) parseBlobLikePayload(n *node) error {
	b, ok, err := p.lx.PeekByte()
	if err != nil {
		return err
	}
	switch {
	case ok && b == '(':
		child, err := p.parseObject()
		if err != nil {
			return err
		}
		n.children = append(n.children, child)
	case ok && b == '%':
		tok, err := p.lx.Next()
		if err != nil {
			return err
		}
		idx := tok.Param
		n.payloadParam = &idx
	case ok && b == '"':
		tok, err := p.lx.Next()
		if err != nil {
			return err
		}
		n.leafLiteral2 = tok.Text
		n.blobIsSubSpec = true
	default:
		hexBytes, err := p.lx.ScanHexBlob()
		if err != nil {
			return err
		}
		n.leafHex = hexBytes
		n.hasHex = true
	}
	return nil
}

// parseReplacement parses a "( %N (type literal) ... )" action following
// a ":" after an optional/repeated sub-object, per spec.md §4.8.
func (p *parser) parseReplacement() ([]replacementAssign, error) {
	if err := p.expect(text.KindLParen); err != nil {
		return nil, err
	}
	var out []replacementAssign
	for {
		b, ok, err := p.lx.PeekByte()
		if err != nil {
			return nil, err
		}
		if !ok || b == ')' {
			break
		}
		paramTok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		if paramTok.Kind != text.KindParam {
			return nil, fmt.Errorf("offset %d: expected %%N in replacement action, got %s", paramTok.Pos, paramTok.Kind)
		}
		if err := p.expect(text.KindLParen); err != nil {
			return nil, err
		}
		typeTok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		if typeTok.Kind != text.KindWord {
			return nil, fmt.Errorf("offset %d: expected a replacement type keyword, got %s", typeTok.Pos, typeTok.Kind)
		}
		assign := replacementAssign{param: paramTok.Param, typ: strings.ToLower(typeTok.Text)}
		if assign.typ == "asn" {
			nested, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			assign.nested = nested
		} else {
			litTok, err := p.lx.Next()
			if err != nil {
				return nil, err
			}
			if litTok.Kind != text.KindWord && litTok.Kind != text.KindString {
				return nil, fmt.Errorf("offset %d: expected a literal in replacement action, got %s", litTok.Pos, litTok.Kind)
			}
			assign.literal = litTok.Text
		}
		if err := p.expect(text.KindRParen); err != nil {
			return nil, err
		}
		out = append(out, assign)
	}
	if err := p.expect(text.KindRParen); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) tryMarker() (byte, error) {
	b, ok, err := p.lx.PeekByte()
	if err != nil || !ok {
		return 0, err
	}
	switch b {
	case '*', '?':
		if _, err := p.lx.ConsumeByteIf(b); err != nil {
			return 0, err
		}
		return b, nil
	case '+':
		save := p.lx.Pos()
		tok, err := p.lx.Next()
		if err != nil {
			return 0, err
		}
		if tok.Kind == text.KindWord && tok.Text == "+" {
			return '+', nil
		}
		p.lx.SetPos(save)
		return 0, nil
	default:
		return 0, nil
	}
}

func (p *parser) tryTagOverride() (*tagOverride, error) {
	b, ok, err := p.lx.PeekByte()
	if err != nil || !ok || b != '[' {
		return nil, err
	}
	if err := p.expect(text.KindLBracket); err != nil {
		return nil, err
	}
	first, err := p.parseRef()
	if err != nil {
		return nil, err
	}
	b, ok, err = p.lx.PeekByte()
	if err != nil {
		return nil, err
	}
	ov := &tagOverride{}
	if ok && b == ']' {
		ov.value = first
	} else {
		second, err := p.parseRef()
		if err != nil {
			return nil, err
		}
		ov.hasClass = true
		ov.class = first
		ov.value = second
	}
	if err := p.expect(text.KindRBracket); err != nil {
		return nil, err
	}
	return ov, nil
}

func (p *parser) parseRef() (ref, error) {
	tok, err := p.lx.Next()
	if err != nil {
		return ref{}, err
	}
	switch tok.Kind {
	case text.KindParam:
		return ref{isParam: true, param: tok.Param}, nil
	case text.KindWord:
		return ref{literal: tok.Text}, nil
	default:
		return ref{}, fmt.Errorf("offset %d: expected a tag class/value, got %s", tok.Pos, tok.Kind)
	}
}

func (p *parser) expect(k text.Kind) error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	if tok.Kind != k {
		return fmt.Errorf("offset %d: expected %s, got %s", tok.Pos, k, tok.Kind)
	}
	return nil
}
