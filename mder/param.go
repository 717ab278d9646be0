package mder

import (
	"fmt"
	"math/big"
	"time"

	"github.com/asn1kit/asn1kit/ber"
)

// Kind discriminates the dynamic type carried by a Param, following
// spec.md §9's tagged-union design note.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindBytes
	KindString
	KindElement
	KindTime
	KindList
)

// Param is one parameter slot: built with a value to feed Build, or left
// zero-valued (KindNull) to receive one from Match.
type Param struct {
	Kind  Kind
	Bool  bool
	Int   *big.Int
	Bytes []byte
	Str   string
	Elem  *ber.Element
	Time  time.Time
	List  []Param
}

func Null() Param                { return Param{Kind: KindNull} }
func BoolP(v bool) Param         { return Param{Kind: KindBool, Bool: v} }
func IntP(v *big.Int) Param      { return Param{Kind: KindInt, Int: v} }
func BytesP(v []byte) Param      { return Param{Kind: KindBytes, Bytes: v} }
func StringP(v string) Param     { return Param{Kind: KindString, Str: v} }
func ElementP(v *ber.Element) Param { return Param{Kind: KindElement, Elem: v} }
func TimeP(v time.Time) Param    { return Param{Kind: KindTime, Time: v} }
func ListP(items ...Param) Param { return Param{Kind: KindList, List: items} }

func (p Param) IsNull() bool  { return p.Kind == KindNull }
func (p Param) IsList() bool  { return p.Kind == KindList }

// AsBool coerces a bool or a recognised truthy/falsy string.
func (p Param) AsBool() (bool, error) {
	switch p.Kind {
	case KindBool:
		return p.Bool, nil
	case KindString:
		switch p.Str {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("mder: parameter is not a bool: %+v", p)
}

// AsInt coerces a big.Int, or a parseable decimal string.
func (p Param) AsInt() (*big.Int, error) {
	switch p.Kind {
	case KindInt:
		return p.Int, nil
	case KindString:
		v, ok := new(big.Int).SetString(p.Str, 10)
		if !ok {
			return nil, fmt.Errorf("mder: %q is not a decimal integer", p.Str)
		}
		return v, nil
	}
	return nil, fmt.Errorf("mder: parameter is not an int: %+v", p)
}

// AsBytes coerces a byte slice, or the DER encoding of an Element.
func (p Param) AsBytes() ([]byte, error) {
	switch p.Kind {
	case KindBytes:
		return p.Bytes, nil
	case KindElement:
		return ber.Encode(p.Elem)
	}
	return nil, fmt.Errorf("mder: parameter is not a byte array: %+v", p)
}

// AsString coerces a string.
func (p Param) AsString() (string, error) {
	if p.Kind == KindString {
		return p.Str, nil
	}
	return "", fmt.Errorf("mder: parameter is not a string: %+v", p)
}

// AsTime coerces a calendar instant. The zero time.Time is the "unset"
// sentinel spec.md §4.8 allows for time-typed keyword parameters.
func (p Param) AsTime() (time.Time, error) {
	if p.Kind == KindTime {
		return p.Time, nil
	}
	return time.Time{}, fmt.Errorf("mder: parameter is not a time: %+v", p)
}
