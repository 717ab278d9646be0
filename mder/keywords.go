package mder

import "github.com/asn1kit/asn1kit/ber"

// category classifies how a keyword's value is built/matched.
type category int

const (
	catBool category = iota
	catInt
	catBits
	catBlob
	catOID
	catNull
	catString
	catTime
	catConstructed
	catTag // the explicit "tag" wrapper keyword
)

type keywordInfo struct {
	tag         ber.Tag
	constructed bool
	cat         category
	nz          bool // "-nz" empty-becomes-absent variant
}

// keywords is the full object-keyword table: the universal-type keywords
// of spec.md §4.2 plus the structural keywords of §4.8. Spellings follow
// the ones spec.md gives verbatim (bool, int, enum, bits, blob, oid, utc,
// gentime, sequence, set, setder, setof) plus the conventional lowercase
// ASN.1 names for the remaining character-string types.
var keywords = map[string]keywordInfo{
	"bool": {tag: ber.TagBoolean, cat: catBool},
	"int":  {tag: ber.TagInteger, cat: catInt},
	"enum": {tag: ber.TagEnumerated, cat: catInt},
	"bits": {tag: ber.TagBitString, cat: catBits},
	"blob": {tag: ber.TagOctetString, cat: catBlob},
	"oid":  {tag: ber.TagOID, cat: catOID},
	"null": {tag: ber.TagNull, cat: catNull},

	"numeric":   {tag: ber.TagNumericString, cat: catString},
	"printable": {tag: ber.TagPrintableString, cat: catString},
	"ia5":       {tag: ber.TagIA5String, cat: catString},
	"teletex":   {tag: ber.TagTeletexString, cat: catString},
	"videotex":  {tag: ber.TagVideotexString, cat: catString},
	"graphic":   {tag: ber.TagGraphicString, cat: catString},
	"visible":   {tag: ber.TagVisibleString, cat: catString},
	"general":   {tag: ber.TagGeneralString, cat: catString},
	"character": {tag: ber.TagCharacterString, cat: catString},

	// spec.md §9's alias resolution: utf8/utf-8/utf8string -> UTF8String;
	// utf16/utf-16/bmp/bmpstring -> BMPString. universal is its own tag.
	"utf8":       {tag: ber.TagUTF8String, cat: catString},
	"utf-8":      {tag: ber.TagUTF8String, cat: catString},
	"utf8string": {tag: ber.TagUTF8String, cat: catString},
	"utf16":      {tag: ber.TagBMPString, cat: catString},
	"utf-16":     {tag: ber.TagBMPString, cat: catString},
	"bmp":        {tag: ber.TagBMPString, cat: catString},
	"bmpstring":  {tag: ber.TagBMPString, cat: catString},
	"universal":  {tag: ber.TagUniversalString, cat: catString},

	"utc":     {tag: ber.TagUTCTime, cat: catTime},
	"gentime": {tag: ber.TagGeneralizedTime, cat: catTime},

	"sequence": {tag: ber.TagSequence, constructed: true, cat: catConstructed},
	"set":      {tag: ber.TagSet, constructed: true, cat: catConstructed},
	"setder":   {tag: ber.TagSet, constructed: true, cat: catConstructed},
	"setof":    {tag: ber.TagSet, constructed: true, cat: catConstructed},

	"sequence-nz": {tag: ber.TagSequence, constructed: true, cat: catConstructed, nz: true},
	"set-nz":      {tag: ber.TagSet, constructed: true, cat: catConstructed, nz: true},
	"setder-nz":   {tag: ber.TagSet, constructed: true, cat: catConstructed, nz: true},
	"setof-nz":    {tag: ber.TagSet, constructed: true, cat: catConstructed, nz: true},

	"tag": {cat: catTag},
}

// setKindOf reports the ber.SetKind a "set"/"setder"/"setof" keyword (with
// or without "-nz") implies. "sequence" and "tag" are not SET keywords and
// always return SetNone.
func setKindOf(keyword string) ber.SetKind {
	switch keyword {
	case "setof", "setof-nz":
		return ber.SetOf
	case "setder", "setder-nz":
		return ber.SetDER
	default:
		return ber.SetNone
	}
}

// tagClassKeywords maps the tag-class keyword spellings of spec.md §4.8.
var tagClassKeywords = map[string]ber.TagClass{
	"univ":       ber.ClassUniversal,
	"universal":  ber.ClassUniversal,
	"app":        ber.ClassApplication,
	"application": ber.ClassApplication,
	"context":    ber.ClassContextSpecific,
	"priv":       ber.ClassPrivate,
	"private":    ber.ClassPrivate,
}

// tagValueKeyword maps a symbolic tag-value keyword to its universal tag
// number, for use inside a "[ class value ]" override (spec.md §4.8: every
// universal type keyword plus sequence/set/enum).
func tagValueKeyword(word string) (ber.Tag, bool) {
	if info, ok := keywords[word]; ok && info.cat != catConstructed && info.cat != catTag {
		return info.tag, true
	}
	switch word {
	case "sequence", "sequence-nz":
		return ber.TagSequence, true
	case "set", "set-nz", "setder", "setder-nz", "setof", "setof-nz":
		return ber.TagSet, true
	}
	return 0, false
}
