package mder

// ref is either a literal word or a %N parameter reference, used for tag
// class/value fields and for primitive leaf values that accept either
// spelling per spec.md §4.8.
type ref struct {
	isParam bool
	param   int
	literal string
}

// tagOverride is the parsed form of a leading "[ tagclass? tagvalue ]"
// (spec.md §4.8's "Tag specification syntax").
type tagOverride struct {
	hasClass bool
	class    ref
	value    ref
}

// replacementAssign is one "%N (type literal)" pair inside a ":(...)"
// action, seeding a parameter when an optional match was skipped.
type replacementAssign struct {
	param   int
	typ     string
	literal string
	nested  *node // only set when typ == "asn"
}

// node is one parsed sub-object spec: an optional repetition/optionality
// marker, an optional tag override, a keyword, and either a leaf value or
// a list of children.
type node struct {
	marker byte // 0, '*', '+', '?'
	tag    *tagOverride
	keyword string

	// leaf value, for primitive keywords; exactly one of these is set.
	leafLiteral string
	leafParam   *int
	leafHex     []byte
	hasHex      bool

	// blob/bits payload extras.
	leafLiteral2  string // string literal re-parsed as a nested spec
	blobIsSubSpec bool
	payloadParam  *int

	children []*node

	replacement []replacementAssign
}
