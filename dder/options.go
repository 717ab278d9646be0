// Package dder implements DDer-core: the parenthesised-text pretty
// printer for a decoded *ber.Element tree, per spec.md §4.6.
package dder

// defaultIndent is the per-level indentation prefix used unless the
// caller overrides it (spec.md §4.6: "a prefix string, default four
// spaces").
const defaultIndent = "    "

// compactIndent is the sentinel that disables indentation and newlines
// entirely (spec.md §4.6: "if the prefix is null, indentation and
// newlines are suppressed... inline comments are omitted").
const compactIndent = "null"

type config struct {
	numericOID bool
	indent     string
}

func newConfig(opts []Option) config {
	c := config{indent: defaultIndent}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) compact() bool { return c.indent == compactIndent }

// Option configures Pretty, following the module's functional-option
// idiom (see ber.Option).
type Option func(*config)

// WithNumericOID forces OID values to render as numeric dotted strings
// instead of attempting a symbolic name lookup.
func WithNumericOID() Option {
	return func(c *config) { c.numericOID = true }
}

// WithIndent sets the per-level indentation prefix. Passing "null"
// disables indentation, newlines, and inline comments (spec.md §4.6).
func WithIndent(prefix string) Option {
	return func(c *config) { c.indent = prefix }
}
