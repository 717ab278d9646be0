// Package asn1kit ties the codec, OID registry, and text toolkit
// sub-packages together behind one import, mirroring the way the teacher
// project's go61850.go wraps its protocol stack behind a single client
// type. Most callers only need the ber, mder, dder, and oid packages
// directly; this package exists for callers that want one entry point
// configured once and reused across Decode/Encode/Build/Match/Pretty.
package asn1kit

import (
	"github.com/asn1kit/asn1kit/asn1log"
	"github.com/asn1kit/asn1kit/ber"
	"github.com/asn1kit/asn1kit/dder"
	"github.com/asn1kit/asn1kit/mder"
	"github.com/asn1kit/asn1kit/oid"
)

// Kit bundles a configured Decoder/Encoder pair with an OID registry and
// the pretty-printer options a caller wants applied consistently. The zero
// value is not usable; construct with New.
type Kit struct {
	dec        *ber.Decoder
	enc        *ber.Encoder
	registry   *oid.Registry
	prettyOpts []dder.Option
}

// Option configures a Kit.
type Option func(*kitConfig)

type kitConfig struct {
	maxDepth   int
	logger     asn1log.Logger
	registry   *oid.Registry
	numericOID bool
	indent     string
}

// WithLogger attaches a debug logger to the Kit's Decoder and Encoder.
func WithLogger(l asn1log.Logger) Option {
	return func(c *kitConfig) { c.logger = l }
}

// WithMaxDepth overrides the recursion-depth cap used while decoding and
// encoding (see ber.WithMaxDepth).
func WithMaxDepth(n int) Option {
	return func(c *kitConfig) { c.maxDepth = n }
}

// WithRegistry sets the OID registry that Registry returns, in place of
// oid.Default. Build, Match and Pretty do not consult it: they resolve OID
// names against oid.Default.
func WithRegistry(r *oid.Registry) Option {
	return func(c *kitConfig) { c.registry = r }
}

// WithNumericOID makes Pretty render OIDs as numeric dotted strings
// instead of attempting a symbolic name lookup.
func WithNumericOID() Option {
	return func(c *kitConfig) { c.numericOID = true }
}

// WithIndent sets Pretty's per-level indentation prefix ("null" disables
// indentation and inline comments entirely; see dder.WithIndent).
func WithIndent(prefix string) Option {
	return func(c *kitConfig) { c.indent = prefix }
}

// New builds a Kit. With no options it decodes/encodes with the default
// depth cap, logs nothing, and resolves OID names against oid.Default.
func New(opts ...Option) *Kit {
	cfg := kitConfig{maxDepth: 0, logger: asn1log.Discard, registry: oid.Default(), indent: ""}
	for _, opt := range opts {
		opt(&cfg)
	}

	var berOpts []ber.Option
	berOpts = append(berOpts, ber.WithLogger(cfg.logger))
	if cfg.maxDepth > 0 {
		berOpts = append(berOpts, ber.WithMaxDepth(cfg.maxDepth))
	}

	var prettyOpts []dder.Option
	if cfg.numericOID {
		prettyOpts = append(prettyOpts, dder.WithNumericOID())
	}
	if cfg.indent != "" {
		prettyOpts = append(prettyOpts, dder.WithIndent(cfg.indent))
	}

	return &Kit{
		dec:        ber.NewDecoder(berOpts...),
		enc:        ber.NewEncoder(berOpts...),
		registry:   cfg.registry,
		prettyOpts: prettyOpts,
	}
}

// Decode parses one complete BER/DER element from data.
func (k *Kit) Decode(data []byte) (*ber.Element, error) {
	return k.dec.Decode(data)
}

// Encode serialises e to strict DER.
func (k *Kit) Encode(e *ber.Element) ([]byte, error) {
	return k.enc.Encode(e)
}

// Build compiles spec and emits an Element, reading parameter
// placeholders (%N) from params.
func (k *Kit) Build(spec string, params []mder.Param) (*ber.Element, error) {
	return mder.Build(spec, params)
}

// Match walks e against spec, returning the bound parameter vector.
func (k *Kit) Match(spec string, e *ber.Element) ([]mder.Param, error) {
	return mder.Match(spec, e)
}

// Pretty renders e as a parenthesised text spec using the Kit's
// configured indentation and OID formatting.
func (k *Kit) Pretty(e *ber.Element) (string, error) {
	return dder.Pretty(e, k.prettyOpts...)
}

// Registry returns the OID registry this Kit resolves names against.
func (k *Kit) Registry() *oid.Registry {
	return k.registry
}
