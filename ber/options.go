package ber

import "github.com/asn1kit/asn1kit/asn1log"

// defaultMaxDepth is the recursion-depth cap spec.md §5 recommends
// ("recommended ≥ 256") to bound stack use against pathological nested
// input, since BER imposes no other structural limit.
const defaultMaxDepth = 256

// config is shared by Decoder and Encoder construction.
type config struct {
	maxDepth int
	logger   asn1log.Logger
}

func newConfig(opts []Option) config {
	c := config{maxDepth: defaultMaxDepth, logger: asn1log.Discard}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a Decoder or Encoder, following the teacher project's
// functional-option idiom (cotp.WithLogger, mms.InitiateRequestOption).
type Option func(*config)

// WithMaxDepth overrides the recursion-depth cap used while descending
// constructed elements.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithLogger attaches a debug logger to a Decoder or Encoder.
func WithLogger(l asn1log.Logger) Option {
	return func(c *config) { c.logger = l }
}
