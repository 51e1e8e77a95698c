package confgraph

import (
	"github.com/confgraph/confgraph/codec"
	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/persistence"
	"github.com/confgraph/confgraph/resource"
	"github.com/confgraph/confgraph/sampler"
)

// Transform rewrites a record before a collection hands it out.
// The input is a private copy; the transform may mutate or replace it.
// A (nil, nil) return means "no usable sample" and is filtered at
// collation, not treated as an error.
type Transform func(*model.GraphRecord) (*model.GraphRecord, error)

type options struct {
	codec       codec.Codec
	compression persistence.CompressionType
	logger      *Logger
	transform   Transform
	samplerOpts sampler.Options
	seed        int64
	controller  *resource.Controller
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: persistence.CompressionZSTD,
		logger:      NewLogger(nil),
		samplerOpts: sampler.DefaultOptions(),
	}
}

// Option configures collections and snapshot operations.
type Option func(*options)

// WithCodec configures the codec used for snapshot record sections.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the snapshot section compression.
func WithCompression(c persistence.CompressionType) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithTransform sets the per-access transform applied to records after
// copying (and, for sampling collections, after subgraph extraction).
func WithTransform(t Transform) Option {
	return func(o *options) {
		o.transform = t
	}
}

// WithSamplerOptions configures subgraph sampling for sampling
// collections. Zero-valued fields fall back to the defaults
// (cutoff 10.0, max residue 5000, random seed atom).
func WithSamplerOptions(opts sampler.Options) Option {
	return func(o *options) {
		o.samplerOpts = opts
	}
}

// WithSeed sets the random seed driving seed-atom selection.
// Runs with the same seed and access sequence reproduce the same
// subgraphs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithController attaches a resource controller bounding snapshot IO.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}
