package deflate

import (
	"github.com/chronos-tachyon/assert"
)

// Option customizes the behavior of a Writer.
type Option func(*options)

type options struct {
	clevel   CompressLevel
	mlevel   MemoryLevel
	strategy Strategy
	tracers  []Tracer
}

func (o *options) reset() {
	*o = options{clevel: DefaultCompression}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *options) populateWriterDefaults() {
	if o.clevel == DefaultCompression {
		o.clevel = 6
	}
	if o.mlevel == DefaultMemoryLevel {
		o.mlevel = 8
	}
}

// WithCompressLevel returns an Option which sets the compression level.
func WithCompressLevel(clevel CompressLevel) Option {
	assert.Assertf(clevel.IsValid(), "CompressLevel %d out of range [-1, 9]", int8(clevel))
	return func(o *options) {
		o.clevel = clevel
	}
}

// WithMemoryLevel returns an Option which sets the memory level.
func WithMemoryLevel(mlevel MemoryLevel) Option {
	assert.Assertf(mlevel.IsValid(), "MemoryLevel %d out of range [0, 9]", int8(mlevel))
	return func(o *options) {
		o.mlevel = mlevel
	}
}

// WithStrategy returns an Option which sets the block type strategy.
func WithStrategy(strategy Strategy) Option {
	assert.Assertf(strategy.IsValid(), "invalid Strategy %d", uint(strategy))
	return func(o *options) {
		o.strategy = strategy
	}
}

// WithTracers returns an Option which replaces the set of Tracers.
func WithTracers(tracers ...Tracer) Option {
	return func(o *options) {
		o.tracers = tracers
	}
}
