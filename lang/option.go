package lang

import "github.com/ardnew/cfgl/log"

// DefaultMaxDepth is the default maximum nesting depth of a converted tree.
var DefaultMaxDepth = 100

type options struct {
	logger   log.Logger
	vars     *Variables
	maxDepth int
}

// Option configures decoding, conversion, and evaluation.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth. Values less than 1 restore
// [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithLogger sets the logger that receives trace records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithVariables overrides the table used to resolve expression identifiers.
// By default the table is extracted from the tree being converted.
func WithVariables(vars *Variables) Option {
	return func(o *options) { o.vars = vars }
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
