package ruleset

import (
	"go.uber.org/zap"

	"github.com/ezachrisen/composite"
)

type buildOptions struct {
	logger    *zap.Logger
	composite []composite.Option
}

type Option func(o *buildOptions)

// WithLogger sets the logger for every rule that is built.
func WithLogger(l *zap.Logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// WithCompositeOptions adds options to every composite that is built,
// for example composite.WithObserver.
func WithCompositeOptions(opts ...composite.Option) Option {
	return func(o *buildOptions) {
		o.composite = append(o.composite, opts...)
	}
}
