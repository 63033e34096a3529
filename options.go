package composite

import "go.uber.org/zap"

// DuplicatePolicy decides what AddRule does when the key or the rule name
// is already used in the composite.
type DuplicatePolicy int

const (
	// RejectDuplicates makes AddRule return ErrDuplicateRule.
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates removes the existing rule(s) before adding the new one.
	ReplaceDuplicates
	// IgnoreDuplicates keeps the existing rule and drops the new one.
	IgnoreDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case ReplaceDuplicates:
		return "replace"
	case IgnoreDuplicates:
		return "ignore"
	default:
		return "unknown"
	}
}

// Observer is notified of every evaluation and every sub-rule execution.
type Observer interface {
	ObserveEvaluation(r *Result)
	ObserveExecution(rule string, err error)
}

// See the functional definitions below for the meaning.
type Options struct {
	Description string
	Priority    int
	OnDuplicate DuplicatePolicy
	Logger      *zap.Logger
	Observer    Observer
}

type Option func(o *Options)

// Given an array of Option functions, apply their effect
// on the Options struct.
func applyOptions(o *Options, opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Description of the composite.
// Default: DefaultDescription
func Description(d string) Option {
	return func(o *Options) {
		o.Description = d
	}
}

// Priority of the composite among its own siblings.
// Default: DefaultPriority
func Priority(p int) Option {
	return func(o *Options) {
		o.Priority = p
	}
}

// OnDuplicate sets the policy for adding a rule whose key or name is
// already in use.
// Default: RejectDuplicates
func OnDuplicate(p DuplicatePolicy) Option {
	return func(o *Options) {
		o.OnDuplicate = p
	}
}

// WithLogger sets the logger used to record evaluation failures.
// Default: no logging
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver sets an observer, for example a metrics collector.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}
