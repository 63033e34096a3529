package cel

import (
	"fmt"
	"slices"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ezachrisen/composite"
)

var _ composite.Rule = (*Rule)(nil)

// Facts are the named values that rule expressions can refer to.
type Facts map[string]any

// Rule is a composite.Rule with a CEL condition.
type Rule struct {
	name        string
	description string
	priority    int
	expr        string

	facts     Facts
	condition cel.Program
	steps     []step
	logger    *zap.Logger
}

// step is one part of a rule's action; either an assignment or a function.
type step struct {
	fact string
	expr string
	prg  cel.Program
	fn   func(Facts) error
}

type options struct {
	description string
	priority    int
	variables   []string
	steps       []step
	envOptions  []cel.EnvOption
	logger      *zap.Logger
}

type Option func(o *options)

// WithDescription sets the rule's description.
func WithDescription(d string) Option {
	return func(o *options) {
		o.description = d
	}
}

// WithPriority sets the rule's priority. Lower values run first.
func WithPriority(p int) Option {
	return func(o *options) {
		o.priority = p
	}
}

// WithVariables declares facts that are not yet present in the Facts map.
func WithVariables(names ...string) Option {
	return func(o *options) {
		o.variables = append(o.variables, names...)
	}
}

// WithAssignment adds an action step that evaluates expr and stores the
// result in the facts under the name fact.
func WithAssignment(fact, expr string) Option {
	return func(o *options) {
		o.steps = append(o.steps, step{fact: fact, expr: expr})
	}
}

// WithAction adds an action step that calls fn.
func WithAction(fn func(Facts) error) Option {
	return func(o *options) {
		o.steps = append(o.steps, step{fn: fn})
	}
}

// WithEnvOptions passes additional options, such as custom functions, to
// the CEL environment.
func WithEnvOptions(opts ...cel.EnvOption) Option {
	return func(o *options) {
		o.envOptions = append(o.envOptions, opts...)
	}
}

// WithLogger sets the logger used to report evaluation errors.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRule compiles the condition expr and any assignments. The condition
// must produce a boolean. If facts is nil, the rule gets its own empty
// Facts, available from Facts().
func NewRule(name, expr string, facts Facts, opts ...Option) (*Rule, error) {
	o := options{
		description: composite.DefaultDescription,
		priority:    composite.DefaultPriority,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if facts == nil {
		facts = Facts{}
	}

	env, err := newEnv(facts, o)
	if err != nil {
		return nil, errors.Wrapf(err, "creating CEL environment for rule %s", name)
	}

	condition, err := compile(env, expr, cel.BoolType)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling condition of rule %s", name)
	}

	for i := range o.steps {
		s := &o.steps[i]
		if s.fn != nil {
			continue
		}
		if s.fact == "" {
			return nil, errors.Errorf("assignment %d of rule %s has no fact name", i, name)
		}
		s.prg, err = compile(env, s.expr, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling assignment to %s in rule %s", s.fact, name)
		}
	}

	return &Rule{
		name:        name,
		description: o.description,
		priority:    o.priority,
		expr:        expr,
		facts:       facts,
		condition:   condition,
		steps:       o.steps,
		logger:      o.logger,
	}, nil
}

// newEnv declares every fact and extra variable as a dynamically typed
// CEL variable.
func newEnv(facts Facts, o options) (*cel.Env, error) {
	names := slices.Clone(o.variables)
	for k := range facts {
		names = append(names, k)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	envOpts := []cel.EnvOption{ext.Strings()}
	for _, n := range names {
		envOpts = append(envOpts, cel.Variable(n, cel.DynType))
	}
	envOpts = append(envOpts, o.envOptions...)
	return cel.NewEnv(envOpts...)
}

// compile parses and checks expr. If want is not nil, the expression must
// produce that type, or a dynamic type that is checked at evaluation.
func compile(env *cel.Env, expr string, want *cel.Type) (cel.Program, error) {
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	if want != nil {
		out := ast.OutputType()
		if !out.IsExactType(want) && !out.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("expression %q produces %s, wanted %s", expr, out, want)
		}
	}
	return env.Program(ast)
}

func (r *Rule) Name() string        { return r.name }
func (r *Rule) Description() string { return r.description }
func (r *Rule) Priority() int       { return r.priority }

// Expr is the rule's condition.
func (r *Rule) Expr() string { return r.expr }

// Facts returns the facts the rule reads and writes.
func (r *Rule) Facts() Facts { return r.facts }

// Evaluate runs the condition against the current facts. An evaluation
// error, or a value that is not a boolean, makes the rule false.
func (r *Rule) Evaluate() bool {
	val, _, err := r.condition.Eval(map[string]any(r.facts))
	if err != nil {
		r.logger.Warn("evaluating rule condition, returning false",
			zap.String("rule", r.name),
			zap.String("expr", r.expr),
			zap.Error(err))
		return false
	}
	b, ok := val.Value().(bool)
	if !ok {
		r.logger.Warn("rule condition is not a boolean, returning false",
			zap.String("rule", r.name),
			zap.String("expr", r.expr),
			zap.String("type", fmt.Sprintf("%T", val.Value())))
		return false
	}
	return b
}

// Execute runs the action steps in order, stopping at the first error.
func (r *Rule) Execute() error {
	for _, s := range r.steps {
		if s.fn != nil {
			if err := s.fn(r.facts); err != nil {
				return errors.Wrapf(err, "rule %s action", r.name)
			}
			continue
		}
		val, _, err := s.prg.Eval(map[string]any(r.facts))
		if err != nil {
			return errors.Wrapf(err, "rule %s assigning %s", r.name, s.fact)
		}
		r.facts[s.fact] = val.Value()
	}
	return nil
}
