package composite

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/ezachrisen/composite/connective"
	"go.uber.org/zap"
)

// Composite is a rule made up of other rules.
//
// Without a logical connective, a composite is true if ALL of its
// sub-rules are true. When a composite is executed, the actions of ALL of
// its sub-rules are performed.
type Composite struct {
	name string
	opts Options

	// Sub-rules in evaluation order.
	rules []*entry

	// The same entries as rules, indexed by the key used to add them
	// and by rule name.
	byKey  map[any]*entry
	byName map[string]*entry

	conjunction string
}

// entry holds a sub-rule with the key, name and priority captured when it
// was added.
type entry struct {
	key      any
	name     string
	priority int
	rule     Rule
}

func compareEntries(a, b *entry) int {
	switch {
	case a.priority < b.priority:
		return -1
	case a.priority > b.priority:
		return 1
	case a.name < b.name:
		return -1
	case a.name > b.name:
		return 1
	default:
		return 0
	}
}

// New initializes an empty composite rule.
func New(name string, opts ...Option) *Composite {
	o := Options{
		Description: DefaultDescription,
		Priority:    DefaultPriority,
		OnDuplicate: RejectDuplicates,
		Logger:      zap.NewNop(),
	}
	applyOptions(&o, opts...)

	return &Composite{
		name:   name,
		opts:   o,
		byKey:  map[any]*entry{},
		byName: map[string]*entry{},
	}
}

// Name returns the name given to New.
func (c *Composite) Name() string { return c.name }

// Description returns the description set with the Description option.
func (c *Composite) Description() string { return c.opts.Description }

// Priority returns the composite's own priority within a parent composite.
func (c *Composite) Priority() int { return c.opts.Priority }

// SetLogicalConjunction sets how the results of the sub-rules are combined.
// Each rule is referenced by its name in square brackets:
//
//	[myRule] && ([yourRule] || [herRule])
//	[myRule] || [yourRule] || [herRule]
//	([myRule] || [yourRule]) && [herRule]
//
// The connective is not checked until the composite is evaluated.
// An empty connective means all sub-rules must be true.
func (c *Composite) SetLogicalConjunction(expr string) {
	c.conjunction = expr
}

// LogicalConjunction returns the connective, or "" if none is set.
func (c *Composite) LogicalConjunction() string {
	return c.conjunction
}

// Add adds rules, using each rule as its own key.
func (c *Composite) Add(rules ...Rule) error {
	for _, r := range rules {
		if err := c.AddRule(r, r); err != nil {
			return err
		}
	}
	return nil
}

// AddRule adds the rule r to the composite. The key is how the caller
// refers to the rule when removing it; it must be comparable.
//
// If the key or the rule's name is already used, the composite's
// DuplicatePolicy decides the outcome.
func (c *Composite) AddRule(key any, r Rule) error {
	if r == nil {
		return ErrNilRule
	}
	if !validKey(key) {
		return fmt.Errorf("%w: %T (rule %s)", ErrInvalidKey, key, r.Name())
	}

	e := &entry{
		key:      key,
		name:     r.Name(),
		priority: r.Priority(),
		rule:     r,
	}

	byKey, keyUsed := c.byKey[key]
	byName, nameUsed := c.byName[e.name]
	if keyUsed || nameUsed {
		switch c.opts.OnDuplicate {
		case IgnoreDuplicates:
			return nil
		case ReplaceDuplicates:
			if keyUsed {
				c.remove(byKey)
			}
			if nameUsed && byName != byKey {
				c.remove(byName)
			}
		default:
			return fmt.Errorf("%w: rule %s in %s", ErrDuplicateRule, e.name, c.name)
		}
	}

	i, _ := slices.BinarySearchFunc(c.rules, e, compareEntries)
	c.rules = slices.Insert(c.rules, i, e)
	c.byKey[key] = e
	c.byName[e.name] = e
	return nil
}

// RemoveRule removes the rule that was added with the key.
// Removing a key that is not in the composite does nothing.
func (c *Composite) RemoveRule(key any) {
	if !validKey(key) {
		return
	}
	if e, ok := c.byKey[key]; ok {
		c.remove(e)
	}
}

// validKey reports whether key can be used in a map without panicking.
// The dynamic value is checked, so a struct holding a slice in an
// interface field is rejected even though its type is comparable.
func validKey(key any) bool {
	return key != nil && reflect.ValueOf(key).Comparable()
}

func (c *Composite) remove(e *entry) {
	c.rules = slices.DeleteFunc(c.rules, func(x *entry) bool {
		return x == e
	})
	delete(c.byKey, e.key)
	delete(c.byName, e.name)
}

// Rules returns the sub-rules in evaluation order.
func (c *Composite) Rules() []Rule {
	rr := make([]Rule, len(c.rules))
	for i, e := range c.rules {
		rr[i] = e.rule
	}
	return rr
}

// Len is the number of sub-rules.
func (c *Composite) Len() int {
	return len(c.rules)
}

// Evaluate reports whether the composite is true. See EvaluateResult.
func (c *Composite) Evaluate() bool {
	return c.EvaluateResult().Pass
}

// EvaluateResult evaluates all sub-rules and combines their results.
//
// If no connective is set, the composite passes if all sub-rules are true.
// Otherwise the sub-rule results are substituted into the connective, and
// the resulting boolean expression decides the outcome.
//
// A composite without sub-rules is false. Any error with the connective
// also makes the composite false; the error is returned in Result.Err.
func (c *Composite) EvaluateResult() *Result {
	res := &Result{
		Rule:       c.name,
		Connective: c.conjunction,
		Results:    make(map[string]bool, len(c.rules)),
	}
	defer c.observe(res)

	if err := connective.Validate(c.conjunction); err != nil {
		res.Err = err
		return res
	}

	if len(c.rules) == 0 {
		return res
	}

	pass := true
	for _, e := range c.rules {
		ok := e.rule.Evaluate()
		res.Results[e.name] = ok
		res.Order = append(res.Order, e.name)
		pass = pass && ok
	}

	if c.conjunction == "" {
		res.Pass = pass
		return res
	}

	expr, err := connective.Substitute(res.Results, c.conjunction)
	if err != nil {
		res.Err = err
		return res
	}
	res.Expression = expr

	pass, err = connective.Eval(expr)
	if err != nil {
		res.Err = err
		return res
	}
	res.Pass = pass
	return res
}

func (c *Composite) observe(res *Result) {
	if res.Err != nil {
		c.opts.Logger.Error("evaluating composite rule, returning false",
			zap.String("rule", c.name),
			zap.String("connective", c.conjunction),
			zap.String("reason", string(res.Reason())),
			zap.Error(res.Err))
	} else {
		c.opts.Logger.Debug("evaluated composite rule",
			zap.String("rule", c.name),
			zap.Bool("pass", res.Pass),
			zap.Int("rules", len(res.Order)))
	}
	if c.opts.Observer != nil {
		c.opts.Observer.ObserveEvaluation(res)
	}
}

// Execute performs the actions of ALL sub-rules in evaluation order.
// It stops at, and returns, the first error.
func (c *Composite) Execute() error {
	for _, e := range c.rules {
		err := e.rule.Execute()
		if c.opts.Observer != nil {
			c.opts.Observer.ObserveExecution(e.name, err)
		}
		if err != nil {
			return fmt.Errorf("executing rule %s in %s: %w", e.name, c.name, err)
		}
	}
	return nil
}

// Fire evaluates the composite, and executes it if it is true.
// It returns the evaluation outcome and any error from Execute.
func (c *Composite) Fire() (bool, error) {
	if !c.Evaluate() {
		return false, nil
	}
	return true, c.Execute()
}
