package composite

// A Rule has a condition and an action. The name identifies the rule
// among its siblings and is how a logical connective refers to it.
type Rule interface {
	// Name must be unique within a composite.
	Name() string

	Description() string

	// Priority orders rules within a composite; lower values come first.
	Priority() int

	// Evaluate reports whether the rule's condition is satisfied.
	Evaluate() bool

	// Execute performs the rule's action.
	Execute() error
}

const (
	DefaultName        = "rule"
	DefaultDescription = "description"
	DefaultPriority    = 2147483646
)

// BasicRule adapts a pair of functions to the Rule interface.
// Without a condition the rule is false; without an action, Execute does
// nothing.
type BasicRule struct {
	name        string
	description string
	priority    int
	condition   func() bool
	action      func() error
}

// NewBasicRule initializes a rule with no condition and no action.
func NewBasicRule(name, description string, priority int) *BasicRule {
	return &BasicRule{
		name:        name,
		description: description,
		priority:    priority,
	}
}

// When sets the condition and returns the rule.
func (r *BasicRule) When(condition func() bool) *BasicRule {
	r.condition = condition
	return r
}

// Then sets the action and returns the rule.
func (r *BasicRule) Then(action func() error) *BasicRule {
	r.action = action
	return r
}

func (r *BasicRule) Name() string        { return r.name }
func (r *BasicRule) Description() string { return r.description }
func (r *BasicRule) Priority() int       { return r.priority }

func (r *BasicRule) Evaluate() bool {
	if r.condition == nil {
		return false
	}
	return r.condition()
}

func (r *BasicRule) Execute() error {
	if r.action == nil {
		return nil
	}
	return r.action()
}
