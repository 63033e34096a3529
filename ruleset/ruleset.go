// Package ruleset loads composite rule definitions from YAML.
//
// A definition with child rules becomes a composite.Composite; a
// definition without child rules becomes a cel.Rule:
//
//	name: eligibility
//	connective: "[adult] && ([resident] || [sponsored])"
//	rules:
//	  - name: adult
//	    priority: 1
//	    when: age >= 18
//	    then:
//	      - set: adult_checked
//	        to: "true"
//	  - name: resident
//	    when: country == "NO"
//	  - name: sponsored
//	    when: sponsor != ""
package ruleset

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ezachrisen/composite"
	"github.com/ezachrisen/composite/cel"
	"github.com/ezachrisen/composite/connective"
)

// Definition describes a rule. Composite-only fields (Connective,
// OnDuplicate) and leaf-only fields (When, Then) are mutually exclusive.
type Definition struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Priority    *int         `yaml:"priority,omitempty"`
	Connective  string       `yaml:"connective,omitempty"`
	OnDuplicate string       `yaml:"on_duplicate,omitempty"`
	When        string       `yaml:"when,omitempty"`
	Then        []Assignment `yaml:"then,omitempty"`
	Variables   []string     `yaml:"variables,omitempty"`
	Rules       []Definition `yaml:"rules,omitempty"`
}

// Assignment stores the value of the CEL expression To in the fact Set.
type Assignment struct {
	Set string `yaml:"set"`
	To  string `yaml:"to"`
}

// IsComposite reports whether the definition has child rules.
func (d *Definition) IsComposite() bool {
	return len(d.Rules) > 0
}

// Load reads a definition and validates it.
func Load(r io.Reader) (*Definition, error) {
	var d Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decoding rule definition")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads a definition from the file at path.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening rule definition")
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return d, nil
}

// LoadFacts reads a YAML mapping of fact names to values.
func LoadFacts(r io.Reader) (cel.Facts, error) {
	facts := cel.Facts{}
	if err := yaml.NewDecoder(r).Decode(&facts); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decoding facts")
	}
	return facts, nil
}

// LoadFactsFile reads facts from the file at path.
func LoadFactsFile(path string) (cel.Facts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening facts")
	}
	defer f.Close()
	return LoadFacts(f)
}

var policies = map[string]composite.DuplicatePolicy{
	"":        composite.RejectDuplicates,
	"reject":  composite.RejectDuplicates,
	"replace": composite.ReplaceDuplicates,
	"ignore":  composite.IgnoreDuplicates,
}

// Validate checks the definition and its children. Unlike evaluating a
// composite, which turns a bad connective into a false outcome, Validate
// reports it, along with any connective reference to a rule that is not
// among the composite's children.
func (d *Definition) Validate() error {
	return d.validate(d.Name)
}

func (d *Definition) validate(path string) error {
	if d.Name == "" {
		return fmt.Errorf("%s: rule without a name", path)
	}

	if !d.IsComposite() {
		if d.When == "" {
			return fmt.Errorf("%s: rule has neither a condition (when) nor child rules", path)
		}
		if d.Connective != "" || d.OnDuplicate != "" {
			return fmt.Errorf("%s: connective and on_duplicate require child rules", path)
		}
		for i, a := range d.Then {
			if a.Set == "" || a.To == "" {
				return fmt.Errorf("%s: assignment %d needs both set and to", path, i)
			}
		}
		return nil
	}

	if d.When != "" || len(d.Then) > 0 {
		return fmt.Errorf("%s: a rule with child rules cannot have when or then", path)
	}
	if _, ok := policies[d.OnDuplicate]; !ok {
		return fmt.Errorf("%s: unknown on_duplicate policy %q", path, d.OnDuplicate)
	}
	if err := connective.Validate(d.Connective); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	seen := map[string]bool{}
	for i := range d.Rules {
		c := &d.Rules[i]
		if err := c.validate(path + "/" + c.Name); err != nil {
			return err
		}
		if seen[c.Name] && policies[d.OnDuplicate] == composite.RejectDuplicates {
			return fmt.Errorf("%s: %w: %s", path, composite.ErrDuplicateRule, c.Name)
		}
		seen[c.Name] = true
	}

	for _, n := range connective.Names(d.Connective) {
		if !seen[n] {
			return fmt.Errorf("%s: %w", path, &connective.UnknownNameError{Name: n})
		}
	}
	return nil
}

// Build creates the rule described by d. Leaf rules read and write facts.
// The options are applied to every composite in the hierarchy, after the
// settings from the definition itself.
func (d *Definition) Build(facts cel.Facts, opts ...Option) (composite.Rule, error) {
	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return d.build(facts, o)
}

func (d *Definition) build(facts cel.Facts, o buildOptions) (composite.Rule, error) {
	if !d.IsComposite() {
		celOpts := []cel.Option{
			cel.WithVariables(d.Variables...),
			cel.WithLogger(o.logger),
		}
		if d.Description != "" {
			celOpts = append(celOpts, cel.WithDescription(d.Description))
		}
		if d.Priority != nil {
			celOpts = append(celOpts, cel.WithPriority(*d.Priority))
		}
		for _, a := range d.Then {
			celOpts = append(celOpts, cel.WithAssignment(a.Set, a.To))
		}
		r, err := cel.NewRule(d.Name, d.When, facts, celOpts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	compOpts := []composite.Option{
		composite.OnDuplicate(policies[d.OnDuplicate]),
		composite.WithLogger(o.logger),
	}
	if d.Description != "" {
		compOpts = append(compOpts, composite.Description(d.Description))
	}
	if d.Priority != nil {
		compOpts = append(compOpts, composite.Priority(*d.Priority))
	}
	compOpts = append(compOpts, o.composite...)

	c := composite.New(d.Name, compOpts...)
	c.SetLogicalConjunction(d.Connective)
	for i := range d.Rules {
		child, err := d.Rules[i].build(facts, o)
		if err != nil {
			return nil, errors.Wrapf(err, "building %s", d.Name)
		}
		if err := c.Add(child); err != nil {
			return nil, errors.Wrapf(err, "adding %s to %s", child.Name(), d.Name)
		}
	}
	return c, nil
}
