package ruleset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ezachrisen/composite"
	"github.com/ezachrisen/composite/cel"
	"github.com/ezachrisen/composite/connective"
	"github.com/ezachrisen/composite/ruleset"
	"github.com/matryer/is"
)

func TestLoadAndFire(t *testing.T) {
	is := is.New(t)

	d, err := ruleset.LoadFile("testdata/eligibility.yaml")
	is.NoErr(err)
	is.Equal(d.Name, "eligibility")
	is.True(d.IsComposite())
	is.Equal(len(d.Rules), 3)

	facts, err := ruleset.LoadFactsFile("testdata/facts.yaml")
	is.NoErr(err)
	is.Equal(facts["country"], "SE")

	r, err := d.Build(facts)
	is.NoErr(err)

	c, ok := r.(*composite.Composite)
	is.True(ok)
	is.Equal(c.LogicalConjunction(), "[adult] && ([resident] || [sponsored])")
	is.Equal(c.Description(), "Applicants who are adults and either live here or have a sponsor")

	fired, err := c.Fire()
	is.NoErr(err)
	is.True(fired)
	is.Equal(facts["approved"], true)
	is.Equal(facts["sponsor_label"], "sponsored by ACME")
}

func TestNested(t *testing.T) {
	is := is.New(t)
	d, err := ruleset.LoadFile("testdata/nested.yaml")
	is.NoErr(err)

	facts := cel.Facts{
		"has_passport": true,
		"has_address":  true,
		"score":        650,
		"cosigner":     "Bob",
		"income":       60000,
	}
	r, err := d.Build(facts)
	is.NoErr(err)
	is.True(r.Evaluate())

	facts["income"] = 10
	is.True(!r.Evaluate())

	facts["score"] = 720
	is.True(r.Evaluate())

	facts["has_address"] = false
	is.True(!r.Evaluate()) // identity uses AND of its children

	c := r.(*composite.Composite)
	is.Equal(c.Tree(), strings.Join([]string{
		"loan",
		"├── identity",
		"│   ├── address",
		"│   └── passport",
		"└── credit",
		"    ├── cosigned",
		"    ├── income",
		"    └── score",
		"",
	}, "\n"))
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		yaml string
		is   error
	}{
		"no name": {yaml: `
when: "true"`},
		"leaf without condition": {yaml: `
name: a`},
		"bad connective": {yaml: `
name: c
connective: "([a]"
rules:
  - {name: a, when: "true"}`, is: connective.ErrFormat},
		"unknown reference": {yaml: `
name: c
connective: "[a] && [b]"
rules:
  - {name: a, when: "true"}`, is: connective.ErrUnknownName},
		"duplicate child": {yaml: `
name: c
rules:
  - {name: a, when: "true"}
  - {name: a, when: "false"}`, is: composite.ErrDuplicateRule},
		"duplicate child, explicit reject": {yaml: `
name: c
on_duplicate: reject
rules:
  - {name: a, when: "true"}
  - {name: a, when: "false"}`, is: composite.ErrDuplicateRule},
		"unknown policy": {yaml: `
name: c
on_duplicate: sometimes
rules:
  - {name: a, when: "true"}`},
		"leaf with connective": {yaml: `
name: a
when: "true"
connective: "[a]"`},
		"composite with condition": {yaml: `
name: c
when: "true"
rules:
  - {name: a, when: "true"}`},
		"half assignment": {yaml: `
name: a
when: "true"
then:
  - set: x`},
		"nested child error": {yaml: `
name: c
rules:
  - name: inner
    rules:
      - {name: x}`},
		"unknown field": {yaml: `
name: a
when: "true"
priorty: 3`},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := ruleset.Load(strings.NewReader(c.yaml))
			is.True(err != nil)
			if c.is != nil {
				is.True(errors.Is(err, c.is))
			}
		})
	}
}

func TestDuplicatePolicyFromYAML(t *testing.T) {
	is := is.New(t)
	d, err := ruleset.Load(strings.NewReader(`
name: c
on_duplicate: ignore
rules:
  - {name: a, when: "true"}
  - {name: a, when: "false"}
`))
	is.NoErr(err)
	r, err := d.Build(nil)
	is.NoErr(err)
	is.Equal(r.(*composite.Composite).Len(), 1)
	is.True(r.Evaluate()) // first one wins
}

func TestReplacePolicyFromYAML(t *testing.T) {
	is := is.New(t)
	d, err := ruleset.Load(strings.NewReader(`
name: c
on_duplicate: replace
rules:
  - {name: a, when: "true"}
  - {name: a, when: "false"}
`))
	is.NoErr(err)
	r, err := d.Build(nil)
	is.NoErr(err)
	is.Equal(r.(*composite.Composite).Len(), 1)
	is.True(!r.Evaluate()) // last one wins
}

func TestBuildCompileError(t *testing.T) {
	is := is.New(t)
	d, err := ruleset.Load(strings.NewReader(`
name: c
rules:
  - {name: a, when: "missing > 1"}
`))
	is.NoErr(err) // CEL is only checked when building
	_, err = d.Build(cel.Facts{})
	is.True(err != nil)
}

type counter struct{ evaluations int }

func (c *counter) ObserveEvaluation(*composite.Result)  { c.evaluations++ }
func (c *counter) ObserveExecution(string, error) {}

func TestCompositeOptions(t *testing.T) {
	is := is.New(t)
	d, err := ruleset.LoadFile("testdata/nested.yaml")
	is.NoErr(err)

	obs := &counter{}
	r, err := d.Build(cel.Facts{"has_passport": true, "has_address": true, "score": 1, "cosigner": "", "income": 1},
		ruleset.WithCompositeOptions(composite.WithObserver(obs)))
	is.NoErr(err)
	is.True(!r.Evaluate())
	is.Equal(obs.evaluations, 3) // loan, identity and credit
}

func TestLoadFactsEmpty(t *testing.T) {
	is := is.New(t)
	facts, err := ruleset.LoadFacts(strings.NewReader(""))
	is.NoErr(err)
	is.Equal(len(facts), 0)
}
