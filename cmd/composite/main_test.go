package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/ezachrisen/composite/connective"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	out, err := run("validate", "[a] && ([b] || [a])")
	is.NoErr(err)
	is.Equal(out, "valid\nrules: a, b\n")

	_, err = run("validate", "[a] &&")
	is.True(errors.Is(err, connective.ErrFormat))

	_, err = run("validate")
	is.True(err != nil) // missing argument
}

func TestEval(t *testing.T) {
	is := is.New(t)

	out, err := run("eval",
		"--rules", "../../ruleset/testdata/eligibility.yaml",
		"--facts", "../../ruleset/testdata/facts.yaml",
		"--fire", "--metrics")
	is.NoErr(err)

	is.True(strings.Contains(out, "eligibility\n├── adult"))
	is.True(strings.Contains(out, "COMPOSITE RESULT: eligibility PASS"))
	is.True(strings.Contains(out, "facts after execution:"))
	is.True(strings.Contains(out, "approved: true"))
	is.True(strings.Contains(out, "sponsor_label: sponsored by ACME"))
	is.True(strings.Contains(out, `composite_evaluations_total{reason="pass",rule="eligibility"} 1`))
	is.True(strings.Contains(out, `composite_executions_total{rule="adult",status="ok"} 1`))
}

func TestEvalFailDoesNotFire(t *testing.T) {
	is := is.New(t)

	facts := filepath.Join(t.TempDir(), "facts.yaml")
	is.NoErr(os.WriteFile(facts, []byte("age: 12\ncountry: SE\nsponsor: ACME\n"), 0o600))

	out, err := run("eval",
		"--rules", "../../ruleset/testdata/eligibility.yaml",
		"--facts", facts,
		"--fire", "--metrics")
	is.NoErr(err)
	is.True(strings.Contains(out, "COMPOSITE RESULT: eligibility FAIL"))
	is.True(!strings.Contains(out, "facts after execution:"))
	is.True(strings.Contains(out, `composite_evaluations_total{reason="fail",rule="eligibility"} 1`))
	is.True(!strings.Contains(out, "composite_executions_total"))
}

func TestEvalMissingRules(t *testing.T) {
	is := is.New(t)
	_, err := run("eval")
	is.True(err != nil)

	_, err = run("eval", "--rules", "does-not-exist.yaml")
	is.True(err != nil)
}
