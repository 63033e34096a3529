// Package cel provides a composite.Rule whose condition is written in
// Google's Common Expression Language.
//
// See https://github.com/google/cel-go and https://opensource.google/projects/cel for more information
// about CEL. The expressions you write must conform to the CEL spec: https://github.com/google/cel-spec.
//
// # Facts
//
// Rules read their input from a Facts map shared with the calling
// application. Every key present in the map when the rule is created is
// declared as a CEL variable; use WithVariables to declare facts that
// will only be added later. Variables are dynamically typed, so
//
//	facts := cel.Facts{"age": 21}
//	adult, err := cel.NewRule("adult", `age >= 18`, facts)
//
// can be evaluated again after the application changes facts["age"].
//
// # Actions
//
// A rule's action is a list of steps run in the order they are declared.
// WithAssignment adds a step that evaluates a CEL expression and stores
// the value in the facts, and WithAction adds a Go function.
//
//	cel.NewRule("adult", `age >= 18`, facts,
//	    cel.WithAssignment("discount", `age >= 65 ? 0.2 : 0.0`))
//
// The CEL string extensions (https://github.com/google/cel-go/tree/master/ext#strings)
// are available in all expressions.
package cel
