// Package composite provides a rule built from other rules, combined by a
// logical connective that refers to the rules by name.
//
// A sub-rule is anything that satisfies the Rule interface: it has a unique
// name, a priority used to order it among its siblings, a condition
// (Evaluate) and an action (Execute).
//
// Typical use is as follows:
//
//  1. Create the sub-rules, for example with NewBasicRule or the cel package
//  2. Create a Composite and add the sub-rules to it
//  3. Optionally set a logical connective
//  4. Evaluate the composite, and if it is true, Execute it (or call Fire)
//
// # Logical Connective
//
// Without a connective, a composite is true when all of its sub-rules are
// true. With a connective, the sub-rule results are combined as the
// connective says:
//
//	c := composite.New("eligibility")
//	c.Add(adult, resident, sponsored)
//	c.SetLogicalConjunction("[adult] && ([resident] || [sponsored])")
//
// See the connective package for the grammar and its limitations.
//
// # Failures
//
// Evaluate never returns an error. A malformed connective, a connective
// naming a rule that is not in the composite, or an expression that cannot
// be evaluated all make the composite false. The failure is logged, passed
// to the Observer and available from EvaluateResult.
//
// Execute, on the other hand, returns the first error produced by a
// sub-rule action. Actions that ran before the failure are not undone.
//
// # Ordering
//
// Sub-rules are evaluated and executed in ascending order of priority, then
// name. A lower priority value means a rule runs earlier. The order never
// changes the outcome of a connective, since results are collected by name
// before the connective is evaluated.
//
// # Concurrency
//
// A Composite is not safe for concurrent use. The calling application must
// make sure that rules are not added or removed, and the connective is not
// changed, while the composite is being evaluated or executed.
package composite
