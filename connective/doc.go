// Package connective implements the small language used to combine rule
// results by name.
//
// A connective references rules in square brackets and joins them with
// && and ||, optionally grouping a run of rules with parentheses:
//
//	[myRule] && ([yourRule] || [herRule])
//
// Evaluating a connective happens in three steps:
//
//  1. Validate checks the connective against the supported shape and
//     makes sure all brackets are balanced.
//  2. Substitute replaces each [name] with the literal result of the
//     named rule, producing for example "true && (false || true)".
//  3. Eval computes the value of the substituted boolean expression.
//
// Eval only understands the literals true and false, the operators &&
// and ||, and parentheses. It is a closed grammar: nothing in the input
// is ever executed.
//
// # Grammar Limitation
//
// Validate accepts a flat shape: each [name] may be preceded by a single
// "(" and followed by a single ")". Nested groups such as
//
//	(([a] || [b]) && [c])
//
// are rejected, even though Eval itself can evaluate arbitrarily nested
// parentheses.
package connective
