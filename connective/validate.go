package connective

import "regexp"

// clause is a rule name in square brackets, with an optional single
// parenthesis on either side.
const clause = `\(?\[[^\[\]]+\]\)?`

var format = regexp.MustCompile(`^` + clause + `( (&&|\|\|) ` + clause + `)*$`)

// Validate checks that the connective has a supported format.
// An empty connective is valid; it means all rules must be true.
//
// Valid examples:
//
//	[myRule] && ([yourRule] || [herRule])
//	[myRule] || [yourRule] || [herRule]
//	([myRule] || [yourRule]) && [herRule]
//
// A connective that matches the format must also have balanced
// brackets, so "([a]" and "[a] && [b])" are rejected.
func Validate(connective string) error {
	if connective == "" {
		return nil
	}
	if !format.MatchString(connective) || !balanced(connective) {
		return &FormatError{Connective: connective}
	}
	return nil
}

var closers = map[rune]rune{
	']': '[',
	')': '(',
	'}': '{',
}

// balanced reports whether all (), [] and {} in s are balanced and
// properly nested.
func balanced(s string) bool {
	stack := []rune{}
	for _, c := range s {
		switch c {
		case '[', '(', '{':
			stack = append(stack, c)
		case ']', ')', '}':
			if len(stack) == 0 || stack[len(stack)-1] != closers[c] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}
