package connective

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("invalid logical connective")

	// ErrUnknownName is matched by every *UnknownNameError.
	ErrUnknownName = errors.New("rule name not found")

	// ErrEval is matched by every *EvalError.
	ErrEval = errors.New("invalid boolean expression")
)

// FormatError reports a connective that does not have the supported shape,
// or whose brackets are not balanced.
type FormatError struct {
	Connective string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("logical connective format {%s} is invalid", e.Connective)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// UnknownNameError reports a connective that references a rule name with no
// evaluation result.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("rule named {%s} not found in logical connective", e.Name)
}

func (e *UnknownNameError) Is(target error) bool {
	return target == ErrUnknownName
}

// EvalError reports a boolean expression that could not be evaluated.
// Pos is the byte offset in Expr where the problem was found.
type EvalError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q at offset %d: %s", e.Expr, e.Pos, e.Msg)
}

func (e *EvalError) Is(target error) bool {
	return target == ErrEval
}
