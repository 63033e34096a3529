package connective

// Expr is a parsed boolean expression.
type Expr interface {
	Eval() bool
	String() string
}

// Literal is true or false.
type Literal struct {
	Val bool
}

// Eval returns the literal's value.
func (l Literal) Eval() bool { return l.Val }

func (l Literal) String() string {
	if l.Val {
		return "true"
	}
	return "false"
}

// Op is a binary boolean operator.
type Op int

const (
	_ Op = iota
	OpAnd
	OpOr
)

// String returns the operator as written in an expression.
func (op Op) String() string {
	switch op {
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// Binary combines two expressions with && or ||.
// Both sides are always evaluated; there are no side effects to skip.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

// Eval evaluates both operands and combines them with Op.
func (b Binary) Eval() bool {
	l, r := b.Left.Eval(), b.Right.Eval()
	if b.Op == OpAnd {
		return l && r
	}
	return l || r
}

// String returns the expression fully parenthesized, which makes the
// precedence applied by the parser visible.
func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}
