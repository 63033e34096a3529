package connective

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokTrue
	tokFalse
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokTrue:
		return "true"
	case tokFalse:
		return "false"
	case tokAnd:
		return "&&"
	case tokOr:
		return "||"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	pos  int
}

// lex splits expr into tokens. Whitespace between tokens is ignored.
func lex(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		switch c := expr[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, i})
			i++
		case strings.HasPrefix(expr[i:], "&&"):
			toks = append(toks, token{tokAnd, i})
			i += 2
		case strings.HasPrefix(expr[i:], "||"):
			toks = append(toks, token{tokOr, i})
			i += 2
		case strings.HasPrefix(expr[i:], "true"):
			toks = append(toks, token{tokTrue, i})
			i += 4
		case strings.HasPrefix(expr[i:], "false"):
			toks = append(toks, token{tokFalse, i})
			i += 5
		default:
			return nil, &EvalError{Expr: expr, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return append(toks, token{tokEOF, len(expr)}), nil
}

// parser is a recursive descent parser for the grammar
//
//	or      := and ("||" and)*
//	and     := primary ("&&" primary)*
//	primary := "true" | "false" | "(" or ")"
type parser struct {
	expr string
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &EvalError{Expr: p.expr, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokTrue:
		return Literal{Val: true}, nil
	case tokFalse:
		return Literal{Val: false}, nil
	case tokLParen:
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, p.errorf(c, "expected ) to close ( at offset %d, got %s", t.pos, c.kind)
		}
		return e, nil
	default:
		return nil, p.errorf(t, "expected true, false or (, got %s", t.kind)
	}
}

// Parse parses a boolean expression made of true, false, &&, || and
// parentheses. && binds tighter than ||.
func Parse(expr string) (Expr, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{expr: expr, toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t.kind)
	}
	return e, nil
}

// Eval parses and evaluates a boolean expression such as
// "true && (false || true)". Malformed input returns an *EvalError.
func Eval(expr string) (bool, error) {
	e, err := Parse(expr)
	if err != nil {
		return false, err
	}
	return e.Eval(), nil
}
