// Package arith evaluates restricted arithmetic expressions: numbers, the
// operators + - * /, parentheses, unary signs and the constants pi, e and tau.
// It has no variables, functions or assignment, so it is safe to run on
// untrusted chat input.
package arith

import (
	"fmt"
	"math"
)

// maxDepth bounds parenthesis and unary-sign nesting.
const maxDepth = 256

// Eval evaluates expr.
//
// Postcondition: Returns a finite value or a *SyntaxError pointing at the
// offending character of expr.
func Eval(expr string) (float64, error) {
	toks, err := lex(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{input: expr, toks: toks}
	if p.peek().kind == tokEOF {
		return 0, p.errorf(p.peek(), "empty expression")
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return 0, p.errorf(t, "unmatched ')'")
		}
		return 0, p.errorf(t, "unexpected %q", t.text)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &SyntaxError{Input: expr, Offset: 0, Msg: "result is not a finite number"}
	}
	return v, nil
}

type parser struct {
	input string
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) *SyntaxError {
	return &SyntaxError{Input: p.input, Offset: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op.kind != tokPlus && op.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op.kind == tokPlus {
			left += right
		} else {
			left -= right
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peek()
		if op.kind != tokStar && op.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op.kind == tokStar {
			left *= right
			continue
		}
		if right == 0 {
			e := p.errorf(op, "division by zero")
			e.Err = ErrDivisionByZero
			return 0, e
		}
		left /= right
	}
}

// unary := ('-' | '+') unary | primary
func (p *parser) unary() (float64, error) {
	t := p.peek()
	if t.kind != tokMinus && t.kind != tokPlus {
		return p.primary()
	}
	if err := p.enter(t); err != nil {
		return 0, err
	}
	defer p.leave()
	p.next()
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	if t.kind == tokMinus {
		return -v, nil
	}
	return v, nil
}

// primary := number | constant | '(' expr ')'
func (p *parser) primary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.value, nil
	case tokLParen:
		if err := p.enter(t); err != nil {
			return 0, err
		}
		defer p.leave()
		if p.peek().kind == tokRParen {
			return 0, p.errorf(p.peek(), "empty parentheses")
		}
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			if closing.kind == tokEOF {
				return 0, p.errorf(t, "unclosed '('")
			}
			return 0, p.errorf(closing, "expected ')' but found %q", closing.text)
		}
		return v, nil
	case tokEOF:
		return 0, p.errorf(t, "unexpected end of expression")
	default:
		return 0, p.errorf(t, "unexpected %q", t.text)
	}
}

func (p *parser) enter(t token) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(t, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }
