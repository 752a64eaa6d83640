package calculator

import (
	"strconv"
	"strings"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

// Parse builds an expression from its Gerber text, e.g. "$1x0.75" or "(-$2+1)/2".
// Both x and X are accepted as multiplication.
func Parse(str string) (*Operand, error) {
	p := &parser{src: strings.TrimSpace(str)}
	if len(p.src) == 0 {
		return nil, p.fail("empty expression")
	}
	op, err := p.sum()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, p.fail("unexpected symbol")
	}
	return op, nil
}

// MustParse is like Parse but panics on error. For static macro definitions.
func MustParse(str string) *Operand {
	op, err := Parse(str)
	if err != nil {
		panic("calculator: " + err.Error())
	}
	return op
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(msg string) error {
	return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter,
		"unable to parse %q at %d: %s", p.src, p.pos, msg)
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos == len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) sum() (*Operand, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		var oc OpCode
		switch p.peek() {
		case '+':
			oc = Add
		case '-':
			oc = Sub
		default:
			return left, nil
		}
		p.pos++
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = newOperation(left, right, oc)
	}
}

func (p *parser) product() (*Operand, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var oc OpCode
		switch p.peek() {
		case 'x', 'X':
			oc = Mul
		case '/':
			oc = Div
		default:
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = newOperation(left, right, oc)
	}
}

func (p *parser) unary() (*Operand, error) {
	switch p.peek() {
	case '-':
		p.pos++
		op, err := p.unary()
		if err != nil {
			return nil, err
		}
		// fold negative literals
		if op.operation == nil && op.variable == 0 {
			return Const(-op.value), nil
		}
		return Negate(op), nil
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

func (p *parser) primary() (*Operand, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		op, err := p.sum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.fail("missing )")
		}
		p.pos++
		return op, nil
	case c == '$':
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil || n < 1 {
			return nil, p.fail("bad variable")
		}
		return Var(n), nil
	case isDigit(c) || c == '.':
		start := p.pos
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, p.fail("bad number")
		}
		return Const(v), nil
	}
	return nil, p.fail("operand expected")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
