// Arithmetic expressions of aperture macro modifiers, 4.5.4.
// An expression is a tree of operands: constants, $n variables and operations
// with the Gerber operators + - x /.
package calculator

import (
	"math"
	"strconv"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

type Calculator interface {
	Calc(vars map[int]float64) (float64, error)
}

// Operand is a leaf (constant or variable) or an operation.
type Operand struct {
	variable  int // $n, 0 for constants
	value     float64
	operation *Operation
}

type Operation struct {
	firstOperand  *Operand
	secondOperand *Operand
	operation     OpCode
}

type OpCode int

const (
	Nop OpCode = iota
	Add
	Sub
	Mul
	Div
	Neg
)

func (oc OpCode) String() string {
	switch oc {
	case Add:
		return "+"
	case Sub, Neg:
		return "-"
	case Mul:
		return "x"
	case Div:
		return "/"
	case Nop:
		return "<nop>"
	default:
	}
	return "bad OpCode"
}

func (oc OpCode) precedence() int {
	switch oc {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	case Neg:
		return 3
	}
	return 4
}

// Const returns a constant operand
func Const(v float64) *Operand {
	return &Operand{value: v}
}

// Var returns a reference to the macro variable $n
func Var(n int) *Operand {
	return &Operand{variable: n}
}

func newOperation(a, b *Operand, oc OpCode) *Operand {
	return &Operand{operation: &Operation{a, b, oc}}
}

func Sum(a, b *Operand) *Operand        { return newOperation(a, b, Add) }
func Difference(a, b *Operand) *Operand { return newOperation(a, b, Sub) }
func Product(a, b *Operand) *Operand    { return newOperation(a, b, Mul) }
func Quotient(a, b *Operand) *Operand   { return newOperation(a, b, Div) }
func Negate(a *Operand) *Operand        { return newOperation(a, nil, Neg) }

func (op *Operand) IsVariable() bool {
	return op != nil && op.operation == nil && op.variable != 0
}

func (op *Operand) precedence() int {
	if op.operation == nil {
		return 4
	}
	return op.operation.operation.precedence()
}

// Render returns the Gerber text of the expression, e.g. $1x0.75 or -$5+$3
func (op *Operand) Render() (string, error) {
	if op == nil {
		return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "missing operand")
	}
	if op.operation != nil {
		return op.operation.Render()
	}
	if op.variable != 0 {
		if op.variable < 0 {
			return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "bad variable number %d", op.variable)
		}
		return "$" + strconv.Itoa(op.variable), nil
	}
	if math.IsNaN(op.value) || math.IsInf(op.value, 0) {
		return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "constant %v is not a finite number", op.value)
	}
	return xy.FormatDecimal(op.value), nil
}

func (op *Operation) Render() (string, error) {
	prec := op.operation.precedence()
	if op.operation == Neg {
		s, err := renderChild(op.firstOperand, prec, false)
		if err != nil {
			return "", err
		}
		return "-" + s, nil
	}
	switch op.operation {
	case Add, Sub, Mul, Div:
	default:
		return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "bad opcode %d", op.operation)
	}
	left, err := renderChild(op.firstOperand, prec, false)
	if err != nil {
		return "", err
	}
	// a-(b-c) and a/(b/c) keep their parentheses
	strict := op.operation == Sub || op.operation == Div
	right, err := renderChild(op.secondOperand, prec, strict)
	if err != nil {
		return "", err
	}
	return left + op.operation.String() + right, nil
}

func renderChild(child *Operand, prec int, strict bool) (string, error) {
	s, err := child.Render()
	if err != nil {
		return "", err
	}
	cp := child.precedence()
	if cp < prec || (strict && cp == prec) {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (op *Operand) String() string {
	s, err := op.Render()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// Calc evaluates the expression, vars holds the values of $n
func (op *Operand) Calc(vars map[int]float64) (float64, error) {
	if op == nil {
		return 0, gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "missing operand")
	}
	if op.operation != nil {
		return op.operation.Calc(vars)
	}
	if op.variable != 0 {
		v, ok := vars[op.variable]
		if !ok {
			return 0, gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "variable $%d is not defined", op.variable)
		}
		return v, nil
	}
	return op.value, nil
}

func (op *Operation) Calc(vars map[int]float64) (float64, error) {
	a, err := op.firstOperand.Calc(vars)
	if err != nil {
		return 0, err
	}
	if op.operation == Neg {
		return -a, nil
	}
	b, err := op.secondOperand.Calc(vars)
	if err != nil {
		return 0, err
	}
	switch op.operation {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "division by zero")
		}
		return a / b, nil
	}
	return 0, gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "bad opcode %d", op.operation)
}

// Constant returns the value of an expression which holds no variables
func (op *Operand) Constant() (float64, bool) {
	v, err := op.Calc(nil)
	if err != nil {
		return 0, false
	}
	return v, true
}
