// Package expr :: Expressions of the ffmpeg expression evaluator (timeline editing, drawtext positions,
// volume curves...). Expressions are only rendered as text, they are never evaluated here
package expr

import (
	"math"
	"strconv"
	"strings"
)

type kind uint8

const (
	constKind kind = iota
	varKind
	binaryKind
	unaryKind
	funcKind
)

// BinaryOp An infix operator
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opSymbols = [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^"}

func (op BinaryOp) String() string {
	return opSymbols[op]
}

// precedence class of the operator, higher binds tighter
func (op BinaryOp) precedence() uint8 {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	default:
		return 3
	}
}

// Expr An immutable expression tree node.
// The zero value is the constant 0. Every operation returns a new Expr and leaves its operands untouched
type Expr struct {
	kind     kind
	value    float64
	variable Variable
	op       BinaryOp
	fn       FuncName
	// Binary : [left, right], unary : [operand], func : arguments
	args []Expr
}

// Constant A numeric literal
func Constant(value float64) Expr {
	return Expr{kind: constKind, value: value}
}

// Var A built-in variable
func Var(v Variable) Expr {
	return Expr{kind: varKind, variable: v}
}

// Negate Unary minus
func Negate(operand Expr) Expr {
	return Expr{kind: unaryKind, args: []Expr{operand}}
}

func binary(op BinaryOp, left, right Expr) Expr {
	return Expr{kind: binaryKind, op: op, args: []Expr{left, right}}
}

// Add e+other
func (e Expr) Add(other Expr) Expr { return binary(OpAdd, e, other) }

// Sub e-other
func (e Expr) Sub(other Expr) Expr { return binary(OpSub, e, other) }

// Mul e*other
func (e Expr) Mul(other Expr) Expr { return binary(OpMul, e, other) }

// Div e/other
func (e Expr) Div(other Expr) Expr { return binary(OpDiv, e, other) }

// Pow e^other
func (e Expr) Pow(other Expr) Expr { return binary(OpPow, e, other) }

// Neg -e
func (e Expr) Neg() Expr { return Negate(e) }

// String Render the expression in the ffmpeg evaluator syntax
func (e Expr) String() string {
	ss := strings.Builder{}
	e.write(&ss)
	return ss.String()
}

func (e Expr) write(ss *strings.Builder) {
	switch e.kind {
	case constKind:
		ss.WriteString(formatConstant(e.value))
	case varKind:
		ss.WriteString(e.variable.String())
	case binaryKind:
		e.args[0].writeOperand(ss, e.op)
		ss.WriteString(e.op.String())
		e.args[1].writeOperand(ss, e.op)
	case unaryKind:
		ss.WriteByte('-')
		operand := e.args[0]
		if operand.kind == binaryKind {
			ss.WriteByte('(')
			operand.write(ss)
			ss.WriteByte(')')
		} else {
			operand.write(ss)
		}
	case funcKind:
		ss.WriteString(e.fn.String())
		ss.WriteByte('(')
		for i, arg := range e.args {
			if i > 0 {
				ss.WriteByte(',')
			}
			arg.write(ss)
		}
		ss.WriteByte(')')
	}
}

// Only a strictly looser child needs parentheses. Equal classes render left-associatively as is
func (e Expr) writeOperand(ss *strings.Builder, parent BinaryOp) {
	if e.kind == binaryKind && e.op.precedence() < parent.precedence() {
		ss.WriteByte('(')
		e.write(ss)
		ss.WriteByte(')')
		return
	}
	e.write(ss)
}

// Whole numbers render without decimals, others with the fewest digits that round-trip.
// NaN and infinities have no spelling in the evaluator grammar and render as 0
func formatConstant(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
