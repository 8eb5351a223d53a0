package expr

import "fmt"

// FuncName A function of the ffmpeg expression evaluator. Every function has a fixed arity
type FuncName uint8

const (
	FuncBetween FuncName = iota
	FuncIf
	FuncIfNot
	FuncLt
	FuncGt
	FuncEq
	FuncGte
	FuncLte
	FuncClip
	FuncAbs
	FuncMin
	FuncMax
	FuncMod
	FuncNot
)

type funcInfo struct {
	name  string
	arity int
}

var funcTable = [...]funcInfo{
	FuncBetween: {"between", 3},
	FuncIf:      {"if", 3},
	FuncIfNot:   {"ifnot", 3},
	FuncLt:      {"lt", 2},
	FuncGt:      {"gt", 2},
	FuncEq:      {"eq", 2},
	FuncGte:     {"gte", 2},
	FuncLte:     {"lte", 2},
	FuncClip:    {"clip", 3},
	FuncAbs:     {"abs", 1},
	FuncMin:     {"min", 2},
	FuncMax:     {"max", 2},
	FuncMod:     {"mod", 2},
	FuncNot:     {"not", 1},
}

// Arity Number of arguments the function accepts
func (f FuncName) Arity() int {
	if int(f) < len(funcTable) {
		return funcTable[f].arity
	}
	return -1
}

func (f FuncName) String() string {
	if int(f) < len(funcTable) {
		return funcTable[f].name
	}
	return fmt.Sprintf("FuncName(%d)", uint8(f))
}

// ParseFuncName Return the function called name in expressions
func ParseFuncName(name string) (FuncName, error) {
	for i, info := range funcTable {
		if info.name == name {
			return FuncName(i), nil
		}
	}
	return 0, fmt.Errorf("unknown function: '%s'", name)
}

// ArityMismatchError A function was given a wrong number of arguments
type ArityMismatchError struct {
	Func     string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("function '%s' expects %d arguments, got %d", e.Func, e.Expected, e.Got)
}

// Func Build a function call, checking the number of args against the function arity
func Func(name FuncName, args ...Expr) (Expr, error) {
	if expected := name.Arity(); len(args) != expected {
		return Expr{}, &ArityMismatchError{Func: name.String(), Expected: expected, Got: len(args)}
	}
	return call(name, args...), nil
}

// The constructors below get their arity right by signature, no check needed

// Between between(x,min,max), 1 if min <= x <= max
func Between(x, min, max Expr) Expr { return call(FuncBetween, x, min, max) }

// If if(cond,then,else)
func If(cond, then, otherwise Expr) Expr { return call(FuncIf, cond, then, otherwise) }

// IfNot ifnot(cond,then,else)
func IfNot(cond, then, otherwise Expr) Expr { return call(FuncIfNot, cond, then, otherwise) }

func Lt(a, b Expr) Expr  { return call(FuncLt, a, b) }
func Gt(a, b Expr) Expr  { return call(FuncGt, a, b) }
func Eq(a, b Expr) Expr  { return call(FuncEq, a, b) }
func Gte(a, b Expr) Expr { return call(FuncGte, a, b) }
func Lte(a, b Expr) Expr { return call(FuncLte, a, b) }

// Clip clip(x,min,max)
func Clip(x, min, max Expr) Expr { return call(FuncClip, x, min, max) }

func Abs(x Expr) Expr    { return call(FuncAbs, x) }
func Min(a, b Expr) Expr { return call(FuncMin, a, b) }
func Max(a, b Expr) Expr { return call(FuncMax, a, b) }
func Mod(a, b Expr) Expr { return call(FuncMod, a, b) }

// Not not(x), the evaluator's logical negation. Not to be confused with Expr.Neg
func Not(x Expr) Expr { return call(FuncNot, x) }

func call(name FuncName, args ...Expr) Expr {
	// Copy so that the caller's slice can't alias the node's children
	return Expr{kind: funcKind, fn: name, args: append([]Expr(nil), args...)}
}
