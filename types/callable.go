package types

import (
	"fmt"
	"strings"

	"golosina/parser"
)

// Variable is a mutable binding cell. A const Variable's Held value can
// never be replaced, though members of an object it holds stay mutable.
type Variable struct {
	Const bool
	Held  Value
}

// NewVariable creates a binding cell
func NewVariable(v Value, isConst bool) *Variable {
	return &Variable{Const: isConst, Held: v}
}

func (v *Variable) Type() TypeCode {
	return TYPE_VAR
}

func (v *Variable) String() string {
	if v.Held == nil {
		return "null"
	}
	return v.Held.String()
}

// Method is a user-defined method. Body is shared with the AST, never
// copied.
type Method struct {
	Name   string // set from the first binding that names it, for traces
	Params []string
	Body   *parser.BlockStmt
}

func (m *Method) Type() TypeCode {
	return TYPE_METH
}

func (m *Method) String() string {
	return "method(" + strings.Join(m.Params, ", ") + ")"
}

// Arity is the argument-count policy of a NativeMethod
type Arity struct {
	N        int
	Variadic bool
}

// Fixed requires exactly n arguments
func Fixed(n int) Arity {
	return Arity{N: n}
}

// Variadic accepts any number of arguments
var Variadic = Arity{Variadic: true}

func (a Arity) String() string {
	if a.Variadic {
		return "variadic"
	}
	return fmt.Sprintf("%d", a.N)
}

// NativeFunc is a host function behind a NativeMethod. The raw return
// value is converted with FromHost.
type NativeFunc func(args []Value) (any, error)

// NativeMethod wraps a host function plus its arity policy
type NativeMethod struct {
	Name  string
	Arity Arity
	Fn    NativeFunc
}

// NewNative creates a NativeMethod
func NewNative(name string, arity Arity, fn NativeFunc) *NativeMethod {
	return &NativeMethod{Name: name, Arity: arity, Fn: fn}
}

func (n *NativeMethod) Type() TypeCode {
	return TYPE_NATV
}

func (n *NativeMethod) String() string {
	return "native " + n.Name
}

// StringArg extracts a string payload from args[i]
func StringArg(args []Value, i int) (string, error) {
	if i >= len(args) {
		return "", NewError(E_ARGS, "missing argument %d", i+1)
	}
	s, ok := PrimitiveOf(args[i]).(StrValue)
	if !ok {
		return "", NewError(E_TYPE, "argument %d must be a string, got %s", i+1, TypeOf(args[i]))
	}
	return s.val, nil
}

// IntArg extracts an integer payload from args[i]
func IntArg(args []Value, i int) (int64, error) {
	if i >= len(args) {
		return 0, NewError(E_ARGS, "missing argument %d", i+1)
	}
	n, ok := PrimitiveOf(args[i]).(IntValue)
	if !ok {
		return 0, NewError(E_TYPE, "argument %d must be an int, got %s", i+1, TypeOf(args[i]))
	}
	return n.Val, nil
}

// NumberArg extracts an int or float payload from args[i] as float64
func NumberArg(args []Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, NewError(E_ARGS, "missing argument %d", i+1)
	}
	switch p := PrimitiveOf(args[i]).(type) {
	case IntValue:
		return float64(p.Val), nil
	case FloatValue:
		return p.Val, nil
	}
	return 0, NewError(E_TYPE, "argument %d must be a number, got %s", i+1, TypeOf(args[i]))
}

// TypeOf returns the type code of v after unwrapping Variables
func TypeOf(v Value) TypeCode {
	v = Deref(v)
	if v == nil {
		return TYPE_NULL
	}
	return v.Type()
}
