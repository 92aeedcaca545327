package types

import (
	"errors"
	"fmt"

	"golosina/parser"
)

// ErrorKind is the taxonomy an evaluation error belongs to
type ErrorKind int

const (
	EnvironmentError ErrorKind = iota
	RuntimeError
	TypeError
)

func (k ErrorKind) String() string {
	switch k {
	case EnvironmentError:
		return "EnvironmentError"
	case RuntimeError:
		return "RuntimeError"
	case TypeError:
		return "TypeError"
	default:
		return "UnknownError"
	}
}

// ErrorCode identifies a specific evaluation failure
type ErrorCode int

const (
	E_DUPDECL     ErrorCode = iota // name already declared in the current scope
	E_UNRESOLVED                   // name not bound in any scope
	E_CONST                        // assignment to a const binding
	E_TYPE                         // operand types not accepted by the operator
	E_ARGS                         // argument count does not match arity
	E_NOTCALLABLE                  // callee is not a method
	E_MEMBERNF                     // member missing on the whole prototype chain
	E_INVARG                       // operand not usable by a control construct
	E_DIV                          // integer division or modulo by zero
	E_MAXREC                       // call depth limit reached
	E_RANGE                        // container index out of range
	E_HOST                         // native method failed
)

var errorCodeNames = [...]string{
	E_DUPDECL:     "DuplicateDeclaration",
	E_UNRESOLVED:  "UnresolvedSymbol",
	E_CONST:       "ConstReassignment",
	E_TYPE:        "TypeMismatch",
	E_ARGS:        "ArityMismatch",
	E_NOTCALLABLE: "NotCallable",
	E_MEMBERNF:    "MemberNotFound",
	E_INVARG:      "InvalidOperand",
	E_DIV:         "DivisionByZero",
	E_MAXREC:      "CallDepthExceeded",
	E_RANGE:       "IndexOutOfRange",
	E_HOST:        "HostError",
}

func (e ErrorCode) String() string {
	if int(e) >= 0 && int(e) < len(errorCodeNames) {
		return errorCodeNames[e]
	}
	return "UnknownError"
}

// ErrorFromString converts a name like "ConstReassignment" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for i, name := range errorCodeNames {
		if name == s {
			return ErrorCode(i), true
		}
	}
	return 0, false
}

// Kind maps a code to its taxonomy
func (e ErrorCode) Kind() ErrorKind {
	switch e {
	case E_DUPDECL, E_UNRESOLVED, E_CONST:
		return EnvironmentError
	case E_TYPE, E_ARGS, E_NOTCALLABLE:
		return TypeError
	default:
		return RuntimeError
	}
}

// Error is a fatal evaluation error. The evaluator never formats or
// prints these; reporters read the fields.
type Error struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Span    parser.Span // zero when raised outside any node
}

// NewError builds an Error whose kind follows from code
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Kind: code.Kind(), Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Span.Start.Line > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// At attaches a source location unless one is already set
func (e *Error) At(span parser.Span) *Error {
	if e.Span.Start.Line == 0 {
		e.Span = span
	}
	return e
}

// AsError converts any error into an *Error; foreign errors become
// HostError runtime errors
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: RuntimeError, Code: E_HOST, Message: err.Error()}
}

// IsCode reports whether err is an evaluation error with the given code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
