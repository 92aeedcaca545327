package types

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StrValue is the payload of a string ValueObject
type StrValue struct {
	val string
}

// String returns the raw text
func (s StrValue) String() string {
	return s.val
}

// Quoted returns the text as a double-quoted literal
func (s StrValue) Quoted() string {
	return strconv.Quote(s.val)
}

// Type returns the type code for strings
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// Truthy: empty strings are falsy
func (s StrValue) Truthy() bool {
	return len(s.val) > 0
}

// Equal is case-sensitive
func (s StrValue) Equal(other Primitive) bool {
	o, ok := other.(StrValue)
	return ok && s.val == o.val
}

// Value returns the internal string value
func (s StrValue) Value() string {
	return s.val
}

// NewStr creates a string ValueObject with its built-in members bound
func NewStr(s string) *Object {
	obj := newValueObject(StrValue{val: s})
	for _, m := range stringMembers(s) {
		obj.SetOwn(m.Name, m)
	}
	return obj
}

func stringMembers(s string) []*NativeMethod {
	return []*NativeMethod{
		{
			Name:  "length",
			Arity: Fixed(0),
			Fn: func(args []Value) (any, error) {
				return len([]rune(s)), nil
			},
		},
		{
			Name:  "includes",
			Arity: Fixed(1),
			Fn: func(args []Value) (any, error) {
				sub, err := StringArg(args, 0)
				if err != nil {
					return nil, err
				}
				return strings.Contains(s, sub), nil
			},
		},
		{
			Name:  "split",
			Arity: Fixed(1),
			Fn: func(args []Value) (any, error) {
				sep, err := StringArg(args, 0)
				if err != nil {
					return nil, err
				}
				parts := strings.Split(s, sep)
				items := make([]any, len(parts))
				for i, p := range parts {
					items[i] = p
				}
				return items, nil
			},
		},
		{
			Name:  "upper",
			Arity: Fixed(0),
			Fn: func(args []Value) (any, error) {
				return cases.Upper(language.Und).String(s), nil
			},
		},
		{
			Name:  "lower",
			Arity: Fixed(0),
			Fn: func(args []Value) (any, error) {
				return cases.Lower(language.Und).String(s), nil
			},
		},
	}
}
