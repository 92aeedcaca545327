package types

import "strconv"

// IntValue is the payload of an integer ValueObject
type IntValue struct {
	Val int64
}

// Type returns the type code for integers
func (i IntValue) Type() TypeCode {
	return TYPE_INT
}

func (i IntValue) String() string {
	return strconv.FormatInt(i.Val, 10)
}

// Equal compares numerically, so 2 == 2.0
func (i IntValue) Equal(other Primitive) bool {
	switch o := other.(type) {
	case IntValue:
		return i.Val == o.Val
	case FloatValue:
		return float64(i.Val) == o.Val
	}
	return false
}

// Truthy: 0 is falsy, all other integers are truthy
func (i IntValue) Truthy() bool {
	return i.Val != 0
}

// NewInt creates an integer ValueObject
func NewInt(val int64) *Object {
	return newValueObject(IntValue{Val: val})
}
