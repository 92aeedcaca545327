package types

import (
	"math"
	"strconv"
	"strings"
)

// FloatValue is the payload of a float ValueObject
type FloatValue struct {
	Val float64
}

// Type returns the type code for floats
func (f FloatValue) Type() TypeCode {
	return TYPE_FLOAT
}

// String keeps a decimal point on whole numbers (3.0 not 3)
func (f FloatValue) String() string {
	if math.IsNaN(f.Val) {
		return "NaN"
	}
	if math.IsInf(f.Val, 1) {
		return "Inf"
	}
	if math.IsInf(f.Val, -1) {
		return "-Inf"
	}
	s := strconv.FormatFloat(f.Val, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal compares numerically; NaN never equals anything
func (f FloatValue) Equal(other Primitive) bool {
	switch o := other.(type) {
	case FloatValue:
		return f.Val == o.Val
	case IntValue:
		return f.Val == float64(o.Val)
	}
	return false
}

// Truthy: 0.0 and NaN are falsy
func (f FloatValue) Truthy() bool {
	return f.Val != 0 && !math.IsNaN(f.Val)
}

// NewFloat creates a float ValueObject
func NewFloat(val float64) *Object {
	return newValueObject(FloatValue{Val: val})
}

// NewNumber wraps a host float as the narrowest numeric ValueObject:
// integral values that fit in int64 become ints
func NewNumber(val float64) *Object {
	if n, ok := exactInt(val); ok {
		return NewInt(n)
	}
	return NewFloat(val)
}

func exactInt(val float64) (int64, bool) {
	if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) {
		return 0, false
	}
	if val < math.MinInt64 || val >= math.MaxInt64 {
		return 0, false
	}
	return int64(val), true
}
