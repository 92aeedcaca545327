package types

// Value is the interface every runtime value implements: Variable,
// Object (ValueObjects and containers included), Method and NativeMethod
type Value interface {
	Type() TypeCode
	String() string // display form, as printed by fmt.print
}

// Primitive is the host payload carried by a ValueObject
type Primitive interface {
	Type() TypeCode
	String() string
	Equal(Primitive) bool
	Truthy() bool
}

// Deref unwraps a Variable to the value it holds
func Deref(v Value) Value {
	for {
		vr, ok := v.(*Variable)
		if !ok {
			return v
		}
		v = vr.Held
	}
}

// PrimitiveOf returns the payload of a ValueObject, or nil when v is
// not one
func PrimitiveOf(v Value) Primitive {
	if obj, ok := Deref(v).(*Object); ok {
		return obj.prim
	}
	return nil
}

// Repr renders v the way a REPL echoes it: strings quoted, everything
// else in display form
func Repr(v Value) string {
	if s, ok := PrimitiveOf(v).(StrValue); ok {
		return s.Quoted()
	}
	d := Deref(v)
	if d == nil {
		return "null"
	}
	return d.String()
}

// Equal is lenient equality: ValueObjects compare payloads (numeric
// across int and float), everything else compares identity. Mismatched
// kinds are simply unequal.
func Equal(a, b Value) bool {
	a, b = Deref(a), Deref(b)
	pa, pb := PrimitiveOf(a), PrimitiveOf(b)
	if pa != nil || pb != nil {
		return pa != nil && pb != nil && pa.Equal(pb)
	}
	return a == b
}
