package types

// BoolValue is the payload of a boolean ValueObject
type BoolValue struct {
	Val bool
}

// Type returns the type code for booleans
func (b BoolValue) Type() TypeCode {
	return TYPE_BOOL
}

func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

func (b BoolValue) Equal(other Primitive) bool {
	o, ok := other.(BoolValue)
	return ok && b.Val == o.Val
}

func (b BoolValue) Truthy() bool {
	return b.Val
}

// NewBool creates a boolean ValueObject
func NewBool(val bool) *Object {
	return newValueObject(BoolValue{Val: val})
}

// NullValue is the payload of the null ValueObject
type NullValue struct{}

func (NullValue) Type() TypeCode { return TYPE_NULL }
func (NullValue) String() string { return "null" }
func (NullValue) Truthy() bool   { return false }

func (NullValue) Equal(other Primitive) bool {
	_, ok := other.(NullValue)
	return ok
}

// NewNull creates a null ValueObject
func NewNull() *Object {
	return newValueObject(NullValue{})
}

// IsNull reports whether v is the null ValueObject (or a Go nil)
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := PrimitiveOf(v).(NullValue)
	return ok
}
