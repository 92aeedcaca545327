package types

// TypeCode tags runtime values. Primitive codes double as the payload
// tag of a ValueObject.
type TypeCode int

const (
	TYPE_NULL  TypeCode = 0
	TYPE_BOOL  TypeCode = 1
	TYPE_INT   TypeCode = 2
	TYPE_FLOAT TypeCode = 3
	TYPE_STR   TypeCode = 4
	TYPE_OBJ   TypeCode = 5
	TYPE_LIST  TypeCode = 6
	TYPE_METH  TypeCode = 7
	TYPE_NATV  TypeCode = 8
	TYPE_VAR   TypeCode = 9
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_NULL:
		return "null"
	case TYPE_BOOL:
		return "bool"
	case TYPE_INT:
		return "int"
	case TYPE_FLOAT:
		return "float"
	case TYPE_STR:
		return "string"
	case TYPE_OBJ:
		return "object"
	case TYPE_LIST:
		return "container"
	case TYPE_METH:
		return "method"
	case TYPE_NATV:
		return "native method"
	case TYPE_VAR:
		return "variable"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is int or float
func (t TypeCode) IsNumeric() bool {
	return t == TYPE_INT || t == TYPE_FLOAT
}
