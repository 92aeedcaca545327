package eval

import (
	"golosina/parser"
	"golosina/types"
)

// The checks below are stateless and run before each runtime operation.
// They only raise; nothing here recovers.

// stringOperators are the binary operators defined on two strings
var stringOperators = map[parser.TokenType]bool{
	parser.TOKEN_PLUS: true,
	parser.TOKEN_EQ:   true,
	parser.TOKEN_NE:   true,
	parser.TOKEN_LT:   true,
	parser.TOKEN_GT:   true,
	parser.TOKEN_LE:   true,
	parser.TOKEN_GE:   true,
}

// CheckValueObject requires v to wrap a primitive and returns its payload
func CheckValueObject(v types.Value, what string) (types.Primitive, error) {
	p := types.PrimitiveOf(v)
	if p == nil {
		return nil, types.NewError(types.E_TYPE, "%s must be a value, got %s", what, types.TypeOf(v))
	}
	return p, nil
}

// CheckBinaryArithmetic validates the operands of a binary operator
func CheckBinaryArithmetic(op parser.TokenType, lhs, rhs types.Value) error {
	lp, err := CheckValueObject(lhs, "left operand of '"+op.String()+"'")
	if err != nil {
		return err
	}
	rp, err := CheckValueObject(rhs, "right operand of '"+op.String()+"'")
	if err != nil {
		return err
	}

	lt, rt := lp.Type(), rp.Type()
	switch {
	case lt == types.TYPE_STR && rt == types.TYPE_STR:
		if !stringOperators[op] {
			return types.NewError(types.E_TYPE, "operator '%s' is not defined on strings", op)
		}
	case lt == types.TYPE_STR || rt == types.TYPE_STR:
		return types.NewError(types.E_TYPE, "cannot apply '%s' to %s and %s", op, lt, rt)
	case lt.IsNumeric() && rt.IsNumeric():
	case lt.IsNumeric() || rt.IsNumeric():
		return types.NewError(types.E_TYPE, "cannot apply '%s' to %s and %s", op, lt, rt)
	default:
		// null and bool only compare for equality
		if op != parser.TOKEN_EQ && op != parser.TOKEN_NE {
			return types.NewError(types.E_TYPE, "operator '%s' is not defined on %s and %s", op, lt, rt)
		}
	}
	return nil
}

// CheckUnaryExpr validates the operand of a prefix or postfix operator
func CheckUnaryExpr(operand types.Value, op parser.TokenType) error {
	p, err := CheckValueObject(operand, "operand of '"+op.String()+"'")
	if err != nil {
		return err
	}
	if op == parser.TOKEN_NOT {
		return nil
	}
	if !p.Type().IsNumeric() {
		return types.NewError(types.E_TYPE, "operator '%s' requires a number, got %s", op, p.Type())
	}
	return nil
}

// CheckMethod requires a Method or NativeMethod
func CheckMethod(v types.Value) (types.Value, error) {
	switch m := types.Deref(v).(type) {
	case *types.Method, *types.NativeMethod:
		return m, nil
	}
	return nil, types.NewError(types.E_NOTCALLABLE, "%s is not callable", types.TypeOf(v))
}

// CheckObject requires an Object, unwrapping a Variable that holds one
func CheckObject(v types.Value) (*types.Object, error) {
	if obj, ok := types.Deref(v).(*types.Object); ok {
		return obj, nil
	}
	return nil, types.NewError(types.E_TYPE, "expected an object, got %s", types.TypeOf(v))
}

// CheckArgLengthMatch requires exactly expected arguments
func CheckArgLengthMatch(given, expected int) error {
	if given != expected {
		return types.NewError(types.E_ARGS, "expected %d argument(s), got %d", expected, given)
	}
	return nil
}

// checkArity applies CheckArgLengthMatch unless the callee is variadic
func checkArity(callee types.Value, given int) error {
	switch m := callee.(type) {
	case *types.Method:
		return CheckArgLengthMatch(given, len(m.Params))
	case *types.NativeMethod:
		if m.Arity.Variadic {
			return nil
		}
		return CheckArgLengthMatch(given, m.Arity.N)
	}
	return nil
}
