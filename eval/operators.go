package eval

import (
	"math"
	"strings"

	"golosina/parser"
	"golosina/types"
)

// Operators work on unwrapped payloads and re-wrap the result as a new
// ValueObject. Operand types have already passed CheckBinaryArithmetic.

// applyBinary dispatches a binary operator on two payloads
func applyBinary(op parser.TokenType, left, right types.Primitive) (types.Value, error) {
	switch op {
	case parser.TOKEN_EQ:
		return types.NewBool(left.Equal(right)), nil
	case parser.TOKEN_NE:
		return types.NewBool(!left.Equal(right)), nil
	}

	if ls, ok := left.(types.StrValue); ok {
		return applyString(op, ls.Value(), right.(types.StrValue).Value())
	}

	li, lInt := left.(types.IntValue)
	ri, rInt := right.(types.IntValue)
	if lInt && rInt {
		return applyInt(op, li.Val, ri.Val)
	}
	return applyFloat(op, toFloat(left), toFloat(right))
}

func toFloat(p types.Primitive) float64 {
	switch v := p.(type) {
	case types.IntValue:
		return float64(v.Val)
	case types.FloatValue:
		return v.Val
	}
	return math.NaN()
}

// applyString implements concatenation and lexicographic comparison
func applyString(op parser.TokenType, l, r string) (types.Value, error) {
	switch op {
	case parser.TOKEN_PLUS:
		return types.NewStr(l + r), nil
	case parser.TOKEN_LT:
		return types.NewBool(strings.Compare(l, r) < 0), nil
	case parser.TOKEN_GT:
		return types.NewBool(strings.Compare(l, r) > 0), nil
	case parser.TOKEN_LE:
		return types.NewBool(strings.Compare(l, r) <= 0), nil
	case parser.TOKEN_GE:
		return types.NewBool(strings.Compare(l, r) >= 0), nil
	}
	return nil, types.NewError(types.E_TYPE, "operator '%s' is not defined on strings", op)
}

// applyInt keeps int results except for inexact division
func applyInt(op parser.TokenType, l, r int64) (types.Value, error) {
	switch op {
	case parser.TOKEN_PLUS:
		return types.NewInt(l + r), nil
	case parser.TOKEN_MINUS:
		return types.NewInt(l - r), nil
	case parser.TOKEN_STAR:
		return types.NewInt(l * r), nil
	case parser.TOKEN_SLASH:
		if r == 0 {
			return nil, types.NewError(types.E_DIV, "division by zero")
		}
		if l%r == 0 {
			return types.NewInt(l / r), nil
		}
		return types.NewFloat(float64(l) / float64(r)), nil
	case parser.TOKEN_PERCENT:
		if r == 0 {
			return nil, types.NewError(types.E_DIV, "modulo by zero")
		}
		return types.NewInt(l % r), nil

	case parser.TOKEN_LT:
		return types.NewBool(l < r), nil
	case parser.TOKEN_GT:
		return types.NewBool(l > r), nil
	case parser.TOKEN_LE:
		return types.NewBool(l <= r), nil
	case parser.TOKEN_GE:
		return types.NewBool(l >= r), nil

	case parser.TOKEN_BITAND:
		return types.NewInt(l & r), nil
	case parser.TOKEN_BITOR:
		return types.NewInt(l | r), nil
	case parser.TOKEN_LSHIFT:
		if r < 0 {
			return nil, types.NewError(types.E_INVARG, "negative shift count %d", r)
		}
		return types.NewInt(l << uint64(r)), nil
	case parser.TOKEN_RSHIFT:
		if r < 0 {
			return nil, types.NewError(types.E_INVARG, "negative shift count %d", r)
		}
		return types.NewInt(l >> uint64(r)), nil
	}
	return nil, types.NewError(types.E_TYPE, "operator '%s' is not defined on int", op)
}

// applyFloat handles any operation with at least one float operand
func applyFloat(op parser.TokenType, l, r float64) (types.Value, error) {
	switch op {
	case parser.TOKEN_PLUS:
		return types.NewFloat(l + r), nil
	case parser.TOKEN_MINUS:
		return types.NewFloat(l - r), nil
	case parser.TOKEN_STAR:
		return types.NewFloat(l * r), nil
	case parser.TOKEN_SLASH:
		if r == 0 {
			return nil, types.NewError(types.E_DIV, "division by zero")
		}
		return types.NewFloat(l / r), nil
	case parser.TOKEN_PERCENT:
		if r == 0 {
			return nil, types.NewError(types.E_DIV, "modulo by zero")
		}
		return types.NewFloat(math.Mod(l, r)), nil

	case parser.TOKEN_LT:
		return types.NewBool(l < r), nil
	case parser.TOKEN_GT:
		return types.NewBool(l > r), nil
	case parser.TOKEN_LE:
		return types.NewBool(l <= r), nil
	case parser.TOKEN_GE:
		return types.NewBool(l >= r), nil
	}
	return nil, types.NewError(types.E_TYPE, "operator '%s' requires int operands", op)
}

// applyUnary implements the prefix operators ! + -
func applyUnary(op parser.TokenType, p types.Primitive) (types.Value, error) {
	switch op {
	case parser.TOKEN_NOT:
		return types.NewBool(!p.Truthy()), nil
	case parser.TOKEN_PLUS:
		return rewrap(p), nil
	case parser.TOKEN_MINUS:
		switch v := p.(type) {
		case types.IntValue:
			return types.NewInt(-v.Val), nil
		case types.FloatValue:
			return types.NewFloat(-v.Val), nil
		}
	}
	return nil, types.NewError(types.E_TYPE, "operator '%s' is not defined on %s", op, p.Type())
}

// step adds delta to a numeric payload, for ++ and --
func step(p types.Primitive, delta int64) types.Value {
	switch v := p.(type) {
	case types.IntValue:
		return types.NewInt(v.Val + delta)
	case types.FloatValue:
		return types.NewFloat(v.Val + float64(delta))
	}
	return types.NewNull()
}

// rewrap creates a fresh ValueObject with the same payload, so the
// result never aliases a live binding
func rewrap(p types.Primitive) types.Value {
	switch v := p.(type) {
	case types.NullValue:
		return types.NewNull()
	case types.BoolValue:
		return types.NewBool(v.Val)
	case types.IntValue:
		return types.NewInt(v.Val)
	case types.FloatValue:
		return types.NewFloat(v.Val)
	case types.StrValue:
		return types.NewStr(v.Value())
	}
	return types.NewNull()
}
