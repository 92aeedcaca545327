package eval

import (
	"testing"

	"golosina/parser"
	"golosina/types"
)

func TestCheckBinaryArithmetic(t *testing.T) {
	obj := types.NewObject(nil)
	tests := []struct {
		name     string
		op       parser.TokenType
		lhs, rhs types.Value
		code     types.ErrorCode
		ok       bool
	}{
		{"string concat", parser.TOKEN_PLUS, types.NewStr("a"), types.NewStr("b"), 0, true},
		{"string compare", parser.TOKEN_LT, types.NewStr("a"), types.NewStr("b"), 0, true},
		{"string minus", parser.TOKEN_MINUS, types.NewStr("a"), types.NewStr("b"), types.E_TYPE, false},
		{"int plus string", parser.TOKEN_PLUS, types.NewInt(1), types.NewStr("a"), types.E_TYPE, false},
		{"int plus float", parser.TOKEN_PLUS, types.NewInt(1), types.NewFloat(2), 0, true},
		{"int plus bool", parser.TOKEN_PLUS, types.NewInt(1), types.NewBool(true), types.E_TYPE, false},
		{"null equality", parser.TOKEN_EQ, types.NewNull(), types.NewNull(), 0, true},
		{"bool less", parser.TOKEN_LT, types.NewBool(true), types.NewBool(false), types.E_TYPE, false},
		{"plain object", parser.TOKEN_EQ, obj, obj, types.E_TYPE, false},
		{"variable unwrapped", parser.TOKEN_STAR, types.NewVariable(types.NewInt(2), false), types.NewInt(3), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBinaryArithmetic(tt.op, tt.lhs, tt.rhs)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !types.IsCode(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
			if e := types.AsError(err); e.Kind != types.TypeError {
				t.Errorf("kind = %s, want TypeError", e.Kind)
			}
		})
	}
}

func TestCheckUnaryExpr(t *testing.T) {
	tests := []struct {
		name    string
		op      parser.TokenType
		operand types.Value
		ok      bool
	}{
		{"not string", parser.TOKEN_NOT, types.NewStr(""), true},
		{"not null", parser.TOKEN_NOT, types.NewNull(), true},
		{"negate float", parser.TOKEN_MINUS, types.NewFloat(1.5), true},
		{"increment int", parser.TOKEN_INC, types.NewInt(1), true},
		{"negate string", parser.TOKEN_MINUS, types.NewStr("a"), false},
		{"increment bool", parser.TOKEN_INC, types.NewBool(true), false},
		{"not object", parser.TOKEN_NOT, types.NewObject(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUnaryExpr(tt.operand, tt.op)
			if (err == nil) != tt.ok {
				t.Errorf("CheckUnaryExpr(%s) error = %v, ok want %v", tt.op, err, tt.ok)
			}
		})
	}
}

func TestCheckCallables(t *testing.T) {
	m := &types.Method{Params: []string{"a", "b"}}
	native := types.NewNative("f", types.Fixed(1), nil)
	variadic := types.NewNative("v", types.Variadic, nil)

	if _, err := CheckMethod(types.NewVariable(m, true)); err != nil {
		t.Errorf("CheckMethod(method in variable): %v", err)
	}
	if _, err := CheckMethod(types.NewInt(1)); !types.IsCode(err, types.E_NOTCALLABLE) {
		t.Errorf("CheckMethod(int): got %v, want NotCallable", err)
	}

	if err := checkArity(m, 1); !types.IsCode(err, types.E_ARGS) {
		t.Errorf("method arity: got %v, want ArityMismatch", err)
	}
	if err := checkArity(native, 1); err != nil {
		t.Errorf("fixed native arity: %v", err)
	}
	if err := checkArity(native, 2); !types.IsCode(err, types.E_ARGS) {
		t.Errorf("fixed native with 2 args: got %v, want ArityMismatch", err)
	}
	if err := checkArity(variadic, 7); err != nil {
		t.Errorf("variadic native: %v", err)
	}

	obj := types.NewObject(nil)
	if got, err := CheckObject(types.NewVariable(obj, false)); err != nil || got != obj {
		t.Errorf("CheckObject did not unwrap the variable: %v", err)
	}
	if _, err := CheckObject(m); !types.IsCode(err, types.E_TYPE) {
		t.Errorf("CheckObject(method): got %v, want TypeMismatch", err)
	}
}
