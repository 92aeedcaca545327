package types

import "testing"

func TestPrototypeLookup(t *testing.T) {
	root := NewObject(nil)
	p := NewObject(root)
	p.SetOwn("x", NewInt(1))
	c := NewObject(p)
	c.SetOwn("y", NewInt(2))

	tests := []struct {
		name     string
		expected int64
		owner    *Object
	}{
		{"x", 1, p},
		{"y", 2, c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := c.Lookup(tt.name)
			if !ok {
				t.Fatalf("member %s not found", tt.name)
			}
			if got := PrimitiveOf(v).(IntValue).Val; got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
			if c.Owner(tt.name) != tt.owner {
				t.Errorf("wrong owner for %s", tt.name)
			}
		})
	}

	if _, ok := c.Lookup("z"); ok {
		t.Errorf("z should not resolve")
	}
	if c.Owner("z") != nil {
		t.Errorf("z should have no owner")
	}
}

func TestSetOwnShadowsPrototype(t *testing.T) {
	p := NewObject(nil)
	p.SetOwn("x", NewInt(1))
	c := NewObject(p)

	c.SetOwn("x", NewInt(5))

	pv, _ := p.Lookup("x")
	cv, _ := c.Lookup("x")
	if !Equal(pv, NewInt(1)) {
		t.Errorf("prototype mutated: p.x = %s", pv)
	}
	if !Equal(cv, NewInt(5)) {
		t.Errorf("expected c.x = 5, got %s", cv)
	}
	if c.Proto() != p {
		t.Errorf("clone must link, not copy, its prototype")
	}
}

func TestKeysKeepInsertionOrder(t *testing.T) {
	o := NewObject(nil)
	for _, k := range []string{"b", "a", "c", "a"} {
		o.SetOwn(k, NewNull())
	}

	keys := o.Keys()
	expected := []string{"b", "a", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, keys)
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("key %d: expected %s, got %s", i, expected[i], keys[i])
		}
	}
}

func TestObjectTypeCodes(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected TypeCode
	}{
		{"null", NewNull(), TYPE_NULL},
		{"bool", NewBool(true), TYPE_BOOL},
		{"int", NewInt(1), TYPE_INT},
		{"float", NewFloat(1.5), TYPE_FLOAT},
		{"string", NewStr("s"), TYPE_STR},
		{"object", NewObject(nil), TYPE_OBJ},
		{"container", NewContainer(nil), TYPE_LIST},
		{"method", &Method{}, TYPE_METH},
		{"native", NewNative("f", Variadic, nil), TYPE_NATV},
		{"variable", NewVariable(NewInt(1), false), TYPE_VAR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Type(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	if TypeOf(NewVariable(NewStr("x"), true)) != TYPE_STR {
		t.Errorf("TypeOf must unwrap variables")
	}
}

func TestObjectString(t *testing.T) {
	o := NewObject(nil)
	o.SetOwn("x", NewInt(1))
	o.SetOwn("name", NewStr("p"))

	if got := o.String(); got != `{ x = 1, name = "p" }` {
		t.Errorf("unexpected display %s", got)
	}

	self := NewObject(nil)
	self.SetOwn("me", self)
	_ = self.String() // must terminate
}

func TestEqual(t *testing.T) {
	o := NewObject(nil)

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"int int", NewInt(2), NewInt(2), true},
		{"int float", NewInt(2), NewFloat(2.0), true},
		{"str str", NewStr("a"), NewStr("a"), true},
		{"str case", NewStr("a"), NewStr("A"), false},
		{"null null", NewNull(), NewNull(), true},
		{"bool bool", NewBool(true), NewBool(false), false},
		{"str int", NewStr("1"), NewInt(1), false},
		{"same object", o, o, true},
		{"distinct objects", NewObject(nil), NewObject(nil), false},
		{"object vs int", o, NewInt(0), false},
		{"through variable", NewVariable(NewInt(3), false), NewInt(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal = %v, want %v", got, tt.expected)
			}
		})
	}
}
