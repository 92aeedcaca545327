package types

import (
	"strings"
)

// Object is a prototype-chained member table. An Object carrying a
// primitive payload is a ValueObject; one carrying items is a container.
// Objects have reference semantics: cloning links to the prototype and
// never copies it.
type Object struct {
	proto   *Object
	members map[string]Value
	keys    []string // own member names in insertion order
	prim    Primitive
	items   []Value
	isList  bool
}

// NewObject allocates an empty Object delegating to proto. proto is nil
// only for root objects.
func NewObject(proto *Object) *Object {
	return &Object{proto: proto, members: make(map[string]Value)}
}

func newValueObject(p Primitive) *Object {
	return &Object{members: make(map[string]Value), prim: p}
}

// Type reports the payload type for ValueObjects, TYPE_LIST for
// containers and TYPE_OBJ otherwise
func (o *Object) Type() TypeCode {
	switch {
	case o.prim != nil:
		return o.prim.Type()
	case o.isList:
		return TYPE_LIST
	default:
		return TYPE_OBJ
	}
}

// Proto returns the prototype, nil for root objects
func (o *Object) Proto() *Object {
	return o.proto
}

// Primitive returns the payload of a ValueObject, nil otherwise
func (o *Object) Primitive() Primitive {
	return o.prim
}

// IsValueObject reports whether the object wraps a primitive
func (o *Object) IsValueObject() bool {
	return o.prim != nil
}

// Lookup walks the prototype chain outward from o and returns the value
// of the first owner of name
func (o *Object) Lookup(name string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.members[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Owner returns the first object on the chain that owns name
func (o *Object) Owner(name string) *Object {
	for cur := o; cur != nil; cur = cur.proto {
		if _, ok := cur.members[name]; ok {
			return cur
		}
	}
	return nil
}

// HasOwn reports whether name is an own member of o
func (o *Object) HasOwn(name string) bool {
	_, ok := o.members[name]
	return ok
}

// GetOwn returns an own member without consulting the prototype
func (o *Object) GetOwn(name string) (Value, bool) {
	v, ok := o.members[name]
	return v, ok
}

// SetOwn stores name as an own member of o, shadowing any inherited
// member of the same name
func (o *Object) SetOwn(name string, v Value) {
	if _, ok := o.members[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.members[name] = v
}

// Keys returns the own member names in insertion order
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Chain returns o followed by its prototypes, innermost first
func (o *Object) Chain() []*Object {
	var chain []*Object
	for cur := o; cur != nil; cur = cur.proto {
		chain = append(chain, cur)
	}
	return chain
}

// String renders the display form. ValueObjects print their payload,
// containers their items and plain objects their own members.
func (o *Object) String() string {
	return o.render(0)
}

// maxRenderDepth bounds String on self-referencing graphs
const maxRenderDepth = 4

func (o *Object) render(depth int) string {
	if o.prim != nil {
		return o.prim.String()
	}
	if depth > maxRenderDepth {
		return "..."
	}
	if o.isList {
		parts := make([]string, len(o.items))
		for i, item := range o.items {
			parts[i] = renderNested(item, depth+1)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if len(o.keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = k + " = " + renderNested(o.members[k], depth+1)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func renderNested(v Value, depth int) string {
	v = Deref(v)
	if obj, ok := v.(*Object); ok && obj.prim == nil {
		return obj.render(depth)
	}
	return Repr(v)
}
