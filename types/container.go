package types

import (
	"strings"
)

// NewContainer creates a container Object over items. Containers are
// mutable in place; get/set/push/pop share the one backing slice.
func NewContainer(items []Value) *Object {
	obj := &Object{members: make(map[string]Value), isList: true}
	obj.items = append([]Value(nil), items...)
	for _, m := range containerMembers(obj) {
		obj.SetOwn(m.Name, m)
	}
	return obj
}

// IsContainer reports whether the object holds items
func (o *Object) IsContainer() bool {
	return o.isList
}

// Len returns the number of items
func (o *Object) Len() int {
	return len(o.items)
}

// Items returns a copy of the items for iteration
func (o *Object) Items() []Value {
	return append([]Value(nil), o.items...)
}

// Item returns the item at a 0-based index
func (o *Object) Item(i int) (Value, error) {
	if i < 0 || i >= len(o.items) {
		return nil, NewError(E_RANGE, "index %d out of range for container of length %d", i, len(o.items))
	}
	return o.items[i], nil
}

// SetItem replaces the item at a 0-based index
func (o *Object) SetItem(i int, v Value) error {
	if i < 0 || i >= len(o.items) {
		return NewError(E_RANGE, "index %d out of range for container of length %d", i, len(o.items))
	}
	o.items[i] = v
	return nil
}

// Push appends v
func (o *Object) Push(v Value) {
	o.items = append(o.items, v)
}

// Pop removes and returns the last item
func (o *Object) Pop() (Value, error) {
	if len(o.items) == 0 {
		return nil, NewError(E_RANGE, "pop from empty container")
	}
	last := o.items[len(o.items)-1]
	o.items = o.items[:len(o.items)-1]
	return last, nil
}

func containerMembers(c *Object) []*NativeMethod {
	return []*NativeMethod{
		{
			Name:  "length",
			Arity: Fixed(0),
			Fn: func(args []Value) (any, error) {
				return c.Len(), nil
			},
		},
		{
			Name:  "get",
			Arity: Fixed(1),
			Fn: func(args []Value) (any, error) {
				i, err := IntArg(args, 0)
				if err != nil {
					return nil, err
				}
				return c.Item(int(i))
			},
		},
		{
			Name:  "set",
			Arity: Fixed(2),
			Fn: func(args []Value) (any, error) {
				i, err := IntArg(args, 0)
				if err != nil {
					return nil, err
				}
				if err := c.SetItem(int(i), Deref(args[1])); err != nil {
					return nil, err
				}
				return c, nil
			},
		},
		{
			Name:  "push",
			Arity: Fixed(1),
			Fn: func(args []Value) (any, error) {
				c.Push(Deref(args[0]))
				return c.Len(), nil
			},
		},
		{
			Name:  "pop",
			Arity: Fixed(0),
			Fn: func(args []Value) (any, error) {
				return c.Pop()
			},
		},
		{
			Name:  "join",
			Arity: Fixed(1),
			Fn: func(args []Value) (any, error) {
				sep, err := StringArg(args, 0)
				if err != nil {
					return nil, err
				}
				parts := make([]string, len(c.items))
				for i, item := range c.items {
					parts[i] = Deref(item).String()
				}
				return strings.Join(parts, sep), nil
			},
		},
	}
}
