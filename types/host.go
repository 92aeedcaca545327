package types

import (
	"sort"
)

// FromHost converts the raw return value of a native function into a
// runtime value:
//
//	string          -> string ValueObject
//	integer kinds   -> int ValueObject
//	float64/float32 -> int or float ValueObject by exactness
//	bool            -> bool ValueObject
//	[]any, []Value  -> container Object
//	map[string]any  -> plain Object rooted at proto
//	nil             -> null ValueObject
//	Value           -> passed through unchanged
func FromHost(raw any, proto *Object) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return v, nil
	case string:
		return NewStr(v), nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int32:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint8:
		return NewInt(int64(v)), nil
	case uint32:
		return NewInt(int64(v)), nil
	case float32:
		return NewNumber(float64(v)), nil
	case float64:
		return NewNumber(v), nil
	case []Value:
		return NewContainer(v), nil
	case []string:
		items := make([]Value, len(v))
		for i, s := range v {
			items[i] = NewStr(s)
		}
		return NewContainer(items), nil
	case []any:
		items := make([]Value, len(v))
		for i, elem := range v {
			item, err := FromHost(elem, proto)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewContainer(items), nil
	case map[string]any:
		obj := NewObject(proto)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			member, err := FromHost(v[k], proto)
			if err != nil {
				return nil, err
			}
			obj.SetOwn(k, member)
		}
		return obj, nil
	default:
		return nil, NewError(E_HOST, "cannot convert host value of type %T", raw)
	}
}

// ToHost converts a runtime value into plain host data. Plain objects
// flatten their prototype chain, innermost owner winning; methods have
// no host form and are skipped inside objects.
func ToHost(v Value) (any, error) {
	switch val := Deref(v).(type) {
	case nil:
		return nil, nil
	case *Object:
		return objectToHost(val, 0)
	default:
		return nil, NewError(E_TYPE, "%s has no host representation", val.Type())
	}
}

// maxHostDepth bounds conversion of cyclic object graphs
const maxHostDepth = 64

func objectToHost(o *Object, depth int) (any, error) {
	if depth > maxHostDepth {
		return nil, NewError(E_INVARG, "object graph nested deeper than %d", maxHostDepth)
	}
	switch p := o.prim.(type) {
	case NullValue:
		return nil, nil
	case BoolValue:
		return p.Val, nil
	case IntValue:
		return p.Val, nil
	case FloatValue:
		return p.Val, nil
	case StrValue:
		return p.val, nil
	}

	if o.isList {
		out := make([]any, len(o.items))
		for i, item := range o.items {
			h, err := nestedToHost(item, depth)
			if err != nil {
				return nil, err
			}
			out[i] = h
		}
		return out, nil
	}

	out := make(map[string]any)
	chain := o.Chain()
	for i := len(chain) - 1; i >= 0; i-- {
		for _, k := range chain[i].keys {
			member := Deref(chain[i].members[k])
			switch member.(type) {
			case *Method, *NativeMethod:
				delete(out, k)
				continue
			}
			h, err := nestedToHost(member, depth)
			if err != nil {
				return nil, err
			}
			out[k] = h
		}
	}
	return out, nil
}

func nestedToHost(v Value, depth int) (any, error) {
	switch val := Deref(v).(type) {
	case nil:
		return nil, nil
	case *Object:
		return objectToHost(val, depth+1)
	default:
		return nil, NewError(E_TYPE, "%s has no host representation", val.Type())
	}
}
