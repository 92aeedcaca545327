package builtins

import (
	"github.com/oarkflow/json"

	"golosina/types"
)

// ============================================================================
// JSON MODULE
// ============================================================================

func (r *Registry) jsonModule() *types.Object {
	return r.newModule(
		types.NewNative("encode", types.Fixed(1), builtinJSONEncode),
		types.NewNative("decode", types.Fixed(1), r.builtinJSONDecode),
	)
}

// builtinJSONEncode converts a value to JSON text. Plain objects encode
// their whole prototype chain; method members are left out.
// encode(value) -> str
func builtinJSONEncode(args []types.Value) (any, error) {
	host, err := types.ToHost(args[0])
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(host)
	if err != nil {
		return nil, types.NewError(types.E_INVARG, "json encode: %v", err)
	}
	return string(data), nil
}

// builtinJSONDecode parses JSON text. Objects become plain objects
// rooted at Object, arrays become containers.
// decode(text) -> value
func (r *Registry) builtinJSONDecode(args []types.Value) (any, error) {
	text, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, types.NewError(types.E_INVARG, "json decode: %v", err)
	}
	return types.FromHost(raw, r.root)
}
