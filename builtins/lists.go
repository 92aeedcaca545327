package builtins

import (
	"golosina/types"
)

// maxRangeLen bounds containers.range
const maxRangeLen = 1 << 20

// ============================================================================
// CONTAINERS MODULE
// ============================================================================

func (r *Registry) containersModule() *types.Object {
	return r.newModule(
		types.NewNative("list", types.Variadic, builtinList),
		types.NewNative("range", types.Fixed(2), builtinRange),
	)
}

// builtinList creates a container holding its arguments
// list(...) -> container
func builtinList(args []types.Value) (any, error) {
	items := make([]types.Value, len(args))
	for i, arg := range args {
		items[i] = types.Deref(arg)
	}
	return items, nil
}

// builtinRange creates a container of the ints start..end-1. An empty
// container results when end <= start.
// range(start, end) -> container
func builtinRange(args []types.Value) (any, error) {
	start, err := types.IntArg(args, 0)
	if err != nil {
		return nil, err
	}
	end, err := types.IntArg(args, 1)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return []types.Value{}, nil
	}
	if end-start > maxRangeLen {
		return nil, types.NewError(types.E_INVARG, "range of %d items exceeds limit %d", end-start, maxRangeLen)
	}

	items := make([]types.Value, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, types.NewInt(i))
	}
	return items, nil
}
