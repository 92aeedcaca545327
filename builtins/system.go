package builtins

import (
	"os"
	"time"

	"golosina/types"
)

// ============================================================================
// OS MODULE
// ============================================================================

func (r *Registry) systemModule() *types.Object {
	return r.newModule(
		types.NewNative("args", types.Fixed(0), r.builtinArgs),
		types.NewNative("getenv", types.Fixed(1), builtinGetenv),
		types.NewNative("readFile", types.Fixed(1), builtinReadFile),
		types.NewNative("writeFile", types.Fixed(2), builtinWriteFile),
		types.NewNative("time", types.Fixed(0), builtinTime),
	)
}

// builtinArgs returns the script arguments
// args() -> container
func (r *Registry) builtinArgs(args []types.Value) (any, error) {
	out := make([]string, len(r.args))
	copy(out, r.args)
	return out, nil
}

// builtinGetenv returns an environment variable, or null when unset
// getenv(name) -> str | null
func builtinGetenv(args []types.Value) (any, error) {
	name, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(name); ok {
		return v, nil
	}
	return nil, nil
}

// builtinReadFile returns the contents of a file
// readFile(path) -> str
func builtinReadFile(args []types.Value) (any, error) {
	path, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.E_HOST, "readFile: %v", err)
	}
	return string(data), nil
}

// builtinWriteFile replaces the contents of a file
// writeFile(path, text) -> int (bytes written)
func builtinWriteFile(args []types.Value) (any, error) {
	path, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	text, err := types.StringArg(args, 1)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return nil, types.NewError(types.E_HOST, "writeFile: %v", err)
	}
	return len(text), nil
}

// builtinTime returns the current Unix time in seconds
// time() -> int
func builtinTime(args []types.Value) (any, error) {
	return time.Now().Unix(), nil
}
