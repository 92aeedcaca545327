package builtins

import (
	"io"
	"os"

	"golosina/types"
)

// Option configures a Registry
type Option func(*Registry)

// WithOutput sets the writer used by fmt.print and fmt.println
func WithOutput(w io.Writer) Option {
	return func(r *Registry) {
		r.out = w
	}
}

// WithArgs sets the script arguments returned by os.args
func WithArgs(args []string) Option {
	return func(r *Registry) {
		r.args = args
	}
}

// Registry holds the native modules declared as globals at startup.
// Each module is an Object whose members are NativeMethods.
type Registry struct {
	modules map[string]*types.Object
	order   []string
	root    *types.Object
	out     io.Writer
	args    []string
}

// NewRegistry creates a registry with the standard modules. Module
// objects and any plain objects built from host data delegate to root.
func NewRegistry(root *types.Object, opts ...Option) *Registry {
	r := &Registry{
		modules: make(map[string]*types.Object),
		root:    root,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Register("fmt", r.formatModule())
	r.Register("os", r.systemModule())
	r.Register("containers", r.containersModule())
	r.Register("json", r.jsonModule())
	r.Register("crypto", r.cryptoModule())

	return r
}

// Register adds or replaces a module
func (r *Registry) Register(name string, module *types.Object) {
	if _, exists := r.modules[name]; !exists {
		r.order = append(r.order, name)
	}
	r.modules[name] = module
}

// Get retrieves a module by name
func (r *Registry) Get(name string) (*types.Object, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Names returns the module names in registration order
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// newModule builds a module object from its native members
func (r *Registry) newModule(members ...*types.NativeMethod) *types.Object {
	obj := types.NewObject(r.root)
	for _, m := range members {
		obj.SetOwn(m.Name, m)
	}
	return obj
}

// display renders a value the way fmt.print shows it
func display(v types.Value) string {
	d := types.Deref(v)
	if d == nil {
		return "null"
	}
	return d.String()
}
