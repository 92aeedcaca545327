package eval

import "golosina/types"

// ScopeKind tags the construct that introduced a scope
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeBlock
	ScopeMethod
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeBlock:
		return "block"
	case ScopeMethod:
		return "method"
	case ScopeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Scope is one level of the symbol-resolution stack. Every binding is a
// *types.Variable so const-ness travels with the cell.
type Scope struct {
	Kind ScopeKind
	vars map[string]*types.Variable
}

func newScope(kind ScopeKind) *Scope {
	return &Scope{Kind: kind, vars: make(map[string]*types.Variable)}
}

// Names returns the names bound in this scope
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	return names
}

// Environment is a strict LIFO stack of scopes. Method calls push onto
// the same stack as the caller, so a method body sees whatever scopes are
// active at its call site.
type Environment struct {
	scopes []*Scope
}

// NewEnvironment creates an environment holding only the global scope
func NewEnvironment() *Environment {
	return &Environment{scopes: []*Scope{newScope(ScopeGlobal)}}
}

// PushScope opens a new innermost scope
func (e *Environment) PushScope(kind ScopeKind) {
	e.scopes = append(e.scopes, newScope(kind))
}

// PopScope closes the innermost scope. The global scope is never popped.
func (e *Environment) PopScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Depth returns the number of open scopes, global included
func (e *Environment) Depth() int {
	return len(e.scopes)
}

// Current returns the innermost scope
func (e *Environment) Current() *Scope {
	return e.scopes[len(e.scopes)-1]
}

// Global returns the outermost scope
func (e *Environment) Global() *Scope {
	return e.scopes[0]
}

// Declare binds name in the current scope only. A value that is already
// a Variable is bound as-is; anything else is wrapped in a let binding.
func (e *Environment) Declare(name string, value types.Value) error {
	v, ok := value.(*types.Variable)
	if !ok {
		v = types.NewVariable(value, false)
	}
	cur := e.Current()
	if _, exists := cur.vars[name]; exists {
		return types.NewError(types.E_DUPDECL, "'%s' is already declared in this %s scope", name, cur.Kind)
	}
	cur.vars[name] = v
	return nil
}

// DeclareVar declares a let or const binding holding value
func (e *Environment) DeclareVar(name string, value types.Value, isConst bool) error {
	return e.Declare(name, types.NewVariable(value, isConst))
}

// lookup searches innermost to outermost
func (e *Environment) lookup(name string) (*types.Variable, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve returns the binding for name
func (e *Environment) Resolve(name string) (*types.Variable, error) {
	v, ok := e.lookup(name)
	if !ok {
		return nil, types.NewError(types.E_UNRESOLVED, "'%s' is not declared", name)
	}
	return v, nil
}

// Get returns the value held by name
func (e *Environment) Get(name string) (types.Value, bool) {
	v, ok := e.lookup(name)
	if !ok {
		return nil, false
	}
	return v.Held, true
}

// Assign replaces the value held by the innermost binding of name
func (e *Environment) Assign(name string, value types.Value) error {
	v, ok := e.lookup(name)
	if !ok {
		return types.NewError(types.E_UNRESOLVED, "cannot assign to undeclared '%s'", name)
	}
	if v.Const {
		return types.NewError(types.E_CONST, "cannot reassign const '%s'", name)
	}
	v.Held = types.Deref(value)
	return nil
}
