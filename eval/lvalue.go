package eval

import (
	"golosina/parser"
	"golosina/types"
)

// Ref is an assignable location: a binding in the scope stack or a
// member of an object. Assignment targets and ++/-- operands evaluate to
// a Ref first, so the store never depends on what was evaluated last.
type Ref interface {
	Get() (types.Value, error)
	Set(types.Value) error
	Describe() string // the name the location binds
}

// varRef names a binding, resolved innermost-first on every access
type varRef struct {
	env  *Environment
	name string
}

func (r *varRef) Get() (types.Value, error) {
	v, err := r.env.Resolve(r.name)
	if err != nil {
		return nil, err
	}
	return v.Held, nil
}

func (r *varRef) Set(v types.Value) error {
	return r.env.Assign(r.name, v)
}

func (r *varRef) Describe() string {
	return r.name
}

// memberRef names a member reached through obj. Reads walk the prototype
// chain; writes require the key somewhere on the chain and store it as
// an own member of obj.
type memberRef struct {
	obj *types.Object
	key string
}

func (r *memberRef) Get() (types.Value, error) {
	v, ok := r.obj.Lookup(r.key)
	if !ok {
		return nil, memberNotFound(r.obj, r.key)
	}
	return v, nil
}

func (r *memberRef) Set(v types.Value) error {
	if r.obj.Owner(r.key) == nil {
		return memberNotFound(r.obj, r.key)
	}
	r.obj.SetOwn(r.key, types.Deref(v))
	return nil
}

func (r *memberRef) Describe() string {
	return r.key
}

func memberNotFound(obj *types.Object, key string) error {
	return types.NewError(types.E_MEMBERNF, "member '%s' not found on %s or its prototypes", key, obj.Type())
}

// evalRef evaluates an lvalue expression to its location. Only the
// object part of a member expression is evaluated; the member itself is
// not read.
func (e *Evaluator) evalRef(expr parser.Expr, ctx *types.TaskContext) (Ref, types.Result) {
	switch target := expr.(type) {
	case *parser.IdentifierExpr:
		return &varRef{env: e.env, name: target.Name}, types.Result{}

	case *parser.MemberExpr:
		objResult := e.Eval(target.Object, ctx)
		if !objResult.IsNormal() {
			return nil, objResult
		}
		obj, err := CheckObject(objResult.Val)
		if err != nil {
			return nil, e.fail(err, target.Object)
		}
		return &memberRef{obj: obj, key: target.Property}, types.Result{}
	}

	return nil, types.Fail(types.NewError(types.E_INVARG, "cannot assign to %s", expr.Kind()).At(expr.Span()))
}
