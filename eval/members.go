package eval

import (
	"golosina/parser"
	"golosina/types"
)

// evalMember reads a member through the prototype chain
func (e *Evaluator) evalMember(node *parser.MemberExpr, ctx *types.TaskContext) types.Result {
	obj, res := e.evalObject(node.Object, ctx)
	if obj == nil {
		return res
	}
	v, ok := obj.Lookup(node.Property)
	if !ok {
		return e.fail(memberNotFound(obj, node.Property), node)
	}
	return types.Ok(v)
}

// evalObject evaluates expr and requires an Object
func (e *Evaluator) evalObject(expr parser.Expr, ctx *types.TaskContext) (*types.Object, types.Result) {
	result := e.Eval(expr, ctx)
	if !result.IsNormal() {
		return nil, result
	}
	obj, err := CheckObject(result.Val)
	if err != nil {
		return nil, e.fail(err, expr)
	}
	return obj, types.Result{}
}

// evalClone allocates an Object delegating to the prototype, then stores
// each override as an own member in source order. The prototype is
// linked, never copied.
func (e *Evaluator) evalClone(node *parser.CloneExpr, ctx *types.TaskContext) types.Result {
	proto, res := e.evalObject(node.Prototype, ctx)
	if proto == nil {
		return res
	}

	obj := types.NewObject(proto)
	for _, o := range node.Overrides {
		valResult := e.Eval(o.Value, ctx)
		if !valResult.IsNormal() {
			return valResult
		}
		value := types.Deref(valResult.Val)
		nameMethod(value, o.Key)
		obj.SetOwn(o.Key, value)
	}
	return types.Ok(obj)
}
