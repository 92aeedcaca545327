package eval

import (
	"golosina/parser"
	"golosina/trace"
	"golosina/types"
)

// anonymousMethod names methods never bound to a name, in traces
const anonymousMethod = "<anonymous>"

// evalCall evaluates the callee, then the arguments left to right in the
// caller's scopes, then checks arity before anything runs. A callee
// reached through a member expression is called with that object as
// its receiver.
func (e *Evaluator) evalCall(node *parser.CallExpr, ctx *types.TaskContext) types.Result {
	var receiver *types.Object
	var callee types.Value

	if member, ok := node.Callee.(*parser.MemberExpr); ok {
		obj, res := e.evalObject(member.Object, ctx)
		if obj == nil {
			return res
		}
		v, found := obj.Lookup(member.Property)
		if !found {
			return e.fail(memberNotFound(obj, member.Property), member)
		}
		receiver, callee = obj, v
	} else {
		calleeResult := e.Eval(node.Callee, ctx)
		if !calleeResult.IsNormal() {
			return calleeResult
		}
		callee = calleeResult.Val
	}

	fn, err := CheckMethod(callee)
	if err != nil {
		return e.fail(err, node.Callee)
	}

	args := make([]types.Value, 0, len(node.Args))
	for _, argExpr := range node.Args {
		argResult := e.Eval(argExpr, ctx)
		if !argResult.IsNormal() {
			return argResult
		}
		args = append(args, types.Deref(argResult.Val))
	}

	if err := checkArity(fn, len(args)); err != nil {
		return e.fail(err, node)
	}

	switch m := fn.(type) {
	case *types.Method:
		return e.callMethod(m, receiver, args, node, ctx)
	case *types.NativeMethod:
		return e.callNative(m, receiver, args, node, ctx)
	}
	return e.fail(types.NewError(types.E_NOTCALLABLE, "%s is not callable", types.TypeOf(fn)), node.Callee)
}

// callMethod runs a user method. Its scope is pushed onto the caller's
// stack, so the body also sees every binding visible at the call site.
// The result is the returned value, or the body's last value when no
// return ran.
func (e *Evaluator) callMethod(m *types.Method, receiver *types.Object, args []types.Value, node *parser.CallExpr, ctx *types.TaskContext) types.Result {
	name := m.Name
	if name == "" {
		name = anonymousMethod
	}

	if !ctx.EnterCall() {
		ctx.LeaveCall()
		return e.fail(types.NewError(types.E_MAXREC, "call depth exceeded %d in %s", ctx.MaxCallDepth, name), node)
	}
	defer ctx.LeaveCall()

	trace.MethodCall(name, ctx.CallDepth, args, receiver != nil)

	e.env.PushScope(ScopeMethod)
	defer e.env.PopScope()

	if receiver != nil {
		if err := e.env.DeclareVar("this", receiver, true); err != nil {
			return e.methodFailed(name, ctx.CallDepth, e.fail(err, node))
		}
	}
	for i, param := range m.Params {
		if err := e.env.DeclareVar(param, args[i], false); err != nil {
			return e.methodFailed(name, ctx.CallDepth, e.fail(err, node))
		}
	}

	result := e.evalStatements(m.Body.Statements, ctx)
	switch result.Flow {
	case types.FlowError:
		return e.methodFailed(name, ctx.CallDepth, result)
	case types.FlowReturn, types.FlowNormal:
		val := result.Val
		if val == nil {
			val = types.NewNull()
		}
		trace.MethodReturn(name, ctx.CallDepth, val)
		return types.Ok(val)
	}
	// break and continue cannot leave a method body
	return types.Ok(types.NewNull())
}

func (e *Evaluator) methodFailed(name string, depth int, result types.Result) types.Result {
	trace.MethodError(name, depth, result.Err)
	return result
}

// callNative invokes a host function and converts its raw return value
func (e *Evaluator) callNative(m *types.NativeMethod, receiver *types.Object, args []types.Value, node *parser.CallExpr, ctx *types.TaskContext) types.Result {
	trace.MethodCall(m.Name, ctx.CallDepth+1, args, receiver != nil)

	raw, err := m.Fn(args)
	if err != nil {
		return e.methodFailed(m.Name, ctx.CallDepth+1, e.fail(err, node))
	}
	v, err := types.FromHost(raw, e.root)
	if err != nil {
		return e.methodFailed(m.Name, ctx.CallDepth+1, e.fail(err, node))
	}

	trace.MethodReturn(m.Name, ctx.CallDepth+1, v)
	return types.Ok(v)
}
