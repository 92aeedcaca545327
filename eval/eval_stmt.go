package eval

import (
	"golosina/parser"
	"golosina/types"
)

// EvalProgram evaluates top-level statements directly in the global
// scope, so declarations persist across successive programs
func (e *Evaluator) EvalProgram(prog *parser.Program, ctx *types.TaskContext) types.Result {
	return e.evalStatements(prog.Statements, ctx)
}

// evalStatements evaluates a sequence of statements in the current scope.
// Any pending signal stops the sequence and propagates unchanged.
// Normal completion yields the last statement's value.
func (e *Evaluator) evalStatements(stmts []parser.Stmt, ctx *types.TaskContext) types.Result {
	var last types.Value = types.NewNull()
	for _, stmt := range stmts {
		result := e.EvalStmt(stmt, ctx)
		if !result.IsNormal() {
			return result
		}
		if result.Val != nil {
			last = result.Val
		}
	}
	return types.Ok(last)
}

// EvalStmt evaluates a single statement
func (e *Evaluator) EvalStmt(stmt parser.Stmt, ctx *types.TaskContext) types.Result {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		return e.evalExprStmt(s, ctx)
	case *parser.VarDecl:
		return e.evalVarDecl(s, ctx)
	case *parser.BlockStmt:
		return e.evalBlock(s, ScopeBlock, ctx)
	case *parser.IfStmt:
		return e.evalIfStmt(s, ctx)
	case *parser.WhileStmt:
		return e.evalWhileStmt(s, ctx)
	case *parser.ForStmt:
		return e.evalForStmt(s, ctx)
	case *parser.CaseStmt:
		return e.evalCaseStmt(s, ctx)
	case *parser.ReturnStmt:
		return e.evalReturnStmt(s, ctx)
	case *parser.BreakStmt:
		return types.Break()
	case *parser.ContinueStmt:
		return types.Continue()
	case *parser.ImportStmt:
		return e.evalImportStmt(s, ctx)
	case *parser.ExportStmt:
		return e.evalExportStmt(s, ctx)
	default:
		return e.fail(types.NewError(types.E_INVARG, "cannot evaluate %s", stmt.Kind()), stmt)
	}
}

// evalExprStmt evaluates an expression statement
func (e *Evaluator) evalExprStmt(stmt *parser.ExprStmt, ctx *types.TaskContext) types.Result {
	if stmt.Expr == nil {
		// Empty statement
		return types.Ok(types.NewNull())
	}
	return e.Eval(stmt.Expr, ctx)
}

// evalVarDecl declares a binding in the current scope. A let without an
// initializer holds null.
func (e *Evaluator) evalVarDecl(stmt *parser.VarDecl, ctx *types.TaskContext) types.Result {
	var value types.Value = types.NewNull()
	if stmt.Init != nil {
		result := e.Eval(stmt.Init, ctx)
		if !result.IsNormal() {
			return result
		}
		value = types.Deref(result.Val)
	}

	if err := e.env.DeclareVar(stmt.Name, value, stmt.Const); err != nil {
		return e.fail(err, stmt)
	}
	nameMethod(value, stmt.Name)
	return types.Ok(value)
}

// evalBlock runs a block in a new scope of the given kind
func (e *Evaluator) evalBlock(block *parser.BlockStmt, kind ScopeKind, ctx *types.TaskContext) types.Result {
	e.env.PushScope(kind)
	defer e.env.PopScope()
	return e.evalStatements(block.Statements, ctx)
}

// evalCondition evaluates a control-construct condition. It must be a
// ValueObject; its payload's truthiness decides.
func (e *Evaluator) evalCondition(expr parser.Expr, ctx *types.TaskContext) (bool, types.Result) {
	result := e.Eval(expr, ctx)
	if !result.IsNormal() {
		return false, result
	}
	p := types.PrimitiveOf(result.Val)
	if p == nil {
		err := types.NewError(types.E_INVARG, "condition must be a value, got %s", types.TypeOf(result.Val))
		return false, e.fail(err, expr)
	}
	return p.Truthy(), result
}

// evalIfStmt evaluates if/else if/else chains
func (e *Evaluator) evalIfStmt(stmt *parser.IfStmt, ctx *types.TaskContext) types.Result {
	cond, result := e.evalCondition(stmt.Condition, ctx)
	if !result.IsNormal() {
		return result
	}

	if cond {
		return e.evalBlock(stmt.Then, ScopeBlock, ctx)
	}
	if stmt.Else != nil {
		return e.EvalStmt(stmt.Else, ctx)
	}

	// No condition matched, no else
	return types.Ok(types.NewNull())
}

// evalWhileStmt evaluates while loops. Each iteration's body gets its own
// loop scope.
func (e *Evaluator) evalWhileStmt(stmt *parser.WhileStmt, ctx *types.TaskContext) types.Result {
	for {
		cond, condResult := e.evalCondition(stmt.Condition, ctx)
		if !condResult.IsNormal() {
			return condResult
		}
		if !cond {
			break
		}

		bodyResult := e.evalBlock(stmt.Body, ScopeLoop, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.NewNull())
		case types.FlowContinue:
			continue
		}
	}

	return types.Ok(types.NewNull())
}

// evalForStmt evaluates C-style for loops. Bindings made by the init
// clause live in a loop scope around the whole statement; a missing
// condition loops until break or return.
func (e *Evaluator) evalForStmt(stmt *parser.ForStmt, ctx *types.TaskContext) types.Result {
	e.env.PushScope(ScopeLoop)
	defer e.env.PopScope()

	if stmt.Init != nil {
		initResult := e.EvalStmt(stmt.Init, ctx)
		if !initResult.IsNormal() {
			return initResult
		}
	}

	for {
		if stmt.Condition != nil {
			cond, condResult := e.evalCondition(stmt.Condition, ctx)
			if !condResult.IsNormal() {
				return condResult
			}
			if !cond {
				break
			}
		}

		bodyResult := e.evalBlock(stmt.Body, ScopeLoop, ctx)
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowError:
			return bodyResult
		case types.FlowBreak:
			return types.Ok(types.NewNull())
		}

		// Normal completion and continue both run the update
		if stmt.Update != nil {
			updateResult := e.Eval(stmt.Update, ctx)
			if !updateResult.IsNormal() {
				return updateResult
			}
		}
	}

	return types.Ok(types.NewNull())
}

// evalCaseStmt tries each test in source order with lenient equality.
// The default arm runs only after every test has failed. A break inside
// the chosen arm ends the case; continue and return propagate.
func (e *Evaluator) evalCaseStmt(stmt *parser.CaseStmt, ctx *types.TaskContext) types.Result {
	discResult := e.Eval(stmt.Discriminant, ctx)
	if !discResult.IsNormal() {
		return discResult
	}
	disc := discResult.Val

	var chosen, fallback *parser.CaseTest
	for _, test := range stmt.Tests {
		if test.Default {
			fallback = test
			continue
		}
		testResult := e.Eval(test.Test, ctx)
		if !testResult.IsNormal() {
			return testResult
		}
		if types.Equal(disc, testResult.Val) {
			chosen = test
			break
		}
	}
	if chosen == nil {
		chosen = fallback
	}
	if chosen == nil {
		return types.Ok(types.NewNull())
	}

	// arm bindings stay local to the arm
	e.env.PushScope(ScopeBlock)
	defer e.env.PopScope()

	result := e.EvalStmt(chosen.Body, ctx)
	if result.IsBreak() {
		return types.Ok(types.NewNull())
	}
	return result
}

// evalReturnStmt evaluates return statements. A bare return yields null.
func (e *Evaluator) evalReturnStmt(stmt *parser.ReturnStmt, ctx *types.TaskContext) types.Result {
	if stmt.Value == nil {
		return types.Return(types.NewNull())
	}
	result := e.Eval(stmt.Value, ctx)
	if !result.IsNormal() {
		return result
	}
	return types.Return(types.Deref(result.Val))
}

// evalImportStmt records the import; module loading is not performed
func (e *Evaluator) evalImportStmt(stmt *parser.ImportStmt, ctx *types.TaskContext) types.Result {
	if e.logger != nil {
		e.logger.Debug().Str("path", stmt.Path).Str("source", ctx.Path).Msg("import ignored")
	}
	return types.Ok(types.NewNull())
}

// evalExportStmt records the export; the wrapped declaration is not run
func (e *Evaluator) evalExportStmt(stmt *parser.ExportStmt, ctx *types.TaskContext) types.Result {
	if e.logger != nil {
		e.logger.Debug().Str("name", stmt.Decl.Name).Str("source", ctx.Path).Msg("export ignored")
	}
	return types.Ok(types.NewNull())
}
