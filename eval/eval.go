package eval

import (
	"io"
	"os"

	"github.com/oarkflow/log"

	"golosina/builtins"
	"golosina/parser"
	"golosina/types"
)

// Option configures an Evaluator or Interpreter
type Option func(*config)

type config struct {
	out          io.Writer
	args         []string
	logger       *log.Logger
	maxCallDepth int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		out:          os.Stdout,
		maxCallDepth: types.DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithOutput sets where fmt.print and fmt.println write
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithArgs sets the values returned by os.args
func WithArgs(args []string) Option {
	return func(c *config) {
		c.args = args
	}
}

// WithLogger enables debug logging. A nil logger disables it.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxCallDepth bounds method-call nesting; 0 means unbounded
func WithMaxCallDepth(n int) Option {
	return func(c *config) {
		c.maxCallDepth = n
	}
}

// Evaluator walks the AST and evaluates expressions/statements
type Evaluator struct {
	env     *Environment
	root    *types.Object
	modules *builtins.Registry
	logger  *log.Logger
}

// NewEvaluator creates an evaluator with a fresh environment whose
// global scope holds the root Object prototype and the native modules,
// all declared const
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := newConfig(opts)
	root := types.NewObject(nil)
	e := &Evaluator{
		env:    NewEnvironment(),
		root:   root,
		logger: cfg.logger,
	}
	e.modules = builtins.NewRegistry(root, builtins.WithOutput(cfg.out), builtins.WithArgs(cfg.args))

	e.env.DeclareVar("Object", root, true)
	for _, name := range e.modules.Names() {
		mod, _ := e.modules.Get(name)
		e.env.DeclareVar(name, mod, true)
		if e.logger != nil {
			e.logger.Debug().Str("module", name).Int("members", len(mod.Keys())).Msg("registered native module")
		}
	}
	return e
}

// Environment returns the evaluator's scope stack
func (e *Evaluator) Environment() *Environment {
	return e.env
}

// Root returns the root Object prototype
func (e *Evaluator) Root() *types.Object {
	return e.root
}

// Eval evaluates an AST node and returns a Result
// All evaluation methods follow this pattern:
// - Accept *TaskContext for call depth
// - Return Result (not raw Value) to unify error handling and control flow
func (e *Evaluator) Eval(node parser.Node, ctx *types.TaskContext) types.Result {
	switch n := node.(type) {
	case *parser.LiteralExpr:
		return e.evalLiteral(n, ctx)
	case *parser.IdentifierExpr:
		return e.evalIdentifier(n, ctx)
	case *parser.UnaryExpr:
		return e.evalUnary(n, ctx)
	case *parser.BinaryExpr:
		return e.evalBinary(n, ctx)
	case *parser.AssignExpr:
		return e.evalAssign(n, ctx)
	case *parser.MemberExpr:
		return e.evalMember(n, ctx)
	case *parser.CallExpr:
		return e.evalCall(n, ctx)
	case *parser.CloneExpr:
		return e.evalClone(n, ctx)
	case *parser.MethodExpr:
		return e.evalMethodLiteral(n, ctx)
	case parser.Stmt:
		return e.EvalStmt(n, ctx)
	default:
		return types.Errf(types.E_INVARG, "cannot evaluate %s", node.Kind())
	}
}

// fail attaches the node's location to err and aborts evaluation
func (e *Evaluator) fail(err error, node parser.Node) types.Result {
	return types.Fail(types.AsError(err).At(node.Span()))
}

// evalLiteral wraps the literal's host primitive in a fresh ValueObject
func (e *Evaluator) evalLiteral(node *parser.LiteralExpr, ctx *types.TaskContext) types.Result {
	switch v := node.Value.(type) {
	case nil:
		return types.Ok(types.NewNull())
	case bool:
		return types.Ok(types.NewBool(v))
	case int64:
		return types.Ok(types.NewInt(v))
	case float64:
		return types.Ok(types.NewFloat(v))
	case string:
		return types.Ok(types.NewStr(v))
	}
	return e.fail(types.NewError(types.E_TYPE, "unsupported literal %T", node.Value), node)
}

// evalIdentifier resolves a name innermost-first and yields the value
// its binding holds
func (e *Evaluator) evalIdentifier(node *parser.IdentifierExpr, ctx *types.TaskContext) types.Result {
	v, err := e.env.Resolve(node.Name)
	if err != nil {
		return e.fail(err, node)
	}
	if v.Held == nil {
		return types.Ok(types.NewNull())
	}
	return types.Ok(v.Held)
}

// evalUnary evaluates a prefix operator, or delegates ++/-- to evalUpdate
func (e *Evaluator) evalUnary(node *parser.UnaryExpr, ctx *types.TaskContext) types.Result {
	if node.IsUpdate() {
		return e.evalUpdate(node, ctx)
	}

	operandResult := e.Eval(node.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult
	}
	operand := operandResult.Val

	if err := CheckUnaryExpr(operand, node.Operator); err != nil {
		return e.fail(err, node)
	}
	v, err := applyUnary(node.Operator, types.PrimitiveOf(operand))
	if err != nil {
		return e.fail(err, node)
	}
	return types.Ok(v)
}

// evalUpdate implements ++ and --. The operand's location is evaluated
// once; prefix yields the new value, postfix a fresh snapshot of the old
// one.
func (e *Evaluator) evalUpdate(node *parser.UnaryExpr, ctx *types.TaskContext) types.Result {
	ref, res := e.evalRef(node.Operand, ctx)
	if ref == nil {
		return res
	}
	current, err := ref.Get()
	if err != nil {
		return e.fail(err, node.Operand)
	}
	if err := CheckUnaryExpr(current, node.Operator); err != nil {
		return e.fail(err, node)
	}

	old := types.PrimitiveOf(current)
	delta := int64(1)
	if node.Operator == parser.TOKEN_DEC {
		delta = -1
	}
	updated := step(old, delta)
	if err := ref.Set(updated); err != nil {
		return e.fail(err, node)
	}

	if node.Postfix {
		return types.Ok(rewrap(old))
	}
	return types.Ok(updated)
}

// evalBinary evaluates a binary expression. Both operands are evaluated
// left to right before the type check, except for && and ||.
func (e *Evaluator) evalBinary(node *parser.BinaryExpr, ctx *types.TaskContext) types.Result {
	if node.Operator == parser.TOKEN_AND || node.Operator == parser.TOKEN_OR {
		return e.evalLogical(node, ctx)
	}

	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}
	rightResult := e.Eval(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}
	left, right := leftResult.Val, rightResult.Val

	if err := CheckBinaryArithmetic(node.Operator, left, right); err != nil {
		return e.fail(err, node)
	}
	v, err := applyBinary(node.Operator, types.PrimitiveOf(left), types.PrimitiveOf(right))
	if err != nil {
		return e.fail(err, node)
	}
	return types.Ok(v)
}

// evalLogical short-circuits && and ||, always yielding a bool
func (e *Evaluator) evalLogical(node *parser.BinaryExpr, ctx *types.TaskContext) types.Result {
	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}
	lp, err := CheckValueObject(leftResult.Val, "left operand of '"+node.Operator.String()+"'")
	if err != nil {
		return e.fail(err, node.Left)
	}

	if node.Operator == parser.TOKEN_OR && lp.Truthy() {
		return types.Ok(types.NewBool(true))
	}
	if node.Operator == parser.TOKEN_AND && !lp.Truthy() {
		return types.Ok(types.NewBool(false))
	}

	rightResult := e.Eval(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}
	rp, err := CheckValueObject(rightResult.Val, "right operand of '"+node.Operator.String()+"'")
	if err != nil {
		return e.fail(err, node.Right)
	}
	return types.Ok(types.NewBool(rp.Truthy()))
}

// evalAssign stores into the target location and yields the stored value.
// The target's object part is evaluated before the right-hand side.
func (e *Evaluator) evalAssign(node *parser.AssignExpr, ctx *types.TaskContext) types.Result {
	ref, res := e.evalRef(node.Target, ctx)
	if ref == nil {
		return res
	}

	valResult := e.Eval(node.Value, ctx)
	if !valResult.IsNormal() {
		return valResult
	}
	value := types.Deref(valResult.Val)

	if err := ref.Set(value); err != nil {
		return e.fail(err, node)
	}
	nameMethod(value, ref.Describe())
	return types.Ok(value)
}

// evalMethodLiteral creates a new Method sharing the literal's body
func (e *Evaluator) evalMethodLiteral(node *parser.MethodExpr, ctx *types.TaskContext) types.Result {
	params := make([]string, len(node.Params))
	copy(params, node.Params)
	return types.Ok(&types.Method{Params: params, Body: node.Body})
}

// nameMethod gives an anonymous method the name of its first binding
func nameMethod(v types.Value, name string) {
	if m, ok := v.(*types.Method); ok && m.Name == "" {
		m.Name = name
	}
}
