package types

// DefaultMaxCallDepth bounds method-call nesting
const DefaultMaxCallDepth = 2048

// TaskContext holds the execution state of one run that is not part of
// the Environment:
// - call depth (runaway recursion protection)
// - source path, for error reports
type TaskContext struct {
	CallDepth    int
	MaxCallDepth int
	Path         string
}

// NewTaskContext creates a new task context with default values
func NewTaskContext() *TaskContext {
	return &TaskContext{MaxCallDepth: DefaultMaxCallDepth}
}

// EnterCall records one more active call and reports whether the depth
// limit still holds
func (ctx *TaskContext) EnterCall() bool {
	ctx.CallDepth++
	return ctx.MaxCallDepth <= 0 || ctx.CallDepth <= ctx.MaxCallDepth
}

// LeaveCall undoes EnterCall
func (ctx *TaskContext) LeaveCall() {
	ctx.CallDepth--
}
