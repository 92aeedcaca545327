package eval

import (
	"github.com/oarkflow/log"

	"golosina/parser"
	"golosina/types"
)

// Interpreter runs source text end to end: lex, parse, then evaluate.
// It keeps one Evaluator, so bindings made by one Run are visible to the
// next. An Interpreter must not be shared between goroutines.
type Interpreter struct {
	evaluator    *Evaluator
	logger       *log.Logger
	maxCallDepth int
}

// NewInterpreter creates an interpreter with a fresh global environment
func NewInterpreter(opts ...Option) *Interpreter {
	cfg := newConfig(opts)
	return &Interpreter{
		evaluator:    NewEvaluator(opts...),
		logger:       cfg.logger,
		maxCallDepth: cfg.maxCallDepth,
	}
}

// Evaluator returns the underlying evaluator
func (i *Interpreter) Evaluator() *Evaluator {
	return i.evaluator
}

// Run parses and evaluates src. Syntax errors come back together as a
// parser.ErrorList and nothing is evaluated; the first evaluation error
// aborts the run and comes back as a *types.Error. On success the value
// of the last top-level statement is returned.
func (i *Interpreter) Run(src, path string) (types.Value, error) {
	prog, err := parser.ParseString(src, path)
	if err != nil {
		if i.logger != nil {
			i.logger.Debug().Str("path", path).Err(err).Msg("parse failed")
		}
		return nil, err
	}
	return i.RunProgram(prog)
}

// RunProgram evaluates an already parsed program
func (i *Interpreter) RunProgram(prog *parser.Program) (types.Value, error) {
	ctx := types.NewTaskContext()
	ctx.MaxCallDepth = i.maxCallDepth
	ctx.Path = prog.Path

	if i.logger != nil {
		i.logger.Debug().Str("path", prog.Path).Int("statements", len(prog.Statements)).Msg("evaluating program")
	}

	result := i.evaluator.EvalProgram(prog, ctx)
	if result.IsError() {
		if i.logger != nil {
			i.logger.Debug().Str("path", prog.Path).Str("code", result.Err.Code.String()).Msg("evaluation aborted")
		}
		return nil, result.Err
	}
	if result.Val == nil {
		return types.NewNull(), nil
	}
	return result.Val, nil
}

// Lookup returns the value held by a global binding
func (i *Interpreter) Lookup(name string) (types.Value, bool) {
	return i.evaluator.env.Get(name)
}
