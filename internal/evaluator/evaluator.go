package evaluator

import (
	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/diag"
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/registry"
	"github.com/chtz/miniscript/internal/runtime"
)

// Evaluator walks an AST against a root environment, tracking call
// depth and step count against the ExecutionContext's limits.
type Evaluator struct {
	ctx   *ExecutionContext
	depth int
	steps int
}

// New creates an Evaluator bound to ctx.
func New(ctx *ExecutionContext) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// NewRootEnvironment creates an environment seeded with the registry's
// host functions as callables, per the registry-overlay design note:
// host functions resolve as if defined at the outermost frame, and are
// shadowable by a user `let`/`def` at any scope.
func NewRootEnvironment(reg *registry.Registry) *runtime.Environment {
	env := runtime.NewEnvironment()
	for _, name := range reg.Names() {
		fn, _ := reg.Get(name)
		env.Define(name, fn)
	}
	return env
}

// result is the outcome of executing one statement or a block: the
// value it produced, and whether that value arrived via a return
// signal that must keep propagating outward instead of being treated
// as an ordinary value.
type result struct {
	value    runtime.Value
	isReturn bool
}

// Eval runs a parsed program to completion, returning the value of its
// last evaluated top-level statement (Null for an empty program). A
// top-level return signal simply yields its value as the program
// result.
func (e *Evaluator) Eval(prog *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	res, err := e.evalStatements(prog.Statements, env)
	if err != nil {
		return nil, err
	}
	return res.value, nil
}

// evalStatements executes a flat statement list in env (no new scope
// is introduced here; callers decide whether env is already fresh).
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *runtime.Environment) (result, error) {
	last := result{value: runtime.Null{}}
	for _, stmt := range stmts {
		if err := e.tickStep(stmt.Pos()); err != nil {
			return result{}, err
		}
		res, err := e.evalStatement(stmt, env)
		if err != nil {
			return result{}, err
		}
		last = res
		if res.isReturn {
			return last, nil
		}
	}
	return last, nil
}

func (e *Evaluator) tickStep(pos lexer.Position) error {
	if e.ctx.Trace != nil {
		e.ctx.Trace(pos)
	}
	if e.ctx.MaxSteps <= 0 {
		return nil
	}
	e.steps++
	if e.steps > e.ctx.MaxSteps {
		return diag.Type(pos, "execution step limit exceeded")
	}
	return nil
}

