package evaluator

import (
	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/diag"
	"github.com/chtz/miniscript/internal/runtime"
)

func (e *Evaluator) evalStatement(stmt ast.Statement, env *runtime.Environment) (result, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		// A Block does NOT introduce a new scope: it shares env with its
		// enclosing statement sequence.
		return e.evalStatements(s.Statements, env)

	case *ast.ExpressionStatement:
		val, err := e.evalExpression(s.Expression, env)
		if err != nil {
			return result{}, err
		}
		return result{value: val}, nil

	case *ast.VarDecl:
		var val runtime.Value = runtime.Null{}
		if s.Init != nil {
			var err error
			val, err = e.evalExpression(s.Init, env)
			if err != nil {
				return result{}, err
			}
		}
		env.Define(s.Name, val)
		return result{value: val}, nil

	case *ast.Assign:
		val, err := e.evalExpression(s.Value, env)
		if err != nil {
			return result{}, err
		}
		if err := env.Assign(s.Name, val); err != nil {
			return result{}, diag.Resolve(s.Position, "undefined variable %q", s.Name)
		}
		return result{value: val}, nil

	case *ast.FunctionDecl:
		fn := &runtime.UserFunction{Name: s.Name, Params: s.Params, Body: s.Body, Env: env}
		if s.Name != "" {
			env.Define(s.Name, fn)
		}
		return result{value: fn}, nil

	case *ast.Return:
		var val runtime.Value = runtime.Null{}
		if s.Value != nil {
			var err error
			val, err = e.evalExpression(s.Value, env)
			if err != nil {
				return result{}, err
			}
		}
		return result{value: val, isReturn: true}, nil

	case *ast.If:
		return e.evalIf(s, env)

	case *ast.While:
		return e.evalWhile(s, env)

	default:
		return result{}, diag.Type(stmt.Pos(), "unsupported statement type %T", stmt)
	}
}

func (e *Evaluator) evalIf(s *ast.If, env *runtime.Environment) (result, error) {
	cond, err := e.evalExpression(s.Cond, env)
	if err != nil {
		return result{}, err
	}
	if runtime.Truthy(cond) {
		return e.evalStatements(s.Then.Statements, env)
	}
	if s.ElseIf != nil {
		return e.evalIf(s.ElseIf, env)
	}
	if s.Else != nil {
		return e.evalStatements(s.Else.Statements, env)
	}
	return result{value: runtime.Null{}}, nil
}

func (e *Evaluator) evalWhile(s *ast.While, env *runtime.Environment) (result, error) {
	last := result{value: runtime.Null{}}
	for {
		if err := e.tickStep(s.Position); err != nil {
			return result{}, err
		}
		cond, err := e.evalExpression(s.Cond, env)
		if err != nil {
			return result{}, err
		}
		if !runtime.Truthy(cond) {
			return last, nil
		}
		res, err := e.evalStatements(s.Body.Statements, env)
		if err != nil {
			return result{}, err
		}
		last = res
		if res.isReturn {
			return last, nil
		}
	}
}
