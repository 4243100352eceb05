package evaluator

import (
	"math"

	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/diag"
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/registry"
	"github.com/chtz/miniscript/internal/runtime"
)

func (e *Evaluator) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if err := e.tickStep(expr.Pos()); err != nil {
		return nil, err
	}
	switch ex := expr.(type) {
	case *ast.Ident:
		val, ok := env.Get(ex.Name)
		if !ok {
			return nil, diag.Resolve(ex.Position, "undefined variable %q", ex.Name)
		}
		return val, nil

	case *ast.NumberLit:
		return runtime.Number(ex.Value), nil

	case *ast.StringLit:
		return runtime.String(ex.Value), nil

	case *ast.BoolLit:
		return runtime.Bool(ex.Value), nil

	case *ast.NullLit:
		return runtime.Null{}, nil

	case *ast.PrefixExpr:
		return e.evalPrefix(ex, env)

	case *ast.InfixExpr:
		return e.evalInfix(ex, env)

	case *ast.CallExpr:
		return e.evalCall(ex, env)

	case *ast.MemberExpr:
		obj, err := e.evalExpression(ex.Object, env)
		if err != nil {
			return nil, err
		}
		return e.evalMemberLike(obj, runtime.String(ex.Property), ex.Position)

	case *ast.IndexExpr:
		obj, err := e.evalExpression(ex.Object, env)
		if err != nil {
			return nil, err
		}
		key, err := e.evalExpression(ex.Index, env)
		if err != nil {
			return nil, err
		}
		return e.evalMemberLike(obj, key, ex.Position)

	case *ast.ArrayLit:
		elements := make([]runtime.Value, len(ex.Elements))
		for i, elemExpr := range ex.Elements {
			val, err := e.evalExpression(elemExpr, env)
			if err != nil {
				return nil, err
			}
			elements[i] = val
		}
		return &runtime.Array{Elements: elements}, nil

	case *ast.FunctionDecl: // anonymous function literal
		return &runtime.UserFunction{Name: ex.Name, Params: ex.Params, Body: ex.Body, Env: env}, nil

	default:
		return nil, diag.Type(expr.Pos(), "unsupported expression type %T", expr)
	}
}

func (e *Evaluator) evalPrefix(ex *ast.PrefixExpr, env *runtime.Environment) (runtime.Value, error) {
	right, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}
	switch ex.Operator {
	case "-":
		num, ok := right.(runtime.Number)
		if !ok {
			return nil, diag.Type(ex.Position, "operator '-' requires a number, got %s", right.TypeName())
		}
		return -num, nil
	case "!":
		return runtime.Bool(!runtime.Truthy(right)), nil
	default:
		return nil, diag.Type(ex.Position, "unknown prefix operator %q", ex.Operator)
	}
}

func (e *Evaluator) evalInfix(ex *ast.InfixExpr, env *runtime.Environment) (runtime.Value, error) {
	// && and || short-circuit and return the raw, uncoerced operand.
	if ex.Operator == "&&" || ex.Operator == "||" {
		left, err := e.evalExpression(ex.Left, env)
		if err != nil {
			return nil, err
		}
		leftTruthy := runtime.Truthy(left)
		if ex.Operator == "&&" && !leftTruthy {
			return left, nil
		}
		if ex.Operator == "||" && leftTruthy {
			return left, nil
		}
		return e.evalExpression(ex.Right, env)
	}

	left, err := e.evalExpression(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}

	switch ex.Operator {
	case "+":
		return evalPlus(left, right), nil
	case "-", "*", "/", "%":
		return e.evalArith(ex, left, right)
	case "<", ">", "<=", ">=":
		return evalCompare(ex, left, right)
	case "==":
		return runtime.Bool(runtime.Equal(left, right)), nil
	case "!=":
		return runtime.Bool(!runtime.Equal(left, right)), nil
	default:
		return nil, diag.Type(ex.Position, "unknown infix operator %q", ex.Operator)
	}
}

func evalPlus(left, right runtime.Value) runtime.Value {
	_, leftIsString := left.(runtime.String)
	_, rightIsString := right.(runtime.String)
	if leftIsString || rightIsString {
		return runtime.String(runtime.Stringify(left) + runtime.Stringify(right))
	}
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if lok && rok {
		return ln + rn
	}
	// Non-numeric, non-string operands: stringify-and-concatenate is the
	// sole coercion point per the value model; anything else degrades to
	// the same rule rather than becoming a TypeError, since `+` has no
	// other defined behavior for these variants.
	return runtime.String(runtime.Stringify(left) + runtime.Stringify(right))
}

func (e *Evaluator) evalArith(ex *ast.InfixExpr, left, right runtime.Value) (runtime.Value, error) {
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if !lok || !rok {
		return nil, diag.Type(ex.Position, "operator %q requires numbers, got %s and %s", ex.Operator, left.TypeName(), right.TypeName())
	}
	switch ex.Operator {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, diag.Arithmetic(ex.Position, "division by zero")
		}
		return ln / rn, nil
	case "%":
		if rn == 0 {
			return nil, diag.Arithmetic(ex.Position, "modulo by zero")
		}
		return runtime.Number(math.Mod(float64(ln), float64(rn))), nil
	default:
		return nil, diag.Type(ex.Position, "unknown arithmetic operator %q", ex.Operator)
	}
}

func evalCompare(ex *ast.InfixExpr, left, right runtime.Value) (runtime.Value, error) {
	if ln, ok := left.(runtime.Number); ok {
		rn, ok := right.(runtime.Number)
		if !ok {
			return nil, diag.Type(ex.Position, "cannot compare number and %s", right.TypeName())
		}
		return runtime.Bool(numCompare(ex.Operator, float64(ln), float64(rn))), nil
	}
	if ls, ok := left.(runtime.String); ok {
		rs, ok := right.(runtime.String)
		if !ok {
			return nil, diag.Type(ex.Position, "cannot compare string and %s", right.TypeName())
		}
		return runtime.Bool(strCompare(ex.Operator, string(ls), string(rs))), nil
	}
	return nil, diag.Type(ex.Position, "operator %q requires numbers or strings, got %s", ex.Operator, left.TypeName())
}

func numCompare(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func strCompare(op string, l, r string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func (e *Evaluator) evalCall(ex *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := e.evalExpression(ex.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, len(ex.Args))
	for i, argExpr := range ex.Args {
		val, err := e.evalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	switch fn := callee.(type) {
	case *runtime.UserFunction:
		return e.callUserFunction(fn, args, ex.Position)
	case *runtime.HostFunction:
		result, err := registry.CallHost(fn, args)
		if err != nil {
			return nil, diag.Host(ex.Position, err)
		}
		return result, nil
	default:
		return nil, diag.Type(ex.Position, "cannot call a value of type %s", callee.TypeName())
	}
}

func (e *Evaluator) callUserFunction(fn *runtime.UserFunction, args []runtime.Value, pos lexer.Position) (runtime.Value, error) {
	if e.ctx.MaxCallDepth > 0 && e.depth >= e.ctx.MaxCallDepth {
		return nil, diag.Type(pos, "call depth limit exceeded")
	}
	e.depth++
	defer func() { e.depth-- }()

	callEnv := runtime.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Params {
		if i < len(args) {
			callEnv.Define(param, args[i])
		} else {
			callEnv.Define(param, runtime.Null{})
		}
	}

	res, err := e.evalStatements(fn.Body.Statements, callEnv)
	if err != nil {
		return nil, err
	}
	return res.value, nil
}

func (e *Evaluator) evalMemberLike(obj runtime.Value, key runtime.Value, pos lexer.Position) (runtime.Value, error) {
	if _, ok := obj.(runtime.Null); ok {
		return nil, diag.Type(pos, "member access on null")
	}
	switch target := obj.(type) {
	case *runtime.Record:
		k := keyToString(key)
		if val, ok := target.Get(k); ok {
			return val, nil
		}
		return runtime.Null{}, nil
	case *runtime.Array:
		if n, ok := key.(runtime.Number); ok {
			idx := int(n)
			if idx < 0 || idx >= len(target.Elements) {
				return runtime.Null{}, nil
			}
			return target.Elements[idx], nil
		}
		if keyToString(key) == "length" {
			return runtime.Number(len(target.Elements)), nil
		}
		return runtime.Null{}, nil
	default:
		return runtime.Null{}, nil
	}
}

func keyToString(v runtime.Value) string {
	if s, ok := v.(runtime.String); ok {
		return string(s)
	}
	return runtime.Stringify(v)
}
