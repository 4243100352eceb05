package evaluator

import (
	"testing"

	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/parser"
	"github.com/chtz/miniscript/internal/registry"
	"github.com/chtz/miniscript/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSource(t *testing.T, src string, ctx *ExecutionContext) (runtime.Value, error) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	if ctx.Registry == nil {
		ctx.Registry = registry.New()
	}
	env := NewRootEnvironment(ctx.Registry)
	return New(ctx).Eval(prog, env)
}

func TestEval_BlockSharesEnclosingScope(t *testing.T) {
	val, err := evalSource(t, `
		let x = 1;
		if (true) { x = 2; let y = 3; }
		x;
	`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(2), val)
}

func TestEval_FunctionCallCreatesNewScope(t *testing.T) {
	val, err := evalSource(t, `
		let x = 1;
		def f() { let x = 99; return x; }
		f();
		x;
	`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(1), val, "function-local x must not leak out")
}

func TestEval_ClosureCapturesDeclarationEnvNotCallerEnv(t *testing.T) {
	val, err := evalSource(t, `
		def makeCounter() {
			let n = 0;
			return def() { n = n + 1; return n; };
		}
		let counter = makeCounter();
		counter();
		counter();
		counter();
	`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(3), val)
}

func TestEval_ReturnPropagatesOutOfNestedIfAndWhile(t *testing.T) {
	val, err := evalSource(t, `
		def f() {
			let i = 0;
			while (true) {
				if (i == 3) {
					return i;
				}
				i = i + 1;
			}
		}
		f();
	`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(3), val)
}

func TestEval_RecursiveFunctionSeesItsOwnNameInScope(t *testing.T) {
	val, err := evalSource(t, `
		def fact(n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		}
		fact(5);
	`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(120), val)
}

func TestEval_HostFunctionShadowedByLexicalLet(t *testing.T) {
	reg := registry.New()
	reg.Register("greet", func(args []runtime.Value) (runtime.Value, error) {
		return runtime.String("host"), nil
	}, false)

	val, err := evalSource(t, `
		def f() {
			let greet = def() { return "shadowed"; };
			return greet();
		}
		f();
	`, &ExecutionContext{Registry: reg})
	require.NoError(t, err)
	assert.Equal(t, runtime.String("shadowed"), val)
}

func TestEval_DivisionByZeroReportsArithmeticError(t *testing.T) {
	_, err := evalSource(t, `1 / 0;`, &ExecutionContext{})
	require.Error(t, err)
}

func TestEval_CrossTypeComparisonIsTypeError(t *testing.T) {
	_, err := evalSource(t, `1 < "a";`, &ExecutionContext{})
	require.Error(t, err)
}

func TestEval_MemberAccessOnNullIsTypeError(t *testing.T) {
	_, err := evalSource(t, `null.x;`, &ExecutionContext{})
	require.Error(t, err)
}

func TestEval_MemberAccessOnBoolYieldsNull(t *testing.T) {
	val, err := evalSource(t, `true.x;`, &ExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, runtime.Null{}, val)
}

func TestEval_MaxCallDepthStopsUnboundedRecursion(t *testing.T) {
	_, err := evalSource(t, `
		def loop() { return loop(); }
		loop();
	`, &ExecutionContext{MaxCallDepth: 8})
	require.Error(t, err)
}

func TestEval_MaxStepsStopsUnboundedLoop(t *testing.T) {
	_, err := evalSource(t, `
		while (true) { let x = 1; }
	`, &ExecutionContext{MaxSteps: 20})
	require.Error(t, err)
}

func TestEval_TraceHookFiresForEveryStepRegardlessOfMaxSteps(t *testing.T) {
	var positions []lexer.Position
	_, err := evalSource(t, `
		let x = 1;
		let y = 2;
	`, &ExecutionContext{
		Trace: func(pos lexer.Position) { positions = append(positions, pos) },
	})
	require.NoError(t, err)
	assert.Len(t, positions, 4) // two statements plus their two initializer expressions
}

func TestEval_ArrayAndMemberAccessThroughHostFunction(t *testing.T) {
	reg := registry.New()
	reg.Register("users", func(args []runtime.Value) (runtime.Value, error) {
		rec := runtime.NewRecord()
		rec.Set("items", &runtime.Array{Elements: []runtime.Value{runtime.Number(1), runtime.Number(2), runtime.Number(3)}})
		return rec, nil
	}, false)

	val, err := evalSource(t, `
		let u = users();
		u.items[1] + u.items[2];
	`, &ExecutionContext{Registry: reg})
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(5), val)
}
