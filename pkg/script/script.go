// Package script is the public façade embedders use: construct an
// Interpreter, register host functions, parse a source string once,
// then evaluate it any number of times against different data stores.
package script

import (
	"fmt"

	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/diag"
	"github.com/chtz/miniscript/internal/evaluator"
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/parser"
	"github.com/chtz/miniscript/internal/registry"
	"github.com/chtz/miniscript/internal/runtime"
)

// Value re-exports the runtime value type so embedders never need to
// import internal/runtime directly.
type Value = runtime.Value

// Diagnostic re-exports the diagnostic shape returned by Parse/Evaluate.
type Diagnostic = diag.Diagnostic

// HostFunc is the signature a registered host function implements.
type HostFunc = registry.HostFunctionImpl

// Interpreter parses one program and evaluates it against caller-owned
// data stores and output sinks. It is not safe for concurrent use
// across goroutines without external synchronization, since Parse and
// Evaluate share state.
type Interpreter struct {
	registry     *registry.Registry
	program      *ast.Program
	source       string
	maxCallDepth int
	maxSteps     int
	trace        func(phase string, line, column int)
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter) error

// WithMaxCallDepth caps nested user-function calls so that unbounded
// recursion fails as a diagnostic instead of exhausting the Go stack.
// n <= 0 means unlimited.
func WithMaxCallDepth(n int) Option {
	return func(ip *Interpreter) error {
		ip.maxCallDepth = n
		return nil
	}
}

// WithMaxSteps caps the number of statements/expressions a single
// Evaluate call may execute, a cooperative budget for host-enforced
// timeouts. n <= 0 means unlimited.
func WithMaxSteps(n int) Option {
	return func(ip *Interpreter) error {
		ip.maxSteps = n
		return nil
	}
}

// WithTrace calls fn for every token the lexer produces during Parse
// (phase "lex") and every statement/expression boundary the evaluator
// reaches during Evaluate (phase "eval"). Intended for logging a
// step-by-step execution trace; it runs regardless of WithMaxSteps.
func WithTrace(fn func(phase string, line, column int)) Option {
	return func(ip *Interpreter) error {
		ip.trace = fn
		return nil
	}
}

// New creates an interpreter with an empty host registry plus the
// three built-ins (console_put, io_get, io_put); their implementations
// are bound to the data store and output sink supplied to each
// Evaluate call, not to the interpreter itself.
func New(opts ...Option) (*Interpreter, error) {
	ip := &Interpreter{registry: registry.New()}
	for _, opt := range opts {
		if err := opt(ip); err != nil {
			return nil, fmt.Errorf("script: invalid option: %w", err)
		}
	}
	return ip, nil
}

// RegisterFunction adds or replaces a host function callable from
// script source under name. maySuspend documents (but does not
// enforce) that the implementation may block; the evaluator core has
// no cooperative-suspend mechanism, so a suspending host function
// simply blocks the calling goroutine. Returns the interpreter so
// calls can be chained.
func (ip *Interpreter) RegisterFunction(name string, impl HostFunc, maySuspend bool) *Interpreter {
	ip.registry.Register(name, impl, maySuspend)
	return ip
}

// Parse tokenizes and parses source, retaining the AST internally for
// a subsequent Evaluate. It always returns a best-effort AST alongside
// whatever lex/parse diagnostics were accumulated; ok reports whether
// that list is empty.
func (ip *Interpreter) Parse(source string) (ok bool, diagnostics []Diagnostic) {
	ip.source = source
	var lexOpts []lexer.Option
	if ip.trace != nil {
		lexOpts = append(lexOpts, lexer.WithTracing(func(tok lexer.Token) {
			ip.trace("lex", tok.Pos.Line, tok.Pos.Column)
		}))
	}
	l := lexer.New(source, lexOpts...)
	p := parser.New(l)
	ip.program = p.ParseProgram()

	for _, e := range l.Errors() {
		diagnostics = append(diagnostics, diag.New(diag.PhaseLex, e.Pos, e.Message))
	}
	for _, e := range p.Errors() {
		diagnostics = append(diagnostics, diag.New(diag.PhaseParse, e.Pos, e.Message))
	}
	return len(diagnostics) == 0, diagnostics
}

// Evaluate runs the most recently parsed program against dataStore,
// mutating it and appending to outputSink in program order. It
// requires a prior call to Parse; calling it beforehand returns
// ok=false with a single runtime diagnostic. On success, result is the
// program's final value (Null for an empty program); on failure,
// result is Null and diagnostics holds at least one runtime-phase
// entry.
func (ip *Interpreter) Evaluate(dataStore map[string]Value, outputSink *[]string) (ok bool, result Value, diagnostics []Diagnostic) {
	if ip.program == nil {
		return false, runtime.Null{}, []Diagnostic{
			diag.New(diag.PhaseRuntime, lexer.Zero, "evaluate called before a successful parse"),
		}
	}

	data := registry.DataStore(dataStore)
	sink := &registry.OutputSink{}

	evalRegistry := registry.New()
	evalRegistry.RegisterBuiltins(data, sink)
	for _, name := range ip.registry.Names() {
		fn, _ := ip.registry.Get(name)
		evalRegistry.Register(name, fn.Impl, fn.MaySuspend)
	}

	ctx := &evaluator.ExecutionContext{
		Data:         data,
		Output:       sink,
		Registry:     evalRegistry,
		MaxCallDepth: ip.maxCallDepth,
		MaxSteps:     ip.maxSteps,
	}
	if ip.trace != nil {
		ctx.Trace = func(pos lexer.Position) {
			ip.trace("eval", pos.Line, pos.Column)
		}
	}
	env := evaluator.NewRootEnvironment(evalRegistry)
	ev := evaluator.New(ctx)

	val, err := ev.Eval(ip.program, env)
	*outputSink = append(*outputSink, sink.Lines()...)
	if err != nil {
		return false, runtime.Null{}, []Diagnostic{diag.FromOops(err)}
	}
	return true, val, nil
}

// Stringify renders a Value the way console_put and the `+` string
// coercion do, for embedders that want to print a result.
func Stringify(v Value) string {
	return runtime.Stringify(v)
}

// FormatDiagnostics renders a list of diagnostics against the most
// recently parsed source, one per block, for terminal output.
func (ip *Interpreter) FormatDiagnostics(diagnostics []Diagnostic, useColor bool) string {
	return diag.FormatAll(diagnostics, ip.source, useColor)
}
