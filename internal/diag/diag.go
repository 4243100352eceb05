// Package diag implements the diagnostic model: a
// positioned message accumulator, the error-taxonomy codes runtime
// failures are tagged with via samber/oops, and terminal formatting.
package diag

import (
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/samber/oops"
)

// Phase identifies which pipeline stage produced a Diagnostic.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseRuntime Phase = "runtime"
)

// Error codes for the runtime taxonomy. Lex/parse diagnostics
// don't carry a code; they're already disambiguated by Phase.
const (
	CodeResolveError  = "RESOLVE_ERROR"
	CodeTypeError     = "TYPE_ERROR"
	CodeArithmeticErr = "ARITHMETIC_ERROR"
	CodeHostError     = "HOST_ERROR"
)

// Diagnostic bundles a human-readable message with the source position
// and phase it was raised in. A missing position degrades to (0,0).
type Diagnostic struct {
	Message string
	Line    int
	Column  int
	Phase   Phase
}

// New builds a Diagnostic from a lexer.Position.
func New(phase Phase, pos lexer.Position, message string) Diagnostic {
	return Diagnostic{Message: message, Line: pos.Line, Column: pos.Column, Phase: phase}
}

// Zero is the sentinel position used when no AST node is responsible.
var Zero = Diagnostic{Line: 0, Column: 0}

// Resolve, Type, Arithmetic, and Host build the runtime-phase error
// values the evaluator returns; each tags an oops error with the
// taxonomy code and source position so FromOops can recover both ends
// at the evaluator/diagnostics boundary.
func Resolve(pos lexer.Position, format string, args ...any) error {
	return tagged(CodeResolveError, pos, format, args...)
}

func Type(pos lexer.Position, format string, args ...any) error {
	return tagged(CodeTypeError, pos, format, args...)
}

func Arithmetic(pos lexer.Position, format string, args ...any) error {
	return tagged(CodeArithmeticErr, pos, format, args...)
}

func Host(pos lexer.Position, err error) error {
	return oops.
		Code(CodeHostError).
		With("line", pos.Line, "column", pos.Column).
		Wrap(err)
}

func tagged(code string, pos lexer.Position, format string, args ...any) error {
	return oops.
		Code(code).
		With("line", pos.Line, "column", pos.Column).
		Errorf(format, args...)
}

// FromOops extracts a runtime Diagnostic from an error produced by
// Resolve/Type/Arithmetic/Host (or any oops error carrying "line" and
// "column" context). Errors that aren't oops errors degrade to the
// (0,0) sentinel
func FromOops(err error) Diagnostic {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return Diagnostic{Message: err.Error(), Phase: PhaseRuntime}
	}
	ctx := oopsErr.Context()
	line, _ := ctx["line"].(int)
	column, _ := ctx["column"].(int)
	return Diagnostic{
		Message: oopsErr.Error(),
		Line:    line,
		Column:  column,
		Phase:   PhaseRuntime,
	}
}
