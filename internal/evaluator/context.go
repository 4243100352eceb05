// Package evaluator implements the tree-walking evaluator: it walks an
// AST against an Environment and an ExecutionContext, applying the
// expression/statement semantics, truthiness, short-circuiting, and
// return-as-control-flow rules.
package evaluator

import (
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/registry"
)

// ExecutionContext bundles the external collaborators an evaluation
// run needs: the data store, the output sink, and the host function
// registry. It also carries the ambient resource limits that
// guard against runaway scripts, which have no counterpart in the
// source spec but are carried the way the rest of this codebase's
// ambient stack is: as functional options on the façade.
type ExecutionContext struct {
	Data     registry.DataStore
	Output   *registry.OutputSink
	Registry *registry.Registry

	// MaxCallDepth caps nested user-function calls; 0 means unlimited.
	MaxCallDepth int
	// MaxSteps caps the number of statements/expressions evaluated;
	// 0 means unlimited.
	MaxSteps int

	// Trace, when non-nil, is called with the position of every
	// statement/expression boundary as it's reached, regardless of
	// MaxSteps. Used to back --trace-style execution logging.
	Trace func(lexer.Position)
}
