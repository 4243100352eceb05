// Package ast defines the statement and expression node types produced by
// the parser. Every node carries the source position of its first token.
package ast

import "github.com/chtz/miniscript/internal/lexer"

// Node is implemented by every statement and expression.
type Node interface {
	Pos() lexer.Position
}

// Statement is executed primarily for effect; some statements (an
// ExpressionStatement, a Block) also carry a value
type Statement interface {
	Node
	statementNode()
}

// Expression always evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a flat list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) == 0 {
		return lexer.Zero
	}
	return p.Statements[0].Pos()
}
