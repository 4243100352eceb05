package ast

import "github.com/chtz/miniscript/internal/lexer"

// Ident is a bare name reference, resolved against the environment chain.
type Ident struct {
	Position lexer.Position
	Name     string
}

func (e *Ident) Pos() lexer.Position { return e.Position }
func (*Ident) expressionNode()       {}

// NumberLit is a numeric literal, already parsed to float64.
type NumberLit struct {
	Position lexer.Position
	Value    float64
}

func (e *NumberLit) Pos() lexer.Position { return e.Position }
func (*NumberLit) expressionNode()       {}

// StringLit is a string literal with escapes already decoded by the lexer.
type StringLit struct {
	Position lexer.Position
	Value    string
}

func (e *StringLit) Pos() lexer.Position { return e.Position }
func (*StringLit) expressionNode()       {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Position lexer.Position
	Value    bool
}

func (e *BoolLit) Pos() lexer.Position { return e.Position }
func (*BoolLit) expressionNode()       {}

// NullLit is the `null` literal.
type NullLit struct {
	Position lexer.Position
}

func (e *NullLit) Pos() lexer.Position { return e.Position }
func (*NullLit) expressionNode()       {}

// PrefixExpr is a unary `-x` or `!x`.
type PrefixExpr struct {
	Position lexer.Position
	Operator string
	Right    Expression
}

func (e *PrefixExpr) Pos() lexer.Position { return e.Position }
func (*PrefixExpr) expressionNode()       {}

// InfixExpr is a binary operator application. Position is the operator
// token's position, so arithmetic errors point at the operator rather
// than either operand.
type InfixExpr struct {
	Position lexer.Position
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpr) Pos() lexer.Position { return e.Position }
func (*InfixExpr) expressionNode()       {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Position lexer.Position
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) Pos() lexer.Position { return e.Position }
func (*CallExpr) expressionNode()       {}

// MemberExpr is dot-form property access: `object.name`.
type MemberExpr struct {
	Position lexer.Position
	Object   Expression
	Property string
}

func (e *MemberExpr) Pos() lexer.Position { return e.Position }
func (*MemberExpr) expressionNode()       {}

// IndexExpr is bracket-form access: `object[expr]`. Semantically
// equivalent to MemberExpr but with a computed property.
type IndexExpr struct {
	Position lexer.Position
	Object   Expression
	Index    Expression
}

func (e *IndexExpr) Pos() lexer.Position { return e.Position }
func (*IndexExpr) expressionNode()       {}

// ArrayLit is `[ e0, e1, ... ]`.
type ArrayLit struct {
	Position lexer.Position
	Elements []Expression
}

func (e *ArrayLit) Pos() lexer.Position { return e.Position }
func (*ArrayLit) expressionNode()       {}
