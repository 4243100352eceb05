package ast

import "github.com/chtz/miniscript/internal/lexer"

// Block is a brace-delimited statement sequence. It does NOT introduce a
// new lexical scope: declarations inside escape to the enclosing function
// scope.
type Block struct {
	Position   lexer.Position
	Statements []Statement
}

func (b *Block) Pos() lexer.Position { return b.Position }
func (*Block) statementNode()        {}

// ExpressionStatement wraps an expression evaluated for its side effects
// (and, as the last statement of a block/program, for its value).
type ExpressionStatement struct {
	Position   lexer.Position
	Expression Expression
}

func (s *ExpressionStatement) Pos() lexer.Position { return s.Position }
func (*ExpressionStatement) statementNode()        {}

// VarDecl is `let NAME (= expr)? ;`. Init is nil when no initializer was
// given, in which case the variable's initial value is Null.
type VarDecl struct {
	Position lexer.Position
	Name     string
	Init     Expression
}

func (s *VarDecl) Pos() lexer.Position { return s.Position }
func (*VarDecl) statementNode()        {}

// Assign is `NAME = expr ;`. Assignment updates the innermost existing
// binding for NAME; it never creates a new one.
type Assign struct {
	Position lexer.Position
	Name     string
	Value    Expression
}

func (s *Assign) Pos() lexer.Position { return s.Position }
func (*Assign) statementNode()        {}

// FunctionDecl is `def NAME? (params) block`. When Name is empty this was
// parsed as an expression (anonymous function literal), never as a
// top-level statement by itself.
type FunctionDecl struct {
	Position lexer.Position
	Name     string
	Params   []string
	Body     *Block
}

func (s *FunctionDecl) Pos() lexer.Position { return s.Position }
func (*FunctionDecl) statementNode()        {}
func (*FunctionDecl) expressionNode()       {}

// Return is `return expr? ;`. Expr is nil for a bare `return;`, which
// yields Null.
type Return struct {
	Position lexer.Position
	Value    Expression
}

func (s *Return) Pos() lexer.Position { return s.Position }
func (*Return) statementNode()        {}

// If is `if (cond) then (else (If|Block))?`. At most one of ElseIf and
// Else is set: ElseIf links to the next `else if` in the chain, Else
// holds a trailing plain `else { ... }`.
type If struct {
	Position lexer.Position
	Cond     Expression
	Then     *Block
	ElseIf   *If    // set when this is an `else if` chain link
	Else     *Block // set when there is a plain `else { ... }`
}

func (s *If) Pos() lexer.Position { return s.Position }
func (*If) statementNode()        {}

// While is `while (cond) block`.
type While struct {
	Position lexer.Position
	Cond     Expression
	Body     *Block
}

func (s *While) Pos() lexer.Position { return s.Position }
func (*While) statementNode()        {}
