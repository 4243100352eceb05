// Package parser builds an AST from a token stream using recursive
// descent for statements and precedence climbing (Pratt parsing) for
// expressions.
package parser

import (
	"fmt"

	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/lexer"
)

// ParseError is one accumulated parse failure with its source position.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

// precedence levels, low to high
const (
	_ int = iota
	lowest
	orPrec
	andPrec
	equality
	compare
	sum
	product
	prefix
	callPrec
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:    orPrec,
	lexer.AND_AND:  andPrec,
	lexer.EQ_EQ:    equality,
	lexer.NOT_EQ:   equality,
	lexer.LT:       compare,
	lexer.GT:       compare,
	lexer.LE:       compare,
	lexer.GE:       compare,
	lexer.PLUS:     sum,
	lexer.MINUS:    sum,
	lexer.ASTERISK: product,
	lexer.SLASH:    product,
	lexer.PERCENT:  product,
	lexer.LPAREN:   callPrec,
	lexer.DOT:      callPrec,
	lexer.LBRACKET: callPrec,
}

// Parser is a hand-written recursive-descent + Pratt parser over a
// lexer.Lexer, holding one token of lookahead.
type Parser struct {
	l    *lexer.Lexer
	prev lexer.Token
	cur  lexer.Token
	peek lexer.Token

	errors []ParseError
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far (parser errors
// only; lexical errors are reported separately via the Lexer).
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) next() {
	p.prev = p.cur
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) addError(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Kind == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Kind == t }

// expect checks that cur matches t, consumes it, and returns true; on
// mismatch it records a diagnostic and returns false without advancing,
// leaving recovery to the caller.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.addError(p.cur.Pos, "expected %s, got %s (%q)", t, p.cur.Kind, p.cur.Lexeme)
	return false
}

// recover skips tokens until a statement boundary (`;` or `}`) or EOF, so
// one malformed statement doesn't suppress discovery of later ones. If
// the failed statement already ended on a `;` or `}`, nothing is skipped.
func (p *Parser) recover() {
	if p.prev.Kind == lexer.SEMICOLON || p.prev.Kind == lexer.RBRACE {
		return
	}
	for !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			return
		}
		if p.curIs(lexer.RBRACE) {
			return
		}
		p.next()
	}
}

// ParseProgram parses the full token stream into a Program. It always
// returns a (possibly partial) AST; check Errors() for failures.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if len(p.errors) > before {
			p.recover()
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case lexer.DEF:
		return p.parseDefStatement()
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IDENT:
		if p.peekIs(lexer.ASSIGN) {
			return p.parseAssign()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseDefStatement handles `def IDENT (params) block` as a named
// function declaration, or dispatches to an expression statement wrapping
// an anonymous function when no name follows ().
func (p *Parser) parseDefStatement() ast.Statement {
	if p.peekIs(lexer.LPAREN) {
		return p.parseExpressionStatement()
	}
	pos := p.cur.Pos
	p.next() // consume 'def'

	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur.Pos, "expected function name, got %s", p.cur.Kind)
		return nil
	}
	name := p.cur.Lexeme
	p.next()

	params, body := p.parseParamsAndBody()
	return &ast.FunctionDecl{Position: pos, Name: name, Params: params, Body: body}
}

func (p *Parser) parseParamsAndBody() ([]string, *ast.Block) {
	if !p.expect(lexer.LPAREN) {
		return nil, nil
	}
	var params []string
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if !p.curIs(lexer.IDENT) {
			p.addError(p.cur.Pos, "expected parameter name, got %s", p.cur.Kind)
			break
		}
		params = append(params, p.cur.Lexeme)
		p.next()
		if p.curIs(lexer.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return params, body
}

func (p *Parser) parseVarDecl() ast.Statement {
	pos := p.cur.Pos
	p.next() // consume 'let'

	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur.Pos, "expected identifier after 'let', got %s", p.cur.Kind)
		return nil
	}
	name := p.cur.Lexeme
	p.next()

	var init ast.Expression
	if p.curIs(lexer.ASSIGN) {
		p.next()
		init = p.parseExpression(lowest)
	}
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	} else {
		p.addError(p.cur.Pos, "expected ';' after variable declaration, got %s", p.cur.Kind)
	}
	return &ast.VarDecl{Position: pos, Name: name, Init: init}
}

func (p *Parser) parseAssign() ast.Statement {
	pos := p.cur.Pos
	name := p.cur.Lexeme
	p.next() // ident
	p.next() // '='
	value := p.parseExpression(lowest)
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	} else {
		p.addError(p.cur.Pos, "expected ';' after assignment, got %s", p.cur.Kind)
	}
	return &ast.Assign{Position: pos, Name: name, Value: value}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.cur.Pos
	p.next() // 'if'
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	node := &ast.If{Position: pos, Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.next()
		if p.curIs(lexer.IF) {
			if elseIf, ok := p.parseIf().(*ast.If); ok {
				node.ElseIf = elseIf
			}
		} else {
			node.Else = p.parseBlock()
		}
	}
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.cur.Pos
	p.next() // 'while'
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.While{Position: pos, Cond: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.cur.Pos
	p.next() // 'return'
	var value ast.Expression
	if !p.curIs(lexer.SEMICOLON) {
		value = p.parseExpression(lowest)
	}
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	} else {
		p.addError(p.cur.Pos, "expected ';' after return, got %s", p.cur.Kind)
	}
	return &ast.Return{Position: pos, Value: value}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur.Pos
	if !p.expect(lexer.LBRACE) {
		return &ast.Block{Position: pos}
	}
	block := &ast.Block{Position: pos}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > before {
			p.recover()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseExpressionStatement parses an expression followed by an optional
// ';' (the trailing semicolon may be omitted for a final top-level
// expression).
func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression(lowest)
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	}
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Position: pos, Expression: expr}
}

// parseExpression implements precedence climbing: parse a prefix
// (primary or unary) expression, then keep folding in infix/postfix
// operators whose precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for !p.curIs(lexer.SEMICOLON) && minPrec < p.curPrecedence() {
		switch p.cur.Kind {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.DOT:
			left = p.parseMember(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		default:
			left = p.parseInfix(left)
		}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Kind {
	case lexer.IDENT:
		e := &ast.Ident{Position: p.cur.Pos, Name: p.cur.Lexeme}
		p.next()
		return e
	case lexer.NUMBER:
		var value float64
		if _, err := fmt.Sscanf(p.cur.Lexeme, "%g", &value); err != nil {
			p.addError(p.cur.Pos, "invalid number literal %q", p.cur.Lexeme)
		}
		e := &ast.NumberLit{Position: p.cur.Pos, Value: value}
		p.next()
		return e
	case lexer.STRING:
		e := &ast.StringLit{Position: p.cur.Pos, Value: p.cur.Lexeme}
		p.next()
		return e
	case lexer.TRUE, lexer.FALSE:
		e := &ast.BoolLit{Position: p.cur.Pos, Value: p.cur.Kind == lexer.TRUE}
		p.next()
		return e
	case lexer.NULL:
		e := &ast.NullLit{Position: p.cur.Pos}
		p.next()
		return e
	case lexer.BANG, lexer.MINUS:
		pos := p.cur.Pos
		op := p.cur.Kind.String()
		p.next()
		right := p.parseExpression(prefix)
		return &ast.PrefixExpr{Position: pos, Operator: op, Right: right}
	case lexer.LPAREN:
		p.next()
		e := p.parseExpression(lowest)
		p.expect(lexer.RPAREN)
		return e
	case lexer.LBRACKET:
		return p.parseArrayLit()
	case lexer.DEF:
		return p.parseAnonFunction()
	default:
		p.addError(p.cur.Pos, "unexpected token %s (%q) in expression", p.cur.Kind, p.cur.Lexeme)
		p.next()
		return nil
	}
}

func (p *Parser) parseAnonFunction() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume 'def'
	params, body := p.parseParamsAndBody()
	return &ast.FunctionDecl{Position: pos, Params: params, Body: body}
}

func (p *Parser) parseArrayLit() ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '['
	lit := &ast.ArrayLit{Position: pos}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		lit.Elements = append(lit.Elements, p.parseExpression(lowest))
		if p.curIs(lexer.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	pos := p.cur.Pos
	op := p.cur.Kind.String()
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.InfixExpr{Position: pos, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '('
	call := &ast.CallExpr{Position: pos, Callee: callee}
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		call.Args = append(call.Args, p.parseExpression(lowest))
		if p.curIs(lexer.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return call
}

func (p *Parser) parseMember(object ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '.'
	if !p.curIs(lexer.IDENT) {
		p.addError(p.cur.Pos, "expected property name after '.', got %s", p.cur.Kind)
		return object
	}
	prop := p.cur.Lexeme
	p.next()
	return &ast.MemberExpr{Position: pos, Object: object, Property: prop}
}

func (p *Parser) parseIndex(object ast.Expression) ast.Expression {
	pos := p.cur.Pos
	p.next() // consume '['
	index := p.parseExpression(lowest)
	p.expect(lexer.RBRACKET)
	return &ast.IndexExpr{Position: pos, Object: object, Index: index}
}
