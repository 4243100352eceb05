package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % == != < > <= >= && || ! = ( ) { } [ ] , ; .`
	toks := collect(t, input)
	want := []TokenType{
		PLUS, MINUS, ASTERISK, SLASH, PERCENT,
		EQ_EQ, NOT_EQ, LT, GT, LE, GE, AND_AND, OR_OR, BANG, ASSIGN,
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, SEMICOLON, DOT,
		EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestNextToken_KeywordsAndIdents(t *testing.T) {
	toks := collect(t, "def let if else while return true false null foo_bar")
	want := []TokenType{DEF, LET, IF, ELSE, WHILE, RETURN, TRUE, FALSE, NULL, IDENT, EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
	assert.Equal(t, "foo_bar", toks[9].Lexeme)
}

func TestNextToken_Numbers(t *testing.T) {
	toks := collect(t, "123 3.14 5.")
	require.Len(t, toks, 5)
	assert.Equal(t, NUMBER, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, NUMBER, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	// "5." - trailing dot without digits is not part of the number.
	assert.Equal(t, NUMBER, toks[2].Kind)
	assert.Equal(t, "5", toks[2].Lexeme)
	assert.Equal(t, DOT, toks[3].Kind)
}

func TestNextToken_Strings(t *testing.T) {
	toks := collect(t, `"hello" 'world' "a\"b" 'c\'d' "x\ny"`)
	require.Len(t, toks, 6)
	assert.Equal(t, "hello", toks[0].Lexeme)
	assert.Equal(t, "world", toks[1].Lexeme)
	assert.Equal(t, `a"b`, toks[2].Lexeme)
	assert.Equal(t, `c'd`, toks[3].Lexeme)
	assert.Equal(t, `x\ny`, toks[4].Lexeme) // \n is not a recognized escape; passes through
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	assert.Equal(t, ILLEGAL, tok.Kind)
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, Position{Line: 1, Column: 1}, l.Errors()[0].Pos)
}

func TestNextToken_Comments(t *testing.T) {
	toks := collect(t, "1 // line comment\n2 /* block\ncomment */ 3")
	require.Len(t, toks, 4)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
	assert.Equal(t, "3", toks[2].Lexeme)
}

func TestNextToken_UnterminatedBlockComment(t *testing.T) {
	l := New("/* never closes")
	tok := l.NextToken()
	assert.Equal(t, EOF, tok.Kind)
	require.Len(t, l.Errors(), 1)
}

func TestNextToken_IllegalSingleAmpOrPipe(t *testing.T) {
	toks := collect(t, "& |")
	require.Len(t, toks, 3)
	assert.Equal(t, ILLEGAL, toks[0].Kind)
	assert.Equal(t, ILLEGAL, toks[1].Kind)
}

func TestNextToken_PositionsAdvanceAcrossLines(t *testing.T) {
	l := New("ab\ncd")
	first := l.NextToken()
	assert.Equal(t, Position{Line: 1, Column: 1}, first.Pos)
	second := l.NextToken()
	assert.Equal(t, Position{Line: 2, Column: 1}, second.Pos)
}

func TestWithTracing_CallsHookForEveryToken(t *testing.T) {
	var seen []TokenType
	l := New("1 + 2;", WithTracing(func(tok Token) {
		seen = append(seen, tok.Kind)
	}))
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
	}
	assert.Equal(t, []TokenType{NUMBER, PLUS, NUMBER, SEMICOLON, EOF}, seen)
}

// Lexer totality: for any input, the token stream eventually reaches EOF
// and keeps returning it.
func TestLexerTotality(t *testing.T) {
	inputs := []string{"", "   ", "???", `"`, "/* x", "let x = 1;"}
	for _, in := range inputs {
		l := New(in)
		var last Token
		for i := 0; i < 1000; i++ {
			last = l.NextToken()
			if last.Kind == EOF {
				break
			}
		}
		assert.Equal(t, EOF, last.Kind, "input %q never reached EOF", in)
		// EOF stays sticky.
		assert.Equal(t, EOF, l.NextToken().Kind)
	}
}
