package diag

import (
	"errors"
	"testing"

	"github.com/chtz/miniscript/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CarriesPositionAndPhase(t *testing.T) {
	d := New(PhaseLex, lexer.Position{Line: 3, Column: 7}, "illegal character")
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, 7, d.Column)
	assert.Equal(t, PhaseLex, d.Phase)
}

func TestResolveTypeArithmetic_RoundTripThroughFromOops(t *testing.T) {
	pos := lexer.Position{Line: 5, Column: 2}

	cases := []struct {
		name string
		err  error
	}{
		{"resolve", Resolve(pos, "undefined variable: %s", "x")},
		{"type", Type(pos, "cannot negate a %s", "string")},
		{"arithmetic", Arithmetic(pos, "division by zero")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := FromOops(tc.err)
			assert.Equal(t, 5, d.Line)
			assert.Equal(t, 2, d.Column)
			assert.Equal(t, PhaseRuntime, d.Phase)
			assert.NotEmpty(t, d.Message)
		})
	}
}

func TestHost_WrapsUnderlyingError(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	underlying := errors.New("boom")
	err := Host(pos, underlying)
	d := FromOops(err)
	assert.Equal(t, 1, d.Line)
	assert.Contains(t, d.Message, "boom")
}

func TestFromOops_NonOopsErrorDegradesToSentinel(t *testing.T) {
	d := FromOops(errors.New("plain error"))
	assert.Equal(t, 0, d.Line)
	assert.Equal(t, 0, d.Column)
	assert.Equal(t, "plain error", d.Message)
}

func TestFormat_IncludesSourceLineAndCaret(t *testing.T) {
	d := New(PhaseRuntime, lexer.Position{Line: 2, Column: 5}, "division by zero")
	source := "let x = 1;\nlet y = 1 / 0;\n"
	out := Format(d, source, false)
	require.Contains(t, out, "division by zero")
	assert.Contains(t, out, "let y = 1 / 0;")
	assert.Contains(t, out, "^")
}

func TestFormat_NoSourceOnlyHeader(t *testing.T) {
	d := New(PhaseParse, lexer.Position{Line: 1, Column: 1}, "unexpected token")
	out := Format(d, "", false)
	assert.Equal(t, "[1:1] (parse) unexpected token", out)
}

func TestFormatAll_JoinsMultipleDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		New(PhaseLex, lexer.Position{Line: 1, Column: 1}, "illegal character"),
		New(PhaseParse, lexer.Position{Line: 2, Column: 3}, "unexpected token"),
	}
	out := FormatAll(diags, "", false)
	assert.Contains(t, out, "illegal character")
	assert.Contains(t, out, "unexpected token")
}

func TestFormatAll_EmptyYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", FormatAll(nil, "", false))
}
