package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Format renders a single diagnostic with a source-line excerpt and a
// caret pointing at the column, in the "[line:column] message" form an
// embedder is expected to print. When source is empty or the position
// is out of range, only the header line is produced.
func Format(d Diagnostic, source string, useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("[%d:%d] (%s) %s", d.Line, d.Column, d.Phase, d.Message)
	if useColor {
		header = color.New(color.Bold).Sprint(header)
	}
	sb.WriteString(header)

	line := sourceLine(source, d.Line)
	if line == "" {
		return sb.String()
	}
	sb.WriteString("\n")

	lineNumPrefix := fmt.Sprintf("%4d | ", d.Line)
	sb.WriteString(lineNumPrefix)
	sb.WriteString(line)
	sb.WriteString("\n")

	caretCol := d.Column - 1
	if caretCol < 0 {
		caretCol = 0
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumPrefix)+caretCol))
	caret := "^"
	if useColor {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}
	sb.WriteString(caret)

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a list of diagnostics, one per block, separated by
// a blank line.
func FormatAll(diags []Diagnostic, source string, useColor bool) string {
	if len(diags) == 0 {
		return ""
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = Format(d, source, useColor)
	}
	return strings.Join(parts, "\n\n")
}
