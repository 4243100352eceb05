// Package lexer turns script source text into a stream of tokens.
package lexer

import "fmt"

// Position identifies a single point in source text by 1-based line and
// column. Line/column are rune counts, not byte offsets, so multi-byte
// UTF-8 identifiers report sane columns.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Zero is the sentinel position used when no real location is available.
var Zero = Position{}
