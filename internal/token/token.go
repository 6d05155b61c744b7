package token

import "fmt"

// Type classifies a lexeme within a statement line.
type Type string

const (
	KEYWORD Type = "KEYWORD" // ent, inc, dec, clr, cellout, cellin, loop
	SHIFT   Type = "SHIFT"   // <, >, <<n, >>n
)

// Token anchors an AST node or diagnostic to a source position.
type Token struct {
	Type   Type
	Lexeme string
	Line   int // 1-based physical line
	Column int // 1-based column of the first rune
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Line is one logical statement produced by the line reader: the
// terminator is already stripped and the indentation resolved to a
// whole number of units.
type Line struct {
	Number       int    // 1-based physical line number
	Indent       int    // indentation depth in units
	Text         string // statement content without terminator
	IsLoopHeader bool   // line ended with ':' instead of ';'
}

// Pos returns a Token positioned at the start of the line's content,
// for diagnostics that concern the line as a whole.
func (l Line) Pos() Token {
	return Token{Lexeme: l.Text, Line: l.Number, Column: 1}
}
