package lexer

import (
	"strings"

	"github.com/brainbang-lang/brainbang/internal/config"
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/token"
)

// Lexer is the line reader: it splits source text into logical
// statement lines, resolving indentation to whole block levels and
// enforcing the statement terminators. The parser never sees raw text,
// only token.Line records.
type Lexer struct {
	input string

	// indentUnit is the width of one indentation level. It is
	// established by the first indented line and every later line must
	// use a clean multiple of it.
	indentUnit int

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Lines reads the whole input and returns the statement lines in
// source order. The first error stops reading: the partial line
// sequence is discarded.
func (l *Lexer) Lines() ([]token.Line, []*diagnostics.DiagnosticError) {
	lines := []token.Line{}

	for num, raw := range strings.Split(l.input, "\n") {
		line, ok := l.readLine(num+1, raw)
		if len(l.errors) > 0 {
			return nil, l.errors
		}
		if !ok {
			continue // blank or comment-only line
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (l *Lexer) readLine(number int, raw string) (token.Line, bool) {
	raw = strings.TrimSuffix(raw, "\r")

	// Comments run to the end of the physical line.
	if idx := strings.Index(raw, config.CommentMarker); idx >= 0 {
		raw = raw[:idx]
	}

	content := strings.TrimSpace(raw)
	if content == "" {
		return token.Line{}, false
	}

	width := indentWidth(raw)
	level, ok := l.resolveIndent(width)
	if !ok {
		l.errors = append(l.errors, diagnostics.NewError(
			diagnostics.ErrL002,
			token.Token{Line: number, Column: 1},
			"indentation of %d spaces is not a multiple of the indent unit (%d)",
			width, l.indentUnit,
		))
		return token.Line{}, false
	}

	switch {
	case strings.HasSuffix(content, ":"):
		return token.Line{
			Number:       number,
			Indent:       level,
			Text:         strings.TrimSpace(content[:len(content)-1]),
			IsLoopHeader: true,
		}, true
	case strings.HasSuffix(content, ";"):
		return token.Line{
			Number: number,
			Indent: level,
			Text:   strings.TrimSpace(content[:len(content)-1]),
		}, true
	default:
		l.errors = append(l.errors, diagnostics.NewError(
			diagnostics.ErrL001,
			token.Token{Lexeme: content, Line: number, Column: width + 1},
			"statement must end with ';' (or ':' for a loop header): %s",
			content,
		))
		return token.Line{}, false
	}
}

// resolveIndent converts an indentation width in spaces to a block
// level. The first indented line fixes the unit.
func (l *Lexer) resolveIndent(width int) (int, bool) {
	if width == 0 {
		return 0, true
	}
	if l.indentUnit == 0 {
		l.indentUnit = width
		return 1, true
	}
	if width%l.indentUnit != 0 {
		return 0, false
	}
	return width / l.indentUnit, true
}

// indentWidth measures leading whitespace, counting a tab as
// config.TabWidth spaces.
func indentWidth(raw string) int {
	width := 0
	for _, ch := range raw {
		switch ch {
		case ' ':
			width++
		case '\t':
			width += config.TabWidth
		default:
			return width
		}
	}
	return width
}
