package parser

import (
	"strconv"
	"strings"

	"github.com/brainbang-lang/brainbang/internal/ast"
	"github.com/brainbang-lang/brainbang/internal/config"
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
	"github.com/brainbang-lang/brainbang/internal/token"
)

// Parser builds the statement tree from the line reader's output.
// Indentation is the sole block delimiter: a `loop:` header opens a
// nested scope and every following line that is indented deeper
// belongs to its body, recursively, until a line dedents back to the
// header's level or above.
type Parser struct {
	lines []token.Line
	pos   int

	ctx *pipeline.PipelineContext
}

func New(lines []token.Line, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{lines: lines, ctx: ctx}
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = p.parseBlock(0)

	if p.pos < len(p.lines) && !p.ctx.HasErrors() {
		// A leftover line can only mean its indentation never matched
		// an open block level.
		line := p.lines[p.pos]
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001,
			line.Pos(),
			"line is indented to level %d, but no enclosing block is open at that level",
			line.Indent,
		))
	}

	return program
}

// parseBlock consumes statements at exactly the given indent level,
// descending into loop bodies, and stops at the first line whose
// indentation is shallower. Any error stops parsing immediately.
func (p *Parser) parseBlock(indent int) []ast.Statement {
	var stmts []ast.Statement

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		if line.Indent < indent {
			break // dedent: the block is closed by the caller
		}
		if line.Indent > indent {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP001,
				line.Pos(),
				"unexpected indent: level %d where level %d was expected",
				line.Indent, indent,
			))
			return stmts
		}

		p.pos++

		var stmt ast.Statement
		if line.IsLoopHeader {
			stmt = p.parseLoop(line)
		} else {
			stmt = p.parseStatement(line)
		}
		if stmt == nil {
			return stmts // first-error-wins, no recovery
		}
		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *Parser) parseLoop(header token.Line) ast.Statement {
	tok := token.Token{Type: token.KEYWORD, Lexeme: header.Text, Line: header.Number, Column: 1}

	if header.Text != "loop" {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP002, tok,
			"only 'loop' may open a block, got '%s:'", header.Text,
		))
		return nil
	}

	if p.pos >= len(p.lines) || p.lines[p.pos].Indent <= header.Indent {
		// An empty loop would compile to `[]`, which either does
		// nothing or never terminates. Reject it at parse time.
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP005, tok,
			"loop body must be indented deeper than its header",
		))
		return nil
	}

	body := p.parseBlock(header.Indent + 1)
	if p.ctx.HasErrors() {
		return nil
	}

	return &ast.LoopStatement{Token: tok, Body: body}
}

func (p *Parser) parseStatement(line token.Line) ast.Statement {
	keyword, arg := splitKeyword(line.Text)
	tok := token.Token{Type: token.KEYWORD, Lexeme: keyword, Line: line.Number, Column: 1}

	switch keyword {
	case "ent":
		return p.parseEnter(tok, arg)
	case "inc":
		value, ok := p.parseCount(tok, arg, 1)
		if !ok {
			return nil
		}
		return &ast.IncrementStatement{Token: tok, Value: value}
	case "dec":
		value, ok := p.parseCount(tok, arg, 1)
		if !ok {
			return nil
		}
		return &ast.DecrementStatement{Token: tok, Value: value}
	case "clr":
		if !p.expectNoArgument(tok, arg) {
			return nil
		}
		return &ast.ClearStatement{Token: tok}
	case "cellout":
		if !p.expectNoArgument(tok, arg) {
			return nil
		}
		return &ast.CellOutStatement{Token: tok}
	case "cellin":
		if !p.expectNoArgument(tok, arg) {
			return nil
		}
		return &ast.CellInStatement{Token: tok}
	case "<", ">":
		if !p.expectNoArgument(tok, arg) {
			return nil
		}
		tok.Type = token.SHIFT
		return &ast.ShiftStatement{Token: tok, Right: keyword == ">", Count: 1}
	}

	if strings.HasPrefix(keyword, "<<") || strings.HasPrefix(keyword, ">>") {
		return p.parseMultiShift(tok, keyword)
	}

	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP002, tok,
		"unknown statement: %s", line.Text,
	))
	return nil
}

// parseEnter handles the argument forms of `ent`: a numeric literal,
// a char literal, a string literal, or the `input` keyword. Unlike
// inc/dec there is no implicit default.
func (p *Parser) parseEnter(tok token.Token, arg string) ast.Statement {
	if arg == "" {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003, tok,
			"'ent' requires a value",
		))
		return nil
	}

	if arg == "input" {
		return &ast.EnterInputStatement{Token: tok}
	}

	if len(arg) == 3 && arg[0] == '\'' && arg[2] == '\'' {
		return &ast.EnterStatement{Token: tok, Value: int(arg[1])}
	}

	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return &ast.EnterTextStatement{Token: tok, Text: arg[1 : len(arg)-1]}
	}

	value, err := strconv.Atoi(arg)
	if err != nil || value < 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, tok,
			"'ent' value must be a non-negative integer, got %s", arg,
		))
		return nil
	}
	if value > config.MaxCellValue {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, tok,
			"value %d is too large for a single cell (max %d)", value, config.MaxCellValue,
		))
		return nil
	}

	return &ast.EnterStatement{Token: tok, Value: value}
}

// parseCount handles the optional numeric argument of inc/dec.
func (p *Parser) parseCount(tok token.Token, arg string, fallback int) (int, bool) {
	if arg == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(arg)
	if err != nil || value < 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, tok,
			"'%s' amount must be a non-negative integer, got %s", tok.Lexeme, arg,
		))
		return 0, false
	}
	return value, true
}

// parseMultiShift handles `<<n` and `>>n`.
func (p *Parser) parseMultiShift(tok token.Token, text string) ast.Statement {
	tok.Type = token.SHIFT
	countText := text[2:]
	if countText == "" {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003, tok,
			"'%s' requires a shift count", text[:2],
		))
		return nil
	}

	count, err := strconv.Atoi(countText)
	if err != nil || count <= 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, tok,
			"shift count must be a positive integer, got %s", countText,
		))
		return nil
	}

	return &ast.ShiftStatement{Token: tok, Right: text[0] == '>', Count: count}
}

func (p *Parser) expectNoArgument(tok token.Token, arg string) bool {
	if arg == "" {
		return true
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP004, tok,
		"'%s' takes no argument, got %s", tok.Lexeme, arg,
	))
	return false
}

// splitKeyword splits a statement into its leading keyword and the
// rest of the line. The argument keeps internal spacing so string
// literals survive intact.
func splitKeyword(text string) (string, string) {
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		return text[:idx], strings.TrimSpace(text[idx+1:])
	}
	return text, ""
}
