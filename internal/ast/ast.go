package ast

import (
	"github.com/brainbang-lang/brainbang/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents one BrainBang statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces. Loop
// bodies are owned child slices, so the tree has no sharing and no
// cycles.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// EnterStatement sets the current cell to an absolute value.
// ent 65;  or  ent 'A';  (the char literal is resolved by the parser)
type EnterStatement struct {
	Token token.Token // The 'ent' token
	Value int
}

func (es *EnterStatement) statementNode()       {}
func (es *EnterStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *EnterStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// EnterInputStatement clears the current cell and reads one input unit
// into it.
// ent input;
type EnterInputStatement struct {
	Token token.Token
}

func (es *EnterInputStatement) statementNode()       {}
func (es *EnterInputStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *EnterInputStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// EnterTextStatement writes a string literal one character per cell,
// advancing the pointer between characters.
// ent "Hi";
type EnterTextStatement struct {
	Token token.Token
	Text  string
}

func (es *EnterTextStatement) statementNode()       {}
func (es *EnterTextStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *EnterTextStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// IncrementStatement adds Value to the current cell. Value defaults
// to 1 when the argument is omitted.
// inc;  inc 5;
type IncrementStatement struct {
	Token token.Token
	Value int
}

func (is *IncrementStatement) statementNode()       {}
func (is *IncrementStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IncrementStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// DecrementStatement subtracts Value from the current cell. Value
// defaults to 1 when the argument is omitted.
// dec;  dec 3;
type DecrementStatement struct {
	Token token.Token
	Value int
}

func (ds *DecrementStatement) statementNode()       {}
func (ds *DecrementStatement) TokenLiteral() string { return ds.Token.Lexeme }
func (ds *DecrementStatement) GetToken() token.Token {
	if ds == nil {
		return token.Token{}
	}
	return ds.Token
}

// ClearStatement zeroes the current cell.
// clr;
type ClearStatement struct {
	Token token.Token
}

func (cs *ClearStatement) statementNode()       {}
func (cs *ClearStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ClearStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// CellOutStatement emits the current cell as one unit of output.
// cellout;
type CellOutStatement struct {
	Token token.Token
}

func (cs *CellOutStatement) statementNode()       {}
func (cs *CellOutStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *CellOutStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// CellInStatement reads one unit of input into the current cell.
// cellin;
type CellInStatement struct {
	Token token.Token
}

func (cs *CellInStatement) statementNode()       {}
func (cs *CellInStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *CellInStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// ShiftStatement moves the pointer Count cells left or right. This is
// the raw-Brainfuck passthrough of the surface language: `<;` and `>;`
// move one cell, `<<4;` and `>>4;` move several.
type ShiftStatement struct {
	Token token.Token
	Right bool
	Count int
}

func (ss *ShiftStatement) statementNode()       {}
func (ss *ShiftStatement) TokenLiteral() string { return ss.Token.Lexeme }
func (ss *ShiftStatement) GetToken() token.Token {
	if ss == nil {
		return token.Token{}
	}
	return ss.Token
}

// LoopStatement repeats Body while the current cell is non-zero.
// loop:
//     <indented body>
type LoopStatement struct {
	Token token.Token // The 'loop' token
	Body  []Statement
}

func (ls *LoopStatement) statementNode()       {}
func (ls *LoopStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LoopStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}
