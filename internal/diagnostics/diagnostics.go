package diagnostics

import (
	"fmt"
	"strings"

	"github.com/brainbang-lang/brainbang/internal/token"
)

// ErrorCode identifies one entry of the error taxonomy. L-codes come
// from the line reader, P-codes from the parser, R-codes from the
// virtual machine.
type ErrorCode string

const (
	// Line reader
	ErrL001 ErrorCode = "L001" // malformed line: missing ';' or ':' terminator
	ErrL002 ErrorCode = "L002" // inconsistent indentation

	// Parser
	ErrP001 ErrorCode = "P001" // unmatched indentation (dedent to unknown level)
	ErrP002 ErrorCode = "P002" // unknown command
	ErrP003 ErrorCode = "P003" // missing argument
	ErrP004 ErrorCode = "P004" // invalid value
	ErrP005 ErrorCode = "P005" // empty loop body

	// Virtual machine
	ErrR001 ErrorCode = "R001" // unbalanced brackets
	ErrR002 ErrorCode = "R002" // pointer underflow
	ErrR003 ErrorCode = "R003" // step limit exceeded
)

var titles = map[ErrorCode]string{
	ErrL001: "malformed line",
	ErrL002: "inconsistent indentation",
	ErrP001: "unmatched indentation",
	ErrP002: "unknown command",
	ErrP003: "missing argument",
	ErrP004: "invalid value",
	ErrP005: "empty loop body",
	ErrR001: "unbalanced brackets",
	ErrR002: "pointer underflow",
	ErrR003: "step limit exceeded",
}

// DiagnosticError is the single error type surfaced by every stage.
// Compile-time errors carry a line/column position; runtime errors
// carry the offset of the failing instruction instead.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string
	Line    int
	Column  int
	Offset  int // instruction offset, runtime errors only
	Runtime bool
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, titles[e.Code]))
	if e.Runtime {
		b.WriteString(fmt.Sprintf(" at instruction %d", e.Offset))
	} else {
		if e.File != "" {
			b.WriteString(" in " + e.File)
		}
		b.WriteString(fmt.Sprintf(" at line %d", e.Line))
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// NewError builds a compile-time diagnostic anchored to tok.
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// NewRuntimeError builds a runtime diagnostic anchored to an
// instruction offset in the compiled stream.
func NewRuntimeError(code ErrorCode, offset int, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Runtime: true,
	}
}
