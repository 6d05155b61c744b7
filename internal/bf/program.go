package bf

import (
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
)

// Opcodes of the target language.
const (
	OpInc   = '+'
	OpDec   = '-'
	OpRight = '>'
	OpLeft  = '<'
	OpOut   = '.'
	OpIn    = ','
	OpOpen  = '['
	OpClose = ']'
)

// Program is a loaded instruction stream: the stream reduced to the
// eight opcodes, each keeping its byte offset in the original text so
// runtime diagnostics point at something the user can find.
type Program struct {
	ops     []byte
	offsets []int
	jumps   []int // per op: index of the matching bracket, or -1
}

// Len returns the number of executable opcodes.
func (p *Program) Len() int {
	return len(p.ops)
}

// Load scans an instruction stream, dropping every byte that is not an
// opcode (the compiler may intersperse whitespace), and resolves each
// '[' to its matching ']' up front. An unmatched bracket fails here,
// before any instruction runs.
func Load(code string) (*Program, *diagnostics.DiagnosticError) {
	p := &Program{}

	for i := 0; i < len(code); i++ {
		switch code[i] {
		case OpInc, OpDec, OpRight, OpLeft, OpOut, OpIn, OpOpen, OpClose:
			p.ops = append(p.ops, code[i])
			p.offsets = append(p.offsets, i)
			p.jumps = append(p.jumps, -1)
		}
	}

	var openStack []int
	for i, op := range p.ops {
		switch op {
		case OpOpen:
			openStack = append(openStack, i)
		case OpClose:
			if len(openStack) == 0 {
				return nil, diagnostics.NewRuntimeError(
					diagnostics.ErrR001, p.offsets[i],
					"']' without a matching '['",
				)
			}
			open := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			p.jumps[open] = i
			p.jumps[i] = open
		}
	}

	if len(openStack) > 0 {
		open := openStack[len(openStack)-1]
		return nil, diagnostics.NewRuntimeError(
			diagnostics.ErrR001, p.offsets[open],
			"'[' without a matching ']'",
		)
	}

	return p, nil
}
