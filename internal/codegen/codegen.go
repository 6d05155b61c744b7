package codegen

import (
	"fmt"
	"strings"

	"github.com/brainbang-lang/brainbang/internal/ast"
)

// Generator walks the statement tree depth-first and emits the
// Brainfuck instruction stream. Every statement variant has a total
// translation, so generation cannot fail once parsing succeeded; the
// error return guards only against a malformed tree reaching us.
//
// No optimization is performed: `inc 5` is five '+' characters, and
// that is the whole story.
type Generator struct {
	out strings.Builder
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(program *ast.Program) (string, error) {
	g.out.Reset()
	if err := g.genStatements(program.Statements); err != nil {
		return "", err
	}
	return g.out.String(), nil
}

func (g *Generator) genStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.EnterStatement:
		// Brainfuck has no "set" primitive, so an absolute value is a
		// zeroing loop followed by the right number of increments. The
		// zeroing makes `ent` idempotent regardless of prior content.
		g.out.WriteString("[-]")
		g.repeat('+', s.Value)

	case *ast.EnterInputStatement:
		g.out.WriteString("[-],")

	case *ast.EnterTextStatement:
		for i, ch := range []byte(s.Text) {
			if i > 0 {
				g.out.WriteByte('>')
			}
			g.out.WriteString("[-]")
			g.repeat('+', int(ch))
		}

	case *ast.IncrementStatement:
		g.repeat('+', s.Value)

	case *ast.DecrementStatement:
		g.repeat('-', s.Value)

	case *ast.ClearStatement:
		g.out.WriteString("[-]")

	case *ast.CellOutStatement:
		g.out.WriteByte('.')

	case *ast.CellInStatement:
		g.out.WriteByte(',')

	case *ast.ShiftStatement:
		op := byte('<')
		if s.Right {
			op = '>'
		}
		g.repeat(op, s.Count)

	case *ast.LoopStatement:
		g.out.WriteByte('[')
		if err := g.genStatements(s.Body); err != nil {
			return err
		}
		g.out.WriteByte(']')

	default:
		return fmt.Errorf("codegen: unsupported statement %T", stmt)
	}

	return nil
}

func (g *Generator) repeat(op byte, n int) {
	for i := 0; i < n; i++ {
		g.out.WriteByte(op)
	}
}
