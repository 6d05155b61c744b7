package codegen_test

import (
	"strings"
	"testing"

	"github.com/brainbang-lang/brainbang/internal/codegen"
	"github.com/brainbang-lang/brainbang/internal/lexer"
	"github.com/brainbang-lang/brainbang/internal/parser"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
)

// compile runs the full pipeline and returns the instruction stream.
func compile(t *testing.T, input string) string {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&codegen.CodegenProcessor{},
	)
	ctx = p.Run(ctx)
	if ctx.HasErrors() {
		t.Fatalf("compilation error: %s", ctx.FirstError().Error())
	}
	return ctx.Code
}

func TestStatements(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"ent_zero", "ent 0;", "[-]"},
		{"ent_value", "ent 5;", "[-]+++++"},
		{"ent_char", "ent 'A';", "[-]" + strings.Repeat("+", 65)},
		{"ent_input", "ent input;", "[-],"},
		{"inc_default", "inc;", "+"},
		{"inc_amount", "inc 4;", "++++"},
		{"inc_zero", "inc 0;", ""},
		{"dec_default", "dec;", "-"},
		{"dec_amount", "dec 3;", "---"},
		{"clear", "clr;", "[-]"},
		{"cellout", "cellout;", "."},
		{"cellin", "cellin;", ","},
		{"shift_right", ">;", ">"},
		{"shift_left", "<;", "<"},
		{"multi_shift_right", ">>4;", ">>>>"},
		{"multi_shift_left", "<<3;", "<<<"},
		{"sequence", "ent 2;\ninc;\ncellout;", "[-]++" + "+" + "."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := compile(t, tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestLoopEmitsBalancedBrackets(t *testing.T) {
	got := compile(t, "ent 0;\ninc 1;\nloop:\n    cellout;\n    >;")
	if got != "[-]+[.>]" {
		t.Errorf("expected %q, got %q", "[-]+[.>]", got)
	}
}

func TestNestedLoops(t *testing.T) {
	input := "ent 3;\nloop:\n    loop:\n        dec;\n    dec;"
	got := compile(t, input)
	expected := "[-]+++[[-]-]"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestStringLiteral(t *testing.T) {
	got := compile(t, `ent "Hi";`)
	expected := "[-]" + strings.Repeat("+", 'H') + ">" + "[-]" + strings.Repeat("+", 'i')
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestOutputContainsOnlyOpcodes(t *testing.T) {
	got := compile(t, "ent 'x';\nloop:\n    cellout;\n    dec 2;\n>>3;\ncellin;")
	for i := 0; i < len(got); i++ {
		switch got[i] {
		case '+', '-', '<', '>', '.', ',', '[', ']':
		default:
			t.Fatalf("non-opcode byte %q at offset %d in %q", got[i], i, got)
		}
	}
}

func TestBracketsBalancedByConstruction(t *testing.T) {
	programs := []string{
		"loop:\n    dec;",
		"loop:\n    loop:\n        loop:\n            dec;",
		"ent 1;\nloop:\n    cellout;\n    loop:\n        dec;\n    inc;\nclr;",
	}

	for _, input := range programs {
		code := compile(t, input)
		depth := 0
		for _, ch := range code {
			switch ch {
			case '[':
				depth++
			case ']':
				depth--
			}
			if depth < 0 {
				t.Fatalf("unbalanced ']' in %q (source %q)", code, input)
			}
		}
		if depth != 0 {
			t.Fatalf("unclosed '[' in %q (source %q)", code, input)
		}
	}
}
