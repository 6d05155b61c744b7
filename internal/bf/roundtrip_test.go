package bf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brainbang-lang/brainbang/internal/bf"
	"github.com/brainbang-lang/brainbang/internal/codegen"
	"github.com/brainbang-lang/brainbang/internal/lexer"
	"github.com/brainbang-lang/brainbang/internal/parser"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
)

// compile runs the full compiler pipeline on BrainBang source.
func compile(t *testing.T, source string) string {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
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

func TestCompiledProgramsNeverTripBracketCheck(t *testing.T) {
	sources := []string{
		"ent 5;",
		"loop:\n    dec;",
		"ent 2;\nloop:\n    loop:\n        dec;\n    dec;",
		"ent 1;\nloop:\n    cellout;\n    >;",
		`ent "ok";`,
	}

	for _, source := range sources {
		if _, derr := bf.Load(compile(t, source)); derr != nil {
			t.Errorf("compiler emitted unbalanced brackets for %q: %s", source, derr.Error())
		}
	}
}

func TestEnterSetsAbsoluteValue(t *testing.T) {
	// `ent` must land on the absolute value no matter what the cell
	// held before: here the cell is dirtied first, then set.
	source := "inc 200;\nent 7;\ncellout;"
	got := run(t, compile(t, source), "")
	if got != "\x07" {
		t.Errorf("expected output 0x07, got %q", got)
	}
}

func TestTerminatingOutputLoop(t *testing.T) {
	source := "ent 0;\ninc 1;\nloop:\n    cellout;\n    >;"
	code := compile(t, source)
	if code != "[-]+[.>]" {
		t.Fatalf("expected %q, got %q", "[-]+[.>]", code)
	}
	got := run(t, code, "")
	if got != "\x01" {
		t.Errorf("expected one output byte 0x01, got %q", got)
	}
}

func TestCountdownProgram(t *testing.T) {
	// Print 3, 2, 1 as raw byte values.
	source := "ent 3;\nloop:\n    cellout;\n    dec;"
	got := run(t, compile(t, source), "")
	if got != "\x03\x02\x01" {
		t.Errorf("expected countdown bytes, got %q", got)
	}
}

func TestStringProgramPrints(t *testing.T) {
	source := "ent \"Hi\";\ncellout;\n<;\ncellout;"
	got := run(t, compile(t, source), "")
	// The pointer rests on the last cell written, so the characters
	// come back out in reverse.
	if got != "iH" {
		t.Errorf("expected %q, got %q", "iH", got)
	}
}

func TestEnterInputRoundTrip(t *testing.T) {
	source := "inc 50;\nent input;\ncellout;"
	got := run(t, compile(t, source), "Z")
	if got != "Z" {
		t.Errorf("expected %q, got %q", "Z", got)
	}
}

func TestEchoLoopProgram(t *testing.T) {
	source := "cellin;\ncellout;\ncellin;\ncellout;"
	got := run(t, compile(t, source), "ok")
	if got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
}

func TestWraparoundThroughCompiler(t *testing.T) {
	source := "ent 0;\ndec 1;\ncellout;"
	got := run(t, compile(t, source), "")
	if got != "\xff" {
		t.Errorf("expected 0xff, got %q", got)
	}
}

func TestModuloThroughCompiler(t *testing.T) {
	// inc 300 on a zeroed cell is 300 mod 256.
	source := "ent 0;\ninc 300;\ncellout;"
	got := run(t, compile(t, source), "")
	if got != string(rune(300%256)) {
		t.Errorf("expected %d, got %q", 300%256, got)
	}
}

func TestHelloThroughShifts(t *testing.T) {
	source := strings.Join([]string{
		"ent 'H';",
		"cellout;",
		">;",
		"ent 'i';",
		"cellout;",
	}, "\n")
	got := run(t, compile(t, source), "")
	if got != "Hi" {
		t.Errorf("expected %q, got %q", "Hi", got)
	}
}

func TestCompiledProgramWithStepLimit(t *testing.T) {
	source := "ent 3;\nloop:\n    dec;"
	var out bytes.Buffer
	if err := bf.Execute(compile(t, source), strings.NewReader(""), &out, 1000); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
