package pipeline

import (
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/token"
)

// PipelineContext carries the intermediate products of a compilation
// through the stages: source text in, statement lines, AST, and
// finally the emitted instruction stream.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	Lines   []token.Line // set by the line reader
	AstRoot interface{}  // set by the parser (*ast.Program)
	Code    string       // set by the code generator

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// FirstError returns the earliest recorded diagnostic, or nil.
// Compilation is first-error-wins: later stages do not run once a
// stage has failed, so this is the error shown to the user.
func (ctx *PipelineContext) FirstError() *diagnostics.DiagnosticError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

// Processor is a single compilation stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages are skipped once an error has been
// recorded: the language has no error recovery, so products of a failed
// stage would be garbage for the next one.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.HasErrors() {
			break
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
