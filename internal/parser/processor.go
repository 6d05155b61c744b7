package parser

import (
	"github.com/brainbang-lang/brainbang/internal/ast"
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
	"github.com/brainbang-lang/brainbang/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Lines == nil {
		// This case should ideally not be hit if the line reader runs
		// first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrP002, token.Token{}, "parser: line sequence is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.Lines, ctx)
	ctx.AstRoot = parser.ParseProgram()

	if prog, ok := ctx.AstRoot.(*ast.Program); ok {
		prog.File = ctx.FilePath
	}

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
