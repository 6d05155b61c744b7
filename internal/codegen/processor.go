package codegen

import (
	"github.com/brainbang-lang/brainbang/internal/ast"
	"github.com/brainbang-lang/brainbang/internal/diagnostics"
	"github.com/brainbang-lang/brainbang/internal/pipeline"
	"github.com/brainbang-lang/brainbang/internal/token"
)

type CodegenProcessor struct{}

func (cp *CodegenProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		err := diagnostics.NewError(diagnostics.ErrP002, token.Token{}, "codegen: AST root is not a program")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	code, err := New().Generate(program)
	if err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP002, token.Token{}, "%s", err.Error(),
		))
		return ctx
	}

	ctx.Code = code
	return ctx
}
