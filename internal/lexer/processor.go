package lexer

import (
	"github.com/brainbang-lang/brainbang/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	lines, errs := New(ctx.SourceCode).Lines()
	if len(errs) > 0 {
		for _, err := range errs {
			if err.File == "" {
				err.File = ctx.FilePath
			}
		}
		ctx.Errors = append(ctx.Errors, errs...)
		return ctx
	}
	ctx.Lines = lines
	return ctx
}
