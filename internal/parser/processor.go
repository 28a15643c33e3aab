package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		// This case should ideally not be hit if the lexer runs first, but as a safeguard:
		err := diagnostics.NewError(diagnostics.ErrI001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.Tokens, ctx)
	ctx.AstRoot = parser.ParseProgram()

	if prog, ok := ctx.AstRoot.(*ast.Program); ok {
		prog.File = ctx.FilePath
	}
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
