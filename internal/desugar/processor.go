package desugar

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/token"
)

type DesugarProcessor struct{}

func (dp *DesugarProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		err := diagnostics.NewError(diagnostics.ErrI001, token.Token{}, "desugar: AST root is missing")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.CoreRoot = Program(prog)
	return ctx
}
