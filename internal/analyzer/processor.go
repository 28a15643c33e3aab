package analyzer

import (
	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/token"
)

// AnalyzerProcessor runs type inference against the type environment in the
// context, seeding a fresh global environment when none is present. The
// environment in the context is mutated; callers that need atomicity pass a
// clone and swap it in on success.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	block, ok := ctx.CoreRoot.(*core.Block)
	if !ok {
		err := diagnostics.NewError(diagnostics.ErrI001, token.Token{}, "analyzer: core AST is missing")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	env, ok := ctx.TypeEnv.(*TypeEnv)
	if !ok || env == nil {
		env = NewGlobalTypeEnv()
		ctx.TypeEnv = env
	}

	checker := NewChecker()
	if _, err := checker.CheckProgram(block, env); err != nil {
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
