package evaluator

import (
	"io"

	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/token"
)

// EvalProcessor runs the evaluator over the core AST, against the runtime
// environment and store in the context (seeding fresh ones when absent).
// Like the analyzer stage, it mutates whatever state the runner hands it;
// the REPL passes clones and swaps them in on success.
type EvalProcessor struct {
	Out io.Writer
	In  LineReader
}

func (ep *EvalProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	block, ok := ctx.CoreRoot.(*core.Block)
	if !ok {
		err := diagnostics.NewError(diagnostics.ErrI001, token.Token{}, "eval: core AST is missing")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	store, ok := ctx.Store.(*Store)
	if !ok || store == nil {
		store = NewStore()
		ctx.Store = store
	}
	env, ok := ctx.RuntimeEnv.(*Environment)
	if !ok || env == nil {
		env = NewGlobalEnvironment(store)
		ctx.RuntimeEnv = env
	}

	ev := New(store)
	if ep.Out != nil {
		ev.Out = ep.Out
	}
	ev.In = ep.In

	result := ev.EvalProgram(block, env)
	if errObj, ok := result.(*Error); ok {
		diag := diagnostics.NewErrorAt(errObj.Code,
			token.Position{Line: errObj.Line, Column: errObj.Column}, "%s", errObj.Message)
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.Value = result
	return ctx
}
