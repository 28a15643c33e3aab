// Package pipeline wires the language stages together. Each stage is a
// Processor that consumes and returns a shared PipelineContext; the runner
// converts the first diagnostic into a Failure at the stage boundary.
package pipeline

import (
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
)

// PipelineContext carries the intermediate artifacts of one run. AST roots
// and interpreter state are held as interface values so stage packages can
// depend on this package without cycles.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	Tokens   []token.Token
	AstRoot  interface{} // *ast.Program
	CoreRoot interface{} // *core.Block

	// Incremental interpreter state, owned by the runner. Stages read the
	// incoming snapshot and write candidate next-state; the runner decides
	// whether the candidate becomes visible.
	TypeEnv    interface{} // *analyzer.TypeEnv
	RuntimeEnv interface{} // *evaluator.Environment
	Store      interface{} // *evaluator.Store
	Value      interface{} // evaluator.Object produced by the eval stage

	Errors []*diagnostics.DiagnosticError
}

// Failed reports whether any stage has recorded a diagnostic.
func (ctx *PipelineContext) Failed() bool { return len(ctx.Errors) > 0 }

// FirstError returns the first recorded diagnostic, or nil.
func (ctx *PipelineContext) FirstError() *diagnostics.DiagnosticError {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

// Processor is a single pipeline stage.
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

// Run executes the pipeline, stopping at the first stage that records an
// error: later stages must never observe a partial artifact.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Failed() {
			return ctx
		}
	}
	return ctx
}

// Result is the sole externally visible outcome of a pipeline run.
type Result struct {
	OK      bool
	Value   interface{}
	Message string
}

func Success(value interface{}) Result { return Result{OK: true, Value: value} }
func Failure(message string) Result    { return Result{Message: message} }
