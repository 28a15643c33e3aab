package cli

import (
	"io"
	"time"

	"github.com/slate-lang/slate/internal/analyzer"
	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/desugar"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/evaluator"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/parser"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/tracing"
)

// Runner owns the persistent interpreter state and converts stage
// diagnostics into pipeline results at the boundary. Incremental runs
// evaluate against cloned state and swap it in only when every stage
// succeeds, so a failure leaves nothing observable behind.
type Runner struct {
	cfg    config.Config
	tracer *tracing.Tracer
	out    io.Writer
	in     evaluator.LineReader

	typeEnv    *analyzer.TypeEnv
	runtimeEnv *evaluator.Environment
	store      *evaluator.Store

	lastErr *diagnostics.DiagnosticError
}

func NewRunner(cfg config.Config, tracer *tracing.Tracer, out io.Writer, in evaluator.LineReader) *Runner {
	store := evaluator.NewStore()
	return &Runner{
		cfg:        cfg,
		tracer:     tracer,
		out:        out,
		in:         in,
		typeEnv:    analyzer.NewGlobalTypeEnv(),
		runtimeEnv: evaluator.NewGlobalEnvironment(store),
		store:      store,
	}
}

// LastError returns the diagnostic behind the most recent Failure.
func (r *Runner) LastError() *diagnostics.DiagnosticError { return r.lastErr }

// tracedProcessor wraps a stage with boundary tracing.
type tracedProcessor struct {
	name   string
	inner  pipeline.Processor
	tracer *tracing.Tracer
}

func (tp *tracedProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	start := time.Now()
	ctx = tp.inner.Process(ctx)
	tp.tracer.Stage(tp.name, start, ctx.Failed())
	return ctx
}

func (r *Runner) stage(name string, p pipeline.Processor) pipeline.Processor {
	if !r.tracer.Enabled() {
		return p
	}
	return &tracedProcessor{name: name, inner: p, tracer: r.tracer}
}

func (r *Runner) frontend() []pipeline.Processor {
	return []pipeline.Processor{
		r.stage("lex", &lexer.LexerProcessor{}),
		r.stage("parse", &parser.ParserProcessor{}),
		r.stage("desugar", &desugar.DesugarProcessor{}),
	}
}

func (r *Runner) finish(ctx *pipeline.PipelineContext) (pipeline.Result, bool) {
	if ctx.Failed() {
		r.lastErr = ctx.FirstError()
		return pipeline.Failure(r.lastErr.Error()), false
	}
	r.lastErr = nil
	return pipeline.Result{}, true
}

// RunTypecheck runs the pipeline through inference against a throwaway
// clone of the persisted type environment.
func (r *Runner) RunTypecheck(source, path string) pipeline.Result {
	ctx := &pipeline.PipelineContext{SourceCode: source, FilePath: path}
	ctx.TypeEnv = r.typeEnv.Clone()

	procs := append(r.frontend(), r.stage("typecheck", &analyzer.AnalyzerProcessor{}))
	ctx = pipeline.New(procs...).Run(ctx)
	if res, ok := r.finish(ctx); !ok {
		return res
	}
	return pipeline.Success(nil)
}

// RunEval runs the full pipeline against fresh state, independent of the
// persisted snapshot. File mode uses this.
func (r *Runner) RunEval(source, path string) pipeline.Result {
	ctx := &pipeline.PipelineContext{SourceCode: source, FilePath: path}

	procs := append(r.frontend(),
		r.stage("typecheck", &analyzer.AnalyzerProcessor{}),
		r.stage("eval", &evaluator.EvalProcessor{Out: r.out, In: r.in}),
	)
	ctx = pipeline.New(procs...).Run(ctx)
	if res, ok := r.finish(ctx); !ok {
		return res
	}
	return pipeline.Success(ctx.Value)
}

// RunEvalIncremental runs one REPL input against clones of the persisted
// (TypeEnv, RuntimeEnv, Store) triple and swaps the candidates in only
// after both type-check and eval succeed.
func (r *Runner) RunEvalIncremental(source, path string) pipeline.Result {
	ctx := &pipeline.PipelineContext{SourceCode: source, FilePath: path}
	candType := r.typeEnv.Clone()
	candEnv := r.runtimeEnv.Clone()
	candStore := r.store.Clone()
	ctx.TypeEnv = candType
	ctx.RuntimeEnv = candEnv
	ctx.Store = candStore

	procs := append(r.frontend(),
		r.stage("typecheck", &analyzer.AnalyzerProcessor{}),
		r.stage("eval", &evaluator.EvalProcessor{Out: r.out, In: r.in}),
	)
	ctx = pipeline.New(procs...).Run(ctx)
	if res, ok := r.finish(ctx); !ok {
		return res
	}

	r.typeEnv = candType
	r.runtimeEnv = candEnv
	r.store = candStore
	r.tracer.Tracef("snapshot swapped: %d store cells", candStore.Len())
	return pipeline.Success(ctx.Value)
}
