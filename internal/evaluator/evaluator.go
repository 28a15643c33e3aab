package evaluator

import (
	"io"
	"os"

	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
)

// LineReader is the collaborator the `input` builtin reads from. The REPL
// satisfies it with its line editor; file mode uses a plain stdin reader.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Evaluator walks the core AST. Each block is processed in two phases:
// addresses for every binding are allocated up front, then initializers run
// in the already-extended environment, so sibling closures capture each
// other before either body has executed.
type Evaluator struct {
	store *Store

	Out io.Writer
	In  LineReader

	// currentTok tracks the nearest known source position so deep failures
	// report a sensible location.
	currentTok token.Token
}

func New(store *Store) *Evaluator {
	return &Evaluator{store: store, Out: os.Stdout}
}

// Store returns the store the evaluator mutates.
func (ev *Evaluator) Store() *Store { return ev.store }

func (ev *Evaluator) errorAt(code diagnostics.Code, tok token.Token, format string, args ...interface{}) *Error {
	if tok.Line == 0 {
		tok = ev.currentTok
	}
	diag := diagnostics.NewError(code, tok, format, args...)
	return &Error{Code: diag.Code, Message: diag.Message, Line: diag.Line, Column: diag.Column}
}

// EvalProgram evaluates a top-level block directly in env, so bindings it
// introduces persist for subsequent incremental inputs.
func (ev *Evaluator) EvalProgram(block *core.Block, env *Environment) Object {
	result := ev.evalBlockIn(block, env)
	switch res := result.(type) {
	case *ReturnValue:
		// Impossible after type checking; keep the value to fail soft.
		return res.Value
	case *BreakSignal, *ContinueSignal:
		return ev.errorAt(diagnostics.ErrI001, block.GetToken(), "loop signal escaped to top level")
	}
	return result
}

func (ev *Evaluator) Eval(expr core.Expr, env *Environment) Object {
	if tok := expr.GetToken(); tok.Line != 0 {
		ev.currentTok = tok
	}

	switch e := expr.(type) {
	case *core.Int:
		return &Integer{Value: e.Value}
	case *core.Str:
		return &String{Value: e.Value}
	case *core.Bool:
		return nativeBoolToBooleanObject(e.Value)

	case *core.Var:
		return ev.evalVar(e, env)

	case *core.Unary:
		return ev.evalUnary(e, env)
	case *core.Binary:
		return ev.evalBinary(e, env)

	case *core.Lambda:
		return &Function{Name: e.Name, Params: e.Params, Body: e.Body, Env: env}

	case *core.Call:
		return ev.evalCall(e, env)

	case *core.Let:
		return ev.evalLet(e, env)
	case *core.Assign:
		return ev.evalAssign(e, env)

	case *core.Block:
		return ev.evalBlockIn(e, NewEnclosedEnvironment(env))

	case *core.If:
		return ev.evalIf(e, env)
	case *core.While:
		return ev.evalWhile(e, env)

	case *core.Break:
		return &BreakSignal{}
	case *core.Continue:
		return &ContinueSignal{}
	case *core.Return:
		var val Object = Unit
		if e.Value != nil {
			val = ev.Eval(e.Value, env)
			if isError(val) || isSignal(val) {
				return val
			}
		}
		return &ReturnValue{Value: val}

	default:
		return ev.errorAt(diagnostics.ErrI001, expr.GetToken(), "unhandled core node %T", expr)
	}
}

// evalBlockIn runs both phases of block evaluation inside the given
// environment layer.
func (ev *Evaluator) evalBlockIn(block *core.Block, env *Environment) Object {
	// Phase 1: allocate an address for every binding introduced at this
	// level. No initializer runs yet.
	for _, expr := range block.Exprs {
		let, ok := expr.(*core.Let)
		if !ok {
			continue
		}
		env.Define(let.Name, ev.store.Alloc())
	}

	// Phase 2: execute in order, writing initializer results into the
	// pre-allocated cells.
	var result Object = Unit
	for _, expr := range block.Exprs {
		result = ev.Eval(expr, env)
		if isError(result) || isSignal(result) {
			return result
		}
	}
	return result
}

func (ev *Evaluator) evalVar(e *core.Var, env *Environment) Object {
	addr, ok := env.Get(e.Name)
	if !ok {
		return ev.errorAt(diagnostics.ErrI001, e.Token, "undefined variable %s escaped type checking", e.Name)
	}
	val, ok := ev.store.Get(addr)
	if !ok {
		return ev.errorAt(diagnostics.ErrI001, e.Token, "dangling address for %s", e.Name)
	}
	return val
}

func (ev *Evaluator) evalLet(e *core.Let, env *Environment) Object {
	addr, ok := env.GetLocal(e.Name)
	if !ok {
		addr = ev.store.Alloc()
		env.Define(e.Name, addr)
	}
	val := ev.Eval(e.Init, env)
	if isError(val) || isSignal(val) {
		return val
	}
	if fn, ok := val.(*Function); ok && fn.Name == "" {
		fn.Name = e.Name
	}
	ev.store.Set(addr, val)
	return Unit
}

func (ev *Evaluator) evalAssign(e *core.Assign, env *Environment) Object {
	addr, ok := env.Get(e.Name)
	if !ok {
		return ev.errorAt(diagnostics.ErrI001, e.Token, "undefined variable %s escaped type checking", e.Name)
	}
	val := ev.Eval(e.Value, env)
	if isError(val) || isSignal(val) {
		return val
	}
	ev.store.Set(addr, val)
	return Unit
}

func (ev *Evaluator) evalIf(e *core.If, env *Environment) Object {
	cond := ev.Eval(e.Cond, env)
	if isError(cond) || isSignal(cond) {
		return cond
	}
	b, ok := cond.(*Boolean)
	if !ok {
		return ev.errorAt(diagnostics.ErrI001, e.Token, "non-boolean condition escaped type checking")
	}
	if b.Value {
		return ev.Eval(e.Then, env)
	}
	if e.Else != nil {
		return ev.Eval(e.Else, env)
	}
	return Unit
}

func (ev *Evaluator) evalWhile(e *core.While, env *Environment) Object {
	for {
		cond := ev.Eval(e.Cond, env)
		if isError(cond) || isSignal(cond) {
			return cond
		}
		b, ok := cond.(*Boolean)
		if !ok {
			return ev.errorAt(diagnostics.ErrI001, e.Token, "non-boolean condition escaped type checking")
		}
		if !b.Value {
			return Unit
		}

		result := ev.Eval(e.Body, env)
		switch result.(type) {
		case *BreakSignal:
			return Unit
		case *ContinueSignal:
			continue
		case *Error, *ReturnValue:
			return result
		}
	}
}

func (ev *Evaluator) evalCall(e *core.Call, env *Environment) Object {
	fn := ev.Eval(e.Fn, env)
	if isError(fn) || isSignal(fn) {
		return fn
	}

	// Arguments evaluate left to right in the caller's environment.
	args := make([]Object, 0, len(e.Args))
	for _, arg := range e.Args {
		val := ev.Eval(arg, env)
		if isError(val) || isSignal(val) {
			return val
		}
		args = append(args, val)
	}

	switch callee := fn.(type) {
	case *Builtin:
		return ev.applyBuiltin(callee, args, e.Token)
	case *Function:
		return ev.applyFunction(callee, args, e.Token)
	default:
		return ev.errorAt(diagnostics.ErrR002, e.Token, "%s is not callable", fn.Type())
	}
}

func (ev *Evaluator) applyBuiltin(b *Builtin, args []Object, tok token.Token) Object {
	if len(args) < b.MinArgs || (b.MaxArgs >= 0 && len(args) > b.MaxArgs) {
		return ev.errorAt(diagnostics.ErrR003, tok, "%s: wrong number of arguments (%d)", b.Name, len(args))
	}
	ev.currentTok = tok
	return b.Fn(ev, args)
}

func (ev *Evaluator) applyFunction(fn *Function, args []Object, tok token.Token) Object {
	if len(args) > len(fn.Params) {
		return ev.errorAt(diagnostics.ErrR003, tok, "too many arguments for %s", fn.Inspect())
	}

	// Unsupplied trailing parameters take their default, evaluated in the
	// closure's captured environment, once per call.
	values := make([]Object, len(fn.Params))
	copy(values, args)
	for i := len(args); i < len(fn.Params); i++ {
		p := fn.Params[i]
		if p.Default == nil {
			return ev.errorAt(diagnostics.ErrR003, tok, "missing argument %s for %s", p.Name, fn.Inspect())
		}
		def := ev.Eval(p.Default, fn.Env)
		if isError(def) || isSignal(def) {
			return def
		}
		values[i] = def
	}

	callEnv := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		addr := ev.store.Alloc()
		callEnv.Define(p.Name, addr)
		ev.store.Set(addr, values[i])
	}

	result := ev.Eval(fn.Body, callEnv)
	switch res := result.(type) {
	case *ReturnValue:
		return res.Value
	case *BreakSignal, *ContinueSignal:
		return ev.errorAt(diagnostics.ErrI001, tok, "loop signal escaped a call boundary")
	}
	return result
}
