package analyzer

import (
	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	ts "github.com/slate-lang/slate/internal/typesystem"
)

// inferCall types a function application, handling default-parameter and
// variadic arity. Calls to the special built-ins are ad-hoc polymorphic per
// call site; everything else goes through plain unification.
func (c *Checker) inferCall(e *core.Call, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	if v, ok := e.Fn.(*core.Var); ok {
		if b, found := env.Get(v.Name); found && b.Builtin {
			return c.inferBuiltinCall(v.Name, e, env)
		}
	}

	fnType, err := c.infer(e.Fn, env)
	if err != nil {
		return nil, err
	}

	argTypes := make([]ts.Type, 0, len(e.Args))
	for _, arg := range e.Args {
		at, err := c.infer(arg, env)
		if err != nil {
			return nil, err
		}
		argTypes = append(argTypes, at)
	}

	switch fn := c.resolve(fnType).(type) {
	case ts.TFunc:
		return c.applyKnownFunc(fn, argTypes, e)
	case ts.TVar:
		// Calling something whose type is still unknown: constrain it to a
		// function of exactly this shape.
		result := c.fresh()
		want := ts.TFunc{Params: argTypes, Result: result}
		if err := c.unify(fnType, want, e.Token); err != nil {
			return nil, err
		}
		return c.resolve(result), nil
	default:
		return nil, c.errorAt(diagnostics.ErrT003, e.Token, "expected function, got %s", c.resolve(fnType))
	}
}

func (c *Checker) applyKnownFunc(fn ts.TFunc, argTypes []ts.Type, e *core.Call) (ts.Type, *diagnostics.DiagnosticError) {
	fixed := len(fn.Params)
	n := len(argTypes)

	if n < fixed-fn.Optional {
		return nil, c.errorAt(diagnostics.ErrT005, e.Token,
			"not enough arguments: expected at least %d, got %d", fixed-fn.Optional, n)
	}
	if n > fixed && fn.Variadic == nil {
		return nil, c.errorAt(diagnostics.ErrT005, e.Token,
			"too many arguments: expected %d, got %d", fixed, n)
	}

	for i, at := range argTypes {
		if i < fixed {
			if err := c.unify(fn.Params[i], at, e.Args[i].GetToken()); err != nil {
				return nil, err
			}
		} else {
			if err := c.unify(fn.Variadic, at, e.Args[i].GetToken()); err != nil {
				return nil, err
			}
		}
	}
	// Omitted trailing parameters carry defaults whose types were already
	// unified against the parameter types at the definition site.
	return c.resolve(fn.Result), nil
}

// inferBuiltinCall applies the per-call-site rules for the built-ins, the
// only points of ad-hoc polymorphism in an otherwise monomorphic system.
func (c *Checker) inferBuiltinCall(name string, e *core.Call, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	switch name {
	case "print":
		// Each argument's type is left free, unified only against itself.
		for _, arg := range e.Args {
			if _, err := c.infer(arg, env); err != nil {
				return nil, err
			}
		}
		return ts.UnitType, nil

	case "str":
		if len(e.Args) != 1 {
			return nil, c.errorAt(diagnostics.ErrT005, e.Token,
				"str requires exactly 1 argument, got %d", len(e.Args))
		}
		if _, err := c.infer(e.Args[0], env); err != nil {
			return nil, err
		}
		return ts.StringType, nil

	case "input":
		switch len(e.Args) {
		case 0:
		case 1:
			if err := c.check(e.Args[0], ts.StringType, env); err != nil {
				return nil, err
			}
		default:
			return nil, c.errorAt(diagnostics.ErrT005, e.Token,
				"input accepts at most 1 argument, got %d", len(e.Args))
		}
		return ts.StringType, nil

	case "min", "max":
		if len(e.Args) < 2 {
			return nil, c.errorAt(diagnostics.ErrT005, e.Token,
				"%s requires at least 2 arguments", name)
		}
		for _, arg := range e.Args {
			if err := c.check(arg, ts.IntType, env); err != nil {
				return nil, err
			}
		}
		return ts.IntType, nil

	default:
		return nil, c.errorAt(diagnostics.ErrI001, e.Token, "unknown builtin %s", name)
	}
}
