package analyzer

import (
	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	ts "github.com/slate-lang/slate/internal/typesystem"
)

// infer synthesizes the type of one core expression.
func (c *Checker) infer(expr core.Expr, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	if tok := expr.GetToken(); tok.Line != 0 {
		c.currentTok = tok
	}

	switch e := expr.(type) {
	case *core.Int:
		return ts.IntType, nil
	case *core.Str:
		return ts.StringType, nil
	case *core.Bool:
		return ts.BoolType, nil

	case *core.Var:
		b, ok := env.Get(e.Name)
		if !ok {
			return nil, c.errorAt(diagnostics.ErrT002, e.Token, "undefined: %s", e.Name)
		}
		return c.resolve(b.Type), nil

	case *core.Unary:
		return c.inferUnary(e, env)
	case *core.Binary:
		return c.inferBinary(e, env)
	case *core.Call:
		return c.inferCall(e, env)
	case *core.Lambda:
		return c.inferLambda(e, env)

	case *core.Let:
		return c.inferLet(e, env)

	case *core.Assign:
		b, ok := env.Get(e.Name)
		if !ok {
			return nil, c.errorAt(diagnostics.ErrT002, e.Token, "undefined: %s", e.Name)
		}
		if !b.Mutable {
			return nil, c.errorAt(diagnostics.ErrT006, e.Token,
				"cannot assign to immutable binding '%s'", e.Name)
		}
		vt, err := c.infer(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := c.unify(b.Type, vt, e.Token); err != nil {
			return nil, err
		}
		return ts.UnitType, nil

	case *core.Block:
		return c.inferBlock(e, env)

	case *core.If:
		return c.inferIf(e, env)

	case *core.While:
		return c.inferWhile(e, env)

	case *core.Break:
		if c.loopDepth == 0 {
			return nil, c.errorAt(diagnostics.ErrT007, e.Token, "break outside a while loop")
		}
		return ts.UnitType, nil
	case *core.Continue:
		if c.loopDepth == 0 {
			return nil, c.errorAt(diagnostics.ErrT007, e.Token, "continue outside a while loop")
		}
		return ts.UnitType, nil

	case *core.Return:
		if len(c.returnTypes) == 0 {
			return nil, c.errorAt(diagnostics.ErrT008, e.Token, "return outside a function")
		}
		var vt ts.Type = ts.UnitType
		if e.Value != nil {
			t, err := c.infer(e.Value, env)
			if err != nil {
				return nil, err
			}
			vt = t
		}
		if err := c.unify(c.returnTypes[len(c.returnTypes)-1], vt, e.Token); err != nil {
			return nil, err
		}
		// A return never yields in place, so its own type is a fresh
		// variable: a body whose tail diverges unifies with any declared
		// result instead of forcing Unit.
		return c.fresh(), nil

	default:
		return nil, c.errorAt(diagnostics.ErrI001, expr.GetToken(), "unhandled core node %T", expr)
	}
}

// check validates expr against an expected type.
func (c *Checker) check(expr core.Expr, expected ts.Type, env *TypeEnv) *diagnostics.DiagnosticError {
	t, err := c.infer(expr, env)
	if err != nil {
		return err
	}
	return c.unify(expected, t, expr.GetToken())
}

func (c *Checker) inferUnary(e *core.Unary, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	switch e.Operator {
	case "!":
		if err := c.check(e.Operand, ts.BoolType, env); err != nil {
			return nil, err
		}
		return ts.BoolType, nil
	default: // unary minus
		if err := c.check(e.Operand, ts.IntType, env); err != nil {
			return nil, err
		}
		return ts.IntType, nil
	}
}

func (c *Checker) inferBinary(e *core.Binary, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	switch e.Operator {
	case "+":
		lt, err := c.infer(e.Left, env)
		if err != nil {
			return nil, err
		}
		rt, err := c.infer(e.Right, env)
		if err != nil {
			return nil, err
		}
		// + is overloaded: string concatenation when either side is known
		// to be a string, integer addition otherwise.
		operand := ts.Type(ts.IntType)
		if c.resolve(lt) == ts.Type(ts.StringType) || c.resolve(rt) == ts.Type(ts.StringType) {
			operand = ts.StringType
		}
		if err := c.unify(operand, lt, e.Left.GetToken()); err != nil {
			return nil, err
		}
		if err := c.unify(operand, rt, e.Right.GetToken()); err != nil {
			return nil, err
		}
		return operand, nil

	case "-", "*", "/", "%":
		if err := c.check(e.Left, ts.IntType, env); err != nil {
			return nil, err
		}
		if err := c.check(e.Right, ts.IntType, env); err != nil {
			return nil, err
		}
		return ts.IntType, nil

	case "==", "!=":
		lt, err := c.infer(e.Left, env)
		if err != nil {
			return nil, err
		}
		rt, err := c.infer(e.Right, env)
		if err != nil {
			return nil, err
		}
		if err := c.unify(lt, rt, e.Token); err != nil {
			return nil, err
		}
		return ts.BoolType, nil

	case "<", "<=", ">", ">=":
		if err := c.check(e.Left, ts.IntType, env); err != nil {
			return nil, err
		}
		if err := c.check(e.Right, ts.IntType, env); err != nil {
			return nil, err
		}
		return ts.BoolType, nil

	case "&&", "||":
		if err := c.check(e.Left, ts.BoolType, env); err != nil {
			return nil, err
		}
		if err := c.check(e.Right, ts.BoolType, env); err != nil {
			return nil, err
		}
		return ts.BoolType, nil

	default:
		return nil, c.errorAt(diagnostics.ErrI001, e.Token, "unknown operator %s", e.Operator)
	}
}

// inferLambda types a function literal: parameters extend a new scope
// layer, defaults are checked against their parameter's type, and the body
// is unified with the declared or fresh return type.
func (c *Checker) inferLambda(e *core.Lambda, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	fn, err := c.lambdaSkeleton(e)
	if err != nil {
		return nil, err
	}

	inner := NewEnclosedTypeEnv(env)
	for i, p := range e.Params {
		inner.Define(p.Name, &Binding{Type: fn.Params[i]})
	}
	for i, p := range e.Params {
		if p.Default == nil {
			continue
		}
		// Defaults are evaluated in the defining environment at call time;
		// they are typed in the same scope.
		if err := c.check(p.Default, fn.Params[i], env); err != nil {
			return nil, err
		}
	}

	// The body is a fresh loop context: break/continue cannot cross a call
	// boundary.
	savedLoopDepth := c.loopDepth
	c.loopDepth = 0
	c.returnTypes = append(c.returnTypes, fn.Result)

	bodyType, err := c.infer(e.Body, inner)

	c.returnTypes = c.returnTypes[:len(c.returnTypes)-1]
	c.loopDepth = savedLoopDepth
	if err != nil {
		return nil, err
	}

	if err := c.unify(fn.Result, bodyType, e.Body.GetToken()); err != nil {
		return nil, err
	}
	return c.resolve(fn), nil
}

func (c *Checker) inferLet(e *core.Let, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	b, ok := env.Get(e.Name)
	if !ok {
		// A Let outside a block context; discovery never saw it.
		var derr *diagnostics.DiagnosticError
		b, derr = c.discoveryBinding(e)
		if derr != nil {
			return nil, derr
		}
		env.Define(e.Name, b)
	}
	it, err := c.infer(e.Init, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(b.Type, it, e.Token); err != nil {
		return nil, err
	}
	return ts.UnitType, nil
}

func (c *Checker) inferIf(e *core.If, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	if err := c.check(e.Cond, ts.BoolType, env); err != nil {
		return nil, err
	}
	thenType, err := c.infer(e.Then, env)
	if err != nil {
		return nil, err
	}
	if e.Else == nil {
		// Block-form if without else yields Unit, so the branch must too.
		if err := c.unify(ts.UnitType, thenType, e.Then.GetToken()); err != nil {
			return nil, err
		}
		return ts.UnitType, nil
	}
	elseType, err := c.infer(e.Else, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(thenType, elseType, e.Token); err != nil {
		return nil, err
	}
	return c.resolve(thenType), nil
}

func (c *Checker) inferWhile(e *core.While, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	if err := c.check(e.Cond, ts.BoolType, env); err != nil {
		return nil, err
	}
	c.loopDepth++
	bodyType, err := c.infer(e.Body, env)
	c.loopDepth--
	if err != nil {
		return nil, err
	}
	if err := c.unify(ts.UnitType, bodyType, e.Body.GetToken()); err != nil {
		return nil, err
	}
	return ts.UnitType, nil
}
