// Package analyzer implements bidirectional, monomorphic type inference
// with two-phase scope discovery: each block is scanned once to bind every
// name it introduces, then walked again to solve constraints. The first
// pass is what lets mutually recursive definitions reference each other
// without forward declarations.
package analyzer

import (
	"fmt"

	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
	ts "github.com/slate-lang/slate/internal/typesystem"
)

// Checker holds the state of one inference run: the global substitution,
// applied eagerly, plus the lexical context needed to validate break,
// continue and return.
type Checker struct {
	subst       ts.Subst
	nextVar     int
	loopDepth   int
	returnTypes []ts.Type
	currentTok  token.Token
}

func NewChecker() *Checker {
	return &Checker{subst: ts.Subst{}}
}

// Subst exposes the final substitution after a successful run.
func (c *Checker) Subst() ts.Subst { return c.subst }

// CheckProgram infers the top-level block directly in env, so that the
// bindings it introduces persist for the next incremental input.
func (c *Checker) CheckProgram(block *core.Block, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	t, err := c.inferBlockIn(block, env)
	if err != nil {
		return nil, err
	}
	env.ApplySubst(c.subst)
	return t.Apply(c.subst), nil
}

func (c *Checker) fresh() ts.TVar {
	c.nextVar++
	return ts.TVar{Name: fmt.Sprintf("t%d", c.nextVar)}
}

func (c *Checker) resolve(t ts.Type) ts.Type { return t.Apply(c.subst) }

// unify solves one constraint against the global substitution, mapping
// unification failures to positioned diagnostics.
func (c *Checker) unify(t1, t2 ts.Type, tok token.Token) *diagnostics.DiagnosticError {
	s, err := ts.Unify(c.resolve(t1), c.resolve(t2))
	if err != nil {
		if occ, ok := err.(*ts.OccursError); ok {
			return c.errorAt(diagnostics.ErrT004, tok, occ.Error())
		}
		return c.errorAt(diagnostics.ErrT003, tok, "expected %s, got %s", c.resolve(t1), c.resolve(t2))
	}
	c.subst = c.subst.Compose(s)
	return nil
}

// errorAt anchors a diagnostic at tok, falling back to the nearest position
// the checker has seen when tok carries none.
func (c *Checker) errorAt(code diagnostics.Code, tok token.Token, format string, args ...interface{}) *diagnostics.DiagnosticError {
	if tok.Line == 0 {
		tok = c.currentTok
	}
	return diagnostics.NewError(code, tok, format, args...)
}

// typeFromRef converts a surface annotation into a type.
func (c *Checker) typeFromRef(ref *core.TypeRef) (ts.Type, *diagnostics.DiagnosticError) {
	if ref.Result != nil || ref.Params != nil {
		params := make([]ts.Type, 0, len(ref.Params))
		for _, p := range ref.Params {
			pt, err := c.typeFromRef(p)
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
		}
		result, err := c.typeFromRef(ref.Result)
		if err != nil {
			return nil, err
		}
		return ts.TFunc{Params: params, Result: result}, nil
	}
	switch ref.Name {
	case "Int":
		return ts.IntType, nil
	case "Bool":
		return ts.BoolType, nil
	case "String":
		return ts.StringType, nil
	case "Unit":
		return ts.UnitType, nil
	default:
		return nil, c.errorAt(diagnostics.ErrT001, ref.Token, "unknown type %s", ref.Name)
	}
}

// inferBlock types a nested block in its own scope layer.
func (c *Checker) inferBlock(block *core.Block, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	return c.inferBlockIn(block, NewEnclosedTypeEnv(env))
}

// inferBlockIn runs both phases of block typing inside the given layer.
func (c *Checker) inferBlockIn(block *core.Block, env *TypeEnv) (ts.Type, *diagnostics.DiagnosticError) {
	// Phase 1: discovery. Bind every name the block introduces before
	// looking at any initializer or body.
	for _, expr := range block.Exprs {
		let, ok := expr.(*core.Let)
		if !ok {
			continue
		}
		b, err := c.discoveryBinding(let)
		if err != nil {
			return nil, err
		}
		env.Define(let.Name, b)
	}

	// Phase 2: validation.
	var blockType ts.Type = ts.UnitType
	for _, expr := range block.Exprs {
		t, err := c.infer(expr, env)
		if err != nil {
			return nil, err
		}
		blockType = t
	}
	return blockType, nil
}

// discoveryBinding produces the phase-1 binding for a declaration: the
// annotated type when present, a skeleton function type for lambda
// initializers, a fresh variable otherwise.
func (c *Checker) discoveryBinding(let *core.Let) (*Binding, *diagnostics.DiagnosticError) {
	if let.Type != nil {
		declared, err := c.typeFromRef(let.Type)
		if err != nil {
			return nil, err
		}
		return &Binding{Type: declared, Mutable: let.Mutable}, nil
	}
	if lam, ok := let.Init.(*core.Lambda); ok {
		fn, err := c.lambdaSkeleton(lam)
		if err != nil {
			return nil, err
		}
		return &Binding{Type: fn, Mutable: let.Mutable}, nil
	}
	return &Binding{Type: c.fresh(), Mutable: let.Mutable}, nil
}

// lambdaSkeleton builds a function type from a lambda's signature alone:
// annotated positions keep their annotations, the rest get fresh variables.
func (c *Checker) lambdaSkeleton(lam *core.Lambda) (ts.TFunc, *diagnostics.DiagnosticError) {
	params := make([]ts.Type, 0, len(lam.Params))
	optional := 0
	for _, p := range lam.Params {
		var pt ts.Type
		if p.Type != nil {
			declared, err := c.typeFromRef(p.Type)
			if err != nil {
				return ts.TFunc{}, err
			}
			pt = declared
		} else {
			pt = c.fresh()
		}
		params = append(params, pt)
		if p.Default != nil {
			optional++
		}
	}
	var result ts.Type
	if lam.ReturnType != nil {
		declared, err := c.typeFromRef(lam.ReturnType)
		if err != nil {
			return ts.TFunc{}, err
		}
		result = declared
	} else {
		result = c.fresh()
	}
	return ts.TFunc{Params: params, Optional: optional, Result: result}, nil
}
