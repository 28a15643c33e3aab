package analyzer

import (
	"github.com/slate-lang/slate/internal/typesystem"
)

// Binding is one entry in a TypeEnv layer.
type Binding struct {
	Type    typesystem.Type
	Mutable bool
	Builtin bool
}

// TypeEnv is a layered mapping from names to bindings. Lookup walks layers
// innermost first; the outermost layer holds the built-ins.
type TypeEnv struct {
	bindings map[string]*Binding
	outer    *TypeEnv
}

func NewTypeEnv() *TypeEnv {
	return &TypeEnv{bindings: make(map[string]*Binding)}
}

func NewEnclosedTypeEnv(outer *TypeEnv) *TypeEnv {
	env := NewTypeEnv()
	env.outer = outer
	return env
}

func (e *TypeEnv) Get(name string) (*Binding, bool) {
	if b, ok := e.bindings[name]; ok {
		return b, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

func (e *TypeEnv) Define(name string, b *Binding) {
	e.bindings[name] = b
}

// Clone copies the innermost layer (deeply enough that binding types can be
// rewritten without touching the original) while sharing the outer chain.
// The REPL uses this to build the candidate environment for one input.
func (e *TypeEnv) Clone() *TypeEnv {
	clone := &TypeEnv{bindings: make(map[string]*Binding, len(e.bindings)), outer: e.outer}
	for name, b := range e.bindings {
		copied := *b
		clone.bindings[name] = &copied
	}
	return clone
}

// ApplySubst rewrites every binding in the innermost layer with the final
// substitution, so persisted types carry no stale unification variables.
func (e *TypeEnv) ApplySubst(s typesystem.Subst) {
	for _, b := range e.bindings {
		b.Type = b.Type.Apply(s)
	}
}
