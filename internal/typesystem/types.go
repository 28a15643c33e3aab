package typesystem

import (
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []string
}

// TCon is a nullary type constructor: Int, Bool, String, Unit.
type TCon struct {
	Name string
}

var (
	IntType    = TCon{Name: "Int"}
	BoolType   = TCon{Name: "Bool"}
	StringType = TCon{Name: "String"}
	UnitType   = TCon{Name: "Unit"}
)

func (t TCon) String() string              { return t.Name }
func (t TCon) Apply(Subst) Type            { return t }
func (t TCon) FreeTypeVariables() []string { return nil }

// TVar is a unification variable.
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []string { return []string{t.Name} }

// TFunc is a function type. Optional counts the trailing parameters that
// carry defaults and may be omitted at call sites; Variadic, when non-nil,
// is the element type accepted after the fixed parameters.
type TFunc struct {
	Params   []Type
	Optional int
	Variadic Type
	Result   Type
}

func (t TFunc) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if t.Variadic != nil {
		if len(t.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Variadic.String())
		sb.WriteString("...")
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Result.String())
	return sb.String()
}

func (t TFunc) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []string {
	var free []string
	seen := make(map[string]bool)
	add := func(names []string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				free = append(free, n)
			}
		}
	}
	for _, p := range t.Params {
		add(p.FreeTypeVariables())
	}
	if t.Variadic != nil {
		add(t.Variadic.FreeTypeVariables())
	}
	add(t.Result.FreeTypeVariables())
	return free
}

// Subst maps type-variable names to types.
type Subst map[string]Type

// Compose returns a substitution equivalent to applying s first, then other.
func (s Subst) Compose(other Subst) Subst {
	out := make(Subst, len(s)+len(other))
	for name, t := range s {
		out[name] = t.Apply(other)
	}
	for name, t := range other {
		if _, ok := out[name]; !ok {
			out[name] = t
		}
	}
	return out
}

// applyWithCycleCheck applies a substitution, breaking self-referential
// chains instead of recursing forever.
func applyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		replacement, ok := s[typ.Name]
		if !ok {
			return typ
		}
		if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
			return typ
		}
		visited[typ.Name] = true
		out := applyWithCycleCheck(replacement, s, visited)
		delete(visited, typ.Name)
		return out
	case TFunc:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = applyWithCycleCheck(p, s, visited)
		}
		var variadic Type
		if typ.Variadic != nil {
			variadic = applyWithCycleCheck(typ.Variadic, s, visited)
		}
		return TFunc{
			Params:   params,
			Optional: typ.Optional,
			Variadic: variadic,
			Result:   applyWithCycleCheck(typ.Result, s, visited),
		}
	default:
		return t
	}
}
