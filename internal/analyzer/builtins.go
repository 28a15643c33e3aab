package analyzer

import (
	ts "github.com/slate-lang/slate/internal/typesystem"
)

// Built-in signatures, seeded in the outermost type layer. print, str, min
// and max get per-call-site handling in inferCall; these types cover
// first-class uses (`val f = min`).
func newBuiltinLayer() *TypeEnv {
	layer := NewTypeEnv()
	layer.Define("print", &Binding{
		Type:    ts.TFunc{Variadic: ts.TVar{Name: "print.arg"}, Result: ts.UnitType},
		Builtin: true,
	})
	layer.Define("input", &Binding{
		Type:    ts.TFunc{Params: []ts.Type{ts.StringType}, Optional: 1, Result: ts.StringType},
		Builtin: true,
	})
	layer.Define("str", &Binding{
		Type:    ts.TFunc{Params: []ts.Type{ts.TVar{Name: "str.arg"}}, Result: ts.StringType},
		Builtin: true,
	})
	layer.Define("min", &Binding{
		Type:    ts.TFunc{Params: []ts.Type{ts.IntType, ts.IntType}, Variadic: ts.IntType, Result: ts.IntType},
		Builtin: true,
	})
	layer.Define("max", &Binding{
		Type:    ts.TFunc{Params: []ts.Type{ts.IntType, ts.IntType}, Variadic: ts.IntType, Result: ts.IntType},
		Builtin: true,
	})
	return layer
}

// NewGlobalTypeEnv returns a fresh user-level environment whose outer layer
// holds the built-ins.
func NewGlobalTypeEnv() *TypeEnv {
	return NewEnclosedTypeEnv(newBuiltinLayer())
}
