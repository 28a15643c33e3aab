package typesystem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	ts "github.com/slate-lang/slate/internal/typesystem"
)

func TestUnifyCons(t *testing.T) {
	s, err := ts.Unify(ts.IntType, ts.IntType)
	require.NoError(t, err)
	require.Empty(t, s)

	_, err = ts.Unify(ts.IntType, ts.BoolType)
	require.Error(t, err)
	require.IsType(t, &ts.MismatchError{}, err)
}

func TestUnifyVarBinding(t *testing.T) {
	a := ts.TVar{Name: "t1"}
	s, err := ts.Unify(a, ts.StringType)
	require.NoError(t, err)
	require.Equal(t, ts.StringType, a.Apply(s))

	// Symmetric direction.
	s, err = ts.Unify(ts.StringType, a)
	require.NoError(t, err)
	require.Equal(t, ts.StringType, a.Apply(s))
}

func TestUnifyFuncs(t *testing.T) {
	a := ts.TVar{Name: "t1"}
	b := ts.TVar{Name: "t2"}
	f1 := ts.TFunc{Params: []ts.Type{a, ts.IntType}, Result: b}
	f2 := ts.TFunc{Params: []ts.Type{ts.BoolType, ts.IntType}, Result: ts.StringType}

	s, err := ts.Unify(f1, f2)
	require.NoError(t, err)
	require.Equal(t, ts.BoolType, a.Apply(s))
	require.Equal(t, ts.StringType, b.Apply(s))
}

func TestUnifyFuncArityMismatch(t *testing.T) {
	f1 := ts.TFunc{Params: []ts.Type{ts.IntType}, Result: ts.IntType}
	f2 := ts.TFunc{Params: []ts.Type{ts.IntType, ts.IntType}, Result: ts.IntType}
	_, err := ts.Unify(f1, f2)
	require.Error(t, err)
}

func TestOccursCheck(t *testing.T) {
	a := ts.TVar{Name: "t1"}
	f := ts.TFunc{Params: []ts.Type{a}, Result: ts.IntType}
	_, err := ts.Unify(a, f)
	require.Error(t, err)
	require.IsType(t, &ts.OccursError{}, err)
}

// Unification is confluent: solving constraints in either order yields the
// same resolved types.
func TestUnifyConfluence(t *testing.T) {
	mk := func() (ts.TVar, ts.TVar) { return ts.TVar{Name: "a"}, ts.TVar{Name: "b"} }

	a, b := mk()
	s1, err := ts.Unify(a, b)
	require.NoError(t, err)
	s2, err := ts.Unify(b.Apply(s1), ts.IntType)
	require.NoError(t, err)
	first := a.Apply(s1.Compose(s2))

	a, b = mk()
	s1, err = ts.Unify(b, ts.IntType)
	require.NoError(t, err)
	s2, err = ts.Unify(a.Apply(s1), b.Apply(s1))
	require.NoError(t, err)
	second := a.Apply(s1.Compose(s2))

	require.Equal(t, first, second)
	require.Equal(t, ts.IntType, first)
}

func TestApplyBreaksCycles(t *testing.T) {
	// A malformed substitution must not send Apply into infinite recursion.
	s := ts.Subst{"a": ts.TVar{Name: "b"}, "b": ts.TVar{Name: "a"}}
	out := ts.TVar{Name: "a"}.Apply(s)
	require.NotNil(t, out)
}
