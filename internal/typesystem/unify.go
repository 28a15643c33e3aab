package typesystem

import (
	"reflect"
)

// Unify attempts to find a substitution that makes t1 and t2 equal. It
// enforces strict equality (invariant); the system has no subtyping.
func Unify(t1, t2 Type) (Subst, error) {
	if reflect.DeepEqual(t1, t2) {
		return Subst{}, nil
	}

	if v, ok := t1.(TVar); ok {
		return bindVar(v, t2)
	}
	if v, ok := t2.(TVar); ok {
		return bindVar(v, t1)
	}

	f1, ok1 := t1.(TFunc)
	f2, ok2 := t2.(TFunc)
	if ok1 && ok2 {
		return unifyFuncs(f1, f2)
	}

	return nil, &MismatchError{Expected: t1, Got: t2}
}

// bindVar binds a type variable after the occurs check.
func bindVar(v TVar, t Type) (Subst, error) {
	if tv, ok := t.(TVar); ok && tv.Name == v.Name {
		return Subst{}, nil
	}
	for _, free := range t.FreeTypeVariables() {
		if free == v.Name {
			return nil, &OccursError{Var: v, Type: t}
		}
	}
	return Subst{v.Name: t}, nil
}

// unifyFuncs unifies parameter-wise and result-wise, respecting variadic
// tails. Fixed-arity shape must agree; call-site arity flexing (defaults,
// variadic argument lists) is resolved by the analyzer before it builds the
// expected function type.
func unifyFuncs(f1, f2 TFunc) (Subst, error) {
	if len(f1.Params) != len(f2.Params) {
		return nil, &MismatchError{Expected: f1, Got: f2}
	}
	if (f1.Variadic == nil) != (f2.Variadic == nil) {
		return nil, &MismatchError{Expected: f1, Got: f2}
	}

	subst := Subst{}
	unifyInto := func(a, b Type) error {
		s, err := Unify(a.Apply(subst), b.Apply(subst))
		if err != nil {
			return err
		}
		subst = subst.Compose(s)
		return nil
	}

	for i := range f1.Params {
		if err := unifyInto(f1.Params[i], f2.Params[i]); err != nil {
			return nil, err
		}
	}
	if f1.Variadic != nil {
		if err := unifyInto(f1.Variadic, f2.Variadic); err != nil {
			return nil, err
		}
	}
	if err := unifyInto(f1.Result, f2.Result); err != nil {
		return nil, err
	}
	return subst, nil
}
