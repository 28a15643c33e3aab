package typesystem

import "fmt"

// MismatchError indicates two types with incompatible constructors.
type MismatchError struct {
	Expected Type
	Got      Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// OccursError indicates a variable occurring inside the type it would bind
// to; binding it would build an infinite type.
type OccursError struct {
	Var  TVar
	Type Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("cannot construct infinite type %s = %s", e.Var, e.Type)
}
