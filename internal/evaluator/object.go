package evaluator

import (
	"fmt"

	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/diagnostics"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	BOOLEAN_OBJ  = "BOOLEAN"
	STRING_OBJ   = "STRING"
	UNIT_OBJ     = "UNIT"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	ERROR_OBJ    = "ERROR"

	RETURN_VALUE_OBJ    = "RETURN_VALUE"
	BREAK_SIGNAL_OBJ    = "BREAK_SIGNAL"
	CONTINUE_SIGNAL_OBJ = "CONTINUE_SIGNAL"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type UnitValue struct{}

func (u *UnitValue) Type() ObjectType { return UNIT_OBJ }
func (u *UnitValue) Inspect() string  { return "" }

var (
	Unit  = &UnitValue{}
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(v bool) *Boolean {
	if v {
		return True
	}
	return False
}

// Function is a closure: parameters (defaults still unevaluated), a body,
// and the environment captured at definition time. The captured environment
// holds addresses, not values, so sibling definitions allocated before this
// closure was built remain reachable.
type Function struct {
	Name   string
	Params []*core.Param
	Body   core.Expr
	Env    *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return "<function " + f.Name + ">"
	}
	return "<function>"
}

// BuiltinFn is a native function taking already-evaluated arguments.
type BuiltinFn func(ev *Evaluator, args []Object) Object

type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      BuiltinFn
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }

// Error is a runtime failure carried through evaluation as a value.
type Error struct {
	Code    diagnostics.Code
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	return fmt.Sprintf("ERROR at %d:%d: %s", e.Line, e.Column, e.Message)
}

func isError(obj Object) bool {
	return obj != nil && obj.Type() == ERROR_OBJ
}
