// Package core defines the desugared AST that typing and evaluation operate
// on. Compound assignment, declaration sugar and def statements are gone;
// every node still carries the token it originated from.
package core

import (
	"github.com/slate-lang/slate/internal/token"
)

// Expr is the base interface for all core nodes. Everything is an
// expression; statement-position nodes yield Unit.
type Expr interface {
	GetToken() token.Token
	exprNode()
}

// Int is an integer literal.
type Int struct {
	Token token.Token
	Value int64
}

func (e *Int) exprNode()             {}
func (e *Int) GetToken() token.Token { return e.Token }

// Str is a string literal.
type Str struct {
	Token token.Token
	Value string
}

func (e *Str) exprNode()             {}
func (e *Str) GetToken() token.Token { return e.Token }

// Bool is a boolean literal.
type Bool struct {
	Token token.Token
	Value bool
}

func (e *Bool) exprNode()             {}
func (e *Bool) GetToken() token.Token { return e.Token }

// Var is a variable reference.
type Var struct {
	Token token.Token
	Name  string
}

func (e *Var) exprNode()             {}
func (e *Var) GetToken() token.Token { return e.Token }

// Unary is `-x` or `!x`.
type Unary struct {
	Token    token.Token
	Operator string
	Operand  Expr
}

func (e *Unary) exprNode()             {}
func (e *Unary) GetToken() token.Token { return e.Token }

// Binary is a binary operator application.
type Binary struct {
	Token    token.Token
	Operator string
	Left     Expr
	Right    Expr
}

func (e *Binary) exprNode()             {}
func (e *Binary) GetToken() token.Token { return e.Token }

// Param is a lambda parameter. Default stays an unevaluated expression; it
// is evaluated at call time in the closure's defining environment.
type Param struct {
	Token   token.Token
	Name    string
	Type    *TypeRef // nil when unannotated
	Default Expr     // nil when no default
}

// TypeRef is a desugared surface type annotation.
type TypeRef struct {
	Token  token.Token
	Name   string     // "Int", "Bool", "String", "Unit"; "" for function types
	Params []*TypeRef // function type parameters
	Result *TypeRef   // function type result; nil for named types
}

// Lambda is a function value: parameters (with lazily evaluated defaults)
// and a body.
type Lambda struct {
	Token      token.Token
	Name       string // non-empty for def-originated lambdas; diagnostics only
	Params     []*Param
	ReturnType *TypeRef // nil when unannotated
	Body       Expr
}

func (e *Lambda) exprNode()             {}
func (e *Lambda) GetToken() token.Token { return e.Token }

// Call is a function application.
type Call struct {
	Token token.Token
	Fn    Expr
	Args  []Expr
}

func (e *Call) exprNode()             {}
func (e *Call) GetToken() token.Token { return e.Token }

// Let introduces a binding in the enclosing block. Mutable distinguishes
// `var` from `val`/`def`.
type Let struct {
	Token   token.Token
	Name    string
	Mutable bool
	Type    *TypeRef // nil when unannotated
	Init    Expr
}

func (e *Let) exprNode()             {}
func (e *Let) GetToken() token.Token { return e.Token }

// Assign overwrites an existing mutable binding.
type Assign struct {
	Token token.Token
	Name  string
	Value Expr
}

func (e *Assign) exprNode()             {}
func (e *Assign) GetToken() token.Token { return e.Token }

// Block is a sequence; its value is the value of the last element, or Unit
// when the block is empty or ends in a statement-position node.
type Block struct {
	Token token.Token
	Exprs []Expr
}

func (e *Block) exprNode()             {}
func (e *Block) GetToken() token.Token { return e.Token }

// If is a two-armed conditional. Else is nil only for block-form if, which
// yields Unit.
type If struct {
	Token token.Token
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (e *If) exprNode()             {}
func (e *If) GetToken() token.Token { return e.Token }

// While loops while Cond holds; the whole expression is Unit.
type While struct {
	Token token.Token
	Cond  Expr
	Body  Expr
}

func (e *While) exprNode()             {}
func (e *While) GetToken() token.Token { return e.Token }

// Break unwinds to the nearest enclosing While.
type Break struct {
	Token token.Token
}

func (e *Break) exprNode()             {}
func (e *Break) GetToken() token.Token { return e.Token }

// Continue unwinds to the top of the nearest enclosing While.
type Continue struct {
	Token token.Token
}

func (e *Continue) exprNode()             {}
func (e *Continue) GetToken() token.Token { return e.Token }

// Return unwinds to the nearest enclosing call boundary. Value is nil for a
// bare return.
type Return struct {
	Token token.Token
	Value Expr
}

func (e *Return) exprNode()             {}
func (e *Return) GetToken() token.Token { return e.Token }
