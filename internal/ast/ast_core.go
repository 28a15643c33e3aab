package ast

import (
	"github.com/slate-lang/slate/internal/token"
)

// Node is the base interface for all surface AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
// A top-level program is an implicit block.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// TypeAnnotation is a parsed surface type: a named type or a function type.
// Exactly one of Name or Func is set.
type TypeAnnotation struct {
	Token token.Token
	Name  string
	Func  *FuncTypeAnnotation
}

// FuncTypeAnnotation represents `(T1, T2) -> R`.
type FuncTypeAnnotation struct {
	Params []*TypeAnnotation
	Result *TypeAnnotation
}

func (ta *TypeAnnotation) TokenLiteral() string  { return ta.Token.Lexeme }
func (ta *TypeAnnotation) GetToken() token.Token { return ta.Token }

// Parameter is a function parameter: name, optional annotation, optional default.
type Parameter struct {
	Token   token.Token
	Name    string
	Type    *TypeAnnotation // nil when unannotated
	Default Expression      // nil when no default
}

// ValStatement represents `val name[: T] = init`.
type ValStatement struct {
	Token token.Token // the 'val' token
	Name  *Identifier
	Type  *TypeAnnotation
	Value Expression
}

func (vs *ValStatement) statementNode()        {}
func (vs *ValStatement) TokenLiteral() string  { return vs.Token.Lexeme }
func (vs *ValStatement) GetToken() token.Token { return vs.Token }

// VarStatement represents `var name[: T] = init`.
type VarStatement struct {
	Token token.Token // the 'var' token
	Name  *Identifier
	Type  *TypeAnnotation
	Value Expression
}

func (vs *VarStatement) statementNode()        {}
func (vs *VarStatement) TokenLiteral() string  { return vs.Token.Lexeme }
func (vs *VarStatement) GetToken() token.Token { return vs.Token }

// DefStatement represents `def name(params) [-> T] { body }`.
type DefStatement struct {
	Token      token.Token // the 'def' token
	Name       *Identifier
	Params     []*Parameter
	ReturnType *TypeAnnotation
	Body       *BlockExpression
}

func (ds *DefStatement) statementNode()        {}
func (ds *DefStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DefStatement) GetToken() token.Token { return ds.Token }

// AssignStatement represents `name = expr` and the compound forms `+=`, `-=`.
type AssignStatement struct {
	Token    token.Token // the '=', '+=' or '-=' token
	Name     *Identifier
	Operator string
	Value    Expression
}

func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// WhileStatement represents `while cond { body }`.
type WhileStatement struct {
	Token token.Token
	Cond  Expression
	Body  *BlockExpression
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// BreakStatement represents `break`.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement represents `continue`.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// ReturnStatement represents `return [expr]`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
