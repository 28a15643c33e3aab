// Package desugar lowers the surface AST into the core AST. The rewrite is
// pure and position-preserving: every core node carries the token of the
// surface node it came from.
package desugar

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/core"
)

// Program lowers a parsed program into a core block.
func Program(prog *ast.Program) *core.Block {
	block := &core.Block{Token: prog.GetToken()}
	for _, stmt := range prog.Statements {
		block.Exprs = append(block.Exprs, Statement(stmt))
	}
	return block
}

// Statement lowers a single surface statement.
func Statement(stmt ast.Statement) core.Expr {
	switch s := stmt.(type) {
	case *ast.ValStatement:
		return &core.Let{
			Token:   s.Token,
			Name:    s.Name.Value,
			Mutable: false,
			Type:    typeRef(s.Type),
			Init:    Expression(s.Value),
		}
	case *ast.VarStatement:
		return &core.Let{
			Token:   s.Token,
			Name:    s.Name.Value,
			Mutable: true,
			Type:    typeRef(s.Type),
			Init:    Expression(s.Value),
		}
	case *ast.DefStatement:
		return &core.Let{
			Token:   s.Token,
			Name:    s.Name.Value,
			Mutable: false,
			Init: &core.Lambda{
				Token:      s.Token,
				Name:       s.Name.Value,
				Params:     params(s.Params),
				ReturnType: typeRef(s.ReturnType),
				Body:       Expression(s.Body),
			},
		}
	case *ast.AssignStatement:
		value := Expression(s.Value)
		// a += e  ->  a = a + e   (same for -=)
		if s.Operator == "+=" || s.Operator == "-=" {
			value = &core.Binary{
				Token:    s.Token,
				Operator: s.Operator[:1],
				Left:     &core.Var{Token: s.Name.Token, Name: s.Name.Value},
				Right:    value,
			}
		}
		return &core.Assign{Token: s.Token, Name: s.Name.Value, Value: value}
	case *ast.WhileStatement:
		return &core.While{Token: s.Token, Cond: Expression(s.Cond), Body: Expression(s.Body)}
	case *ast.BreakStatement:
		return &core.Break{Token: s.Token}
	case *ast.ContinueStatement:
		return &core.Continue{Token: s.Token}
	case *ast.ReturnStatement:
		ret := &core.Return{Token: s.Token}
		if s.Value != nil {
			ret.Value = Expression(s.Value)
		}
		return ret
	case *ast.ExpressionStatement:
		return Expression(s.Expression)
	default:
		// Parser produces no other statement kinds.
		return &core.Block{Token: stmt.GetToken()}
	}
}

// Expression lowers a surface expression.
func Expression(expr ast.Expression) core.Expr {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &core.Int{Token: e.Token, Value: e.Value}
	case *ast.StringLiteral:
		return &core.Str{Token: e.Token, Value: e.Value}
	case *ast.BooleanLiteral:
		return &core.Bool{Token: e.Token, Value: e.Value}
	case *ast.Identifier:
		return &core.Var{Token: e.Token, Name: e.Value}
	case *ast.PrefixExpression:
		return &core.Unary{Token: e.Token, Operator: e.Operator, Operand: Expression(e.Right)}
	case *ast.InfixExpression:
		return &core.Binary{
			Token:    e.Token,
			Operator: e.Operator,
			Left:     Expression(e.Left),
			Right:    Expression(e.Right),
		}
	case *ast.CallExpression:
		call := &core.Call{Token: e.Token, Fn: Expression(e.Function)}
		for _, arg := range e.Args {
			call.Args = append(call.Args, Expression(arg))
		}
		return call
	case *ast.FunctionLiteral:
		return &core.Lambda{
			Token:      e.Token,
			Params:     params(e.Params),
			ReturnType: typeRef(e.ReturnType),
			Body:       Expression(e.Body),
		}
	case *ast.BlockExpression:
		block := &core.Block{Token: e.Token}
		for _, stmt := range e.Statements {
			block.Exprs = append(block.Exprs, Statement(stmt))
		}
		return block
	case *ast.IfExpression:
		out := &core.If{Token: e.Token, Cond: Expression(e.Cond), Then: Expression(e.Then)}
		if e.Else != nil {
			out.Else = Expression(e.Else)
		}
		return out
	default:
		return &core.Block{Token: expr.GetToken()}
	}
}

func params(in []*ast.Parameter) []*core.Param {
	out := make([]*core.Param, 0, len(in))
	for _, p := range in {
		param := &core.Param{Token: p.Token, Name: p.Name, Type: typeRef(p.Type)}
		if p.Default != nil {
			param.Default = Expression(p.Default)
		}
		out = append(out, param)
	}
	return out
}

func typeRef(annot *ast.TypeAnnotation) *core.TypeRef {
	if annot == nil {
		return nil
	}
	if annot.Func != nil {
		ref := &core.TypeRef{Token: annot.Token, Result: typeRef(annot.Func.Result)}
		for _, p := range annot.Func.Params {
			ref.Params = append(ref.Params, typeRef(p))
		}
		return ref
	}
	return &core.TypeRef{Token: annot.Token, Name: annot.Name}
}
