package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
)

// parseTypeAnnotation parses a surface type: a named type (`Int`, `Bool`,
// `String`, `Unit`) or a function type `(T1, T2) -> R`. curToken must be on
// the first token of the type; it ends on the last.
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.TypeAnnotation{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.LPAREN:
		return p.parseFuncTypeAnnotation()
	default:
		p.errorAtCur(diagnostics.ErrP002, "expected type, got %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseFuncTypeAnnotation() *ast.TypeAnnotation {
	openTok := p.curToken
	params := []*ast.TypeAnnotation{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		first := p.parseTypeAnnotation()
		if first == nil {
			return nil
		}
		params = append(params, first)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			next := p.parseTypeAnnotation()
			if next == nil {
				return nil
			}
			params = append(params, next)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	result := p.parseTypeAnnotation()
	if result == nil {
		return nil
	}
	return &ast.TypeAnnotation{
		Token: openTok,
		Func:  &ast.FuncTypeAnnotation{Params: params, Result: result},
	}
}
