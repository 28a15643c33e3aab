package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAL, token.VAR:
		return p.parseDeclaration()
	case token.DEF:
		return p.parseDefStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) || p.peekTokenIs(token.PLUS_ASSIGN) || p.peekTokenIs(token.MINUS_ASSIGN) {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseDeclaration handles `val name[: T] = init` and `var name[: T] = init`.
func (p *Parser) parseDeclaration() ast.Statement {
	declTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var annot *ast.TypeAnnotation
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		annot = p.parseTypeAnnotation()
		if annot == nil {
			return nil
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.advanceSkippingNewlines()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	if declTok.Type == token.VAL {
		return &ast.ValStatement{Token: declTok, Name: name, Type: annot, Value: value}
	}
	return &ast.VarStatement{Token: declTok, Name: name, Type: annot, Value: value}
}

func (p *Parser) parseDefStatement() ast.Statement {
	defTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParameterList()
	if params == nil {
		return nil
	}

	var ret *ast.TypeAnnotation
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeAnnotation()
		if ret == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpression()
	if body == nil {
		return nil
	}
	return &ast.DefStatement{Token: defTok, Name: name, Params: params, ReturnType: ret, Body: body}
}

// parseParameterList parses `(p1, p2: T = expr, ...)`. curToken must be on
// the opening paren; it ends on the closing paren. Parameters with defaults
// must be trailing.
func (p *Parser) parseParameterList() []*ast.Parameter {
	params := []*ast.Parameter{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	seenDefault := false
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param := &ast.Parameter{Token: p.curToken, Name: p.curToken.Lexeme}

		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseTypeAnnotation()
			if param.Type == nil {
				return nil
			}
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
			if param.Default == nil {
				return nil
			}
			seenDefault = true
		} else if seenDefault {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004, param.Token,
				"parameter %q without a default follows a parameter with one", param.Name))
			return nil
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return params
	}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpression()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{Token: whileTok, Cond: cond, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	retTok := p.curToken
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.EOF:
		return &ast.ReturnStatement{Token: retTok}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.ReturnStatement{Token: retTok, Value: value}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	p.nextToken() // onto '=', '+=' or '-='
	opTok := p.curToken
	p.advanceSkippingNewlines()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.AssignStatement{Token: opTok, Name: name, Operator: opTok.Lexeme, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmtTok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Token: stmtTok, Expression: expr}
}
