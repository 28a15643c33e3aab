package parser

import (
	"strconv"

	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.errorAtCur(diagnostics.ErrP001, "invalid integer literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.advanceSkippingNewlines() // the right operand may start on the next line
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
}

// parseGroupedOrArrow disambiguates `(expr)` from the compact lambda form
// `(params) => expr` by scanning ahead to the matching paren.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if p.arrowFollowsParens() {
		return p.parseArrowFunction()
	}
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// arrowFollowsParens reports whether the parenthesized group starting at
// curToken is followed by `=>`.
func (p *Parser) arrowFollowsParens() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.FATARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// parseArrowFunction parses `(params) => expr`; the body expression becomes
// a single-statement block.
func (p *Parser) parseArrowFunction() ast.Expression {
	fnTok := p.curToken
	params := p.parseParameterList()
	if params == nil {
		return nil
	}
	if !p.expectPeek(token.FATARROW) {
		return nil
	}
	p.nextToken()
	bodyTok := p.curToken
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	block := &ast.BlockExpression{
		Token:      bodyTok,
		Statements: []ast.Statement{&ast.ExpressionStatement{Token: bodyTok, Expression: body}},
	}
	return &ast.FunctionLiteral{Token: fnTok, Params: params, Body: block}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fnTok := p.curToken
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
	return &ast.FunctionLiteral{Token: fnTok, Params: params, ReturnType: ret, Body: body}
}

func (p *Parser) parseBlockPrefix() ast.Expression {
	block := p.parseBlockExpression()
	if block == nil {
		return nil
	}
	return block
}

// parseBlockExpression parses `{ stmt* }`. curToken must be on the opening
// brace; it ends on the closing brace.
func (p *Parser) parseBlockExpression() *ast.BlockExpression {
	block := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()
	p.skipSeparators()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.errorAtCur(diagnostics.ErrP002, "expected }, got EOF")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		if !p.endStatement(token.RBRACE) {
			return nil
		}
		p.skipSeparators()
	}
	return block
}

func (p *Parser) parseIfExpression() ast.Expression {
	ifTok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}

	// Expression form: if cond then a else b. Both branches are required.
	if p.peekTokenIs(token.THEN) {
		p.nextToken()
		p.nextToken()
		thenExpr := p.parseExpression(LOWEST)
		if thenExpr == nil {
			return nil
		}
		if !p.peekSkippingNewlinesIs(token.ELSE) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP005, p.peekToken, "expression-form if requires else"))
			return nil
		}
		p.advanceSkippingNewlines() // onto 'else'
		p.nextToken()
		elseExpr := p.parseExpression(LOWEST)
		if elseExpr == nil {
			return nil
		}
		return &ast.IfExpression{Token: ifTok, Cond: cond, Then: thenExpr, Else: elseExpr}
	}

	// Block form: if cond { ... } [else { ... } | else if ...]
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	thenBlock := p.parseBlockExpression()
	if thenBlock == nil {
		return nil
	}

	var elseExpr ast.Expression
	if p.peekSkippingNewlinesIs(token.ELSE) {
		p.advanceSkippingNewlines() // onto 'else'
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			elseExpr = p.parseIfExpression()
		} else {
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			elseExpr = p.parseBlockExpression()
		}
		if elseExpr == nil {
			return nil
		}
	}
	return &ast.IfExpression{Token: ifTok, Cond: cond, Then: thenBlock, Else: elseExpr}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	callTok := p.curToken
	args := p.parseCallArguments()
	if args == nil {
		return nil
	}
	return &ast.CallExpression{Token: callTok, Function: fn, Args: args}
}

// parseCallArguments parses `(a, b, ...)`. curToken must be on the opening
// paren; it ends on the closing paren. Newlines are permitted after the
// opening paren and after commas.
func (p *Parser) parseCallArguments() []ast.Expression {
	args := []ast.Expression{}
	if p.peekSkippingNewlinesIs(token.RPAREN) {
		p.advanceSkippingNewlines()
		return args
	}
	p.advanceSkippingNewlines()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	args = append(args, arg)
	for p.peekSkippingNewlinesIs(token.COMMA) {
		p.advanceSkippingNewlines() // onto ','
		p.advanceSkippingNewlines() // onto the argument
		arg = p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	if p.peekSkippingNewlinesIs(token.RPAREN) {
		p.advanceSkippingNewlines()
		return args
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}
