package parser

import (
	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/token"
)

const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	COMPARISON  // == != < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(x)
)

var precedences = map[token.TokenType]int{
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       COMPARISON,
	token.NOT_EQ:   COMPARISON,
	token.LT:       COMPARISON,
	token.LT_EQ:    COMPARISON,
	token.GT:       COMPARISON,
	token.GT_EQ:    COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens    []token.Token
	pos       int
	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntegerLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.BANG:   p.parsePrefixExpression,
		token.MINUS:  p.parsePrefixExpression,
		token.LPAREN: p.parseGroupedOrArrow,
		token.LBRACE: p.parseBlockPrefix,
		token.IF:     p.parseIfExpression,
		token.FN:     p.parseFunctionLiteral,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.LT_EQ:    p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.GT_EQ:    p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.OR:       p.parseInfixExpression,
		token.LPAREN:   p.parseCallExpression,
	}

	p.curToken = p.tokenAt(0)
	p.peekToken = p.tokenAt(1)
	return p
}

func (p *Parser) tokenAt(i int) token.Token {
	if i >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1]
		}
		return token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.tokenAt(p.pos)
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) hasError() bool { return len(p.ctx.Errors) > 0 }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP002, p.peekToken, "expected %s, got %s", t, p.peekToken.Type))
	return false
}

func (p *Parser) errorAtCur(code diagnostics.Code, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, p.curToken, format, args...))
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP003, p.curToken, "unexpected token %s", t))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// skipSeparators advances past newline and semicolon tokens.
func (p *Parser) skipSeparators() {
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// peekSkippingNewlinesIs reports whether the next non-newline token has the
// given type, without consuming anything.
func (p *Parser) peekSkippingNewlinesIs(t token.TokenType) bool {
	i := p.pos + 1
	for i < len(p.tokens) && p.tokens[i].Type == token.NEWLINE {
		i++
	}
	return i < len(p.tokens) && p.tokens[i].Type == t
}

// advanceSkippingNewlines moves curToken onto the next non-newline token.
func (p *Parser) advanceSkippingNewlines() {
	p.nextToken()
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into an implicit top-level block.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	p.skipSeparators()
	for !p.curTokenIs(token.EOF) && !p.hasError() {
		stmt := p.parseStatement()
		if stmt == nil {
			return program
		}
		program.Statements = append(program.Statements, stmt)
		if !p.endStatement(token.EOF) {
			return program
		}
		p.skipSeparators()
	}
	return program
}

// endStatement consumes the separator after a statement. terminator is the
// token allowed to follow without a separator (EOF at top level, RBRACE in
// blocks).
func (p *Parser) endStatement(terminator token.TokenType) bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON:
		p.nextToken()
		return true
	case terminator, token.EOF:
		p.nextToken()
		return true
	default:
		// A block-ended statement may be followed directly by the next
		// statement on the same line.
		if p.curTokenIs(token.RBRACE) {
			p.nextToken()
			return true
		}
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001, p.peekToken, "unexpected token %s", p.peekToken.Type))
		return false
	}
}
