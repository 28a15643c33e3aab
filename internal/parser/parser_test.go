package parser_test

import (
	"testing"

	"github.com/slate-lang/slate/internal/ast"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/parser"
	"github.com/slate-lang/slate/internal/pipeline"
)

func parseSource(t *testing.T, input string) (*ast.Program, *pipeline.PipelineContext) {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	l := lexer.New(input)
	ctx.Tokens = l.Tokenize()
	if err := l.Err(); err != nil {
		t.Fatalf("lex error: %v", err)
	}
	return parser.New(ctx.Tokens, ctx).ParseProgram(), ctx
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, ctx := parseSource(t, input)
	if ctx.Failed() {
		t.Fatalf("parse error: %v", ctx.FirstError())
	}
	return prog
}

func TestParseStatements(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		count int
	}{
		{"val", "val x = 5", 1},
		{"var_annotated", "var y: Int = 5", 1},
		{"semicolon_separated", "val a = 1; val b = 2", 2},
		{"newline_separated", "val a = 1\nval b = 2", 2},
		{"def", "def f(a, b) { a + b }", 1},
		{"def_defaults", "def f(a, b: Int = 2) { a + b }", 1},
		{"while", "while x < 10 { x += 1 }", 1},
		{"assign_forms", "x = 1\nx += 2\nx -= 3", 3},
		{"return_forms", "def f() { return }\ndef g() { return 1 }", 2},
		{"if_block_else_if", "if a { 1 } else if b { 2 } else { 3 }", 1},
		{"trailing_newlines", "val a = 1\n\n\n", 1},
		{"statement_after_block", "def add(a, b = 42) { a + b } add(8)", 2},
		{"assign_newline_after_eq", "var x = 1\nx =\n    5 + 3", 2},
		{"decl_newline_after_eq", "val x =\n    5", 1},
		{"infix_newline_continuation", "val a = 1 +\n    2", 1},
		{"call_args_multiline", "print(1,\n    2,\n    3)", 1},
		{"comments_only_line", "// nothing\nval a = 1", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prog := mustParse(t, tc.input)
			if len(prog.Statements) != tc.count {
				t.Fatalf("expected %d statements, got %d", tc.count, len(prog.Statements))
			}
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3 == 7 && true || false")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)

	// || is the loosest binder.
	or, ok := stmt.Expression.(*ast.InfixExpression)
	if !ok || or.Operator != "||" {
		t.Fatalf("expected || at root, got %T", stmt.Expression)
	}
	and, ok := or.Left.(*ast.InfixExpression)
	if !ok || and.Operator != "&&" {
		t.Fatalf("expected && under ||, got %T", or.Left)
	}
	eq, ok := and.Left.(*ast.InfixExpression)
	if !ok || eq.Operator != "==" {
		t.Fatalf("expected == under &&, got %T", and.Left)
	}
	sum, ok := eq.Left.(*ast.InfixExpression)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + under ==, got %T", eq.Left)
	}
	prod, ok := sum.Right.(*ast.InfixExpression)
	if !ok || prod.Operator != "*" {
		t.Fatalf("expected * under +, got %T", sum.Right)
	}
}

func TestLeftAssociativity(t *testing.T) {
	prog := mustParse(t, "10 - 3 - 2")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	outer := stmt.Expression.(*ast.InfixExpression)
	inner, ok := outer.Left.(*ast.InfixExpression)
	if !ok {
		t.Fatalf("expected (10 - 3) - 2, got right-nested tree")
	}
	if inner.Operator != "-" {
		t.Fatalf("unexpected inner operator %s", inner.Operator)
	}
}

func TestIfForms(t *testing.T) {
	prog := mustParse(t, "if n == 0 then 1 else n * 2")
	expr := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	if expr.Else == nil {
		t.Fatal("expression-form if must carry else")
	}

	prog = mustParse(t, "if ready { go() }")
	expr = prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.IfExpression)
	if expr.Else != nil {
		t.Fatal("block-form if without else must have nil Else")
	}
	if _, ok := expr.Then.(*ast.BlockExpression); !ok {
		t.Fatalf("expected block then-branch, got %T", expr.Then)
	}
}

func TestLambdaForms(t *testing.T) {
	prog := mustParse(t, "val f = fn(a, b) { a + b }")
	val := prog.Statements[0].(*ast.ValStatement)
	fnLit, ok := val.Value.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected function literal, got %T", val.Value)
	}
	if len(fnLit.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fnLit.Params))
	}

	prog = mustParse(t, "val inc = (n) => n + 1")
	val = prog.Statements[0].(*ast.ValStatement)
	fnLit, ok = val.Value.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected arrow function literal, got %T", val.Value)
	}
	if len(fnLit.Params) != 1 || fnLit.Params[0].Name != "n" {
		t.Fatalf("unexpected params: %+v", fnLit.Params)
	}
	if len(fnLit.Body.Statements) != 1 {
		t.Fatalf("arrow body must be a single-statement block")
	}
}

func TestGroupedExpressionIsNotLambda(t *testing.T) {
	prog := mustParse(t, "(1 + 2) * 3")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	mul := stmt.Expression.(*ast.InfixExpression)
	if mul.Operator != "*" {
		t.Fatalf("expected * at root, got %s", mul.Operator)
	}
}

func TestFunctionTypeAnnotation(t *testing.T) {
	prog := mustParse(t, "val f: (Int, Int) -> Int = fn(a, b) { a + b }")
	val := prog.Statements[0].(*ast.ValStatement)
	if val.Type == nil || val.Type.Func == nil {
		t.Fatal("expected function type annotation")
	}
	if len(val.Type.Func.Params) != 2 || val.Type.Func.Result.Name != "Int" {
		t.Fatalf("unexpected annotation: %+v", val.Type.Func)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  diagnostics.Code
	}{
		{"default_before_required", "def f(a = 1, b) { a }", diagnostics.ErrP004},
		{"if_then_missing_else", "if a then 1", diagnostics.ErrP005},
		{"unclosed_block", "def f() { 1", diagnostics.ErrP002},
		{"unclosed_paren", "val x = (1 + 2", diagnostics.ErrP002},
		{"missing_initializer", "val x", diagnostics.ErrP002},
		{"stray_operator", "val x = * 2", diagnostics.ErrP003},
		{"two_exprs_one_line", "val a = 1 val b = 2", diagnostics.ErrP001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ctx := parseSource(t, tc.input)
			if !ctx.Failed() {
				t.Fatal("expected a parse error")
			}
			err := ctx.FirstError()
			if err.Code != tc.code {
				t.Fatalf("expected %s, got %s (%v)", tc.code, err.Code, err)
			}
		})
	}
}

func TestPositionsWithinInput(t *testing.T) {
	input := "val x = 1\ndef f(a) {\n  a + x\n}"
	prog := mustParse(t, input)
	lines := 4
	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		tok := node.GetToken()
		if tok.Line < 1 || tok.Line > lines {
			t.Fatalf("node %T has position %d:%d outside the input", node, tok.Line, tok.Column)
		}
	}
	for _, stmt := range prog.Statements {
		walk(stmt)
	}
}
