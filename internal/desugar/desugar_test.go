package desugar_test

import (
	"testing"

	"github.com/slate-lang/slate/internal/core"
	"github.com/slate-lang/slate/internal/desugar"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/parser"
	"github.com/slate-lang/slate/internal/pipeline"
)

func desugarSource(t *testing.T, input string) *core.Block {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	l := lexer.New(input)
	ctx.Tokens = l.Tokenize()
	prog := parser.New(ctx.Tokens, ctx).ParseProgram()
	if ctx.Failed() {
		t.Fatalf("parse error: %v", ctx.FirstError())
	}
	return desugar.Program(prog)
}

func TestCompoundAssignRewrites(t *testing.T) {
	block := desugarSource(t, "var x = 1\nx += 2\nx -= 3")

	plus := block.Exprs[1].(*core.Assign)
	bin, ok := plus.Value.(*core.Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("x += 2 must lower to x = x + 2, got %#v", plus.Value)
	}
	if v, ok := bin.Left.(*core.Var); !ok || v.Name != "x" {
		t.Fatalf("lowered left operand must be the target variable")
	}

	minus := block.Exprs[2].(*core.Assign)
	bin, ok = minus.Value.(*core.Binary)
	if !ok || bin.Operator != "-" {
		t.Fatalf("x -= 3 must lower to x = x - 3, got %#v", minus.Value)
	}
}

func TestDeclarationsLower(t *testing.T) {
	block := desugarSource(t, "val a = 1\nvar b = 2")
	valLet := block.Exprs[0].(*core.Let)
	if valLet.Mutable {
		t.Fatal("val must lower to an immutable binding")
	}
	varLet := block.Exprs[1].(*core.Let)
	if !varLet.Mutable {
		t.Fatal("var must lower to a mutable binding")
	}
}

func TestDefLowersToLetOfLambda(t *testing.T) {
	block := desugarSource(t, "def add(a, b = 42) { a + b }")
	let := block.Exprs[0].(*core.Let)
	if let.Mutable {
		t.Fatal("def must lower to an immutable binding")
	}
	lam, ok := let.Init.(*core.Lambda)
	if !ok {
		t.Fatalf("def initializer must be a lambda, got %#v", let.Init)
	}
	if lam.Name != "add" {
		t.Fatalf("lambda must keep the def name, got %q", lam.Name)
	}
	if lam.Params[1].Default == nil {
		t.Fatal("defaults must survive as unevaluated expressions")
	}
	if _, ok := lam.Params[1].Default.(*core.Int); !ok {
		t.Fatalf("default must stay an expression node, got %#v", lam.Params[1].Default)
	}
	// Implicit return: the body block's tail expression is its yield.
	body := lam.Body.(*core.Block)
	if _, ok := body.Exprs[len(body.Exprs)-1].(*core.Binary); !ok {
		t.Fatalf("body tail must be the yielded expression, got %#v", body.Exprs)
	}
}

func TestPositionPreservation(t *testing.T) {
	input := "val a = 1\nvar b = a + 2\nb += a"
	block := desugarSource(t, input)
	maxLine := 3
	var walk func(e core.Expr)
	walk = func(e core.Expr) {
		tok := e.GetToken()
		if tok.Line < 1 || tok.Line > maxLine {
			t.Fatalf("core node %T carries position %d:%d outside the input", e, tok.Line, tok.Column)
		}
		switch n := e.(type) {
		case *core.Let:
			walk(n.Init)
		case *core.Assign:
			walk(n.Value)
		case *core.Binary:
			walk(n.Left)
			walk(n.Right)
		}
	}
	for _, e := range block.Exprs {
		walk(e)
	}
}

func TestDesugarIsDeterministic(t *testing.T) {
	input := "def f(n) { if n > 0 then n else -n }\nf(3)"
	first := desugarSource(t, input)
	second := desugarSource(t, input)

	var render func(e core.Expr) string
	render = func(e core.Expr) string {
		switch n := e.(type) {
		case *core.Let:
			return "let(" + n.Name + "," + render(n.Init) + ")"
		case *core.Lambda:
			out := "fn("
			for _, p := range n.Params {
				out += p.Name + ","
			}
			return out + ")" + render(n.Body)
		case *core.Block:
			out := "{"
			for _, x := range n.Exprs {
				out += render(x) + ";"
			}
			return out + "}"
		case *core.If:
			return "if(" + render(n.Cond) + "," + render(n.Then) + "," + render(n.Else) + ")"
		case *core.Binary:
			return "(" + render(n.Left) + n.Operator + render(n.Right) + ")"
		case *core.Unary:
			return "(" + n.Operator + render(n.Operand) + ")"
		case *core.Var:
			return n.Name
		case *core.Int:
			return "int"
		case *core.Call:
			out := render(n.Fn) + "("
			for _, a := range n.Args {
				out += render(a) + ","
			}
			return out + ")"
		default:
			return "?"
		}
	}

	if render(first) != render(second) {
		t.Fatal("desugaring must be deterministic")
	}
}
