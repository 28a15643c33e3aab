package evaluator_test

import (
	"bytes"
	"testing"

	"github.com/slate-lang/slate/internal/analyzer"
	"github.com/slate-lang/slate/internal/desugar"
	"github.com/slate-lang/slate/internal/evaluator"
	"github.com/slate-lang/slate/internal/lexer"
	"github.com/slate-lang/slate/internal/parser"
	"github.com/slate-lang/slate/internal/pipeline"
)

func runSource(t *testing.T, input string) (evaluator.Object, string) {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	l := lexer.New(input)
	ctx.Tokens = l.Tokenize()
	if err := l.Err(); err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog := parser.New(ctx.Tokens, ctx).ParseProgram()
	if ctx.Failed() {
		t.Fatalf("parse error: %v", ctx.FirstError())
	}
	block := desugar.Program(prog)
	if _, err := analyzer.NewChecker().CheckProgram(block, analyzer.NewGlobalTypeEnv()); err != nil {
		t.Fatalf("type error: %v", err)
	}

	store := evaluator.NewStore()
	env := evaluator.NewGlobalEnvironment(store)
	ev := evaluator.New(store)
	var out bytes.Buffer
	ev.Out = &out
	return ev.EvalProgram(block, env), out.String()
}

func expectInt(t *testing.T, obj evaluator.Object, want int64) {
	t.Helper()
	i, ok := obj.(*evaluator.Integer)
	if !ok {
		t.Fatalf("expected Integer, got %s (%s)", obj.Type(), obj.Inspect())
	}
	if i.Value != want {
		t.Fatalf("expected %d, got %d", want, i.Value)
	}
}

func TestEvalExpressions(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  int64
	}{
		{"arithmetic", "2 + 3 * 4", 14},
		{"grouping", "(2 + 3) * 4", 20},
		{"unary_minus", "-(3 + 4)", -7},
		{"mod_positive_divisor", "-7 % 3", 2},
		{"mod_negative_divisor", "7 % -3", -2},
		{"division", "7 / 2", 3},
		{"min_max", "min(3, 1, 2) + max(4, 9)", 10},
		{"val_binding", "val x = 6\nx * 7", 42},
		{"block_tail", "{ val a = 2; val b = 3; a * b }", 6},
		{"if_expression", "if 2 > 1 then 10 else 20", 10},
		{"assignment", "var x = 1\nx = 5\nx", 5},
		{"compound", "var x = 10\nx += 5\nx -= 3\nx", 12},
		{"default_arg", "def add(a, b = 42) { a + b }\nadd(8)", 50},
		{"default_overridden", "def add(a, b = 42) { a + b }\nadd(8, 2)", 10},
		{"while_loop", "var i = 0\nvar sum = 0\nwhile i < 5 { sum += i\n i += 1 }\nsum", 10},
		{"break_loop", "var i = 0\nwhile true { if i >= 3 { break }\n i += 1 }\ni", 3},
		{"continue_loop",
			"var i = 0\nvar sum = 0\nwhile i < 5 { i += 1\n if i % 2 == 0 { continue }\n sum += i }\nsum", 9},
		{"early_return", "def f(n) { if n > 0 { return n * 2 }\n 0 }\nf(21)", 42},
		{"return_bare_path", "def f(n) { if n > 0 { return 1 }\n 0 }\nf(-1)", 0},
		{"tail_return", "def abs(n) { if n < 0 { return -n }\n return n }\nabs(-5)", 5},
		{"closure_counter",
			"def makeCounter() { var n = 0\n fn() { n += 1\n n } }\nval c = makeCounter()\nc()\nc()", 2},
		{"closure_sees_mutation", "var x = 1\ndef get() { x }\nx = 2\nget()", 2},
		{"higher_order", "def twice(f, x) { f(f(x)) }\ntwice((n) => n + 3, 1)", 7},
		{"default_uses_defining_env", "val base = 40\ndef f(x = base + 2) { x }\nf()", 42},
		{"nested_forward_reference",
			"def outer() { def a() { b() }\n def b() { 5 }\n a() }\nouter()", 5},
		{"logical_short_circuit",
			"var hits = 0\ndef bump() { hits += 1\n true }\nval r = false && bump()\nhits", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := runSource(t, tc.input)
			expectInt(t, result, tc.want)
		})
	}
}

func TestMutualRecursion(t *testing.T) {
	input := "def isEven(n) { if n == 0 then true else isOdd(n - 1) }\n" +
		"def isOdd(n) { if n == 0 then false else isEven(n - 1) }\n" +
		"print(isEven(4))"
	_, out := runSource(t, input)
	if out != "true\n" {
		t.Fatalf("expected %q, got %q", "true\n", out)
	}
}

func TestPrintFormatting(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"sum", "print(1 + 2)", "3\n"},
		{"multiple_args", `print(1, "two", true)`, "1 two true\n"},
		{"string_unquoted", `print("a" + "b")`, "ab\n"},
		{"bools", "print(1 == 1, 1 != 1)", "true false\n"},
		{"str_builtin", `print(str(42) + "!")`, "42!\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, out := runSource(t, tc.input)
			if out != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	ctx := &pipeline.PipelineContext{SourceCode: "val x = 0\n10 / x"}
	l := lexer.New(ctx.SourceCode)
	ctx.Tokens = l.Tokenize()
	prog := parser.New(ctx.Tokens, ctx).ParseProgram()
	if ctx.Failed() {
		t.Fatalf("parse error: %v", ctx.FirstError())
	}
	block := desugar.Program(prog)
	if _, err := analyzer.NewChecker().CheckProgram(block, analyzer.NewGlobalTypeEnv()); err != nil {
		t.Fatalf("type error: %v", err)
	}
	store := evaluator.NewStore()
	env := evaluator.NewGlobalEnvironment(store)
	result := evaluator.New(store).EvalProgram(block, env)
	errObj, ok := result.(*evaluator.Error)
	if !ok {
		t.Fatalf("expected runtime error, got %s", result.Inspect())
	}
	if errObj.Code != "R001" || errObj.Message != "division by zero" {
		t.Fatalf("wrong error: %v", errObj.Message)
	}
	if errObj.Line != 2 {
		t.Fatalf("expected error on line 2, got %d", errObj.Line)
	}
}

type stubReader struct {
	lines   []string
	prompts []string
}

func (s *stubReader) ReadLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestInputBuiltin(t *testing.T) {
	input := `val name = input("who? ")` + "\nprint(\"hi \" + name)"
	ctx := &pipeline.PipelineContext{SourceCode: input}
	l := lexer.New(input)
	ctx.Tokens = l.Tokenize()
	prog := parser.New(ctx.Tokens, ctx).ParseProgram()
	if ctx.Failed() {
		t.Fatalf("parse error: %v", ctx.FirstError())
	}
	block := desugar.Program(prog)
	if _, err := analyzer.NewChecker().CheckProgram(block, analyzer.NewGlobalTypeEnv()); err != nil {
		t.Fatalf("type error: %v", err)
	}

	store := evaluator.NewStore()
	env := evaluator.NewGlobalEnvironment(store)
	ev := evaluator.New(store)
	var out bytes.Buffer
	ev.Out = &out
	reader := &stubReader{lines: []string{"slate"}}
	ev.In = reader

	result := ev.EvalProgram(block, env)
	if isErr, ok := result.(*evaluator.Error); ok {
		t.Fatalf("unexpected error: %s", isErr.Message)
	}
	if out.String() != "hi slate\n" {
		t.Fatalf("expected %q, got %q", "hi slate\n", out.String())
	}
	if len(reader.prompts) != 1 || reader.prompts[0] != "who? " {
		t.Fatalf("prompt not forwarded: %v", reader.prompts)
	}
}

func TestStoreMonotonicity(t *testing.T) {
	store := evaluator.NewStore()
	a := store.Alloc()
	before := store.Len()
	if _, ok := store.Get(a); !ok {
		t.Fatal("freshly allocated address must resolve")
	}
	b := store.Alloc()
	if b <= a {
		t.Fatal("addresses must be monotonically increasing")
	}
	if store.Len() <= before {
		t.Fatal("store must not shrink")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	// A failed input evaluated against clones must leave the persisted
	// (env, store) pair untouched.
	base := "var a = 10"
	ctx := &pipeline.PipelineContext{SourceCode: base}
	l := lexer.New(base)
	ctx.Tokens = l.Tokenize()
	prog := parser.New(ctx.Tokens, ctx).ParseProgram()
	block := desugar.Program(prog)
	if _, err := analyzer.NewChecker().CheckProgram(block, analyzer.NewGlobalTypeEnv()); err != nil {
		t.Fatalf("type error: %v", err)
	}
	store := evaluator.NewStore()
	env := evaluator.NewGlobalEnvironment(store)
	if res := evaluator.New(store).EvalProgram(block, env); isErrObj(res) {
		t.Fatalf("setup failed: %s", res.Inspect())
	}

	// Failing input: mutates a, then divides by zero.
	bad := "a = 99\nval x = 0\n1 / x"
	ctx2 := &pipeline.PipelineContext{SourceCode: bad}
	l2 := lexer.New(bad)
	ctx2.Tokens = l2.Tokenize()
	prog2 := parser.New(ctx2.Tokens, ctx2).ParseProgram()
	block2 := desugar.Program(prog2)

	candEnv := env.Clone()
	candStore := store.Clone()
	res := evaluator.New(candStore).EvalProgram(block2, candEnv)
	if !isErrObj(res) {
		t.Fatal("expected runtime failure")
	}
	// Candidates discarded; read a through the persisted pair.
	addr, ok := env.Get("a")
	if !ok {
		t.Fatal("binding lost")
	}
	val, _ := store.Get(addr)
	expectInt(t, val, 10)
}

func isErrObj(obj evaluator.Object) bool {
	_, ok := obj.(*evaluator.Error)
	return ok
}
