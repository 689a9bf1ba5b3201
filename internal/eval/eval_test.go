package eval

import (
	"testing"

	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/format"
	"bc/internal/lexer"
	"bc/internal/parser"
	"bc/internal/registry"
)

// run evaluates src through the full lexer -> parser -> eval pipeline and
// returns the rendered text of its last result ("" when that result is
// suppressed or evaluation failed), alongside the evaluator's context for
// failure inspection.
func run(t *testing.T, src string) (string, *calc.Context) {
	t.Helper()
	ctx := calc.New()
	d := dispatch.New()
	reg := registry.New()
	registry.Install(reg, d)
	ev := New(ctx, d, reg)

	tokens := lexer.NewScanner(src).ScanTokens()
	prog := parser.NewParser(tokens).Parse()
	results := ev.Run(prog)

	if len(results) == 0 {
		return "", ctx
	}
	last := results[len(results)-1]
	if last.Suppress || ctx.Failed() {
		return "", ctx
	}
	return format.Render(ctx, d, last.Value), ctx
}

func TestEvalArithmetic(t *testing.T) {
	got, ctx := run(t, "1 + 2 * 3")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "7" {
		t.Fatalf("got %q, want 7", got)
	}
}

func TestEvalFractionArithmetic(t *testing.T) {
	got, ctx := run(t, "(3//5)^10")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "59049//9765625" {
		t.Fatalf("got %q", got)
	}
}

func TestEvalAssignmentAndVariableLookup(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	reg := registry.New()
	registry.Install(reg, d)
	ev := New(ctx, d, reg)

	src := "a = 10; a * a"
	tokens := lexer.NewScanner(src).ScanTokens()
	prog := parser.NewParser(tokens).Parse()
	results := ev.Run(prog)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !results[0].Suppress {
		t.Fatal("expected the assignment statement to be suppressed")
	}
	got := format.Render(ctx, d, results[1].Value)
	if got != "100" {
		t.Fatalf("got %q, want 100", got)
	}
}

func TestEvalUnboundNameIsReferenceError(t *testing.T) {
	_, ctx := run(t, "doesNotExist")
	if !ctx.Failed() {
		t.Fatal("expected referencing an unbound name to fail")
	}
}

func TestEvalBuiltinCall(t *testing.T) {
	got, ctx := run(t, "gcd(12, 18)")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "6" {
		t.Fatalf("got %q, want 6", got)
	}
}

func TestEvalArrayIndexing(t *testing.T) {
	got, ctx := run(t, "[10, 20, 30][1]")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "20" {
		t.Fatalf("got %q, want 20", got)
	}
}

func TestEvalDivisionByZeroFails(t *testing.T) {
	_, ctx := run(t, "1 // 0")
	if !ctx.Failed() {
		t.Fatal("expected 1 // 0 to fail")
	}
}

func TestEvalTrueDivisionIsDecimal(t *testing.T) {
	got, ctx := run(t, "1/2")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "0.5" {
		t.Fatalf("got %q, want 0.5", got)
	}
}

func TestEvalTrueDivisionByZeroIsInf(t *testing.T) {
	got, ctx := run(t, "1/0")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got != "Inf" {
		t.Fatalf("got %q, want Inf", got)
	}
}
