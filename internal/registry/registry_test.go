package registry

import (
	"math/big"
	"testing"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/value"
)

func intv(n int64) *value.Value { return value.NewInteger(big.NewInt(n)) }

func TestBindAndResolve(t *testing.T) {
	ctx := calc.New()
	reg := New()
	reg.Bind("answer", intv(42))

	if !reg.Has("answer") {
		t.Fatal("expected Has to report the bound name")
	}
	got := reg.Resolve(ctx, "answer")
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got.AsInteger().Int64() != 42 {
		t.Fatalf("got %v", got.AsInteger())
	}
}

func TestResolveUnboundNameFails(t *testing.T) {
	ctx := calc.New()
	reg := New()
	reg.Resolve(ctx, "nope")
	if !ctx.Failed() || ctx.Err.Peek().Kind != bcerr.Reference {
		t.Fatalf("expected ReferenceError, got %+v", ctx.Err.Peek())
	}
}

func TestBindGetterIsReevaluatedEachLookup(t *testing.T) {
	ctx := calc.New()
	reg := New()
	n := int64(0)
	reg.BindGetter("counter", func(ctx *calc.Context) *value.Value {
		n++
		return intv(n)
	})

	first := reg.Resolve(ctx, "counter")
	second := reg.Resolve(ctx, "counter")
	if first.AsInteger().Int64() != 1 || second.AsInteger().Int64() != 2 {
		t.Fatalf("expected the getter to run fresh each time, got %v then %v", first.AsInteger(), second.AsInteger())
	}
}

func TestInstallBuiltinsEndToEnd(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	reg := New()
	Install(reg, d)

	call := func(name string, args ...*value.Value) *value.Value {
		fn, ok := reg.Lookup(ctx, name)
		if !ok {
			t.Fatalf("builtin %q not installed", name)
		}
		return fn.AsFunction().Call(ctx, args)
	}

	if got := call("gcd", intv(12), intv(18)); got.AsInteger().Int64() != 6 {
		t.Fatalf("gcd(12,18) = %v, want 6", got.AsInteger())
	}
	if got := call("invmod", intv(3), intv(11)); got.AsInteger().Int64() != 4 {
		t.Fatalf("invmod(3,11) = %v, want 4", got.AsInteger())
	}
	if got := call("isprime", intv(97)); !got.AsBool() {
		t.Fatal("expected isprime(97) to be true")
	}
	if got := call("isqrt", intv(50)); got.AsInteger().Int64() != 7 {
		t.Fatalf("isqrt(50) = %v, want 7", got.AsInteger())
	}

	x, ok := reg.Lookup(ctx, "X")
	if !ok {
		t.Fatal("expected X to be bound by Install")
	}
	if x.Tag().String() != "Polynomial" {
		t.Fatalf("expected X to be a Polynomial, got %s", x.Type)
	}

	pi1 := reg.Resolve(ctx, "PI")
	pi2 := reg.Resolve(ctx, "PI")
	if pi1.AsDecimal().Cmp(pi2.AsDecimal()) != 0 {
		t.Fatal("expected PI to be a stable constant across lookups at the same precision")
	}
}
