package numeric

import (
	"math/big"
	"testing"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

func intv(n int64) *value.Value { return IntNew(big.NewInt(n)) }

func TestIntArith(t *testing.T) {
	if got := IntAdd(intv(2), intv(3)).AsInteger().Int64(); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := IntMul(intv(6), intv(7)).AsInteger().Int64(); got != 42 {
		t.Fatalf("got %d", got)
	}
	if !IntEq(intv(5), intv(5)) {
		t.Fatal("expected equal integers to compare equal")
	}
}

func TestIntDivRem(t *testing.T) {
	ctx := calc.New()
	q, r := IntDivRem(ctx, intv(7), intv(2))
	if q.AsInteger().Int64() != 3 || r.AsInteger().Int64() != 1 {
		t.Fatalf("got q=%v r=%v", q.AsInteger(), r.AsInteger())
	}
}

func TestIntInvModRejectsNonCoprime(t *testing.T) {
	ctx := calc.New()
	IntInvMod(ctx, intv(2), intv(4))
	if !ctx.Failed() || ctx.Err.Peek().Kind != bcerr.Range {
		t.Fatalf("expected RangeError for invmod(2,4), got %+v", ctx.Err.Peek())
	}
}

func TestIntInvMod(t *testing.T) {
	ctx := calc.New()
	got := IntInvMod(ctx, intv(3), intv(101))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got.AsInteger().Int64() != 34 {
		t.Fatalf("got %v", got.AsInteger())
	}
}

func TestIntIsPrime(t *testing.T) {
	if !IntIsPrime(intv(101), 40) {
		t.Fatal("expected 101 to be reported prime")
	}
	if IntIsPrime(intv(100), 40) {
		t.Fatal("expected 100 to be reported composite")
	}
}

func TestIntFactorReconstructsProduct(t *testing.T) {
	ctx := calc.New()
	n := intv(360) // 2^3 * 3^2 * 5
	factors := IntFactor(ctx, n)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	product := big.NewInt(1)
	for _, f := range factors.AsArray() {
		product.Mul(product, f.AsInteger())
		if !IntIsPrime(f, 40) {
			t.Fatalf("factor %v is not prime", f.AsInteger())
		}
	}
	if product.Int64() != 360 {
		t.Fatalf("product of factors = %v, want 360", product)
	}
}
