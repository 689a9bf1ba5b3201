package dispatch

import (
	"math/big"
	"testing"

	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

func intv(n int64) *value.Value { return value.NewInteger(big.NewInt(n)) }

func TestArithPromotesThroughLattice(t *testing.T) {
	ctx := calc.New()
	d := New()

	// Integer + Fraction promotes to Fraction.
	half := value.NewFraction(intv(1), intv(2))
	got := d.Add(ctx, intv(1), half)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got.Tag() != kind.Fraction {
		t.Fatalf("expected Fraction, got %s", got.Type)
	}
	num, den := got.AsFraction()
	if num.AsInteger().Int64() != 3 || den.AsInteger().Int64() != 2 {
		t.Fatalf("1 + 1/2 = %v/%v, want 3/2", num.AsInteger(), den.AsInteger())
	}
}

func TestMulAndDivInteger(t *testing.T) {
	ctx := calc.New()
	d := New()

	if got := d.Mul(ctx, intv(6), intv(7)).AsInteger().Int64(); got != 42 {
		t.Fatalf("got %d", got)
	}
	div := d.Div(ctx, intv(1), intv(2))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if div.Tag() != kind.Fraction {
		t.Fatalf("expected Integer / Integer to produce a Fraction, got %s", div.Type)
	}
}

func TestTrueDivInteger(t *testing.T) {
	ctx := calc.New()
	d := New()

	got := d.TrueDiv(ctx, intv(1), intv(2))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got.Tag() != kind.Decimal {
		t.Fatalf("expected Integer / Integer to produce a Decimal, got %s", got.Type)
	}

	inf := d.TrueDiv(ctx, intv(1), intv(0))
	if ctx.Failed() {
		t.Fatalf("unexpected failure dividing by zero: %v", ctx.Err.Peek())
	}
	if inf.Tag() != kind.Decimal {
		t.Fatalf("expected 1/0 to still be a Decimal, got %s", inf.Type)
	}
}

func TestEqAndIsZero(t *testing.T) {
	ctx := calc.New()
	d := New()

	if !d.Eq(ctx, intv(2), value.NewFraction(intv(4), intv(2))) {
		t.Fatal("expected 2 == 4/2 across kinds")
	}
	if !d.IsZero(ctx, intv(0)) {
		t.Fatal("expected 0 to be zero")
	}
	if d.IsZero(ctx, intv(1)) {
		t.Fatal("expected 1 to not be zero")
	}
}

func TestConvertIntegerToFloat(t *testing.T) {
	ctx := calc.New()
	d := New()

	got := d.Convert(ctx, intv(3), kind.Plain(kind.Float))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	f, _ := got.AsFloat().Float64()
	if f != 3 {
		t.Fatalf("got %v", f)
	}
}

func TestNegAndPowWithNegativeIntegerExponent(t *testing.T) {
	ctx := calc.New()
	d := New()

	if got := d.Neg(ctx, intv(5)).AsInteger().Int64(); got != -5 {
		t.Fatalf("got %d", got)
	}

	// 2^-1 should land on the Fraction 1/2.
	got := d.Pow(ctx, intv(2), intv(-1))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	num, den := got.AsFraction()
	if num.AsInteger().Int64() != 1 || den.AsInteger().Int64() != 2 {
		t.Fatalf("2^-1 = %v/%v, want 1/2", num.AsInteger(), den.AsInteger())
	}
}

func TestModFollowsFloorConvention(t *testing.T) {
	ctx := calc.New()
	d := New()

	// -1 mod 3 should be 2 (Euclidean / nonnegative remainder).
	got := d.Mod(ctx, intv(-1), intv(3))
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if got.AsInteger().Int64() != 2 {
		t.Fatalf("-1 mod 3 = %v, want 2", got.AsInteger())
	}
}

func TestBitwiseFamily(t *testing.T) {
	ctx := calc.New()
	d := New()

	if got := d.BitAnd(ctx, intv(6), intv(3)).AsInteger().Int64(); got != 2 {
		t.Fatalf("6 & 3 = %d, want 2", got)
	}
	if got := d.Shl(ctx, intv(1), intv(4)).AsInteger().Int64(); got != 16 {
		t.Fatalf("1 << 4 = %d, want 16", got)
	}

	d.BitAnd(ctx, intv(1), half(t))
	if !ctx.Failed() {
		t.Fatal("expected a TypeError mixing bitwise ops with a non-Integer operand")
	}
}

func half(t *testing.T) *value.Value {
	t.Helper()
	return value.NewFraction(intv(1), intv(2))
}
