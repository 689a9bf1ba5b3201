package series

import (
	"math/big"
	"testing"

	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/value"
)

// fracArith is a minimal value.Arith over Fraction, enough to exercise
// Ops generically without needing the full dispatcher (which itself
// imports this package, so importing it back here would cycle).
type fracArith struct{}

func (fracArith) Add(ctx *calc.Context, a, b *value.Value) *value.Value {
	return numeric.FracAdd(ctx, a, b)
}
func (fracArith) Sub(ctx *calc.Context, a, b *value.Value) *value.Value {
	return numeric.FracSub(ctx, a, b)
}
func (fracArith) Mul(ctx *calc.Context, a, b *value.Value) *value.Value {
	return numeric.FracMul(ctx, a, b)
}
func (fracArith) Div(ctx *calc.Context, a, b *value.Value) *value.Value {
	return numeric.FracDiv(ctx, a, b)
}
func (fracArith) Neg(ctx *calc.Context, a *value.Value) *value.Value {
	return numeric.FracNeg(ctx, a)
}
func (fracArith) Eq(ctx *calc.Context, a, b *value.Value) bool  { return numeric.FracEq(a, b) }
func (fracArith) IsZero(ctx *calc.Context, a *value.Value) bool { return numeric.FracIsZero(a) }
func (fracArith) Convert(ctx *calc.Context, a *value.Value, target *kind.Type) *value.Value {
	if a.Tag() == kind.Integer {
		return value.NewFraction(a, numeric.IntNew(big.NewInt(1)))
	}
	return a
}

func fracv(n, d int64) *value.Value {
	return numeric.FracNew(calc.New(), big.NewInt(n), big.NewInt(d))
}

func seriesv(emin int, coeffs ...int64) *value.Value {
	elem := kind.Plain(kind.Fraction)
	cs := make([]*value.Value, len(coeffs))
	for i, c := range coeffs {
		cs[i] = fracv(c, 1)
	}
	return value.NewSeries(elem, emin, cs)
}

func TestSeriesAddMinEminMinPrecision(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// (1 + X + O(X^2)) + (1 + O(X^1)) = 2 + O(X^1): combined precision is
	// bounded by the shorter operand's reach.
	a := seriesv(0, 1, 1)
	b := seriesv(0, 1)
	got := o.Add(ctx, a, b)
	e, c := got.AsSeries()
	if e != 0 || len(c) != 1 || !numeric.FracEq(c[0], fracv(2, 1)) {
		t.Fatalf("got emin=%d coeffs=%v", e, c)
	}
}

func TestSeriesMulEminAdds(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// X * X = X^2 + O(X^3): emin sums, len = min(len_a, len_b) = 1.
	x := seriesv(1, 1)
	got := o.Mul(ctx, x, x)
	e, c := got.AsSeries()
	if e != 2 || len(c) != 1 || !numeric.FracEq(c[0], fracv(1, 1)) {
		t.Fatalf("got emin=%d coeffs=%v", e, c)
	}
}

func TestSeriesInvReciprocal(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// 1/(1-X) = 1 + X + X^2 + X^3 + ...
	oneMinusX := seriesv(0, 1, -1)
	got := o.Inv(ctx, oneMinusX, 4)
	_, c := got.AsSeries()
	for i, want := range []int64{1, 1, 1, 1} {
		if !numeric.FracEq(c[i], fracv(want, 1)) {
			t.Fatalf("coefficient %d did not equal %d", i, want)
		}
	}
}

func TestSeriesExpOfX(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	x := seriesv(0, 0, 1) // c0=0, c1=1
	got := o.Exp(ctx, x, 4)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	_, c := got.AsSeries()
	want := []*value.Value{fracv(1, 1), fracv(1, 1), fracv(1, 2), fracv(1, 6)}
	for i := range want {
		if !numeric.FracEq(c[i], want[i]) {
			t.Fatalf("coefficient %d did not match exp(X) series", i)
		}
	}
}

func TestSeriesExpRejectsNonzeroConstantTerm(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	nonzero := seriesv(0, 1, 1)
	o.Exp(ctx, nonzero, 3)
	if !ctx.Failed() {
		t.Fatal("expected exp to reject a series with a nonzero constant term")
	}
}
