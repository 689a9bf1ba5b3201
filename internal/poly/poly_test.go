package poly

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

func poly1(coeffs ...int64) *value.Value {
	elem := kind.Plain(kind.Fraction)
	cs := make([]*value.Value, len(coeffs))
	for i, c := range coeffs {
		cs[i] = fracv(c, 1)
	}
	return value.NewPolynomial(elem, cs)
}

func TestPolyAddAndTrim(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// (1 + X) + (-1 + 2X^2) = 0 + X + 2X^2, trimmed keeps the leading zero.
	a := poly1(1, 1)
	b := poly1(-1, 0, 2)
	got := o.Add(ctx, a, b)
	c := got.AsPolynomial()
	if len(c) != 3 {
		t.Fatalf("got %d coefficients, want 3", len(c))
	}
	if !numeric.FracIsZero(c[0]) || !numeric.FracEq(c[1], fracv(1, 1)) || !numeric.FracEq(c[2], fracv(2, 1)) {
		t.Fatalf("unexpected sum coefficients")
	}
}

func TestPolyDegOfZeroIsMinusOne(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})
	zero := poly1(0)
	if got := o.Deg(ctx, zero); got != -1 {
		t.Fatalf("deg(0) = %d, want -1", got)
	}
}

func TestPolyMul(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// (X - 1)(X - 2) = X^2 - 3X + 2
	a := poly1(-1, 1)
	b := poly1(-2, 1)
	got := o.Mul(ctx, a, b).AsPolynomial()
	want := []int64{2, -3, 1}
	if len(got) != len(want) {
		t.Fatalf("got %d coefficients, want %d", len(got), len(want))
	}
	for i, w := range want {
		if !numeric.FracEq(got[i], fracv(w, 1)) {
			t.Fatalf("coefficient %d did not equal %d", i, w)
		}
	}
}

func TestPolyEval(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// p(X) = X^2 - 3X + 2, p(5) = 25 - 15 + 2 = 12
	p := poly1(2, -3, 1)
	got := o.Eval(ctx, p, fracv(5, 1))
	if !numeric.FracEq(got, fracv(12, 1)) {
		t.Fatalf("p(5) = %v, want 12", got)
	}
}

func TestPolyDeriv(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// d/dX (X^2 - 3X + 2) = 2X - 3
	p := poly1(2, -3, 1)
	got := o.Deriv(ctx, p).AsPolynomial()
	if len(got) != 2 || !numeric.FracEq(got[0], fracv(-3, 1)) || !numeric.FracEq(got[1], fracv(2, 1)) {
		t.Fatalf("deriv got unexpected coefficients")
	}
}

func TestPolyDivRemExact(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// (X^2 - 3X + 2) / (X - 1) = X - 2 remainder 0
	a := poly1(2, -3, 1)
	b := poly1(-1, 1)
	q, r := o.DivRem(ctx, a, b)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	qc := q.AsPolynomial()
	if len(qc) != 2 || !numeric.FracEq(qc[0], fracv(-2, 1)) || !numeric.FracEq(qc[1], fracv(1, 1)) {
		t.Fatalf("quotient got unexpected coefficients")
	}
	if o.Deg(ctx, r) >= 0 {
		t.Fatalf("expected zero remainder, got degree %d", o.Deg(ctx, r))
	}
}

func TestPolyGcdOfSharedFactorHasDegreeOne(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	// gcd((X-1)(X-2), (X-1)(X-3)) should be monic (X-1), up to scaling.
	xm1 := poly1(-1, 1)
	xm2 := poly1(-2, 1)
	xm3 := poly1(-3, 1)
	a := o.Mul(ctx, xm1, xm2)
	b := o.Mul(ctx, xm1, xm3)
	g := o.Gcd(ctx, a, b, false, nil, nil)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if o.Deg(ctx, g) != 1 {
		t.Fatalf("deg(gcd) = %d, want 1", o.Deg(ctx, g))
	}
}
