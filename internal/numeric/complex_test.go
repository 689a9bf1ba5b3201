package numeric

import (
	"math/big"
	"testing"

	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

// fracArith is a minimal value.Arith over Fraction, just enough to drive
// the Complex(Fraction) tests below without needing the full dispatcher.
type fracArith struct{}

func (fracArith) Add(ctx *calc.Context, a, b *value.Value) *value.Value { return FracAdd(ctx, a, b) }
func (fracArith) Sub(ctx *calc.Context, a, b *value.Value) *value.Value { return FracSub(ctx, a, b) }
func (fracArith) Mul(ctx *calc.Context, a, b *value.Value) *value.Value { return FracMul(ctx, a, b) }
func (fracArith) Div(ctx *calc.Context, a, b *value.Value) *value.Value { return FracDiv(ctx, a, b) }
func (fracArith) Neg(ctx *calc.Context, a *value.Value) *value.Value    { return FracNeg(ctx, a) }
func (fracArith) Eq(ctx *calc.Context, a, b *value.Value) bool          { return FracEq(a, b) }
func (fracArith) IsZero(ctx *calc.Context, a *value.Value) bool         { return FracIsZero(a) }
func (fracArith) Convert(ctx *calc.Context, a *value.Value, target *kind.Type) *value.Value {
	return a
}

func fracv(n, d int64) *value.Value { return FracNew(calc.New(), big.NewInt(n), big.NewInt(d)) }

func complexv(re, im *value.Value) *value.Value {
	return value.NewComplex(kind.Plain(kind.Fraction), re, im)
}

func TestComplexArith(t *testing.T) {
	ctx := calc.New()
	var ar fracArith

	a := complexv(fracv(1, 1), fracv(2, 1)) // 1 + 2i
	b := complexv(fracv(3, 1), fracv(4, 1)) // 3 + 4i

	sum := ComplexAdd(ctx, ar, a, b)
	sre, sim := sum.AsComplex()
	if !FracEq(sre, fracv(4, 1)) || !FracEq(sim, fracv(6, 1)) {
		t.Fatal("(1+2i)+(3+4i) did not equal 4 + 6i")
	}

	prod := ComplexMul(ctx, ar, a, b)
	pre, pim := prod.AsComplex()
	// (1+2i)(3+4i) = (3-8) + (4+6)i = -5 + 10i
	if !FracEq(pre, fracv(-5, 1)) || !FracEq(pim, fracv(10, 1)) {
		t.Fatal("(1+2i)*(3+4i) did not equal -5 + 10i")
	}
}

func TestComplexEqAndIsZero(t *testing.T) {
	ctx := calc.New()
	var ar fracArith

	zero := complexv(fracv(0, 1), fracv(0, 1))
	if !ComplexIsZero(ctx, ar, zero) {
		t.Fatal("expected 0 + 0i to be zero")
	}
	a := complexv(fracv(1, 1), fracv(2, 1))
	if ComplexIsZero(ctx, ar, a) {
		t.Fatal("expected 1 + 2i to not be zero")
	}
	if !ComplexEq(ctx, ar, a, complexv(fracv(1, 1), fracv(2, 1))) {
		t.Fatal("expected structurally equal complex values to compare equal")
	}
}

func TestComplexDivRecoversOriginal(t *testing.T) {
	ctx := calc.New()
	var ar fracArith

	a := complexv(fracv(1, 1), fracv(2, 1))
	b := complexv(fracv(3, 1), fracv(4, 1))
	q := ComplexDiv(ctx, ar, ComplexMul(ctx, ar, a, b), b)
	qre, qim := q.AsComplex()
	if !FracEq(qre, fracv(1, 1)) || !FracEq(qim, fracv(2, 1)) {
		t.Fatalf("(a*b)/b = %v + %vi, want a back", qre, qim)
	}
}
