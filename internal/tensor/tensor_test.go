package tensor

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
	return a
}

func fracv(n int64) *value.Value {
	return numeric.FracNew(calc.New(), big.NewInt(n), big.NewInt(1))
}

// mat2 builds a row-major 2x2 matrix (dims = [width, height] per the
// package's documented convention).
func mat2(a, b, c, d int64) *value.Value {
	elem := kind.Plain(kind.Fraction)
	return value.NewTensor(elem, []int{2, 2}, []*value.Value{fracv(a), fracv(b), fracv(c), fracv(d)})
}

func TestDet2x2(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	m := mat2(1, 2, 3, 4) // det = 1*4 - 2*3 = -2
	got := o.Det(ctx, m)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	if !numeric.FracEq(got, fracv(-2)) {
		t.Fatalf("det([[1,2],[3,4]]) did not equal -2")
	}
}

func TestDetRejectsNonSquare(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	elem := kind.Plain(kind.Fraction)
	m := value.NewTensor(elem, []int{3, 2}, []*value.Value{
		fracv(1), fracv(2), fracv(3), fracv(4), fracv(5), fracv(6),
	})
	o.Det(ctx, m)
	if !ctx.Failed() {
		t.Fatal("expected det of a non-square matrix to fail")
	}
}

func TestTranspose(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	m := mat2(1, 2, 3, 4)
	got := o.Trans(ctx, m)
	_, cells := got.AsTensor()
	want := []int64{1, 3, 2, 4}
	for i, w := range want {
		if !numeric.FracEq(cells[i], fracv(w)) {
			t.Fatalf("cell %d did not equal %d", i, w)
		}
	}
}

func TestMatMulByIdentity(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	m := mat2(1, 2, 3, 4)
	id := o.Identity(ctx, m)
	got := o.MatMul(ctx, m, id)
	if ctx.Failed() {
		t.Fatalf("unexpected failure: %v", ctx.Err.Peek())
	}
	_, cells := got.AsTensor()
	want := []int64{1, 2, 3, 4}
	for i, w := range want {
		if !numeric.FracEq(cells[i], fracv(w)) {
			t.Fatalf("cell %d did not equal %d", i, w)
		}
	}
}

func TestTrace(t *testing.T) {
	ctx := calc.New()
	o := New(fracArith{})

	m := mat2(1, 2, 3, 4)
	got := o.Trace(ctx, m)
	if !numeric.FracEq(got, fracv(5)) {
		t.Fatal("trace([[1,2],[3,4]]) did not equal 5")
	}
}
