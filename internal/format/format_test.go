package format

import (
	"math/big"
	"testing"

	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/kind"
	"bc/internal/value"
)

func TestRenderInteger(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()

	v := value.NewInteger(big.NewInt(-255))
	if got := Render(ctx, d, v); got != "-255" {
		t.Fatalf("decimal: got %q", got)
	}

	ctx.HexOutput = true
	if got := Render(ctx, d, v); got != "-0xff" {
		t.Fatalf("hex: got %q", got)
	}
}

func TestRenderFraction(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	v := value.NewFraction(value.NewInteger(big.NewInt(3)), value.NewInteger(big.NewInt(4)))
	if got := Render(ctx, d, v); got != "3//4" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderPolynomial(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	elem := kind.Plain(kind.Integer)
	i := func(n int64) *value.Value { return value.NewInteger(big.NewInt(n)) }

	// X^2 - X + 5
	p := value.NewPolynomial(elem, []*value.Value{i(5), i(-1), i(1)})
	if got := Render(ctx, d, p); got != "X^2 - X + 5" {
		t.Fatalf("got %q", got)
	}

	zero := value.NewPolynomial(elem, []*value.Value{i(0)})
	if got := Render(ctx, d, zero); got != "Polynomial(0)" {
		t.Fatalf("zero poly: got %q", got)
	}
}

func TestRenderSeries(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	elem := kind.Plain(kind.Integer)
	i := func(n int64) *value.Value { return value.NewInteger(big.NewInt(n)) }

	// 1 + X + O(X^3), emin 0
	s := value.NewSeries(elem, 0, []*value.Value{i(1), i(1), i(0)})
	if got := Render(ctx, d, s); got != "1 + X+O(X^3)" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderArrayJSMode(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	a := value.NewArray([]*value.Value{value.NewInteger(big.NewInt(1)), value.NewInteger(big.NewInt(2))})

	if got := Render(ctx, d, a); got != "Array(1, 2)" {
		t.Fatalf("default mode: got %q", got)
	}
	ctx.JSMode = true
	if got := Render(ctx, d, a); got != "[1, 2]" {
		t.Fatalf("js mode: got %q", got)
	}
}

func TestRenderString(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	s := value.NewString("a\nb")
	if got := Render(ctx, d, s); got != `"a\nb"` {
		t.Fatalf("got %q", got)
	}
}

func TestRenderComplex(t *testing.T) {
	ctx := calc.New()
	d := dispatch.New()
	elem := kind.Plain(kind.Integer)
	re := value.NewInteger(big.NewInt(0))
	im := value.NewInteger(big.NewInt(-3))
	c := value.NewComplex(elem, re, im)
	if got := Render(ctx, d, c); got != "-3i" {
		t.Fatalf("got %q", got)
	}
}
