package numeric

import (
	"math/big"
	"testing"

	"bc/internal/calc"
	"bc/internal/value"
)

func flt(x float64) *value.Value {
	return value.NewFloat(new(big.Float).SetPrec(53).SetFloat64(x))
}

func TestFloatArith(t *testing.T) {
	ctx := calc.New()
	got := FloatAdd(ctx, flt(1.5), flt(2.25))
	f, _ := got.AsFloat().Float64()
	if f != 3.75 {
		t.Fatalf("1.5+2.25 = %v, want 3.75", f)
	}
}

func TestFloatDivByZero(t *testing.T) {
	ctx := calc.New()
	got := FloatDiv(ctx, flt(1), flt(0))
	if !got.AsFloat().IsInf() {
		t.Fatalf("1/0 = %v, want +Inf", got.AsFloat())
	}
}

func TestFloatFloorCeil(t *testing.T) {
	if got := FloatFloor(flt(-1.5)); got.AsFloat().String() != "-2" {
		t.Fatalf("floor(-1.5) = %v, want -2", got.AsFloat())
	}
	if got := FloatCeil(flt(1.5)); got.AsFloat().String() != "2" {
		t.Fatalf("ceil(1.5) = %v, want 2", got.AsFloat())
	}
}

func TestFloatSqrt(t *testing.T) {
	ctx := calc.New()
	got := FloatSqrt(ctx, flt(4))
	f, _ := got.AsFloat().Float64()
	if f != 2 {
		t.Fatalf("sqrt(4) = %v, want 2", f)
	}
}

func TestFloatSqrtOfNegativeFails(t *testing.T) {
	ctx := calc.New()
	FloatSqrt(ctx, flt(-1))
	if !ctx.Failed() {
		t.Fatal("expected sqrt of a negative Float to fail")
	}
}
