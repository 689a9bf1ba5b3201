package numeric

import (
	"math/big"
	"testing"

	"bc/internal/calc"
)

func TestFracNewReducesAndNormalizesSign(t *testing.T) {
	ctx := calc.New()
	f := FracNew(ctx, big.NewInt(-4), big.NewInt(-6))
	num, den := fracParts(f)
	if den.Sign() <= 0 {
		t.Fatalf("expected positive denominator, got %v", den)
	}
	if num.Int64() != 2 || den.Int64() != 3 {
		t.Fatalf("got %v/%v, want 2/3", num, den)
	}
}

func TestFracArith(t *testing.T) {
	ctx := calc.New()
	half := FracNew(ctx, big.NewInt(1), big.NewInt(2))
	third := FracNew(ctx, big.NewInt(1), big.NewInt(3))

	sum := FracAdd(ctx, half, third)
	num, den := fracParts(sum)
	if num.Int64() != 5 || den.Int64() != 6 {
		t.Fatalf("1/2+1/3 = %v/%v, want 5/6", num, den)
	}
}

func TestFracPow(t *testing.T) {
	ctx := calc.New()
	f := FracNew(ctx, big.NewInt(3), big.NewInt(5))
	got := FracPow(ctx, f, 10)
	num, den := fracParts(got)
	if num.String() != "59049" || den.String() != "9765625" {
		t.Fatalf("(3/5)^10 = %v/%v", num, den)
	}
}

func TestFracFloorCeil(t *testing.T) {
	ctx := calc.New()
	negHalf := FracNew(ctx, big.NewInt(-1), big.NewInt(2))
	if got := FracFloor(negHalf); got.AsInteger().Int64() != -1 {
		t.Fatalf("floor(-1/2) = %v, want -1", got.AsInteger())
	}
	if got := FracCeil(negHalf); got.AsInteger().Int64() != 0 {
		t.Fatalf("ceil(-1/2) = %v, want 0", got.AsInteger())
	}
}
