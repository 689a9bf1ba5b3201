package numeric

import (
	"testing"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/calc"
	"bc/internal/value"
)

func dec(t *testing.T, s string) *value.Value {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatalf("apd.NewFromString(%q): %v", s, err)
	}
	return value.NewDecimal(d)
}

func TestDecArith(t *testing.T) {
	ctx := calc.New()
	got := DecAdd(ctx, dec(t, "1.5"), dec(t, "2.25"))
	if DecCmp(got, dec(t, "3.75")) != 0 {
		t.Fatalf("1.5+2.25 = %v, want 3.75", got.AsDecimal())
	}
}

func TestDecFloorCeilNegative(t *testing.T) {
	ctx := calc.New()
	neg := dec(t, "-1.5")
	if got := DecFloor(ctx, neg); got.AsDecimal().String() != "-2" {
		t.Fatalf("floor(-1.5) = %v, want -2", got.AsDecimal())
	}
	if got := DecCeil(ctx, neg); got.AsDecimal().String() != "-1" {
		t.Fatalf("ceil(-1.5) = %v, want -1", got.AsDecimal())
	}
}

func TestDecIsZero(t *testing.T) {
	if !DecIsZero(dec(t, "0.0")) {
		t.Fatal("expected 0.0 to be zero")
	}
	if DecIsZero(dec(t, "0.1")) {
		t.Fatal("expected 0.1 to not be zero")
	}
}

func TestDecSqrt(t *testing.T) {
	ctx := calc.New()
	got := DecSqrt(ctx, dec(t, "4"))
	if DecCmp(got, dec(t, "2")) != 0 {
		t.Fatalf("sqrt(4) = %v, want 2", got.AsDecimal())
	}
}
