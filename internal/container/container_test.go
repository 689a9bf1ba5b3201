package container

import (
	"math/big"
	"testing"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

func intv(n int64) *value.Value { return value.NewInteger(big.NewInt(n)) }

func TestArrayIndexAndNegative(t *testing.T) {
	ctx := calc.New()
	a := ArrayNew([]*value.Value{intv(1), intv(2), intv(3)})

	if got := ArrayIndex(ctx, a, 1); got.AsInteger().Int64() != 2 {
		t.Fatalf("got %v", got.AsInteger())
	}
	if got := ArrayIndex(ctx, a, -1); got.AsInteger().Int64() != 3 {
		t.Fatalf("negative index: got %v", got.AsInteger())
	}
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	ctx := calc.New()
	a := ArrayNew([]*value.Value{intv(1)})
	ArrayIndex(ctx, a, 10)
	if !ctx.Failed() || ctx.Err.Peek().Kind != bcerr.Range {
		t.Fatalf("expected RangeError, got %+v", ctx.Err.Peek())
	}
}

func TestArraySetClonesWhenShared(t *testing.T) {
	ctx := calc.New()
	a := ArrayNew([]*value.Value{intv(1), intv(2)})
	a.Retain() // now shared: RefCount() == 2

	out := ArraySet(ctx, a, 0, intv(99))
	if out == a {
		t.Fatal("expected ArraySet to clone a shared array instead of mutating in place")
	}
	if a.AsArray()[0].AsInteger().Int64() != 1 {
		t.Fatal("expected the original array to remain untouched")
	}
	if out.AsArray()[0].AsInteger().Int64() != 99 {
		t.Fatal("expected the clone to carry the new value")
	}
}

func TestArrayPushGrows(t *testing.T) {
	a := ArrayNew([]*value.Value{intv(1)})
	a = ArrayPush(a, intv(2))
	if ArrayLen(a) != 2 {
		t.Fatalf("got len %d", ArrayLen(a))
	}
}

func TestStrIndexCountsCodePoints(t *testing.T) {
	ctx := calc.New()
	s := value.NewString("héllo")
	got := StrIndex(ctx, s, 1)
	if got.AsString() != "é" {
		t.Fatalf("got %q", got.AsString())
	}
}

func TestStrIndexOutOfBounds(t *testing.T) {
	ctx := calc.New()
	s := value.NewString("abc")
	StrIndex(ctx, s, 10)
	if !ctx.Failed() || ctx.Err.Peek().Kind != bcerr.Range {
		t.Fatalf("expected RangeError, got %+v", ctx.Err.Peek())
	}
}

func TestStrSlice(t *testing.T) {
	ctx := calc.New()
	s := value.NewString("abcdef")
	start, stop := int64(1), int64(4)
	got := StrSlice(ctx, s, &start, &stop)
	if got.AsString() != "bcd" {
		t.Fatalf("got %q", got.AsString())
	}
}

func TestRangeEq(t *testing.T) {
	a0, a1 := int64(0), int64(5)
	b0, b1 := int64(0), int64(5)
	r1 := RangeNew(&a0, &a1)
	r2 := RangeNew(&b0, &b1)
	if !RangeEq(r1, r2) {
		t.Fatal("expected structurally equal ranges to compare equal")
	}
	r3 := RangeNew(nil, &b1)
	if RangeEq(r1, r3) {
		t.Fatal("expected a nil-start range to differ from a 0-start range")
	}
}
