package value

import (
	"math/big"
	"testing"

	"bc/internal/kind"
)

func TestBoolSingletons(t *testing.T) {
	if Bool(true) != True || Bool(false) != False {
		t.Fatal("expected Bool to return the shared singletons")
	}
}

func TestRetainRelease(t *testing.T) {
	v := New(kind.Plain(kind.Integer), IntegerData{X: big.NewInt(1)})
	if v.RefCount() != 1 {
		t.Fatalf("expected initial ref count 1, got %d", v.RefCount())
	}
	v.Retain()
	if v.RefCount() != 2 {
		t.Fatalf("expected ref count 2 after Retain, got %d", v.RefCount())
	}
	v.Release()
	if v.RefCount() != 1 {
		t.Fatalf("expected ref count 1 after Release, got %d", v.RefCount())
	}
}

func TestSentinelUnaffectedByRefcounting(t *testing.T) {
	Sentinel.Retain()
	Sentinel.Release()
	if !IsSentinel(Sentinel) {
		t.Fatal("Sentinel must remain identifiable regardless of ref bookkeeping")
	}
	if IsSentinel(True) {
		t.Fatal("True must not be mistaken for the sentinel")
	}
}

func TestIntegerPayload(t *testing.T) {
	v := NewInteger(big.NewInt(42))
	if v.Tag() != kind.Integer {
		t.Fatalf("got tag %v", v.Tag())
	}
	if v.AsInteger().Int64() != 42 {
		t.Fatalf("got %v", v.AsInteger())
	}
}

func TestFractionPayload(t *testing.T) {
	num := NewInteger(big.NewInt(3))
	den := NewInteger(big.NewInt(4))
	f := NewFraction(num, den)
	gotNum, gotDen := f.AsFraction()
	if gotNum.AsInteger().Int64() != 3 || gotDen.AsInteger().Int64() != 4 {
		t.Fatalf("got %v/%v", gotNum.AsInteger(), gotDen.AsInteger())
	}
}

func TestArrayPayloadRespectsLen(t *testing.T) {
	cells := []*Value{NewInteger(big.NewInt(1)), NewInteger(big.NewInt(2))}
	a := NewArray(cells)
	if len(a.AsArray()) != 2 {
		t.Fatalf("expected 2 live cells, got %d", len(a.AsArray()))
	}
}

func TestRangePayloadOptionalBounds(t *testing.T) {
	start := int64(2)
	r := NewRange(&start, nil)
	gotStart, gotStop := r.AsRange()
	if gotStart == nil || *gotStart != 2 {
		t.Fatalf("got start %v", gotStart)
	}
	if gotStop != nil {
		t.Fatalf("expected nil stop, got %v", gotStop)
	}
}
