package container

import "bc/internal/value"

// RangeNew builds a half-open [start, stop) integer range; either bound may
// be nil.
func RangeNew(start, stop *int64) *value.Value {
	return value.NewRange(start, stop)
}

// RangeMaterialize resolves a range against a concrete length, the same
// Python-style negative-index resolution used by String/Array slicing, and
// returns the concrete [lo, hi) bounds.
func RangeMaterialize(r *value.Value, length int) (lo, hi int64) {
	start, stop := r.AsRange()
	lo, hi = 0, int64(length)
	if start != nil {
		lo = resolveIndex(*start, length)
	}
	if stop != nil {
		hi = resolveIndex(*stop, length)
	}
	if lo < 0 {
		lo = 0
	}
	if hi > int64(length) {
		hi = int64(length)
	}
	return lo, hi
}

func RangeEq(a, b *value.Value) bool {
	as, ae := a.AsRange()
	bs, be := b.AsRange()
	return int64Eq(as, bs) && int64Eq(ae, be)
}

func int64Eq(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
