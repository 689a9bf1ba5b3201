package container

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// ArrayNew builds a growable array with spare capacity: (len, capacity,
// cells[capacity]).
func ArrayNew(elems []*value.Value) *value.Value {
	cells := make([]*value.Value, len(elems), len(elems)*2+4)
	copy(cells, elems)
	return value.NewArray(cells)
}

func ArrayLen(a *value.Value) int { return len(a.AsArray()) }

func ArrayIndex(ctx *calc.Context, a *value.Value, i int64) *value.Value {
	elems := a.AsArray()
	idx := resolveIndex(i, len(elems))
	if idx < 0 || idx >= int64(len(elems)) {
		ctx.Fail(bcerr.Range, "array index out of bounds")
		return value.Sentinel
	}
	return elems[idx]
}

func ArraySlice(ctx *calc.Context, a *value.Value, start, stop *int64) *value.Value {
	elems := a.AsArray()
	n := int64(len(elems))
	lo, hi := int64(0), n
	if start != nil {
		lo = resolveIndex(*start, len(elems))
	}
	if stop != nil {
		hi = resolveIndex(*stop, len(elems))
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return ArrayNew(nil)
	}
	out := make([]*value.Value, hi-lo)
	copy(out, elems[lo:hi])
	return ArrayNew(out)
}

// ArraySet mutates in place only when a is uniquely owned (RefCount() == 1);
// otherwise it clones first, preserving value semantics for any other
// observer holding a.
func ArraySet(ctx *calc.Context, a *value.Value, i int64, v *value.Value) *value.Value {
	elems := a.AsArray()
	idx := resolveIndex(i, len(elems))
	if idx < 0 || idx >= int64(len(elems)) {
		ctx.Fail(bcerr.Range, "array index out of bounds")
		return value.Sentinel
	}
	target := a
	if a.RefCount() > 1 {
		target = ArrayNew(elems)
	}
	target.AsArray()[idx] = v
	return target
}

// ArrayPush returns a new array holding a's elements followed by v; a itself
// is left unchanged.
func ArrayPush(a *value.Value, v *value.Value) *value.Value {
	elems := a.AsArray()
	out := make([]*value.Value, len(elems)+1)
	copy(out, elems)
	out[len(elems)] = v
	return ArrayNew(out)
}
