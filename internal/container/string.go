// Package container implements the String, Array, and Range value kinds:
// UTF-8 string operations, a growable heterogeneous array, and a
// half-open integer range with Python-style negative indexing.
package container

import (
	"strings"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

func StrConcat(a, b *value.Value) *value.Value {
	return value.NewString(a.AsString() + b.AsString())
}

func StrEq(a, b *value.Value) bool { return a.AsString() == b.AsString() }
func StrCmp(a, b *value.Value) int { return strings.Compare(a.AsString(), b.AsString()) }

// StrLen counts code points, not bytes.
func StrLen(s *value.Value) int {
	return len([]rune(s.AsString()))
}

// resolveIndex applies Python-style negative-index resolution: -1 is the
// last element, etc.
func resolveIndex(i int64, length int) int64 {
	if i < 0 {
		return i + int64(length)
	}
	return i
}

func StrIndex(ctx *calc.Context, s *value.Value, i int64) *value.Value {
	runes := []rune(s.AsString())
	idx := resolveIndex(i, len(runes))
	if idx < 0 || idx >= int64(len(runes)) {
		ctx.Fail(bcerr.Range, "string index out of bounds")
		return value.Sentinel
	}
	return value.NewString(string(runes[idx]))
}

// StrSlice implements a[start:stop) with optional bounds.
func StrSlice(ctx *calc.Context, s *value.Value, start, stop *int64) *value.Value {
	runes := []rune(s.AsString())
	n := int64(len(runes))
	lo, hi := int64(0), n
	if start != nil {
		lo = resolveIndex(*start, len(runes))
	}
	if stop != nil {
		hi = resolveIndex(*stop, len(runes))
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return value.NewString("")
	}
	return value.NewString(string(runes[lo:hi]))
}
