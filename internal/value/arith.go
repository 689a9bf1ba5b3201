package value

import (
	"bc/internal/calc"
	"bc/internal/kind"
)

// Arith is the generic element-operation surface that the poly, series,
// and tensor packages need in order to stay agnostic of their element
// kind.
//
// Without this indirection, poly/series/tensor would need to import the
// generic-dispatch package to add two coefficients of arbitrary kind, and
// dispatch needs to import poly/series/tensor to implement "Polynomial +
// Polynomial" — a direct import cycle. Dependency inversion breaks it: the
// dispatch package is the only implementation of Arith, and it injects
// itself into poly/series/tensor constructors (see internal/dispatch).
type Arith interface {
	Add(ctx *calc.Context, a, b *Value) *Value
	Sub(ctx *calc.Context, a, b *Value) *Value
	Mul(ctx *calc.Context, a, b *Value) *Value
	Div(ctx *calc.Context, a, b *Value) *Value
	Neg(ctx *calc.Context, a *Value) *Value
	Eq(ctx *calc.Context, a, b *Value) bool
	IsZero(ctx *calc.Context, a *Value) bool
	// Convert coerces a value into the given element type (e.g. lifting an
	// Integer coefficient into the Fraction field for division).
	Convert(ctx *calc.Context, a *Value, target *kind.Type) *Value
}
