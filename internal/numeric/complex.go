package numeric

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

// Complex operations are generic over the real element type, so every function here takes
// an Arith implementation for the element arithmetic rather than hardcoding
// a kind — the same dependency-inversion pattern internal/poly,
// internal/series, and internal/tensor use (see value.Arith's doc comment).

func ComplexAdd(ctx *calc.Context, ar value.Arith, a, b *value.Value) *value.Value {
	are, aim := a.AsComplex()
	bre, bim := b.AsComplex()
	return value.NewComplex(a.Type.Elem, ar.Add(ctx, are, bre), ar.Add(ctx, aim, bim))
}

func ComplexSub(ctx *calc.Context, ar value.Arith, a, b *value.Value) *value.Value {
	are, aim := a.AsComplex()
	bre, bim := b.AsComplex()
	return value.NewComplex(a.Type.Elem, ar.Sub(ctx, are, bre), ar.Sub(ctx, aim, bim))
}

func ComplexMul(ctx *calc.Context, ar value.Arith, a, b *value.Value) *value.Value {
	are, aim := a.AsComplex()
	bre, bim := b.AsComplex()
	re := ar.Sub(ctx, ar.Mul(ctx, are, bre), ar.Mul(ctx, aim, bim))
	im := ar.Add(ctx, ar.Mul(ctx, are, bim), ar.Mul(ctx, aim, bre))
	return value.NewComplex(a.Type.Elem, re, im)
}

func ComplexDiv(ctx *calc.Context, ar value.Arith, a, b *value.Value) *value.Value {
	are, aim := a.AsComplex()
	bre, bim := b.AsComplex()
	denom := ar.Add(ctx, ar.Mul(ctx, bre, bre), ar.Mul(ctx, bim, bim))
	if ar.IsZero(ctx, denom) {
		ctx.Fail(bcerr.Range, "division by zero")
		return value.Sentinel
	}
	reNum := ar.Add(ctx, ar.Mul(ctx, are, bre), ar.Mul(ctx, aim, bim))
	imNum := ar.Sub(ctx, ar.Mul(ctx, aim, bre), ar.Mul(ctx, are, bim))
	return value.NewComplex(a.Type.Elem, ar.Div(ctx, reNum, denom), ar.Div(ctx, imNum, denom))
}

func ComplexNeg(ctx *calc.Context, ar value.Arith, a *value.Value) *value.Value {
	re, im := a.AsComplex()
	return value.NewComplex(a.Type.Elem, ar.Neg(ctx, re), ar.Neg(ctx, im))
}

func ComplexEq(ctx *calc.Context, ar value.Arith, a, b *value.Value) bool {
	are, aim := a.AsComplex()
	bre, bim := b.AsComplex()
	return ar.Eq(ctx, are, bre) && ar.Eq(ctx, aim, bim)
}

func ComplexIsZero(ctx *calc.Context, ar value.Arith, a *value.Value) bool {
	re, im := a.AsComplex()
	return ar.IsZero(ctx, re) && ar.IsZero(ctx, im)
}

// ComplexAbsSquared returns re^2+im^2 in the element type; it takes no
// square root, so abs(z) = sqrt(re^2+im^2) is left to the caller.
func ComplexAbsSquared(ctx *calc.Context, ar value.Arith, a *value.Value) *value.Value {
	re, im := a.AsComplex()
	return ar.Add(ctx, ar.Mul(ctx, re, re), ar.Mul(ctx, im, im))
}

// ComplexDivRem is Gaussian-integer Euclidean division, defined only over
// Complex(Integer): q = round(num/den) computed in Complex(Fraction) then
// truncated to the nearest Gaussian integer, r = num - q*den.
func ComplexDivRem(ctx *calc.Context, ar value.Arith, num, den *value.Value, roundElem func(*calc.Context, *value.Value) *value.Value) (q, r *value.Value) {
	if num.Type.Elem.Tag != kind.Integer || den.Type.Elem.Tag != kind.Integer {
		ctx.Fail(bcerr.Type, "Gaussian divrem requires Complex(Integer) operands")
		return value.Sentinel, value.Sentinel
	}
	nre, nim := num.AsComplex()
	dre, dim := den.AsComplex()
	denomSq := ar.Add(ctx, ar.Mul(ctx, dre, dre), ar.Mul(ctx, dim, dim))
	if ar.IsZero(ctx, denomSq) {
		ctx.Fail(bcerr.Range, "division by zero")
		return value.Sentinel, value.Sentinel
	}
	reNum := ar.Add(ctx, ar.Mul(ctx, nre, dre), ar.Mul(ctx, nim, dim))
	imNum := ar.Sub(ctx, ar.Mul(ctx, nim, dre), ar.Mul(ctx, nre, dim))
	qre := roundElem(ctx, ar.Div(ctx, reNum, denomSq))
	qim := roundElem(ctx, ar.Div(ctx, imNum, denomSq))
	q = value.NewComplex(num.Type.Elem, qre, qim)
	r = ComplexSub(ctx, ar, num, ComplexMul(ctx, ar, q, den))
	return q, r
}
