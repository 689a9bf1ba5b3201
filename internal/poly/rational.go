package poly

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// RFrac normalizes a (num, den) pair into a RationalFunction: den must be
// nonzero, and the pair is reduced by gcd(num, den). For an
// Integer element type the result is also scaled so the denominator's
// leading coefficient is positive.
func (o *Ops) RFrac(ctx *calc.Context, num, den *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	if o.Deg(ctx, den) < 0 {
		ctx.Fail(bcerr.Range, "rational function with zero denominator")
		return value.Sentinel
	}
	g := o.Gcd(ctx, num, den, isIntegerElem, content, divExact)
	if ctx.Failed() {
		return value.Sentinel
	}
	var redNum, redDen *value.Value
	if isIntegerElem {
		redNum, _ = o.PseudoDivRem(ctx, num, g)
		redDen, _ = o.PseudoDivRem(ctx, den, g)
	} else {
		redNum, _ = o.DivRem(ctx, num, g)
		redDen, _ = o.DivRem(ctx, den, g)
	}
	if ctx.Failed() {
		return value.Sentinel
	}
	degDen := o.Deg(ctx, redDen)
	if degDen >= 0 && isIntegerElem && isNegativeLeading(redDen.AsPolynomial()[degDen]) {
		redNum, redDen = o.Neg(ctx, redNum), o.Neg(ctx, redDen)
	}
	return value.NewRationalFunction(num.Type.Elem, redNum, redDen)
}

// RAdd combines num/den pairs over a common denominator: a/b + c/d =
// (a*d + c*b)/(b*d), then re-normalizes via RFrac.
func (o *Ops) RAdd(ctx *calc.Context, a, b *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	an, ad := a.AsRationalFunction()
	bn, bd := b.AsRationalFunction()
	num := o.Add(ctx, o.Mul(ctx, an, bd), o.Mul(ctx, bn, ad))
	den := o.Mul(ctx, ad, bd)
	return o.RFrac(ctx, num, den, isIntegerElem, content, divExact)
}

func (o *Ops) RMul(ctx *calc.Context, a, b *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	an, ad := a.AsRationalFunction()
	bn, bd := b.AsRationalFunction()
	return o.RFrac(ctx, o.Mul(ctx, an, bn), o.Mul(ctx, ad, bd), isIntegerElem, content, divExact)
}

func (o *Ops) RDiv(ctx *calc.Context, a, b *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	bn, bd := b.AsRationalFunction()
	an, ad := a.AsRationalFunction()
	return o.RFrac(ctx, o.Mul(ctx, an, bd), o.Mul(ctx, ad, bn), isIntegerElem, content, divExact)
}

func (o *Ops) RNeg(ctx *calc.Context, a *value.Value) *value.Value {
	num, den := a.AsRationalFunction()
	return value.NewRationalFunction(a.Type.Elem, o.Neg(ctx, num), den)
}

// REval evaluates num(x)/den(x) directly; a zero denominator
// at x is a Range error.
func (o *Ops) REval(ctx *calc.Context, r *value.Value, x *value.Value) *value.Value {
	num, den := r.AsRationalFunction()
	dv := o.Eval(ctx, den, x)
	if o.A.IsZero(ctx, dv) {
		ctx.Fail(bcerr.Range, "rational function evaluated at a pole")
		return value.Sentinel
	}
	nv := o.Eval(ctx, num, x)
	return o.A.Div(ctx, nv, dv)
}

// RDeriv applies the quotient rule: (n/d)' = (n'd - nd')/d^2.
func (o *Ops) RDeriv(ctx *calc.Context, r *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	num, den := r.AsRationalFunction()
	np := o.Deriv(ctx, num)
	dp := o.Deriv(ctx, den)
	newNum := o.Sub(ctx, o.Mul(ctx, np, den), o.Mul(ctx, num, dp))
	newDen := o.Mul(ctx, den, den)
	return o.RFrac(ctx, newNum, newDen, isIntegerElem, content, divExact)
}
