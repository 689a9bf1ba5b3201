// Package dispatch is the calculator's generic operation dispatcher: it
// holds the promotion lattice, the total convert() function, and the
// single concrete value.Arith implementation injected into internal/poly,
// internal/series, and internal/tensor so those packages never need to
// import dispatch themselves.
package dispatch

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/poly"
	"bc/internal/series"
	"bc/internal/tensor"
	"bc/internal/value"
)

// D is the generic dispatcher. It implements value.Arith over the element
// sub-lattice (Bool..Series) and additionally handles the container kinds
// (Tensor, Array, String, Range) at the top level via Op2/Op1.
type D struct {
	Poly   *poly.Ops
	Series *series.Ops
	Tensor *tensor.Ops
}

// New wires the three mutually-dependent packages together: each is built
// with this D as its value.Arith, and D holds them back, closing the loop
// that a direct import cycle would otherwise forbid (see value.Arith's doc
// comment).
func New() *D {
	d := &D{}
	d.Poly = poly.New(d)
	d.Series = series.New(d)
	d.Tensor = tensor.New(d)
	return d
}

// --- element-level promotion -------------------------------------------

// promote returns the common tag two element-level operands should be
// converted to before a binary op. Bool only ever promotes
// to Integer for arithmetic; comparisons are handled separately by the
// caller since they always yield Bool regardless of operand kind.
func promote(a, b kind.Tag) kind.Tag {
	if a == kind.Bool {
		a = kind.Integer
	}
	if b == kind.Bool {
		b = kind.Integer
	}
	return kind.Max(a, b)
}

// Convert coerces v to the target type: every numeric kind converts upward through the lattice
// Integer -> Fraction -> Decimal -> Float -> Complex, and Polynomial /
// Series lift a scalar via a degree-0 / valuation-0 wrapping.
func (d *D) Convert(ctx *calc.Context, v *value.Value, target *kind.Type) *value.Value {
	if kind.Equal(v.Type, target) {
		return v
	}
	switch target.Tag {
	case kind.Integer:
		return convertToInteger(ctx, v)
	case kind.Fraction:
		return convertToFraction(ctx, v)
	case kind.Decimal:
		return convertToDecimal(ctx, v)
	case kind.Float:
		return convertToFloat(ctx, v)
	case kind.Complex:
		return d.convertToComplex(ctx, v, target.Elem)
	case kind.Polynomial:
		return d.convertToPolynomial(ctx, v, target.Elem)
	case kind.Series:
		return d.convertToSeries(ctx, v, target.Elem)
	case kind.Tensor:
		return d.Tensor.AsScalarTensor(target.Elem, d.Convert(ctx, v, target.Elem))
	}
	ctx.Fail(bcerr.Type, "cannot convert %s to %s", v.Type, target)
	return value.Sentinel
}

func convertToInteger(ctx *calc.Context, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Bool:
		if v.AsBool() {
			return value.NewInteger(big.NewInt(1))
		}
		return value.NewInteger(big.NewInt(0))
	case kind.Integer:
		return v
	case kind.Fraction:
		return numeric.FracTrunc(v)
	case kind.Decimal:
		return numeric.DecTrunc(v)
	case kind.Float:
		f := v.AsFloat()
		if f.IsInf() {
			ctx.Fail(bcerr.Range, "cannot convert an infinite Float to Integer")
			return value.Sentinel
		}
		r, _ := f.Int(nil)
		return value.NewInteger(r)
	}
	ctx.Fail(bcerr.Type, "cannot convert %s to Integer", v.Type)
	return value.Sentinel
}

func convertToFraction(ctx *calc.Context, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Bool:
		return convertToFraction(ctx, convertToInteger(ctx, v))
	case kind.Integer:
		return value.NewFraction(v, value.NewInteger(big.NewInt(1)))
	case kind.Fraction:
		return v
	case kind.Decimal:
		num, den := numeric.DecimalExactRational(v)
		return numeric.FracNew(ctx, num, den)
	case kind.Float:
		ctx.Fail(bcerr.Type, "cannot convert Float to Fraction")
		return value.Sentinel
	}
	ctx.Fail(bcerr.Type, "cannot convert %s to Fraction", v.Type)
	return value.Sentinel
}

func convertToDecimal(ctx *calc.Context, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Bool:
		return convertToDecimal(ctx, convertToInteger(ctx, v))
	case kind.Integer:
		return numeric.DecimalFromInt(ctx, v.AsInteger())
	case kind.Fraction:
		return numeric.DecimalFromFraction(ctx, v)
	case kind.Decimal:
		return v
	case kind.Float:
		ctx.Fail(bcerr.Type, "cannot convert Float to Decimal")
		return value.Sentinel
	}
	ctx.Fail(bcerr.Type, "cannot convert %s to Decimal", v.Type)
	return value.Sentinel
}

func convertToFloat(ctx *calc.Context, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Bool:
		return convertToFloat(ctx, convertToInteger(ctx, v))
	case kind.Integer:
		return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).SetInt(v.AsInteger()))
	case kind.Fraction:
		num, den := v.AsFraction()
		nf := new(big.Float).SetPrec(ctx.BigFloatPrecision()).SetInt(num.AsInteger())
		df := new(big.Float).SetPrec(ctx.BigFloatPrecision()).SetInt(den.AsInteger())
		return value.NewFloat(nf.Quo(nf, df))
	case kind.Decimal:
		return value.NewFloat(numeric.DecimalToBigFloat(ctx, v))
	case kind.Float:
		return v
	}
	ctx.Fail(bcerr.Type, "cannot convert %s to Float", v.Type)
	return value.Sentinel
}

func (d *D) convertToComplex(ctx *calc.Context, v *value.Value, elem *kind.Type) *value.Value {
	if v.Tag() == kind.Complex {
		re, im := v.AsComplex()
		return value.NewComplex(elem, d.Convert(ctx, re, elem), d.Convert(ctx, im, elem))
	}
	re := d.Convert(ctx, v, elem)
	zero := d.Sub(ctx, re, re)
	return value.NewComplex(elem, re, zero)
}

func (d *D) convertToPolynomial(ctx *calc.Context, v *value.Value, elem *kind.Type) *value.Value {
	if v.Tag() == kind.Polynomial {
		c := v.AsPolynomial()
		out := make([]*value.Value, len(c))
		for i, ci := range c {
			out[i] = d.Convert(ctx, ci, elem)
		}
		return value.NewPolynomial(elem, out)
	}
	c0 := d.Convert(ctx, v, elem)
	return value.NewPolynomial(elem, []*value.Value{c0})
}

// defaultSeriesConvertPrecision is the series length used when a source
// value (Polynomial, RationalFunction) carries no length of its own and
// the caller hasn't requested one explicitly.
const defaultSeriesConvertPrecision = 16

func (d *D) convertToSeries(ctx *calc.Context, v *value.Value, elem *kind.Type) *value.Value {
	switch v.Tag() {
	case kind.Series:
		e, c := v.AsSeries()
		out := make([]*value.Value, len(c))
		for i, ci := range c {
			out[i] = d.Convert(ctx, ci, elem)
		}
		return value.NewSeries(elem, e, out)
	case kind.Polynomial:
		p := d.convertToPolynomial(ctx, v, elem)
		return d.Series.FromPolynomial(ctx, p, defaultSeriesConvertPrecision)
	case kind.RationalFunction:
		return d.seriesFromRationalFunction(ctx, v, elem, defaultSeriesConvertPrecision)
	}
	c0 := d.Convert(ctx, v, elem)
	return value.NewSeries(elem, 0, []*value.Value{c0})
}

// seriesFromRationalFunction converts a RationalFunction to a Series:
// convert the numerator, then divide by the series-inverse of the
// denominator out to the requested length n.
func (d *D) seriesFromRationalFunction(ctx *calc.Context, v *value.Value, elem *kind.Type, precision int) *value.Value {
	num, den := v.AsRationalFunction()
	numS := d.Series.FromPolynomial(ctx, d.convertToPolynomial(ctx, num, elem), precision)
	denS := d.Series.FromPolynomial(ctx, d.convertToPolynomial(ctx, den, elem), precision)
	return d.Series.Div(ctx, numS, denS, precision)
}

// --- value.Arith: element-level binary/unary ops ------------------------
//
// These are called by poly/series/tensor with two operands already of the
// same declared element type (the parametric Type.Elem they were built
// with); the only promotion work left here is Bool -> Integer, which can
// still occur since Bool is a legal Tensor/Complex element in principle.

func (d *D) binElemTag(ctx *calc.Context, a, b *value.Value) (kind.Tag, *value.Value, *value.Value) {
	t := promote(a.Tag(), b.Tag())
	pt := plainOrSame(a.Type, b.Type, t)
	return t, d.Convert(ctx, a, pt), d.Convert(ctx, b, pt)
}

// plainOrSame picks the target parametric type for a binary op once both
// operands' outer tags have been promoted to t: when both operands already
// carry tag t (e.g. Polynomial + Polynomial), the one with the
// higher-order element type wins, since element promotion composes the
// same way the outer lattice does.
func plainOrSame(a, b *kind.Type, t kind.Tag) *kind.Type {
	if kind.NeedsElem(t) {
		switch {
		case a.Tag == t && b.Tag == t:
			if a.Elem.Tag >= b.Elem.Tag {
				return a
			}
			return b
		case a.Tag == t:
			return a
		case b.Tag == t:
			return b
		}
	}
	return kind.Plain(t)
}

func (d *D) Add(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		return numeric.IntAdd(av, bv)
	case kind.Fraction:
		return numeric.FracAdd(ctx, av, bv)
	case kind.Decimal:
		return numeric.DecAdd(ctx, av, bv)
	case kind.Float:
		return numeric.FloatAdd(ctx, av, bv)
	case kind.Complex:
		return numeric.ComplexAdd(ctx, d, av, bv)
	case kind.Polynomial:
		return d.Poly.Add(ctx, av, bv)
	case kind.RationalFunction:
		return d.Poly.RAdd(ctx, av, bv, isIntegerElem(av), contentOf, divExactOf)
	case kind.Series:
		return d.Series.Add(ctx, av, bv)
	case kind.Tensor:
		return d.Tensor.Add(ctx, av, bv)
	case kind.String:
		return stringConcat(av, bv)
	}
	ctx.Fail(bcerr.Type, "cannot add %s and %s", a.Type, b.Type)
	return value.Sentinel
}

func (d *D) Sub(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		return numeric.IntSub(av, bv)
	case kind.Fraction:
		return numeric.FracSub(ctx, av, bv)
	case kind.Decimal:
		return numeric.DecSub(ctx, av, bv)
	case kind.Float:
		return numeric.FloatSub(ctx, av, bv)
	case kind.Complex:
		return numeric.ComplexSub(ctx, d, av, bv)
	case kind.Polynomial:
		return d.Poly.Sub(ctx, av, bv)
	case kind.RationalFunction:
		return d.Poly.RAdd(ctx, av, d.Poly.RNeg(ctx, bv), isIntegerElem(av), contentOf, divExactOf)
	case kind.Series:
		return d.Series.Sub(ctx, av, bv)
	case kind.Tensor:
		return d.Tensor.Sub(ctx, av, bv)
	}
	ctx.Fail(bcerr.Type, "cannot subtract %s and %s", a.Type, b.Type)
	return value.Sentinel
}

func (d *D) Mul(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		return numeric.IntMul(av, bv)
	case kind.Fraction:
		return numeric.FracMul(ctx, av, bv)
	case kind.Decimal:
		return numeric.DecMul(ctx, av, bv)
	case kind.Float:
		return numeric.FloatMul(ctx, av, bv)
	case kind.Complex:
		return numeric.ComplexMul(ctx, d, av, bv)
	case kind.Polynomial:
		return d.Poly.Mul(ctx, av, bv)
	case kind.RationalFunction:
		return d.Poly.RMul(ctx, av, bv, isIntegerElem(av), contentOf, divExactOf)
	case kind.Series:
		return d.Series.Mul(ctx, av, bv)
	case kind.Tensor:
		return d.Tensor.MatMul(ctx, av, bv)
	}
	ctx.Fail(bcerr.Type, "cannot multiply %s and %s", a.Type, b.Type)
	return value.Sentinel
}

// MulElementwise is the '.*' operator: for Tensor operands it multiplies
// cell by cell instead of doing matrix multiply; for every other kind it
// is the same as Mul.
func (d *D) MulElementwise(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	if t == kind.Tensor {
		return d.Tensor.MulElem(ctx, av, bv)
	}
	return d.Mul(ctx, a, b)
}

// Div is the element-level field division poly/series/tensor rely on for
// Horner evaluation, pivoting, and gcd; Integer Div promotes to Fraction
// since Integer is not itself a field.
func (d *D) Div(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		return numeric.FracDiv(ctx, d.Convert(ctx, av, kind.Plain(kind.Fraction)), d.Convert(ctx, bv, kind.Plain(kind.Fraction)))
	case kind.Fraction:
		return numeric.FracDiv(ctx, av, bv)
	case kind.Decimal:
		return numeric.DecDiv(ctx, av, bv)
	case kind.Float:
		return numeric.FloatDiv(ctx, av, bv)
	case kind.Complex:
		return numeric.ComplexDiv(ctx, d, av, bv)
	case kind.RationalFunction:
		return d.Poly.RDiv(ctx, av, bv, isIntegerElem(av), contentOf, divExactOf)
	case kind.Series:
		return d.Series.Div(ctx, av, bv, precOf(bv))
	case kind.Polynomial:
		return d.polyDiv(ctx, av, bv)
	}
	ctx.Fail(bcerr.Type, "cannot divide %s and %s", a.Type, b.Type)
	return value.Sentinel
}

// TrueDiv is the user-facing '/' operator. It differs from Div in exactly
// one case: Integer / Integer yields a Decimal at the context's precision
// (so 1/0 is Inf rather than a division-by-zero error, and 1/2 prints as
// 0.5) instead of Div's exact Fraction. Every other operand pairing is
// identical to Div, which callers that need the element-level field
// division — Horner evaluation, pivoting, polynomial gcd — keep using
// directly.
func (d *D) TrueDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	if t == kind.Integer {
		return numeric.DecDiv(ctx, d.Convert(ctx, av, kind.Plain(kind.Decimal)), d.Convert(ctx, bv, kind.Plain(kind.Decimal)))
	}
	return d.Div(ctx, a, b)
}

// polyDiv is '/' for two Polynomials: division by a degree-0
// divisor is exact coefficientwise division, staying a Polynomial; any
// other divisor lifts the pair into a reduced RationalFunction, since
// general polynomial division is not exact.
func (d *D) polyDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	if d.Poly.Deg(ctx, b) == 0 {
		bc := b.AsPolynomial()[0]
		ac := a.AsPolynomial()
		out := make([]*value.Value, len(ac))
		for i, c := range ac {
			out[i] = d.Div(ctx, c, bc)
			if ctx.Failed() {
				return value.Sentinel
			}
		}
		return d.Poly.Trim(ctx, a.Type.Elem, out)
	}
	return d.Poly.RFrac(ctx, a, b, isIntegerElem(a), contentOf, divExactOf)
}

// PolyGcd and RationalDeriv are the registry's entry points into the
// integer-content-aware Gcd/RDeriv machinery of internal/poly, which
// otherwise needs isIntegerElem/contentOf/divExactOf kept package-private
// to dispatch (they reach into a Value's Integer payload directly and
// have no meaning outside a Polynomial/RationalFunction element type).
func (d *D) PolyGcd(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.Poly.Gcd(ctx, a, b, isIntegerElem(a), contentOf, divExactOf)
}

func (d *D) RationalDeriv(ctx *calc.Context, r *value.Value) *value.Value {
	num, _ := r.AsRationalFunction()
	return d.Poly.RDeriv(ctx, r, isIntegerElem(num), contentOf, divExactOf)
}

// RFrac exposes poly.Ops.RFrac with the integer-content hooks bound, for
// building a RationalFunction builtin-side (e.g. rfrac(num, den)).
func (d *D) RFrac(ctx *calc.Context, num, den *value.Value) *value.Value {
	return d.Poly.RFrac(ctx, num, den, isIntegerElem(num), contentOf, divExactOf)
}

func (d *D) Neg(ctx *calc.Context, a *value.Value) *value.Value {
	switch a.Tag() {
	case kind.Integer:
		return numeric.IntNeg(a)
	case kind.Fraction:
		return numeric.FracNeg(ctx, a)
	case kind.Decimal:
		return numeric.DecNeg(ctx, a)
	case kind.Float:
		return numeric.FloatNeg(ctx, a)
	case kind.Complex:
		return numeric.ComplexNeg(ctx, d, a)
	case kind.Polynomial:
		return d.Poly.Neg(ctx, a)
	case kind.RationalFunction:
		return d.Poly.RNeg(ctx, a)
	case kind.Series:
		return d.Series.Neg(ctx, a)
	case kind.Tensor:
		return d.Tensor.Neg(ctx, a)
	}
	ctx.Fail(bcerr.Type, "cannot negate %s", a.Type)
	return value.Sentinel
}

func (d *D) Eq(ctx *calc.Context, a, b *value.Value) bool {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return false
	}
	switch t {
	case kind.Integer:
		return numeric.IntEq(av, bv)
	case kind.Fraction:
		return numeric.FracEq(av, bv)
	case kind.Decimal:
		return numeric.DecEq(av, bv)
	case kind.Float:
		return numeric.FloatEq(av, bv)
	case kind.Complex:
		return numeric.ComplexEq(ctx, d, av, bv)
	case kind.Polynomial:
		return d.polyEq(ctx, av, bv)
	case kind.Series:
		return d.Series.Eq(ctx, av, bv)
	}
	return false
}

func (d *D) polyEq(ctx *calc.Context, a, b *value.Value) bool {
	ac, bc := a.AsPolynomial(), b.AsPolynomial()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !d.Eq(ctx, ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func (d *D) IsZero(ctx *calc.Context, a *value.Value) bool {
	switch a.Tag() {
	case kind.Integer:
		return numeric.IntIsZero(a)
	case kind.Fraction:
		return numeric.FracIsZero(a)
	case kind.Decimal:
		return numeric.DecIsZero(a)
	case kind.Float:
		return numeric.FloatIsZero(a)
	case kind.Complex:
		return numeric.ComplexIsZero(ctx, d, a)
	case kind.Polynomial:
		return d.Poly.Deg(ctx, a) < 0
	}
	return false
}

func isIntegerElem(v *value.Value) bool {
	return v.Type.Elem != nil && v.Type.Elem.Tag == kind.Integer
}

// contentOf/divExactOf supply Gcd/RFrac's integer-coefficient-content
// hooks: content is the gcd
// of the coefficients' underlying big.Ints, divExact is exact big.Int
// division.
func contentOf(ctx *calc.Context, coeffs []*value.Value) *value.Value {
	g := big.NewInt(0)
	for _, c := range coeffs {
		g.GCD(nil, nil, g, new(big.Int).Abs(c.AsInteger()))
	}
	if g.Sign() == 0 {
		g.SetInt64(1)
	}
	return value.NewInteger(g)
}

func divExactOf(ctx *calc.Context, a, c *value.Value) *value.Value {
	return value.NewInteger(new(big.Int).Div(a.AsInteger(), c.AsInteger()))
}

func precOf(v *value.Value) int {
	_, c := v.AsSeries()
	if len(c) == 0 {
		return 1
	}
	return len(c)
}

func stringConcat(a, b *value.Value) *value.Value {
	return value.NewString(a.AsString() + b.AsString())
}
