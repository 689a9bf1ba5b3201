// Package poly implements the dense univariate Polynomial value kind:
// little-endian coefficients (index = degree), trimmed on every result,
// plus gcd (pseudo-division for integer coefficients, ordinary Euclidean
// for field coefficients), derivative, integration, and a Laguerre root
// finder.
//
// Ops is generic over the coefficient kind via value.Arith, the same
// dependency-inversion pattern tensor and series use.
package poly

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

type Ops struct {
	A value.Arith
}

func New(a value.Arith) *Ops { return &Ops{A: a} }

// Trim removes structurally-zero trailing coefficients, keeping at least
// one coefficient.
func (o *Ops) Trim(ctx *calc.Context, elem *kind.Type, coeffs []*value.Value) *value.Value {
	n := len(coeffs)
	for n > 1 && o.A.IsZero(ctx, coeffs[n-1]) {
		n--
	}
	return value.NewPolynomial(elem, coeffs[:n])
}

// Deg returns deg(p), with the zero polynomial's degree defined as -1.
func (o *Ops) Deg(ctx *calc.Context, p *value.Value) int {
	c := p.AsPolynomial()
	if len(c) == 1 && o.A.IsZero(ctx, c[0]) {
		return -1
	}
	return len(c) - 1
}

func pad(c []*value.Value, n int, zero *value.Value) []*value.Value {
	if len(c) >= n {
		return c
	}
	out := make([]*value.Value, n)
	copy(out, c)
	for i := len(c); i < n; i++ {
		out[i] = zero
	}
	return out
}

func (o *Ops) zeroOf(ctx *calc.Context, sample *value.Value) *value.Value {
	return o.A.Sub(ctx, sample, sample)
}

func (o *Ops) Add(ctx *calc.Context, a, b *value.Value) *value.Value {
	ac, bc := a.AsPolynomial(), b.AsPolynomial()
	n := len(ac)
	if len(bc) > n {
		n = len(bc)
	}
	zero := o.zeroOf(ctx, ac[0])
	ap, bp := pad(ac, n, zero), pad(bc, n, zero)
	out := make([]*value.Value, n)
	for i := 0; i < n; i++ {
		out[i] = o.A.Add(ctx, ap[i], bp[i])
	}
	return o.Trim(ctx, elemOf(a, b), out)
}

func elemOf(a, b *value.Value) *kind.Type {
	if a.Type.Elem.Tag >= b.Type.Elem.Tag {
		return a.Type.Elem
	}
	return b.Type.Elem
}

func (o *Ops) Sub(ctx *calc.Context, a, b *value.Value) *value.Value {
	return o.Add(ctx, a, o.Neg(ctx, b))
}

func (o *Ops) Neg(ctx *calc.Context, a *value.Value) *value.Value {
	ac := a.AsPolynomial()
	out := make([]*value.Value, len(ac))
	for i, c := range ac {
		out[i] = o.A.Neg(ctx, c)
	}
	return value.NewPolynomial(a.Type.Elem, out)
}

// Mul is the O(n*m) convolution.
func (o *Ops) Mul(ctx *calc.Context, a, b *value.Value) *value.Value {
	ac, bc := a.AsPolynomial(), b.AsPolynomial()
	zero := o.zeroOf(ctx, ac[0])
	out := make([]*value.Value, len(ac)+len(bc)-1)
	for i := range out {
		out[i] = zero
	}
	for i, av := range ac {
		if o.A.IsZero(ctx, av) {
			continue
		}
		for j, bv := range bc {
			out[i+j] = o.A.Add(ctx, out[i+j], o.A.Mul(ctx, av, bv))
		}
	}
	return o.Trim(ctx, elemOf(a, b), out)
}

// Eval evaluates p(x) by Horner's method.
func (o *Ops) Eval(ctx *calc.Context, p *value.Value, x *value.Value) *value.Value {
	c := p.AsPolynomial()
	acc := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		acc = o.A.Add(ctx, o.A.Mul(ctx, acc, x), c[i])
	}
	return acc
}

// DivRem is standard long division in the element field: a = q*b + r with
// deg(r) < deg(b). For a non-field (integer) element type
// this requires exact divisibility at each step; callers needing integer
// gcd use PseudoDivRem instead.
func (o *Ops) DivRem(ctx *calc.Context, a, b *value.Value) (q, r *value.Value) {
	bc := b.AsPolynomial()
	degB := o.Deg(ctx, b)
	if degB < 0 {
		ctx.Fail(bcerr.Range, "division by the zero polynomial")
		return value.Sentinel, value.Sentinel
	}
	lead := bc[degB]
	rem := append([]*value.Value{}, a.AsPolynomial()...)
	degA := o.Deg(ctx, a)
	qc := make([]*value.Value, max0(degA-degB+1))
	zero := o.zeroOf(ctx, bc[0])
	for i := range qc {
		qc[i] = zero
	}
	for degA >= degB && degA >= 0 {
		coeff := o.A.Div(ctx, rem[degA], lead)
		if ctx.Failed() {
			return value.Sentinel, value.Sentinel
		}
		qc[degA-degB] = coeff
		for i := 0; i <= degB; i++ {
			rem[degA-degB+i] = o.A.Sub(ctx, rem[degA-degB+i], o.A.Mul(ctx, coeff, bc[i]))
		}
		degA--
		for degA >= 0 && o.A.IsZero(ctx, rem[degA]) {
			degA--
		}
	}
	remTrim := rem[:max0(degA+1)]
	if len(remTrim) == 0 {
		remTrim = []*value.Value{zero}
	}
	elem := elemOf(a, b)
	return o.Trim(ctx, elem, qc), o.Trim(ctx, elem, remTrim)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Deriv computes p'(X) = sum i*c_i*X^(i-1).
func (o *Ops) Deriv(ctx *calc.Context, p *value.Value) *value.Value {
	c := p.AsPolynomial()
	if len(c) <= 1 {
		return value.NewPolynomial(p.Type.Elem, []*value.Value{o.zeroOf(ctx, c[0])})
	}
	out := make([]*value.Value, len(c)-1)
	for i := 1; i < len(c); i++ {
		out[i-1] = o.A.Mul(ctx, c[i], o.intLit(ctx, c[0], i))
	}
	return o.Trim(ctx, p.Type.Elem, out)
}

// intLit produces the element-kind representation of a small non-negative
// integer literal by repeated addition, since Arith has no direct
// "from int" constructor.
func (o *Ops) intLit(ctx *calc.Context, sample *value.Value, n int) *value.Value {
	var one *value.Value
	if o.A.IsZero(ctx, sample) {
		// sample itself might be zero; Div(0,0) is undefined, fall back to a
		// Convert from an Integer one.
		one = o.A.Convert(ctx, value.NewInteger(big.NewInt(1)), sample.Type)
	} else {
		one = o.A.Div(ctx, sample, sample)
	}
	acc := o.zeroOf(ctx, sample)
	for i := 0; i < n; i++ {
		acc = o.A.Add(ctx, acc, one)
	}
	return acc
}

// Integ computes integ(p) = sum c_i/(i+1)*X^(i+1), promoting the element
// type to its field.
func (o *Ops) Integ(ctx *calc.Context, p *value.Value, fieldElem *kind.Type) *value.Value {
	c := p.AsPolynomial()
	out := make([]*value.Value, len(c)+1)
	out[0] = o.A.Convert(ctx, o.zeroOf(ctx, c[0]), fieldElem)
	for i, ci := range c {
		lifted := o.A.Convert(ctx, ci, fieldElem)
		out[i+1] = o.A.Div(ctx, lifted, o.intLit(ctx, lifted, i+1))
	}
	return o.Trim(ctx, fieldElem, out)
}

// PseudoDivRem scales the dividend by lead(b)^(deg a - deg b + 1) before
// dividing so the quotient stays in the base ring, the step Integer-element gcd needs.
func (o *Ops) PseudoDivRem(ctx *calc.Context, a, b *value.Value) (q, r *value.Value) {
	degA, degB := o.Deg(ctx, a), o.Deg(ctx, b)
	if degB < 0 {
		ctx.Fail(bcerr.Range, "division by the zero polynomial")
		return value.Sentinel, value.Sentinel
	}
	if degA < degB {
		zero := o.zeroOf(ctx, a.AsPolynomial()[0])
		return value.NewPolynomial(a.Type.Elem, []*value.Value{zero}), a
	}
	bc := b.AsPolynomial()
	lead := bc[degB]
	pow := func(base *value.Value, e int) *value.Value {
		acc := o.A.Div(ctx, base, base)
		for i := 0; i < e; i++ {
			acc = o.A.Mul(ctx, acc, base)
		}
		return acc
	}
	factor := pow(lead, degA-degB+1)
	scaled := a.AsPolynomial()
	scaledCoeffs := make([]*value.Value, len(scaled))
	for i, c := range scaled {
		scaledCoeffs[i] = o.A.Mul(ctx, c, factor)
	}
	scaledPoly := value.NewPolynomial(a.Type.Elem, scaledCoeffs)
	return o.DivRem(ctx, scaledPoly, b)
}

// PrimitivePart divides an integer polynomial by the gcd of its
// coefficients and sign-normalizes so the leading coefficient is positive
// (GLOSSARY "Primitive part").
func (o *Ops) PrimitivePart(ctx *calc.Context, p *value.Value, content func(ctx *calc.Context, coeffs []*value.Value) *value.Value, divExact func(ctx *calc.Context, a, c *value.Value) *value.Value) *value.Value {
	c := p.AsPolynomial()
	cont := content(ctx, c)
	out := make([]*value.Value, len(c))
	for i, ci := range c {
		out[i] = divExact(ctx, ci, cont)
	}
	trimmed := o.Trim(ctx, p.Type.Elem, out)
	deg := o.Deg(ctx, trimmed)
	if deg >= 0 && isNegativeLeading(trimmed.AsPolynomial()[deg]) {
		return o.Neg(ctx, trimmed)
	}
	return trimmed
}

func isNegativeLeading(v *value.Value) bool {
	if v.Tag() == kind.Integer {
		return v.AsInteger().Sign() < 0
	}
	return false
}

// Gcd dispatches on element kind: integer coefficients use pseudo-division
// Euclid + primitive-part normalization; field coefficients use ordinary
// Euclid, normalized monic.
func (o *Ops) Gcd(ctx *calc.Context, a, b *value.Value, isIntegerElem bool, content func(*calc.Context, []*value.Value) *value.Value, divExact func(*calc.Context, *value.Value, *value.Value) *value.Value) *value.Value {
	if o.Deg(ctx, b) < 0 {
		if isIntegerElem {
			return o.PrimitivePart(ctx, a, content, divExact)
		}
		return o.monic(ctx, a)
	}
	var q, r *value.Value
	if isIntegerElem {
		_, r = o.PseudoDivRem(ctx, a, b)
	} else {
		q, r = o.DivRem(ctx, a, b)
		_ = q
	}
	if ctx.Failed() {
		return value.Sentinel
	}
	return o.Gcd(ctx, b, r, isIntegerElem, content, divExact)
}

func (o *Ops) monic(ctx *calc.Context, p *value.Value) *value.Value {
	c := p.AsPolynomial()
	deg := o.Deg(ctx, p)
	if deg < 0 {
		return p
	}
	lead := c[deg]
	out := make([]*value.Value, len(c))
	for i, ci := range c {
		out[i] = o.A.Div(ctx, ci, lead)
	}
	return value.NewPolynomial(p.Type.Elem, out)
}
