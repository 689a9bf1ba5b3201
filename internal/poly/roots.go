package poly

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

const (
	defaultRootEps  = 1e-10
	maxRootIters    = 50
	deflateGuardEps = 1e-14
)

var laguerreStarts = []float64{0.1, -1.4, 1.7}

// Roots finds all roots of p by Laguerre's method with deflation, starting
// from three fixed seeds. opts may be nil; its "eps" entry overrides the
// default convergence tolerance (1e-10), and the iteration cap is fixed at
// maxRootIters. Coefficients are
// converted to Complex(Float) internally regardless of the source element
// kind, and the result is always a rank-1 Tensor of Complex.
func (o *Ops) Roots(ctx *calc.Context, p *value.Value, opts map[string]float64) *value.Value {
	eps := defaultRootEps
	if opts != nil {
		if v, ok := opts["eps"]; ok {
			eps = v
		}
	}
	deg := o.Deg(ctx, p)
	if deg < 1 {
		ctx.Fail(bcerr.Range, "polroots requires a polynomial of degree >= 1")
		return value.Sentinel
	}
	coeffs := toComplex128(ctx, p.AsPolynomial())
	if ctx.Failed() {
		return value.Sentinel
	}
	roots := make([]complex128, 0, deg)
	cur := append([]complex128{}, coeffs...)
	for len(cur) > 2 {
		r := laguerre(cur, eps)
		roots = append(roots, r)
		cur = deflate(cur, r)
	}
	if len(cur) == 2 {
		roots = append(roots, -cur[0]/cur[1])
	}
	floatElem := kind.Plain(kind.Float)
	cells := make([]*value.Value, len(roots))
	for i, r := range roots {
		cells[i] = value.NewComplex(floatElem,
			value.NewFloat(big.NewFloat(real(r))),
			value.NewFloat(big.NewFloat(imag(r))))
	}
	return value.NewTensor(kind.Of(kind.Complex, floatElem), []int{len(cells)}, cells)
}

// toComplex128 approximates each coefficient as a float64, regardless of
// its exact element kind (Integer, Fraction, Decimal, Float, Complex),
// since Laguerre's method only needs double precision to locate roots
// before they are reported back as Complex(Float).
func toComplex128(ctx *calc.Context, coeffs []*value.Value) []complex128 {
	out := make([]complex128, len(coeffs))
	for i, c := range coeffs {
		re, im, ok := approxComplex(c)
		if !ok {
			ctx.Fail(bcerr.Type, "polroots requires a numeric coefficient type")
			return nil
		}
		out[i] = complex(re, im)
	}
	return out
}

func approxComplex(v *value.Value) (re, im float64, ok bool) {
	switch v.Tag() {
	case kind.Complex:
		r, i := v.AsComplex()
		re, ok = approxReal(r)
		if !ok {
			return 0, 0, false
		}
		im, ok = approxReal(i)
		return re, im, ok
	default:
		re, ok = approxReal(v)
		return re, 0, ok
	}
}

func approxReal(v *value.Value) (float64, bool) {
	switch v.Tag() {
	case kind.Integer:
		f := new(big.Float).SetInt(v.AsInteger())
		r, _ := f.Float64()
		return r, true
	case kind.Fraction:
		num, den := v.AsFraction()
		n, _ := new(big.Float).SetInt(num.AsInteger()).Float64()
		d, _ := new(big.Float).SetInt(den.AsInteger()).Float64()
		return n / d, true
	case kind.Decimal:
		f, err := v.AsDecimal().Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case kind.Float:
		r, _ := v.AsFloat().Float64()
		return r, true
	default:
		return 0, false
	}
}

// laguerre runs Laguerre's method to convergence or maxRootIters from a
// rotating set of three fixed starting points.
func laguerre(p []complex128, eps float64) complex128 {
	n := complex(float64(len(p)-1), 0)
	var x complex128
	for si, seed := range laguerreStarts {
		x = complex(seed, 0)
		if si > 0 {
			x += complex(0, 0.1*float64(si))
		}
		for iter := 0; iter < maxRootIters; iter++ {
			pv, dv, ddv := hornerDeriv2(p, x)
			if cabs(pv) < eps {
				return x
			}
			g := dv / pv
			h := g*g - ddv/pv
			sq := csqrt(complex(float64(len(p)-2), 0) * (n*h - g*g))
			d1, d2 := g+sq, g-sq
			d := d1
			if cabs(d2) > cabs(d1) {
				d = d2
			}
			if cabs(d) == 0 {
				break
			}
			delta := n / d
			x -= delta
			if cabs(delta) < eps {
				return x
			}
		}
		if cabs(evalPoly(p, x)) < 1e-6 {
			return x
		}
	}
	return x
}

func hornerDeriv2(p []complex128, x complex128) (pv, dv, ddv complex128) {
	n := len(p) - 1
	pv = p[n]
	for i := n - 1; i >= 0; i-- {
		ddv = ddv*x + dv
		dv = dv*x + pv
		pv = pv*x + p[i]
	}
	ddv *= 2
	return
}

func evalPoly(p []complex128, x complex128) complex128 {
	acc := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		acc = acc*x + p[i]
	}
	return acc
}

// deflate divides p by (X - r), dropping the (exact-in-theory, negligible
// in practice) remainder.
func deflate(p []complex128, r complex128) []complex128 {
	n := len(p) - 1
	out := make([]complex128, n)
	out[n-1] = p[n]
	for i := n - 2; i >= 0; i-- {
		out[i] = p[i+1] + r*out[i+1]
	}
	return out
}

func cabs(c complex128) float64 {
	re, im := real(c), imag(c)
	return sqrt64(re*re + im*im)
}

func sqrt64(x float64) float64 {
	if x == 0 {
		return 0
	}
	z := x
	for i := 0; i < 60; i++ {
		z = 0.5 * (z + x/z)
	}
	return z
}

// csqrt computes a principal complex square root via polar form.
func csqrt(c complex128) complex128 {
	re, im := real(c), imag(c)
	r := sqrt64(re*re + im*im)
	if r == 0 {
		return 0
	}
	u := sqrt64((r + re) / 2)
	v := sqrt64((r - re) / 2)
	if im < 0 {
		v = -v
	}
	return complex(u, v)
}
