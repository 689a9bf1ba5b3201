// Package series implements the truncated power series value kind:
// X^Emin * (c_0 + c_1*X + ...) + O(X^(Emin+len)), trimmed so either
// len==0 or c_0 is nonzero. Transcendentals are built on the same
// forward-recurrence technique internal/numeric/float.go uses for its own
// Taylor expansions.
//
// Like poly and tensor, Ops is generic over the element kind via
// value.Arith, injected by internal/dispatch.
package series

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

func (o *Ops) zeroOf(ctx *calc.Context, sample *value.Value) *value.Value {
	return o.A.Sub(ctx, sample, sample)
}

func (o *Ops) oneOf(ctx *calc.Context, sample *value.Value) *value.Value {
	if o.A.IsZero(ctx, sample) {
		return o.A.Convert(ctx, value.NewInteger(big.NewInt(1)), sample.Type)
	}
	return o.A.Div(ctx, sample, sample)
}

// Trim drops leading zero coefficients, advancing Emin, and keeps the
// invariant len==0 (identically zero, Emin meaningless beyond a lower
// bound) or Coeffs[0] != 0.
func (o *Ops) Trim(ctx *calc.Context, elem *kind.Type, emin int, coeffs []*value.Value) *value.Value {
	i := 0
	for i < len(coeffs) && o.A.IsZero(ctx, coeffs[i]) {
		i++
	}
	return value.NewSeries(elem, emin+i, coeffs[i:])
}

// FromPolynomial reinterprets a Polynomial's coefficients as a series
// truncated at the requested precision.
func (o *Ops) FromPolynomial(ctx *calc.Context, p *value.Value, precision int) *value.Value {
	c := p.AsPolynomial()
	if len(c) > precision {
		c = c[:precision]
	}
	return o.Trim(ctx, p.Type.Elem, 0, append([]*value.Value{}, c...))
}

// O constructs the "big-O only" series X^n + O(X^n): len==0, Emin==n
//").
func (o *Ops) O(elem *kind.Type, n int) *value.Value {
	return value.NewSeries(elem, n, nil)
}

func precOf(coeffs []*value.Value) int { return len(coeffs) }

// Add combines two series: Emin = min(emin_a, emin_b), and the combined
// precision is the minimum reachable absolute order.
func (o *Ops) Add(ctx *calc.Context, a, b *value.Value) *value.Value {
	ae, ac := a.AsSeries()
	be, bc := b.AsSeries()
	lo := ae
	if be < lo {
		lo = be
	}
	hiA := ae + precOf(ac)
	hiB := be + precOf(bc)
	hi := hiA
	if hiB < hi {
		hi = hiB
	}
	n := hi - lo
	if n <= 0 {
		return o.O(elemOf(a, b), hi)
	}
	zero := o.zeroOf(ctx, sample(ac, bc))
	out := make([]*value.Value, n)
	for i := range out {
		out[i] = zero
	}
	for i, c := range ac {
		pos := ae + i - lo
		if pos >= 0 && pos < n {
			out[pos] = o.A.Add(ctx, out[pos], c)
		}
	}
	for i, c := range bc {
		pos := be + i - lo
		if pos >= 0 && pos < n {
			out[pos] = o.A.Add(ctx, out[pos], c)
		}
	}
	return o.Trim(ctx, elemOf(a, b), lo, out)
}

func sample(a, b []*value.Value) *value.Value {
	if len(a) > 0 {
		return a[0]
	}
	return b[0]
}

func elemOf(a, b *value.Value) *kind.Type {
	if a.Type.Elem.Tag >= b.Type.Elem.Tag {
		return a.Type.Elem
	}
	return b.Type.Elem
}

func (o *Ops) Neg(ctx *calc.Context, a *value.Value) *value.Value {
	e, c := a.AsSeries()
	out := make([]*value.Value, len(c))
	for i, v := range c {
		out[i] = o.A.Neg(ctx, v)
	}
	return value.NewSeries(a.Type.Elem, e, out)
}

func (o *Ops) Sub(ctx *calc.Context, a, b *value.Value) *value.Value {
	return o.Add(ctx, a, o.Neg(ctx, b))
}

// Mul convolves coefficients: Emin = sum, len = min(len_a, len_b).
func (o *Ops) Mul(ctx *calc.Context, a, b *value.Value) *value.Value {
	ae, ac := a.AsSeries()
	be, bc := b.AsSeries()
	n := len(ac)
	if len(bc) < n {
		n = len(bc)
	}
	if n == 0 {
		return o.O(elemOf(a, b), ae+be)
	}
	zero := o.zeroOf(ctx, sample(ac, bc))
	out := make([]*value.Value, n)
	for i := range out {
		out[i] = zero
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n-i; j++ {
			out[i+j] = o.A.Add(ctx, out[i+j], o.A.Mul(ctx, ac[i], bc[j]))
		}
	}
	return o.Trim(ctx, elemOf(a, b), ae+be, out)
}

// Inv computes the multiplicative inverse by a forward recurrence: for
// c_0 + c_1 X + ... with c_0 != 0 (after removing Emin), d_0 = 1/c_0 and
// d_k = -(1/c_0) * sum_{i=1..k} c_i * d_{k-i}.
func (o *Ops) Inv(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	e, c := a.AsSeries()
	if len(c) == 0 {
		ctx.Fail(bcerr.Range, "series has no invertible leading term")
		return value.Sentinel
	}
	n := precision
	d := make([]*value.Value, n)
	inv0 := o.A.Div(ctx, o.oneOf(ctx, c[0]), c[0])
	d[0] = inv0
	for k := 1; k < n; k++ {
		var sum *value.Value
		for i := 1; i <= k; i++ {
			var ci *value.Value
			if i < len(c) {
				ci = c[i]
			} else {
				ci = o.zeroOf(ctx, c[0])
			}
			term := o.A.Mul(ctx, ci, d[k-i])
			if sum == nil {
				sum = term
			} else {
				sum = o.A.Add(ctx, sum, term)
			}
		}
		if sum == nil {
			d[k] = o.zeroOf(ctx, c[0])
		} else {
			d[k] = o.A.Neg(ctx, o.A.Mul(ctx, inv0, sum))
		}
	}
	return o.Trim(ctx, a.Type.Elem, -e, d)
}

func (o *Ops) Div(ctx *calc.Context, a, b *value.Value, precision int) *value.Value {
	return o.Mul(ctx, a, o.Inv(ctx, b, precision))
}

// requireEminZero returns a's coefficients for transcendentals that require
// emin==0, and fails with a Range error when a's emin is not 0.
func requireEminZero(ctx *calc.Context, a *value.Value, op string) (coeffs []*value.Value, ok bool) {
	e, c := a.AsSeries()
	if e != 0 {
		ctx.Fail(bcerr.Range, "%s requires a series with emin == 0", op)
		return nil, false
	}
	return c, true
}

// Exp computes exp(a) by forward recurrence on the ODE f' = f * a', i.e.
// using n*e_n = sum_{k=1..n} k*a_k*e_{n-k}.
// Requires emin == 0; if c_0 != 0, a constant factor is folded in via the
// element Arith's own Exp-like convert path is not assumed to exist, so
// c_0 must be the additive identity (Range error otherwise), matching the
// "rational element types require c0==0" edge case.
func (o *Ops) Exp(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	c, ok := requireEminZero(ctx, a, "exp")
	if !ok {
		return value.Sentinel
	}
	if len(c) == 0 {
		ctx.Fail(bcerr.Range, "exp requires a series with a known element sample")
		return value.Sentinel
	}
	if !o.A.IsZero(ctx, c[0]) {
		ctx.Fail(bcerr.Range, "exp requires c0 == 0 for a non-floating element type")
		return value.Sentinel
	}
	n := precision
	e := make([]*value.Value, n)
	one := o.oneOf(ctx, c[0])
	zero := o.zeroOf(ctx, c[0])
	e[0] = one
	for k := 1; k < n; k++ {
		var sum *value.Value
		for i := 1; i <= k; i++ {
			var ai *value.Value
			if i < len(c) {
				ai = c[i]
			} else {
				ai = zero
			}
			ki := o.intLit(ctx, one, i)
			term := o.A.Mul(ctx, ki, o.A.Mul(ctx, ai, e[k-i]))
			if sum == nil {
				sum = term
			} else {
				sum = o.A.Add(ctx, sum, term)
			}
		}
		if sum == nil {
			e[k] = zero
			continue
		}
		kk := o.intLit(ctx, one, k)
		e[k] = o.A.Div(ctx, sum, kk)
	}
	return o.Trim(ctx, a.Type.Elem, 0, e)
}

func (o *Ops) intLit(ctx *calc.Context, sample *value.Value, n int) *value.Value {
	one := sample
	acc := o.zeroOf(ctx, sample)
	for i := 0; i < n; i++ {
		acc = o.A.Add(ctx, acc, one)
	}
	return acc
}

// Log computes log(1+u) for a = 1 + u (emin==0, c0==1 required for
// rational/exact element types) via the recurrence n*l_n = n*a_n -
// sum_{k=1..n-1} k*l_k*a_{n-k}.
func (o *Ops) Log(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	c, ok := requireEminZero(ctx, a, "log")
	if !ok {
		return value.Sentinel
	}
	if len(c) == 0 || !isOneLike(o, ctx, c[0]) {
		ctx.Fail(bcerr.Range, "log requires c0 == 1")
		return value.Sentinel
	}
	n := precision
	l := make([]*value.Value, n)
	one := o.oneOf(ctx, c[0])
	zero := o.zeroOf(ctx, c[0])
	if n > 0 {
		l[0] = zero
	}
	for k := 1; k < n; k++ {
		var ak *value.Value
		if k < len(c) {
			ak = c[k]
		} else {
			ak = zero
		}
		term := o.A.Mul(ctx, o.intLit(ctx, one, k), ak)
		var sum *value.Value
		for i := 1; i < k; i++ {
			var ai *value.Value
			if k-i < len(c) {
				ai = c[k-i]
			} else {
				ai = zero
			}
			t := o.A.Mul(ctx, o.intLit(ctx, one, i), o.A.Mul(ctx, l[i], ai))
			if sum == nil {
				sum = t
			} else {
				sum = o.A.Add(ctx, sum, t)
			}
		}
		if sum != nil {
			term = o.A.Sub(ctx, term, sum)
		}
		l[k] = o.A.Div(ctx, term, o.intLit(ctx, one, k))
	}
	return o.Trim(ctx, a.Type.Elem, 0, l)
}

func isOneLike(o *Ops, ctx *calc.Context, v *value.Value) bool {
	return o.A.Eq(ctx, v, o.oneOf(ctx, v))
}

// Sin and Cos are obtained from Exp's recurrence applied to (i*a) and
// (-i*a) is avoided for real element types; instead both use their own
// direct forward recurrences derived from f''=-f.
func (o *Ops) Sin(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	s, _ := o.sinCos(ctx, a, precision)
	return s
}

func (o *Ops) Cos(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	_, c := o.sinCos(ctx, a, precision)
	return c
}

func (o *Ops) Tan(ctx *calc.Context, a *value.Value, precision int) *value.Value {
	s, c := o.sinCos(ctx, a, precision)
	return o.Div(ctx, s, c, precision)
}

// sinCos computes sin(a) and cos(a) together via the coupled recurrence
// n*s_n = sum k*a_k*c_{n-k}, n*c_n = -sum k*a_k*s_{n-k}, requiring emin==0
// and c0==0.
func (o *Ops) sinCos(ctx *calc.Context, a *value.Value, precision int) (sinS, cosS *value.Value) {
	c, ok := requireEminZero(ctx, a, "sin/cos")
	if !ok {
		return value.Sentinel, value.Sentinel
	}
	if len(c) > 0 && !o.A.IsZero(ctx, c[0]) {
		ctx.Fail(bcerr.Range, "sin/cos requires c0 == 0")
		return value.Sentinel, value.Sentinel
	}
	n := precision
	var zero, one *value.Value
	if len(c) > 0 {
		zero = o.zeroOf(ctx, c[0])
		one = o.oneOf(ctx, c[0])
	} else {
		ctx.Fail(bcerr.Range, "sin/cos of an identically-zero series needs an element sample")
		return value.Sentinel, value.Sentinel
	}
	s := make([]*value.Value, n)
	cc := make([]*value.Value, n)
	if n > 0 {
		s[0] = zero
		cc[0] = one
	}
	get := func(arr []*value.Value, i int) *value.Value {
		if i < len(arr) {
			return arr[i]
		}
		return zero
	}
	for k := 1; k < n; k++ {
		var sumS, sumC *value.Value
		for i := 1; i <= k; i++ {
			ai := get(c, i)
			ki := o.intLit(ctx, one, i)
			ts := o.A.Mul(ctx, ki, o.A.Mul(ctx, ai, cc[k-i]))
			tc := o.A.Mul(ctx, ki, o.A.Mul(ctx, ai, s[k-i]))
			if sumS == nil {
				sumS, sumC = ts, tc
			} else {
				sumS = o.A.Add(ctx, sumS, ts)
				sumC = o.A.Add(ctx, sumC, tc)
			}
		}
		kk := o.intLit(ctx, one, k)
		if sumS == nil {
			s[k] = zero
		} else {
			s[k] = o.A.Div(ctx, sumS, kk)
		}
		if sumC == nil {
			cc[k] = zero
		} else {
			cc[k] = o.A.Neg(ctx, o.A.Div(ctx, sumC, kk))
		}
	}
	return o.Trim(ctx, a.Type.Elem, 0, s), o.Trim(ctx, a.Type.Elem, 0, cc)
}

// Pow computes a^b as exp(b * log(a)))").
func (o *Ops) Pow(ctx *calc.Context, a *value.Value, b *value.Value, precision int) *value.Value {
	la := o.Log(ctx, a, precision)
	if ctx.Failed() {
		return value.Sentinel
	}
	e, lc := la.AsSeries()
	scaled := make([]*value.Value, len(lc))
	for i, v := range lc {
		scaled[i] = o.A.Mul(ctx, v, b)
	}
	prod := value.NewSeries(a.Type.Elem, e, scaled)
	return o.Exp(ctx, prod, precision)
}

func (o *Ops) Eq(ctx *calc.Context, a, b *value.Value) bool {
	ae, ac := a.AsSeries()
	be, bc := b.AsSeries()
	if ae != be || len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !o.A.Eq(ctx, ac[i], bc[i]) {
			return false
		}
	}
	return true
}
