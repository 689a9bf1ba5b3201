package numeric

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// FracNew builds and reduces a fraction under the invariant den > 0,
// gcd(|num|, den) = 1; den == 0 is a range error, never constructed.
func FracNew(ctx *calc.Context, num, den *big.Int) *value.Value {
	if den.Sign() == 0 {
		ctx.Fail(bcerr.Range, "zero denominator")
		return value.Sentinel
	}
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(big.NewInt(1)) != 0 {
		n.Div(n, g)
		d.Div(d, g)
	}
	return value.NewFraction(IntNew(n), IntNew(d))
}

func fracParts(v *value.Value) (num, den *big.Int) {
	n, d := v.AsFraction()
	return bigI(n), bigI(d)
}

func FracAdd(ctx *calc.Context, a, b *value.Value) *value.Value {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	num := new(big.Int).Add(new(big.Int).Mul(an, bd), new(big.Int).Mul(bn, ad))
	den := new(big.Int).Mul(ad, bd)
	return FracNew(ctx, num, den)
}

func FracSub(ctx *calc.Context, a, b *value.Value) *value.Value {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	num := new(big.Int).Sub(new(big.Int).Mul(an, bd), new(big.Int).Mul(bn, ad))
	den := new(big.Int).Mul(ad, bd)
	return FracNew(ctx, num, den)
}

func FracMul(ctx *calc.Context, a, b *value.Value) *value.Value {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	return FracNew(ctx, new(big.Int).Mul(an, bn), new(big.Int).Mul(ad, bd))
}

func FracDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	if bn.Sign() == 0 {
		ctx.Fail(bcerr.Range, "division by zero")
		return value.Sentinel
	}
	return FracNew(ctx, new(big.Int).Mul(an, bd), new(big.Int).Mul(ad, bn))
}

func FracNeg(ctx *calc.Context, a *value.Value) *value.Value {
	an, ad := fracParts(a)
	return FracNew(ctx, new(big.Int).Neg(an), ad)
}

func FracCmp(a, b *value.Value) int {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	return new(big.Int).Mul(an, bd).Cmp(new(big.Int).Mul(bn, ad))
}

func FracEq(a, b *value.Value) bool  { return FracCmp(a, b) == 0 }
func FracIsZero(a *value.Value) bool { n, _ := fracParts(a); return n.Sign() == 0 }

// FracPow raises a fraction to a non-negative integer power; negative
// exponents are handled by dispatch.
func FracPow(ctx *calc.Context, a *value.Value, exp int64) *value.Value {
	an, ad := fracParts(a)
	if exp < 0 {
		ctx.Fail(bcerr.Range, "negative fraction exponent requires promotion")
		return value.Sentinel
	}
	return FracNew(ctx,
		new(big.Int).Exp(an, big.NewInt(exp), nil),
		new(big.Int).Exp(ad, big.NewInt(exp), nil))
}

// floorDiv is Euclidean/floor division of big.Ints (n may be negative).
func floorDiv(n, d *big.Int) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(n, d, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (d.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

// FracFloor/Ceil/Trunc/Round return Integer values.
func FracFloor(a *value.Value) *value.Value {
	n, d := fracParts(a)
	return IntNew(floorDiv(n, d))
}

func FracCeil(a *value.Value) *value.Value {
	n, d := fracParts(a)
	f := floorDiv(n, d)
	if new(big.Int).Mul(f, d).Cmp(n) != 0 {
		f.Add(f, big.NewInt(1))
	}
	return IntNew(f)
}

func FracTrunc(a *value.Value) *value.Value {
	n, d := fracParts(a)
	q := new(big.Int).Quo(n, d)
	return IntNew(q)
}

// FracRound rounds ties away from zero, matching the calculator's
// round-half-away-from-zero convention for Decimal.
func FracRound(a *value.Value) *value.Value {
	n, d := fracParts(a)
	two := big.NewInt(2)
	doubled := new(big.Int).Mul(n, two)
	q := floorDiv(doubled, new(big.Int).Mul(d, two))
	rem := new(big.Int).Sub(doubled, new(big.Int).Mul(q, new(big.Int).Mul(d, two)))
	half := new(big.Int).Abs(d)
	if c := new(big.Int).Abs(rem).Cmp(half); c > 0 || (c == 0 && n.Sign() >= 0) {
		q.Add(q, big.NewInt(1))
	}
	return IntNew(q)
}

// FracMod uses floor-division semantics: a - floor(a/b)*b.
func FracMod(ctx *calc.Context, a, b *value.Value) *value.Value {
	an, ad := fracParts(a)
	bn, bd := fracParts(b)
	if bn.Sign() == 0 {
		ctx.Fail(bcerr.Range, "modulus by zero")
		return value.Sentinel
	}
	// a/b as a fraction, then floor, then a - floor(a/b)*b.
	quotNum := new(big.Int).Mul(an, bd)
	quotDen := new(big.Int).Mul(ad, bn)
	fq := floorDiv(quotNum, quotDen)
	prodNum := new(big.Int).Mul(fq, bn)
	prodDen := bd
	num := new(big.Int).Sub(new(big.Int).Mul(an, prodDen), new(big.Int).Mul(prodNum, ad))
	den := new(big.Int).Mul(ad, prodDen)
	return FracNew(ctx, num, den)
}

// FracBestAppr computes continued-fraction convergents of a rational
// approximation target expressed as num/den, returning the last convergent
// whose denominator <= bound. Decimal/Float
// callers convert their value to an exact rational (its own finite
// representation) before calling this.
func FracBestAppr(ctx *calc.Context, num, den, bound *big.Int) *value.Value {
	if den.Sign() == 0 {
		ctx.Fail(bcerr.Range, "bestappr requires a finite value")
		return value.Sentinel
	}
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	h0, h1 := big.NewInt(0), big.NewInt(1)
	k0, k1 := big.NewInt(1), big.NewInt(0)
	for d.Sign() != 0 {
		a := new(big.Int).Quo(n, d)
		h2 := new(big.Int).Add(new(big.Int).Mul(a, h1), h0)
		k2 := new(big.Int).Add(new(big.Int).Mul(a, k1), k0)
		if k2.Cmp(bound) > 0 {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}
	return FracNew(ctx, h1, k1)
}
