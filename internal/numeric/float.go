package numeric

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

func fltX(v *value.Value) *big.Float { return v.AsFloat() }

func FloatAdd(ctx *calc.Context, a, b *value.Value) *value.Value {
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Add(fltX(a), fltX(b)))
}

func FloatSub(ctx *calc.Context, a, b *value.Value) *value.Value {
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Sub(fltX(a), fltX(b)))
}

func FloatMul(ctx *calc.Context, a, b *value.Value) *value.Value {
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Mul(fltX(a), fltX(b)))
}

func FloatDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	if fltX(b).Sign() == 0 {
		sign := fltX(a).Sign() * 1
		if sign == 0 {
			return value.NewFloat(floatNaN())
		}
		return value.NewFloat(floatInf(sign > 0))
	}
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Quo(fltX(a), fltX(b)))
}

func floatInf(positive bool) *big.Float {
	if positive {
		return big.NewFloat(0).SetInf(false)
	}
	return big.NewFloat(0).SetInf(true)
}

// floatNaN approximates NaN as a zero-precision big.Float; big.Float has no
// native NaN, so the formatter special-cases this sentinel shape when
// printing (see internal/format).
func floatNaN() *big.Float {
	return new(big.Float).SetPrec(0)
}

func FloatIsNaN(f *big.Float) bool { return f.Prec() == 0 && !f.IsInf() }

func FloatNeg(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Neg(fltX(a)))
}

func FloatCmp(a, b *value.Value) int { return fltX(a).Cmp(fltX(b)) }
func FloatEq(a, b *value.Value) bool { return FloatCmp(a, b) == 0 }
func FloatIsZero(a *value.Value) bool { return fltX(a).Sign() == 0 }

func FloatSqrt(ctx *calc.Context, a *value.Value) *value.Value {
	if fltX(a).Sign() < 0 {
		ctx.Fail(bcerr.Range, "sqrt of negative float requires promotion to Complex")
		return value.Sentinel
	}
	return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()).Sqrt(fltX(a)))
}

// --- Transcendentals ---------------------------------------------------
//
// math/big.Float has no transcendental functions, and no arbitrary-
// precision binary-float library on hand computes with them (mewmew/float
// only parses/formats IEEE-754 hex floats). These are implemented directly
// as Maclaurin-series summations carried out at the context's big.Float
// precision with simple range reduction.

func prec(ctx *calc.Context) uint { return ctx.BigFloatPrecision() }

func newF(ctx *calc.Context) *big.Float { return new(big.Float).SetPrec(prec(ctx)) }

// seriesTerms bounds the Taylor summation to roughly the requested
// precision: each term shrinks geometrically, so (bits/2)+24 terms is ample
// for the ranges reduction limits argument values to.
func seriesTerms(ctx *calc.Context) int { return int(prec(ctx))/2 + 24 }

func FloatExp(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(ExpRaw(newF(ctx).Copy(fltX(a)), seriesTerms(ctx)))
}

// ExpRaw computes e^x via its Maclaurin series after reducing x into
// [-1, 1] by repeated halving/squaring (exp(x) = exp(x/2^k)^(2^k)).
func ExpRaw(x *big.Float, terms int) *big.Float {
	prec := x.Prec()
	k := 0
	reduced := new(big.Float).SetPrec(prec).Copy(x)
	one := big.NewFloat(1).SetPrec(prec)
	for reduced.MinPrec() > 0 && new(big.Float).Abs(reduced).Cmp(one) > 0 && k < 64 {
		reduced.Quo(reduced, big.NewFloat(2).SetPrec(prec))
		k++
	}
	sum := big.NewFloat(1).SetPrec(prec)
	term := big.NewFloat(1).SetPrec(prec)
	for n := 1; n <= terms; n++ {
		term.Mul(term, reduced)
		term.Quo(term, big.NewFloat(float64(n)).SetPrec(prec))
		sum.Add(sum, term)
	}
	for i := 0; i < k; i++ {
		sum.Mul(sum, sum)
	}
	return sum
}

func FloatLn(ctx *calc.Context, a *value.Value) *value.Value {
	if fltX(a).Sign() < 0 {
		ctx.Fail(bcerr.Range, "log of negative float requires promotion to Complex")
		return value.Sentinel
	}
	if fltX(a).Sign() == 0 {
		return value.NewFloat(floatInf(false))
	}
	return value.NewFloat(LnRaw(newF(ctx).Copy(fltX(a)), seriesTerms(ctx)))
}

// LnRaw computes ln(x) for x > 0 via the identity ln(x) = 2*atanh((x-1)/(x+1))
// after scaling x by powers of 2 so the atanh argument lies in [-1/3, 1/3].
func LnRaw(x *big.Float, terms int) *big.Float {
	prec := x.Prec()
	ln2 := Ln2Raw(prec, terms)
	k := 0
	reduced := new(big.Float).SetPrec(prec).Copy(x)
	lo := big.NewFloat(0.5).SetPrec(prec)
	hi := big.NewFloat(2).SetPrec(prec)
	for reduced.Cmp(hi) > 0 {
		reduced.Quo(reduced, big.NewFloat(2).SetPrec(prec))
		k++
	}
	for reduced.Cmp(lo) < 0 {
		reduced.Mul(reduced, big.NewFloat(2).SetPrec(prec))
		k--
	}
	num := new(big.Float).SetPrec(prec).Sub(reduced, big.NewFloat(1).SetPrec(prec))
	den := new(big.Float).SetPrec(prec).Add(reduced, big.NewFloat(1).SetPrec(prec))
	z := new(big.Float).SetPrec(prec).Quo(num, den)
	z2 := new(big.Float).SetPrec(prec).Mul(z, z)
	sum := new(big.Float).SetPrec(prec).Copy(z)
	term := new(big.Float).SetPrec(prec).Copy(z)
	for n := 1; n < terms; n++ {
		term.Mul(term, z2)
		denom := big.NewFloat(float64(2*n + 1)).SetPrec(prec)
		t := new(big.Float).SetPrec(prec).Quo(term, denom)
		sum.Add(sum, t)
	}
	sum.Mul(sum, big.NewFloat(2).SetPrec(prec))
	kf := new(big.Float).SetPrec(prec).Mul(big.NewFloat(float64(k)).SetPrec(prec), ln2)
	return sum.Add(sum, kf)
}

// Ln2Raw computes ln(2) once per precision via the same atanh series at
// x=2 reduced to x=sqrt(2)... simplified here via the rapidly converging
// series ln(2) = 2*atanh(1/3).
func Ln2Raw(prec uint, terms int) *big.Float {
	z := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), big.NewFloat(3).SetPrec(prec))
	z2 := new(big.Float).SetPrec(prec).Mul(z, z)
	sum := new(big.Float).SetPrec(prec).Copy(z)
	term := new(big.Float).SetPrec(prec).Copy(z)
	for n := 1; n < terms; n++ {
		term.Mul(term, z2)
		denom := big.NewFloat(float64(2*n + 1)).SetPrec(prec)
		t := new(big.Float).SetPrec(prec).Quo(term, denom)
		sum.Add(sum, t)
	}
	return sum.Mul(sum, big.NewFloat(2).SetPrec(prec))
}

// FloatSinRaw/CosRaw/TanRaw share the precision-agnostic big.Float helpers
// used both for Float values and for Decimal's convert-to-binary-and-back
// bridge.
func FloatSinRaw(x *big.Float) *big.Float {
	prec := x.Prec()
	terms := int(prec)/2 + 24
	s, _ := sinCosSeries(x, terms)
	return s
}

func FloatCosRaw(x *big.Float) *big.Float {
	prec := x.Prec()
	_ = prec
	terms := int(x.Prec())/2 + 24
	_, c := sinCosSeries(x, terms)
	return c
}

func FloatTanRaw(x *big.Float) *big.Float {
	s, c := sinCosSeries(x, int(x.Prec())/2+24)
	return new(big.Float).SetPrec(x.Prec()).Quo(s, c)
}

func sinCosSeries(x *big.Float, terms int) (sin, cos *big.Float) {
	prec := x.Prec()
	sinSum := new(big.Float).SetPrec(prec)
	cosSum := big.NewFloat(1).SetPrec(prec)
	term := big.NewFloat(1).SetPrec(prec)
	x2 := new(big.Float).SetPrec(prec).Mul(x, x)
	sign := -1.0
	for n := 1; n <= terms; n++ {
		term.Mul(term, x2)
		term.Quo(term, big.NewFloat(float64(2*n*(2*n-1))).SetPrec(prec))
		signed := new(big.Float).SetPrec(prec).Mul(term, big.NewFloat(sign).SetPrec(prec))
		cosSum.Add(cosSum, signed)
		sign = -sign
	}
	// sin via its own series for independent accumulation error.
	term.SetPrec(prec).Copy(x)
	sinSum.Copy(x)
	sign = -1.0
	for n := 1; n <= terms; n++ {
		term.Mul(term, x2)
		term.Quo(term, big.NewFloat(float64((2*n)*(2*n+1))).SetPrec(prec))
		signed := new(big.Float).SetPrec(prec).Mul(term, big.NewFloat(sign).SetPrec(prec))
		sinSum.Add(sinSum, signed)
		sign = -sign
	}
	return sinSum, cosSum
}

func FloatSin(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(FloatSinRaw(newF(ctx).Copy(fltX(a))))
}
func FloatCos(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(FloatCosRaw(newF(ctx).Copy(fltX(a))))
}
func FloatTan(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(FloatTanRaw(newF(ctx).Copy(fltX(a))))
}

// FloatAtanRaw computes atan(x) via atan(x) = asin(x/sqrt(1+x^2)) reduced
// through the same series machinery as sin/cos (Euler's arctangent
// series would also work; this keeps the dependency surface small).
func FloatAtanRaw(x *big.Float, terms int) *big.Float {
	prec := x.Prec()
	one := big.NewFloat(1).SetPrec(prec)
	z2 := new(big.Float).SetPrec(prec).Mul(x, x)
	denom := new(big.Float).SetPrec(prec).Add(one, z2)
	denom.Sqrt(denom)
	s := new(big.Float).SetPrec(prec).Quo(x, denom)
	// asin(s) via its Maclaurin series (converges for |s|<1, true here).
	sum := new(big.Float).SetPrec(prec).Copy(s)
	term := new(big.Float).SetPrec(prec).Copy(s)
	s2 := new(big.Float).SetPrec(prec).Mul(s, s)
	for n := 1; n < terms; n++ {
		num := big.NewFloat(float64(2*n - 1)).SetPrec(prec)
		den := big.NewFloat(float64(2 * n)).SetPrec(prec)
		term.Mul(term, s2)
		term.Mul(term, num)
		term.Quo(term, den)
		addend := new(big.Float).SetPrec(prec).Quo(term, big.NewFloat(float64(2*n+1)).SetPrec(prec))
		sum.Add(sum, addend)
	}
	return sum
}

func FloatAtan(ctx *calc.Context, a *value.Value) *value.Value {
	return value.NewFloat(FloatAtanRaw(newF(ctx).Copy(fltX(a)), seriesTerms(ctx)))
}

func FloatAsin(ctx *calc.Context, a *value.Value) *value.Value {
	x := fltX(a)
	one := big.NewFloat(1).SetPrec(prec(ctx))
	if new(big.Float).Abs(x).Cmp(one) > 0 {
		ctx.Fail(bcerr.Range, "asin domain requires |x| <= 1")
		return value.Sentinel
	}
	denom := new(big.Float).SetPrec(prec(ctx)).Mul(x, x)
	denom.Sub(one, denom)
	denom.Sqrt(denom)
	arg := new(big.Float).SetPrec(prec(ctx)).Quo(x, denom)
	return value.NewFloat(FloatAtanRaw(arg, seriesTerms(ctx)))
}

func FloatAcos(ctx *calc.Context, a *value.Value) *value.Value {
	asin := FloatAsin(ctx, a)
	if value.IsSentinel(asin) {
		return asin
	}
	halfPi := new(big.Float).SetPrec(prec(ctx)).Quo(PiRaw(prec(ctx), seriesTerms(ctx)), big.NewFloat(2).SetPrec(prec(ctx)))
	return value.NewFloat(new(big.Float).SetPrec(prec(ctx)).Sub(halfPi, asin.AsFloat()))
}

func FloatAtan2(ctx *calc.Context, y, x *value.Value) *value.Value {
	xf, yf := fltX(x), fltX(y)
	p := prec(ctx)
	pi := PiRaw(p, seriesTerms(ctx))
	switch {
	case xf.Sign() > 0:
		return FloatAtan(ctx, value.NewFloat(new(big.Float).SetPrec(p).Quo(yf, xf)))
	case xf.Sign() < 0 && yf.Sign() >= 0:
		a := FloatAtan(ctx, value.NewFloat(new(big.Float).SetPrec(p).Quo(yf, xf)))
		return value.NewFloat(new(big.Float).SetPrec(p).Add(a.AsFloat(), pi))
	case xf.Sign() < 0 && yf.Sign() < 0:
		a := FloatAtan(ctx, value.NewFloat(new(big.Float).SetPrec(p).Quo(yf, xf)))
		return value.NewFloat(new(big.Float).SetPrec(p).Sub(a.AsFloat(), pi))
	case xf.Sign() == 0 && yf.Sign() > 0:
		return value.NewFloat(new(big.Float).SetPrec(p).Quo(pi, big.NewFloat(2).SetPrec(p)))
	case xf.Sign() == 0 && yf.Sign() < 0:
		return value.NewFloat(new(big.Float).SetPrec(p).Quo(new(big.Float).Neg(pi), big.NewFloat(2).SetPrec(p)))
	default:
		return value.NewFloat(new(big.Float).SetPrec(p))
	}
}

// PiRaw computes pi via the Machin-like identity pi = 16*atan(1/5) -
// 4*atan(1/239), reusing the atan series above.
func PiRaw(prec uint, terms int) *big.Float {
	a := FloatAtanRaw(new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), big.NewFloat(5).SetPrec(prec)), terms)
	b := FloatAtanRaw(new(big.Float).SetPrec(prec).Quo(big.NewFloat(1).SetPrec(prec), big.NewFloat(239).SetPrec(prec)), terms)
	pi := new(big.Float).SetPrec(prec).Mul(a, big.NewFloat(16).SetPrec(prec))
	b.Mul(b, big.NewFloat(4).SetPrec(prec))
	return pi.Sub(pi, b)
}

func FloatRint(a *value.Value) *value.Value {
	f := fltX(a)
	r, _ := f.Int(nil)
	return value.NewFloat(new(big.Float).SetInt(r))
}

// FloatFloor and FloatCeil round to -Inf / +Inf respectively: truncate
// toward zero, then step one further when that discarded a nonzero
// fraction on the side the rounding direction cares about.
func FloatFloor(a *value.Value) *value.Value {
	f := fltX(a)
	r, acc := f.Int(nil)
	rf := new(big.Float).SetPrec(f.Prec()).SetInt(r)
	if acc == big.Above && f.Sign() < 0 {
		rf.Sub(rf, big.NewFloat(1).SetPrec(f.Prec()))
	}
	return value.NewFloat(rf)
}

func FloatCeil(a *value.Value) *value.Value {
	f := fltX(a)
	r, acc := f.Int(nil)
	rf := new(big.Float).SetPrec(f.Prec()).SetInt(r)
	if acc == big.Below && f.Sign() > 0 {
		rf.Add(rf, big.NewFloat(1).SetPrec(f.Prec()))
	}
	return value.NewFloat(rf)
}
