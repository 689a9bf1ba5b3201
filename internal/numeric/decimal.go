package numeric

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

func decX(v *value.Value) *apd.Decimal { return v.AsDecimal() }

func decResult(ctx *calc.Context, d *apd.Decimal, _ apd.Condition, err error) *value.Value {
	if err != nil {
		ctx.Fail(bcerr.Range, "decimal operation failed: %v", err)
		return value.Sentinel
	}
	return value.NewDecimal(d)
}

func DecAdd(ctx *calc.Context, a, b *value.Value) *value.Value {
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Add(d, decX(a), decX(b))
	return decResult(ctx, d, c, err)
}

func DecSub(ctx *calc.Context, a, b *value.Value) *value.Value {
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Sub(d, decX(a), decX(b))
	return decResult(ctx, d, c, err)
}

func DecMul(ctx *calc.Context, a, b *value.Value) *value.Value {
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Mul(d, decX(a), decX(b))
	return decResult(ctx, d, c, err)
}

// DecDiv returns Inf rather than a range error on division by zero:
// 1/0 -> Inf for Decimal, not an error.
func DecDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	d := new(apd.Decimal)
	if decX(b).IsZero() {
		if decX(a).IsZero() {
			d.Set(decimalNaN())
			return value.NewDecimal(d)
		}
		inf := new(apd.Decimal)
		*inf = decimalInf(decX(a).Sign()*decX(b).Sign() >= 0)
		return value.NewDecimal(inf)
	}
	_, err := ctx.ApdContext().Quo(d, decX(a), decX(b))
	if err != nil {
		ctx.Fail(bcerr.Range, "decimal division failed: %v", err)
		return value.Sentinel
	}
	return value.NewDecimal(d)
}

func decimalNaN() *apd.Decimal {
	d := new(apd.Decimal)
	d.Form = apd.NaN
	return d
}

func decimalInf(positive bool) apd.Decimal {
	d := apd.Decimal{Form: apd.Infinite}
	if !positive {
		d.Negative = true
	}
	return d
}

func DecNeg(ctx *calc.Context, a *value.Value) *value.Value {
	d := new(apd.Decimal)
	d.Neg(decX(a))
	return value.NewDecimal(d)
}

func DecCmp(a, b *value.Value) int {
	return decX(a).Cmp(decX(b))
}

func DecEq(a, b *value.Value) bool  { return DecCmp(a, b) == 0 }
func DecIsZero(a *value.Value) bool { return decX(a).IsZero() }

func DecPow(ctx *calc.Context, a, b *value.Value) *value.Value {
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Pow(d, decX(a), decX(b))
	return decResult(ctx, d, c, err)
}

func DecSqrt(ctx *calc.Context, a *value.Value) *value.Value {
	if decX(a).Sign() < 0 {
		ctx.Fail(bcerr.Range, "sqrt of negative decimal requires promotion to Complex")
		return value.Sentinel
	}
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Sqrt(d, decX(a))
	return decResult(ctx, d, c, err)
}

func DecExp(ctx *calc.Context, a *value.Value) *value.Value {
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Exp(d, decX(a))
	return decResult(ctx, d, c, err)
}

func DecLn(ctx *calc.Context, a *value.Value) *value.Value {
	if decX(a).Sign() < 0 {
		ctx.Fail(bcerr.Range, "log of negative decimal requires promotion to Complex")
		return value.Sentinel
	}
	d := new(apd.Decimal)
	c, err := ctx.ApdContext().Ln(d, decX(a))
	return decResult(ctx, d, c, err)
}

// decimalToFloat / floatToDecimal round-trip through math/big.Float at
// ceil(p*log2(10))+16 bits, the bridge every Decimal transcendental
// beyond +-*/sqrt/exp/ln uses: convert to binary float, apply, convert
// back.
func decimalToFloat(ctx *calc.Context, a *value.Value) *big.Float {
	bits := trigBits(ctx)
	f := new(big.Float).SetPrec(bits)
	f.SetString(decX(a).Text('E'))
	return f
}

func trigBits(ctx *calc.Context) uint {
	p := float64(ctx.DecPrecision)
	return uint(math.Ceil(p*3.3219280948873626)) + 16 // ceil(p*log2(10)) + 16
}

func floatToDecimal(ctx *calc.Context, f *big.Float) *value.Value {
	d, _, err := apd.NewFromString(f.Text('e', int(ctx.DecPrecision)+2))
	if err != nil {
		ctx.Fail(bcerr.Range, "float-to-decimal conversion failed: %v", err)
		return value.Sentinel
	}
	rd := new(apd.Decimal)
	ctx.ApdContext().Round(rd, d)
	return value.NewDecimal(rd)
}

func decTrig(ctx *calc.Context, a *value.Value, fn func(*big.Float) *big.Float) *value.Value {
	f := decimalToFloat(ctx, a)
	return floatToDecimal(ctx, fn(f))
}

func DecSin(ctx *calc.Context, a *value.Value) *value.Value { return decTrig(ctx, a, FloatSinRaw) }
func DecCos(ctx *calc.Context, a *value.Value) *value.Value { return decTrig(ctx, a, FloatCosRaw) }
func DecTan(ctx *calc.Context, a *value.Value) *value.Value { return decTrig(ctx, a, FloatTanRaw) }

// DecRound rounds ties away from zero (apd's RoundHalfUp).
func DecRound(ctx *calc.Context, a *value.Value) *value.Value {
	rctx := ctx.ApdContext()
	rctx.Rounding = apd.RoundHalfUp
	d := new(apd.Decimal)
	rctx.Round(d, decX(a))
	return value.NewDecimal(d)
}

// DecFloor and DecCeil round to the nearest integer-valued Decimal toward
// -Inf / +Inf respectively, mirroring FracFloor/FracCeil's rounding sense
// for the Decimal element kind.
func DecFloor(ctx *calc.Context, a *value.Value) *value.Value {
	rctx := ctx.ApdContext()
	rctx.Rounding = apd.RoundFloor
	d := new(apd.Decimal)
	rctx.Quantize(d, decX(a), 0)
	return value.NewDecimal(d)
}

func DecCeil(ctx *calc.Context, a *value.Value) *value.Value {
	rctx := ctx.ApdContext()
	rctx.Rounding = apd.RoundCeiling
	d := new(apd.Decimal)
	rctx.Quantize(d, decX(a), 0)
	return value.NewDecimal(d)
}

// DecBestAppr exposes the continued-fraction approximation for Decimal
// inputs.
func DecBestAppr(ctx *calc.Context, a *value.Value, bound int64) *value.Value {
	num, den := decimalAsRational(decX(a))
	return FracBestAppr(ctx, num, den, big.NewInt(bound))
}

// decimalAsRational expresses an apd.Decimal exactly as num/10^-exp (or
// num*10^exp) with no rounding, the starting rational for a
// continued-fraction expansion.
func decimalAsRational(d *apd.Decimal) (num, den *big.Int) {
	coeff := new(big.Int).Set(&d.Coeff)
	if d.Negative {
		coeff.Neg(coeff)
	}
	exp := d.Exponent
	if exp >= 0 {
		return new(big.Int).Mul(coeff, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)), big.NewInt(1)
	}
	return coeff, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)
}
