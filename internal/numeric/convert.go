package numeric

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// DecTrunc truncates toward zero to an Integer.
func DecTrunc(a *value.Value) *value.Value {
	d := decX(a)
	i := new(big.Int)
	coeff := new(big.Int).Set(&d.Coeff)
	if d.Negative {
		coeff.Neg(coeff)
	}
	if d.Exponent >= 0 {
		i.Mul(coeff, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil))
	} else {
		i.Quo(coeff, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-d.Exponent)), nil))
	}
	return IntNew(i)
}

// DecimalExactRational expresses a Decimal value exactly as num/den
//, reusing the same exact
// decomposition bestappr needs.
func DecimalExactRational(v *value.Value) (num, den *big.Int) {
	return decimalAsRational(decX(v))
}

// DecimalFromInt converts an Integer to Decimal, rounding at the context's
// current precision.
func DecimalFromInt(ctx *calc.Context, x *big.Int) *value.Value {
	d, _, err := apd.NewFromString(x.String())
	if err != nil {
		ctx.Fail(bcerr.Range, "integer-to-decimal conversion failed: %v", err)
		return value.Sentinel
	}
	rd := new(apd.Decimal)
	ctx.ApdContext().Round(rd, d)
	return value.NewDecimal(rd)
}

// DecimalFromFraction converts num/den to Decimal via apd's Quo, rounding
// at the context's current precision.
func DecimalFromFraction(ctx *calc.Context, v *value.Value) *value.Value {
	num, den := v.AsFraction()
	nd, _, _ := apd.NewFromString(bigI(num).String())
	dd, _, _ := apd.NewFromString(bigI(den).String())
	d := new(apd.Decimal)
	_, err := ctx.ApdContext().Quo(d, nd, dd)
	if err != nil {
		ctx.Fail(bcerr.Range, "fraction-to-decimal conversion failed: %v", err)
		return value.Sentinel
	}
	return value.NewDecimal(d)
}

// DecimalToBigFloat is the exported form of decimalToFloat, used by
// dispatch's Decimal->Float conversion.
func DecimalToBigFloat(ctx *calc.Context, v *value.Value) *big.Float {
	return decimalToFloat(ctx, v)
}

// PiDecimal and EDecimal compute the named transcendental constants at the
// context's current decimal precision, for the registry's "pi"/"e" getter
// bindings.
func PiDecimal(ctx *calc.Context) *value.Value {
	bits := trigBits(ctx)
	return floatToDecimal(ctx, PiRaw(bits, int(bits)/2+24))
}

func EDecimal(ctx *calc.Context) *value.Value {
	bits := trigBits(ctx)
	one := new(big.Float).SetPrec(bits).SetInt64(1)
	return floatToDecimal(ctx, ExpRaw(one, int(bits)/2+24))
}
