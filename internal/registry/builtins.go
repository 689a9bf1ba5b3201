package registry

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/container"
	"bc/internal/dispatch"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/value"
)

// Install populates reg with every name the built-in registry provides:
// context-dependent constants, precision presets, the X indeterminate,
// and the full built-in function table. d is the shared
// dispatcher every builtin delegates its generic arithmetic to.
func Install(reg *Registry, d *dispatch.D) {
	installConstants(reg)
	installPresets(reg)
	installFunctions(reg, d)
}

func installConstants(reg *Registry) {
	reg.BindGetter("PI", numeric.PiDecimal)
	reg.BindGetter("E", numeric.EDecimal)
	reg.Bind("I", value.NewComplex(kind.Plain(kind.Integer), value.NewInteger(big.NewInt(0)), value.NewInteger(big.NewInt(1))))
	reg.Bind("EPSILON", decFromFloat(1e-10))
	zero := value.NewInteger(big.NewInt(0))
	one := value.NewInteger(big.NewInt(1))
	reg.Bind("X", value.NewPolynomial(kind.Plain(kind.Integer), []*value.Value{zero, one}))
}

func installPresets(reg *Registry) {
	reg.Bind("d64", value.NewInteger(big.NewInt(calc.DecimalPresetD64)))
	reg.Bind("d128", value.NewInteger(big.NewInt(calc.DecimalPresetD128)))
	reg.Bind("f16", value.NewInteger(big.NewInt(calc.BinaryPresetF16)))
	reg.Bind("f32", value.NewInteger(big.NewInt(calc.BinaryPresetF32)))
	reg.Bind("f64", value.NewInteger(big.NewInt(calc.BinaryPresetF64)))
	reg.Bind("f128", value.NewInteger(big.NewInt(calc.BinaryPresetF128)))
}

func fn(name string, arity int, call func(ctx *calc.Context, args []*value.Value) *value.Value) *value.Value {
	return value.NewFunction(name, arity, false, call)
}

func varFn(name string, minArity int, call func(ctx *calc.Context, args []*value.Value) *value.Value) *value.Value {
	return value.NewFunction(name, minArity, true, call)
}

func installFunctions(reg *Registry, d *dispatch.D) {
	one := func(name string, op func(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value) {
		reg.Bind(name, fn(name, 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
			return op(ctx, d, args[0])
		}))
	}

	one("abs", genericAbs)
	one("sqrt", genericSqrt)
	one("exp", genericExp)
	one("log", genericLog)
	one("sin", genericSin)
	one("cos", genericCos)
	one("tan", genericTan)
	one("asin", realUnary(numeric.FloatAsin))
	one("acos", realUnary(numeric.FloatAcos))
	one("atan", realUnary(numeric.FloatAtan))
	one("round", roundLike(numeric.DecRound, numeric.FracRound))
	one("floor", roundLike(decFloor, numeric.FracFloor))
	one("ceil", roundLike(decCeil, numeric.FracCeil))
	one("trunc", func(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
		return d.Convert(ctx, v, kind.Plain(kind.Integer))
	})

	reg.Bind("atan2", fn("atan2", 2, func(ctx *calc.Context, args []*value.Value) *value.Value {
		y := toFloatValue(ctx, d, args[0])
		x := toFloatValue(ctx, d, args[1])
		if ctx.Failed() {
			return value.Sentinel
		}
		return numeric.FloatAtan2(ctx, y, x)
	}))

	reg.Bind("bestappr", varFn("bestappr", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		bound := int64(1000000)
		if len(args) > 1 {
			bound = d.Convert(ctx, args[1], kind.Plain(kind.Integer)).AsInteger().Int64()
		}
		return bestAppr(ctx, args[0], bound)
	}))

	reg.Bind("convert", varFn("convert", 2, func(ctx *calc.Context, args []*value.Value) *value.Value {
		switch len(args) {
		case 2:
			return typeConvert(ctx, d, args[0], args[1])
		case 3:
			return unitConvert(ctx, d, args[0], args[1], args[2])
		}
		ctx.Fail(bcerr.Type, "convert expects 2 or 3 arguments, got %d", len(args))
		return value.Sentinel
	}))

	// number theory
	reg.Bind("invmod", fn("invmod", 2, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return numeric.IntInvMod(ctx, requireInt(ctx, d, args[0]), requireInt(ctx, d, args[1]))
	}))
	reg.Bind("pmod", fn("pmod", 3, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return numeric.IntPowMod(ctx, requireInt(ctx, d, args[0]), requireInt(ctx, d, args[1]), requireInt(ctx, d, args[2]))
	}))
	reg.Bind("factor", fn("factor", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return numeric.IntFactor(ctx, requireInt(ctx, d, args[0]))
	}))
	reg.Bind("isqrt", fn("isqrt", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return numeric.IntSqrt(ctx, requireInt(ctx, d, args[0]))
	}))
	reg.Bind("isprime", varFn("isprime", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		t := 64
		if len(args) > 1 {
			t = int(requireInt(ctx, d, args[1]).AsInteger().Int64())
		}
		return value.Bool(numeric.IntIsPrime(requireInt(ctx, d, args[0]), t))
	}))
	reg.Bind("gcd", fn("gcd", 2, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return genericGcd(ctx, d, args[0], args[1])
	}))

	// linear algebra
	reg.Bind("det", fn("det", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Det(ctx, args[0]) }))
	reg.Bind("inverse", fn("inverse", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Inverse(ctx, args[0]) }))
	reg.Bind("rank", fn("rank", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return value.NewInteger(big.NewInt(int64(d.Tensor.Rank(ctx, args[0]))))
	}))
	reg.Bind("ker", fn("ker", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Ker(ctx, args[0]) }))
	reg.Bind("trans", fn("trans", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Trans(ctx, args[0]) }))
	reg.Bind("trace", fn("trace", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Trace(ctx, args[0]) }))
	reg.Bind("charpoly", fn("charpoly", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Charpoly(ctx, args[0]) }))
	reg.Bind("eigenvals", fn("eigenvals", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return d.Tensor.Eigenvals(ctx, args[0], d.Poly)
	}))
	reg.Bind("dp", fn("dp", 2, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Dp(ctx, args[0], args[1]) }))
	reg.Bind("cp", fn("cp", 2, func(ctx *calc.Context, args []*value.Value) *value.Value { return d.Tensor.Cp(ctx, args[0], args[1]) }))
	reg.Bind("mathilbert", fn("mathilbert", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		return mathilbert(ctx, requireInt(ctx, d, args[0]))
	}))

	// polynomial / series
	reg.Bind("deriv", fn("deriv", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return polyOrSeriesDeriv(ctx, d, args[0]) }))
	reg.Bind("integ", fn("integ", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		p := args[0]
		return d.Poly.Integ(ctx, p, fieldOf(p.Type.Elem))
	}))
	reg.Bind("divrem", fn("divrem", 2, func(ctx *calc.Context, args []*value.Value) *value.Value {
		q, r := d.Poly.DivRem(ctx, args[0], args[1])
		if ctx.Failed() {
			return value.Sentinel
		}
		return container.ArrayNew([]*value.Value{q, r})
	}))
	reg.Bind("polroots", varFn("polroots", 1, func(ctx *calc.Context, args []*value.Value) *value.Value {
		var opts map[string]float64
		if len(args) > 1 {
			opts = map[string]float64{"eps": approxFloat(ctx, d, args[1])}
		}
		return d.Poly.Roots(ctx, args[0], opts)
	}))
	reg.Bind("O", fn("O", 1, func(ctx *calc.Context, args []*value.Value) *value.Value { return seriesO(ctx, d, args[0]) }))
}
