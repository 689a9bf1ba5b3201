package registry

import (
	"math/big"
	"math/cmplx"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/units"
	"bc/internal/value"
)

func decFromFloat(x float64) *value.Value {
	d, _, _ := apd.NewFromString(big.NewFloat(x).Text('g', -1))
	return value.NewDecimal(d)
}

func requireInt(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return d.Convert(ctx, v, kind.Plain(kind.Integer))
}

func fieldOf(elem *kind.Type) *kind.Type {
	switch elem.Tag {
	case kind.Integer:
		return kind.Plain(kind.Fraction)
	case kind.Complex:
		return kind.Of(kind.Complex, fieldOf(elem.Elem))
	default:
		return elem
	}
}

// --- elementary / transcendental functions ------------------------------

// genericAbs dispatches abs() over every numeric kind: sqrt(re^2+im^2)
// for Complex, ordinary sign flip otherwise.
func genericAbs(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Complex:
		sq := numeric.ComplexAbsSquared(ctx, d, v)
		return sqrtReal(ctx, d, sq)
	case kind.Integer, kind.Fraction, kind.Decimal, kind.Float:
		zero := d.Convert(ctx, value.NewInteger(big.NewInt(0)), v.Type)
		if d.Cmp(ctx, v, zero) < 0 {
			return d.Neg(ctx, v)
		}
		return v
	}
	ctx.Fail(bcerr.Type, "abs expects a numeric value")
	return value.Sentinel
}

// sqrtReal computes sqrt of a value already known to be nonnegative (or
// whose sign the caller doesn't care about, as with a sum of squares).
func sqrtReal(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Integer, kind.Fraction:
		return numeric.DecSqrt(ctx, d.Convert(ctx, v, kind.Plain(kind.Decimal)))
	case kind.Decimal:
		return numeric.DecSqrt(ctx, v)
	case kind.Float:
		return numeric.FloatSqrt(ctx, v)
	}
	ctx.Fail(bcerr.Type, "sqrt expects a numeric value")
	return value.Sentinel
}

// genericSqrt lifts a negative real input to Complex by handling the sign
// itself instead of calling into numeric.DecSqrt/FloatSqrt, which fail
// outright on a negative input.
func genericSqrt(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Integer, kind.Fraction:
		return genericSqrt(ctx, d, d.Convert(ctx, v, kind.Plain(kind.Decimal)))
	case kind.Decimal:
		if v.AsDecimal().Sign() < 0 {
			mag := numeric.DecSqrt(ctx, numeric.DecNeg(ctx, v))
			return value.NewComplex(kind.Plain(kind.Decimal), decFromFloat(0), mag)
		}
		return numeric.DecSqrt(ctx, v)
	case kind.Float:
		if v.AsFloat().Sign() < 0 {
			mag := numeric.FloatSqrt(ctx, numeric.FloatNeg(ctx, v))
			zero := value.NewFloat(new(big.Float).SetPrec(v.AsFloat().Prec()))
			return value.NewComplex(kind.Plain(kind.Float), zero, mag)
		}
		return numeric.FloatSqrt(ctx, v)
	case kind.Complex:
		return complexUnary(ctx, d, v, cmplx.Sqrt)
	}
	ctx.Fail(bcerr.Type, "sqrt expects a numeric value")
	return value.Sentinel
}

// genericLog lifts a negative real input to Complex:
// log(x) = log(|x|) + i*pi for x < 0.
func genericLog(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Integer, kind.Fraction:
		return genericLog(ctx, d, d.Convert(ctx, v, kind.Plain(kind.Decimal)))
	case kind.Decimal:
		if v.AsDecimal().Sign() < 0 {
			re := numeric.DecLn(ctx, numeric.DecNeg(ctx, v))
			return value.NewComplex(kind.Plain(kind.Decimal), re, numeric.PiDecimal(ctx))
		}
		return numeric.DecLn(ctx, v)
	case kind.Float:
		if v.AsFloat().Sign() < 0 {
			re := numeric.FloatLn(ctx, numeric.FloatNeg(ctx, v))
			pi := value.NewFloat(numeric.PiRaw(v.AsFloat().Prec(), int(v.AsFloat().Prec())/2+24))
			return value.NewComplex(kind.Plain(kind.Float), re, pi)
		}
		return numeric.FloatLn(ctx, v)
	case kind.Complex:
		return complexUnary(ctx, d, v, cmplx.Log)
	}
	ctx.Fail(bcerr.Type, "log expects a numeric value")
	return value.Sentinel
}

func genericExp(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return seriesOrScalarUnary(ctx, d, v, numeric.DecExp, numeric.FloatExp,
		func(ctx *calc.Context, a *value.Value, n int) *value.Value { return d.Series.Exp(ctx, a, n) },
		cmplx.Exp)
}

func genericSin(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return seriesOrScalarUnary(ctx, d, v, numeric.DecSin, numeric.FloatSin,
		func(ctx *calc.Context, a *value.Value, n int) *value.Value { return d.Series.Sin(ctx, a, n) },
		cmplx.Sin)
}

func genericCos(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return seriesOrScalarUnary(ctx, d, v, numeric.DecCos, numeric.FloatCos,
		func(ctx *calc.Context, a *value.Value, n int) *value.Value { return d.Series.Cos(ctx, a, n) },
		cmplx.Cos)
}

func genericTan(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return seriesOrScalarUnary(ctx, d, v, numeric.DecTan, numeric.FloatTan,
		func(ctx *calc.Context, a *value.Value, n int) *value.Value { return d.Series.Tan(ctx, a, n) },
		cmplx.Tan)
}

// seriesOrScalarUnary is the common shape of exp/sin/cos/tan: Decimal and
// Float use the bignum primitive directly, Series uses the ODE-style
// recurrence in internal/series at its own stored length, Complex bridges
// through complex128 (as internal/poly's Laguerre root finder already
// does for its own approximate work), and Integer/Fraction promote to
// Decimal first.
func seriesOrScalarUnary(ctx *calc.Context, d *dispatch.D, v *value.Value,
	decFn func(*calc.Context, *value.Value) *value.Value,
	floatFn func(*calc.Context, *value.Value) *value.Value,
	seriesFn func(*calc.Context, *value.Value, int) *value.Value,
	cFn func(complex128) complex128) *value.Value {
	switch v.Tag() {
	case kind.Integer, kind.Fraction:
		return decFn(ctx, d.Convert(ctx, v, kind.Plain(kind.Decimal)))
	case kind.Decimal:
		return decFn(ctx, v)
	case kind.Float:
		return floatFn(ctx, v)
	case kind.Series:
		_, c := v.AsSeries()
		return seriesFn(ctx, v, len(c))
	case kind.Complex:
		return complexUnary(ctx, d, v, cFn)
	}
	ctx.Fail(bcerr.Type, "expected a numeric value")
	return value.Sentinel
}

// complexUnary bridges a Complex value through complex128 for the
// transcendentals math/cmplx supplies, rebuilding a Complex(Float) result
// at the context's current binary precision.
func complexUnary(ctx *calc.Context, d *dispatch.D, v *value.Value, fn func(complex128) complex128) *value.Value {
	re, im := v.AsComplex()
	ref := d.Convert(ctx, re, kind.Plain(kind.Float)).AsFloat()
	imf := d.Convert(ctx, im, kind.Plain(kind.Float)).AsFloat()
	rf, _ := ref.Float64()
	if2, _ := imf.Float64()
	out := fn(complex(rf, if2))
	prec := ctx.BigFloatPrecision()
	outRe := new(big.Float).SetPrec(prec).SetFloat64(real(out))
	outIm := new(big.Float).SetPrec(prec).SetFloat64(imag(out))
	return value.NewComplex(kind.Plain(kind.Float), value.NewFloat(outRe), value.NewFloat(outIm))
}

// realUnary lifts a math/big.Float raw unary function (asin/acos/atan) to
// the generic builtin convention, converting any scalar kind to Float
// first since those three have no Decimal-native or Series form here.
func realUnary(fn func(*calc.Context, *value.Value) *value.Value) func(*calc.Context, *dispatch.D, *value.Value) *value.Value {
	return func(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
		return fn(ctx, toFloatValue(ctx, d, v))
	}
}

func toFloatValue(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	return d.Convert(ctx, v, kind.Plain(kind.Float))
}

// roundLike lifts round/floor/ceil, each of which has a distinct Decimal
// and Fraction implementation but no native Float one; Float routes
// through Decimal at the current precision.
func roundLike(decFn func(*calc.Context, *value.Value) *value.Value, fracFn func(*value.Value) *value.Value) func(*calc.Context, *dispatch.D, *value.Value) *value.Value {
	return func(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
		switch v.Tag() {
		case kind.Integer:
			return v
		case kind.Fraction:
			return fracFn(v)
		case kind.Decimal:
			return decFn(ctx, v)
		case kind.Float:
			dec := d.Convert(ctx, v, kind.Plain(kind.Decimal))
			return d.Convert(ctx, decFn(ctx, dec), kind.Plain(kind.Float))
		}
		ctx.Fail(bcerr.Type, "expected a numeric value")
		return value.Sentinel
	}
}

func decFloor(ctx *calc.Context, v *value.Value) *value.Value { return numeric.DecFloor(ctx, v) }
func decCeil(ctx *calc.Context, v *value.Value) *value.Value  { return numeric.DecCeil(ctx, v) }

func approxFloat(ctx *calc.Context, d *dispatch.D, v *value.Value) float64 {
	f := d.Convert(ctx, v, kind.Plain(kind.Float)).AsFloat()
	x, _ := f.Float64()
	return x
}

// --- bestappr / convert --------------------------------------------------

func bestAppr(ctx *calc.Context, v *value.Value, bound int64) *value.Value {
	switch v.Tag() {
	case kind.Decimal:
		return numeric.DecBestAppr(ctx, v, bound)
	case kind.Float:
		bits := v.AsFloat().Prec()
		dec, _, err := apd.NewFromString(v.AsFloat().Text('e', int(float64(bits)/3.32)+2))
		if err != nil {
			ctx.Fail(bcerr.Range, "bestappr: float-to-decimal conversion failed")
			return value.Sentinel
		}
		return numeric.DecBestAppr(ctx, value.NewDecimal(dec), bound)
	}
	ctx.Fail(bcerr.Type, "bestappr is defined for Decimal and Float inputs only")
	return value.Sentinel
}

var typeNames = map[string]kind.Tag{
	"Integer": kind.Integer, "Fraction": kind.Fraction, "Decimal": kind.Decimal,
	"Float": kind.Float, "Complex": kind.Complex, "Polynomial": kind.Polynomial,
	"RationalFunction": kind.RationalFunction, "Series": kind.Series,
	"Tensor": kind.Tensor, "String": kind.String,
}

// typeConvert implements the two-argument form of
// convert(v, target_type): target is a type name string, naming the outer
// kind; element-parametric kinds keep v's own element type (or Integer's
// default) since the grammar has no nested-type literal syntax.
func typeConvert(ctx *calc.Context, d *dispatch.D, v, target *value.Value) *value.Value {
	if target.Tag() != kind.String {
		ctx.Fail(bcerr.Type, "convert's second argument must name a type")
		return value.Sentinel
	}
	name := target.AsString()
	tag, ok := typeNames[name]
	if !ok {
		ctx.Fail(bcerr.Type, "unknown target type %q", name)
		return value.Sentinel
	}
	var t *kind.Type
	if kind.NeedsElem(tag) {
		elem := kind.Plain(kind.Integer)
		if v.Type.Elem != nil {
			elem = v.Type.Elem
		} else if v.Tag().IsNumeric() {
			elem = v.Type
		}
		t = kind.Of(tag, elem)
	} else {
		t = kind.Plain(tag)
	}
	return d.Convert(ctx, v, t)
}

// unitConvert implements the three-argument physical-unit form, e.g.
// convert(100, "°C", "°F").
func unitConvert(ctx *calc.Context, d *dispatch.D, v, from, to *value.Value) *value.Value {
	if from.Tag() != kind.String || to.Tag() != kind.String {
		ctx.Fail(bcerr.Type, "convert's unit arguments must be strings")
		return value.Sentinel
	}
	x := d.Convert(ctx, v, kind.Plain(kind.Float)).AsFloat()
	out, err := units.Convert(x, from.AsString(), to.AsString())
	if err != nil {
		ctx.Fail(bcerr.Range, "%v", err)
		return value.Sentinel
	}
	return value.NewFloat(out)
}

// --- number theory / linear algebra / polynomial composites -------------

func genericGcd(ctx *calc.Context, d *dispatch.D, a, b *value.Value) *value.Value {
	t := kind.Max(a.Tag(), b.Tag())
	switch t {
	case kind.Bool, kind.Integer:
		ai := d.Convert(ctx, a, kind.Plain(kind.Integer))
		bi := d.Convert(ctx, b, kind.Plain(kind.Integer))
		return numeric.IntGcd(ai, bi)
	case kind.Polynomial:
		pa := d.Convert(ctx, a, kind.Of(kind.Polynomial, promotedElem(a, b)))
		pb := d.Convert(ctx, b, kind.Of(kind.Polynomial, promotedElem(a, b)))
		return d.PolyGcd(ctx, pa, pb)
	}
	ctx.Fail(bcerr.Type, "gcd expects Integer or Polynomial operands")
	return value.Sentinel
}

func promotedElem(a, b *value.Value) *kind.Type {
	ea, eb := a.Type, b.Type
	if a.Type.Elem != nil {
		ea = a.Type.Elem
	}
	if b.Type.Elem != nil {
		eb = b.Type.Elem
	}
	if kind.Max(ea.Tag, eb.Tag) == ea.Tag {
		return ea
	}
	return eb
}

func polyOrSeriesDeriv(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Polynomial:
		return d.Poly.Deriv(ctx, v)
	case kind.RationalFunction:
		return d.RationalDeriv(ctx, v)
	}
	ctx.Fail(bcerr.Type, "deriv expects a Polynomial or RationalFunction")
	return value.Sentinel
}

// mathilbert builds the n x n Hilbert matrix H[i][j] = 1/(i+j+1) (0
// indexed), a classic ill-conditioned test matrix for charpoly.
func mathilbert(ctx *calc.Context, n *value.Value) *value.Value {
	size := int(n.AsInteger().Int64())
	if size <= 0 {
		ctx.Fail(bcerr.Range, "mathilbert requires a positive size")
		return value.Sentinel
	}
	cells := make([]*value.Value, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			den := big.NewInt(int64(r + c + 1))
			cells = append(cells, value.NewFraction(value.NewInteger(big.NewInt(1)), value.NewInteger(den)))
		}
	}
	return value.NewTensor(kind.Plain(kind.Fraction), []int{size, size}, cells)
}

// seriesO implements O(expr): the emin of the result is
// read off the already-evaluated monomial argument rather than its AST
// shape, since by the time a builtin sees it the expression has already
// been promoted/simplified into a Series, Polynomial, or RationalFunction
// value.
func seriesO(ctx *calc.Context, d *dispatch.D, v *value.Value) *value.Value {
	switch v.Tag() {
	case kind.Series:
		emin, _ := v.AsSeries()
		return d.Series.O(v.Type.Elem, emin)
	case kind.Polynomial:
		return d.Series.O(v.Type.Elem, d.Poly.Deg(ctx, v))
	case kind.RationalFunction:
		_, den := v.AsRationalFunction()
		return d.Series.O(den.Type.Elem, -d.Poly.Deg(ctx, den))
	}
	ctx.Fail(bcerr.Type, "O() expects a Polynomial, RationalFunction, or Series")
	return value.Sentinel
}
