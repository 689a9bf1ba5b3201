package dispatch

import (
	"math/big"
	"strings"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/value"
)

// Cmp orders two values; only the
// scalar numeric kinds and String are ordered. Bool promotes to Integer
// like every other binary op.
func (d *D) Cmp(ctx *calc.Context, a, b *value.Value) int {
	if a.Tag() == kind.String && b.Tag() == kind.String {
		return strings.Compare(a.AsString(), b.AsString())
	}
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return 0
	}
	switch t {
	case kind.Integer:
		return numeric.IntCmp(av, bv)
	case kind.Fraction:
		return numeric.FracCmp(av, bv)
	case kind.Decimal:
		return numeric.DecCmp(av, bv)
	case kind.Float:
		return numeric.FloatCmp(av, bv)
	}
	ctx.Fail(bcerr.Type, "cannot order %s and %s", a.Type, b.Type)
	return 0
}

// Mod is '%': Integer uses Euclidean (nonnegative) remainder
// via IntDivRem; Fraction uses floor-division semantics, remainder sign
// following the divisor; Decimal/Float use the
// same floor convention via a - floor(a/b)*b.
func (d *D) Mod(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		_, r := numeric.IntDivRem(ctx, av, bv)
		return r
	case kind.Fraction:
		return numeric.FracMod(ctx, av, bv)
	case kind.Decimal:
		return d.floorMod(ctx, av, bv, kind.Decimal)
	case kind.Float:
		return d.floorMod(ctx, av, bv, kind.Float)
	}
	ctx.Fail(bcerr.Type, "cannot take %s mod %s", a.Type, b.Type)
	return value.Sentinel
}

// floorMod computes a - floor(a/b)*b by truncating the quotient toward
// zero and stepping down by
// one more when truncation didn't already land on the floor.
func (d *D) floorMod(ctx *calc.Context, a, b *value.Value, t kind.Tag) *value.Value {
	q := d.Div(ctx, a, b)
	qTrunc := d.Convert(ctx, q, kind.Plain(kind.Integer))
	back := d.Convert(ctx, qTrunc, kind.Plain(t))
	zero := d.Convert(ctx, numeric.IntNew(big.NewInt(0)), kind.Plain(t))
	if d.Cmp(ctx, q, zero) < 0 && !d.Eq(ctx, q, back) {
		qTrunc = numeric.IntSub(qTrunc, numeric.IntNew(big.NewInt(1)))
	}
	floorT := d.Convert(ctx, qTrunc, kind.Plain(t))
	return d.Sub(ctx, a, d.Mul(ctx, floorT, b))
}

// FloorDiv is '//': Integer // Integer is exact
// rational division producing a reduced Fraction; Fraction // Fraction is
// the same field division Div already gives.
func (d *D) FloorDiv(ctx *calc.Context, a, b *value.Value) *value.Value {
	t, av, bv := d.binElemTag(ctx, a, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Integer:
		return numeric.FracNew(ctx, av.AsInteger(), bv.AsInteger())
	case kind.Fraction:
		return numeric.FracDiv(ctx, av, bv)
	}
	ctx.Fail(bcerr.Type, "'//' requires Integer or Fraction operands, got %s and %s", a.Type, b.Type)
	return value.Sentinel
}

// Pow is '**'/'^'. Non-integer exponents fall back to the
// scalar per-kind pow.
func (d *D) Pow(ctx *calc.Context, base, exp *value.Value) *value.Value {
	if exp.Tag() == kind.Integer {
		return d.intPow(ctx, base, exp.AsInteger())
	}
	t, av, bv := d.binElemTag(ctx, base, exp)
	if ctx.Failed() {
		return value.Sentinel
	}
	switch t {
	case kind.Decimal:
		return numeric.DecPow(ctx, av, bv)
	case kind.Float:
		return numeric.FloatExp(ctx, d.Mul(ctx, bv, numeric.FloatLn(ctx, av)))
	}
	ctx.Fail(bcerr.Type, "cannot raise %s to the power %s", base.Type, exp.Type)
	return value.Sentinel
}

// intPow implements binary exponentiation generically over Mul/Div. A
// Tensor base is raised by matrix multiply from the identity matrix, and a
// negative exponent on it takes the matrix inverse of the result.
func (d *D) intPow(ctx *calc.Context, base *value.Value, n *big.Int) *value.Value {
	if (base.Tag() == kind.Fraction || base.Tag() == kind.Integer) && n.Sign() < 0 {
		f := base
		if base.Tag() == kind.Integer {
			f = d.Convert(ctx, base, kind.Plain(kind.Fraction))
		}
		p := numeric.FracPow(ctx, f, new(big.Int).Neg(n).Int64())
		if ctx.Failed() {
			return value.Sentinel
		}
		one := d.Convert(ctx, numeric.IntNew(big.NewInt(1)), kind.Plain(kind.Fraction))
		return numeric.FracDiv(ctx, one, p)
	}
	if base.Tag() == kind.Integer {
		return numeric.IntPow(ctx, base, numeric.IntNew(n))
	}
	neg := n.Sign() < 0
	k := new(big.Int).Abs(n)
	mulFn := d.Mul
	if base.Tag() == kind.Tensor {
		mulFn = func(ctx *calc.Context, a, b *value.Value) *value.Value { return d.Tensor.MatMul(ctx, a, b) }
	}
	result := d.powIdentity(ctx, base)
	b := base
	for i := k; i.Sign() > 0; {
		if i.Bit(0) == 1 {
			result = mulFn(ctx, result, b)
		}
		b = mulFn(ctx, b, b)
		i = new(big.Int).Rsh(i, 1)
	}
	if neg {
		if base.Tag() == kind.Tensor {
			return d.Tensor.Inverse(ctx, result)
		}
		one := d.powIdentity(ctx, base)
		return d.Div(ctx, one, result)
	}
	return result
}

// powIdentity returns the multiplicative identity for binary exponentiation
// with exponent 0: the identity matrix for Tensor, 1 otherwise.
func (d *D) powIdentity(ctx *calc.Context, base *value.Value) *value.Value {
	if base.Tag() == kind.Tensor {
		return d.Tensor.Identity(ctx, base)
	}
	one := numeric.IntNew(big.NewInt(1))
	return d.Convert(ctx, one, base.Type)
}

// --- Integer-only bitwise/shift family -----

func (d *D) BitAnd(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.intBinOp(ctx, a, b, numeric.IntAnd)
}

func (d *D) BitOr(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.intBinOp(ctx, a, b, numeric.IntOr)
}

func (d *D) BitXor(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.intBinOp(ctx, a, b, numeric.IntXor)
}

func (d *D) intBinOp(ctx *calc.Context, a, b *value.Value, op func(a, b *value.Value) *value.Value) *value.Value {
	ai := d.requireInteger(ctx, a)
	bi := d.requireInteger(ctx, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	return op(ai, bi)
}

func (d *D) BitNot(ctx *calc.Context, a *value.Value) *value.Value {
	ai := d.requireInteger(ctx, a)
	if ctx.Failed() {
		return value.Sentinel
	}
	return numeric.IntNot(ai)
}

func (d *D) Shl(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.shift(ctx, a, b, 1)
}

func (d *D) Shr(ctx *calc.Context, a, b *value.Value) *value.Value {
	return d.shift(ctx, a, b, -1)
}

func (d *D) shift(ctx *calc.Context, a, b *value.Value, sign int64) *value.Value {
	ai := d.requireInteger(ctx, a)
	bi := d.requireInteger(ctx, b)
	if ctx.Failed() {
		return value.Sentinel
	}
	if !bi.AsInteger().IsInt64() {
		ctx.Fail(bcerr.Range, "shift count out of range")
		return value.Sentinel
	}
	return numeric.IntShift(ai, sign*bi.AsInteger().Int64())
}

func (d *D) requireInteger(ctx *calc.Context, v *value.Value) *value.Value {
	if v.Tag() == kind.Bool {
		return d.Convert(ctx, v, kind.Plain(kind.Integer))
	}
	if v.Tag() != kind.Integer {
		ctx.Fail(bcerr.Type, "expected an Integer, got %s", v.Type)
		return value.Sentinel
	}
	return v
}
