package value

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/calc"
	"bc/internal/kind"
)

// BoolData is the Bool payload.
type BoolData bool

// IntegerData is the arbitrary-precision signed-integer payload.
type IntegerData struct{ X *big.Int }

// FractionData is (num, den), both Integer values sharing ownership with
// their parent Fraction. Invariant: Den > 0, gcd(|Num|, Den) = 1.
type FractionData struct{ Num, Den *Value }

// DecimalData wraps a cockroachdb/apd arbitrary-precision decimal.
type DecimalData struct{ X *apd.Decimal }

// FloatData wraps an arbitrary-precision binary float.
type FloatData struct{ X *big.Float }

// ComplexData is (re, im), both sharing the same real element type.
type ComplexData struct{ Re, Im *Value }

// PolynomialData holds dense little-endian coefficients (index = degree).
// Invariant: len(Coeffs) == 1 or Coeffs[len-1] is not the elemenet zero.
type PolynomialData struct{ Coeffs []*Value }

// RationalFunctionData is a reduced numerator/denominator pair, both
// PolynomialData Values over the same element type.
type RationalFunctionData struct{ Num, Den *Value }

// SeriesData is a truncated power series: X^Emin * (Coeffs[0] + Coeffs[1]*X
// + ...) + O(X^(Emin+len(Coeffs))).
type SeriesData struct {
	Emin   int
	Coeffs []*Value
}

// TensorData is a dense N-dimensional (N ≤ 4) array. Dims[0] is the
// innermost (printing/column) axis; Size == product(Dims).
type TensorData struct {
	Dims  []int
	Cells []*Value
}

// ArrayData is a growable heterogeneous array; Cells[:Len] are live,
// Cells[Len:] is spare capacity.
type ArrayData struct {
	Cells []*Value
	Len   int
}

// StringData is a UTF-8 string payload.
type StringData string

// RangeData is a half-open [Start, Stop) integer range; either bound may be
// nil.
type RangeData struct {
	Start, Stop *int64
}

// FunctionData is a named, fixed- or variable-arity native binding. When the
// call fails it sets ctx's pending-error slot and returns Sentinel.
type FunctionData struct {
	Name    string
	Arity   int
	VarArgs bool
	Call    func(ctx *calc.Context, args []*Value) *Value
}

// NullData is the Null payload's sole value.
type NullData struct{}

// --- Constructors -----------------------------------------------------

func NewBool(b bool) *Value { return Bool(b) }

func NewInteger(x *big.Int) *Value {
	return New(kind.Plain(kind.Integer), IntegerData{X: x})
}

// NewFraction wraps an already-reduced (num, den) pair; callers needing
// normalization should go through numeric.FracNew (internal/numeric).
func NewFraction(num, den *Value) *Value {
	return New(kind.Plain(kind.Fraction), FractionData{Num: num, Den: den})
}

func NewDecimal(x *apd.Decimal) *Value {
	return New(kind.Plain(kind.Decimal), DecimalData{X: x})
}

func NewFloat(x *big.Float) *Value {
	return New(kind.Plain(kind.Float), FloatData{X: x})
}

func NewComplex(elem *kind.Type, re, im *Value) *Value {
	return New(kind.Of(kind.Complex, elem), ComplexData{Re: re, Im: im})
}

func NewPolynomial(elem *kind.Type, coeffs []*Value) *Value {
	return New(kind.Of(kind.Polynomial, elem), PolynomialData{Coeffs: coeffs})
}

func NewRationalFunction(elem *kind.Type, num, den *Value) *Value {
	return New(kind.Of(kind.RationalFunction, elem), RationalFunctionData{Num: num, Den: den})
}

func NewSeries(elem *kind.Type, emin int, coeffs []*Value) *Value {
	return New(kind.Of(kind.Series, elem), SeriesData{Emin: emin, Coeffs: coeffs})
}

func NewTensor(elem *kind.Type, dims []int, cells []*Value) *Value {
	return New(kind.Of(kind.Tensor, elem), TensorData{Dims: dims, Cells: cells})
}

func NewArray(cells []*Value) *Value {
	return New(kind.Plain(kind.Array), ArrayData{Cells: cells, Len: len(cells)})
}

func NewString(s string) *Value {
	return New(kind.Plain(kind.String), StringData(s))
}

func NewRange(start, stop *int64) *Value {
	return New(kind.Plain(kind.Range), RangeData{Start: start, Stop: stop})
}

func NewFunction(name string, arity int, varArgs bool, call func(ctx *calc.Context, args []*Value) *Value) *Value {
	return New(kind.Plain(kind.Function), FunctionData{Name: name, Arity: arity, VarArgs: varArgs, Call: call})
}

// --- Accessors ---------------------------------------------------------

func (v *Value) AsBool() bool             { return bool(v.Data.(BoolData)) }
func (v *Value) AsInteger() *big.Int      { return v.Data.(IntegerData).X }
func (v *Value) AsFraction() (num, den *Value) {
	f := v.Data.(FractionData)
	return f.Num, f.Den
}
func (v *Value) AsDecimal() *apd.Decimal  { return v.Data.(DecimalData).X }
func (v *Value) AsFloat() *big.Float      { return v.Data.(FloatData).X }
func (v *Value) AsComplex() (re, im *Value) {
	c := v.Data.(ComplexData)
	return c.Re, c.Im
}
func (v *Value) AsPolynomial() []*Value { return v.Data.(PolynomialData).Coeffs }
func (v *Value) AsRationalFunction() (num, den *Value) {
	r := v.Data.(RationalFunctionData)
	return r.Num, r.Den
}
func (v *Value) AsSeries() (emin int, coeffs []*Value) {
	s := v.Data.(SeriesData)
	return s.Emin, s.Coeffs
}
func (v *Value) AsTensor() (dims []int, cells []*Value) {
	t := v.Data.(TensorData)
	return t.Dims, t.Cells
}
func (v *Value) AsArray() []*Value {
	a := v.Data.(ArrayData)
	return a.Cells[:a.Len]
}
func (v *Value) AsString() string { return string(v.Data.(StringData)) }
func (v *Value) AsRange() (start, stop *int64) {
	r := v.Data.(RangeData)
	return r.Start, r.Stop
}
func (v *Value) AsFunction() FunctionData { return v.Data.(FunctionData) }
