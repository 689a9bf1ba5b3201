// Package format renders a Value back to its textual notation, one small
// rendering function per kind rather than one generic Stringer switch with
// special cases bolted on: shortest round-trip for Decimal/Float, num//den
// for Fraction, descending c*X^k for Polynomial, ascending +O(X^n) for
// Series, nested brackets for Tensor, and JSON-like escaping for String.
package format

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/kind"
	"bc/internal/numeric"
	"bc/internal/value"
)

// Render renders v in the calculator's current mode (decimal/hex, JS/non-JS,
// per ctx). d supplies the generic zero/equality tests the Polynomial,
// RationalFunction and Series renderers need across arbitrary element
// kinds.
func Render(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	switch v.Tag() {
	case kind.Bool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case kind.Integer:
		return formatInteger(ctx, v)
	case kind.Fraction:
		num, den := v.AsFraction()
		return formatInteger(ctx, num) + "//" + formatInteger(ctx, den)
	case kind.Decimal:
		return formatDecimal(v)
	case kind.Float:
		return formatFloat(ctx, v)
	case kind.Complex:
		return formatComplex(ctx, d, v)
	case kind.Polynomial:
		return formatPolynomial(ctx, d, v)
	case kind.RationalFunction:
		num, den := v.AsRationalFunction()
		return "(" + formatPolynomial(ctx, d, num) + ")//(" + formatPolynomial(ctx, d, den) + ")"
	case kind.Series:
		return formatSeries(ctx, d, v)
	case kind.Tensor:
		return formatTensor(ctx, d, v)
	case kind.Array:
		return formatArray(ctx, d, v)
	case kind.String:
		return formatString(v.AsString())
	case kind.Null:
		return "null"
	case kind.Range:
		return formatRange(v)
	case kind.Function:
		fd := v.AsFunction()
		return fmt.Sprintf("<function %s>", fd.Name)
	}
	return "?"
}

func formatInteger(ctx *calc.Context, v *value.Value) string {
	x := v.AsInteger()
	if ctx.HexOutput {
		if x.Sign() < 0 {
			return "-0x" + new(big.Int).Neg(x).Text(16)
		}
		return "0x" + x.Text(16)
	}
	return x.Text(10)
}

func formatDecimal(v *value.Value) string {
	d := v.AsDecimal()
	switch d.Form {
	case apd.NaN:
		return "NaN"
	case apd.Infinite:
		if d.Negative {
			return "-Inf"
		}
		return "Inf"
	}
	s := d.Text('G')
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

func formatFloat(ctx *calc.Context, v *value.Value) string {
	f := v.AsFloat()
	if numeric.FloatIsNaN(f) {
		return "NaNl"
	}
	if f.IsInf() {
		if f.Sign() < 0 {
			return "-Infl"
		}
		return "Infl"
	}
	if ctx.HexOutput {
		return f.Text('p', 0) + "l"
	}
	return f.Text('g', -1) + "l"
}

func formatComplex(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	re, im := v.AsComplex()
	imStr := Render(ctx, d, im) + "i"
	if d.IsZero(ctx, re) {
		return imStr
	}
	reStr := Render(ctx, d, re)
	if strings.HasPrefix(imStr, "-") {
		return reStr + imStr
	}
	return reStr + "+" + imStr
}

func formatRange(v *value.Value) string {
	start, stop := v.AsRange()
	var b strings.Builder
	if start != nil {
		fmt.Fprintf(&b, "%d", *start)
	}
	b.WriteString(":")
	if stop != nil {
		fmt.Fprintf(&b, "%d", *stop)
	}
	return b.String()
}

func formatString(s string) string {
	buf, _ := json.Marshal(s)
	return string(buf)
}

func formatArray(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	cells := v.AsArray()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = Render(ctx, d, c)
	}
	joined := strings.Join(parts, ", ")
	if ctx.JSMode {
		return "[" + joined + "]"
	}
	return "Array(" + joined + ")"
}

func formatTensor(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	dims, cells := v.AsTensor()
	body := formatTensorAxis(ctx, d, dims, cells, len(dims)-1, 0)
	if ctx.JSMode {
		return "Tensor(" + body + ")"
	}
	return body
}

// formatTensorAxis renders the sub-tensor starting at cells[offset:] whose
// shape is dims[0:axis+1], recursing from the outermost axis inward so the
// innermost axis prints as a flat row. dims[0] is the innermost axis
// axis").
func formatTensorAxis(ctx *calc.Context, d *dispatch.D, dims []int, cells []*value.Value, axis, offset int) string {
	if axis == 0 {
		row := make([]string, dims[0])
		for i := range row {
			row[i] = Render(ctx, d, cells[offset+i])
		}
		return "[" + strings.Join(row, ", ") + "]"
	}
	stride := 1
	for i := 0; i < axis; i++ {
		stride *= dims[i]
	}
	n := dims[axis]
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = formatTensorAxis(ctx, d, dims, cells, axis-1, offset+i*stride)
	}
	sep := ", "
	if axis == len(dims)-1 {
		sep = ",\n "
	}
	return "[" + strings.Join(parts, sep) + "]"
}

// formatPolynomial renders descending terms, suppressing a unit
// coefficient, collapsing -1 to a bare minus, and printing X^1 as X.
func formatPolynomial(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	coeffs := v.AsPolynomial()
	deg := len(coeffs) - 1
	var terms []string
	for k := deg; k >= 0; k-- {
		c := coeffs[k]
		if d.IsZero(ctx, c) {
			continue
		}
		terms = append(terms, polyTerm(ctx, d, c, k))
	}
	if len(terms) == 0 {
		return "Polynomial(0)"
	}
	return joinSigned(terms)
}

func polyTerm(ctx *calc.Context, d *dispatch.D, c *value.Value, k int) string {
	coeffStr := Render(ctx, d, c)
	if k == 0 {
		return coeffStr
	}
	xPart := "X"
	if k != 1 {
		xPart = fmt.Sprintf("X^%d", k)
	}
	switch coeffStr {
	case "1":
		return xPart
	case "-1":
		return "-" + xPart
	}
	return coeffStr + "*" + xPart
}

// formatSeries renders ascending terms from Emin plus a trailing +O(X^n)
// truncation marker.
func formatSeries(ctx *calc.Context, d *dispatch.D, v *value.Value) string {
	emin, coeffs := v.AsSeries()
	var terms []string
	for i, c := range coeffs {
		if d.IsZero(ctx, c) {
			continue
		}
		terms = append(terms, polyTerm(ctx, d, c, emin+i))
	}
	tail := fmt.Sprintf("O(X^%d)", emin+len(coeffs))
	if len(terms) == 0 {
		return "+" + tail
	}
	return joinSigned(terms) + "+" + tail
}

// joinSigned renders a descending/ascending term list as t0 "+"/"-" t1 ...,
// folding a leading "-" on a term into the separator instead of doubling it.
func joinSigned(terms []string) string {
	var b strings.Builder
	for i, t := range terms {
		if i == 0 {
			b.WriteString(t)
			continue
		}
		if strings.HasPrefix(t, "-") {
			b.WriteString(" - ")
			b.WriteString(t[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(t)
		}
	}
	return b.String()
}
