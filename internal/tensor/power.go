package tensor

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// Identity builds the n x n identity matrix over sample's element type and
// dimensions, for use as the exponent-0 base of matrix exponentiation by
// repeated squaring.
func (o *Ops) Identity(ctx *calc.Context, sample *value.Value) *value.Value {
	w, h, cells, ok := matrixDims(ctx, sample)
	if !ok || w != h {
		ctx.Fail(bcerr.Type, "matrix power requires a square matrix")
		return value.Sentinel
	}
	one := o.fieldOne(ctx, cells[0])
	zero := o.zeroOf(ctx, cells[0])
	return value.NewTensor(sample.Type.Elem, []int{w, h}, identity(w, one, zero))
}
