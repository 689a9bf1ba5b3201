package tensor

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

// Index selects element i along the outermost axis. The result is a scalar when the tensor was rank 1, else a
// tensor of one lower rank.
func Index(ctx *calc.Context, t *value.Value, i int64) *value.Value {
	dims, cells := t.AsTensor()
	if len(dims) == 0 {
		ctx.Fail(bcerr.Type, "cannot index a scalar tensor")
		return value.Sentinel
	}
	outer := len(dims) - 1
	n := int64(dims[outer])
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		ctx.Fail(bcerr.Range, "tensor index out of range")
		return value.Sentinel
	}
	subDims := dims[:outer]
	subSize := Size(subDims)
	start := int(i) * subSize
	sub := cells[start : start+subSize]
	if len(subDims) == 0 {
		return sub[0]
	}
	out := make([]*value.Value, subSize)
	copy(out, sub)
	return value.NewTensor(t.Type.Elem, subDims, out)
}

// Slice selects a half-open range of outer-axis indices, returning a
// tensor of the same rank.
func Slice(ctx *calc.Context, t *value.Value, lo, hi *int64) *value.Value {
	dims, cells := t.AsTensor()
	if len(dims) == 0 {
		ctx.Fail(bcerr.Type, "cannot slice a scalar tensor")
		return value.Sentinel
	}
	outer := len(dims) - 1
	n := int64(dims[outer])
	start, stop := int64(0), n
	if lo != nil {
		start = *lo
	}
	if hi != nil {
		stop = *hi
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 || stop > n || start > stop {
		ctx.Fail(bcerr.Range, "tensor slice out of range")
		return value.Sentinel
	}
	subDims := dims[:outer]
	subSize := Size(subDims)
	out := make([]*value.Value, (stop-start)*int64(subSize))
	copy(out, cells[start*int64(subSize):stop*int64(subSize)])
	newDims := append([]int{}, dims...)
	newDims[outer] = int(stop - start)
	return value.NewTensor(t.Type.Elem, newDims, out)
}

// SetIndex returns a new tensor with element i along the outer axis
// replaced by v, cloning the cell slice.
func SetIndex(ctx *calc.Context, t *value.Value, i int64, v *value.Value) *value.Value {
	dims, cells := t.AsTensor()
	if len(dims) == 0 {
		ctx.Fail(bcerr.Type, "cannot index-assign a scalar tensor")
		return value.Sentinel
	}
	outer := len(dims) - 1
	n := int64(dims[outer])
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		ctx.Fail(bcerr.Range, "tensor index out of range")
		return value.Sentinel
	}
	subDims := dims[:outer]
	subSize := Size(subDims)
	if subSize != 1 {
		ctx.Fail(bcerr.Type, "index assignment requires a scalar element")
		return value.Sentinel
	}
	out := make([]*value.Value, len(cells))
	copy(out, cells)
	out[int(i)] = v
	return value.NewTensor(t.Type.Elem, dims, out)
}
