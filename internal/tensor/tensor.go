// Package tensor implements the dense N-dimensional (N ≤ 4) Tensor value
// kind: shape broadcasting, elementwise operations, and (in matrix.go) the
// linear-algebra algorithms built on top of it.
//
// Like poly and series, Ops is generic over the element kind via
// value.Arith, injected by internal/dispatch to avoid a mutual import
// cycle (dispatch needs Tensor+Tensor, Tensor needs generic element
// arithmetic).
package tensor

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"
)

type Ops struct {
	A value.Arith
}

func New(a value.Arith) *Ops { return &Ops{A: a} }

func Size(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// Broadcast pads the shorter shape with 1s on the high axes and checks each
// axis pair is equal or one is 1, returning the broadcast result shape.
func Broadcast(ctx *calc.Context, s1, s2 []int) []int {
	n := maxOf(len(s1), len(s2))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		d1 := axisFromHigh(s1, i, n)
		d2 := axisFromHigh(s2, i, n)
		switch {
		case d1 == d2:
			out[i] = d1
		case d1 == 1:
			out[i] = d2
		case d2 == 1:
			out[i] = d1
		default:
			ctx.Fail(bcerr.Range, "tensors not broadcast-compatible")
			return nil
		}
	}
	return out
}

// axisFromHigh returns dims[i] when padded to width n with 1s on the high
// axes (indices len(dims)..n-1) — dims is stored low-axis-first (axis 0
// innermost).
func axisFromHigh(dims []int, i, n int) int {
	if i >= len(dims) {
		return 1
	}
	return dims[i]
}

// strides computes row-major strides for dims.
func strides(dims []int) []int {
	s := make([]int, len(dims))
	acc := 1
	for i := 0; i < len(dims); i++ {
		s[i] = acc
		acc *= dims[i]
	}
	return s
}

func unflatten(flat int, dims []int) []int {
	idx := make([]int, len(dims))
	for i := 0; i < len(dims); i++ {
		idx[i] = flat % dims[i]
		flat /= dims[i]
	}
	return idx
}

func flattenBroadcast(idx []int, dims []int, outRank int) int {
	s := strides(dims)
	flat := 0
	for i := 0; i < len(dims); i++ {
		oi := idx[i]
		if dims[i] == 1 {
			oi = 0
		}
		flat += oi * s[i]
	}
	return flat
}

// Elementwise applies a binary element op after broadcasting both operands
// to a common shape.
func (o *Ops) Elementwise(ctx *calc.Context, a, b *value.Value, op func(ctx *calc.Context, x, y *value.Value) *value.Value) *value.Value {
	ad, acells := a.AsTensor()
	bd, bcells := b.AsTensor()
	out := Broadcast(ctx, ad, bd)
	if ctx.Failed() {
		return value.Sentinel
	}
	n := Size(out)
	cells := make([]*value.Value, n)
	for flat := 0; flat < n; flat++ {
		idx := unflatten(flat, out)
		av := acells[flattenBroadcast(idx, ad, len(out))]
		bv := bcells[flattenBroadcast(idx, bd, len(out))]
		cells[flat] = op(ctx, av, bv)
		if ctx.Failed() {
			return value.Sentinel
		}
	}
	elem := elemPromote(a.Type.Elem, b.Type.Elem)
	return value.NewTensor(elem, out, cells)
}

func elemPromote(a, b *kind.Type) *kind.Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if maxOf(a.Tag, b.Tag) == a.Tag {
		return a
	}
	return b
}

// AsScalarTensor wraps a scalar value as a 0-dim tensor.
func (o *Ops) AsScalarTensor(elem *kind.Type, v *value.Value) *value.Value {
	return value.NewTensor(elem, nil, []*value.Value{v})
}

func (o *Ops) Add(ctx *calc.Context, a, b *value.Value) *value.Value {
	return o.Elementwise(ctx, a, b, o.A.Add)
}
func (o *Ops) Sub(ctx *calc.Context, a, b *value.Value) *value.Value {
	return o.Elementwise(ctx, a, b, o.A.Sub)
}
func (o *Ops) MulElem(ctx *calc.Context, a, b *value.Value) *value.Value {
	return o.Elementwise(ctx, a, b, o.A.Mul)
}

func (o *Ops) Neg(ctx *calc.Context, a *value.Value) *value.Value {
	dims, cells := a.AsTensor()
	out := make([]*value.Value, len(cells))
	for i, c := range cells {
		out[i] = o.A.Neg(ctx, c)
	}
	return value.NewTensor(a.Type.Elem, dims, out)
}

func (o *Ops) Trans(ctx *calc.Context, m *value.Value) *value.Value {
	dims, cells := m.AsTensor()
	if len(dims) < 2 {
		ctx.Fail(bcerr.Type, "trans requires a rank >= 2 tensor")
		return value.Sentinel
	}
	w, h := dims[0], dims[1]
	out := make([]*value.Value, len(cells))
	plane := w * h
	planes := len(cells) / plane
	for p := 0; p < planes; p++ {
		base := p * plane
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				out[base+c*h+r] = cells[base+r*w+c]
			}
		}
	}
	newDims := append([]int{}, dims...)
	newDims[0], newDims[1] = h, w
	return value.NewTensor(m.Type.Elem, newDims, out)
}

func (o *Ops) Trace(ctx *calc.Context, m *value.Value) *value.Value {
	dims, cells := m.AsTensor()
	if len(dims) < 2 || dims[0] != dims[1] {
		ctx.Fail(bcerr.Type, "trace requires a square matrix")
		return value.Sentinel
	}
	n := dims[0]
	sum := cells[0]
	first := true
	for i := 0; i < n; i++ {
		if first {
			sum = cells[i*n+i]
			first = false
			continue
		}
		sum = o.A.Add(ctx, sum, cells[i*n+i])
	}
	return sum
}
