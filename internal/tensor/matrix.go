package tensor

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/poly"
	"bc/internal/value"
)

// MatMul implements matrix "*": for rank >= 2 tensors the last two axes
// are (height, width) with dims[0]=width, dims[1]=height;
// (h1,k) x (k,w2) -> (h1,w2). Axes beyond rank 2 broadcast. Rank-1
// operands are lifted to a row/column as MatVec does.
func (o *Ops) MatMul(ctx *calc.Context, a, b *value.Value) *value.Value {
	ad, acells := a.AsTensor()
	bd, bcells := b.AsTensor()
	if len(ad) < 2 {
		ad, acells = liftVector(ad, acells, true)
	}
	if len(bd) < 2 {
		bd, bcells = liftVector(bd, bcells, false)
	}
	aw, ah := ad[0], ad[1]
	bw, bh := bd[0], bd[1]
	if ah != bh && aw != bw {
		// fallthrough to real check below; kept for readability
	}
	k := aw
	if k != bh {
		ctx.Fail(bcerr.Range, "matrix multiply shape mismatch: (%d,%d) x (%d,%d)", ah, aw, bh, bw)
		return value.Sentinel
	}
	batch := Broadcast(ctx, ad[2:], bd[2:])
	if ctx.Failed() {
		return value.Sentinel
	}
	outDims := append([]int{bw, ah}, batch...)
	n := Size(outDims)
	cells := make([]*value.Value, n)
	aPlane, bPlane := ah*aw, bh*bw
	outPlane := ah * bw
	batches := Size(batch)
	for p := 0; p < batches; p++ {
		idx := unflatten(p, batch)
		aBase := flattenBroadcast(idx, ad[2:], len(batch)) * aPlane
		bBase := flattenBroadcast(idx, bd[2:], len(batch)) * bPlane
		outBase := p * outPlane
		for r := 0; r < ah; r++ {
			for c := 0; c < bw; c++ {
				var sum *value.Value
				for i := 0; i < k; i++ {
					prod := o.A.Mul(ctx, acells[aBase+r*aw+i], bcells[bBase+i*bw+c])
					if sum == nil {
						sum = prod
					} else {
						sum = o.A.Add(ctx, sum, prod)
					}
				}
				cells[outBase+r*bw+c] = sum
			}
		}
	}
	return value.NewTensor(elemPromote(a.Type.Elem, b.Type.Elem), outDims, cells)
}

func liftVector(dims []int, cells []*value.Value, asColumn bool) ([]int, []*value.Value) {
	n := Size(dims)
	if asColumn {
		return []int{1, n}, cells // column: width 1, height n
	}
	return []int{n, 1}, cells // row: width n, height 1
}

// Dp is the dot product of two length-equal vectors.
func (o *Ops) Dp(ctx *calc.Context, a, b *value.Value) *value.Value {
	_, acells := a.AsTensor()
	_, bcells := b.AsTensor()
	if len(acells) != len(bcells) {
		ctx.Fail(bcerr.Range, "dp requires equal-length vectors")
		return value.Sentinel
	}
	var sum *value.Value
	for i := range acells {
		prod := o.A.Mul(ctx, acells[i], bcells[i])
		if sum == nil {
			sum = prod
		} else {
			sum = o.A.Add(ctx, sum, prod)
		}
	}
	return sum
}

// Cp is the 3-vector cross product.
func (o *Ops) Cp(ctx *calc.Context, a, b *value.Value) *value.Value {
	_, ac := a.AsTensor()
	_, bc := b.AsTensor()
	if len(ac) != 3 || len(bc) != 3 {
		ctx.Fail(bcerr.Range, "cp requires length-3 vectors")
		return value.Sentinel
	}
	sub := func(x, y *value.Value) *value.Value { return o.A.Sub(ctx, x, y) }
	mul := o.A.Mul
	c0 := sub(mul(ctx, ac[1], bc[2]), mul(ctx, ac[2], bc[1]))
	c1 := sub(mul(ctx, ac[2], bc[0]), mul(ctx, ac[0], bc[2]))
	c2 := sub(mul(ctx, ac[0], bc[1]), mul(ctx, ac[1], bc[0]))
	return value.NewTensor(a.Type.Elem, []int{3}, []*value.Value{c0, c1, c2})
}

// matrixDims validates m is a square (or rectangular) 2-D matrix and
// returns (width, height).
func matrixDims(ctx *calc.Context, m *value.Value) (w, h int, cells []*value.Value, ok bool) {
	dims, cells := m.AsTensor()
	if len(dims) != 2 {
		ctx.Fail(bcerr.Type, "expected a rank-2 tensor (matrix)")
		return 0, 0, nil, false
	}
	return dims[0], dims[1], cells, true
}

// gaussianElim performs forward elimination using a "first nonzero
// pivot" rule (not partial pivoting) over a field supplied via o.A.Div,
// returning the row-echelon cells, the pivot columns found, and a sign
// multiplier for det's row-swap tracking.
func (o *Ops) gaussianElim(ctx *calc.Context, w, h int, cells []*value.Value) (rows []*value.Value, pivotCols []int, sign *value.Value) {
	rows = append([]*value.Value{}, cells...)
	at := func(r, c int) *value.Value { return rows[r*w+c] }
	set := func(r, c int, v *value.Value) { rows[r*w+c] = v }
	signVal := 1
	row := 0
	for col := 0; col < w && row < h; col++ {
		piv := -1
		for r := row; r < h; r++ {
			if !o.A.IsZero(ctx, at(r, col)) {
				piv = r
				break
			}
		}
		if piv == -1 {
			continue
		}
		if piv != row {
			for c := 0; c < w; c++ {
				tmp := at(row, c)
				set(row, c, at(piv, c))
				set(piv, c, tmp)
			}
			signVal = -signVal
		}
		pivotVal := at(row, col)
		for r := row + 1; r < h; r++ {
			factor := o.A.Div(ctx, at(r, col), pivotVal)
			if ctx.Failed() {
				return nil, nil, nil
			}
			for c := col; c < w; c++ {
				set(r, c, o.A.Sub(ctx, at(r, c), o.A.Mul(ctx, factor, at(row, c))))
			}
		}
		pivotCols = append(pivotCols, col)
		row++
	}
	s := cells[0]
	if signVal < 0 {
		s = o.A.Neg(ctx, o.fieldOne(ctx, cells[0]))
	} else {
		s = o.fieldOne(ctx, cells[0])
	}
	return rows, pivotCols, s
}

func (o *Ops) fieldOne(ctx *calc.Context, sample *value.Value) *value.Value {
	if o.A.IsZero(ctx, sample) {
		return o.A.Convert(ctx, value.NewInteger(big.NewInt(1)), sample.Type).Retain()
	}
	return o.A.Div(ctx, sample, sample).Retain()
}

// Det computes the determinant via Gaussian elimination, tracking sign via
// row swaps and multiplying the pivots.
func (o *Ops) Det(ctx *calc.Context, m *value.Value) *value.Value {
	w, h, cells, ok := matrixDims(ctx, m)
	if !ok || w != h {
		ctx.Fail(bcerr.Type, "det requires a square matrix")
		return value.Sentinel
	}
	rows, pivotCols, sign := o.gaussianElim(ctx, w, h, cells)
	if ctx.Failed() {
		return value.Sentinel
	}
	if len(pivotCols) < h {
		return o.zeroOf(ctx, cells[0])
	}
	prod := sign
	for i := 0; i < h; i++ {
		prod = o.A.Mul(ctx, prod, rows[i*w+i])
	}
	return prod
}

func (o *Ops) zeroOf(ctx *calc.Context, sample *value.Value) *value.Value {
	return o.A.Sub(ctx, sample, sample)
}

// Rank is the pivot count from the same elimination.
func (o *Ops) Rank(ctx *calc.Context, m *value.Value) int {
	w, h, cells, ok := matrixDims(ctx, m)
	if !ok {
		return 0
	}
	_, pivotCols, _ := o.gaussianElim(ctx, w, h, cells)
	return len(pivotCols)
}

// Inverse uses Gauss-Jordan elimination on the augmented [M | I] matrix,
// first-nonzero pivoting (numerically inferior to partial pivoting for
// Decimal/Float, kept intentionally so every element kind shares one
// elimination path).
func (o *Ops) Inverse(ctx *calc.Context, m *value.Value) *value.Value {
	w, h, cells, ok := matrixDims(ctx, m)
	if !ok || w != h {
		ctx.Fail(bcerr.Type, "inverse requires a square matrix")
		return value.Sentinel
	}
	n := w
	aug := make([]*value.Value, n*2*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			aug[r*2*n+c] = cells[r*n+c]
		}
		for c := 0; c < n; c++ {
			if c == r {
				aug[r*2*n+n+c] = o.fieldOne(ctx, cells[0])
			} else {
				aug[r*2*n+n+c] = o.zeroOf(ctx, cells[0])
			}
		}
	}
	at := func(r, c int) *value.Value { return aug[r*2*n+c] }
	set := func(r, c int, v *value.Value) { aug[r*2*n+c] = v }
	for col := 0; col < n; col++ {
		piv := -1
		for r := col; r < n; r++ {
			if !o.A.IsZero(ctx, at(r, col)) {
				piv = r
				break
			}
		}
		if piv == -1 {
			ctx.Fail(bcerr.Range, "matrix is singular")
			return value.Sentinel
		}
		if piv != col {
			for c := 0; c < 2*n; c++ {
				tmp := at(col, c)
				set(col, c, at(piv, c))
				set(piv, c, tmp)
			}
		}
		pv := at(col, col)
		for c := 0; c < 2*n; c++ {
			set(col, c, o.A.Div(ctx, at(col, c), pv))
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := at(r, col)
			if o.A.IsZero(ctx, factor) {
				continue
			}
			for c := 0; c < 2*n; c++ {
				set(r, c, o.A.Sub(ctx, at(r, c), o.A.Mul(ctx, factor, at(col, c))))
			}
		}
	}
	out := make([]*value.Value, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = at(r, n+c)
		}
	}
	return value.NewTensor(m.Type.Elem, []int{n, n}, out)
}

// Ker reconstructs a basis for the null space from the free columns of the
// row-echelon form.
func (o *Ops) Ker(ctx *calc.Context, m *value.Value) *value.Value {
	w, h, cells, ok := matrixDims(ctx, m)
	if !ok {
		return value.Sentinel
	}
	rows, pivotCols, _ := o.gaussianElim(ctx, w, h, cells)
	if ctx.Failed() {
		return value.Sentinel
	}
	isPivot := make([]bool, w)
	pivotRowOf := make([]int, w)
	for i, c := range pivotCols {
		isPivot[c] = true
		pivotRowOf[c] = i
	}
	var basisVecs [][]*value.Value
	zero := o.zeroOf(ctx, cells[0])
	one := o.fieldOne(ctx, cells[0])
	for free := 0; free < w; free++ {
		if isPivot[free] {
			continue
		}
		vec := make([]*value.Value, w)
		for i := range vec {
			vec[i] = zero
		}
		vec[free] = one
		for j := len(pivotCols) - 1; j >= 0; j-- {
			pc := pivotCols[j]
			r := pivotRowOf[pc]
			sum := rows[r*w+free]
			for _, pc2 := range pivotCols[j+1:] {
				sum = o.A.Add(ctx, sum, o.A.Mul(ctx, rows[r*w+pc2], vec[pc2]))
			}
			vec[pc] = o.A.Neg(ctx, o.A.Div(ctx, sum, rows[r*w+pc]))
		}
		basisVecs = append(basisVecs, vec)
	}
	if len(basisVecs) == 0 {
		return value.NewTensor(m.Type.Elem, []int{0, w}, nil)
	}
	cellsOut := make([]*value.Value, 0, len(basisVecs)*w)
	for col := 0; col < w; col++ {
		for _, v := range basisVecs {
			cellsOut = append(cellsOut, v[col])
		}
	}
	return value.NewTensor(m.Type.Elem, []int{len(basisVecs), w}, cellsOut)
}

// Charpoly computes the characteristic polynomial coefficients via the
// Faddeev-LeVerrier recurrence, using exact division on integer elements.
func (o *Ops) Charpoly(ctx *calc.Context, m *value.Value) *value.Value {
	w, h, cells, ok := matrixDims(ctx, m)
	if !ok || w != h {
		ctx.Fail(bcerr.Type, "charpoly requires a square matrix")
		return value.Sentinel
	}
	n := w
	one := o.fieldOne(ctx, cells[0])
	zero := o.zeroOf(ctx, cells[0])
	ident := identity(n, one, zero)
	mCur := append([]*value.Value{}, cells...)
	coeffs := make([]*value.Value, n+1)
	coeffs[n] = one
	mAcc := ident
	for k := 1; k <= n; k++ {
		prodCells := o.matMulRaw(ctx, n, mCur, mAcc)
		tr := traceOf(ctx, o.A, n, prodCells)
		ck := o.A.Div(ctx, tr, negK(ctx, o.A, k, one))
		coeffs[n-k] = ck
		scaled := make([]*value.Value, n*n)
		for i := range scaled {
			scaled[i] = o.A.Mul(ctx, ident[i], ck)
		}
		sumCells := make([]*value.Value, n*n)
		for i := range sumCells {
			sumCells[i] = o.A.Add(ctx, prodCells[i], scaled[i])
		}
		mAcc = sumCells
	}
	return value.NewPolynomial(m.Type.Elem, coeffs)
}

func (o *Ops) matMulRaw(ctx *calc.Context, n int, a, b []*value.Value) []*value.Value {
	out := make([]*value.Value, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			var sum *value.Value
			for k := 0; k < n; k++ {
				p := o.A.Mul(ctx, a[r*n+k], b[k*n+c])
				if sum == nil {
					sum = p
				} else {
					sum = o.A.Add(ctx, sum, p)
				}
			}
			out[r*n+c] = sum
		}
	}
	return out
}

func identity(n int, one, zero *value.Value) []*value.Value {
	out := make([]*value.Value, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if r == c {
				out[r*n+c] = one
			} else {
				out[r*n+c] = zero
			}
		}
	}
	return out
}

func traceOf(ctx *calc.Context, a value.Arith, n int, cells []*value.Value) *value.Value {
	sum := cells[0]
	for i := 1; i < n; i++ {
		sum = a.Add(ctx, sum, cells[i*n+i])
	}
	return sum
}

func negK(ctx *calc.Context, a value.Arith, k int, one *value.Value) *value.Value {
	acc := one
	for i := 1; i < k; i++ {
		acc = a.Add(ctx, acc, one)
	}
	return a.Neg(ctx, acc)
}

// Eigenvals is the roots of Charpoly.
func (o *Ops) Eigenvals(ctx *calc.Context, m *value.Value, p *poly.Ops) *value.Value {
	cp := o.Charpoly(ctx, m)
	if ctx.Failed() {
		return value.Sentinel
	}
	return p.Roots(ctx, cp, nil)
}
