// Package eval walks the parsed expression tree and drives internal/dispatch,
// internal/registry, internal/container, and internal/tensor to produce a
// value.Value per statement.
package eval

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/container"
	"bc/internal/dispatch"
	"bc/internal/kind"
	"bc/internal/lexer"
	"bc/internal/parser"
	"bc/internal/registry"
	"bc/internal/tensor"
	"bc/internal/value"
)

// Evaluator ties one Context's pending-error slot and precision settings to
// the generic dispatcher and the name registry.
type Evaluator struct {
	Ctx *calc.Context
	D   *dispatch.D
	Reg *registry.Registry
}

func New(ctx *calc.Context, d *dispatch.D, reg *registry.Registry) *Evaluator {
	return &Evaluator{Ctx: ctx, D: d, Reg: reg}
}

// Result pairs a statement's value with whether a trailing ';' suppressed
// printing it.
type Result struct {
	Value    *value.Value
	Suppress bool
}

// Run evaluates every statement of prog in order against the evaluator's
// registry, stopping (but still returning what ran so far) on the first
// pending error.
func (e *Evaluator) Run(prog *parser.Program) []Result {
	out := make([]Result, 0, len(prog.Stmts))
	for _, s := range prog.Stmts {
		v := e.Eval(s.Expr)
		out = append(out, Result{Value: v, Suppress: s.Suppress})
		if e.Ctx.Failed() {
			break
		}
	}
	return out
}

func (e *Evaluator) Eval(expr parser.Expr) *value.Value {
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	return expr.Accept(e).(*value.Value)
}

func (e *Evaluator) VisitLiteralExpr(expr *parser.Literal) interface{} {
	switch v := expr.Value.(type) {
	case lexer.Token:
		return numberLiteral(e.Ctx, v)
	case string:
		return value.NewString(v)
	case bool:
		return value.Bool(v)
	case nil:
		return value.Null
	}
	e.Ctx.Fail(bcerr.Syntax, "unrecognized literal")
	return value.Sentinel
}

func (e *Evaluator) VisitVariableExpr(expr *parser.Variable) interface{} {
	return e.Reg.Resolve(e.Ctx, expr.Name)
}

func (e *Evaluator) VisitAssignExpr(expr *parser.Assign) interface{} {
	v := e.Eval(expr.Value)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	e.Reg.Bind(expr.Name, v)
	return v
}

func (e *Evaluator) VisitUnaryExpr(expr *parser.UnaryExpr) interface{} {
	v := e.Eval(expr.Operand)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	switch expr.Operator {
	case "-":
		return e.D.Neg(e.Ctx, v)
	case "+":
		return v
	case "~":
		return e.D.BitNot(e.Ctx, v)
	}
	e.Ctx.Fail(bcerr.Syntax, "unknown unary operator %q", expr.Operator)
	return value.Sentinel
}

func (e *Evaluator) VisitBinaryExpr(expr *parser.Binary) interface{} {
	a := e.Eval(expr.Left)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	b := e.Eval(expr.Right)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	d := e.D
	switch expr.Operator {
	case "+":
		return d.Add(e.Ctx, a, b)
	case "-":
		return d.Sub(e.Ctx, a, b)
	case "*":
		return d.Mul(e.Ctx, a, b)
	case ".*":
		return d.MulElementwise(e.Ctx, a, b)
	case "/":
		return d.TrueDiv(e.Ctx, a, b)
	case "//":
		return d.FloorDiv(e.Ctx, a, b)
	case "%":
		return d.Mod(e.Ctx, a, b)
	case "**":
		return d.Pow(e.Ctx, a, b)
	case "^":
		if e.Ctx.JSMode {
			return d.BitXor(e.Ctx, a, b)
		}
		return d.Pow(e.Ctx, a, b)
	case "^^":
		return d.BitXor(e.Ctx, a, b)
	case "&":
		return d.BitAnd(e.Ctx, a, b)
	case "|":
		return d.BitOr(e.Ctx, a, b)
	case "<<":
		return d.Shl(e.Ctx, a, b)
	case ">>":
		return d.Shr(e.Ctx, a, b)
	case "==":
		return value.Bool(e.equal(a, b))
	case "!=":
		return value.Bool(!e.equal(a, b))
	case "<":
		return value.Bool(d.Cmp(e.Ctx, a, b) < 0)
	case ">":
		return value.Bool(d.Cmp(e.Ctx, a, b) > 0)
	case "<=":
		return value.Bool(d.Cmp(e.Ctx, a, b) <= 0)
	case ">=":
		return value.Bool(d.Cmp(e.Ctx, a, b) >= 0)
	}
	e.Ctx.Fail(bcerr.Syntax, "unknown binary operator %q", expr.Operator)
	return value.Sentinel
}

// equal extends d.Eq with the container kinds it deliberately leaves out.
func (e *Evaluator) equal(a, b *value.Value) bool {
	if a.Tag() != b.Tag() && !(a.Tag().IsNumeric() && b.Tag().IsNumeric()) {
		return false
	}
	switch a.Tag() {
	case kind.String:
		return container.StrEq(a, b)
	case kind.Range:
		return container.RangeEq(a, b)
	case kind.Array:
		ac, bc := a.AsArray(), b.AsArray()
		if len(ac) != len(bc) {
			return false
		}
		for i := range ac {
			if !e.equal(ac[i], bc[i]) {
				return false
			}
		}
		return true
	case kind.Tensor:
		ad, acells := a.AsTensor()
		bd, bcells := b.AsTensor()
		if len(ad) != len(bd) {
			return false
		}
		for i := range ad {
			if ad[i] != bd[i] {
				return false
			}
		}
		for i := range acells {
			if !e.equal(acells[i], bcells[i]) {
				return false
			}
		}
		return true
	case kind.Bool:
		return a.AsBool() == b.AsBool()
	case kind.Null:
		return true
	}
	return e.D.Eq(e.Ctx, a, b)
}

func (e *Evaluator) VisitCallExpr(expr *parser.CallExpr) interface{} {
	args := make([]*value.Value, len(expr.Args))
	for i, a := range expr.Args {
		args[i] = e.Eval(a)
		if e.Ctx.Failed() {
			return value.Sentinel
		}
	}
	callee := e.Eval(expr.Callee)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	switch callee.Tag() {
	case kind.Function:
		fn := callee.AsFunction()
		if !fn.VarArgs && len(args) != fn.Arity {
			e.Ctx.Fail(bcerr.Type, "%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args))
			return value.Sentinel
		}
		return fn.Call(e.Ctx, args)
	case kind.Polynomial:
		if len(args) != 1 {
			e.Ctx.Fail(bcerr.Type, "evaluating a polynomial takes exactly one argument")
			return value.Sentinel
		}
		return e.D.Poly.Eval(e.Ctx, callee, args[0])
	case kind.RationalFunction:
		if len(args) != 1 {
			e.Ctx.Fail(bcerr.Type, "evaluating a rational function takes exactly one argument")
			return value.Sentinel
		}
		return e.D.Poly.REval(e.Ctx, callee, args[0])
	}
	e.Ctx.Fail(bcerr.Type, "%s is not callable", callee.Type)
	return value.Sentinel
}

func (e *Evaluator) VisitListExpr(expr *parser.ListExpr) interface{} {
	elems := make([]*value.Value, len(expr.Elements))
	for i, el := range expr.Elements {
		elems[i] = e.Eval(el)
		if e.Ctx.Failed() {
			return value.Sentinel
		}
	}
	if e.Ctx.JSMode {
		return container.ArrayNew(elems)
	}
	return e.buildTensor(elems)
}

// buildTensor elaborates a non-JS-mode list literal into a Tensor: scalar
// rows promote their common element type and stack as a rank-1 tensor;
// rows that are themselves Tensors of matching shape stack one axis higher.
func (e *Evaluator) buildTensor(elems []*value.Value) *value.Value {
	if len(elems) == 0 {
		return value.NewTensor(kind.Plain(kind.Integer), []int{0}, nil)
	}
	if elems[0].Tag() == kind.Tensor {
		dims, _ := elems[0].AsTensor()
		elem := elems[0].Type.Elem
		var cells []*value.Value
		for _, row := range elems {
			if row.Tag() != kind.Tensor {
				e.Ctx.Fail(bcerr.Type, "cannot mix scalar and tensor rows")
				return value.Sentinel
			}
			rd, rc := row.AsTensor()
			if len(rd) != len(dims) {
				e.Ctx.Fail(bcerr.Type, "ragged tensor rows")
				return value.Sentinel
			}
			for i := range dims {
				if rd[i] != dims[i] {
					e.Ctx.Fail(bcerr.Type, "ragged tensor rows")
					return value.Sentinel
				}
			}
			if row.Type.Elem.Tag > elem.Tag {
				elem = row.Type.Elem
			}
			cells = append(cells, rc...)
		}
		newDims := append(append([]int{}, dims...), len(elems))
		return value.NewTensor(elem, newDims, cells)
	}
	elem := elems[0].Type
	for _, v := range elems {
		t := promoteKind(elem, v.Type)
		elem = t
	}
	cells := make([]*value.Value, len(elems))
	for i, v := range elems {
		cells[i] = e.D.Convert(e.Ctx, v, elem)
		if e.Ctx.Failed() {
			return value.Sentinel
		}
	}
	return value.NewTensor(elem, []int{len(elems)}, cells)
}

func promoteKind(a, b *kind.Type) *kind.Type {
	if b.Tag > a.Tag {
		return b
	}
	return a
}

func (e *Evaluator) VisitIndexExpr(expr *parser.IndexExpr) interface{} {
	obj := e.Eval(expr.Object)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	idxV := e.Eval(expr.Index)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	idx := e.asIndex(idxV)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	switch obj.Tag() {
	case kind.Array:
		return container.ArrayIndex(e.Ctx, obj, idx)
	case kind.String:
		return container.StrIndex(e.Ctx, obj, idx)
	case kind.Tensor:
		return tensor.Index(e.Ctx, obj, idx)
	}
	e.Ctx.Fail(bcerr.Type, "%s is not indexable", obj.Type)
	return value.Sentinel
}

func (e *Evaluator) VisitSliceExpr(expr *parser.SliceExpr) interface{} {
	obj := e.Eval(expr.Object)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	lo, hi, ok := e.evalBounds(expr.Lo, expr.Hi)
	if !ok {
		return value.Sentinel
	}
	switch obj.Tag() {
	case kind.Array:
		return container.ArraySlice(e.Ctx, obj, lo, hi)
	case kind.String:
		return container.StrSlice(e.Ctx, obj, lo, hi)
	case kind.Tensor:
		return tensor.Slice(e.Ctx, obj, lo, hi)
	}
	e.Ctx.Fail(bcerr.Type, "%s is not sliceable", obj.Type)
	return value.Sentinel
}

func (e *Evaluator) evalBounds(loExpr, hiExpr parser.Expr) (lo, hi *int64, ok bool) {
	if loExpr != nil {
		v := e.Eval(loExpr)
		if e.Ctx.Failed() {
			return nil, nil, false
		}
		i := e.asIndex(v)
		if e.Ctx.Failed() {
			return nil, nil, false
		}
		lo = &i
	}
	if hiExpr != nil {
		v := e.Eval(hiExpr)
		if e.Ctx.Failed() {
			return nil, nil, false
		}
		i := e.asIndex(v)
		if e.Ctx.Failed() {
			return nil, nil, false
		}
		hi = &i
	}
	return lo, hi, true
}

func (e *Evaluator) asIndex(v *value.Value) int64 {
	iv := e.D.Convert(e.Ctx, v, kind.Plain(kind.Integer))
	if e.Ctx.Failed() {
		return 0
	}
	i := iv.AsInteger()
	if !i.IsInt64() {
		e.Ctx.Fail(bcerr.Range, "index out of range")
		return 0
	}
	return i.Int64()
}

func (e *Evaluator) VisitSetIndexExpr(expr *parser.SetIndexExpr) interface{} {
	v := e.Eval(expr.Value)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	name, ok := expr.Object.(*parser.Variable)
	if !ok {
		e.Ctx.Fail(bcerr.Syntax, "index assignment requires a variable target")
		return value.Sentinel
	}
	obj := e.Reg.Resolve(e.Ctx, name.Name)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	idxV := e.Eval(expr.Index)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	idx := e.asIndex(idxV)
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	var updated *value.Value
	switch obj.Tag() {
	case kind.Array:
		updated = container.ArraySet(e.Ctx, obj, idx, v)
	case kind.Tensor:
		conv := e.D.Convert(e.Ctx, v, obj.Type.Elem)
		if e.Ctx.Failed() {
			return value.Sentinel
		}
		updated = tensor.SetIndex(e.Ctx, obj, idx, conv)
	default:
		e.Ctx.Fail(bcerr.Type, "%s does not support index assignment", obj.Type)
		return value.Sentinel
	}
	if e.Ctx.Failed() {
		return value.Sentinel
	}
	e.Reg.Bind(name.Name, updated)
	return v
}
