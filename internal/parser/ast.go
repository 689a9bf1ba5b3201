package parser

// Expr is any parsed expression node.
type Expr interface {
	Accept(visitor ExprVisitor) interface{}
}

// Binary expression: a + b, a**b, a == b, ...
type Binary struct {
	Left     Expr
	Operator string
	Right    Expr
}

func (b *Binary) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitBinaryExpr(b)
}

// Literal wraps a scanned number, string, bool, or null token.
type Literal struct {
	Value interface{}
}

func (l *Literal) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitLiteralExpr(l)
}

// Variable is a bare identifier resolved against the registry.
type Variable struct {
	Name string
}

func (v *Variable) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitVariableExpr(v)
}

// Assign rebinds an identifier: x = expr.
type Assign struct {
	Name  string
	Value Expr
}

func (a *Assign) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitAssignExpr(a)
}

// CallExpr is postfix function application: callee(args...).
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitCallExpr(c)
}

// ListExpr is a bracketed literal `[a, b, c]`; the evaluator elaborates it
// into an Array or a Tensor row depending on mode and element uniformity.
type ListExpr struct {
	Elements []Expr
}

func (a *ListExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitListExpr(a)
}

// IndexExpr is postfix `x[i]`.
type IndexExpr struct {
	Object Expr
	Index  Expr
}

func (i *IndexExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitIndexExpr(i)
}

// SliceExpr is postfix `x[lo:hi]`; either bound may be nil for an open end.
type SliceExpr struct {
	Object Expr
	Lo, Hi Expr
}

func (s *SliceExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitSliceExpr(s)
}

// SetIndexExpr is postfix-assignment: x[i] = value.
type SetIndexExpr struct {
	Object Expr
	Index  Expr
	Value  Expr
}

func (s *SetIndexExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitSetIndexExpr(s)
}

// UnaryExpr is prefix +, -, ~.
type UnaryExpr struct {
	Operator string
	Operand  Expr
}

func (u *UnaryExpr) Accept(visitor ExprVisitor) interface{} {
	return visitor.VisitUnaryExpr(u)
}

type ExprVisitor interface {
	VisitBinaryExpr(expr *Binary) interface{}
	VisitLiteralExpr(expr *Literal) interface{}
	VisitVariableExpr(expr *Variable) interface{}
	VisitAssignExpr(expr *Assign) interface{}
	VisitCallExpr(expr *CallExpr) interface{}
	VisitListExpr(expr *ListExpr) interface{}
	VisitIndexExpr(expr *IndexExpr) interface{}
	VisitSliceExpr(expr *SliceExpr) interface{}
	VisitSetIndexExpr(expr *SetIndexExpr) interface{}
	VisitUnaryExpr(expr *UnaryExpr) interface{}
}
