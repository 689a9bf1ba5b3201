package parser

import (
	"fmt"
	"testing"

	"bc/internal/lexer"
)

func parseString(input string) (prog *Program, errs []error) {
	defer func() {
		if r := recover(); r != nil {
			errs = append(errs, fmt.Errorf("parser panic: %v", r))
			prog = nil
		}
	}()
	scanner := lexer.NewScanner(input)
	tokens := scanner.ScanTokens()
	p := NewParser(tokens)
	prog = p.Parse()
	errs = p.Errors
	return
}

func assertParseSuccess(t *testing.T, input, description string) *Program {
	t.Helper()
	prog, errs := parseString(input)
	if len(errs) > 0 {
		t.Errorf("%s: parsing %q failed: %v", description, input, errs)
		return nil
	}
	return prog
}

func TestLiteralsAndIdentifiers(t *testing.T) {
	tests := []string{
		"5", "3.14", "0x1F", "0b1010", "1e10", "1.5e-3", "2i", "1l", "1.5li",
		`"hello"`, `'world'`, "true", "false", "null", "x", "PI",
	}
	for _, in := range tests {
		assertParseSuccess(t, in, in)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	prog := assertParseSuccess(t, "1+2*3", "mul binds tighter than add")
	if prog == nil {
		return
	}
	bin, ok := prog.Stmts[0].Expr.(*Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level '+', got %#v", prog.Stmts[0].Expr)
	}
	if _, ok := bin.Right.(*Binary); !ok {
		t.Fatalf("expected right side to be the '*' subexpression")
	}
}

func TestPowerRightAssociative(t *testing.T) {
	prog := assertParseSuccess(t, "2**3**2", "exponentiation is right-assoc")
	if prog == nil {
		return
	}
	bin, ok := prog.Stmts[0].Expr.(*Binary)
	if !ok || bin.Operator != "**" {
		t.Fatalf("expected top-level '**'")
	}
	if lit, ok := bin.Left.(*Literal); !ok || fmt.Sprint(lit.Value) == "" {
		_ = lit
	}
	if _, ok := bin.Right.(*Binary); !ok {
		t.Fatalf("expected right-associative grouping, got %#v", bin.Right)
	}
}

func TestCaretAsPowerOutsideJSMode(t *testing.T) {
	scanner := lexer.NewScanner("2^10")
	p := NewParser(scanner.ScanTokens())
	prog := p.Parse()
	if len(p.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	bin := prog.Stmts[0].Expr.(*Binary)
	if bin.Operator != "^" {
		t.Fatalf("expected '^' to parse as the top operator, got %q", bin.Operator)
	}
}

func TestCaretAsXorInJSMode(t *testing.T) {
	scanner := lexer.NewScanner("1^2|3")
	p := NewParser(scanner.ScanTokens())
	p.JSMode = true
	prog := p.Parse()
	if len(p.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	bin := prog.Stmts[0].Expr.(*Binary)
	if bin.Operator != "|" {
		t.Fatalf("expected '|' at the top (lowest precedence), got %q", bin.Operator)
	}
}

func TestIndexAndSlice(t *testing.T) {
	prog := assertParseSuccess(t, "x[1]", "index")
	if prog == nil {
		return
	}
	if _, ok := prog.Stmts[0].Expr.(*IndexExpr); !ok {
		t.Fatalf("expected IndexExpr, got %#v", prog.Stmts[0].Expr)
	}
	prog = assertParseSuccess(t, "x[1:3]", "slice")
	if prog == nil {
		return
	}
	if _, ok := prog.Stmts[0].Expr.(*SliceExpr); !ok {
		t.Fatalf("expected SliceExpr, got %#v", prog.Stmts[0].Expr)
	}
}

func TestCallExpr(t *testing.T) {
	prog := assertParseSuccess(t, "gcd(12, 18)", "call with two args")
	if prog == nil {
		return
	}
	call, ok := prog.Stmts[0].Expr.(*CallExpr)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected 2-arg call, got %#v", prog.Stmts[0].Expr)
	}
}

func TestListLiteral(t *testing.T) {
	prog := assertParseSuccess(t, "[1, 2, 3]", "list literal")
	if prog == nil {
		return
	}
	if l, ok := prog.Stmts[0].Expr.(*ListExpr); !ok || len(l.Elements) != 3 {
		t.Fatalf("expected 3-element list, got %#v", prog.Stmts[0].Expr)
	}
}

func TestAssignment(t *testing.T) {
	prog := assertParseSuccess(t, "x = 5", "assignment")
	if prog == nil {
		return
	}
	if _, ok := prog.Stmts[0].Expr.(*Assign); !ok {
		t.Fatalf("expected Assign, got %#v", prog.Stmts[0].Expr)
	}
}

func TestTrailingSemicolonSuppresses(t *testing.T) {
	prog := assertParseSuccess(t, "1+1; 2+2", "mixed suppress")
	if prog == nil {
		return
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
	if !prog.Stmts[0].Suppress {
		t.Errorf("expected first statement to be suppressed")
	}
	if prog.Stmts[1].Suppress {
		t.Errorf("expected second (last, no trailing ';') statement to print")
	}
}
