// Package selftest implements the `-t` CLI flag: it re-runs a built-in
// scenario table in-process against a fresh Context/Evaluator and reports
// any mismatch, a single table-driven pass rather than a whole tests/ tree.
package selftest

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/dustin/go-humanize"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/eval"
	"bc/internal/format"
	"bc/internal/kind"
	"bc/internal/lexer"
	"bc/internal/parser"
	"bc/internal/registry"
	"bc/internal/value"
)

// scenario is one entry of the scenario/error-scenario tables below.
// Exactly one of Want, WantErr, or Check is set.
type scenario struct {
	Name    string
	Expr    string
	Want    string
	WantErr bcerr.Kind
	Check   func(ctx *calc.Context, d *dispatch.D, got *value.Value) bool
}

// scenarios is the full table, run in declaration order.
var scenarios = []scenario{
	{Name: "rational power", Expr: `(3//5)^10`, Want: "59049//9765625"},
	{Name: "modular inverse", Expr: `invmod(3, 101)`, Want: "34"},
	{Name: "integer square root floors", Expr: `isqrt(50)`, Want: "7"},
	{
		Name: "factor",
		Expr: `factor((2^89-1)*2^3*11*13^2*1009)`,
		Want: "Array(2, 2, 2, 11, 13, 13, 1009, 618970019642690137449562111)",
	},
	{
		Name: "characteristic polynomial of a Hilbert matrix",
		Expr: `charpoly(mathilbert(4))`,
		Want: "1//1*X^4-176//105*X^3+3341//12600*X^2-41//23625*X+1//6048000",
	},
	{
		Name: "series power",
		Expr: `(1+X+O(X^5))^(2+X)`,
		Want: "1.0+2.0*X+2.0*X^2+1.500000000000001*X^3+0.8333333333333333*X^4+0.4166666666666666*X^5+O(X^6)",
	},
	{
		Name:  "polynomial roots",
		Expr:  `polroots((X-1)*(X-2)*(X-3)*(X-4)*(X-0.1))`,
		Check: checkPolRoots,
	},
	{
		Name: "unit conversion rounding",
		Expr: `convert(100, "°C", "°F")`,
		Want: "211.9999999999999",
	},
	{
		Name: "kernel of a singular matrix",
		Expr: `ker([[1,2,1],[-2,-3,1],[3,5,0]])`,
		Want: "[[5//1], [-3//1], [1//1]]",
	},

	{Name: "true division of two integers is decimal", Expr: `1/2`, Want: "0.5"},
	{Name: "floor division of two integers is an exact fraction", Expr: `1//2`, Want: "1//2"},

	// error scenarios
	{Name: "division by zero is not an error", Expr: `1/0`, Want: "Inf"},
	{Name: "non-invertible modulus", Expr: `invmod(2, 4)`, WantErr: bcerr.Range},
	{Name: "string plus number", Expr: `"abc" + 1`, WantErr: bcerr.Type},
	{Name: "unbound identifier", Expr: `a`, WantErr: bcerr.Reference},
	{Name: "string index out of range", Expr: `"abc"[10]`, WantErr: bcerr.Range},
}

// checkPolRoots verifies polroots((X-1)(X-2)(X-3)(X-4)(X-0.1)) returns five
// complex roots matching {0.1, 1, 2, 3, 4} as a set, each within 1e-9.
func checkPolRoots(ctx *calc.Context, d *dispatch.D, got *value.Value) bool {
	if got.Tag() != kind.Tensor {
		return false
	}
	_, cells := got.AsTensor()
	want := []complex128{0.1, 1, 2, 3, 4}
	if len(cells) != len(want) {
		return false
	}
	used := make([]bool, len(want))
	for _, c := range cells {
		z := toComplex128(ctx, d, c)
		matched := false
		for i, w := range want {
			if used[i] {
				continue
			}
			if cmplx.Abs(z-complex(w, 0)) < 1e-9 {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func toComplex128(ctx *calc.Context, d *dispatch.D, v *value.Value) complex128 {
	f64 := func(x *value.Value) float64 {
		r, _ := d.Convert(ctx, x, kind.Plain(kind.Float)).AsFloat().Float64()
		return r
	}
	if v.Tag() == kind.Complex {
		re, im := v.AsComplex()
		return complex(f64(re), f64(im))
	}
	return complex(f64(v), 0)
}

// Failure describes one scenario that did not reproduce its expected
// output.
type Failure struct {
	Name string
	Expr string
	Want string
	Got  string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s\n  want: %s\n  got:  %s", f.Name, f.Expr, f.Want, f.Got)
}

// Run evaluates every scenario against a fresh Context/Evaluator pair and
// returns the ones whose output didn't match.
func Run() []Failure {
	var failures []Failure
	for _, s := range scenarios {
		if f, ok := runOne(s); !ok {
			failures = append(failures, f)
		}
	}
	return failures
}

func runOne(s scenario) (Failure, bool) {
	ctx := calc.New()
	d := dispatch.New()
	reg := registry.New()
	registry.Install(reg, d)
	ev := eval.New(ctx, d, reg)

	tokens := lexer.NewScanner(s.Expr).ScanTokens()
	prog := parser.NewParser(tokens).Parse()
	results := ev.Run(prog)

	if s.WantErr != "" {
		if !ctx.Failed() {
			return Failure{Name: s.Name, Expr: s.Expr, Want: string(s.WantErr), Got: "no error"}, false
		}
		got := ctx.Err.Peek().Kind
		if got != s.WantErr {
			return Failure{Name: s.Name, Expr: s.Expr, Want: string(s.WantErr), Got: string(got)}, false
		}
		return Failure{}, true
	}

	if ctx.Failed() {
		return Failure{Name: s.Name, Expr: s.Expr, Want: s.Want, Got: ctx.Err.Peek().Error()}, false
	}
	if len(results) == 0 {
		return Failure{Name: s.Name, Expr: s.Expr, Want: s.Want, Got: "no result"}, false
	}
	last := results[len(results)-1].Value

	if s.Check != nil {
		if !s.Check(ctx, d, last) {
			return Failure{Name: s.Name, Expr: s.Expr, Want: "(set-matched roots within 1e-9)", Got: format.Render(ctx, d, last)}, false
		}
		return Failure{}, true
	}

	got := format.Render(ctx, d, last)
	if got != s.Want {
		return Failure{Name: s.Name, Expr: s.Expr, Want: s.Want, Got: got}, false
	}
	return Failure{}, true
}

// Report prints a humanized pass/fail summary and returns the process exit
// code: 0 on success, 1 if any scenario failed. This is the exit code
// `-t` reports to the shell.
func Report() int {
	failures := Run()
	total := len(scenarios)
	passed := total - len(failures)
	if len(failures) == 0 {
		fmt.Printf("self-test: %s passed\n", humanize.Comma(int64(passed)))
		return 0
	}
	fmt.Printf("self-test: %s passed, %s failed\n", humanize.Comma(int64(passed)), humanize.Comma(int64(len(failures))))
	for _, f := range failures {
		fmt.Println(strings.TrimRight(f.String(), "\n"))
	}
	return 1
}
