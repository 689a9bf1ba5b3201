// cmd/bc/main.go
package main

import (
	"fmt"
	"os"

	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/eval"
	"bc/internal/format"
	"bc/internal/lexer"
	"bc/internal/parser"
	"bc/internal/registry"
	"bc/internal/repl"
	"bc/internal/selftest"
)

func main() {
	os.Exit(run())
}

// run parses os.Args and dispatches to the self-test runner, a single
// `-e` evaluation, or the REPL, returning the process exit code. Split
// out of main so cmd/bc's own testscript harness can invoke it directly
// as a registered in-process command.
func run() int {
	args := os.Args[1:]

	var (
		hexOutput bool
		jsMode    bool
		selfTest  bool
		expr      string
		haveExpr  bool
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			showUsage()
			return 0
		case "-H":
			hexOutput = true
		case "-j":
			jsMode = true
		case "-t":
			selfTest = true
		case "-e":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "SyntaxError: -e requires an expression argument")
				return 1
			}
			i++
			expr = args[i]
			haveExpr = true
		default:
			fmt.Fprintf(os.Stderr, "SyntaxError: unknown flag %q\n", args[i])
			return 1
		}
	}

	if selfTest {
		return selftest.Report()
	}

	if haveExpr {
		return runExpr(expr, hexOutput, jsMode)
	}

	repl.Start(hexOutput, jsMode)
	return 0
}

// runExpr evaluates a single `-e` expression and prints its
// non-suppressed results, matching the REPL's own print policy
//. Returns the process exit code.
func runExpr(src string, hexOutput, jsMode bool) int {
	ctx := calc.New()
	ctx.HexOutput = hexOutput
	ctx.JSMode = jsMode
	d := dispatch.New()
	reg := registry.New()
	registry.Install(reg, d)
	ev := eval.New(ctx, d, reg)

	tokens := lexer.NewScanner(src).ScanTokens()
	prog := parser.NewParser(tokens).Parse()
	results := ev.Run(prog)

	for _, r := range results {
		if !r.Suppress {
			fmt.Println(format.Render(ctx, d, r.Value))
		}
	}
	if ctx.Failed() {
		fmt.Fprintln(os.Stderr, ctx.Err.Take().Error())
		return 1
	}
	return 0
}

func showUsage() {
	fmt.Println("bc - arbitrary-precision symbolic calculator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bc                 start the interactive REPL")
	fmt.Println("  bc -e EXPR         evaluate EXPR and exit")
	fmt.Println("  bc -t              run the built-in self-test")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h   show this help")
	fmt.Println("  -H   hex output")
	fmt.Println("  -j   JS mode (array/tensor literal disambiguation, JS-style printing)")
	fmt.Println("  -t   run self-test and exit (0 pass, 1 fail)")
	fmt.Println("  -e EXPR   evaluate EXPR and exit")
}
