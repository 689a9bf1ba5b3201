// internal/repl/repl.go
package repl

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"bc/internal/calc"
	"bc/internal/dispatch"
	"bc/internal/eval"
	"bc/internal/format"
	"bc/internal/lexer"
	"bc/internal/parser"
	"bc/internal/registry"
)

const helpText = `directives:
  \h              this help
  \d              decimal output
  \x              hex output
  \p [n [e]]      set decimal precision to n digits (exponent span e); bare presets d64, d128
  \bp [n [e]]     set binary precision to n bits (exponent bits e); bare presets f16, f32, f64, f128
  \js             toggle JS mode
  \q              quit`

const errColor = "\x1b[31m"
const resetColor = "\x1b[0m"

// Start runs the interactive REPL: read a line, parse it as one or more
// ';'-separated statements, evaluate each against a process-long Context
// and registry, print non-suppressed results, and loop.
// hexOutput and jsMode seed the Context from the CLI's `-H`/`-j` flags.
func Start(hexOutput, jsMode bool) {
	ctx := calc.New()
	ctx.HexOutput = hexOutput
	ctx.JSMode = jsMode
	d := dispatch.New()
	reg := registry.New()
	registry.Install(reg, d)
	ev := eval.New(ctx, d, reg)

	colorErr := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("bc | \\h for help, \\q to quit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, `\`) {
			if !directive(ctx, line) {
				break
			}
			continue
		}

		tokens := lexer.NewScanner(line).ScanTokens()
		p := parser.NewParser(tokens)
		p.JSMode = ctx.JSMode
		prog := p.Parse()
		results := ev.Run(prog)

		for _, r := range results {
			if r.Suppress {
				continue
			}
			fmt.Println(format.Render(ctx, d, r.Value))
		}
		if ctx.Failed() {
			e := ctx.Err.Take()
			if colorErr {
				fmt.Fprintln(os.Stderr, errColor+e.Error()+resetColor)
			} else {
				fmt.Fprintln(os.Stderr, e.Error())
			}
		}
	}
}

// directive handles one REPL `\`-prefixed line, returning false on `\q`.
func directive(ctx *calc.Context, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case `\h`:
		fmt.Println(helpText)
	case `\d`:
		ctx.HexOutput = false
	case `\x`:
		ctx.HexOutput = true
	case `\js`:
		ctx.JSMode = !ctx.JSMode
	case `\p`:
		setDecimalPrecision(ctx, fields[1:])
	case `\bp`:
		setBinaryPrecision(ctx, fields[1:])
	case `\q`:
		return false
	default:
		fmt.Fprintf(os.Stderr, "SyntaxError: unknown directive %q\n", fields[0])
	}
	return true
}

func setDecimalPrecision(ctx *calc.Context, args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "d64":
		ctx.DecPrecision = calc.DecimalPresetD64
		return
	case "d128":
		ctx.DecPrecision = calc.DecimalPresetD128
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "SyntaxError: %v\n", err)
		return
	}
	ctx.DecPrecision = int32(n)
	if len(args) > 1 {
		if e, err := strconv.Atoi(args[1]); err == nil {
			ctx.DecMaxExp = int32(e)
			ctx.DecMinExp = -int32(e)
		}
	}
}

func setBinaryPrecision(ctx *calc.Context, args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "f16":
		ctx.BinPrecision = calc.BinaryPresetF16
		return
	case "f32":
		ctx.BinPrecision = calc.BinaryPresetF32
		return
	case "f64":
		ctx.BinPrecision = calc.BinaryPresetF64
		return
	case "f128":
		ctx.BinPrecision = calc.BinaryPresetF128
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "SyntaxError: %v\n", err)
		return
	}
	ctx.BinPrecision = uint(n)
	if len(args) > 1 {
		if e, err := strconv.Atoi(args[1]); err == nil {
			ctx.BinExpBits = int32(e)
		}
	}
}
