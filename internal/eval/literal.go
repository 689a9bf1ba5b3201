package eval

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/lexer"
	"bc/internal/value"
)

// numberLiteral converts a scanned NUMBER token into a Value, covering
// every literal form: optional 0x/0b radix, '.'-decimal or hex-float
// point, 'e'/'E' (decimal) or 'p'/'P' (hex-float) exponent, and the 'l'
// (force binary float) / 'i' (imaginary) suffixes.
func numberLiteral(ctx *calc.Context, tok lexer.Token) *value.Value {
	text := tok.Lexeme
	suffixLen := 0
	if tok.IsImag {
		suffixLen++
	}
	if tok.IsBinary {
		suffixLen++
	}
	digits := text[:len(text)-suffixLen]

	var real *value.Value
	switch {
	case tok.HexRadix && tok.IsFloat:
		real = hexFloatLiteral(ctx, digits)
	case tok.HexRadix:
		real = intLiteral(digits[2:], 16)
	case tok.BinRadix:
		real = intLiteral(digits[2:], 2)
	case tok.IsFloat && tok.IsBinary:
		real = binaryFloatLiteral(ctx, digits)
	case tok.IsFloat:
		real = decimalLiteral(ctx, digits)
	case tok.IsBinary:
		real = binaryFloatLiteral(ctx, digits)
	default:
		real = intLiteral(digits, 10)
	}

	if tok.IsImag {
		elem := real.Type
		return value.NewComplex(elem, zeroOfKind(ctx, elem), real)
	}
	return real
}

func zeroOfKind(ctx *calc.Context, elem *kind.Type) *value.Value {
	switch elem.Tag {
	case kind.Integer:
		return value.NewInteger(big.NewInt(0))
	case kind.Decimal:
		d, _, _ := apd.NewFromString("0")
		return value.NewDecimal(d)
	case kind.Float:
		return value.NewFloat(new(big.Float).SetPrec(ctx.BigFloatPrecision()))
	}
	return value.NewInteger(big.NewInt(0))
}

func intLiteral(digits string, base int) *value.Value {
	n := new(big.Int)
	n.SetString(digits, base)
	return value.NewInteger(n)
}

func decimalLiteral(ctx *calc.Context, text string) *value.Value {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		ctx.Fail(bcerr.Syntax, "invalid decimal literal %q", text)
		return value.Sentinel
	}
	rd := new(apd.Decimal)
	ctx.ApdContext().Round(rd, d)
	return value.NewDecimal(rd)
}

func binaryFloatLiteral(ctx *calc.Context, text string) *value.Value {
	f, _, err := big.ParseFloat(text, 10, ctx.BigFloatPrecision(), big.ToNearestEven)
	if err != nil {
		ctx.Fail(bcerr.Syntax, "invalid binary float literal %q", text)
		return value.Sentinel
	}
	return value.NewFloat(f)
}

// hexFloatLiteral relies on math/big's native support (since Go 1.13) for
// C99-style hex-float syntax ("0x1.8p3"): base 0 lets ParseFloat recognize
// the "0x" prefix and "p" exponent itself.
func hexFloatLiteral(ctx *calc.Context, text string) *value.Value {
	f, _, err := big.ParseFloat(text, 0, ctx.BigFloatPrecision(), big.ToNearestEven)
	if err != nil {
		ctx.Fail(bcerr.Syntax, "invalid hex float literal %q", text)
		return value.Sentinel
	}
	return value.NewFloat(f)
}
