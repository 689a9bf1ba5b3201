// Package calc holds the calculator's process-wide context:
// current decimal/binary precision and rounding, output mode, and the
// pending-error slot. One Context is created at startup (cmd/bc) and
// threaded explicitly through every operation that can fail or that is
// precision-sensitive — an explicit, idiomatic-Go stand-in for the kind
// of process-wide global state a C calculator would keep.
package calc

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"bc/internal/bcerr"
)

// Named decimal precision presets for the \p directive.
const (
	DecimalPresetD64  = 19
	DecimalPresetD128 = 34
)

// Named binary precision presets (bits of significand) for the \bp
// directive, matching IEEE binary16/32/64/128.
const (
	BinaryPresetF16  = 11
	BinaryPresetF32  = 24
	BinaryPresetF64  = 53
	BinaryPresetF128 = 113
)

// Context is the calculator's per-session configuration plus its single
// pending-error slot.
type Context struct {
	Err *bcerr.Slot

	// Decimal precision: significant digits and exponent span.
	DecPrecision int32
	DecMinExp    int32
	DecMaxExp    int32

	// Binary float precision: significand bits and exponent bits.
	BinPrecision uint
	BinExpBits   int32

	HexOutput bool // \x / -H
	JSMode    bool // \js / -j

	decimalConstants map[int32]map[string]*apd.Decimal
}

// New creates a Context with the calculator's default mode: decimal
// precision ~16 significant digits, binary float64 precision, decimal output, non-JS mode.
func New() *Context {
	return &Context{
		Err:              &bcerr.Slot{},
		DecPrecision:     16,
		DecMinExp:        -apd.MaxExponent,
		DecMaxExp:        apd.MaxExponent,
		BinPrecision:     BinaryPresetF64,
		BinExpBits:       11,
		decimalConstants: make(map[int32]map[string]*apd.Decimal),
	}
}

// ApdContext returns an apd.Context configured at the current decimal
// precision, ties-to-away rounding.
func (c *Context) ApdContext() *apd.Context {
	return &apd.Context{
		Precision:   uint32(c.DecPrecision),
		MaxExponent: c.DecMaxExp,
		MinExponent: c.DecMinExp,
		Rounding:    apd.RoundHalfUp,
	}
}

// BigFloatPrecision returns the math/big.Float precision in bits for the
// current binary-float mode.
func (c *Context) BigFloatPrecision() uint {
	return c.BinPrecision
}

// NewBigFloat allocates a big.Float at the context's current precision.
func (c *Context) NewBigFloat() *big.Float {
	return new(big.Float).SetPrec(c.BigFloatPrecision())
}

// DecimalConstant returns a cached transcendental decimal constant (e.g.
// "pi", "e") at the current precision, or false if not cached — callers
// compute and Cache it on a miss. The cache is keyed by precision so a
// precision change (via \p) naturally invalidates stale entries on next
// access.
func (c *Context) DecimalConstant(name string) (*apd.Decimal, bool) {
	byName, ok := c.decimalConstants[c.DecPrecision]
	if !ok {
		return nil, false
	}
	d, ok := byName[name]
	return d, ok
}

// CacheDecimalConstant stores a freshly computed constant for the current
// precision.
func (c *Context) CacheDecimalConstant(name string, d *apd.Decimal) {
	byName, ok := c.decimalConstants[c.DecPrecision]
	if !ok {
		byName = make(map[string]*apd.Decimal)
		c.decimalConstants[c.DecPrecision] = byName
	}
	byName[name] = d
}

// Fail sets the pending-error slot; callers should return value.Sentinel
// (a package-level singleton) immediately afterward.
func (c *Context) Fail(k bcerr.Kind, format string, args ...interface{}) {
	c.Err.Set(k, format, args...)
}

// Failed reports whether an error is currently pending.
func (c *Context) Failed() bool {
	return c.Err.IsSet()
}
