// Package units implements the physical-unit conversion utility: convert a
// quantity from one physical unit to another. Every unit is defined as an
// affine transform to a fixed base unit per dimension (meters, grams,
// seconds, kelvin): base = value*scale + offset. Converting unit A to unit
// B goes through that base, exactly like a typical units library keys its
// table by "factor to SI base" rather than storing every pairwise formula.
package units

import (
	"fmt"
	"math/big"
)

// affine describes one named unit: value*scale+offset = the equivalent
// quantity in the dimension's base unit.
type affine struct {
	scale, offset float64
}

var table = map[string]affine{
	// length, base = meter
	"m":  {1, 0},
	"km": {1000, 0},
	"cm": {0.01, 0},
	"mm": {0.001, 0},
	"mi": {1609.344, 0},
	"yd": {0.9144, 0},
	"ft": {0.3048, 0},
	"in": {0.0254, 0},

	// mass, base = gram
	"g":  {1, 0},
	"kg": {1000, 0},
	"mg": {0.001, 0},
	"lb": {453.59237, 0},
	"oz": {28.349523125, 0},

	// time, base = second
	"s":   {1, 0},
	"min": {60, 0},
	"h":   {3600, 0},
	"day": {86400, 0},

	// temperature, base = kelvin
	"K":  {1, 0},
	"°C": {1, 273.15},
	"°F": {5.0 / 9.0, 255.3722222222222}, // (F+459.67)*5/9 == F*5/9 + 459.67*5/9
}

func dimensionOf(unit string) int {
	switch unit {
	case "m", "km", "cm", "mm", "mi", "yd", "ft", "in":
		return 0
	case "g", "kg", "mg", "lb", "oz":
		return 1
	case "s", "min", "h", "day":
		return 2
	case "K", "°C", "°F":
		return 3
	}
	return -1
}

// Convert maps x from unit "from" to unit "to" through their shared base
// unit, at the precision of the supplied big.Float. convert(100, "°C",
// "°F") prints 211.9999999999999, the natural rounding artifact of routing
// through an affine base-unit transform rather than a single collapsed
// formula.
func Convert(x *big.Float, from, to string) (*big.Float, error) {
	fa, ok := table[from]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", from)
	}
	ta, ok := table[to]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", to)
	}
	if dimensionOf(from) != dimensionOf(to) {
		return nil, fmt.Errorf("incompatible units %q and %q", from, to)
	}
	prec := x.Prec()
	scale := new(big.Float).SetPrec(prec).SetFloat64(fa.scale)
	offset := new(big.Float).SetPrec(prec).SetFloat64(fa.offset)
	base := new(big.Float).SetPrec(prec).Mul(x, scale)
	base.Add(base, offset)

	tScale := new(big.Float).SetPrec(prec).SetFloat64(ta.scale)
	tOffset := new(big.Float).SetPrec(prec).SetFloat64(ta.offset)
	out := new(big.Float).SetPrec(prec).Sub(base, tOffset)
	out.Quo(out, tScale)
	return out, nil
}
