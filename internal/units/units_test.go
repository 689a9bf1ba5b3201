package units

import (
	"math/big"
	"testing"
)

func newFloat(x float64) *big.Float {
	return new(big.Float).SetPrec(53).SetFloat64(x)
}

func TestConvertLength(t *testing.T) {
	got, err := Convert(newFloat(1), "km", "m")
	if err != nil {
		t.Fatal(err)
	}
	want := newFloat(1000)
	if got.Cmp(want) != 0 {
		t.Fatalf("got %s, want %s", got.Text('g', -1), want.Text('g', -1))
	}
}

func TestConvertIncompatibleDimensions(t *testing.T) {
	if _, err := Convert(newFloat(1), "m", "kg"); err == nil {
		t.Fatal("expected an error converting between incompatible dimensions")
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	if _, err := Convert(newFloat(1), "m", "parsec"); err == nil {
		t.Fatal("expected an error for an unknown unit")
	}
}

// TestConvertTemperatureRoundingArtifact confirms that routing 100 degrees
// Celsius through the shared Kelvin base lands just under 212 degrees
// Fahrenheit rather than exactly on it.
func TestConvertTemperatureRoundingArtifact(t *testing.T) {
	got, err := Convert(newFloat(100), "°C", "°F")
	if err != nil {
		t.Fatal(err)
	}
	exact := newFloat(212)
	if got.Cmp(exact) == 0 {
		t.Fatal("expected a float-rounding artifact, not an exact 212")
	}
	diff := new(big.Float).Sub(got, exact)
	diff.Abs(diff)
	if diff.Cmp(newFloat(1e-9)) >= 0 {
		t.Fatalf("result %s too far from 212", got.Text('g', -1))
	}
}
