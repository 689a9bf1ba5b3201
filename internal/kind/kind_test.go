package kind

import "testing"

func TestMaxOrdering(t *testing.T) {
	if got := Max(Integer, Decimal); got != Decimal {
		t.Fatalf("got %v", got)
	}
	if got := Max(Series, Bool); got != Series {
		t.Fatalf("got %v", got)
	}
}

func TestIsNumeric(t *testing.T) {
	for _, tg := range []Tag{Integer, Fraction, Decimal, Float, Complex, Polynomial, RationalFunction, Series} {
		if !tg.IsNumeric() {
			t.Fatalf("%v expected numeric", tg)
		}
	}
	for _, tg := range []Tag{Bool, Tensor, Array, Function, String, Null, Range} {
		if tg.IsNumeric() {
			t.Fatalf("%v unexpectedly numeric", tg)
		}
	}
}

func TestPlainAndOfElem(t *testing.T) {
	p := Plain(Integer)
	if p.Tag != Integer || p.Elem != nil {
		t.Fatalf("Plain: got %+v", p)
	}
	o := Of(Complex, Plain(Decimal))
	if o.Tag != Complex || o.Elem.Tag != Decimal {
		t.Fatalf("Of: got %+v", o)
	}
}

func TestEqual(t *testing.T) {
	a := Of(Tensor, Plain(Integer))
	b := Of(Tensor, Plain(Integer))
	if !Equal(a, b) {
		t.Fatal("expected structurally equal types to compare equal")
	}
	c := Of(Tensor, Plain(Decimal))
	if Equal(a, c) {
		t.Fatal("expected different element types to compare unequal")
	}
}

func TestStringNames(t *testing.T) {
	if Integer.String() != "Integer" {
		t.Fatalf("got %q", Integer.String())
	}
	if Tag(999).String() != "Unknown" {
		t.Fatalf("got %q", Tag(999).String())
	}
}
