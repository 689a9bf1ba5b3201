// Package numeric implements the scalar operation contracts: per-kind
// constructors, binary/unary operations, and conversions for Integer,
// Fraction, Decimal, Float, and Complex. Every function here reports
// failures through the Context's pending-error slot and returns
// value.Sentinel.
package numeric

import (
	"math/big"

	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/kind"
	"bc/internal/value"

	"github.com/remyoudompheng/bigfft"
)

// fftMulThreshold is the operand bit-length above which bigfft's
// multiplication (asymptotically faster than math/big's) is worth its
// overhead; below it schoolbook/Karatsuba math/big.Int.Mul wins.
const fftMulThreshold = 1 << 15 // bits

func bigI(v *value.Value) *big.Int { return v.AsInteger() }

func IntNew(x *big.Int) *value.Value { return value.NewInteger(x) }

func IntAdd(a, b *value.Value) *value.Value {
	return IntNew(new(big.Int).Add(bigI(a), bigI(b)))
}

func IntSub(a, b *value.Value) *value.Value {
	return IntNew(new(big.Int).Sub(bigI(a), bigI(b)))
}

func IntMul(a, b *value.Value) *value.Value {
	x, y := bigI(a), bigI(b)
	if x.BitLen() > fftMulThreshold && y.BitLen() > fftMulThreshold {
		return IntNew(bigfft.Mul(x, y))
	}
	return IntNew(new(big.Int).Mul(x, y))
}

func IntNeg(a *value.Value) *value.Value {
	return IntNew(new(big.Int).Neg(bigI(a)))
}

func IntAbs(a *value.Value) *value.Value {
	return IntNew(new(big.Int).Abs(bigI(a)))
}

func IntCmp(a, b *value.Value) int {
	return bigI(a).Cmp(bigI(b))
}

func IntEq(a, b *value.Value) bool { return IntCmp(a, b) == 0 }

func IntIsZero(a *value.Value) bool { return bigI(a).Sign() == 0 }

// IntDivRem is Euclidean division: 0 <= rem < |b|.
func IntDivRem(ctx *calc.Context, a, b *value.Value) (q, r *value.Value) {
	x, y := bigI(a), bigI(b)
	if y.Sign() == 0 {
		ctx.Fail(bcerr.Range, "division by zero")
		return value.Sentinel, value.Sentinel
	}
	qq, rr := new(big.Int), new(big.Int)
	qq.DivMod(x, y, rr) // big.Int.DivMod is already Euclidean (rr >= 0)
	return IntNew(qq), IntNew(rr)
}

// IntPow requires b >= 0 for an integer result; negative
// exponents are handled by the caller promoting to Decimal/Fraction.
func IntPow(ctx *calc.Context, a, b *value.Value) *value.Value {
	exp := bigI(b)
	if exp.Sign() < 0 {
		ctx.Fail(bcerr.Range, "negative exponent requires promotion")
		return value.Sentinel
	}
	return IntNew(new(big.Int).Exp(bigI(a), exp, nil))
}

// IntAnd/Or/Xor treat negative operands as infinite two's-complement
// values, matching math/big.Int's own semantics for these operators.
func IntAnd(a, b *value.Value) *value.Value { return IntNew(new(big.Int).And(bigI(a), bigI(b))) }
func IntOr(a, b *value.Value) *value.Value  { return IntNew(new(big.Int).Or(bigI(a), bigI(b))) }
func IntXor(a, b *value.Value) *value.Value { return IntNew(new(big.Int).Xor(bigI(a), bigI(b))) }
func IntNot(a *value.Value) *value.Value    { return IntNew(new(big.Int).Not(bigI(a))) }

// IntShift shifts a left by n.
func IntShift(a *value.Value, n int64) *value.Value {
	x := bigI(a)
	if n >= 0 {
		return IntNew(new(big.Int).Lsh(x, uint(n)))
	}
	return IntNew(new(big.Int).Rsh(x, uint(-n)))
}

// IntGcd returns the positive gcd of |a| and |b|.
func IntGcd(a, b *value.Value) *value.Value {
	return IntNew(new(big.Int).GCD(nil, nil, new(big.Int).Abs(bigI(a)), new(big.Int).Abs(bigI(b))))
}

// IntInvMod computes a^-1 mod m; m must be >= 1 and a must be invertible.
func IntInvMod(ctx *calc.Context, a, m *value.Value) *value.Value {
	mm := bigI(m)
	if mm.Sign() < 1 {
		ctx.Fail(bcerr.Range, "modulus must be positive")
		return value.Sentinel
	}
	inv := new(big.Int).ModInverse(bigI(a), mm)
	if inv == nil {
		ctx.Fail(bcerr.Range, "not invertible")
		return value.Sentinel
	}
	return IntNew(inv)
}

// IntPowMod computes a^b mod m; negative b routes through IntInvMod first.
func IntPowMod(ctx *calc.Context, a, b, m *value.Value) *value.Value {
	exp := bigI(b)
	mm := bigI(m)
	if mm.Sign() < 1 {
		ctx.Fail(bcerr.Range, "modulus must be positive")
		return value.Sentinel
	}
	if exp.Sign() < 0 {
		inv := IntInvMod(ctx, a, m)
		if value.IsSentinel(inv) {
			return value.Sentinel
		}
		return IntNew(new(big.Int).Exp(bigI(inv), new(big.Int).Neg(exp), mm))
	}
	return IntNew(new(big.Int).Exp(bigI(a), exp, mm))
}

// firstPrimes are the ~95 small primes used for deterministic trial
// division before Miller-Rabin.
var firstPrimes = smallPrimes(95)

func smallPrimes(n int) []int64 {
	primes := make([]int64, 0, n)
	candidate := int64(2)
	for len(primes) < n {
		isP := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isP = false
				break
			}
		}
		if isP {
			primes = append(primes, candidate)
		}
		candidate++
	}
	return primes
}

// IntFactor returns the ascending prime factorization with multiplicity of
// n >= 1.
func IntFactor(ctx *calc.Context, n *value.Value) *value.Value {
	x := new(big.Int).Set(bigI(n))
	if x.Sign() < 1 {
		ctx.Fail(bcerr.Range, "factor requires n >= 1")
		return value.Sentinel
	}
	var factors []*value.Value
	for _, p := range firstPrimes {
		bp := big.NewInt(p)
		for new(big.Int).Mod(x, bp).Sign() == 0 {
			factors = append(factors, IntNew(bp))
			x.Div(x, bp)
		}
		if x.Cmp(big.NewInt(1)) == 0 {
			break
		}
	}
	if x.Cmp(big.NewInt(1)) != 0 {
		// Remaining cofactor: Pollard-rho trial beyond the small-prime
		// table, falling back to treating it as prime when it passes isprime.
		for !isPrimeBig(x, 64) && x.Cmp(big.NewInt(1)) != 0 {
			d := pollardRho(x)
			if d == nil || d.Cmp(x) == 0 {
				break
			}
			factors = append(factors, IntNew(new(big.Int).Set(d)))
			x.Div(x, d)
		}
		if x.Cmp(big.NewInt(1)) != 0 {
			factors = append(factors, IntNew(new(big.Int).Set(x)))
		}
	}
	// sort ascending
	for i := 1; i < len(factors); i++ {
		for j := i; j > 0 && bigI(factors[j-1]).Cmp(bigI(factors[j])) > 0; j-- {
			factors[j-1], factors[j] = factors[j], factors[j-1]
		}
	}
	return value.NewArray(factors)
}

func pollardRho(n *big.Int) *big.Int {
	if new(big.Int).Mod(n, big.NewInt(2)).Sign() == 0 {
		return big.NewInt(2)
	}
	x := big.NewInt(2)
	y := big.NewInt(2)
	c := big.NewInt(1)
	d := big.NewInt(1)
	one := big.NewInt(1)
	f := func(v *big.Int) *big.Int {
		t := new(big.Int).Mul(v, v)
		t.Add(t, c)
		return t.Mod(t, n)
	}
	for d.Cmp(one) == 0 {
		x = f(x)
		y = f(f(y))
		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		if diff.Sign() == 0 {
			return nil
		}
		d = new(big.Int).GCD(nil, nil, diff, n)
	}
	if d.Cmp(n) == 0 {
		return nil
	}
	return d
}

func isPrimeBig(n *big.Int, t int) bool {
	return n.ProbablyPrime(t)
}

// IntIsPrime implements isprime: deterministic trial division against the
// first ~95 primes, then big.Int.ProbablyPrime(t) (default t = 64): t
// Miller-Rabin rounds with pseudorandom bases plus a Baillie-PSW test,
// giving a false-positive probability <= 4^-t.
func IntIsPrime(n *value.Value, t int) bool {
	x := bigI(n)
	if x.Sign() < 1 {
		return false
	}
	if x.Cmp(big.NewInt(1)) == 0 {
		return false
	}
	for _, p := range firstPrimes {
		bp := big.NewInt(p)
		if x.Cmp(bp) == 0 {
			return true
		}
		if new(big.Int).Mod(x, bp).Sign() == 0 {
			return false
		}
	}
	if t <= 0 {
		t = 64
	}
	return x.ProbablyPrime(t)
}

// IntSqrt returns floor(sqrt(n)) for n >= 0, via big.Int.Sqrt.
func IntSqrt(ctx *calc.Context, n *value.Value) *value.Value {
	x := bigI(n)
	if x.Sign() < 0 {
		ctx.Fail(bcerr.Range, "isqrt requires a non-negative operand")
		return value.Sentinel
	}
	return IntNew(new(big.Int).Sqrt(x))
}
