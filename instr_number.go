package push

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Default ranges of random numeric literals.
const (
	MinRandomInt   = -100
	MaxRandomInt   = 100
	MinRandomFloat = -100.0
	MaxRandomFloat = 100.0
)

// IntegerLiteral parses and renders base 10 integers, drawing random ones
// from [lo, hi].
func IntegerLiteral(lo, hi int64) Instruction {
	if hi < lo {
		lo, hi = hi, lo
	}
	return NewLiteral[int64]("INTEGER.LITERAL", KindInteger,
		func(tok string) (int64, bool) {
			n, err := strconv.ParseInt(tok, 10, 64)
			return n, err == nil
		},
		func(n int64) string { return strconv.FormatInt(n, 10) },
		func(rnd *rand.Rand) int64 {
			span := uint64(hi - lo)
			if span == math.MaxUint64 {
				return int64(rnd.Uint64())
			}
			return lo + int64(rnd.Uint64()%(span+1))
		},
	)
}

// FloatLiteral parses and renders finite floats, which always carry a
// decimal point or an exponent, drawing random ones from [lo, hi).
func FloatLiteral(lo, hi float64) Instruction {
	if hi < lo {
		lo, hi = hi, lo
	}
	return NewLiteral[float64]("FLOAT.LITERAL", KindFloat,
		parseFloat,
		formatFloat,
		func(rnd *rand.Rand) float64 { return lo + rnd.Float64()*(hi-lo) },
	)
}

func parseFloat(tok string) (float64, bool) {
	if !strings.ContainsAny(tok, ".eE") || strings.ContainsAny(tok, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	return f, err == nil && finite(f)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }

func truncInt(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// IntegerInstructions returns the integer literal and instructions.
func IntegerInstructions() []Instruction {
	ok := func(n int64) (int64, bool) { return n, true }
	return append([]Instruction{
		IntegerLiteral(MinRandomInt, MaxRandomInt),
		binary("INTEGER.SUM", KindInteger, KindInteger, func(a, b int64) (int64, bool) { return ok(a + b) }),
		binary("INTEGER.DIFFERENCE", KindInteger, KindInteger, func(a, b int64) (int64, bool) { return ok(a - b) }),
		binary("INTEGER.PRODUCT", KindInteger, KindInteger, func(a, b int64) (int64, bool) { return ok(a * b) }),
		binary("INTEGER.QUOTIENT", KindInteger, KindInteger, func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		}),
		binary("INTEGER.MODULO", KindInteger, KindInteger, func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a % b, true
		}),
		binary("INTEGER.MIN", KindInteger, KindInteger, func(a, b int64) (int64, bool) {
			if b < a {
				return b, true
			}
			return a, true
		}),
		binary("INTEGER.MAX", KindInteger, KindInteger, func(a, b int64) (int64, bool) {
			if b > a {
				return b, true
			}
			return a, true
		}),
		binary("INTEGER.LESS", KindInteger, KindBool, func(a, b int64) (bool, bool) { return a < b, true }),
		binary("INTEGER.GREATER", KindInteger, KindBool, func(a, b int64) (bool, bool) { return a > b, true }),
		unary("INTEGER.FROMBOOLEAN", KindBool, KindInteger, func(a bool) (int64, bool) { return b2i(a), true }),
		unary("INTEGER.FROMFLOAT", KindFloat, KindInteger, func(a float64) (int64, bool) { return truncInt(a), true }),
		random("INTEGER.RAND", KindInteger),
	}, StackInstructions(KindInteger, "INTEGER")...)
}

// FloatInstructions returns the float literal and instructions; those whose
// result would not be finite do nothing.
func FloatInstructions() []Instruction {
	arith := func(name string, f func(a, b float64) float64) Instruction {
		return binary(name, KindFloat, KindFloat, func(a, b float64) (float64, bool) {
			r := f(a, b)
			return r, finite(r)
		})
	}
	fn := func(name string, f func(a float64) float64) Instruction {
		return unary(name, KindFloat, KindFloat, func(a float64) (float64, bool) {
			r := f(a)
			return r, finite(r)
		})
	}
	divisor := func(name string, f func(a, b float64) float64) Instruction {
		return binary(name, KindFloat, KindFloat, func(a, b float64) (float64, bool) {
			if b == 0 {
				return 0, false
			}
			r := f(a, b)
			return r, finite(r)
		})
	}
	return append([]Instruction{
		FloatLiteral(MinRandomFloat, MaxRandomFloat),
		arith("FLOAT.SUM", func(a, b float64) float64 { return a + b }),
		arith("FLOAT.DIFFERENCE", func(a, b float64) float64 { return a - b }),
		arith("FLOAT.PRODUCT", func(a, b float64) float64 { return a * b }),
		divisor("FLOAT.QUOTIENT", func(a, b float64) float64 { return a / b }),
		divisor("FLOAT.MODULO", math.Mod),
		arith("FLOAT.MIN", math.Min),
		arith("FLOAT.MAX", math.Max),
		fn("FLOAT.SIN", math.Sin),
		fn("FLOAT.COS", math.Cos),
		fn("FLOAT.TAN", math.Tan),
		binary("FLOAT.LESS", KindFloat, KindBool, func(a, b float64) (bool, bool) { return a < b, true }),
		binary("FLOAT.GREATER", KindFloat, KindBool, func(a, b float64) (bool, bool) { return a > b, true }),
		unary("FLOAT.FROMBOOLEAN", KindBool, KindFloat, func(a bool) (float64, bool) { return float64(b2i(a)), true }),
		unary("FLOAT.FROMINTEGER", KindInteger, KindFloat, func(a int64) (float64, bool) { return float64(a), true }),
		random("FLOAT.RAND", KindFloat),
	}, StackInstructions(KindFloat, "FLOAT")...)
}
