package push

import (
	"math/rand"
	"strings"
)

// BoolLiteral reads true and false in any case and renders them lower case.
func BoolLiteral() Instruction {
	return NewLiteral[bool]("BOOLEAN.LITERAL", KindBool,
		parseBool,
		func(b bool) string {
			if b {
				return "true"
			}
			return "false"
		},
		func(rnd *rand.Rand) bool { return rnd.Intn(2) == 1 },
	)
}

func parseBool(tok string) (bool, bool) {
	switch {
	case strings.EqualFold(tok, "true"):
		return true, true
	case strings.EqualFold(tok, "false"):
		return false, true
	}
	return false, false
}

// BoolInstructions returns the boolean literal and instructions.
func BoolInstructions() []Instruction {
	return append([]Instruction{
		BoolLiteral(),
		binary("BOOLEAN.AND", KindBool, KindBool, func(a, b bool) (bool, bool) { return a && b, true }),
		binary("BOOLEAN.OR", KindBool, KindBool, func(a, b bool) (bool, bool) { return a || b, true }),
		unary("BOOLEAN.NOT", KindBool, KindBool, func(a bool) (bool, bool) { return !a, true }),
		unary("BOOLEAN.FROMINTEGER", KindInteger, KindBool, func(a int64) (bool, bool) { return a != 0, true }),
		unary("BOOLEAN.FROMFLOAT", KindFloat, KindBool, func(a float64) (bool, bool) { return a != 0, true }),
		random("BOOLEAN.RAND", KindBool),
	}, StackInstructions(KindBool, "BOOLEAN")...)
}
