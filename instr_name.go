package push

import (
	"math/rand"
	"strconv"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NameLiteral accepts any token that no number or boolean literal would.
// Executing a name pushes its binding onto the exec stack if it has one,
// unless NAME.QUOTE came first; otherwise the name is pushed.
func NameLiteral() Instruction {
	ins := NewLiteral[string]("NAME.LITERAL", KindName,
		parseName,
		func(name string) string { return name },
		randomName,
	)
	ins.Outputs = outputs(KindName, KindExec)
	ins.Literal.Push = func(c *Context, v interface{}) {
		name := v.(string)
		if c.quoteName {
			c.quoteName = false
		} else if code, ok := c.names[name]; ok {
			c.Exec.Push(code)
			return
		}
		c.Name.Push(name)
	}
	return ins
}

func parseName(tok string) (string, bool) {
	if _, isBool := parseBool(tok); isBool {
		return "", false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return "", false
	}
	return tok, tok != ""
}

// randomName is six characters long so that it never reads as a number.
func randomName(rnd *rand.Rand) string {
	var buf [6]byte
	buf[0] = nameAlphabet[rnd.Intn(26)]
	for i := 1; i < len(buf); i++ {
		buf[i] = nameAlphabet[rnd.Intn(len(nameAlphabet))]
	}
	return string(buf[:])
}

// NameInstructions returns the name literal and instructions.
func NameInstructions() []Instruction {
	return append([]Instruction{
		NameLiteral(),
		instr("NAME.QUOTE", nil, nil, func(c *Context) bool {
			c.quoteName = true
			return true
		}),
		instr("NAME.RAND", nil, outputs(KindName), func(c *Context) bool {
			c.Name.Push(randomName(c.rnd))
			return true
		}),
		instr("NAME.RANDBOUNDNAME", nil, outputs(KindName), func(c *Context) bool {
			names := c.Bound()
			if len(names) == 0 {
				return false
			}
			c.Name.Push(names[c.rnd.Intn(len(names))])
			return true
		}),
	}, StackInstructions(KindName, "NAME")...)
}
