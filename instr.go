package push

// BaseInstructions returns the standard instruction set: literals and
// instructions for the integer, float, boolean, name, code and exec kinds.
func BaseInstructions() []Instruction {
	var defs []Instruction
	defs = append(defs, IntegerInstructions()...)
	defs = append(defs, FloatInstructions()...)
	defs = append(defs, BoolInstructions()...)
	defs = append(defs, NameInstructions()...)
	defs = append(defs, CodeInstructions()...)
	defs = append(defs, ExecInstructions()...)
	return defs
}

func inputs(kvs ...interface{}) []Input {
	ins := make([]Input, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		ins = append(ins, Input{kvs[i].(Kind), kvs[i+1].(int)})
	}
	return ins
}

func outputs(kinds ...Kind) []Kind { return kinds }

func instr(name string, in []Input, out []Kind, exec func(c *Context) bool) Instruction {
	return Instruction{
		Name:    name,
		Inputs:  in,
		Outputs: out,
		Weight:  1,
		Exec:    exec,
	}
}

// binary pops a (second) and b (top) of kind and pushes f(a, b) onto out,
// unless f declines.
func binary[T, R any](name string, kind, out Kind, f func(a, b T) (R, bool)) Instruction {
	return instr(name, inputs(kind, 2), outputs(out), func(c *Context) bool {
		in, dst := StackOf[T](c, kind), StackOf[R](c, out)
		if in == nil || dst == nil {
			return false
		}
		b, _ := in.PeekAt(0)
		a, _ := in.PeekAt(1)
		r, ok := f(a, b)
		if !ok {
			return false
		}
		in.Pop()
		in.Pop()
		dst.Push(r)
		return true
	})
}

// unary replaces the top of kind with f of it, pushed onto out.
func unary[T, R any](name string, kind, out Kind, f func(a T) (R, bool)) Instruction {
	return instr(name, inputs(kind, 1), outputs(out), func(c *Context) bool {
		in, dst := StackOf[T](c, kind), StackOf[R](c, out)
		if in == nil || dst == nil {
			return false
		}
		a, _ := in.Peek()
		r, ok := f(a)
		if !ok {
			return false
		}
		in.Pop()
		dst.Push(r)
		return true
	})
}

// random pushes a random literal of kind.
func random(name string, kind Kind) Instruction {
	return instr(name, nil, outputs(kind), func(c *Context) bool {
		ins, ok := c.reg.LiteralFor(kind)
		if !ok {
			return false
		}
		ins.Literal.Push(c, ins.Literal.Random(c.rnd))
		return true
	})
}

// StackInstructions builds the structural instructions every kind supports,
// named prefix.DUP, prefix.POP and so on.
func StackInstructions(kind Kind, prefix string) []Instruction {
	st := func(c *Context) Stacker { return c.stacks[kind] }
	indexed := func(op func(st Stacker, i int64) bool) func(c *Context) bool {
		return func(c *Context) bool {
			i, _ := c.Int.Pop()
			return op(st(c), i)
		}
	}
	defs := []Instruction{
		instr(prefix+".DUP", inputs(kind, 1), outputs(kind), func(c *Context) bool {
			return st(c).Dup()
		}),
		instr(prefix+".POP", inputs(kind, 1), nil, func(c *Context) bool {
			return st(c).Drop()
		}),
		instr(prefix+".SWAP", inputs(kind, 2), nil, func(c *Context) bool {
			return st(c).Swap()
		}),
		instr(prefix+".ROT", inputs(kind, 3), nil, func(c *Context) bool {
			return st(c).Rot()
		}),
		instr(prefix+".FLUSH", inputs(kind, 0), nil, func(c *Context) bool {
			st(c).Clear()
			return true
		}),
		instr(prefix+".STACKDEPTH", inputs(kind, 0), outputs(KindInteger), func(c *Context) bool {
			c.Int.Push(int64(st(c).Len()))
			return true
		}),
		instr(prefix+".SHOVE", inputs(KindInteger, 1, kind, 1), nil,
			indexed(Stacker.Shove)),
		instr(prefix+".YANK", inputs(KindInteger, 1, kind, 1), nil,
			indexed(Stacker.Yank)),
		instr(prefix+".YANKDUP", inputs(KindInteger, 1, kind, 1), outputs(kind),
			indexed(Stacker.YankDup)),
		instr(prefix+".EQUAL", inputs(kind, 2), outputs(KindBool), func(c *Context) bool {
			eq, ok := st(c).EqualTop()
			if ok {
				c.Bool.Push(eq)
			}
			return ok
		}),
	}
	if kind != KindName {
		defs = append(defs, instr(prefix+".DEFINE", inputs(KindName, 1, kind, 1), nil,
			func(c *Context) bool {
				v, _ := st(c).PeekAny()
				code, ok := c.reg.valueCode(kind, v)
				if !ok {
					return false
				}
				st(c).PopAny()
				name, _ := c.Name.Pop()
				c.Bind(name, code)
				return true
			}))
	}
	return defs
}

// absIndex maps n onto [0, m) by absolute value; m must be positive.
func absIndex(n int64, m int) int {
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	return int(u % uint64(m))
}
