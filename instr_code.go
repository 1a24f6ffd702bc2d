package push

// CodeInstructions returns the instructions that treat programs as data on
// the code stack. Instructions that would build code past the registry's
// MaxProgramPoints do nothing.
func CodeInstructions() []Instruction {
	top := func(c *Context) Code {
		code, _ := c.Code.Peek()
		return code
	}
	second := func(c *Context) Code {
		code, _ := c.Code.PeekAt(1)
		return code
	}
	// replace pops n code items and pushes code, if it fits.
	replace := func(c *Context, n int, code Code) bool {
		if !c.fits(code) {
			return false
		}
		for ; n > 0; n-- {
			c.Code.Pop()
		}
		c.Code.Push(code)
		return true
	}
	fromKind := func(name string, kind Kind) Instruction {
		return instr(name, inputs(kind, 1), outputs(KindCode), func(c *Context) bool {
			st := c.stacks[kind]
			v, _ := st.PeekAny()
			code, ok := c.reg.valueCode(kind, v)
			if !ok {
				return false
			}
			st.PopAny()
			c.Code.Push(code)
			return true
		})
	}

	return append([]Instruction{
		instr("CODE.APPEND", inputs(KindCode, 2), outputs(KindCode), func(c *Context) bool {
			items := append([]Code(nil), second(c).list()...)
			return replace(c, 2, block(append(items, top(c).list()...)))
		}),

		instr("CODE.ATOM", inputs(KindCode, 1), outputs(KindBool), func(c *Context) bool {
			code, _ := c.Code.Pop()
			c.Bool.Push(!code.IsBlock())
			return true
		}),

		instr("CODE.CAR", inputs(KindCode, 1), outputs(KindCode), func(c *Context) bool {
			code := top(c)
			if code.IsBlock() {
				if len(code.items) > 0 {
					code = code.items[0]
				}
			}
			return replace(c, 1, code)
		}),

		instr("CODE.CDR", inputs(KindCode, 1), outputs(KindCode), func(c *Context) bool {
			var rest Code
			if code := top(c); code.IsBlock() && len(code.items) > 0 {
				rest = Block(code.items[1:]...)
			}
			return replace(c, 1, rest)
		}),

		instr("CODE.CONS", inputs(KindCode, 2), outputs(KindCode), func(c *Context) bool {
			items := append([]Code{second(c)}, top(c).list()...)
			return replace(c, 2, block(items))
		}),

		instr("CODE.CONTAINER", inputs(KindCode, 2), outputs(KindCode), func(c *Context) bool {
			found, _ := second(c).Container(top(c))
			return replace(c, 2, found)
		}),

		instr("CODE.CONTAINS", inputs(KindCode, 2), outputs(KindBool), func(c *Context) bool {
			contains := second(c).Contains(top(c))
			c.Code.Pop()
			c.Code.Pop()
			c.Bool.Push(contains)
			return true
		}),

		instr("CODE.CROSSOVER", inputs(KindCode, 2), outputs(KindCode), func(c *Context) bool {
			child := Crossover(second(c), top(c), c.reg.limits.MaxProgramPoints, c.rnd)
			return replace(c, 2, child)
		}),

		instr("CODE.DEFINITION", inputs(KindName, 1), outputs(KindCode), func(c *Context) bool {
			name, _ := c.Name.Peek()
			code, ok := c.names[name]
			if !ok {
				return false
			}
			c.Name.Pop()
			c.Code.Push(code)
			return true
		}),

		instr("CODE.DISCREPANCY", inputs(KindCode, 2), outputs(KindInteger), func(c *Context) bool {
			n := second(c).Discrepancy(top(c))
			c.Code.Pop()
			c.Code.Pop()
			c.Int.Push(int64(n))
			return true
		}),

		// CODE.DO runs the top of the code stack, popping it once done.
		instr("CODE.DO", inputs(KindCode, 1), outputs(KindExec, KindExec), func(c *Context) bool {
			pop, ok := c.atom("CODE.POP")
			if !ok {
				return false
			}
			c.Exec.Push(pop)
			c.Exec.Push(top(c))
			return true
		}),

		instr("CODE.DO*", inputs(KindCode, 1), outputs(KindExec), func(c *Context) bool {
			code, _ := c.Code.Pop()
			c.Exec.Push(code)
			return true
		}),

		instr("CODE.DONCOUNT", inputs(KindInteger, 1, KindCode, 1), outputs(KindExec), func(c *Context) bool {
			n, _ := c.Int.Peek()
			loop, ok := c.codeLoop(0, n-1, top(c))
			if n <= 0 || !ok {
				return false
			}
			c.Int.Pop()
			c.Code.Pop()
			c.Exec.Push(loop)
			return true
		}),

		instr("CODE.DONRANGE", inputs(KindInteger, 2, KindCode, 1), outputs(KindExec, KindExec, KindInteger), func(c *Context) bool {
			dest, _ := c.Int.PeekAt(0)
			cur, _ := c.Int.PeekAt(1)
			code := top(c)
			var next Code
			if cur != dest {
				var ok bool
				if next, ok = c.codeLoop(step(cur, dest), dest, code); !ok {
					return false
				}
			}
			c.Int.Pop()
			c.Int.Pop()
			c.Code.Pop()
			if cur != dest {
				c.Exec.Push(next)
			}
			c.Int.Push(cur)
			c.Exec.Push(code)
			return true
		}),

		instr("CODE.DONTIMES", inputs(KindInteger, 1, KindCode, 1), outputs(KindExec), func(c *Context) bool {
			n, _ := c.Int.Peek()
			pop, ok := c.atom("INTEGER.POP")
			if n <= 0 || !ok {
				return false
			}
			loop, ok := c.codeLoop(0, n-1, Block(pop, top(c)))
			if !ok {
				return false
			}
			c.Int.Pop()
			c.Code.Pop()
			c.Exec.Push(loop)
			return true
		}),

		instr("CODE.EXTRACT", inputs(KindInteger, 1, KindCode, 1), outputs(KindCode), func(c *Context) bool {
			n, _ := c.Int.Pop()
			code := top(c)
			sub, _ := code.At(absIndex(n, code.Points()))
			c.Code.Pop()
			c.Code.Push(sub)
			return true
		}),

		fromKind("CODE.FROMBOOLEAN", KindBool),
		fromKind("CODE.FROMFLOAT", KindFloat),
		fromKind("CODE.FROMINTEGER", KindInteger),
		fromKind("CODE.FROMNAME", KindName),

		// CODE.IF executes the second item if true, else the top.
		instr("CODE.IF", inputs(KindBool, 1, KindCode, 2), outputs(KindExec), func(c *Context) bool {
			b, _ := c.Bool.Pop()
			ifFalse, _ := c.Code.Pop()
			ifTrue, _ := c.Code.Pop()
			if b {
				c.Exec.Push(ifTrue)
			} else {
				c.Exec.Push(ifFalse)
			}
			return true
		}),

		// CODE.INSERT puts the second item into the top item at an index.
		instr("CODE.INSERT", inputs(KindInteger, 1, KindCode, 2), outputs(KindCode), func(c *Context) bool {
			n, _ := c.Int.Peek()
			in := top(c)
			code, _ := in.Replace(absIndex(n, in.Points()), second(c))
			if !c.fits(code) {
				return false
			}
			c.Int.Pop()
			return replace(c, 2, code)
		}),

		instr("CODE.LENGTH", inputs(KindCode, 1), outputs(KindInteger), func(c *Context) bool {
			code, _ := c.Code.Pop()
			c.Int.Push(int64(code.Len()))
			return true
		}),

		instr("CODE.LIST", inputs(KindCode, 2), outputs(KindCode), func(c *Context) bool {
			return replace(c, 2, Block(second(c), top(c)))
		}),

		// CODE.MEMBER tells if the second item is an item of the top.
		instr("CODE.MEMBER", inputs(KindCode, 2), outputs(KindBool), func(c *Context) bool {
			member := top(c).Member(second(c))
			c.Code.Pop()
			c.Code.Pop()
			c.Bool.Push(member)
			return true
		}),

		instr("CODE.MUTATE", inputs(KindCode, 1), outputs(KindCode), func(c *Context) bool {
			return replace(c, 1, Mutate(c.reg, top(c), c.reg.limits.MaxProgramPoints, c.rnd))
		}),

		instr("CODE.NOOP", nil, nil, func(c *Context) bool { return true }),

		instr("CODE.NTH", inputs(KindInteger, 1, KindCode, 1), outputs(KindCode), func(c *Context) bool {
			n, _ := c.Int.Pop()
			var nth Code
			if items := top(c).list(); len(items) > 0 {
				nth = items[absIndex(n, len(items))]
			}
			c.Code.Pop()
			c.Code.Push(nth)
			return true
		}),

		instr("CODE.NTHCDR", inputs(KindInteger, 1, KindCode, 1), outputs(KindCode), func(c *Context) bool {
			n, _ := c.Int.Pop()
			var rest Code
			if items := top(c).list(); len(items) > 0 {
				rest = Block(items[absIndex(n, len(items)):]...)
			}
			c.Code.Pop()
			c.Code.Push(rest)
			return true
		}),

		instr("CODE.NULL", inputs(KindCode, 1), outputs(KindBool), func(c *Context) bool {
			code, _ := c.Code.Pop()
			c.Bool.Push(code.IsBlock() && len(code.items) == 0)
			return true
		}),

		// CODE.POSITION finds the second item among the items of the top.
		instr("CODE.POSITION", inputs(KindCode, 2), outputs(KindInteger), func(c *Context) bool {
			i := top(c).Position(second(c))
			c.Code.Pop()
			c.Code.Pop()
			c.Int.Push(int64(i))
			return true
		}),

		instr("CODE.QUOTE", inputs(KindExec, 1), outputs(KindCode), func(c *Context) bool {
			code, _ := c.Exec.Pop()
			c.Code.Push(code)
			return true
		}),

		instr("CODE.RAND", inputs(KindInteger, 1), outputs(KindCode), func(c *Context) bool {
			n, _ := c.Int.Pop()
			lim := c.reg.limits
			size := absIndex(n, lim.MaxRandomPoints) + 1
			c.Code.Push(c.reg.generate(c.rnd, size, lim.MaxRandomDepth, c.Bound()))
			return true
		}),

		instr("CODE.SIZE", inputs(KindCode, 1), outputs(KindInteger), func(c *Context) bool {
			code, _ := c.Code.Pop()
			c.Int.Push(int64(code.Points()))
			return true
		}),

		// CODE.SUBSTITUTE replaces, within the top item, the second item with
		// the third.
		instr("CODE.SUBSTITUTE", inputs(KindCode, 3), outputs(KindCode), func(c *Context) bool {
			with, _ := c.Code.PeekAt(2)
			return replace(c, 3, top(c).Substitute(second(c), with))
		}),
	}, StackInstructions(KindCode, "CODE")...)
}

// codeLoop builds the continuation of CODE.DONRANGE from cur to dest.
func (c *Context) codeLoop(cur, dest int64, body Code) (Code, bool) {
	quote, ok1 := c.atom("CODE.QUOTE")
	rng, ok2 := c.atom("CODE.DONRANGE")
	from, ok3 := c.intAtom(cur)
	to, ok4 := c.intAtom(dest)
	if !(ok1 && ok2 && ok3 && ok4) {
		return Code{}, false
	}
	return Block(from, to, quote, body, rng), true
}

// step moves cur one toward dest.
func step(cur, dest int64) int64 {
	if cur < dest {
		return cur + 1
	}
	return cur - 1
}
