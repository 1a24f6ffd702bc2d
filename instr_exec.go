package push

// ExecInstructions returns the control flow instructions, which act on the
// code still waiting on the exec stack.
func ExecInstructions() []Instruction {
	return append([]Instruction{
		instr("EXEC.DONCOUNT", inputs(KindInteger, 1, KindExec, 1), outputs(KindExec), func(c *Context) bool {
			n, _ := c.Int.Peek()
			body, _ := c.Exec.Peek()
			loop, ok := c.execLoop(0, n-1, body)
			if n <= 0 || !ok {
				return false
			}
			c.Int.Pop()
			c.Exec.Pop()
			c.Exec.Push(loop)
			return true
		}),

		instr("EXEC.DONRANGE", inputs(KindInteger, 2, KindExec, 1), outputs(KindExec, KindExec, KindInteger), func(c *Context) bool {
			dest, _ := c.Int.PeekAt(0)
			cur, _ := c.Int.PeekAt(1)
			body, _ := c.Exec.Peek()
			var next Code
			if cur != dest {
				var ok bool
				if next, ok = c.execLoop(step(cur, dest), dest, body); !ok {
					return false
				}
			}
			c.Int.Pop()
			c.Int.Pop()
			c.Exec.Pop()
			if cur != dest {
				c.Exec.Push(next)
			}
			c.Int.Push(cur)
			c.Exec.Push(body)
			return true
		}),

		instr("EXEC.DONTIMES", inputs(KindInteger, 1, KindExec, 1), outputs(KindExec), func(c *Context) bool {
			n, _ := c.Int.Peek()
			body, _ := c.Exec.Peek()
			pop, ok := c.atom("INTEGER.POP")
			if n <= 0 || !ok {
				return false
			}
			loop, ok := c.execLoop(0, n-1, Block(pop, body))
			if !ok {
				return false
			}
			c.Int.Pop()
			c.Exec.Pop()
			c.Exec.Push(loop)
			return true
		}),

		// EXEC.IF keeps the first of the next two items if true, else the second.
		instr("EXEC.IF", inputs(KindBool, 1, KindExec, 2), outputs(KindExec), func(c *Context) bool {
			b, _ := c.Bool.Pop()
			ifTrue, _ := c.Exec.Pop()
			ifFalse, _ := c.Exec.Pop()
			if b {
				c.Exec.Push(ifTrue)
			} else {
				c.Exec.Push(ifFalse)
			}
			return true
		}),

		instr("EXEC.K", inputs(KindExec, 2), outputs(KindExec), func(c *Context) bool {
			keep, _ := c.Exec.Pop()
			c.Exec.Pop()
			c.Exec.Push(keep)
			return true
		}),

		// EXEC.S turns A B C into A C (B C).
		instr("EXEC.S", inputs(KindExec, 3), outputs(KindExec, KindExec, KindExec), func(c *Context) bool {
			a, _ := c.Exec.PeekAt(0)
			b, _ := c.Exec.PeekAt(1)
			cc, _ := c.Exec.PeekAt(2)
			bc := Block(b, cc)
			if !c.fits(bc) {
				return false
			}
			c.Exec.Pop()
			c.Exec.Pop()
			c.Exec.Pop()
			c.Exec.Push(bc)
			c.Exec.Push(cc)
			c.Exec.Push(a)
			return true
		}),

		// EXEC.Y runs the next item, followed by EXEC.Y of it again.
		instr("EXEC.Y", inputs(KindExec, 1), outputs(KindExec, KindExec), func(c *Context) bool {
			y, ok := c.atom("EXEC.Y")
			body, _ := c.Exec.Peek()
			again := Block(y, body)
			if !ok || !c.fits(again) {
				return false
			}
			c.Exec.Pop()
			c.Exec.Push(again)
			c.Exec.Push(body)
			return true
		}),
	}, StackInstructions(KindExec, "EXEC")...)
}

// execLoop builds the continuation of EXEC.DONRANGE from cur to dest.
func (c *Context) execLoop(cur, dest int64, body Code) (Code, bool) {
	rng, ok1 := c.atom("EXEC.DONRANGE")
	from, ok2 := c.intAtom(cur)
	to, ok3 := c.intAtom(dest)
	if !(ok1 && ok2 && ok3) {
		return Code{}, false
	}
	return Block(from, to, rng, body), true
}
