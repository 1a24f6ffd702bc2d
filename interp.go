package push

// Status says why a run stopped.
type Status int

const (
	// Halted means the exec stack emptied.
	Halted Status = iota
	// StepLimit means the step budget ran out first.
	StepLimit
	// StackLimit means the next node could push past the stack depth
	// ceiling; it is left on the exec stack, unexecuted.
	StackLimit
)

func (st Status) String() string {
	switch st {
	case Halted:
		return "halted"
	case StepLimit:
		return "step limit"
	case StackLimit:
		return "stack limit"
	}
	return "invalid status"
}

// Result summarizes a run.
type Result struct {
	Status Status
	Steps  int
	Noops  int
}

// Budget reports whether the run was cut short by a resource ceiling.
func (res Result) Budget() bool { return res.Status != Halted }

// Run loads prog onto the exec stack and executes until the exec stack is
// empty or a budget runs out: at most steps nodes are executed, and no stack
// may grow past maxDepth items. A non-positive budget is unlimited.
//
// Whatever the status, the stacks hold the outcome as of the last step; a
// node is never left half executed, so a budget halt may be resumed.
func (c *Context) Run(prog Code, steps, maxDepth int) Result {
	return c.run(steps, maxDepth, func() { c.Load(prog) })
}

// Resume continues executing whatever is on the exec stack.
func (c *Context) Resume(steps, maxDepth int) Result {
	return c.run(steps, maxDepth, nil)
}

// Load pushes prog onto the exec stack.
func (c *Context) Load(prog Code) {
	c.Exec.Push(prog)
}

func (c *Context) run(steps, maxDepth int, load func()) (res Result) {
	c.setLimit(maxDepth)
	defer c.setLimit(0)
	defer func() {
		if e := recover(); e != nil {
			lim, ok := e.(LimitError)
			if !ok {
				panic(e)
			}
			c.logf("#", "halt: %v", lim)
			res.Status = StackLimit
		}
	}()

	if load != nil {
		load()
	}
	for {
		if c.Exec.Len() == 0 {
			res.Status = Halted
			return res
		}
		if steps > 0 && res.Steps >= steps {
			c.logf("#", "halt: step limit %v", steps)
			res.Status = StepLimit
			return res
		}
		if kind, ok := c.room(); !ok {
			c.logf("#", "halt: %v", LimitError{kind, c.limit})
			res.Status = StackLimit
			return res
		}
		res.Steps++
		if !c.Step() {
			res.Noops++
		}
	}
}

// Step executes the node on top of the exec stack, reporting false if there
// was none or it was a NOOP.
func (c *Context) Step() bool {
	node, ok := c.Exec.Pop()
	if !ok {
		return false
	}
	return c.exec(node)
}

func (c *Context) exec(node Code) bool {
	ins := node.op
	if ins == nil {
		for i := len(node.items) - 1; i >= 0; i-- {
			c.Exec.Push(node.items[i])
		}
		return true
	}

	if lit := ins.Literal; lit != nil {
		if c.logfn != nil {
			c.logf(">", "%v", node)
		}
		lit.Push(c, node.lit)
		return true
	}

	if kind, ok := c.ready(ins); !ok {
		if c.logfn != nil {
			c.logf("~", "%v short of %v", ins.Name, kind)
		}
		return false
	}
	if !ins.Exec(c) {
		if c.logfn != nil {
			c.logf("~", "%v declined", ins.Name)
		}
		return false
	}
	if c.logfn != nil {
		c.logf(">", "%v", ins.Name)
	}
	return true
}

// ready reports the first kind short of the inputs ins needs.
func (c *Context) ready(ins *Instruction) (Kind, bool) {
	for _, in := range ins.Inputs {
		if st := c.stacks[in.Kind]; st == nil || st.Len() < in.N {
			return in.Kind, false
		}
	}
	return "", true
}

// room reports the first kind lacking depth for everything the node on top
// of the exec stack may push, counted once that node is popped. Instructions
// that are short of inputs push nothing.
func (c *Context) room() (Kind, bool) {
	node, ok := c.Exec.Peek()
	if !ok || c.limit <= 0 {
		return "", true
	}
	ins := node.op
	if ins == nil {
		return KindExec, c.Exec.Len()-1+len(node.items) <= c.limit
	}
	if ins.Literal == nil {
		if _, ok := c.ready(ins); !ok {
			return "", true
		}
	}
	for i, kind := range ins.Outputs {
		st := c.stacks[kind]
		if st == nil {
			continue
		}
		n := st.Len()
		if kind == KindExec {
			n--
		}
		for _, k := range ins.Outputs[i:] {
			if k == kind {
				n++
			}
		}
		if n > c.limit {
			return kind, false
		}
	}
	return "", true
}
