package push

import (
	"math/rand"
	"sort"
)

// Context is the mutable state of one execution: a stack per kind used by
// its registry, the bound names, and an entropy source. A Context must not
// be shared by concurrent runs.
type Context struct {
	logging

	reg    *Registry
	rnd    *rand.Rand
	stacks map[Kind]Stacker
	order  []Stacker

	Exec  *Stack[Code]
	Code  *Stack[Code]
	Int   *Stack[int64]
	Float *Stack[float64]
	Bool  *Stack[bool]
	Name  *Stack[string]

	names     map[string]Code
	quoteName bool
	limit     int

	// State is left to the host, for domain instructions.
	State interface{}
}

// NewContext creates an empty context for programs of reg.
func NewContext(reg *Registry, opts ...ContextOption) *Context {
	c := &Context{
		reg:    reg,
		stacks: make(map[Kind]Stacker, len(reg.kinds)),
		names:  make(map[string]Code),
	}
	for _, def := range reg.kinds {
		st := def.New()
		c.stacks[def.Kind] = st
		c.order = append(c.order, st)
	}
	c.Exec = StackOf[Code](c, KindExec)
	c.Code = StackOf[Code](c, KindCode)
	c.Int = StackOf[int64](c, KindInteger)
	c.Float = StackOf[float64](c, KindFloat)
	c.Bool = StackOf[bool](c, KindBool)
	c.Name = StackOf[string](c, KindName)
	c.apply(opts...)
	return c
}

// StackOf returns the typed stack of a kind, nil if the context has no such
// stack or it holds another type.
func StackOf[T any](c *Context, kind Kind) *Stack[T] {
	st, _ := c.stacks[kind].(*Stack[T])
	return st
}

// Stack returns the stack of a kind, nil if the registry never uses it.
func (c *Context) Stack(kind Kind) Stacker { return c.stacks[kind] }

func (c *Context) Registry() *Registry { return c.reg }
func (c *Context) Rand() *rand.Rand    { return c.rnd }

// Bind defines name to execute code.
func (c *Context) Bind(name string, code Code) { c.names[name] = code }

// Binding returns the code bound to name.
func (c *Context) Binding(name string) (Code, bool) {
	code, ok := c.names[name]
	return code, ok
}

// Bound lists the bound names in sorted order.
func (c *Context) Bound() []string {
	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset empties every stack and forgets all bindings.
func (c *Context) Reset() {
	for _, st := range c.order {
		st.Clear()
	}
	for name := range c.names {
		delete(c.names, name)
	}
	c.quoteName = false
}

func (c *Context) setLimit(n int) {
	c.limit = n
	for _, st := range c.order {
		st.setLimit(n)
	}
}

// fits reports whether code is within the program point ceiling.
func (c *Context) fits(code Code) bool {
	max := c.reg.limits.MaxProgramPoints
	return max <= 0 || code.Points() <= max
}

// atom returns the named instruction as code.
func (c *Context) atom(name string) (Code, bool) {
	ins, ok := c.reg.byName[name]
	if !ok || ins.Literal != nil {
		return Code{}, false
	}
	return Code{op: ins}, true
}

// intAtom returns an integer literal atom.
func (c *Context) intAtom(n int64) (Code, bool) {
	return c.reg.valueCode(KindInteger, n)
}
