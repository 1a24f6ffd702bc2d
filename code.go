package push

import "strings"

// Code is a program tree node: either an atom (an instruction, possibly
// carrying a literal payload) or a block of child nodes. The zero Code is the
// empty block.
//
// Code values are immutable; operations that change structure return new
// trees that share any untouched subtrees.
type Code struct {
	op    *Instruction
	lit   interface{}
	items []Code
	inner int
}

// NewAtom creates an atom for ins; lit is the payload of literal
// instructions and ignored otherwise.
func NewAtom(ins *Instruction, lit interface{}) Code {
	if ins.Literal == nil {
		lit = nil
	}
	return Code{op: ins, lit: lit}
}

// Block creates a block of the given items.
func Block(items ...Code) Code {
	return block(append([]Code(nil), items...))
}

// block takes ownership of items.
func block(items []Code) Code {
	c := Code{items: items}
	for _, item := range items {
		c.inner += item.Points()
	}
	return c
}

func (c Code) IsBlock() bool { return c.op == nil }

// Instruction returns the instruction of an atom, nil for blocks.
func (c Code) Instruction() *Instruction { return c.op }

// Literal returns the payload of a literal atom.
func (c Code) Literal() interface{} { return c.lit }

// Items returns a copy of the children of a block.
func (c Code) Items() []Code { return append([]Code(nil), c.items...) }

// Len is the number of top level items; an atom counts as one.
func (c Code) Len() int {
	if c.op != nil {
		return 1
	}
	return len(c.items)
}

// Points counts nodes in pre-order: an atom is one point, a block is one plus
// the points of its items.
func (c Code) Points() int {
	if c.op != nil {
		return 1
	}
	return 1 + c.inner
}

// Depth is zero for atoms and one more than the deepest item for blocks.
func (c Code) Depth() int {
	if c.op != nil {
		return 0
	}
	d := 0
	for _, item := range c.items {
		if id := item.Depth(); id > d {
			d = id
		}
	}
	return d + 1
}

// Equal reports structural equality.
func (c Code) Equal(o Code) bool {
	if c.op != o.op || c.lit != o.lit {
		return false
	}
	if c.op != nil {
		return true
	}
	if len(c.items) != len(o.items) || c.inner != o.inner {
		return false
	}
	for i := range c.items {
		if !c.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

// At returns the node at pre-order index i, 0 being c itself.
func (c Code) At(i int) (Code, bool) {
	sub, _, ok := c.locate(i)
	return sub, ok
}

// locate returns the node at index i and the number of blocks enclosing it.
func (c Code) locate(i int) (sub Code, level int, ok bool) {
	if i < 0 || i >= c.Points() {
		return sub, 0, false
	}
	for i > 0 {
		i--
		for _, item := range c.items {
			if n := item.Points(); i < n {
				c = item
				level++
				break
			} else {
				i -= n
			}
		}
	}
	return c, level, true
}

// Replace returns a copy of c with the node at pre-order index i replaced by
// sub; c is not modified.
func (c Code) Replace(i int, sub Code) (Code, bool) {
	if i < 0 || i >= c.Points() {
		return c, false
	}
	return c.replace(i, sub), true
}

func (c Code) replace(i int, sub Code) Code {
	if i == 0 {
		return sub
	}
	i--
	items := append([]Code(nil), c.items...)
	for j, item := range items {
		if n := item.Points(); i < n {
			items[j] = item.replace(i, sub)
			break
		} else {
			i -= n
		}
	}
	return block(items)
}

// walk visits every node in pre-order until f returns false.
func (c Code) walk(f func(Code) bool) bool {
	if !f(c) {
		return false
	}
	for _, item := range c.items {
		if !item.walk(f) {
			return false
		}
	}
	return true
}

// list treats an atom as a one item list.
func (c Code) list() []Code {
	if c.op != nil {
		return []Code{c}
	}
	return c.items
}

// Contains reports whether o occurs anywhere within c, c included.
func (c Code) Contains(o Code) bool {
	found := false
	c.walk(func(sub Code) bool {
		found = sub.Equal(o)
		return !found
	})
	return found
}

// Container returns the first block, in pre-order, that has o as an item.
func (c Code) Container(o Code) (Code, bool) {
	var found Code
	ok := false
	c.walk(func(sub Code) bool {
		for _, item := range sub.items {
			if item.Equal(o) {
				found, ok = sub, true
				return false
			}
		}
		return true
	})
	return found, ok
}

// Member reports whether o is a top level item of c.
func (c Code) Member(o Code) bool { return c.Position(o) >= 0 }

// Position returns the index of o among the top level items of c, or -1.
func (c Code) Position(o Code) int {
	for i, item := range c.list() {
		if item.Equal(o) {
			return i
		}
	}
	return -1
}

// Substitute replaces every occurrence of old with with.
func (c Code) Substitute(old, with Code) Code {
	if c.Equal(old) {
		return with
	}
	if c.op != nil {
		return c
	}
	items := make([]Code, len(c.items))
	for i, item := range c.items {
		items[i] = item.Substitute(old, with)
	}
	return block(items)
}

// Discrepancy counts, over every distinct sub-expression of c and o, the
// difference between the number of times it occurs in each.
func (c Code) Discrepancy(o Code) int {
	a, b := c.subExprs(), o.subExprs()
	n := 0
	for k, an := range a {
		bn := b[k]
		if an > bn {
			n += an - bn
		} else {
			n += bn - an
		}
	}
	for k, bn := range b {
		if _, seen := a[k]; !seen {
			n += bn
		}
	}
	return n
}

// subExprs counts the items of a block at every level, or the atom itself.
func (c Code) subExprs() map[string]int {
	counts := make(map[string]int)
	if c.op != nil {
		counts[c.String()]++
		return counts
	}
	for _, item := range c.items {
		item.walk(func(sub Code) bool {
			counts[sub.String()]++
			return true
		})
	}
	return counts
}

func (c Code) String() string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}

func (c Code) writeTo(sb *strings.Builder) {
	switch {
	case c.op == nil:
		sb.WriteByte('(')
		for i, item := range c.items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item.writeTo(sb)
		}
		sb.WriteByte(')')
	case c.op.Literal != nil:
		sb.WriteString(c.op.Literal.Render(c.lit))
	default:
		sb.WriteString(c.op.Name)
	}
}
