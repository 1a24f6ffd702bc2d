package push

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes every stack, top last, followed by the name bindings.
func (c *Context) Dump(out io.Writer) {
	dump := contextDumper{c: c, out: out}
	dump.dump()
}

func (c *Context) String() string {
	var sb strings.Builder
	c.Dump(&sb)
	return sb.String()
}

type contextDumper struct {
	c   *Context
	out io.Writer

	kindWidth int
}

func (dump contextDumper) dump() {
	fmt.Fprintf(dump.out, "# Context Dump\n")
	for _, st := range dump.c.order {
		if n := len(st.Kind()); n > dump.kindWidth {
			dump.kindWidth = n
		}
	}
	for _, st := range dump.c.order {
		dump.dumpStack(st)
	}
	dump.dumpNames()
}

func (dump contextDumper) dumpStack(st Stacker) {
	var buf strings.Builder
	buf.WriteByte('[')
	for i, v := range st.Values() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(dump.format(st.Kind(), v))
	}
	buf.WriteByte(']')
	fmt.Fprintf(dump.out, "  %-*v %v\n", dump.kindWidth+1, string(st.Kind())+":", buf.String())
}

func (dump contextDumper) dumpNames() {
	names := dump.c.Bound()
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Names\n")
	for _, name := range names {
		fmt.Fprintf(dump.out, "  %v: %v\n", name, dump.c.names[name])
	}
}

// format renders a value the way its kind's literal would.
func (dump contextDumper) format(kind Kind, v interface{}) string {
	if code, ok := v.(Code); ok {
		return code.String()
	}
	if ins, ok := dump.c.reg.LiteralFor(kind); ok {
		return ins.Literal.Render(v)
	}
	return fmt.Sprint(v)
}
