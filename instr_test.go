package push

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gopush/internal/logio"
)

func baseRegistry(t testing.TB) *Registry {
	reg, err := NewRegistry(WithInstructions(BaseInstructions()...))
	require.NoError(t, err, "base registry")
	return reg
}

type progTestCases []progTestCase

func (pts progTestCases) run(t *testing.T) {
	reg := baseRegistry(t)
	for _, pt := range pts {
		pt := pt
		if !t.Run(pt.name, func(t *testing.T) { pt.run(t, reg) }) {
			return
		}
	}
}

func progTest(name, prog string) (pt progTestCase) {
	pt.name = name
	pt.prog = prog
	pt.steps = 1000
	return pt
}

// progTestCase runs a program on a fresh context. Custom checks run first and
// may consume what they inspect; after that every stack not given an
// expectation must be empty.
type progTestCase struct {
	name   string
	prog   string
	steps  int
	status Status
	want   map[Kind][]string
	expect []func(t *testing.T, c *Context)
}

func (pt progTestCase) withSteps(steps int) progTestCase {
	pt.steps = steps
	return pt
}

func (pt progTestCase) expectStatus(status Status) progTestCase {
	pt.status = status
	return pt
}

func (pt progTestCase) expectStack(kind Kind, values ...string) progTestCase {
	want := make(map[Kind][]string, len(pt.want)+1)
	for k, vs := range pt.want {
		want[k] = vs
	}
	want[kind] = append([]string{}, values...)
	pt.want = want
	return pt
}

func (pt progTestCase) expectInts(values ...int64) progTestCase {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.FormatInt(v, 10)
	}
	return pt.expectStack(KindInteger, strs...)
}

func (pt progTestCase) expectFloats(values ...float64) progTestCase {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = formatFloat(v)
	}
	return pt.expectStack(KindFloat, strs...)
}

func (pt progTestCase) expectBools(values ...bool) progTestCase {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = BoolLiteral().Literal.Render(v)
	}
	return pt.expectStack(KindBool, strs...)
}

func (pt progTestCase) expectNames(names ...string) progTestCase {
	return pt.expectStack(KindName, names...)
}

// expectCode takes program text, compared after parsing.
func (pt progTestCase) expectCode(srcs ...string) progTestCase {
	return pt.expectStack(KindCode, srcs...)
}

func (pt progTestCase) expectExec(srcs ...string) progTestCase {
	return pt.expectStack(KindExec, srcs...)
}

func (pt progTestCase) expectBound(name, src string) progTestCase {
	pt.expect = append(pt.expect, func(t *testing.T, c *Context) {
		code, ok := c.Binding(name)
		if assert.True(t, ok, "expected %v to be bound", name) {
			assert.Equal(t, c.reg.MustParse(src).String(), code.String(), "%v binding", name)
		}
	})
	return pt
}

func (pt progTestCase) expectThat(check func(t *testing.T, c *Context)) progTestCase {
	pt.expect = append(pt.expect, check)
	return pt
}

func (pt progTestCase) run(t *testing.T, reg *Registry) {
	prog, err := reg.Parse(pt.prog)
	require.NoError(t, err, "parse %q", pt.prog)

	c := NewContext(reg, WithLogf(t.Logf))
	res := c.Run(prog, pt.steps, 0)
	assert.Equal(t, pt.status, res.Status, "run status")

	for _, expect := range pt.expect {
		expect(t, c)
	}

	dump := contextDumper{c: c}
	for _, kind := range reg.Kinds() {
		want := append([]string(nil), pt.want[kind]...)
		if kind == KindCode || kind == KindExec {
			for i, src := range want {
				want[i] = reg.MustParse(src).String()
			}
		}
		var got []string
		for _, v := range c.Stack(kind).Values() {
			got = append(got, dump.format(kind, v))
		}
		if len(want) == 0 {
			assert.Empty(t, got, "expected empty %v stack", kind)
		} else {
			assert.Equal(t, want, got, "%v stack", kind)
		}
	}
	if t.Failed() {
		c.Dump(&logio.Writer{Logf: t.Logf, Prefix: "fail_dump: "})
	}
}

func TestBoolInstructions(t *testing.T) {
	progTestCases{
		progTest("and", "( true false BOOLEAN.AND )").expectBools(false),
		progTest("or", "( true false BOOLEAN.OR )").expectBools(true),
		progTest("not", "( true BOOLEAN.NOT )").expectBools(false),
		progTest("from integer", "( 0 BOOLEAN.FROMINTEGER 7 BOOLEAN.FROMINTEGER )").expectBools(false, true),
		progTest("from float", "( 0.0 0.00001 BOOLEAN.FROMFLOAT BOOLEAN.FROMFLOAT )").expectBools(true, false),
		progTest("upper case literals", "( TRUE FALSE )").expectBools(true, false),
		progTest("dup", "( true BOOLEAN.DUP )").expectBools(true, true),
		progTest("equal", "( true false BOOLEAN.EQUAL )").expectBools(false),
		progTest("flush", "( true false BOOLEAN.FLUSH )"),
		progTest("pop", "( true false BOOLEAN.POP )").expectBools(true),
		progTest("rot", "( true false false BOOLEAN.ROT )").expectBools(false, false, true),
		progTest("swap", "( true false BOOLEAN.SWAP )").expectBools(false, true),
		progTest("shove", "( true false true 2 BOOLEAN.SHOVE )").expectBools(true, true, false),
		progTest("yank", "( true false false 2 BOOLEAN.YANK )").expectBools(false, false, true),
		progTest("yankdup", "( true false 1 BOOLEAN.YANKDUP )").expectBools(true, false, true),
		progTest("stackdepth", "( true false BOOLEAN.STACKDEPTH )").expectBools(true, false).expectInts(2),
		progTest("define", "( KMu7 true BOOLEAN.DEFINE KMu7 )").
			expectBools(true).
			expectBound("KMu7", "true"),
		progTest("rand", "( BOOLEAN.RAND )").expectThat(func(t *testing.T, c *Context) {
			assert.Equal(t, 1, c.Bool.Len())
			c.Bool.Clear()
		}),
	}.run(t)
}

func TestIntegerInstructions(t *testing.T) {
	progTestCases{
		progTest("sum", "( 1 2 INTEGER.SUM )").expectInts(3),
		progTest("difference", "( 3 1 INTEGER.DIFFERENCE )").expectInts(2),
		progTest("product", "( 3 4 INTEGER.PRODUCT )").expectInts(12),
		progTest("quotient", "( 7 2 INTEGER.QUOTIENT )").expectInts(3),
		progTest("quotient by zero", "( 7 0 INTEGER.QUOTIENT )").expectInts(7, 0),
		progTest("modulo", "( -5 3 INTEGER.MODULO )").expectInts(-2),
		progTest("modulo by zero", "( 5 0 INTEGER.MODULO )").expectInts(5, 0),
		progTest("min", "( 5 3 INTEGER.MIN )").expectInts(3),
		progTest("max", "( 5 3 INTEGER.MAX )").expectInts(5),
		progTest("less", "( 5 3 INTEGER.LESS )").expectBools(false),
		progTest("greater", "( 5 3 INTEGER.GREATER )").expectBools(true),
		progTest("from boolean", "( true INTEGER.FROMBOOLEAN )").expectInts(1),
		progTest("from float", "( -3.9 INTEGER.FROMFLOAT )").expectInts(-3),
		progTest("dup", "( 5 INTEGER.DUP )").expectInts(5, 5),
		progTest("equal", "( 1 2 INTEGER.EQUAL )").expectBools(false),
		progTest("rot", "( 0 1 2 INTEGER.ROT )").expectInts(1, 2, 0),
		progTest("shove", "( 1 2 3 2 INTEGER.SHOVE )").expectInts(3, 1, 2),
		progTest("shove wraps", "( 1 2 3 3 INTEGER.SHOVE )").expectInts(1, 2, 3),
		progTest("yank", "( 1 2 3 4 2 INTEGER.YANK )").expectInts(1, 3, 4, 2),
		progTest("yankdup", "( 1 2 3 4 2 INTEGER.YANKDUP )").expectInts(1, 2, 3, 4, 2),
		progTest("stackdepth", "( 1 2 INTEGER.STACKDEPTH )").expectInts(1, 2, 2),
		progTest("shove needs an item", "( 0 INTEGER.SHOVE )").expectInts(0),
		progTest("define", "( N 7 INTEGER.DEFINE N N )").expectInts(7, 7).expectBound("N", "7"),
	}.run(t)
}

func TestFloatInstructions(t *testing.T) {
	progTestCases{
		progTest("sum", "( 1.5 2.5 FLOAT.SUM )").expectFloats(4),
		progTest("difference", "( 1.5 2.5 FLOAT.DIFFERENCE )").expectFloats(-1),
		progTest("quotient by zero", "( 1.0 0.0 FLOAT.QUOTIENT )").expectFloats(1, 0),
		progTest("modulo", "( -5.0 3.0 FLOAT.MODULO )").expectFloats(-2),
		progTest("sin", "( 1.0 FLOAT.SIN )").expectFloats(math.Sin(1)),
		progTest("cos", "( 1.0 FLOAT.COS )").expectFloats(math.Cos(1)),
		progTest("overflow", "( 1e308 10.0 FLOAT.PRODUCT )").expectFloats(1e308, 10),
		progTest("from integer", "( 3 FLOAT.FROMINTEGER )").expectFloats(3),
		progTest("from boolean", "( true FLOAT.FROMBOOLEAN )").expectFloats(1),
		progTest("less", "( 1.0 2.0 FLOAT.LESS )").expectBools(true),
		progTest("swap", "( 1.0 2.0 FLOAT.SWAP )").expectFloats(2, 1),
	}.run(t)
}

func TestNameInstructions(t *testing.T) {
	progTestCases{
		progTest("push", "( A B )").expectNames("A", "B"),
		progTest("quote", "( A 1.0 FLOAT.DEFINE NAME.QUOTE A )").expectNames("A"),
		progTest("bound name runs", "( A 1.0 FLOAT.DEFINE A )").expectFloats(1),
		progTest("swap", "( A B NAME.SWAP )").expectNames("B", "A"),
		progTest("equal", "( A B NAME.EQUAL )").expectBools(false),
		progTest("no bound names", "( NAME.RANDBOUNDNAME )"),
		progTest("rand bound name", "( A 1 INTEGER.DEFINE NAME.RANDBOUNDNAME )").expectNames("A"),
		progTest("rand", "( NAME.RAND )").expectThat(func(t *testing.T, c *Context) {
			name, ok := c.Name.Pop()
			require.True(t, ok)
			assert.Len(t, name, 6)
			_, isName := parseName(name)
			assert.True(t, isName, "random name %q must read back as a name", name)
		}),
	}.run(t)
}

func TestCodeInstructions(t *testing.T) {
	progTestCases{
		progTest("append", "( CODE.QUOTE 1 CODE.QUOTE 2 CODE.APPEND )").expectCode("( 1 2 )"),
		progTest("atom", "( CODE.QUOTE -12 CODE.ATOM )").expectBools(true),
		progTest("car", "( CODE.QUOTE ( -12 2 ) CODE.CAR )").expectCode("-12"),
		progTest("car of empty", "( CODE.QUOTE ( ) CODE.CAR )").expectCode("( )"),
		progTest("cdr", "( CODE.QUOTE ( -12 2 ) CODE.CDR )").expectCode("( 2 )"),
		progTest("cdr of atom", "( CODE.QUOTE A CODE.CDR )").expectCode("( )"),
		progTest("cons", "( CODE.QUOTE true CODE.QUOTE ( 1 2 ) CODE.CONS )").expectCode("( true 1 2 )"),
		progTest("container",
			"( CODE.QUOTE ( B ( C ( A ) ) ( D ( A ) ) ) CODE.QUOTE ( A ) CODE.CONTAINER )").
			expectCode("( C ( A ) )"),
		progTest("contains",
			"( CODE.QUOTE ( B ( C ( A ) ) ( D ( A ) ) ) CODE.QUOTE ( A ) CODE.CONTAINS )").
			expectBools(true),
		progTest("definition", "( CODE.QUOTE true ANAME ANAME CODE.DEFINE CODE.DEFINITION )").
			expectCode("true"),
		progTest("definition of unbound", "( ANAME CODE.DEFINITION )").expectNames("ANAME"),
		progTest("define", "( SOMENAME CODE.QUOTE true CODE.DEFINE SOMENAME )").expectBools(true),
		progTest("discrepancy",
			"( CODE.QUOTE ( ANAME ( 3 ( 1 ) ) 1 ( 1 ) ) CODE.QUOTE 1 CODE.DISCREPANCY )").
			expectInts(7),
		progTest("no discrepancy", "( CODE.QUOTE ( A B ) CODE.QUOTE ( A B ) CODE.DISCREPANCY )").expectInts(0),
		progTest("do", "( CODE.QUOTE ( false 1 ) CODE.DO )").expectBools(false).expectInts(1),
		progTest("do pops last", "( CODE.QUOTE ( CODE.QUOTE false ) CODE.DO )").
			expectCode("( CODE.QUOTE false )"),
		progTest("do*", "( CODE.QUOTE ( false 1 ) CODE.DO* )").expectBools(false).expectInts(1),
		progTest("doncount", "( 4 CODE.QUOTE BOOLEAN.FROMINTEGER CODE.DONCOUNT )").
			expectBools(false, true, true, true),
		progTest("donrange", "( 2 0 CODE.QUOTE INTEGER.DUP CODE.DONRANGE )").expectInts(2, 2, 1, 1, 0, 0),
		progTest("dontimes", "( false true true 2 CODE.QUOTE BOOLEAN.ROT CODE.DONTIMES )").
			expectBools(true, false, true),
		progTest("doncount of zero", "( 0 CODE.QUOTE A CODE.DONCOUNT )").expectInts(0).expectCode("A"),
		progTest("extract root", "( CODE.QUOTE ( 1 ( 2 ) ) 0 CODE.EXTRACT )").expectCode("( 1 ( 2 ) )"),
		progTest("extract 1", "( CODE.QUOTE ( 1 ( 2 ) ) 1 CODE.EXTRACT )").expectCode("1"),
		progTest("extract 2", "( CODE.QUOTE ( 1 ( 2 ) ) 2 CODE.EXTRACT )").expectCode("( 2 )"),
		progTest("extract 3", "( CODE.QUOTE ( 1 ( 2 ) ) 3 CODE.EXTRACT )").expectCode("2"),
		progTest("extract wraps", "( CODE.QUOTE ( 1 ( 2 ) ) 4 CODE.EXTRACT )").expectCode("( 1 ( 2 ) )"),
		progTest("extract negative", "( CODE.QUOTE ( 1 ( 2 ) ) -1 CODE.EXTRACT )").expectCode("1"),
		progTest("from boolean", "( true CODE.FROMBOOLEAN )").expectCode("true"),
		progTest("from float", "( 1.5 CODE.FROMFLOAT )").expectCode("1.5"),
		progTest("from integer", "( 5 CODE.FROMINTEGER )").expectCode("5"),
		progTest("from name", "( NAME.QUOTE A CODE.FROMNAME )").expectCode("A"),
		progTest("if", "( true CODE.QUOTE TRUENAME CODE.QUOTE FALSENAME CODE.IF )").expectNames("TRUENAME"),
		progTest("if false", "( false CODE.QUOTE TRUENAME CODE.QUOTE FALSENAME CODE.IF )").expectNames("FALSENAME"),
		progTest("insert", "( CODE.QUOTE C CODE.QUOTE ( A ( B ) ) 2 CODE.INSERT )").expectCode("( A C )"),
		progTest("length", "( CODE.QUOTE ( A B ( C 1 ) ) CODE.LENGTH )").expectInts(3),
		progTest("length of atom", "( CODE.QUOTE A CODE.LENGTH )").expectInts(1),
		progTest("list", "( CODE.QUOTE A CODE.QUOTE ( B ) CODE.LIST )").expectCode("( A ( B ) )"),
		progTest("member", "( CODE.QUOTE A CODE.QUOTE ( A ( B ) ) CODE.MEMBER )").expectBools(true),
		progTest("not member", "( CODE.QUOTE B CODE.QUOTE ( A ( B ) ) CODE.MEMBER )").expectBools(false),
		progTest("nth", "( CODE.QUOTE ( A ( B ) C ) 2 CODE.NTH )").expectCode("C"),
		progTest("nth wraps", "( CODE.QUOTE ( A ( B ) C ) 4 CODE.NTH )").expectCode("( B )"),
		progTest("nth of empty", "( CODE.QUOTE ( ) 3 CODE.NTH )").expectCode("( )"),
		progTest("nthcdr", "( CODE.QUOTE ( A ( B ) C ) 2 CODE.NTHCDR )").expectCode("( C )"),
		progTest("nthcdr of atom", "( CODE.QUOTE A 0 CODE.NTHCDR )").expectCode("( A )"),
		progTest("null", "( CODE.QUOTE ( ) CODE.NULL )").expectBools(true),
		progTest("null atom", "( CODE.QUOTE A CODE.NULL )").expectBools(false),
		progTest("position", "( CODE.QUOTE ( B ) CODE.QUOTE ( A ( B ) ) CODE.POSITION )").expectInts(1),
		progTest("position in atom", "( CODE.QUOTE B CODE.QUOTE B CODE.POSITION )").expectInts(0),
		progTest("no position", "( CODE.QUOTE C CODE.QUOTE ( A B ) CODE.POSITION )").expectInts(-1),
		progTest("rand needs an integer", "( CODE.RAND )"),
		progTest("rand", "( 5 CODE.RAND )").expectThat(func(t *testing.T, c *Context) {
			code, ok := c.Code.Pop()
			require.True(t, ok, "expected generated code")
			assert.LessOrEqual(t, code.Points(), 6)
		}),
		progTest("size", "( CODE.QUOTE ( A ( B ) C ) CODE.SIZE )").expectInts(5),
		progTest("substitute",
			"( CODE.QUOTE A CODE.QUOTE ( B ) CODE.QUOTE ( A ( B ) ( A ( B ) ) ) CODE.SUBSTITUTE )").
			expectCode("( A A ( A A ) )"),
		progTest("noop", "( CODE.NOOP )"),
		progTest("quote", "( CODE.QUOTE ( 1 2 ) )").expectCode("( 1 2 )"),
		progTest("swap", "( CODE.QUOTE A CODE.QUOTE B CODE.SWAP )").expectCode("B", "A"),
		progTest("equal", "( CODE.QUOTE ( A ) CODE.QUOTE ( A ) CODE.EQUAL )").expectBools(true),
	}.run(t)
}

func TestExecInstructions(t *testing.T) {
	progTestCases{
		progTest("dup", "( EXEC.DUP 5 )").expectInts(5, 5),
		progTest("equal", "( EXEC.EQUAL 5 5 )").expectBools(true),
		progTest("pop", "( EXEC.POP 5 6 )").expectInts(6),
		progTest("swap", "( EXEC.SWAP 5 6 )").expectInts(6, 5),
		progTest("rot", "( EXEC.ROT A B C )").expectNames("C", "A", "B"),
		progTest("shove", "( 2 EXEC.SHOVE A B C )").expectNames("B", "C", "A"),
		progTest("yank", "( 2 EXEC.YANK A B C D )").expectNames("C", "A", "B", "D"),
		progTest("yankdup", "( 1 EXEC.YANKDUP A B )").expectNames("B", "A", "B"),
		progTest("flush", "( EXEC.FLUSH A B )"),
		progTest("stackdepth", "( EXEC.STACKDEPTH A B )").expectInts(2).expectNames("A", "B"),
		progTest("define", "( A EXEC.DEFINE true A )").expectBools(true).expectBound("A", "true"),
		progTest("if", "( true EXEC.IF A B )").expectNames("A"),
		progTest("if false", "( false EXEC.IF A B )").expectNames("B"),
		progTest("k", "( EXEC.K A B )").expectNames("A"),
		progTest("s", "( EXEC.S A B C )").expectNames("A", "C", "B", "C"),
		progTest("y",
			"( 0 EXEC.Y ( INTEGER.DUP 2 INTEGER.EQUAL EXEC.IF EXEC.POP ( INTEGER.DUP 1 INTEGER.SUM ) ) )").
			expectInts(0, 1, 2),
		progTest("doncount", "( 4 EXEC.DONCOUNT BOOLEAN.FROMINTEGER )").expectBools(false, true, true, true),
		progTest("donrange", "( 0 3 EXEC.DONRANGE INTEGER.DUP )").expectInts(0, 0, 1, 1, 2, 2, 3, 3),
		progTest("donrange down", "( 2 0 EXEC.DONRANGE INTEGER.DUP )").expectInts(2, 2, 1, 1, 0, 0),
		progTest("dontimes", "( 3 EXEC.DONTIMES 7 )").expectInts(7, 7, 7),
		progTest("dontimes of zero", "( 0 EXEC.DONTIMES 7 )").expectInts(0, 7),
		progTest("y runs out of steps", "( EXEC.Y 1 )").
			withSteps(20).
			expectStatus(StepLimit).
			expectThat(func(t *testing.T, c *Context) {
				assert.NotZero(t, c.Int.Len())
				assert.NotZero(t, c.Exec.Len())
				c.Int.Clear()
				c.Exec.Clear()
			}),
	}.run(t)
}
