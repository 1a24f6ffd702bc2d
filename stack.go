package push

import "fmt"

// Kind names one typed data channel of a Context.
type Kind string

// Built in kinds.
const (
	KindExec    Kind = "exec"
	KindCode    Kind = "code"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindBool    Kind = "boolean"
	KindName    Kind = "name"
)

// LimitError describes a StackLimit halt. It is also the panic value raised
// by a push past the depth ceiling of the running Context, which only an
// instruction pushing more than its Outputs declare can reach; Run recovers
// it into a StackLimit halt, with that instruction partly applied.
type LimitError struct {
	Kind  Kind
	Depth int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("%v stack limit of %v exceeded", lim.Kind, lim.Depth)
}

// Stacker is the kind-independent view of a Stack, used by the generic
// structural instructions.
type Stacker interface {
	Kind() Kind
	Len() int
	Clear()

	Drop() bool
	Dup() bool
	Swap() bool
	Rot() bool
	Shove(i int64) bool
	Yank(i int64) bool
	YankDup(i int64) bool

	// EqualTop pops the top two values and reports whether they are equal.
	EqualTop() (eq, ok bool)

	PeekAny() (interface{}, bool)
	PopAny() (interface{}, bool)
	PushAny(v interface{}) bool
	Values() []interface{}

	setLimit(n int)
}

// Stack is a typed last-in first-out sequence.
type Stack[T any] struct {
	kind  Kind
	items []T
	eq    func(a, b T) bool
	limit int
}

// NewStack creates an empty stack; eq is used by EqualTop.
func NewStack[T any](kind Kind, eq func(a, b T) bool) *Stack[T] {
	return &Stack[T]{kind: kind, eq: eq}
}

func equalComparable[T comparable](a, b T) bool { return a == b }

func (st *Stack[T]) Kind() Kind     { return st.kind }
func (st *Stack[T]) Len() int       { return len(st.items) }
func (st *Stack[T]) setLimit(n int) { st.limit = n }

// Push adds v on top; past the run's depth ceiling it panics with a LimitError.
func (st *Stack[T]) Push(v T) {
	if st.limit > 0 && len(st.items) >= st.limit {
		panic(LimitError{st.kind, st.limit})
	}
	st.items = append(st.items, v)
}

// Pop removes and returns the top value, or false if the stack is empty.
func (st *Stack[T]) Pop() (v T, ok bool) {
	i := len(st.items) - 1
	if i < 0 {
		return v, false
	}
	v = st.items[i]
	var zero T
	st.items[i] = zero
	st.items = st.items[:i]
	return v, true
}

// Peek returns the top value without removing it.
func (st *Stack[T]) Peek() (v T, ok bool) { return st.PeekAt(0) }

// PeekAt returns the value i items below the top.
func (st *Stack[T]) PeekAt(i int) (v T, ok bool) {
	j := len(st.items) - 1 - i
	if i < 0 || j < 0 {
		return v, false
	}
	return st.items[j], true
}

// Items returns a copy of the stack contents, bottom first.
func (st *Stack[T]) Items() []T {
	return append([]T(nil), st.items...)
}

func (st *Stack[T]) Clear() {
	var zero T
	for i := range st.items {
		st.items[i] = zero
	}
	st.items = st.items[:0]
}

func (st *Stack[T]) Drop() bool {
	_, ok := st.Pop()
	return ok
}

func (st *Stack[T]) Dup() bool {
	v, ok := st.Peek()
	if ok {
		st.Push(v)
	}
	return ok
}

func (st *Stack[T]) Swap() bool {
	n := len(st.items)
	if n < 2 {
		return false
	}
	st.items[n-1], st.items[n-2] = st.items[n-2], st.items[n-1]
	return true
}

// Rot pulls the third item out and puts it on top.
func (st *Stack[T]) Rot() bool {
	n := len(st.items)
	if n < 3 {
		return false
	}
	a, b, c := st.items[n-3], st.items[n-2], st.items[n-1]
	st.items[n-3], st.items[n-2], st.items[n-1] = b, c, a
	return true
}

// index maps a depth from the top onto a slice index, modulo the length;
// negative depths wrap.
func (st *Stack[T]) index(i int64) int {
	n := int64(len(st.items))
	i %= n
	if i < 0 {
		i += n
	}
	return int(n - 1 - i)
}

// Shove moves the top item i positions down.
func (st *Stack[T]) Shove(i int64) bool {
	if len(st.items) == 0 {
		return false
	}
	j := st.index(i)
	v, _ := st.Pop()
	st.items = append(st.items, v)
	copy(st.items[j+1:], st.items[j:])
	st.items[j] = v
	return true
}

// Yank moves the item i positions down to the top.
func (st *Stack[T]) Yank(i int64) bool {
	if len(st.items) == 0 {
		return false
	}
	j := st.index(i)
	v := st.items[j]
	copy(st.items[j:], st.items[j+1:])
	st.items[len(st.items)-1] = v
	return true
}

// YankDup copies the item i positions down onto the top.
func (st *Stack[T]) YankDup(i int64) bool {
	if len(st.items) == 0 {
		return false
	}
	st.Push(st.items[st.index(i)])
	return true
}

func (st *Stack[T]) EqualTop() (eq, ok bool) {
	if len(st.items) < 2 || st.eq == nil {
		return false, false
	}
	a, _ := st.Pop()
	b, _ := st.Pop()
	return st.eq(a, b), true
}

func (st *Stack[T]) PeekAny() (interface{}, bool) {
	v, ok := st.Peek()
	return v, ok
}

func (st *Stack[T]) PopAny() (interface{}, bool) {
	v, ok := st.Pop()
	return v, ok
}

// PushAny pushes v if it has the stack's value type.
func (st *Stack[T]) PushAny(v interface{}) bool {
	tv, ok := v.(T)
	if ok {
		st.Push(tv)
	}
	return ok
}

func (st *Stack[T]) Values() []interface{} {
	vs := make([]interface{}, len(st.items))
	for i, v := range st.items {
		vs[i] = v
	}
	return vs
}

// KindDef declares a stack kind to a Registry.
type KindDef struct {
	Kind Kind
	New  func() Stacker
}

// NewKind declares a domain kind whose values compare with ==.
func NewKind[T comparable](kind Kind) KindDef {
	return NewKindFunc[T](kind, equalComparable[T])
}

// NewKindFunc declares a domain kind with a custom equality.
func NewKindFunc[T any](kind Kind, eq func(a, b T) bool) KindDef {
	return KindDef{kind, func() Stacker { return NewStack[T](kind, eq) }}
}

var builtinKinds = map[Kind]KindDef{
	KindExec:    NewKindFunc[Code](KindExec, Code.Equal),
	KindCode:    NewKindFunc[Code](KindCode, Code.Equal),
	KindInteger: NewKind[int64](KindInteger),
	KindFloat:   NewKind[float64](KindFloat),
	KindBool:    NewKind[bool](KindBool),
	KindName:    NewKind[string](KindName),
}
