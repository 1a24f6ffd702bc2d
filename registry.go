package push

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"strings"
)

// Registry misconfiguration errors, wrapped by NewRegistry.
var (
	ErrDuplicate          = errors.New("duplicate instruction")
	ErrBadInstruction     = errors.New("invalid instruction")
	ErrBadWeight          = errors.New("invalid weight")
	ErrNoWeight           = errors.New("generation weights sum to zero")
	ErrUnknownKind        = errors.New("unknown kind")
	ErrBadKind            = errors.New("invalid kind")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrBadLimits          = errors.New("invalid limits")
)

// Input declares that an instruction needs N items of a kind. An Input of
// zero items names a kind the instruction uses without needing anything on it.
type Input struct {
	Kind Kind
	N    int
}

// Instruction is a named VM operation. Exec runs only once every declared
// input is available; it reports false when it declined to act, in which case
// it must have left the context untouched.
//
// Outputs lists one kind per item the instruction may push. Under a stack
// depth ceiling, an instruction whose pushes might not fit is not run at all.
type Instruction struct {
	Name    string
	Inputs  []Input
	Outputs []Kind
	Weight  float64
	Exec    func(c *Context) bool

	// Literal is set on instructions whose atoms carry a value.
	Literal *Literal
}

func (ins *Instruction) String() string { return ins.Name }

// Literal describes the values carried by literal atoms of one kind.
// Values must be comparable.
type Literal struct {
	Kind   Kind
	Parse  func(token string) (interface{}, bool)
	Render func(v interface{}) string
	Random func(rnd *rand.Rand) interface{}

	// Push executes a literal atom; defaults to pushing onto Kind's stack.
	Push func(c *Context, v interface{})
}

// NewLiteral builds a literal instruction for values of type T.
func NewLiteral[T comparable](
	name string, kind Kind,
	parse func(string) (T, bool),
	render func(T) string,
	random func(rnd *rand.Rand) T,
) Instruction {
	return Instruction{
		Name:    name,
		Outputs: []Kind{kind},
		Weight:  1,
		Literal: &Literal{
			Kind: kind,
			Parse: func(token string) (interface{}, bool) {
				v, ok := parse(token)
				return v, ok
			},
			Render: func(v interface{}) string { return render(v.(T)) },
			Random: func(rnd *rand.Rand) interface{} { return random(rnd) },
			Push: func(c *Context, v interface{}) {
				if st := StackOf[T](c, kind); st != nil {
					st.Push(v.(T))
				}
			},
		},
	}
}

// Limits bound the programs built by the generator and code instructions.
type Limits struct {
	// MaxRandomPoints and MaxRandomDepth bound generated expressions, such as
	// mutation replacements and CODE.RAND.
	MaxRandomPoints int
	MaxRandomDepth  int

	// MaxProgramPoints bounds code built by CODE instructions; 0 disables.
	MaxProgramPoints int
}

// DefaultLimits are used unless WithLimits says otherwise.
var DefaultLimits = Limits{
	MaxRandomPoints:  50,
	MaxRandomDepth:   10,
	MaxProgramPoints: 1000,
}

// Registry is the immutable instruction set shared by contexts, the
// generator and the codec.
type Registry struct {
	instrs   []*Instruction
	byName   map[string]*Instruction
	literals []*Instruction
	kinds    []KindDef

	cumWeight  []float64
	nameWeight float64
	limits     Limits
}

// RegistryOption configures NewRegistry.
type RegistryOption interface{ apply(rb *registryBuilder) }

type registryBuilder struct {
	defs       []Instruction
	kinds      []KindDef
	weights    map[string]float64
	nameWeight float64
	limits     Limits
}

type instructionsOption []Instruction
type kindsOption []KindDef
type weightsOption map[string]float64
type limitsOption Limits
type nameWeightOption float64

// WithInstructions adds instruction definitions.
func WithInstructions(defs ...Instruction) RegistryOption { return instructionsOption(defs) }

// WithKinds declares domain stack kinds.
func WithKinds(defs ...KindDef) RegistryOption { return kindsOption(defs) }

// WithWeights overrides generation weights by instruction name.
func WithWeights(weights map[string]float64) RegistryOption { return weightsOption(weights) }

func WithLimits(lim Limits) RegistryOption { return limitsOption(lim) }

// WithNameWeight sets the weight of each bound name when CODE.RAND draws atoms.
func WithNameWeight(w float64) RegistryOption { return nameWeightOption(w) }

func (defs instructionsOption) apply(rb *registryBuilder) { rb.defs = append(rb.defs, defs...) }
func (defs kindsOption) apply(rb *registryBuilder)        { rb.kinds = append(rb.kinds, defs...) }
func (lim limitsOption) apply(rb *registryBuilder)        { rb.limits = Limits(lim) }
func (w nameWeightOption) apply(rb *registryBuilder)      { rb.nameWeight = float64(w) }

func (ws weightsOption) apply(rb *registryBuilder) {
	if rb.weights == nil {
		rb.weights = make(map[string]float64, len(ws))
	}
	for name, w := range ws {
		rb.weights[name] = w
	}
}

// NewRegistry validates and freezes an instruction set.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	rb := registryBuilder{
		nameWeight: 1,
		limits:     DefaultLimits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&rb)
		}
	}
	return rb.build()
}

// MustRegistry is NewRegistry that panics on error.
func MustRegistry(opts ...RegistryOption) *Registry {
	reg, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

func (rb *registryBuilder) build() (*Registry, error) {
	reg := &Registry{
		byName:     make(map[string]*Instruction, len(rb.defs)),
		nameWeight: rb.nameWeight,
		limits:     rb.limits,
	}
	if !validWeight(reg.nameWeight) {
		return nil, fmt.Errorf("%w %v for bound names", ErrBadWeight, reg.nameWeight)
	}

	kinds := make(map[Kind]bool)
	useKind := func(kind Kind) error {
		if kinds[kind] {
			return nil
		}
		def, ok := builtinKinds[kind]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownKind, kind)
		}
		kinds[kind] = true
		reg.kinds = append(reg.kinds, def)
		return nil
	}
	for _, def := range rb.kinds {
		if err := checkKind(def); err != nil {
			return nil, err
		}
		if kinds[def.Kind] {
			return nil, fmt.Errorf("%w %q declared twice", ErrBadKind, def.Kind)
		}
		kinds[def.Kind] = true
		reg.kinds = append(reg.kinds, def)
	}
	if err := useKind(KindExec); err != nil {
		return nil, err
	}

	for i := range rb.defs {
		ins := rb.defs[i]
		if err := checkInstruction(&ins); err != nil {
			return nil, err
		}
		if _, dup := reg.byName[ins.Name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicate, ins.Name)
		}
		if w, ok := rb.weights[ins.Name]; ok {
			ins.Weight = w
		}
		if !validWeight(ins.Weight) {
			return nil, fmt.Errorf("%w %v for %q", ErrBadWeight, ins.Weight, ins.Name)
		}
		for _, in := range ins.Inputs {
			if err := useKind(in.Kind); err != nil {
				return nil, fmt.Errorf("%v input: %w", ins.Name, err)
			}
		}
		ins.Inputs = mergeInputs(ins.Inputs)
		for _, kind := range ins.Outputs {
			if err := useKind(kind); err != nil {
				return nil, fmt.Errorf("%v output: %w", ins.Name, err)
			}
		}
		if lit := ins.Literal; lit != nil {
			if err := useKind(lit.Kind); err != nil {
				return nil, fmt.Errorf("%v literal: %w", ins.Name, err)
			}
			reg.literals = append(reg.literals, &ins)
		}
		reg.instrs = append(reg.instrs, &ins)
		reg.byName[ins.Name] = &ins
	}

	for name := range rb.weights {
		if _, ok := reg.byName[name]; !ok {
			return nil, fmt.Errorf("%w %q given a weight", ErrUnknownInstruction, name)
		}
	}

	total := 0.0
	reg.cumWeight = make([]float64, len(reg.instrs))
	for i, ins := range reg.instrs {
		total += ins.Weight
		reg.cumWeight[i] = total
	}
	if total <= 0 {
		return nil, ErrNoWeight
	}

	lim := reg.limits
	if lim.MaxRandomPoints < 1 || lim.MaxRandomDepth < 0 || lim.MaxProgramPoints < 0 {
		return nil, fmt.Errorf("%w %+v", ErrBadLimits, lim)
	}
	return reg, nil
}

// checkKind rejects incomplete kinds, and built in kinds redeclared with
// another stack type.
func checkKind(def KindDef) error {
	if def.Kind == "" || def.New == nil {
		return fmt.Errorf("%w %q: incomplete", ErrBadKind, def.Kind)
	}
	st := def.New()
	if st == nil || st.Kind() != def.Kind {
		return fmt.Errorf("%w %q: bad stack", ErrBadKind, def.Kind)
	}
	if builtin, ok := builtinKinds[def.Kind]; ok {
		if want, got := reflect.TypeOf(builtin.New()), reflect.TypeOf(st); got != want {
			return fmt.Errorf("%w %q: built in as %v, not %v", ErrBadKind, def.Kind, want, got)
		}
	}
	return nil
}

func checkInstruction(ins *Instruction) error {
	if ins.Name == "" || strings.ContainsAny(ins.Name, "() \t\r\n") {
		return fmt.Errorf("%w name %q", ErrBadInstruction, ins.Name)
	}
	if lit := ins.Literal; lit != nil {
		if lit.Parse == nil || lit.Render == nil || lit.Random == nil {
			return fmt.Errorf("%w %q: incomplete literal", ErrBadInstruction, ins.Name)
		}
		if lit.Push == nil {
			lit := *lit
			kind := lit.Kind
			lit.Push = func(c *Context, v interface{}) {
				if st := c.Stack(kind); st != nil {
					st.PushAny(v)
				}
			}
			ins.Literal = &lit
		}
	} else if ins.Exec == nil {
		return fmt.Errorf("%w %q: no behavior", ErrBadInstruction, ins.Name)
	}
	for _, in := range ins.Inputs {
		if in.N < 0 {
			return fmt.Errorf("%w %q: negative %v input", ErrBadInstruction, ins.Name, in.Kind)
		}
	}
	return nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// mergeInputs sums counts per kind, keeping first-seen order.
func mergeInputs(ins []Input) []Input {
	var out []Input
	for _, in := range ins {
		merged := false
		for i := range out {
			if out[i].Kind == in.Kind {
				out[i].N += in.N
				merged = true
				break
			}
		}
		if !merged && in.N > 0 {
			out = append(out, in)
		}
	}
	return out
}

// Lookup finds an instruction by name.
func (reg *Registry) Lookup(name string) (*Instruction, bool) {
	ins, ok := reg.byName[name]
	return ins, ok
}

// LiteralFor returns the first registered literal instruction of a kind.
func (reg *Registry) LiteralFor(kind Kind) (*Instruction, bool) {
	for _, ins := range reg.literals {
		if ins.Literal.Kind == kind {
			return ins, true
		}
	}
	return nil, false
}

// Instructions returns the registered instructions sorted by name.
func (reg *Registry) Instructions() []*Instruction {
	instrs := append([]*Instruction(nil), reg.instrs...)
	sort.Slice(instrs, func(i, j int) bool { return instrs[i].Name < instrs[j].Name })
	return instrs
}

// Kinds lists the stack kinds a Context of this registry carries.
func (reg *Registry) Kinds() []Kind {
	kinds := make([]Kind, len(reg.kinds))
	for i, def := range reg.kinds {
		kinds[i] = def.Kind
	}
	return kinds
}

func (reg *Registry) Limits() Limits { return reg.limits }

// valueCode wraps a stack value as code: code and exec values are code
// already, others become atoms of their kind's literal.
func (reg *Registry) valueCode(kind Kind, v interface{}) (Code, bool) {
	if code, ok := v.(Code); ok {
		return code, true
	}
	ins, ok := reg.LiteralFor(kind)
	if !ok {
		return Code{}, false
	}
	return Code{op: ins, lit: v}, true
}
