package push

import (
	"math/rand"
	"sort"
)

// Generate builds a random program of between 1 and maxPoints points, no
// deeper than maxDepth, drawing atoms by instruction weight.
func (reg *Registry) Generate(rnd *rand.Rand, maxPoints, maxDepth int) Code {
	return reg.generate(rnd, maxPoints, maxDepth, nil)
}

// generate also offers names as atoms, each with the registry's name weight.
func (reg *Registry) generate(rnd *rand.Rand, maxPoints, maxDepth int, names []string) Code {
	if maxPoints < 1 {
		maxPoints = 1
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	gen := generator{reg: reg, rnd: rnd}
	if len(names) > 0 && reg.nameWeight > 0 {
		if lit, ok := reg.LiteralFor(KindName); ok {
			gen.names, gen.nameLit = names, lit
		}
	}
	return gen.shape(1+rnd.Intn(maxPoints), maxDepth)
}

type generator struct {
	reg     *Registry
	rnd     *rand.Rand
	names   []string
	nameLit *Instruction
}

// shape builds a tree of at most points points and depth.
func (gen generator) shape(points, depth int) Code {
	if points <= 1 || depth <= 0 {
		return gen.atom()
	}
	parts := gen.decompose(points-1, points-1)
	gen.rnd.Shuffle(len(parts), func(i, j int) { parts[i], parts[j] = parts[j], parts[i] })
	items := make([]Code, len(parts))
	for i, part := range parts {
		items[i] = gen.shape(part, depth-1)
	}
	return block(items)
}

// decompose splits n into at most maxParts positive parts.
func (gen generator) decompose(n, maxParts int) []int {
	if n <= 1 || maxParts <= 1 {
		return []int{n}
	}
	part := 1 + gen.rnd.Intn(n-1)
	return append(gen.decompose(n-part, maxParts-1), part)
}

func (gen generator) atom() Code {
	cum := gen.reg.cumWeight
	total := cum[len(cum)-1]
	x := gen.rnd.Float64() * (total + gen.reg.nameWeight*float64(len(gen.names)))

	if x >= total && len(gen.names) > 0 {
		i := int((x - total) / gen.reg.nameWeight)
		if i >= len(gen.names) {
			i = len(gen.names) - 1
		}
		return Code{op: gen.nameLit, lit: gen.names[i]}
	}

	i := sort.Search(len(cum), func(i int) bool { return cum[i] > x })
	if i == len(cum) {
		// rounding; settle on the last instruction with any weight
		for i = len(cum) - 1; i > 0 && cum[i] == cum[i-1]; i-- {
		}
	}
	ins := gen.reg.instrs[i]
	if lit := ins.Literal; lit != nil {
		return Code{op: ins, lit: lit.Random(gen.rnd)}
	}
	return Code{op: ins}
}
