package push

import "math/rand"

// Mutate replaces a random subtree of tree with a freshly generated one; see
// MutateAt.
func Mutate(reg *Registry, tree Code, maxPoints int, rnd *rand.Rand) Code {
	return MutateAt(reg, tree, rnd.Intn(tree.Points()), maxPoints, rnd)
}

// MutateAt replaces the subtree at pre-order index i with a generated one.
// The replacement is sized so the child has at most maxPoints points
// (non-positive means no ceiling), and within the registry's random
// expression limits. The parent comes back unchanged if i is out of range or
// no replacement fits.
func MutateAt(reg *Registry, tree Code, i, maxPoints int, rnd *rand.Rand) Code {
	sub, level, ok := tree.locate(i)
	if !ok {
		return tree
	}
	lim := reg.limits
	budget := lim.MaxRandomPoints
	if maxPoints > 0 {
		if room := maxPoints - (tree.Points() - sub.Points()); room < budget {
			budget = room
		}
	}
	if budget < 1 {
		return tree
	}
	repl := reg.generate(rnd, budget, lim.MaxRandomDepth-level, nil)
	child, _ := tree.Replace(i, repl)
	return child
}

// Crossover replaces a random subtree of a with a random subtree of b; see
// CrossoverAt.
func Crossover(a, b Code, maxPoints int, rnd *rand.Rand) Code {
	i := rnd.Intn(a.Points())
	j := rnd.Intn(b.Points())
	return CrossoverAt(a, b, i, j, maxPoints)
}

// CrossoverAt returns a with its subtree at index i replaced by b's subtree
// at index j. If that child would have more than maxPoints points (when
// positive), or either index is out of range, a is returned unchanged.
func CrossoverAt(a, b Code, i, j, maxPoints int) Code {
	sub, ok := b.At(j)
	if !ok {
		return a
	}
	child, ok := a.Replace(i, sub)
	if !ok || (maxPoints > 0 && child.Points() > maxPoints) {
		return a
	}
	return child
}

// Variation chooses between mutation and crossover by relative rate.
type Variation struct {
	MutationRate  float64
	CrossoverRate float64
	MaxPoints     int
}

// Child produces one offspring of a, taking material from b on crossover.
func (v Variation) Child(reg *Registry, a, b Code, rnd *rand.Rand) Code {
	total := v.MutationRate + v.CrossoverRate
	if total <= 0 || rnd.Float64()*total < v.MutationRate {
		return Mutate(reg, a, v.MaxPoints, rnd)
	}
	return Crossover(a, b, v.MaxPoints, rnd)
}
