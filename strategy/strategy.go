package strategy

import (
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/types"
	"github.com/projecteru2/tetris/utils"
)

const (
	// Canonical evaluates the criticality ordering only
	Canonical = "CANONICAL"
	// Random evaluates the canonical ordering plus a seeded random sample
	Random = "RANDOM"
	// Exhaustive evaluates every permutation of the dimension set
	Exhaustive = "EXHAUSTIVE"
)

// Samplers exposes the known strategies by name.
var Samplers = map[string]Sampler{
	Canonical:  canonicalSampler{},
	Random:     randomSampler{},
	Exhaustive: exhaustiveSampler{},
}

// Sampler produces the candidate dimension orderings to trial, canonical
// first. Implementations must be deterministic given the same generator state
// and must never emit duplicate orderings.
type Sampler interface {
	Sample(rng *rand.Rand, canonical []types.Dimension, budget int) [][]types.Dimension
}

// Get resolves a sampler by name.
func Get(name string) (Sampler, error) {
	sampler, ok := Samplers[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrBadStrategy, "%s", name)
	}
	return sampler, nil
}

type canonicalSampler struct{}

// Sample .
func (canonicalSampler) Sample(_ *rand.Rand, canonical []types.Dimension, _ int) [][]types.Dimension {
	return [][]types.Dimension{canonical}
}

type randomSampler struct{}

// Sample draws up to budget permutations without replacement. The canonical
// ordering is removed from the pool before drawing so it is trialed exactly
// once, at the head.
func (randomSampler) Sample(rng *rand.Rand, canonical []types.Dimension, budget int) [][]types.Dimension {
	pool := [][]types.Dimension{}
	for _, p := range permutations(types.AllDimensions()) {
		if !equalOrdering(p, canonical) {
			pool = append(pool, p)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	// a budget beyond the permutation space silently clamps
	if budget < 0 {
		budget = 0
	}
	budget = utils.Min(budget, len(pool))
	return append([][]types.Dimension{canonical}, pool[:budget]...)
}

type exhaustiveSampler struct{}

// Sample .
func (exhaustiveSampler) Sample(_ *rand.Rand, canonical []types.Dimension, _ int) [][]types.Dimension {
	candidates := [][]types.Dimension{canonical}
	for _, p := range permutations(types.AllDimensions()) {
		if !equalOrdering(p, canonical) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// permutations generates all orderings of dims in a deterministic sequence.
func permutations(dims []types.Dimension) [][]types.Dimension {
	if len(dims) <= 1 {
		return [][]types.Dimension{append([]types.Dimension{}, dims...)}
	}
	result := [][]types.Dimension{}
	for i := range dims {
		rest := make([]types.Dimension, 0, len(dims)-1)
		rest = append(rest, dims[:i]...)
		rest = append(rest, dims[i+1:]...)
		for _, p := range permutations(rest) {
			result = append(result, append([]types.Dimension{dims[i]}, p...))
		}
	}
	return result
}

func equalOrdering(a, b []types.Dimension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
