package strategy

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/types"
	"github.com/stretchr/testify/assert"
)

var canonical = []types.Dimension{types.CPU, types.Network, types.Memory, types.DiskIO, types.Storage}

func orderingKey(ordering []types.Dimension) string {
	return fmt.Sprintf("%v", ordering)
}

func TestGet(t *testing.T) {
	for _, name := range []string{Canonical, Random, Exhaustive} {
		sampler, err := Get(name)
		assert.NoError(t, err)
		assert.NotNil(t, sampler)
	}
	_, err := Get("ANNEALING")
	assert.True(t, errors.Is(err, types.ErrBadStrategy))
}

func TestCanonicalSampler(t *testing.T) {
	candidates := Samplers[Canonical].Sample(rand.New(rand.NewSource(1)), canonical, 100)
	assert.Len(t, candidates, 1)
	assert.Equal(t, canonical, candidates[0])
}

func TestRandomSamplerNoDuplicates(t *testing.T) {
	candidates := Samplers[Random].Sample(rand.New(rand.NewSource(42)), canonical, 100)
	// canonical + 100 sampled
	assert.Len(t, candidates, 101)
	assert.Equal(t, canonical, candidates[0])

	seen := map[string]struct{}{}
	for _, ordering := range candidates {
		key := orderingKey(ordering)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate ordering %s", key)
		seen[key] = struct{}{}
	}
}

func TestRandomSamplerClampsBudget(t *testing.T) {
	// 5! = 120 permutations, canonical excluded from the pool
	candidates := Samplers[Random].Sample(rand.New(rand.NewSource(1)), canonical, 10000)
	assert.Len(t, candidates, 120)
}

func TestRandomSamplerDeterministicBySeed(t *testing.T) {
	first := Samplers[Random].Sample(rand.New(rand.NewSource(7)), canonical, 30)
	again := Samplers[Random].Sample(rand.New(rand.NewSource(7)), canonical, 30)
	assert.Equal(t, first, again)

	other := Samplers[Random].Sample(rand.New(rand.NewSource(8)), canonical, 30)
	assert.NotEqual(t, first, other)
}

func TestExhaustiveSampler(t *testing.T) {
	candidates := Samplers[Exhaustive].Sample(nil, canonical, 0)
	assert.Len(t, candidates, 120)
	assert.Equal(t, canonical, candidates[0])

	seen := map[string]struct{}{}
	for _, ordering := range candidates {
		seen[orderingKey(ordering)] = struct{}{}
	}
	assert.Len(t, seen, 120)
}

func TestPermutations(t *testing.T) {
	perms := permutations(types.AllDimensions())
	assert.Len(t, perms, 120)
	perms = permutations([]types.Dimension{types.CPU})
	assert.Len(t, perms, 1)
}
