package packer

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/types"
	"github.com/stretchr/testify/assert"
)

var testCapacity = types.ResourceVector{2, 4, 100, 50, 200}

func replica(service string, demand types.ResourceVector) *types.Replica {
	return &types.Replica{Service: service, Demand: demand}
}

func TestCanHost(t *testing.T) {
	server := types.NewServer("S1")
	r := replica("svcA", types.ResourceVector{1, 2, 50, 10, 50})
	assert.True(t, CanHost(server, r, testCapacity))
	server.Host(r)

	// anti-affinity beats capacity
	assert.False(t, CanHost(server, replica("svcA", types.ResourceVector{0, 0, 0, 0, 0}), testCapacity))
	// capacity on a single dimension
	assert.False(t, CanHost(server, replica("svcB", types.ResourceVector{1.5, 0, 0, 0, 0}), testCapacity))
	assert.True(t, CanHost(server, replica("svcB", types.ResourceVector{1, 2, 50, 10, 50}), testCapacity))

	// CanHost must not mutate
	assert.Equal(t, types.ResourceVector{1, 2, 50, 10, 50}, server.Usage)
	assert.Len(t, server.Replicas, 1)
}

func TestPackTwoServicesOneServer(t *testing.T) {
	// scenario: combined demand exactly fills capacity
	replicas := []*types.Replica{
		replica("svcA", types.ResourceVector{1, 2, 50, 10, 50}),
		replica("svcB", types.ResourceVector{1, 2, 50, 10, 50}),
	}
	plan, err := Pack(replicas, testCapacity, types.AllDimensions())
	assert.NoError(t, err)
	assert.Len(t, plan.Servers, 1)
	assert.ElementsMatch(t, []string{"svcA", "svcB"}, plan.Servers[0].HostedServices())
	assert.Equal(t, types.ResourceVector{2, 4, 100, 20, 100}, plan.Servers[0].Usage)
}

func TestPackAntiAffinityForcesSecondServer(t *testing.T) {
	replicas := []*types.Replica{
		replica("svcA", types.ResourceVector{1, 2, 50, 10, 50}),
		replica("svcA", types.ResourceVector{1, 2, 50, 10, 50}),
	}
	plan, err := Pack(replicas, testCapacity, types.AllDimensions())
	assert.NoError(t, err)
	assert.Len(t, plan.Servers, 2)
	for _, server := range plan.Servers {
		assert.Equal(t, []string{"svcA"}, server.HostedServices())
	}
}

func TestPackUnplaceable(t *testing.T) {
	replicas := []*types.Replica{
		replica("svcHuge", types.ResourceVector{3, 1, 1, 1, 1}),
	}
	_, err := Pack(replicas, testCapacity, types.AllDimensions())
	assert.True(t, errors.Is(err, types.ErrUnplaceableReplica))
	assert.Contains(t, err.Error(), "svcHuge")
	assert.Contains(t, err.Error(), "cpu")
}

func TestPackInvalidCapacity(t *testing.T) {
	replicas := []*types.Replica{
		replica("svcA", types.ResourceVector{1, 1, 1, 1, 1}),
	}
	capacity := types.ResourceVector{2, 0, 100, 50, 200}
	_, err := Pack(replicas, capacity, types.AllDimensions())
	assert.True(t, errors.Is(err, types.ErrInvalidCapacity))
	assert.Contains(t, err.Error(), "memory")

	// zero capacity on an undemanded dimension is fine
	replicas[0].Demand[types.Memory] = 0
	plan, err := Pack(replicas, capacity, types.AllDimensions())
	assert.NoError(t, err)
	assert.Len(t, plan.Servers, 1)
}

func TestPackInvalidOrdering(t *testing.T) {
	replicas := []*types.Replica{replica("svcA", types.ResourceVector{1, 1, 1, 1, 1})}
	_, err := Pack(replicas, testCapacity, []types.Dimension{types.CPU})
	assert.True(t, errors.Is(err, types.ErrInvalidOrdering))
	_, err = Pack(replicas, testCapacity, []types.Dimension{types.CPU, types.CPU, types.Memory, types.Network, types.DiskIO})
	assert.True(t, errors.Is(err, types.ErrInvalidOrdering))
}

func TestPackDeterministic(t *testing.T) {
	replicas := []*types.Replica{}
	for i := 0; i < 6; i++ {
		replicas = append(replicas,
			replica("svcA", types.ResourceVector{0.5, 1, 10, 5, 20}),
			replica("svcB", types.ResourceVector{0.5, 1, 10, 5, 20}),
			replica("svcC", types.ResourceVector{0.3, 0.5, 30, 2, 10}),
		)
	}
	ordering := []types.Dimension{types.Network, types.CPU, types.Memory, types.DiskIO, types.Storage}
	first, err := Pack(replicas, testCapacity, ordering)
	assert.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Pack(replicas, testCapacity, ordering)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPackStableOnEqualKeys(t *testing.T) {
	// identical demands, distinct services: input order decides placement order
	replicas := []*types.Replica{
		replica("svcA", types.ResourceVector{1, 1, 10, 5, 20}),
		replica("svcB", types.ResourceVector{1, 1, 10, 5, 20}),
		replica("svcC", types.ResourceVector{1, 1, 10, 5, 20}),
	}
	plan, err := Pack(replicas, testCapacity, types.AllDimensions())
	assert.NoError(t, err)
	assert.Len(t, plan.Servers, 2)
	assert.Equal(t, []string{"svcA", "svcB"}, plan.Servers[0].HostedServices())
	assert.Equal(t, []string{"svcC"}, plan.Servers[1].HostedServices())
}

func TestPackEmpty(t *testing.T) {
	plan, err := Pack(nil, testCapacity, types.AllDimensions())
	assert.NoError(t, err)
	assert.Empty(t, plan.Servers)
}

func TestPackCapacityInvariant(t *testing.T) {
	replicas := []*types.Replica{}
	for i := 0; i < 40; i++ {
		replicas = append(replicas, replica("svc"+string(rune('A'+i%7)), types.ResourceVector{0.7, 1.3, 33, 17, 61}))
	}
	plan, err := Pack(replicas, testCapacity, types.AllDimensions())
	assert.NoError(t, err)
	total := 0
	for _, server := range plan.Servers {
		total += len(server.Replicas)
		for d := types.Dimension(0); d < types.NumDimensions; d++ {
			assert.LessOrEqual(t, server.Usage[d], testCapacity[d])
		}
		assert.Equal(t, len(server.Replicas), len(server.Services))
	}
	assert.Equal(t, len(replicas), total)
}
