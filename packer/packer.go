package packer

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/types"
)

// CanHost reports whether server admits replica under capacity: the service
// must not be hosted yet (anti-affinity) and usage must stay within capacity
// on every dimension. Pure, mutates nothing.
func CanHost(server *types.Server, replica *types.Replica, capacity types.ResourceVector) bool {
	if _, ok := server.Services[replica.Service]; ok {
		return false
	}
	return server.Usage.FitsIn(replica.Demand, capacity)
}

// Validate rejects inputs no packing run can ever satisfy: a non-positive
// capacity on a demanded dimension, or a single replica larger than an empty
// server. Both would otherwise make the greedy loop open servers forever.
func Validate(replicas []*types.Replica, capacity types.ResourceVector) error {
	for _, replica := range replicas {
		for d := types.Dimension(0); d < types.NumDimensions; d++ {
			if capacity[d] <= 0 && replica.Demand[d] > 0 {
				return errors.Wrapf(types.ErrInvalidCapacity, "%s capacity %v but service %s demands %v",
					d, capacity[d], replica.Service, replica.Demand[d])
			}
			if replica.Demand[d] > 0 && replica.Demand[d] > capacity[d] {
				return errors.Wrapf(types.ErrUnplaceableReplica, "service %s demands %v %s, capacity %v",
					replica.Service, replica.Demand[d], d, capacity[d])
			}
		}
	}
	return nil
}

type ffdItem struct {
	replica *types.Replica
	key     [types.NumDimensions]float64
}

func (i ffdItem) less(j ffdItem) bool {
	for d := range i.key {
		if i.key[d] != j.key[d] {
			return i.key[d] > j.key[d]
		}
	}
	return false
}

// Pack runs First-Fit Decreasing under the given dimension ordering. Replicas
// sort by their normalized demand tuple, primary dimension first; the sort is
// stable so equal keys keep input order and the result is deterministic.
func Pack(replicas []*types.Replica, capacity types.ResourceVector, ordering []types.Dimension) (*types.Plan, error) {
	if err := validateOrdering(ordering); err != nil {
		return nil, err
	}
	if err := Validate(replicas, capacity); err != nil {
		return nil, err
	}

	items := make([]ffdItem, len(replicas))
	for i, replica := range replicas {
		items[i] = ffdItem{replica: replica}
		for rank, d := range ordering {
			if capacity[d] > 0 {
				items[i].key[rank] = replica.Demand[d] / capacity[d]
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].less(items[j]) })

	plan := &types.Plan{Capacity: capacity}
	for _, item := range items {
		placed := false
		for _, server := range plan.Servers {
			if CanHost(server, item.replica, capacity) {
				server.Host(item.replica)
				placed = true
				break
			}
		}
		if !placed {
			server := types.NewServer(plan.NextServerName())
			server.Host(item.replica)
			plan.Servers = append(plan.Servers, server)
		}
	}
	return plan, nil
}

func validateOrdering(ordering []types.Dimension) error {
	if len(ordering) != int(types.NumDimensions) {
		return errors.Wrapf(types.ErrInvalidOrdering, "got %d dimensions", len(ordering))
	}
	seen := [types.NumDimensions]bool{}
	for _, d := range ordering {
		if d < 0 || d >= types.NumDimensions || seen[d] {
			return errors.Wrapf(types.ErrInvalidOrdering, "%v", ordering)
		}
		seen[d] = true
	}
	return nil
}
