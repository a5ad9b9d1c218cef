package optimizer

import (
	"context"
	"math/rand"
	"sort"

	"github.com/projecteru2/tetris/log"
	"github.com/projecteru2/tetris/metrics"
	"github.com/projecteru2/tetris/packer"
	"github.com/projecteru2/tetris/strategy"
	"github.com/projecteru2/tetris/types"
	"github.com/projecteru2/tetris/utils"
	"github.com/sanity-io/litter"
)

// Wolfram is the ordering-search optimizer. Each trial packs under one
// candidate ordering; trials share nothing mutable, so they fan out on a
// bounded pool and the reduction walks results in sampling order to keep the
// first-found tie preference stable.
type Wolfram struct {
	seed        int64
	budget      int
	concurrency int
	sampler     strategy.Sampler
}

var _ Optimizer = &Wolfram{}

// New .
func New(config types.Config) (*Wolfram, error) {
	sampler, err := strategy.Get(config.Optimizer.Strategy)
	if err != nil {
		return nil, err
	}
	return &Wolfram{
		seed:        config.Optimizer.Seed,
		budget:      config.Optimizer.SampleBudget,
		concurrency: config.MaxConcurrency,
		sampler:     sampler,
	}, nil
}

// CanonicalOrder ranks dimensions by criticality, the ratio of aggregate
// demand to capacity, descending. Ties keep declaration order. Packing the
// scarcest resource first limits fragmentation on the bottleneck dimension.
func CanonicalOrder(replicas []*types.Replica, capacity types.ResourceVector) []types.Dimension {
	aggregate := types.ResourceVector{}
	for _, replica := range replicas {
		aggregate.Add(replica.Demand)
	}
	criticality := [types.NumDimensions]float64{}
	for d := range aggregate {
		if capacity[d] > 0 {
			criticality[d] = aggregate[d] / capacity[d]
		}
	}
	dims := types.AllDimensions()
	sort.SliceStable(dims, func(i, j int) bool {
		return criticality[dims[i]] > criticality[dims[j]]
	})
	return dims
}

// Optimize .
func (w *Wolfram) Optimize(ctx context.Context, replicas []*types.Replica, capacity types.ResourceVector) (*types.Plan, error) {
	logger := log.WithFunc("optimizer.Optimize")
	if len(replicas) == 0 {
		return &types.Plan{Capacity: capacity}, nil
	}
	// fail once up front instead of once per trial
	if err := packer.Validate(replicas, capacity); err != nil {
		logger.Error(ctx, err, "input can never be packed")
		return nil, err
	}

	canonical := CanonicalOrder(replicas, capacity)
	rng := rand.New(rand.NewSource(w.seed)) //nolint:gosec // reproducible sampling, not crypto
	orderings := w.sampler.Sample(rng, canonical, w.budget)
	logger.Debugf(ctx, "trialing %d orderings, canonical %v", len(orderings), canonical)

	plans := make([]*types.Plan, len(orderings))
	errs := make([]error, len(orderings))
	pool := utils.NewGoroutinePool(w.concurrency)
	for i, ordering := range orderings {
		i, ordering := i, ordering
		pool.Go(ctx, func() {
			plans[i], errs[i] = packer.Pack(replicas, capacity, ordering)
		})
	}
	pool.Wait(ctx)

	var best *types.Plan
	for i, plan := range plans {
		if errs[i] != nil {
			logger.Error(ctx, errs[i], "trial failed")
			return nil, errs[i]
		}
		if better(plan, best) {
			best = plan
		}
	}

	metrics.Client.SendPlanResult(ctx, len(best.Servers), best.SpareCapacity(), len(orderings))
	logger.Debugf(ctx, "best plan %s", litter.Sdump(best))
	return best, nil
}

// better implements the two-level comparator: fewer servers wins outright,
// equal server count falls back to smaller total spare capacity, anything
// else keeps the incumbent.
func better(candidate, incumbent *types.Plan) bool {
	if incumbent == nil {
		return true
	}
	if len(candidate.Servers) != len(incumbent.Servers) {
		return len(candidate.Servers) < len(incumbent.Servers)
	}
	return candidate.SpareCapacity() < incumbent.SpareCapacity()
}
