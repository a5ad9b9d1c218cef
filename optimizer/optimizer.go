package optimizer

import (
	"context"

	"github.com/projecteru2/tetris/types"
)

// Optimizer searches dimension orderings for the plan that uses fewest
// servers, breaking ties by least total spare capacity.
type Optimizer interface {
	Optimize(ctx context.Context, replicas []*types.Replica, capacity types.ResourceVector) (*types.Plan, error)
}
