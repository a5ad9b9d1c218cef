package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/store/boltdb"
	"github.com/projecteru2/tetris/types"
)

const boltStore = "bolt"

// Store persists named plans.
type Store interface {
	SavePlan(ctx context.Context, name string, plan *types.Plan) error
	GetPlan(ctx context.Context, name string) (*types.Plan, error)
	ListPlans(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

// NewStore opens the configured backend.
func NewStore(ctx context.Context, config types.Config) (Store, error) {
	switch config.Store.Type {
	case boltStore, "":
		return boltdb.New(ctx, config.Store)
	default:
		return nil, errors.Wrapf(types.ErrBadStore, "%s", config.Store.Type)
	}
}
