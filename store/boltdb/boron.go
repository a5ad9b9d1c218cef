package boltdb

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/projecteru2/tetris/log"
	"github.com/projecteru2/tetris/types"
)

var plansBucket = []byte("plans")

// Boron stores plans in a local bolt file, one JSON document per named plan.
// Single process, single writer; the mutex only orders calls within it.
type Boron struct {
	sync.Mutex
	db *bolt.DB
}

// New opens the bolt file and ensures the plans bucket.
func New(ctx context.Context, config types.StoreConfig) (*Boron, error) {
	db, err := bolt.Open(config.Path, 0600, &bolt.Options{Timeout: config.OpenTimeout})
	if err != nil {
		log.WithFunc("boltdb.New").Error(ctx, err, "open bolt file failed")
		return nil, errors.WithStack(err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(plansBucket)
		return err
	}); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Boron{db: db}, nil
}

// SavePlan creates or replaces the plan under name.
func (b *Boron) SavePlan(ctx context.Context, name string, plan *types.Plan) error {
	b.Lock()
	defer b.Unlock()

	value, err := json.Marshal(plan)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(plansBucket).Put([]byte(name), value)
	}))
}

// GetPlan .
func (b *Boron) GetPlan(ctx context.Context, name string) (*types.Plan, error) {
	b.Lock()
	defer b.Unlock()

	plan := &types.Plan{}
	if err := b.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(plansBucket).Get([]byte(name))
		if value == nil {
			return errors.Wrapf(types.ErrPlanNotFound, "%s", name)
		}
		return json.Unmarshal(value, plan)
	}); err != nil {
		return nil, errors.WithStack(err)
	}
	return plan, nil
}

// ListPlans returns stored plan names in key order.
func (b *Boron) ListPlans(ctx context.Context) ([]string, error) {
	b.Lock()
	defer b.Unlock()

	names := []string{}
	if err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(plansBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	}); err != nil {
		return nil, errors.WithStack(err)
	}
	return names, nil
}

// Close .
func (b *Boron) Close(ctx context.Context) error {
	b.Lock()
	defer b.Unlock()
	return errors.WithStack(b.db.Close())
}
