package utils

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/projecteru2/tetris/log"
)

// GoroutinePool is a bounded pool for fire-and-wait task groups.
type GoroutinePool struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

// NewGoroutinePool new a pool
func NewGoroutinePool(max int) *GoroutinePool {
	pool, _ := ants.NewPool(max)
	return &GoroutinePool{pool: pool}
}

// Go submits f, falling back to inline execution if the pool is gone.
func (p *GoroutinePool) Go(ctx context.Context, f func()) {
	p.wg.Add(1)
	task := func() {
		defer log.SentryDefer()
		defer p.wg.Done()
		f()
	}
	if err := p.pool.Submit(task); err != nil {
		log.WithFunc("utils.Go").Warnf(ctx, "pool submit failed, running inline: %+v", err)
		task()
	}
}

// Wait blocks until all submitted tasks finished, then releases the pool.
func (p *GoroutinePool) Wait(context.Context) {
	p.wg.Wait()
	p.pool.Release()
}
