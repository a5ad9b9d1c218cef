package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoroutinePool(t *testing.T) {
	pool := NewGoroutinePool(1)
	var cnt int32
	for i := 0; i < 3; i++ {
		create := func(i int) func() {
			return func() {
				time.Sleep(time.Duration(i) * 100 * time.Microsecond)
				atomic.AddInt32(&cnt, 1)
			}
		}
		pool.Go(context.TODO(), create(i))
	}
	pool.Wait(context.TODO())
	assert.EqualValues(t, 3, cnt)
}
