package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/projecteru2/tetris/types"
	"github.com/stretchr/testify/assert"
)

func TestNewStore(t *testing.T) {
	ctx := context.Background()
	config := types.Config{
		Store: types.StoreConfig{
			Type:        "bolt",
			Path:        filepath.Join(t.TempDir(), "tetris.db"),
			OpenTimeout: time.Second,
		},
	}
	s, err := NewStore(ctx, config)
	assert.NoError(t, err)
	assert.NoError(t, s.Close(ctx))

	config.Store.Type = "etcd"
	_, err = NewStore(ctx, config)
	assert.True(t, errors.Is(err, types.ErrBadStore))
}
