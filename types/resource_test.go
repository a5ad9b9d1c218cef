package types

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseDimension(t *testing.T) {
	for d := Dimension(0); d < NumDimensions; d++ {
		parsed, err := ParseDimension(d.String())
		assert.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	parsed, err := ParseDimension("DISK_IO")
	assert.NoError(t, err)
	assert.Equal(t, DiskIO, parsed)

	_, err = ParseDimension("gpu")
	assert.True(t, errors.Is(err, ErrInvalidDimension))
	assert.Equal(t, "unknown", Dimension(-1).String())
}

func TestResourceVector(t *testing.T) {
	v := ResourceVector{1, 2, 3, 4, 5}
	v.Add(ResourceVector{1, 1, 1, 1, 1})
	assert.Equal(t, ResourceVector{2, 3, 4, 5, 6}, v)
	assert.EqualValues(t, 20, v.Total())

	capacity := ResourceVector{4, 6, 8, 10, 12}
	assert.True(t, v.FitsIn(ResourceVector{2, 3, 4, 5, 6}, capacity))
	assert.False(t, v.FitsIn(ResourceVector{2.1, 0, 0, 0, 0}, capacity))
}

func TestAllDimensionsIsFresh(t *testing.T) {
	dims := AllDimensions()
	dims[0], dims[1] = dims[1], dims[0]
	assert.Equal(t, CPU, AllDimensions()[0])
}
