package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAny(t *testing.T) {
	assert.True(t, Any([]int{1, 2, 3}, func(i int) bool { return i == 2 }))
	assert.False(t, Any([]int{1, 2, 3}, func(i int) bool { return i == 4 }))
	assert.False(t, Any(nil, func(float64) bool { return true }))
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1.5, Min(2.5, 1.5))
	assert.Equal(t, 0, Min(0, 0))
}
