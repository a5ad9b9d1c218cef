package types

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Dimension indexes one of the five resource dimensions of a ResourceVector.
type Dimension int

const (
	// CPU in cores, fractions allowed
	CPU Dimension = iota
	// Memory in GiB
	Memory
	// Network bandwidth in Mbps
	Network
	// DiskIO in MB/s
	DiskIO
	// Storage in GiB
	Storage
	// NumDimensions is the size of a ResourceVector
	NumDimensions
)

var dimensionNames = [NumDimensions]string{"cpu", "memory", "network", "disk_io", "storage"}

// String .
func (d Dimension) String() string {
	if d < 0 || d >= NumDimensions {
		return "unknown"
	}
	return dimensionNames[d]
}

// ParseDimension resolves a dimension by its name, case-insensitive.
func ParseDimension(name string) (Dimension, error) {
	for d, n := range dimensionNames {
		if strings.EqualFold(name, n) {
			return Dimension(d), nil
		}
	}
	return NumDimensions, errors.Wrapf(ErrInvalidDimension, "%s", name)
}

// AllDimensions returns the dimensions in declaration order, in a fresh slice
// so callers can reorder it freely.
func AllDimensions() []Dimension {
	dims := make([]Dimension, NumDimensions)
	for i := range dims {
		dims[i] = Dimension(i)
	}
	return dims
}

// ResourceVector is a fixed-size tuple over the five dimensions, used for
// demand, capacity and cumulative usage alike.
type ResourceVector [NumDimensions]float64

// Add accumulates other into v.
func (v *ResourceVector) Add(other ResourceVector) {
	for d := range v {
		v[d] += other[d]
	}
}

// FitsIn reports whether v+delta stays within capacity on every dimension.
func (v ResourceVector) FitsIn(delta, capacity ResourceVector) bool {
	for d := range v {
		if v[d]+delta[d] > capacity[d] {
			return false
		}
	}
	return true
}

// Total sums all dimensions, the aggregate used for spare-capacity ties.
func (v ResourceVector) Total() (total float64) {
	for _, value := range v {
		total += value
	}
	return
}
