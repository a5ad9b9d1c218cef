package types

import "github.com/cockroachdb/errors"

var (
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrInvalidOrdering    = errors.New("ordering must be a permutation of all dimensions")
	ErrUnplaceableReplica = errors.New("replica demand exceeds server capacity")

	ErrBadCount    = errors.New("bad `count` value")
	ErrBadValue    = errors.New("bad resource value")
	ErrBadCSV      = errors.New("bad inventory csv")
	ErrBadStrategy = errors.New("sampler strategy not support")
	ErrBadStore    = errors.New("store type not support")

	ErrPlanNotFound  = errors.New("plan not found")
	ErrInvalidConfig = errors.New("config invalid")
)
