package types

import "time"

// Config holds tetris config
type Config struct {
	LogLevel       string `yaml:"log_level" required:"true" default:"INFO"`
	Profile        string `yaml:"profile"`                      // metrics http endpoint ip:port, empty means off
	Statsd         string `yaml:"statsd"`                       // statsd host and port
	SentryDSN      string `yaml:"sentry_dsn"`                   // sentry dsn, empty means off
	MaxConcurrency int    `yaml:"max_concurrency" default:"20"` // parallel packing trials in the same time

	Optimizer OptimizerConfig `yaml:"optimizer"`
	Store     StoreConfig     `yaml:"store"`
}

// OptimizerConfig tunes the ordering search
type OptimizerConfig struct {
	Seed         int64  `yaml:"seed" default:"1"`            // master seed for permutation sampling
	SampleBudget int    `yaml:"sample_budget" default:"100"` // random orderings tried besides the canonical one
	Strategy     string `yaml:"strategy" default:"RANDOM"`   // sampler strategy, see strategy package
}

// StoreConfig holds plan store config
type StoreConfig struct {
	Type        string        `yaml:"type" default:"bolt"`       // store type, only bolt for now
	Path        string        `yaml:"path" default:"tetris.db"`  // bolt file path
	OpenTimeout time.Duration `yaml:"open_timeout" default:"8s"` // timeout for opening the bolt file
}
