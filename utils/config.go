package utils

import (
	"github.com/cockroachdb/errors"
	"github.com/jinzhu/configor"
	"github.com/projecteru2/tetris/types"
)

// LoadConfig load config from yaml, defaults apply when the file or a field
// is absent. An empty path loads pure defaults.
func LoadConfig(configPath string) (types.Config, error) {
	config := types.Config{}
	paths := []string{}
	if configPath != "" {
		paths = append(paths, configPath)
	}
	if err := configor.Load(&config, paths...); err != nil {
		return config, errors.WithStack(err)
	}

	if config.MaxConcurrency <= 0 {
		return config, errors.Wrapf(types.ErrInvalidConfig, "max_concurrency %d", config.MaxConcurrency)
	}
	if config.Optimizer.SampleBudget < 0 {
		return config, errors.Wrapf(types.ErrInvalidConfig, "sample_budget %d", config.Optimizer.SampleBudget)
	}
	return config, nil
}
