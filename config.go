package arbor

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	defaultMaxTreeDepth  = 32
	defaultMaxChildCount = 1000
)

// Config holds the graph's tunables. Zero thresholds fall back to the
// defaults.
type Config struct {
	// Debug enables hierarchy warnings, rejected-mutation logging and
	// per-recompute stats.
	Debug bool `env:"ARBOR_DEBUG" envDefault:"false"`

	// MaxTreeDepth is the depth past which debug mode warns on attach.
	MaxTreeDepth int `env:"ARBOR_MAX_TREE_DEPTH" envDefault:"32"`

	// MaxChildCount is the child count past which debug mode warns on attach.
	MaxChildCount int `env:"ARBOR_MAX_CHILD_COUNT" envDefault:"1000"`
}

// DefaultConfig returns the configuration used by NewGraph.
func DefaultConfig() Config {
	return Config{
		MaxTreeDepth:  defaultMaxTreeDepth,
		MaxChildCount: defaultMaxChildCount,
	}
}

// ConfigFromEnv loads a Config from ARBOR_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "arbor: parse env")
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.MaxTreeDepth <= 0 {
		c.MaxTreeDepth = defaultMaxTreeDepth
	}
	if c.MaxChildCount <= 0 {
		c.MaxChildCount = defaultMaxChildCount
	}
	return c
}
