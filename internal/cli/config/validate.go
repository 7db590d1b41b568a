package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output %q (want one of %s)", c.OutputFormat, strings.Join(OutputModes, ", "))
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.CachePool == "" {
		return fmt.Errorf("cache_pool must not be empty")
	}
	return nil
}
