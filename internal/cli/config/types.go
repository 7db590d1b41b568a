// Package config provides configuration management for the leapddl CLI.
//
// Values come from, lowest to highest precedence: built-in defaults, a
// leapddl.yaml file, LEAPDDL_* environment variables and command-line flags.
// An optional environments section overrides the database and cache pool per
// named environment.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Database qualifies statements whose manifest names no database.
	Database     string               `koanf:"database"`
	CachePool    string               `koanf:"cache_pool"`
	OutputFormat string               `koanf:"output"`
	Concurrency  int                  `koanf:"concurrency"`
	Verbose      bool                 `koanf:"verbose"`
	Environment  string               `koanf:"environment"`
	Environments map[string]EnvConfig `koanf:"environments"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Database  string `koanf:"database"`
	CachePool string `koanf:"cache_pool"`
}

// Default configuration values.
const (
	DefaultCachePool   = "default"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = 4
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "markdown", "json"}
