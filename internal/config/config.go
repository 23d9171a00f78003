// Package config loads the tool's project configuration (stackless.toml)
// and the pipeline description handed to the driver.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the [analysis] section of a stackless.toml project file.
type Config struct {
	// Jobs bounds how many functions are processed in parallel.
	// Zero or negative means GOMAXPROCS.
	Jobs int `toml:"jobs"`

	// Verify re-checks the transformation contract after each pass.
	Verify bool `toml:"verify"`

	// CacheDir, when set, enables the rendered-dump cache.
	CacheDir string `toml:"cache_dir"`

	// Pragmas supplies the final fallback of the pragma resolution chain:
	// function scope, then module scope, then these defaults.
	Pragmas map[string]bool `toml:"pragmas"`
}

type projectFile struct {
	Analysis Config `toml:"analysis"`
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{Pragmas: map[string]bool{}}
}

// Load parses path as a stackless.toml project file.
func Load(path string) (Config, error) {
	var cfg projectFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Analysis.Pragmas == nil {
		cfg.Analysis.Pragmas = map[string]bool{}
	}
	return cfg.Analysis, nil
}

// PragmaDefault builds the caller-supplied default function for the pragma
// chain: the configured default when present, otherwise fallback.
func (c Config) PragmaDefault(name string, fallback bool) func() bool {
	return func() bool {
		if v, ok := c.Pragmas[name]; ok {
			return v
		}
		return fallback
	}
}
