package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/brainbang-lang/brainbang/internal/config"
)

// CacheConfig controls the compile artifact cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config is the optional per-project configuration, read from
// brainbang.yaml next to the source file.
type Config struct {
	// StepLimit caps VM execution; 0 runs until the program halts.
	StepLimit uint64 `yaml:"step_limit"`

	// Color selects diagnostic coloring: auto (default), always, never.
	Color string `yaml:"color"`

	Cache CacheConfig `yaml:"cache"`
}

func defaultConfig() *Config {
	return &Config{Color: "auto"}
}

// loadConfig reads the project config for a source file, falling back
// to defaults when no config file exists. A malformed config file is
// an error: silently ignoring it would make the settings in it
// mysteriously inert.
func loadConfig(sourcePath string) (*Config, error) {
	cfg := defaultConfig()

	dir := filepath.Dir(sourcePath)
	data, err := os.ReadFile(filepath.Join(dir, config.ProjectConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}
