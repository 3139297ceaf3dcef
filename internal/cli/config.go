package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file for the CLI.
//
// Flags take precedence over the file; the file takes precedence over
// built-in defaults.
type Config struct {
	// Driver selects the connection adapter: "sqlite" or "duckdb".
	Driver string `yaml:"driver"`

	// Path is the database file path.
	Path string `yaml:"path"`

	// Limit is the default row count for head previews.
	Limit int `yaml:"limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Driver: "sqlite",
		Limit:  5,
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	return cfg, nil
}
