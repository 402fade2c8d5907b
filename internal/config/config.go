package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a setting is absent from the config file.
const (
	DefaultDBPath              = "shopgraph.db"
	DefaultLoadTimeoutSeconds  = 120
	DefaultQueryTimeoutSeconds = 10
)

// SourcesConfig holds default locations for the four bulk-load streams.
type SourcesConfig struct {
	Customers string `yaml:"customers,omitempty"`
	Products  string `yaml:"products,omitempty"`
	Brands    string `yaml:"brands,omitempty"`
	Purchases string `yaml:"purchases,omitempty"`
}

// Config holds settings loaded from shopgraph.yml.
type Config struct {
	DBPath              string        `yaml:"dbPath,omitempty"`
	Sources             SourcesConfig `yaml:"sources,omitempty"`
	LoadTimeoutSeconds  int           `yaml:"loadTimeoutSeconds,omitempty"`
	QueryTimeoutSeconds int           `yaml:"queryTimeoutSeconds,omitempty"`
}

// LoadTimeout returns the bulk-load deadline as a duration.
func (c *Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSeconds) * time.Second
}

// QueryTimeout returns the per-query deadline as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// Load attempts to read shopgraph.yml or shopgraph.yaml from the given
// directory. Returns a config with defaults applied (not an error) if no
// config file exists.
func Load(dir string) (*Config, error) {
	cfg := &Config{}
	for _, name := range []string{"shopgraph.yml", "shopgraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		break
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.LoadTimeoutSeconds <= 0 {
		cfg.LoadTimeoutSeconds = DefaultLoadTimeoutSeconds
	}
	if cfg.QueryTimeoutSeconds <= 0 {
		cfg.QueryTimeoutSeconds = DefaultQueryTimeoutSeconds
	}
	return cfg, nil
}
