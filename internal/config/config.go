// Package config provides functions for loading and saving the vibehub
// configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friuns/vibehub/internal/cache"
)

// Config is the on-disk application configuration. Durations are Go
// duration strings ("5m", "90s"); unparseable or empty values fall back
// to the defaults at the point of use.
type Config struct {
	CachePath          string `yaml:"cache_path"`
	CacheTTL           string `yaml:"cache_ttl"`
	TopRepoCount       int    `yaml:"top_repo_count"`
	IssuePrefetchLimit int    `yaml:"issue_prefetch_limit"`
	PrefetchBatchSize  int    `yaml:"prefetch_batch_size"`
	PRPrefetchLimit    int    `yaml:"pr_prefetch_limit"`
	PrefetchWindow     string `yaml:"prefetch_window"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		CachePath:          defaultCachePath(),
		CacheTTL:           "5m",
		TopRepoCount:       4,
		IssuePrefetchLimit: 5,
		PrefetchBatchSize:  3,
		PRPrefetchLimit:    5,
		PrefetchWindow:     "2m",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vibehub.yaml"
	}
	return filepath.Join(dir, "vibehub", "config.yaml")
}

func defaultCachePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vibehub-cache.db"
	}
	return filepath.Join(dir, "vibehub", "cache.db")
}

// TTL returns the cache freshness window.
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return cache.DefaultTTL
	}
	return d
}

// Window returns the prefetch skip window.
func (c *Config) Window() time.Duration {
	d, err := time.ParseDuration(c.PrefetchWindow)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// LoadConfig loads the configuration from the specified file. A missing
// file yields the defaults; a present but unparseable file is an error.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // Config filename is from command-line flag
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.CachePath == "" {
		config.CachePath = defaultCachePath()
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified file.
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
