package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.TopRepoCount)
	assert.Equal(t, 3, cfg.PrefetchBatchSize)
	assert.Equal(t, 5*time.Minute, cfg.TTL())
	assert.Equal(t, 2*time.Minute, cfg.Window())
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		wantErr     bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config",
			fileContent: `cache_path: /tmp/test-cache.db
cache_ttl: 10m
top_repo_count: 2
prefetch_batch_size: 1`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/test-cache.db", cfg.CachePath)
				assert.Equal(t, 10*time.Minute, cfg.TTL())
				assert.Equal(t, 2, cfg.TopRepoCount)
				assert.Equal(t, 1, cfg.PrefetchBatchSize)
				// Unset fields keep their defaults.
				assert.Equal(t, 5, cfg.PRPrefetchLimit)
			},
		},
		{
			name:        "bad ttl falls back",
			fileContent: `cache_ttl: not-a-duration`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Minute, cfg.TTL())
			},
		},
		{
			name:        "invalid yaml",
			fileContent: "cache_path: [unclosed",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0600))

			cfg, err := LoadConfig(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "sub", "config.yaml")

	want := DefaultConfig()
	want.CachePath = "/tmp/elsewhere.db"
	want.TopRepoCount = 7

	require.NoError(t, SaveConfig(configFile, want))

	got, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
