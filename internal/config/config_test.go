package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "env: Production\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, defaultDBHost, cfg.Database.Host)
	assert.Equal(t, defaultDBName, cfg.Database.Name)
	assert.Equal(t, defaultRedisPort, cfg.Redis.Port)
	assert.Equal(t, defaultStalenessHours, cfg.Diagnostics.StalenessHours)
	assert.Equal(t, defaultRecentWindowMinutes, cfg.Diagnostics.RecentWindowMinutes)
	assert.Equal(t, defaultScanIntervalMinutes, cfg.Diagnostics.ScanIntervalMinutes)
	assert.Equal(t, defaultCategoryChangeLimit, cfg.Tagging.CategoryChangeLimit)
	assert.Equal(t, defaultWatchlist, cfg.Diagnostics.Watchlist)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: development
database:
  host: db.internal
  name: transcripts
diagnostics:
  staleness_hours: 48
  watchlist:
    - "  Weekly Deal Review "
tagging:
  category_change_limit: 25
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "transcripts", cfg.Database.Name)
	assert.Equal(t, 48, cfg.Diagnostics.StalenessHours)
	assert.Equal(t, 25, cfg.Tagging.CategoryChangeLimit)
	// Watchlist entries are normalized for case-insensitive title matching.
	assert.Equal(t, []string{"weekly deal review"}, cfg.Diagnostics.Watchlist)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prot: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	cases := map[string]string{
		"port":           "port: 70000\n",
		"database port":  "database:\n  port: -1\n",
		"staleness":      "diagnostics:\n  staleness_hours: -2\n",
		"category limit": "tagging:\n  category_change_limit: -5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
