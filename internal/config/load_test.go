package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvPlacesAPIKey, "")

	cfg, err := config.Load("", "nps-sites/test")
	require.NoError(t, err)

	assert.Equal(t, "cache.json", cfg.CacheFile())
	assert.Equal(t, "nps-sites/test", cfg.UserAgent())
	assert.Equal(t, 10, cfg.SearchRadius())
	assert.Empty(t, cfg.PlacesAPIKey())
}

func TestLoad_PartialJSONFile(t *testing.T) {
	t.Setenv(config.EnvPlacesAPIKey, "")
	path := writeConfigFile(t, "config.json", `{
		"placesApiKey": "from-file",
		"cacheFile": "/tmp/nps/cache.json",
		"siteListPolicy": "abort",
		"baseDelay": "1500ms",
		"maxMatches": 5
	}`)

	cfg, err := config.Load(path, "ua")
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.PlacesAPIKey())
	assert.Equal(t, "/tmp/nps/cache.json", cfg.CacheFile())
	assert.Equal(t, config.SiteListPolicyAbort, cfg.SiteListPolicy())
	assert.Equal(t, 1500*time.Millisecond, cfg.BaseDelay())
	assert.Equal(t, 5, cfg.MaxMatches())
	// untouched keys keep defaults
	assert.Equal(t, 10, cfg.SearchRadius())
	assert.Equal(t, config.CacheBackendJSON, cfg.CacheBackend())
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv(config.EnvPlacesAPIKey, "")
	path := writeConfigFile(t, "config.yaml", "cacheBackend: memory\nsearchRadius: 3\n")

	cfg, err := config.Load(path, "ua")
	require.NoError(t, err)

	assert.Equal(t, config.CacheBackendMemory, cfg.CacheBackend())
	assert.Equal(t, 3, cfg.SearchRadius())
}

func TestLoad_SQLiteBackendGetsDatabaseFile(t *testing.T) {
	t.Setenv(config.EnvPlacesAPIKey, "")
	path := writeConfigFile(t, "config.json", `{"cacheBackend": "sqlite"}`)

	cfg, err := config.Load(path, "ua")
	require.NoError(t, err)

	assert.Equal(t, config.CacheBackendSQLite, cfg.CacheBackend())
	assert.Equal(t, "cache.db", cfg.CacheFile())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{"placesApiKey": "from-file"}`)
	t.Setenv(config.EnvPlacesAPIKey, "from-env")

	cfg, err := config.Load(path, "ua")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.PlacesAPIKey())
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(config.EnvPlacesAPIKey, "")

	_, err := config.Load("/path/that/does/not/exist/config.json", "ua")
	assert.True(t, errors.Is(err, config.ErrFileDoesNotExist), err)

	_, err = config.Load(writeConfigFile(t, "broken.json", `{invalid json content}`), "ua")
	assert.True(t, errors.Is(err, config.ErrConfigParsingFail), err)

	_, err = config.Load(writeConfigFile(t, "bad.json", `{"cacheBackend": "redis"}`), "ua")
	assert.True(t, errors.Is(err, config.ErrInvalidConfig), err)
}
