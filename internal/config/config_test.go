package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TMDB_API_KEY", "NEXT_PUBLIC_TMDB_API_KEY",
		"TMDB_API_BASE_URL", "NEXT_PUBLIC_TMDB_API_BASE_URL",
		"FLICKS_CATALOG_API_KEY", "FLICKS_CATALOG_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 10, cfg.Search.CategoryLimit)
	assert.Equal(t, time.Second, cfg.Storage.LockTimeout)
	assert.False(t, cfg.IsConfigured())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()

	yaml := `
catalog:
  api_key: from-file
  base_url: https://example.test/3/
  rate_limit: 0
search:
  debounce: 250ms
  category_limit: 5
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Catalog.APIKey)
	assert.Equal(t, "https://example.test/3", cfg.Catalog.BaseURL, "trailing slash trimmed")
	assert.Zero(t, cfg.Catalog.RateLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 5, cfg.Search.CategoryLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.IsConfigured())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog:\n  api_key: from-file\n"), 0644))

	t.Setenv("FLICKS_CATALOG_API_KEY", "from-env")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Catalog.APIKey)
}

func TestLoad_CredentialFallbacks(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("NEXT_PUBLIC_TMDB_API_KEY", "legacy-key")
	t.Setenv("TMDB_API_BASE_URL", "http://localhost:9999/3")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "legacy-key", cfg.Catalog.APIKey)
	assert.Equal(t, "http://localhost:9999/3", cfg.Catalog.BaseURL)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed"), 0644))

	_, err := Load(viper.New(), dir)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	clearCredentialEnv(t)
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Catalog.APIKey = "saved-key"
	cfg.Search.Debounce = 750 * time.Millisecond

	require.NoError(t, Save(viper.New(), cfg, dir))

	loaded, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.Catalog.APIKey)
	assert.Equal(t, 750*time.Millisecond, loaded.Search.Debounce)
}
