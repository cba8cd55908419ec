package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus"
	"github.com/dmitrymomot/proteus/internal/config"
)

type nested struct {
	Timeout time.Duration `env:"PROTEUS_TEST_TIMEOUT" envDefault:"3s"`
}

type testConfig struct {
	Name   string   `env:"PROTEUS_TEST_NAME" envDefault:"default"`
	Count  int      `env:"PROTEUS_TEST_COUNT"`
	Items  []string `env:"PROTEUS_TEST_ITEMS" envSeparator:","`
	Nested nested
}

type requiredConfig struct {
	Token string `env:"PROTEUS_TEST_TOKEN,required"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"PROTEUS_TEST_COUNT":   "3",
		"PROTEUS_TEST_TIMEOUT": "1m",
	}))
	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 3, cfg.Count)
	assert.Equal(t, time.Minute, cfg.Nested.Timeout)

	var bad testConfig
	err := config.Parse(&bad, map[string]string{"PROTEUS_TEST_COUNT": "three"})
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	var req requiredConfig
	err = config.Parse(&req, map[string]string{})
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.ErrorIs(t, config.Parse[testConfig](nil, nil), config.ErrNilPointer)
}

func TestParseProteusConfig(t *testing.T) {
	t.Parallel()

	var cfg proteus.Config
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"PROTEUS_STORAGE":     "redis",
		"PROTEUS_REMOTE":      "firebase",
		"FIREBASE_PROJECT_ID": "demo-project",
		"PROTEUS_LOG_LEVEL":   "debug",
	}))

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, proteus.RemoteFirebase, cfg.Remote)
	assert.Equal(t, "features.json", cfg.CatalogPath)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.Redis.ConnectionURL)
	assert.Equal(t, "proteus_mock_", cfg.Storage.KeyPrefix)
	assert.Equal(t, "demo-project", cfg.Firebase.ProjectID)
	assert.Equal(t, 10*time.Second, cfg.Firebase.FetchTimeout)
	assert.Equal(t, "us-east-1", cfg.Catalog.Region)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Log.Format)
}

// Load mutates the process environment, so these tests do not run in parallel.
func TestLoadFromFile(t *testing.T) {
	t.Setenv("PROTEUS_TEST_NAME", "from_env")
	t.Cleanup(func() {
		_ = os.Unsetenv("PROTEUS_TEST_COUNT")
		_ = os.Unsetenv("PROTEUS_TEST_ITEMS")
	})

	var cfg testConfig
	require.NoError(t, config.Load(&cfg, "testdata/.env.test"))
	assert.Equal(t, "from_env", cfg.Name, "real environment wins over the file")
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Items)
	assert.Equal(t, 3*time.Second, cfg.Nested.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg, "testdata/does-not-exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.ErrorIs(t, config.Load[testConfig](nil), config.ErrNilPointer)
}
