package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Host string        `env:"TEST_SERVER_HOST" default:"0.0.0.0"`
		Port int           `env:"TEST_SERVER_PORT" default:"8000"`
		Wait time.Duration `env:"TEST_SERVER_WAIT" default:"5s"`
	}
	Cache struct {
		Enabled bool    `env:"TEST_CACHE_ENABLED" default:"true"`
		Ratio   float64 `env:"TEST_CACHE_RATIO"`
	}
	ignored string
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.Wait)
	assert.True(t, cfg.Cache.Enabled)
	assert.Zero(t, cfg.Cache.Ratio)
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TEST_SERVER_PORT", "9090")
	t.Setenv("TEST_CACHE_RATIO", "0.25")
	t.Setenv("TEST_CACHE_ENABLED", "false")

	var cfg testConfig
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.25, cfg.Cache.Ratio)
	assert.False(t, cfg.Cache.Enabled)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("TEST_SERVER_WAIT", "soon")

	var cfg testConfig
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_SERVER_WAIT")
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	assert.ErrorIs(t, ParseEnv(testConfig{}), ErrNotStructPointer)
}

func TestLoadYamlFile_FlattensAndSubstitutes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
test_yaml:
  host: db.internal
  port: 6543
  password: ${TEST_YAML_SECRET:-fallback}
  user: ${TEST_YAML_USER_UNSET:-postgres}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_YAML_SECRET", "s3cret")
	// already set variables win over the file
	t.Setenv("TEST_YAML_HOST", "override")
	t.Setenv("TEST_YAML_PORT", "")
	t.Setenv("TEST_YAML_PASSWORD", "")
	t.Setenv("TEST_YAML_USER", "")

	require.NoError(t, LoadYamlFile(path))

	assert.Equal(t, "override", os.Getenv("TEST_YAML_HOST"))
	assert.Equal(t, "6543", os.Getenv("TEST_YAML_PORT"))
	assert.Equal(t, "s3cret", os.Getenv("TEST_YAML_PASSWORD"))
	assert.Equal(t, "postgres", os.Getenv("TEST_YAML_USER"))
}

func TestLoadYamlFile_NoPath(t *testing.T) {
	assert.ErrorIs(t, LoadYamlFile(""), ErrNoFilePath)
}

func TestLoadAndParseYaml_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	var cfg testConfig
	require.NoError(t, LoadAndParseYaml("does-not-exist.yaml", &cfg))
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}
