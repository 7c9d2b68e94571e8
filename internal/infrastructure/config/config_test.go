package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	// Arrange
	path := writeFile(t, "")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "takeoff.db", cfg.Database.Path)
	assert.Equal(t, 1.0, cfg.Pricing.RegionalMultiplier)
	assert.Equal(t, 60*time.Second, cfg.PlanExtraction.Timeout)
	assert.Equal(t, 5, cfg.PlanExtraction.CircuitBreaker.FailureThreshold)
	assert.False(t, cfg.PlanExtraction.Enabled())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeFile(t, `
pricing:
  region: NBO
  regional_multiplier: 1.15
plan_extraction:
  base_url: https://plans.example.com
  retry:
    max_attempts: 5
logging:
  level: debug
  format: json
metrics:
  enabled: true
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "NBO", cfg.Pricing.Region)
	assert.Equal(t, 1.15, cfg.Pricing.RegionalMultiplier)
	assert.True(t, cfg.PlanExtraction.Enabled())
	assert.Equal(t, 5, cfg.PlanExtraction.Retry.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "takeoff.prom", cfg.Metrics.TextfilePath)
}

func TestLoadConfig_EnvironmentWinsOverFile(t *testing.T) {
	// Arrange
	path := writeFile(t, "pricing:\n  region: NBO\n")
	t.Setenv("TAKEOFF_PRICING_REGION", "MSA")
	t.Setenv("TAKEOFF_LOGGING_LEVEL", "warn")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "MSA", cfg.Pricing.Region)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_DatabaseURLWithoutPrefix(t *testing.T) {
	path := writeFile(t, "database:\n  type: postgres\n")
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/takeoff")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db:5432/takeoff", cfg.Database.DSN())
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"unknown log level":   "logging:\n  level: loud\n",
		"bad extraction url":  "plan_extraction:\n  base_url: not a url\n",
		"file output no path": "logging:\n  output: file\n",
		"negative multiplier": "pricing:\n  regional_multiplier: -2\n",
		"unknown database":    "database:\n  type: oracle\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	cfg := LoadConfigOrDefault(writeFile(t, "logging:\n  level: loud\n"))

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "sqlite", cfg.Database.Type)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", pg.DSN())

	mem := DatabaseConfig{Type: "sqlite"}
	assert.Equal(t, ":memory:", mem.DSN())
	assert.True(t, mem.InMemory())
	assert.False(t, DatabaseConfig{Type: "sqlite", Path: "takeoff.db"}.InMemory())
}

func TestValidateConfig_PostgresNeedsHostOrURL(t *testing.T) {
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Database = DatabaseConfig{Type: "postgres", Pool: PoolConfig{MaxOpen: 1, MaxIdle: 1}}

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required_for_postgres")
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	// Arrange
	h, err := NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	// Act
	require.NoError(t, h.SetDefaultRegion("KSM"))
	require.NoError(t, h.SetCurrentQuote("q-42"))
	loaded, err := h.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "KSM", loaded.DefaultRegion)
	assert.Equal(t, "q-42", loaded.CurrentQuoteID)

	require.NoError(t, h.Clear())
	cleared, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, UserConfig{}, *cleared)
}

func TestUserConfigHandler_MissingFileIsEmpty(t *testing.T) {
	h, err := NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested"))
	require.NoError(t, err)

	cfg, err := h.Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultRegion)
}

func TestLoggingConfig_OpenOutput(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "takeoff.log")
	cfg := LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path}

	// Act
	out, err := cfg.OpenOutput()
	require.NoError(t, err)
	_, err = out.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, out.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	stderr, err := LoggingConfig{Output: "stderr"}.OpenOutput()
	require.NoError(t, err)
	assert.NoError(t, stderr.Close())
}
