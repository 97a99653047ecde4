package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxviazov/productivity-hub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DB_USER", "DB_PASSWORD", "DB_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	// Minimal YAML; secrets will come from ENV
	yaml := `
app:
  name: productivity-hub
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339
  with_caller: false
  stacktrace: false

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
  max_conn_lifetime: 60
  max_conn_idle_time: 30
  health_check_period: 15

redis:
  in_memory: true

migration:
  enabled: false
`
	path := writeTempConfig(t, yaml)

	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, "rfc3339", cfg.Logger.TimeFormat)
	assert.Equal(t, "stdout", cfg.Logger.OutputTarget)
	assert.True(t, cfg.Redis.InMemory)
	assert.False(t, cfg.Migration.Enabled)
}

func TestConfigLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: dev\n")

	clearSecrets(t)
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "d")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "productivity-hub", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 10, cfg.App.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Migration.Enabled)
	assert.True(t, cfg.Postgres.AutoMigrate)
	assert.Equal(t, "u", cfg.Postgres.User, "fallback env name should be honoured")
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	yaml := `
app:
  name: abc
  version: 0.0.0
  env: test
  port: 18080

postgres:
  host: localhost
  port: 5432
  sslmode: disable
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_InvalidEnvFails(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: moon\n")
	clearSecrets(t)
	t.Setenv("APP_POSTGRES_USER", "u")
	t.Setenv("APP_POSTGRES_PASSWORD", "p")
	t.Setenv("APP_POSTGRES_DB", "d")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
