package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.MaxAge)
	assert.Zero(t, cfg.Auth.DevTelegramID, "HTTP requires initData unless a fallback is configured")
	assert.Equal(t, int64(8059235604), cfg.CLI.TelegramID)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Server, cfg.Server)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/facadeflow/data.db", cfg.Database.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout, "unset keys keep defaults")
	assert.Equal(t, []string{"https://web.telegram.org"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Auth.MaxAge)
	assert.Zero(t, cfg.Auth.DevTelegramID)
	assert.Equal(t, int64(5005), cfg.CLI.TelegramID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "reading")

	_, err = Load("testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr is required")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "log.format")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FACADEFLOW_DATABASE_PATH", ":memory:")
	t.Setenv("FACADEFLOW_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("FACADEFLOW_SERVER_READ_TIMEOUT", "3s")
	t.Setenv("FACADEFLOW_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("FACADEFLOW_AUTH_MAX_AGE", "30m")
	t.Setenv("FACADEFLOW_AUTH_DEV_TELEGRAM_ID", "42")
	t.Setenv("FACADEFLOW_CLI_TELEGRAM_ID", "43")
	t.Setenv("FACADEFLOW_LOG_LEVEL", "warn")
	t.Setenv("FACADEFLOW_METRICS_ENABLED", "false")

	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Auth.MaxAge)
	assert.Equal(t, int64(42), cfg.Auth.DevTelegramID)
	assert.Equal(t, int64(43), cfg.CLI.TelegramID)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_MalformedEnv(t *testing.T) {
	t.Setenv("FACADEFLOW_AUTH_MAX_AGE", "a day")
	_, err := Load("")
	assert.ErrorContains(t, err, "FACADEFLOW_AUTH_MAX_AGE")

	t.Setenv("FACADEFLOW_AUTH_MAX_AGE", "")
	t.Setenv("FACADEFLOW_CLI_TELEGRAM_ID", "me")
	_, err = Load("")
	assert.ErrorContains(t, err, "FACADEFLOW_CLI_TELEGRAM_ID")
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/facadeflow.yaml")
	assert.Equal(t, "/etc/facadeflow.yaml", ResolvePath(""))
	assert.Equal(t, "local.yaml", ResolvePath("local.yaml"))
}

func TestNewLogger_RespectsLevelAndFormat(t *testing.T) {
	cfg := Defaults()
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}
