package configloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://point-api.meteora.ag/points", cfg.Points.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, 10*time.Minute, cfg.SessionCleanupInterval())
	assert.Equal(t, "points_session", cfg.Session.CookieName)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  allowedOrigins: ["https://example.org"]
logging:
  level: debug
  development: true
points:
  baseURL: http://localhost:1234/points
  requestTimeoutMillis: 2500
session:
  ttlMinutes: 5
  cookieSecure: true
metrics:
  enabled: true
  path: /prom
swagger:
  enabled: true
debug:
  pprofEnabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "http://localhost:1234/points", cfg.Points.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout())
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.True(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/prom", cfg.Metrics.Path)
	assert.True(t, cfg.Swagger.Enabled)
	assert.True(t, cfg.Debug.PprofEnabled)
	// untouched sections still get defaults
	assert.Equal(t, 10, cfg.Session.CleanupIntervalMinutes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
points:
  requestTimeoutMillis: 2500
`)
	t.Setenv("POINTS_SERVER_PORT", "7070")
	t.Setenv("POINTS_POINTS_BASE_URL", "http://override/points")
	t.Setenv("POINTS_SESSION_TTL_MINUTES", "3")
	t.Setenv("POINTS_SERVER_ALLOWED_ORIGINS", "http://a,http://b")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "http://override/points", cfg.Points.BaseURL)
	assert.Equal(t, 3*time.Minute, cfg.SessionTTL())
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal")
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("POINTS_SESSION_TTL_MINUTES", "soon")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment overrides")
	})

	t.Run("relative metrics path", func(t *testing.T) {
		_, err := Load(writeConfig(t, "metrics:\n  path: prom\n"))
		require.Error(t, err)
	})

	t.Run("path is a directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
	})
}
