package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "munivisitas-gateway", cfg.App.Name)
	require.Equal(t, "http://localhost:3000/api/v1", cfg.Backend.BaseURL)
	require.Equal(t, "munivisitas_session", cfg.Session.CookieName)
	require.Equal(t, 12*time.Hour, cfg.Session.TokenTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "http://backend.internal/api/v1")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "5")
	t.Setenv("SESSION_JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TOKEN_TTL_HOURS", "1")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	require.Equal(t, "http://backend.internal/api/v1", cfg.Backend.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout())
	require.Equal(t, "test-secret", cfg.Session.JWTSecret)
	require.Equal(t, time.Hour, cfg.Session.TokenTTL())
	require.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
