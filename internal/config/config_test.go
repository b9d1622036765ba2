package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "SESSION_BACKEND", "SESSION_TTL_MINUTES", "REDIS_DB", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	require.Equal(t, 30*time.Minute, cfg.Session.TTL())
	require.Equal(t, "registration_session", cfg.Session.CookieName)
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, 10*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("SESSION_SECURE_COOKIE", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.App.Port)
	require.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	require.Equal(t, 5*time.Minute, cfg.Session.TTL())
	require.True(t, cfg.Session.SecureCookie)
	require.Zero(t, cfg.App.RequestTimeout())
	require.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "one")
		_, err := Load()
		require.ErrorContains(t, err, "REDIS_DB")
	})

	t.Run("session backend", func(t *testing.T) {
		t.Setenv("REDIS_DB", "")
		t.Setenv("SESSION_BACKEND", "postgres")
		_, err := Load()
		require.ErrorContains(t, err, "SESSION_BACKEND")
	})
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "x")
	require.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
