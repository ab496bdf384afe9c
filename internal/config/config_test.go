package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_URL", "HTTP_TIMEOUT_SECONDS", "TOKEN_STORE", "TOKEN_FILE", "TOKEN_TTL_MINUTES",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX", "APP_ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_FILE", "/tmp/hoteladmin/session.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, StoreFile, cfg.TokenStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "hoteladmin", cfg.RedisPrefix)
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Zero(t, cfg.TokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "https://hotels.example.com/api/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("TOKEN_STORE", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TOKEN_TTL_MINUTES", "90")
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://hotels.example.com/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, StoreRedis, cfg.TokenStore)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"store":        {"TOKEN_STORE", "cookie"},
		"env":          {"APP_ENV", "staging"},
		"redis db":     {"REDIS_DB", "-1"},
		"log level":    {"LOG_LEVEL", "loud"},
		"timeout":      {"HTTP_TIMEOUT_SECONDS", "soon"},
		"zero timeout": {"HTTP_TIMEOUT_SECONDS", "0"},
		"ttl":          {"TOKEN_TTL_MINUTES", "forever"},
		"negative ttl": {"TOKEN_TTL_MINUTES", "-5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TOKEN_STORE", "memory")
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
