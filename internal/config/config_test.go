package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "DIAMOND_MAX_UPLOAD", "DIAMOND_READ_TIMEOUT",
		"DIAMOND_WRITE_TIMEOUT", "DIAMOND_LOG_LEVEL", "SENTRY_DSN", "ENV",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.False(t, cfg.Debug())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8083")
	t.Setenv("DIAMOND_MAX_UPLOAD", "4M")
	t.Setenv("DIAMOND_READ_TIMEOUT", "5s")
	t.Setenv("DIAMOND_WRITE_TIMEOUT", "2m")
	t.Setenv("DIAMOND_LOG_LEVEL", "debug")
	t.Setenv("SENTRY_DSN", "https://key@example.com/1")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8083", cfg.Addr())
	assert.Equal(t, "4M", cfg.MaxUpload)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.WriteTimeout)
	assert.True(t, cfg.Debug())
	assert.Equal(t, "https://key@example.com/1", cfg.SentryDSN)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"negative port", "PORT", "-1"},
		{"bad upload size", "DIAMOND_MAX_UPLOAD", "lots"},
		{"bad read timeout", "DIAMOND_READ_TIMEOUT", "soon"},
		{"zero write timeout", "DIAMOND_WRITE_TIMEOUT", "0s"},
		{"unknown log level", "DIAMOND_LOG_LEVEL", "verbose"},
		{"bad sentry dsn", "SENTRY_DSN", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DIAMOND_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("DIAMOND_TEST_VALUE", "fallback"))

	t.Setenv("DIAMOND_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("DIAMOND_TEST_VALUE", "fallback"))
}
