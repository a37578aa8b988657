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
		"CATALOG_API_URL", "CATALOG_API_TIMEOUT", "HTTP_ADDR", "TELEGRAM_BOT_TOKEN",
		"ITEMS_PER_PAGE", "NOTIFICATION_TTL", "LOG_LEVEL", "CATALOG_DEMO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.Equal(t, 3*time.Second, cfg.NotificationTTL)
	assert.Zero(t, cfg.APITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Demo)
	assert.Error(t, cfg.RequireTelegram())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://catalog.example.com/api/product/")
	t.Setenv("CATALOG_API_TIMEOUT", "5s")
	t.Setenv("ITEMS_PER_PAGE", "25")
	t.Setenv("NOTIFICATION_TTL", "1500ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CATALOG_DEMO", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com/api/product", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 25, cfg.ItemsPerPage)
	assert.Equal(t, 1500*time.Millisecond, cfg.NotificationTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Demo)
	assert.NoError(t, cfg.RequireTelegram())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := map[string]string{
		"ITEMS_PER_PAGE":      "0",
		"CATALOG_API_TIMEOUT": "soon",
		"NOTIFICATION_TTL":    "-1s",
		"LOG_LEVEL":           "loud",
		"CATALOG_DEMO":        "maybe",
		"CATALOG_API_URL":     "ftp://example.com",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
