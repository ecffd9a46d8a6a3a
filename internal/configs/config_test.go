package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("marketplace URL is required", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "")

		_, err := LoadConfig("testdata/absent.env")
		assert.Error(t, err)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "http://localhost:9000")
		t.Setenv("PORT", "")
		t.Setenv("APP_NAME", "")
		t.Setenv("FLUENTBIT_ENABLED", "")

		cfg, err := LoadConfig("testdata/absent.env")
		require.NoError(t, err)

		assert.Equal(t, "marketplace-client", cfg.AppName)
		assert.Equal(t, "5000", cfg.Rest.PORT)
		assert.Equal(t, "marketplace-client.db", cfg.LocalStore.Path)
		assert.False(t, cfg.FluentBit.Enabled)
		assert.Equal(t, 60, cfg.NotificationsPollSec)
		assert.Equal(t, 300, cfg.SearchDebounceMs)
	})

	t.Run("poll and debounce intervals are configurable", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "http://localhost:9000")
		t.Setenv("NOTIFICATIONS_POLL_SEC", "15")
		t.Setenv("SEARCH_DEBOUNCE_MS", "500")

		cfg, err := LoadConfig("testdata/absent.env")
		require.NoError(t, err)

		assert.Equal(t, 15, cfg.NotificationsPollSec)
		assert.Equal(t, 500, cfg.SearchDebounceMs)
	})

	t.Run("malformed int falls back to default", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "http://localhost:9000")
		t.Setenv("NOTIFICATIONS_POLL_SEC", "often")

		cfg, err := LoadConfig("testdata/absent.env")
		require.NoError(t, err)

		assert.Equal(t, 60, cfg.NotificationsPollSec)
	})
}
