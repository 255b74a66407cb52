package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Providers.GeocodingBaseURL)
	assert.Equal(t, 10, cfg.Providers.GeocodingLimit)
	assert.Equal(t, 2*time.Minute, cfg.Selection.Timeout)
	assert.Equal(t, 100, cfg.Selection.MaxOptionWidth)
	assert.Equal(t, "Europe/Vienna", cfg.Localization.DefaultTimezone)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SELECTION_TIMEOUT", "30s")
	t.Setenv("GEOCODING_LIMIT", "5")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DISCORD_TEST_GUILD_IDS", "123, 456,,789")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Selection.Timeout)
	assert.Equal(t, 5, cfg.Providers.GeocodingLimit)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"123", "456", "789"}, cfg.Discord.TestGuildIDs)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SELECTION_TIMEOUT", "soon")
	t.Setenv("GEOCODING_LIMIT", "many")

	cfg := Load()

	assert.Equal(t, 2*time.Minute, cfg.Selection.Timeout)
	assert.Equal(t, 10, cfg.Providers.GeocodingLimit)
}
