// Package config provides centralized configuration management for the bot.
// It loads configuration from environment variables with sensible defaults,
// supporting different deployment environments (development, staging, production).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration settings for the bot. It aggregates
// configuration for the Discord connection, the external providers, caching,
// the selection protocol, and the operational HTTP server.
type Config struct {
	Discord      DiscordConfig
	Providers    ProvidersConfig
	Cache        CacheConfig
	Redis        RedisConfig
	Selection    SelectionConfig
	Localization LocalizationConfig
	Server       ServerConfig
}

// DiscordConfig contains the gateway connection settings.
type DiscordConfig struct {
	Token        string
	AppID        string
	TestGuildIDs []string
}

// ProvidersConfig contains settings for the external data providers.
type ProvidersConfig struct {
	GeocodingBaseURL string
	ForecastBaseURL  string
	ArchiveBaseURL   string
	HTTPTimeout      time.Duration

	// GeocodingLanguage is sent as accept-language on searches.
	GeocodingLanguage string

	// GeocodingViewbox biases search results toward an area, in
	// "minLon,minLat,maxLon,maxLat" form. Empty disables biasing.
	GeocodingViewbox string

	// GeocodingLimit caps the number of candidates per search.
	GeocodingLimit int
}

// CacheConfig contains the per-concern cache lifetimes.
type CacheConfig struct {
	GeocodeTTL      time.Duration
	ForecastTTL     time.Duration
	CleanupInterval time.Duration
}

// RedisConfig contains settings for the optional shared Redis cache. When
// disabled, the bot falls back to its in-memory cache.
type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SelectionConfig contains the tunables of the interactive place selection.
type SelectionConfig struct {
	Timeout        time.Duration
	MaxOptionWidth int
}

// LocalizationConfig contains language and timezone defaults.
type LocalizationConfig struct {
	Language string

	// DefaultTimezone is used for historical lookups when the place's
	// coordinates fall outside the timezone dataset.
	DefaultTimezone string
}

// ServerConfig contains the operational HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from environment variables and returns a Config instance.
//
// Returns:
//   - *Config: Configuration with values from environment or defaults
func Load() *Config {
	return &Config{
		Discord: DiscordConfig{
			Token:        getEnv("DISCORD_TOKEN", ""),
			AppID:        getEnv("DISCORD_APP_ID", ""),
			TestGuildIDs: getEnvAsList("DISCORD_TEST_GUILD_IDS", nil),
		},
		Providers: ProvidersConfig{
			GeocodingBaseURL:  getEnv("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org/search"),
			ForecastBaseURL:   getEnv("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
			ArchiveBaseURL:    getEnv("ARCHIVE_BASE_URL", "https://archive-api.open-meteo.com/v1/archive"),
			HTTPTimeout:       getEnvAsDuration("PROVIDER_HTTP_TIMEOUT", 10*time.Second),
			GeocodingLanguage: getEnv("GEOCODING_LANGUAGE", "de"),
			GeocodingViewbox:  getEnv("GEOCODING_VIEWBOX", ""),
			GeocodingLimit:    getEnvAsInt("GEOCODING_LIMIT", 10),
		},
		Cache: CacheConfig{
			// Geocoding results are near-static, so they outlive the
			// minute-scale forecast entries on purpose.
			GeocodeTTL:      getEnvAsDuration("CACHE_GEOCODE_TTL", 24*time.Hour),
			ForecastTTL:     getEnvAsDuration("CACHE_FORECAST_TTL", 10*time.Minute),
			CleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 30*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Selection: SelectionConfig{
			Timeout:        getEnvAsDuration("SELECTION_TIMEOUT", 2*time.Minute),
			MaxOptionWidth: getEnvAsInt("SELECTION_MAX_OPTION_WIDTH", 100),
		},
		Localization: LocalizationConfig{
			Language:        getEnv("BOT_LANGUAGE", "de"),
			DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Europe/Vienna"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// getEnv retrieves an environment variable value with a fallback default.
//
// Parameters:
//   - key: Environment variable name
//   - defaultValue: Value to use if variable is not set
//
// Returns:
//   - string: Environment value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer with a fallback default.
//
// Parameters:
//   - key: Environment variable name
//   - defaultValue: Value to use if variable is not set or invalid
//
// Returns:
//   - int: Parsed integer value or default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean with a fallback default.
//
// Parameters:
//   - key: Environment variable name
//   - defaultValue: Value to use if variable is not set or invalid
//
// Returns:
//   - bool: Parsed boolean value or default
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}

	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration with a fallback default.
//
// Parameters:
//   - key: Environment variable name
//   - defaultValue: Value to use if variable is not set or invalid
//
// Returns:
//   - time.Duration: Parsed duration value or default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}

	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable as a string
// slice with a fallback default. Empty elements are dropped.
//
// Parameters:
//   - key: Environment variable name
//   - defaultValue: Value to use if variable is not set
//
// Returns:
//   - []string: Parsed list or default
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	return list
}
