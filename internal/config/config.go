package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Env string

	Store StoreConfig
	Cache CacheConfig
}

// StoreConfig contains the remote store endpoint and the fallback source.
// When FallbackFile is set it takes precedence over FallbackURL.
type StoreConfig struct {
	BaseURL      string
	FallbackURL  string
	FallbackFile string
}

// CacheConfig contains the query cache and retry policy parameters.
type CacheConfig struct {
	ListStaleTime    time.Duration
	DetailStaleTime  time.Duration
	OptionsStaleTime time.Duration
	SearchStaleTime  time.Duration
	GCTime           time.Duration
	SweepInterval    time.Duration
	MaxAttempts      int
	MutationAttempts int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
}

// Load reads configuration from environment variables. If a .env file
// exists in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that
	// environments relying solely on real environment variables keep
	// working.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Env = getEnv("ENV", "development")

	cfg.Store = StoreConfig{
		BaseURL:      getEnv("STORE_BASE_URL", ""),
		FallbackURL:  getEnv("STORE_FALLBACK_URL", ""),
		FallbackFile: getEnv("STORE_FALLBACK_FILE", ""),
	}

	cfg.Cache = CacheConfig{
		ListStaleTime:    getEnvDuration("CACHE_LIST_STALE_TIME", 5*time.Minute),
		DetailStaleTime:  getEnvDuration("CACHE_DETAIL_STALE_TIME", 10*time.Minute),
		OptionsStaleTime: getEnvDuration("CACHE_OPTIONS_STALE_TIME", 30*time.Minute),
		SearchStaleTime:  getEnvDuration("CACHE_SEARCH_STALE_TIME", 2*time.Minute),
		GCTime:           getEnvDuration("CACHE_GC_TIME", 10*time.Minute),
		SweepInterval:    getEnvDuration("CACHE_SWEEP_INTERVAL", time.Minute),
		MaxAttempts:      getEnvInt("RETRY_MAX_ATTEMPTS", 4),
		MutationAttempts: getEnvInt("RETRY_MUTATION_ATTEMPTS", 2),
		BaseDelay:        getEnvDuration("RETRY_BASE_DELAY", time.Second),
		MaxDelay:         getEnvDuration("RETRY_MAX_DELAY", 30*time.Second),
	}

	return cfg, nil
}

// getEnv returns the environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable parsed as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable parsed as a duration or a
// default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
