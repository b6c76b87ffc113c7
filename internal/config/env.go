package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv
const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvSearchMode      = "GLIMPSE_SEARCH_MODE"
	EnvSettingsBackend = "GLIMPSE_SETTINGS_BACKEND"
	EnvSettingsPath    = "GLIMPSE_SETTINGS_PATH"
	EnvRedisURL        = "REDIS_URL"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvModel           = "GEMINI_MODEL"
	EnvEndpoint        = "GEMINI_ENDPOINT"
	EnvProvider        = "GEMINI_PROVIDER"
	EnvLogLevel        = "LOG_LEVEL"
	EnvPort            = "PORT"
)

// FromEnv returns a Config holding only the values set in the environment.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:          os.Getenv(EnvAPIKey),
		SearchMode:      os.Getenv(EnvSearchMode),
		SettingsBackend: os.Getenv(EnvSettingsBackend),
		SettingsPath:    os.Getenv(EnvSettingsPath),
		RedisURL:        os.Getenv(EnvRedisURL),
		DatabaseURL:     os.Getenv(EnvDatabaseURL),
		Model:           os.Getenv(EnvModel),
		Endpoint:        os.Getenv(EnvEndpoint),
		Provider:        os.Getenv(EnvProvider),
		LogLevel:        os.Getenv(EnvLogLevel),
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// Resolve layers explicit values over the environment, then the optional
// config file, then the built-in defaults, and validates the result.
func Resolve(explicit Config, path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	file := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = *loaded
	}

	merged := explicit.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(Defaults())
	merged.Verbose = explicit.Verbose || file.Verbose

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
