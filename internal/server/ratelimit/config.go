package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method; empty matches any method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key identifies the bucket family for a matched request. Prefix rules
// share one bucket across all paths they match.
func (c *EndpointConfig) key(path, method string) string {
	if c.Path == "" {
		return path + ":" + method
	}
	return c.Path + ":" + c.Method
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(
			getEnvInt("RATE_LIMIT_SEARCH_LIMIT", 600),
			getEnvInt("RATE_LIMIT_SETTINGS_LIMIT", 30),
		),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits per minute.
// Searches fire on every debounced keystroke, so they get a generous
// budget; settings writes are rare.
func DefaultEndpointConfigs(searchPerMinute, settingsPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/search", Method: "POST", Limit: searchPerMinute, Window: time.Minute, Burst: searchPerMinute / 10},
		{Path: "/ws", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/settings/", Method: "PUT", Limit: settingsPerMinute, Window: time.Minute, Burst: 5},
		{Path: "/settings/", Method: "DELETE", Limit: settingsPerMinute, Window: time.Minute, Burst: 5},
		{Path: "/settings", Method: "GET", Limit: settingsPerMinute * 4, Window: time.Minute, Burst: 20},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
