// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/glimpse/internal/debounce"
	"github.com/jonathan/glimpse/internal/llm"
	"github.com/jonathan/glimpse/internal/settings"
	"github.com/jonathan/glimpse/internal/types"
)

// DefaultPort is the HTTP port used by serve
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables or CLI flags.
type Config struct {
	// Remote ranking
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key used when none is stored in settings
	SearchMode     string `json:"search_mode,omitempty"`     // Default mode when no --mode flag is given
	Provider       string `json:"provider,omitempty"`        // gemini-rest or gemini-sdk
	Model          string `json:"model,omitempty"`           // Gemini model name
	Endpoint       string `json:"endpoint,omitempty"`        // Gemini REST base URL
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // Remote call timeout

	// Settings storage
	SettingsBackend string `json:"settings_backend,omitempty"` // file, memory, redis or postgres
	SettingsPath    string `json:"settings_path,omitempty"`    // File backend location
	RedisURL        string `json:"redis_url,omitempty"`        // Redis connection URL
	DatabaseURL     string `json:"database_url,omitempty"`     // PostgreSQL connection URL

	// Candidate sources
	Tabs          string `json:"tabs,omitempty"`           // Path to a tab snapshot JSON file
	Bookmarks     string `json:"bookmarks,omitempty"`      // Path to a Chrome Bookmarks file
	BookmarksHTML string `json:"bookmarks_html,omitempty"` // Path to a Netscape bookmark export
	DevToolsURL   string `json:"devtools_url,omitempty"`   // Chrome DevTools endpoint

	// Server
	Port       int `json:"port,omitempty"`        // HTTP listen port
	DebounceMS int `json:"debounce_ms,omitempty"` // WebSocket quiet period

	// Behavior
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn or error
	Verbose  bool   `json:"verbose,omitempty"`   // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		SearchMode:      string(types.ModeLocal),
		Provider:        string(llm.ProviderGeminiREST),
		Model:           llm.DefaultModel,
		Endpoint:        llm.DefaultEndpoint,
		TimeoutSeconds:  int(llm.DefaultTimeout / time.Second),
		SettingsBackend: string(settings.BackendFile),
		Port:            DefaultPort,
		DebounceMS:      int(debounce.DefaultDelay / time.Millisecond),
		LogLevel:        "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; they depend on the command being run.
func (c *Config) Validate() error {
	if c.SearchMode != "" {
		if _, err := types.ParseMode(c.SearchMode); err != nil {
			return fmt.Errorf("config error: 'search_mode': %w", err)
		}
	}

	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGeminiREST, llm.ProviderGeminiSDK:
	default:
		return fmt.Errorf("config error: unknown 'provider' %q", c.Provider)
	}

	if c.SettingsBackend != "" && !settings.Backend(c.SettingsBackend).Valid() {
		return fmt.Errorf("config error: unknown 'settings_backend' %q", c.SettingsBackend)
	}
	if settings.Backend(c.SettingsBackend) == settings.BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("config error: 'redis_url' is required for the redis settings backend")
	}
	if settings.Backend(c.SettingsBackend) == settings.BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required for the postgres settings backend")
	}

	// Validate numeric ranges
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("config error: 'debounce_ms' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"tabs":           c.Tabs,
		"bookmarks":      c.Bookmarks,
		"bookmarks_html": c.BookmarksHTML,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.SearchMode, defaults.SearchMode)
	mergeString(&result.Provider, defaults.Provider)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.Endpoint, defaults.Endpoint)
	mergeString(&result.SettingsBackend, defaults.SettingsBackend)
	mergeString(&result.SettingsPath, defaults.SettingsPath)
	mergeString(&result.RedisURL, defaults.RedisURL)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.Tabs, defaults.Tabs)
	mergeString(&result.Bookmarks, defaults.Bookmarks)
	mergeString(&result.BookmarksHTML, defaults.BookmarksHTML)
	mergeString(&result.DevToolsURL, defaults.DevToolsURL)
	mergeString(&result.LogLevel, defaults.LogLevel)

	// Int fields: use default if zero
	mergeInt(&result.TimeoutSeconds, defaults.TimeoutSeconds)
	mergeInt(&result.Port, defaults.Port)
	mergeInt(&result.DebounceMS, defaults.DebounceMS)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

func mergeInt(dst *int, fallback int) {
	if *dst == 0 {
		*dst = fallback
	}
}

// Mode returns the configured default search mode
func (c *Config) Mode() types.Mode {
	mode, err := types.ParseMode(c.SearchMode)
	if err != nil {
		return types.ModeLocal
	}
	return mode
}

// LLMConfig returns the remote ranking client configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		cfg = cfg.WithModel(c.Model)
	}
	if c.Endpoint != "" {
		cfg = cfg.WithEndpoint(c.Endpoint)
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return cfg
}

// SettingsOptions returns the settings store selection
func (c *Config) SettingsOptions() settings.Options {
	return settings.Options{
		Backend:     settings.Backend(c.SettingsBackend),
		Path:        c.SettingsPath,
		RedisURL:    c.RedisURL,
		DatabaseURL: c.DatabaseURL,
	}
}

// DebounceDelay returns the WebSocket quiet period
func (c *Config) DebounceDelay() time.Duration {
	if c.DebounceMS <= 0 {
		return debounce.DefaultDelay
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
