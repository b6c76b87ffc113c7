// Package llm provides the configuration and clients used to call the remote
// text-generation endpoint that ranks search candidates.
package llm

import "time"

// Provider selects the transport used to reach the model
type Provider string

// Provider constants define supported transports
const (
	// ProviderGeminiREST posts directly to the generateContent REST endpoint
	ProviderGeminiREST Provider = "gemini-rest"
	// ProviderGeminiSDK uses the official generative-ai-go SDK
	ProviderGeminiSDK Provider = "gemini-sdk"
)

const (
	// DefaultEndpoint is the Gemini REST API base URL
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is the model used for ranking
	DefaultModel = "gemini-1.5-flash"
	// DefaultTemperature keeps rankings mostly deterministic
	DefaultTemperature float32 = 0.3
	// DefaultMaxOutputTokens bounds the response length
	DefaultMaxOutputTokens int32 = 2000
	// DefaultTimeout bounds a single generation call
	DefaultTimeout = 30 * time.Second
)

// Config holds the generation settings for remote ranking calls
type Config struct {
	Provider        Provider
	Endpoint        string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
}

// DefaultConfig returns the REST transport with the fixed generation config.
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGeminiREST,
		Endpoint:        DefaultEndpoint,
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Timeout:         DefaultTimeout,
	}
}

// WithModel returns a copy of the config using a different model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	newConfig.Model = model
	return &newConfig
}

// WithEndpoint returns a copy of the config using a different base URL
func (c *Config) WithEndpoint(endpoint string) *Config {
	newConfig := *c
	newConfig.Endpoint = endpoint
	return &newConfig
}

// normalized fills zero values from the defaults
func (c *Config) normalized() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Provider == "" {
		out.Provider = defaults.Provider
	}
	if out.Endpoint == "" {
		out.Endpoint = defaults.Endpoint
	}
	if out.Model == "" {
		out.Model = defaults.Model
	}
	if out.Temperature == 0 {
		out.Temperature = defaults.Temperature
	}
	if out.MaxOutputTokens == 0 {
		out.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if out.Timeout <= 0 {
		out.Timeout = defaults.Timeout
	}
	return &out
}
