package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over the generation transports
type Client interface {
	// GenerateContent sends a single-turn prompt and returns the model's text
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// Factory builds a client for an API key. Keys come from the settings store
// and may change between searches, so clients are created per call.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// NewFactory returns a Factory for the configured provider.
// httpClient is only used by the REST transport and may be nil.
func NewFactory(config *Config, httpClient *http.Client) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewClient(ctx, config, apiKey, httpClient)
	}
}

// NewClient creates a new client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string, httpClient *http.Client) (Client, error) {
	config = config.normalized()

	switch config.Provider {
	case ProviderGeminiSDK:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGeminiREST:
		return NewRESTClient(config, apiKey, httpClient)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client using the generative-ai-go SDK
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new SDK-backed Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config.normalized(),
	}, nil
}

// GenerateContent generates text with the fixed ranking generation config
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	model.SetMaxOutputTokens(c.config.MaxOutputTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APICallError{Message: "generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini SDK response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
