package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 4 << 20

// RESTClient posts prompts to the Gemini generateContent REST endpoint.
// The API key travels as the "key" query parameter.
type RESTClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
}

// NewRESTClient creates a REST client. A nil httpClient gets one bounded by config.Timeout.
func NewRESTClient(config *Config, apiKey string, httpClient *http.Client) (*RESTClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	config = config.normalized()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &RESTClient{
		httpClient: httpClient,
		config:     config,
		apiKey:     apiKey,
	}, nil
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int32   `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt as a single-turn request
func (c *RESTClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Temperature,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APICallError{Message: "request failed", Cause: c.redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &APICallError{StatusCode: resp.StatusCode, Message: "read response", Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &APICallError{
			StatusCode: resp.StatusCode,
			Message:    TruncateText(strings.TrimSpace(string(body)), 200),
		}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &APICallError{StatusCode: resp.StatusCode, Message: "decode response", Cause: err}
	}

	return decoded.text()
}

// Close is a no-op; the HTTP client is shared
func (c *RESTClient) Close() error {
	return nil
}

func (c *RESTClient) requestURL() string {
	base := strings.TrimRight(c.config.Endpoint, "/")
	q := url.Values{}
	q.Set("key", c.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", base, url.PathEscape(c.config.Model), q.Encode())
}

// redact strips the API key from transport errors, which embed the request URL
func (c *RESTClient) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(c.apiKey), "REDACTED")
	}
	return err
}

func (r *generateContentResponse) text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", ErrEmptyResponse)
	}
	candidate := r.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// TruncateText cuts s to at most n bytes, backing up to a rune boundary,
// and marks the cut with "...".
func TruncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
