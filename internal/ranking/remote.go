package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/glimpse/internal/llm"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/types"
)

// ErrNoClient is returned when the remote ranker has no client factory
var ErrNoClient = errors.New("remote ranker has no LLM client")

// RemoteRanker delegates ranking to a language model and falls back to the
// local scorer whenever the model cannot produce a valid ranking.
type RemoteRanker struct {
	factory llm.Factory
	logger  logging.Logger
}

// NewRemoteRanker creates a remote ranker. A nil logger discards output.
func NewRemoteRanker(factory llm.Factory, logger logging.Logger) *RemoteRanker {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &RemoteRanker{factory: factory, logger: logger}
}

// Rank ranks candidates with the model. Without an API key it returns the
// local scorer's output directly. Any failure of the remote path yields the
// local scorer's output over the full candidate list; partial results are
// never returned.
func (r *RemoteRanker) Rank(ctx context.Context, query string, candidates []types.Candidate, apiKey string) []types.ScoredResult {
	if apiKey == "" {
		r.logger.Debug("no API key configured, using local search")
		return ScoreLocal(query, candidates)
	}

	results, err := r.TryRank(ctx, query, candidates, apiKey)
	if err != nil {
		reason := FallbackReason(err)
		fallbacksTotal.WithLabelValues(reason).Inc()
		r.logger.WithFields(logging.Fields{
			"fallback_reason": reason,
			"candidates":      len(candidates),
			"error":           err.Error(),
		}).Warn("AI search failed, falling back to local search")
		return ScoreLocal(query, candidates)
	}

	return results
}

// TryRank performs the remote ranking without fallback.
func (r *RemoteRanker) TryRank(ctx context.Context, query string, candidates []types.Candidate, apiKey string) ([]types.ScoredResult, error) {
	if r == nil || r.factory == nil {
		return nil, ErrNoClient
	}

	prompt, err := BuildRankingPrompt(query, PromptItems(candidates))
	if err != nil {
		return nil, err
	}

	client, err := r.factory(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	start := time.Now()
	text, err := client.GenerateContent(ctx, prompt)
	remoteDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	results, err := ParseRankingResponse(text, candidates)
	if err != nil {
		r.logger.WithField("response_text", truncateForLog(text)).Debug("unparseable ranking response")
		return nil, err
	}

	return results, nil
}

// FallbackReason classifies a remote failure for metrics and logs
func FallbackReason(err error) string {
	var malformed *MalformedResponseError
	var apiErr *llm.APICallError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, llm.ErrCircuitOpen):
		return FallbackCircuitOpen
	case errors.Is(err, llm.ErrEmptyResponse):
		return FallbackEmpty
	case errors.As(err, &malformed):
		return FallbackMalformed
	case errors.As(err, &apiErr), errors.Is(err, context.DeadlineExceeded):
		return FallbackAPICall
	case errors.Is(err, ErrNoClient), errors.Is(err, llm.ErrMissingAPIKey):
		return FallbackClient
	default:
		return FallbackOther
	}
}

func truncateForLog(s string) string {
	return llm.TruncateText(s, 500)
}
