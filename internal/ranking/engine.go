package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/types"
)

// MaxResults is the maximum number of results returned to a caller
const MaxResults = 10

// CandidateSource produces the candidate snapshot for a search
type CandidateSource interface {
	Collect(ctx context.Context) []types.Candidate
}

// SettingsReader reads the persisted user settings
type SettingsReader interface {
	Load(ctx context.Context) (types.Settings, error)
}

// EngineConfig wires the engine's collaborators. Only Remote is needed for
// AI mode; Candidates is only needed by SearchAll.
type EngineConfig struct {
	Remote     *RemoteRanker
	Candidates CandidateSource
	Settings   SettingsReader
	// APIKey is used when the settings store holds no key
	APIKey string
	Logger logging.Logger
}

// Engine is the ranking core: it selects local or remote ranking per request,
// guards against unexpected failures and truncates to MaxResults.
type Engine struct {
	remote     *RemoteRanker
	candidates CandidateSource
	settings   SettingsReader
	apiKey     string
	logger     logging.Logger
}

// NewEngine creates an engine from cfg
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Engine{
		remote:     cfg.Remote,
		candidates: cfg.Candidates,
		settings:   cfg.Settings,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// Search ranks candidates for req and returns at most MaxResults entries.
// It never fails: unexpected errors, including panics, are recovered by
// re-running the local scorer.
func (e *Engine) Search(ctx context.Context, req types.SearchRequest, candidates []types.Candidate) (results []types.ScoredResult) {
	mode := req.Mode
	if mode == "" {
		mode = types.ModeLocal
	}
	searchesTotal.WithLabelValues(string(mode)).Inc()

	if len(candidates) == 0 || strings.TrimSpace(req.Query) == "" {
		resultsCount.Observe(0)
		return []types.ScoredResult{}
	}

	logger := e.logger.WithFields(logging.Fields{
		"request_id": uuid.NewString(),
		"mode":       mode,
		"candidates": len(candidates),
	})

	defer func() {
		if rec := recover(); rec != nil {
			fallbacksTotal.WithLabelValues(FallbackPanic).Inc()
			logger.WithField("panic", fmt.Sprint(rec)).Error("search failed unexpectedly, recovering with local search")
			results = Truncate(ScoreLocal(req.Query, candidates), MaxResults)
		}
		resultsCount.Observe(float64(len(results)))
	}()

	var ranked []types.ScoredResult
	switch mode {
	case types.ModeAI:
		ranked = e.rankRemote(ctx, req.Query, candidates, logger)
	default:
		ranked = ScoreLocal(req.Query, candidates)
	}

	results = Truncate(ranked, MaxResults)
	logger.WithField("results", len(results)).Debug("search completed")
	return results
}

// SearchAll collects candidates from the configured source and searches them.
func (e *Engine) SearchAll(ctx context.Context, req types.SearchRequest) []types.ScoredResult {
	var candidates []types.Candidate
	if e.candidates != nil {
		candidates = e.candidates.Collect(ctx)
	}
	return e.Search(ctx, req, candidates)
}

func (e *Engine) rankRemote(ctx context.Context, query string, candidates []types.Candidate, logger *logrus.Entry) []types.ScoredResult {
	if e.remote == nil {
		logger.Debug("no remote ranker configured, using local search")
		return ScoreLocal(query, candidates)
	}

	apiKey := e.apiKey
	if e.settings != nil {
		settings, err := e.settings.Load(ctx)
		if err != nil {
			fallbacksTotal.WithLabelValues(FallbackSettings).Inc()
			logger.WithError(err).Warn("failed to read settings, falling back to local search")
			return ScoreLocal(query, candidates)
		}
		if settings.HasAPIKey() {
			apiKey = settings.APIKey
		}
	}

	return e.remote.Rank(ctx, query, candidates, apiKey)
}
