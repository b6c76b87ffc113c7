package main

import (
	"context"
	"fmt"

	"github.com/jonathan/glimpse/internal/aggregate"
	"github.com/jonathan/glimpse/internal/config"
	"github.com/jonathan/glimpse/internal/llm"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/ranking"
	"github.com/jonathan/glimpse/internal/settings"
)

// resolveConfig layers explicit flag values over env, --config and defaults.
func resolveConfig(explicit config.Config) (config.Config, error) {
	explicit.Verbose = explicit.Verbose || verbose
	cfg, err := config.Resolve(explicit, configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openSettings opens the configured settings backend
func openSettings(ctx context.Context, cfg config.Config, logger logging.Logger) (*settings.Service, error) {
	store, err := settings.Open(ctx, cfg.SettingsOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return settings.NewService(store, logger), nil
}

// buildSources returns the tab and bookmark sources named by cfg
func buildSources(cfg config.Config) (tabs, bookmarks []aggregate.Source) {
	if cfg.Tabs != "" {
		tabs = append(tabs, aggregate.TabsFile{Path: cfg.Tabs})
	}
	if cfg.DevToolsURL != "" {
		tabs = append(tabs, aggregate.DevToolsTabs{URL: cfg.DevToolsURL})
	}
	if cfg.Bookmarks != "" {
		bookmarks = append(bookmarks, aggregate.ChromeBookmarks{Path: cfg.Bookmarks})
	}
	if cfg.BookmarksHTML != "" {
		bookmarks = append(bookmarks, aggregate.HTMLBookmarks{Path: cfg.BookmarksHTML})
	}
	return tabs, bookmarks
}

// buildEngine wires the ranking core. Remote calls go through a circuit
// breaker so a failing endpoint stops costing a timeout per search.
func buildEngine(cfg config.Config, svc *settings.Service, candidates ranking.CandidateSource, logger logging.Logger) *ranking.Engine {
	breaker := llm.NewBreaker(llm.BreakerConfig{Logger: logger})
	factory := breaker.WrapFactory(llm.NewFactory(cfg.LLMConfig(), nil))

	return ranking.NewEngine(ranking.EngineConfig{
		Remote:     ranking.NewRemoteRanker(factory, logger),
		Candidates: candidates,
		Settings:   svc,
		APIKey:     cfg.APIKey,
		Logger:     logger,
	})
}
