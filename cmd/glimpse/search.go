package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/glimpse/internal/aggregate"
	"github.com/jonathan/glimpse/internal/config"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/observability"
	"github.com/jonathan/glimpse/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tabs and bookmarks",
	Long:  "Collects candidates from the given tab and bookmark sources and prints the top 10 matches for the query.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchMode          string
	searchTabs          string
	searchBookmarks     string
	searchBookmarksHTML string
	searchDevTools      string
	searchJSON          bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "", "Search mode: local or ai (default: stored setting)")
	searchCmd.Flags().StringVarP(&searchTabs, "tabs", "t", "", "Path to a tab snapshot JSON file")
	searchCmd.Flags().StringVarP(&searchBookmarks, "bookmarks", "b", "", "Path to a Chrome Bookmarks file")
	searchCmd.Flags().StringVar(&searchBookmarksHTML, "bookmarks-html", "", "Path to a Netscape bookmark HTML export")
	searchCmd.Flags().StringVar(&searchDevTools, "devtools", "", "Chrome DevTools URL to read open tabs from (e.g. http://localhost:9222)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(config.Config{
		Tabs:          searchTabs,
		Bookmarks:     searchBookmarks,
		BookmarksHTML: searchBookmarksHTML,
		DevToolsURL:   searchDevTools,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := logging.NewTextLogger(cmd.ErrOrStderr(), cfg.Verbose)

	svc, err := openSettings(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close() //nolint:errcheck

	mode, err := searchModeFor(cmd, cfg, svc.Load)
	if err != nil {
		return err
	}

	req, err := types.NewSearchRequest(strings.Join(args, " "), mode)
	if err != nil {
		return err
	}

	tabs, bookmarks := buildSources(cfg)
	candidates := aggregate.NewAggregator(tabs, bookmarks, logger).Collect(ctx)

	engine := buildEngine(cfg, svc, nil, logger)
	results := engine.Search(ctx, req, candidates)

	out := cmd.OutOrStdout()
	if searchJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(types.SearchResponse{Success: true, Results: results}); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}

	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintCandidates(candidates)
	}
	printer.PrintResults(req.Query, req.Mode, results)
	return nil
}
