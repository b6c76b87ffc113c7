package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/glimpse/internal/aggregate"
	"github.com/jonathan/glimpse/internal/config"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/server"
	"github.com/jonathan/glimpse/internal/server/ratelimit"
)

var (
	servePort          int
	serveTabs          string
	serveBookmarks     string
	serveBookmarksHTML string
	serveDevTools      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the search host",
	Long:  `Start an HTTP server exposing search, settings and a search-as-you-type WebSocket for the popup.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVarP(&serveTabs, "tabs", "t", "", "Path to a tab snapshot JSON file")
	serveCmd.Flags().StringVarP(&serveBookmarks, "bookmarks", "b", "", "Path to a Chrome Bookmarks file")
	serveCmd.Flags().StringVar(&serveBookmarksHTML, "bookmarks-html", "", "Path to a Netscape bookmark HTML export")
	serveCmd.Flags().StringVar(&serveDevTools, "devtools", "", "Chrome DevTools URL to read open tabs from")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Port:          servePort,
		Tabs:          serveTabs,
		Bookmarks:     serveBookmarks,
		BookmarksHTML: serveBookmarksHTML,
		DevToolsURL:   serveDevTools,
	})
	if err != nil {
		return err
	}

	logger := logging.NewLoggerWithLevel(cfg.LogLevel)
	if cfg.Verbose {
		logger.SetLevel(logging.ParseLevel("debug"))
	}

	svc, err := openSettings(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close() //nolint:errcheck

	tabs, bookmarks := buildSources(cfg)
	engine := buildEngine(cfg, svc, aggregate.NewAggregator(tabs, bookmarks, logger), logger)

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		Engine:        engine,
		Settings:      svc,
		RateLimit:     ratelimit.LoadConfig(),
		DebounceDelay: cfg.DebounceDelay(),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
