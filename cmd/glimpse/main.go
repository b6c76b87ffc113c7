// Package main provides the glimpse CLI: tab and bookmark search from the
// terminal, a local HTTP/WebSocket host for the popup, and settings management.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "glimpse",
	Short:         "Search open tabs and bookmarks",
	Long:          "Glimpse ranks open browser tabs and bookmarks against a query, either with a local lexical scorer or with Gemini, falling back to local ranking whenever the remote call fails.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
