package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/glimpse/internal/config"
	"github.com/jonathan/glimpse/internal/types"
)

// searchModeFor picks the mode for a search: --mode if given, then the
// stored setting, then the configured default.
func searchModeFor(cmd *cobra.Command, cfg config.Config, load func(context.Context) (types.Settings, error)) (types.Mode, error) {
	if cmd.Flags().Changed("mode") {
		return types.ParseMode(searchMode)
	}

	stored, err := load(cmd.Context())
	if err == nil && stored.SearchMode.Valid() {
		return stored.SearchMode, nil
	}
	return cfg.Mode(), nil
}
