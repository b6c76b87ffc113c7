package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/glimpse/internal/config"
	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/observability"
	"github.com/jonathan/glimpse/internal/settings"
	"github.com/jonathan/glimpse/internal/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored API key and search mode",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a key is stored and the current search mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSettings(cmd, func(_ context.Context, _ *settings.Service) error { return nil })
	},
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store a Gemini API key and switch to AI search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(ctx context.Context, svc *settings.Service) error {
			return svc.SaveAPIKey(ctx, args[0])
		})
	},
}

var settingsRemoveKeyCmd = &cobra.Command{
	Use:   "remove-key",
	Short: "Remove the stored API key and switch to local search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSettings(cmd, func(ctx context.Context, svc *settings.Service) error {
			return svc.RemoveAPIKey(ctx)
		})
	},
}

var settingsModeCmd = &cobra.Command{
	Use:       "mode <local|ai>",
	Short:     "Select the search mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(types.ModeLocal), string(types.ModeAI)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(ctx context.Context, svc *settings.Service) error {
			err := svc.SetMode(ctx, types.Mode(args[0]))
			if errors.Is(err, settings.ErrAPIKeyRequired) {
				return fmt.Errorf("%w: run 'glimpse settings set-key <api-key>' first", err)
			}
			return err
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetKeyCmd, settingsRemoveKeyCmd, settingsModeCmd)
	rootCmd.AddCommand(settingsCmd)
}

// withSettings runs fn against the configured store and prints the result
func withSettings(cmd *cobra.Command, fn func(context.Context, *settings.Service) error) error {
	cfg, err := resolveConfig(config.Config{})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, err := openSettings(ctx, cfg, logging.NewTextLogger(cmd.ErrOrStderr(), cfg.Verbose))
	if err != nil {
		return err
	}
	defer svc.Close() //nolint:errcheck

	if err := fn(ctx, svc); err != nil {
		return err
	}

	current, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSettings(current.View())
	return nil
}
