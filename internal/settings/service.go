package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/types"
)

// Service reads and updates settings on top of a Store.
//
// Saving a key switches the mode to ai, removing it switches back to local,
// and ai cannot be selected while no key is stored.
type Service struct {
	store  Store
	logger logging.Logger
}

// NewService creates a settings service. A nil logger discards output.
func NewService(store Store, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Service{store: store, logger: logger}
}

// Load returns the current settings. An unknown stored mode reads as empty,
// which callers treat as local.
func (s *Service) Load(ctx context.Context) (types.Settings, error) {
	apiKey, _, err := s.store.Get(ctx, KeyAPIKey)
	if err != nil {
		return types.Settings{}, fmt.Errorf("failed to load API key: %w", err)
	}
	mode, _, err := s.store.Get(ctx, KeySearchMode)
	if err != nil {
		return types.Settings{}, fmt.Errorf("failed to load search mode: %w", err)
	}

	settings := types.Settings{APIKey: apiKey, SearchMode: types.Mode(mode)}
	if err := settings.Validate(); err != nil {
		s.logger.WithField("search_mode", mode).Warn("ignoring invalid stored search mode")
		settings.SearchMode = ""
	}
	return settings, nil
}

// SaveAPIKey stores a trimmed key and switches the mode to ai.
func (s *Service) SaveAPIKey(ctx context.Context, apiKey string) error {
	req := types.APIKeyRequest{APIKey: strings.TrimSpace(apiKey)}
	if err := req.Validate(); err != nil {
		return ErrInvalidAPIKey
	}

	if err := s.store.Set(ctx, KeyAPIKey, req.APIKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	if err := s.store.Set(ctx, KeySearchMode, string(types.ModeAI)); err != nil {
		return fmt.Errorf("failed to save search mode: %w", err)
	}

	s.logger.Info("API key saved, AI search enabled")
	return nil
}

// RemoveAPIKey deletes the key and switches the mode to local.
func (s *Service) RemoveAPIKey(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyAPIKey); err != nil {
		return fmt.Errorf("failed to remove API key: %w", err)
	}
	if err := s.store.Set(ctx, KeySearchMode, string(types.ModeLocal)); err != nil {
		return fmt.Errorf("failed to save search mode: %w", err)
	}

	s.logger.Info("API key removed, local search enabled")
	return nil
}

// SetMode selects the search mode. Selecting ai requires a stored key.
func (s *Service) SetMode(ctx context.Context, mode types.Mode) error {
	req := types.ModeRequest{Mode: mode}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if mode == types.ModeAI {
		apiKey, _, err := s.store.Get(ctx, KeyAPIKey)
		if err != nil {
			return fmt.Errorf("failed to load API key: %w", err)
		}
		if apiKey == "" {
			return ErrAPIKeyRequired
		}
	}

	if err := s.store.Set(ctx, KeySearchMode, string(mode)); err != nil {
		return fmt.Errorf("failed to save search mode: %w", err)
	}
	return nil
}

// Close releases the underlying store
func (s *Service) Close() error {
	return s.store.Close()
}
