package types

// Settings holds the user's persisted search preferences.
// They are owned by the settings store and read-only from the ranking core.
type Settings struct {
	APIKey     string `json:"apiKey,omitempty"`
	SearchMode Mode   `json:"searchMode,omitempty" validate:"omitempty,oneof=local ai"`
}

// HasAPIKey reports whether a remote ranking key is configured
func (s Settings) HasAPIKey() bool {
	return s.APIKey != ""
}

// EffectiveMode returns the configured mode, defaulting to local.
func (s Settings) EffectiveMode() Mode {
	if s.SearchMode.Valid() {
		return s.SearchMode
	}
	return ModeLocal
}

// SettingsView is the settings representation safe to return to clients.
// The API key itself is never echoed back.
type SettingsView struct {
	HasAPIKey  bool `json:"hasApiKey"`
	SearchMode Mode `json:"searchMode"`
}

// View returns the client-safe representation of s
func (s Settings) View() SettingsView {
	return SettingsView{HasAPIKey: s.HasAPIKey(), SearchMode: s.EffectiveMode()}
}
