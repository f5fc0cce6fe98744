package driven

import "github.com/custodia-labs/loaderhub/internal/core/domain"

// SettingsStore provides access to user-level defaults.
// Implementations handle persistence (e.g., TOML files).
type SettingsStore interface {
	// Load reads settings from storage.
	// A missing file yields zero-value settings, not an error.
	Load() (domain.Settings, error)

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the settings file path.
	Path() string
}
