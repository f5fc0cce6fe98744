package driving

import "github.com/custodia-labs/loaderhub/internal/core/domain"

// SettingsService manages user-level defaults.
type SettingsService interface {
	// Get returns the stored settings.
	Get() (domain.Settings, error)

	// Set updates a single setting by dotted key (e.g., "github.token").
	Set(key, value string) error

	// Init writes default values for every unset setting.
	Init() error

	// Keys returns the keys accepted by Set, sorted.
	Keys() []string

	// Path returns where settings are stored.
	Path() string
}
