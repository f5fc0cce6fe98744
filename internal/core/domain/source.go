package domain

import (
	"fmt"
	"strings"
)

// Source represents a configured data source.
// A loader of the matching Type is built from it.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the loader type (e.g., "github").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains loader-specific configuration.
	Config map[string]string
}

// Validate checks the source has the fields every loader needs.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Type) == "" {
		return fmt.Errorf("%w: source type is required", ErrInvalidInput)
	}
	return nil
}

// ConfigValue returns a trimmed config value, or empty string.
func (s Source) ConfigValue(key string) string {
	if s.Config == nil {
		return ""
	}
	return strings.TrimSpace(s.Config[key])
}
