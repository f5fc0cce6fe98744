package mcp

import (
	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Loader builds and runs loaders.
	Loader driving.LoaderService

	// Settings supplies user defaults such as the GitHub API URL. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Loader == nil {
		return ErrMissingLoaderService
	}
	return nil
}
