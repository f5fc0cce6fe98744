package driving

import (
	"context"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// LoaderService builds loaders from sources and runs them.
type LoaderService interface {
	// Load builds the loader for source.Type and returns its documents.
	// Returns ErrUnsupportedType if no loader is registered for the type.
	Load(ctx context.Context, source domain.Source) ([]domain.Document, error)

	// SupportedTypes returns all registered loader types, sorted.
	SupportedTypes() []string

	// Describe returns the descriptor of a registered loader type.
	Describe(loaderType string) (domain.LoaderType, error)
}
