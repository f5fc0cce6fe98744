package driven

import (
	"context"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// Loader fetches documents from a data source.
// Each loader type (github, ...) implements this interface.
// A Load call is independent of every previous call: loaders keep no
// state between invocations.
type Loader interface {
	// Type returns the loader type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Load fetches every document the source currently yields.
	// On any transport failure no partial result is returned.
	Load(ctx context.Context) ([]domain.Document, error)
}

// LoaderBuilder creates a Loader from a Source.
// TokenProvider may be nil for loaders that don't require authentication.
type LoaderBuilder func(source domain.Source, tokenProvider TokenProvider) (Loader, error)
