package github

import (
	"context"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driven"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// LoaderType is the source type handled by this package.
const LoaderType = "github"

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader reads the files of one GitHub repository as documents.
type Loader struct {
	sourceID string
	config   *Config
	api      API
}

// New creates a loader talking to GitHub through a Client.
func New(sourceID string, cfg *Config, tokenProvider driven.TokenProvider) *Loader {
	client := NewClient(tokenProvider,
		WithBaseURL(cfg.APIBaseURL),
		WithRequestsPerSecond(cfg.RequestsPerSecond),
	)
	return NewWithAPI(sourceID, cfg, client)
}

// NewWithAPI creates a loader over any API implementation.
func NewWithAPI(sourceID string, cfg *Config, api API) *Loader {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Loader{sourceID: sourceID, config: cfg, api: api}
}

// Build is the driven.LoaderBuilder for GitHub sources.
func Build(source domain.Source, tokenProvider driven.TokenProvider) (driven.Loader, error) {
	cfg, err := ParseConfig(source)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(source.ID, cfg, tokenProvider), nil
}

// Type returns the loader type identifier.
func (l *Loader) Type() string {
	return LoaderType
}

// SourceID returns the source identifier.
func (l *Loader) SourceID() string {
	return l.sourceID
}

// Load loads the repository described by the loader's configuration.
func (l *Loader) Load(ctx context.Context) ([]domain.Document, error) {
	return l.LoadRepository(ctx, l.config.LoadOptions)
}

// LoadRepository resolves the ref, walks the tree, fetches blobs and
// assembles documents, each stage finishing before the next starts.
// Configuration errors are returned before any API call; any API error
// aborts the load with no partial result.
func (l *Loader) LoadRepository(ctx context.Context, opts LoadOptions) ([]domain.Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger.Section("GitHub Repository Load")
	logger.Info("github: loading %s/%s at %s", opts.Owner, opts.Repo, opts.Ref)

	resolved, err := NewResolver(l.api).Resolve(ctx, opts.Owner, opts.Repo, opts.Ref)
	if err != nil {
		return nil, err
	}

	filter := NewPathFilter(opts.FilterDirectories, opts.FilterFileExtensions)
	entries, err := NewWalker(l.api, filter).Walk(ctx, opts.Owner, opts.Repo, resolved.TreeSHA)
	if err != nil {
		return nil, err
	}

	blobs, err := NewBlobIterator(l.api, opts.Owner, opts.Repo, entries, opts.BufferSize).Collect(ctx)
	if err != nil {
		return nil, err
	}

	docs := NewAssembler(l.config.WebBaseURL).Assemble(resolved, blobs)
	logger.Info("github: loaded %d documents (%d blobs skipped as binary)", len(docs), len(entries)-len(blobs))
	return docs, nil
}
