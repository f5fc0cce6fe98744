package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/loaderhub/internal/connectors/github"
	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driven"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.LoaderService = (*LoaderService)(nil)

type registration struct {
	info  domain.LoaderType
	build driven.LoaderBuilder
}

// LoaderService builds loaders by source type and runs them.
type LoaderService struct {
	mu            sync.RWMutex
	loaders       map[string]registration
	tokenProvider driven.TokenProvider
}

// NewLoaderService creates a loader service with the built-in loaders.
// tokenProvider is handed to every loader it builds and may be nil.
func NewLoaderService(tokenProvider driven.TokenProvider) *LoaderService {
	s := &LoaderService{
		loaders:       make(map[string]registration),
		tokenProvider: tokenProvider,
	}
	s.registerBuiltinLoaders()
	return s
}

func (s *LoaderService) registerBuiltinLoaders() {
	s.loaders[github.LoaderType] = registration{info: github.Describe(), build: github.Build}
}

// Register adds a loader type. Registering an existing type is an error.
func (s *LoaderService) Register(info domain.LoaderType, builder driven.LoaderBuilder) error {
	id := strings.TrimSpace(info.ID)
	if id == "" {
		return fmt.Errorf("%w: loader type id is required", domain.ErrInvalidInput)
	}
	if builder == nil {
		return fmt.Errorf("%w: loader %q has no builder", domain.ErrInvalidInput, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loaders[id]; ok {
		return fmt.Errorf("%w: loader %q already registered", domain.ErrInvalidInput, id)
	}
	info.ID = id
	s.loaders[id] = registration{info: info, build: builder}
	return nil
}

// SupportedTypes returns all registered loader types, sorted.
func (s *LoaderService) SupportedTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.loaders))
	for t := range s.loaders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Describe returns the descriptor of a registered loader type.
func (s *LoaderService) Describe(loaderType string) (domain.LoaderType, error) {
	reg, err := s.lookup(loaderType)
	if err != nil {
		return domain.LoaderType{}, err
	}
	return reg.info, nil
}

// Build creates the loader for a source without running it.
func (s *LoaderService) Build(source domain.Source) (driven.Loader, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	reg, err := s.lookup(source.Type)
	if err != nil {
		return nil, err
	}
	return reg.build(source, s.tokenProvider)
}

// Load builds the loader for source and returns its documents.
func (s *LoaderService) Load(ctx context.Context, source domain.Source) ([]domain.Document, error) {
	loader, err := s.Build(source)
	if err != nil {
		return nil, err
	}

	logger.Debug("loading source %q (type %s)", source.ID, loader.Type())
	docs, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s source: %w", loader.Type(), err)
	}
	return docs, nil
}

func (s *LoaderService) lookup(loaderType string) (registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.loaders[strings.TrimSpace(loaderType)]
	if !ok {
		return registration{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, loaderType)
	}
	return reg, nil
}
