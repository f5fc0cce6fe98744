package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// mockLoaderService is a mock implementation of driving.LoaderService.
type mockLoaderService struct {
	docs    []domain.Document
	err     error
	loaders map[string]domain.LoaderType
	sources []domain.Source
}

func (m *mockLoaderService) Load(_ context.Context, source domain.Source) ([]domain.Document, error) {
	m.sources = append(m.sources, source)
	return m.docs, m.err
}

func (m *mockLoaderService) SupportedTypes() []string {
	types := make([]string, 0, len(m.loaders))
	for t := range m.loaders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (m *mockLoaderService) Describe(loaderType string) (domain.LoaderType, error) {
	info, ok := m.loaders[loaderType]
	if !ok {
		return domain.LoaderType{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, loaderType)
	}
	return info, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (domain.Settings, error) { return m.settings, m.err }
func (m *mockSettingsService) Set(_, _ string) error         { return m.err }
func (m *mockSettingsService) Init() error                   { return m.err }
func (m *mockSettingsService) Keys() []string                { return nil }
func (m *mockSettingsService) Path() string                  { return "" }

func testDocument(path, text string) domain.Document {
	return domain.Document{
		ID:   "id-" + path,
		Text: text,
		ExtraInfo: map[string]any{
			domain.MetaFilePath: path,
			domain.MetaFileName: path,
			domain.MetaURL:      "https://github.com/octo/hub/blob/main/" + path,
		},
	}
}
