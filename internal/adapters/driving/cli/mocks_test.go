package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/loaderhub/internal/connectors/github"
	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
)

type mockLoaderService struct {
	docs    []domain.Document
	err     error
	sources []domain.Source
	tokens  []string
}

func (m *mockLoaderService) Load(_ context.Context, source domain.Source) ([]domain.Document, error) {
	m.sources = append(m.sources, source)
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockLoaderService) SupportedTypes() []string {
	return []string{github.LoaderType}
}

func (m *mockLoaderService) Describe(loaderType string) (domain.LoaderType, error) {
	if loaderType != github.LoaderType {
		return domain.LoaderType{}, errors.New("unsupported")
	}
	return github.Describe(), nil
}

// lastSource returns the source of the most recent Load call.
func (m *mockLoaderService) lastSource() domain.Source {
	if len(m.sources) == 0 {
		return domain.Source{}
	}
	return m.sources[len(m.sources)-1]
}

type mockSettingsService struct {
	settings   domain.Settings
	err        error
	setErr     error
	set        map[string]string
	initCalled bool
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Init() error {
	m.initCalled = true
	return m.err
}

func (m *mockSettingsService) Keys() []string { return []string{"github.token"} }
func (m *mockSettingsService) Path() string   { return "/tmp/loaderhub/config.toml" }

var (
	testLoader   *mockLoaderService
	testSettings *mockSettingsService
)

// setupTestServices installs fresh mocks and resets command flags.
// The returned func restores the previous services.
func setupTestServices() func() {
	origLoader := newLoaderService
	origSettings := settingsService

	testLoader = &mockLoaderService{
		docs: []domain.Document{
			{
				ID:   "doc-1",
				Text: "print('hi')\n",
				ExtraInfo: map[string]any{
					domain.MetaFilePath: "src/main.py",
					domain.MetaFileName: "main.py",
					domain.MetaURL:      "https://github.com/octo/hub/blob/main/src/main.py",
				},
			},
		},
	}
	testSettings = &mockSettingsService{}

	SetServices(Services{
		NewLoader: func(token string) driving.LoaderService {
			testLoader.tokens = append(testLoader.tokens, token)
			return testLoader
		},
		Settings: testSettings,
	})
	resetGitHubFlags()

	return func() {
		newLoaderService = origLoader
		settingsService = origSettings
		resetGitHubFlags()
	}
}

func resetGitHubFlags() {
	githubBranch = ""
	githubCommit = ""
	githubIncludeDirs = nil
	githubExcludeDirs = nil
	githubIncludeExts = nil
	githubExcludeExts = nil
	githubBufferSize = 0
	githubAPIURL = ""
	githubWebURL = ""
	githubRPS = 0
	githubToken = ""
	githubPromptToken = false
	githubOutput = outputText
}
