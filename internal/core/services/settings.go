package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driven"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Setting keys accepted by Set.
//
//nolint:gosec // G101: These are key names, not actual credentials.
const (
	KeyGitHubToken             = "github.token"
	KeyGitHubAPIBaseURL        = "github.api_base_url"
	KeyGitHubWebBaseURL        = "github.web_base_url"
	KeyGitHubBufferSize        = "github.buffer_size"
	KeyGitHubRequestsPerSecond = "github.requests_per_second"
)

// setters apply a raw string value to settings.
var setters = map[string]func(*domain.Settings, string) error{
	KeyGitHubToken: func(s *domain.Settings, v string) error {
		s.GitHub.Token = v
		return nil
	},
	KeyGitHubAPIBaseURL: func(s *domain.Settings, v string) error {
		s.GitHub.APIBaseURL = v
		return nil
	},
	KeyGitHubWebBaseURL: func(s *domain.Settings, v string) error {
		s.GitHub.WebBaseURL = v
		return nil
	},
	KeyGitHubBufferSize: func(s *domain.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, KeyGitHubBufferSize, v)
		}
		s.GitHub.BufferSize = n
		return nil
	},
	KeyGitHubRequestsPerSecond: func(s *domain.Settings, v string) error {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, KeyGitHubRequestsPerSecond, v)
		}
		s.GitHub.RequestsPerSecond = rps
		return nil
	},
}

// SettingsService manages user-level defaults.
type SettingsService struct {
	store   driven.SettingsStore
	overlay func(domain.Settings) domain.Settings
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store driven.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// WithOverlay sets a function applied to settings on Get, such as
// environment variables. Overlaid values are never persisted.
func (s *SettingsService) WithOverlay(overlay func(domain.Settings) domain.Settings) *SettingsService {
	s.overlay = overlay
	return s
}

// Get returns the stored settings with the overlay applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings, err := s.load()
	if err != nil {
		return domain.Settings{}, err
	}
	if s.overlay != nil {
		settings = s.overlay(settings)
	}
	return settings, nil
}

func (s *SettingsService) load() (domain.Settings, error) {
	settings, err := s.store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Set updates one setting and persists it.
func (s *SettingsService) Set(key, value string) error {
	set, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.load()
	if err != nil {
		return err
	}
	if err := set(&settings, strings.TrimSpace(value)); err != nil {
		return err
	}

	if err := s.store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Init fills unset settings with defaults and persists them.
// Values already stored are kept.
func (s *SettingsService) Init() error {
	settings, err := s.load()
	if err != nil {
		return err
	}

	defaults := domain.DefaultSettings()
	if settings.GitHub.BufferSize == 0 {
		settings.GitHub.BufferSize = defaults.GitHub.BufferSize
	}

	if err := s.store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Keys returns the keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.store.Path()
}
