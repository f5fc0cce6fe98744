package github

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// Source configuration keys.
const (
	KeyOwner                    = "owner"
	KeyRepo                     = "repo"
	KeyRepository               = "repository"
	KeyBranch                   = "branch"
	KeyCommitSHA                = "commit_sha"
	KeyFilterDirectories        = "filter_directories"
	KeyFilterDirectoriesMode    = "filter_directories_mode"
	KeyFilterFileExtensions     = "filter_file_extensions"
	KeyFilterFileExtensionsMode = "filter_file_extensions_mode"
	KeyBufferSize               = "buffer_size"
	KeyAPIBaseURL               = "api_base_url"
	KeyWebBaseURL               = "web_base_url"
	KeyRequestsPerSecond        = "requests_per_second"
)

// LoadOptions are the arguments of a single repository load.
type LoadOptions struct {
	Owner string
	Repo  string
	Ref   Ref

	// FilterDirectories prunes the walk by path prefix. Nil means no filter.
	FilterDirectories *domain.Filter

	// FilterFileExtensions keeps or drops blobs by suffix. Nil means no filter.
	FilterFileExtensions *domain.Filter

	// BufferSize bounds concurrent blob fetches. Zero selects the default.
	BufferSize int
}

// Validate checks the options without touching the network.
func (o LoadOptions) Validate() error {
	if strings.TrimSpace(o.Owner) == "" {
		return ErrMissingOwner
	}
	if strings.TrimSpace(o.Repo) == "" {
		return ErrMissingRepo
	}
	if err := o.Ref.Validate(); err != nil {
		return err
	}
	if err := o.FilterDirectories.Validate(); err != nil {
		return err
	}
	if err := o.FilterFileExtensions.Validate(); err != nil {
		return err
	}
	if o.BufferSize < 0 {
		return ErrInvalidBufferSize
	}
	return nil
}

// ConfigMap renders the options as source configuration, the inverse of
// ParseConfig. Unset options are left out.
func (o LoadOptions) ConfigMap() map[string]string {
	config := map[string]string{
		KeyOwner: o.Owner,
		KeyRepo:  o.Repo,
	}
	if o.Ref.Branch != "" {
		config[KeyBranch] = o.Ref.Branch
	}
	if o.Ref.CommitSHA != "" {
		config[KeyCommitSHA] = o.Ref.CommitSHA
	}
	if f := o.FilterDirectories; f != nil && len(f.Values) > 0 {
		config[KeyFilterDirectories] = strings.Join(f.Values, ",")
		config[KeyFilterDirectoriesMode] = f.Mode.String()
	}
	if f := o.FilterFileExtensions; f != nil && len(f.Values) > 0 {
		config[KeyFilterFileExtensions] = strings.Join(f.Values, ",")
		config[KeyFilterFileExtensionsMode] = f.Mode.String()
	}
	if o.BufferSize != 0 {
		config[KeyBufferSize] = strconv.Itoa(o.BufferSize)
	}
	return config
}

// Config holds the parsed configuration for a GitHub source.
type Config struct {
	LoadOptions

	// APIBaseURL overrides the REST API root (GitHub Enterprise).
	APIBaseURL string

	// WebBaseURL overrides the web root used in document URLs.
	WebBaseURL string

	// RequestsPerSecond throttles API calls. Zero disables throttling.
	RequestsPerSecond float64
}

// Validate checks the configuration without touching the network.
func (c *Config) Validate() error {
	if err := c.LoadOptions.Validate(); err != nil {
		return err
	}
	if c.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}
	return nil
}

// ParseConfig parses a source's config map into a Config struct.
// "repository" (owner/repo) may stand in for "owner" and "repo".
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		LoadOptions: LoadOptions{
			Owner: source.ConfigValue(KeyOwner),
			Repo:  source.ConfigValue(KeyRepo),
			Ref: Ref{
				Branch:    source.ConfigValue(KeyBranch),
				CommitSHA: source.ConfigValue(KeyCommitSHA),
			},
		},
		APIBaseURL: source.ConfigValue(KeyAPIBaseURL),
		WebBaseURL: source.ConfigValue(KeyWebBaseURL),
	}

	if repository := source.ConfigValue(KeyRepository); repository != "" {
		owner, repo, err := ParseRepository(repository)
		if err != nil {
			return nil, err
		}
		cfg.Owner, cfg.Repo = owner, repo
	}

	dirs, err := parseFilter(source, KeyFilterDirectories, KeyFilterDirectoriesMode)
	if err != nil {
		return nil, err
	}
	cfg.FilterDirectories = dirs

	exts, err := parseFilter(source, KeyFilterFileExtensions, KeyFilterFileExtensionsMode)
	if err != nil {
		return nil, err
	}
	cfg.FilterFileExtensions = exts

	if v := source.ConfigValue(KeyBufferSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidBufferSize, KeyBufferSize, v)
		}
		cfg.BufferSize = n
	}

	if v := source.ConfigValue(KeyRequestsPerSecond); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidRate, KeyRequestsPerSecond, v)
		}
		cfg.RequestsPerSecond = rps
	}

	return cfg, nil
}

// WithSettings returns a copy of config with unset keys filled from the
// user's GitHub settings. Keys already present in config win.
func WithSettings(config map[string]string, settings domain.GitHubSettings) map[string]string {
	out := make(map[string]string, len(config)+4)
	for k, v := range config {
		out[k] = v
	}

	setDefault := func(key, value string) {
		if strings.TrimSpace(out[key]) == "" && value != "" {
			out[key] = value
		}
	}
	setDefault(KeyAPIBaseURL, settings.APIBaseURL)
	setDefault(KeyWebBaseURL, settings.WebBaseURL)
	if settings.BufferSize > 0 {
		setDefault(KeyBufferSize, strconv.Itoa(settings.BufferSize))
	}
	if settings.RequestsPerSecond > 0 {
		setDefault(KeyRequestsPerSecond, strconv.FormatFloat(settings.RequestsPerSecond, 'f', -1, 64))
	}
	return out
}

// ParseRepository splits "owner/repo".
func ParseRepository(s string) (owner, repo string, err error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, s)
	}
	return parts[0], parts[1], nil
}

// parseFilter reads a comma-separated list and its mode. An absent list
// means no filter.
func parseFilter(source domain.Source, listKey, modeKey string) (*domain.Filter, error) {
	list := source.ConfigValue(listKey)
	if list == "" {
		return nil, nil
	}
	mode, err := domain.ParseFilterMode(source.ConfigValue(modeKey))
	if err != nil {
		return nil, err
	}
	return domain.NewFilter(mode, parsePatterns(list)...), nil
}

// parsePatterns parses a comma-separated string.
func parsePatterns(s string) []string {
	parts := strings.Split(s, ",")
	patterns := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			patterns = append(patterns, part)
		}
	}
	return patterns
}

// Describe returns the descriptor of the GitHub loader type.
func Describe() domain.LoaderType {
	return domain.LoaderType{
		ID:          LoaderType,
		Name:        "GitHub Repository",
		Description: "Read every text file of a repository at a branch or commit",
		AuthMethod:  domain.AuthMethodPAT,
		ConfigKeys:  configKeys(),
	}
}

func configKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{Key: KeyOwner, Label: "Owner", Description: "Repository owner (user or organisation)", Required: true},
		{Key: KeyRepo, Label: "Repository", Description: "Repository name", Required: true},
		{Key: KeyBranch, Label: "Branch", Description: "Branch to read; mutually exclusive with commit_sha"},
		{Key: KeyCommitSHA, Label: "Commit SHA", Description: "Commit to read; mutually exclusive with branch"},
		{
			Key:         KeyFilterDirectories,
			Label:       "Directory Filter",
			Description: "Comma-separated path prefixes, e.g. docs,src/app",
		},
		{
			Key:         KeyFilterDirectoriesMode,
			Label:       "Directory Filter Mode",
			Description: "include or exclude",
			Default:     string(domain.FilterInclude),
		},
		{
			Key:         KeyFilterFileExtensions,
			Label:       "Extension Filter",
			Description: "Comma-separated suffixes, e.g. .py,.md",
		},
		{
			Key:         KeyFilterFileExtensionsMode,
			Label:       "Extension Filter Mode",
			Description: "include or exclude",
			Default:     string(domain.FilterInclude),
		},
		{
			Key:         KeyBufferSize,
			Label:       "Buffer Size",
			Description: "Concurrent blob fetches per batch",
			Default:     strconv.Itoa(DefaultBufferSize),
		},
		{Key: KeyAPIBaseURL, Label: "API URL", Description: "REST API root for GitHub Enterprise"},
		{Key: KeyWebBaseURL, Label: "Web URL", Description: "Web root used in document URLs", Default: DefaultWebBaseURL},
		{Key: KeyRequestsPerSecond, Label: "Requests Per Second", Description: "Client-side throttle, 0 disables"},
	}
}
