package domain

// DefaultBufferSize is the blob fetch window used when none is configured.
const DefaultBufferSize = 10

// Settings holds user-level defaults read from the config file.
// Zero values mean "not set" and fall back to loader defaults.
type Settings struct {
	GitHub GitHubSettings `toml:"github"`
}

// GitHubSettings holds defaults for the GitHub repository loader.
type GitHubSettings struct {
	// Token is the bearer token for API calls.
	Token string `toml:"token,omitempty"`

	// APIBaseURL overrides https://api.github.com/ (GitHub Enterprise).
	APIBaseURL string `toml:"api_base_url,omitempty"`

	// WebBaseURL overrides https://github.com for document permalinks.
	WebBaseURL string `toml:"web_base_url,omitempty"`

	// BufferSize bounds concurrent blob fetches.
	BufferSize int `toml:"buffer_size,omitempty"`

	// RequestsPerSecond throttles API calls. Zero disables throttling.
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`
}

// DefaultSettings returns the settings written by "config init".
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHubSettings{
			BufferSize: DefaultBufferSize,
		},
	}
}
