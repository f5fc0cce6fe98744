// Package env reads loaderhub settings from environment variables.
package env

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// GitHub holds the GitHub variables. The names match the ones GitHub
// Actions exports, so a workflow needs no extra wiring.
type GitHub struct {
	Token  string `env:"TOKEN"`
	APIURL string `env:"API_URL"`
}

// Config is the environment view of loaderhub settings.
type Config struct {
	GitHub    GitHub `env:",prefix=GITHUB_"`
	ConfigDir string `env:"LOADERHUB_CONFIG_DIR"`
	Verbose   bool   `env:"LOADERHUB_VERBOSE, default=false"`
}

// Load reads the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// LoadWith reads variables from lookuper instead of the process environment.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Apply overlays the variables that are set onto settings.
func (c *Config) Apply(settings domain.Settings) domain.Settings {
	if c.GitHub.Token != "" {
		settings.GitHub.Token = c.GitHub.Token
	}
	if c.GitHub.APIURL != "" {
		settings.GitHub.APIBaseURL = c.GitHub.APIURL
	}
	return settings
}
