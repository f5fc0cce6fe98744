// Package cli implements the loaderhub command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	// newLoaderService builds a loader service authenticating with token.
	// An empty token means anonymous access.
	newLoaderService func(token string) driving.LoaderService

	settingsService driving.SettingsService
)

// Services holds the dependencies of the commands.
type Services struct {
	// NewLoader builds a loader service for a bearer token.
	NewLoader func(token string) driving.LoaderService

	// Settings reads and updates user defaults.
	Settings driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "loaderhub",
	Short: "Load documents from third-party sources",
	Long: `loaderhub turns third-party sources into plain documents: text plus
metadata such as file path and permalink.

The GitHub loader reads every text file of a repository at a branch or
commit, pruning excluded directories before they are fetched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print what each loader stage is doing")
}

// SetServices wires the services used by the commands.
func SetServices(s Services) {
	newLoaderService = s.NewLoader
	settingsService = s.Settings
}

// SetVersion sets the version printed by "loaderhub version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
