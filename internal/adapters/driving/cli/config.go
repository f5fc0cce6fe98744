package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/loaderhub/internal/connectors/github"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user defaults",
	Long: `Reads and updates the defaults stored in ~/.loaderhub/config.toml.

Environment variables (GITHUB_TOKEN, GITHUB_API_URL) take precedence over
the file, and command flags take precedence over both.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default values for every unset setting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.Init(); err != nil {
			return fmt.Errorf("failed to initialise settings: %w", err)
		}
		cmd.Printf("Settings written to %s\n", settingsService.Path())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Update a single setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	gh := settings.GitHub
	cmd.Printf("Config file: %s\n", settingsService.Path())
	cmd.Println()
	cmd.Println("GitHub:")
	cmd.Printf("  token:               %s\n", maskToken(gh.Token))
	cmd.Printf("  api_base_url:        %s\n", orDefault(gh.APIBaseURL, "https://api.github.com/"))
	cmd.Printf("  web_base_url:        %s\n", orDefault(gh.WebBaseURL, github.DefaultWebBaseURL))
	cmd.Printf("  buffer_size:         %s\n", orDefault(intString(gh.BufferSize), "(default)"))
	cmd.Printf("  requests_per_second: %s\n", orDefault(floatString(gh.RequestsPerSecond), "(unlimited)"))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}
	if strings.HasSuffix(key, ".token") {
		value = maskToken(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatString(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
