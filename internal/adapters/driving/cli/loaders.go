package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var loadersCmd = &cobra.Command{
	Use:   "loaders",
	Short: "List the available loaders and their configuration keys",
	RunE:  runLoaders,
}

func init() {
	rootCmd.AddCommand(loadersCmd)
}

func runLoaders(cmd *cobra.Command, _ []string) error {
	if newLoaderService == nil {
		return errors.New("loader service not configured")
	}
	svc := newLoaderService("")

	types := svc.SupportedTypes()
	if len(types) == 0 {
		cmd.Println("No loaders registered.")
		return nil
	}

	for i, t := range types {
		info, err := svc.Describe(t)
		if err != nil {
			return fmt.Errorf("failed to describe %s: %w", t, err)
		}
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("%s (%s)\n", info.Name, info.ID)
		if info.Description != "" {
			cmd.Printf("  %s\n", info.Description)
		}
		if info.AuthMethod != "" {
			cmd.Printf("  Auth: %s\n", info.AuthMethod)
		}
		cmd.Println("  Config keys:")
		for _, key := range info.ConfigKeys {
			line := "    " + key.Key
			if key.Required {
				line += " (required)"
			}
			if key.Default != "" {
				line += " [default: " + key.Default + "]"
			}
			cmd.Printf("%s\n", line)
			if key.Description != "" {
				cmd.Printf("        %s\n", key.Description)
			}
		}
	}
	return nil
}
