package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/loaderhub/internal/connectors/github"
	"github.com/custodia-labs/loaderhub/internal/core/domain"
)

// Output formats of the github command.
const (
	outputText  = "text"
	outputJSON  = "json"
	outputPaths = "paths"
)

var (
	githubBranch      string
	githubCommit      string
	githubIncludeDirs []string
	githubExcludeDirs []string
	githubIncludeExts []string
	githubExcludeExts []string
	githubBufferSize  int
	githubAPIURL      string
	githubWebURL      string
	githubRPS         float64
	githubToken       string
	githubPromptToken bool
	githubOutput      string
)

var githubCmd = &cobra.Command{
	Use:   "github OWNER/REPO",
	Short: "Load the text files of a GitHub repository",
	Long: `Reads every text file of a repository at a branch or commit and prints
the resulting documents. Exactly one of --branch and --commit is required.

Directory filters prune the walk: an excluded directory is never listed,
and with --include-dir only the listed directories are read. Binary files
are skipped.

The token is taken from --token, then GITHUB_TOKEN, then the config file.
With --prompt-token you are asked for one when none of those is set.`,
	Example: `  loaderhub github octo/hub --branch main
  loaderhub github octo/hub --commit 1a2b3c --exclude-dir node_modules,vendor
  loaderhub github octo/hub -b main --include-ext .py,.md -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGitHub,
}

func init() {
	f := githubCmd.Flags()
	f.StringVarP(&githubBranch, "branch", "b", "", "branch to read")
	f.StringVar(&githubCommit, "commit", "", "commit SHA to read")
	f.StringSliceVar(&githubIncludeDirs, "include-dir", nil, "only read these directories")
	f.StringSliceVar(&githubExcludeDirs, "exclude-dir", nil, "skip these directories")
	f.StringSliceVar(&githubIncludeExts, "include-ext", nil, "only read files with these extensions")
	f.StringSliceVar(&githubExcludeExts, "exclude-ext", nil, "skip files with these extensions")
	f.IntVar(&githubBufferSize, "buffer-size", 0, "concurrent blob fetches per batch (default 10)")
	f.StringVar(&githubAPIURL, "api-url", "", "REST API root for GitHub Enterprise")
	f.StringVar(&githubWebURL, "web-url", "", "web root used in document URLs")
	f.Float64Var(&githubRPS, "rps", 0, "maximum API requests per second, 0 disables")
	f.StringVar(&githubToken, "token", "", "GitHub token (overrides GITHUB_TOKEN)")
	f.BoolVar(&githubPromptToken, "prompt-token", false, "ask for a token when none is configured")
	f.StringVarP(&githubOutput, "output", "o", outputText, "output format: text, json or paths")
	rootCmd.AddCommand(githubCmd)
}

func runGitHub(cmd *cobra.Command, args []string) error {
	if newLoaderService == nil {
		return errors.New("loader service not configured")
	}
	switch githubOutput {
	case outputText, outputJSON, outputPaths:
	default:
		return fmt.Errorf("unknown output format %q", githubOutput)
	}

	owner, repo, err := github.ParseRepository(args[0])
	if err != nil {
		return err
	}

	dirs, err := flagFilter("directory", githubIncludeDirs, githubExcludeDirs)
	if err != nil {
		return err
	}
	exts, err := flagFilter("extension", githubIncludeExts, githubExcludeExts)
	if err != nil {
		return err
	}

	opts := github.LoadOptions{
		Owner:                owner,
		Repo:                 repo,
		Ref:                  github.Ref{Branch: githubBranch, CommitSHA: githubCommit},
		FilterDirectories:    dirs,
		FilterFileExtensions: exts,
		BufferSize:           githubBufferSize,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	config := opts.ConfigMap()
	if githubAPIURL != "" {
		config[github.KeyAPIBaseURL] = githubAPIURL
	}
	if githubWebURL != "" {
		config[github.KeyWebBaseURL] = githubWebURL
	}
	if githubRPS != 0 {
		config[github.KeyRequestsPerSecond] = strconv.FormatFloat(githubRPS, 'f', -1, 64)
	}

	token := githubToken
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		config = github.WithSettings(config, settings.GitHub)
		if token == "" {
			token = settings.GitHub.Token
		}
	}
	if token == "" && githubPromptToken {
		cmd.Print("GitHub token: ")
		token = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	name := owner + "/" + repo
	docs, err := newLoaderService(token).Load(cmd.Context(), domain.Source{
		ID:     "cli:" + name,
		Type:   github.LoaderType,
		Name:   name,
		Config: config,
	})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	switch githubOutput {
	case outputJSON:
		return outputDocumentsJSON(cmd, docs)
	case outputPaths:
		for i := range docs {
			cmd.Println(docs[i].FilePath())
		}
		return nil
	default:
		outputDocumentsText(cmd, name, docs)
		return nil
	}
}

// flagFilter builds a filter from an include and an exclude flag, of which
// at most one may be set.
func flagFilter(kind string, include, exclude []string) (*domain.Filter, error) {
	switch {
	case len(include) > 0 && len(exclude) > 0:
		return nil, fmt.Errorf("%w: cannot both include and exclude by %s", domain.ErrInvalidInput, kind)
	case len(include) > 0:
		return domain.NewFilter(domain.FilterInclude, include...), nil
	case len(exclude) > 0:
		return domain.NewFilter(domain.FilterExclude, exclude...), nil
	default:
		return nil, nil
	}
}

func outputDocumentsJSON(cmd *cobra.Command, docs []domain.Document) error {
	if docs == nil {
		docs = []domain.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDocumentsText(cmd *cobra.Command, name string, docs []domain.Document) {
	if len(docs) == 0 {
		cmd.Printf("No text files found in %s.\n", name)
		return
	}

	cmd.Printf("Loaded %d documents from %s:\n", len(docs), name)
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s (%d bytes)\n", docs[i].FilePath(), len(docs[i].Text))
		if url := docs[i].URL(); url != "" {
			cmd.Printf("      %s\n", url)
		}
	}
}
