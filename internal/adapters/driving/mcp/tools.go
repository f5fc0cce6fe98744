package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/loaderhub/internal/connectors/github"
	"github.com/custodia-labs/loaderhub/internal/core/domain"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// defaultDocumentLimit caps the documents returned by one tool call.
const defaultDocumentLimit = 100

// LoadGitHubRepositoryInput is the input schema for the load_github_repository tool.
type LoadGitHubRepositoryInput struct {
	Repository               string   `json:"repository,omitempty" jsonschema:"repository as owner/repo, instead of owner and repo"`
	Owner                    string   `json:"owner,omitempty" jsonschema:"repository owner"`
	Repo                     string   `json:"repo,omitempty" jsonschema:"repository name"`
	Branch                   string   `json:"branch,omitempty" jsonschema:"branch to read; exactly one of branch and commit_sha is required"`
	CommitSHA                string   `json:"commit_sha,omitempty" jsonschema:"commit to read; exactly one of branch and commit_sha is required"`
	FilterDirectories        []string `json:"filter_directories,omitempty" jsonschema:"directory path prefixes to include or exclude"`
	FilterDirectoriesMode    string   `json:"filter_directories_mode,omitempty" jsonschema:"include (default) or exclude"`
	FilterFileExtensions     []string `json:"filter_file_extensions,omitempty" jsonschema:"file suffixes such as .py to include or exclude"`
	FilterFileExtensionsMode string   `json:"filter_file_extensions_mode,omitempty" jsonschema:"include (default) or exclude"`
	Limit                    int      `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 100)"`
}

// LoadOutput is the output schema for the load_github_repository tool.
type LoadOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
	Truncated bool             `json:"truncated,omitempty"`
}

// DocumentOutput represents a single loaded document.
type DocumentOutput struct {
	ID       string `json:"id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	Text     string `json:"text"`
}

// ListLoadersInput is the input schema for the list_loaders tool.
type ListLoadersInput struct{}

// ListLoadersOutput is the output schema for the list_loaders tool.
type ListLoadersOutput struct {
	Loaders []domain.LoaderType `json:"loaders"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_github_repository",
		Description: "Load the text files of a GitHub repository at a branch or commit",
	}, s.handleLoadGitHubRepository)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_loaders",
		Description: "List the available loader types and their configuration keys",
	}, s.handleListLoaders)
}

// handleLoadGitHubRepository handles the load_github_repository tool invocation.
func (s *Server) handleLoadGitHubRepository(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadGitHubRepositoryInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	opts, err := input.options()
	if err != nil {
		return nil, LoadOutput{}, err
	}

	config := opts.ConfigMap()
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			logger.Warn("mcp: ignoring settings: %v", err)
		} else {
			config = github.WithSettings(config, settings.GitHub)
		}
	}

	name := opts.Owner + "/" + opts.Repo
	docs, err := s.ports.Loader.Load(ctx, domain.Source{
		ID:     "mcp:" + name,
		Type:   github.LoaderType,
		Name:   name,
		Config: config,
	})
	if err != nil {
		return nil, LoadOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultDocumentLimit
	}

	output := LoadOutput{
		Documents: make([]DocumentOutput, 0, min(limit, len(docs))),
		Total:     len(docs),
	}
	for i := range docs {
		if len(output.Documents) == limit {
			output.Truncated = true
			break
		}
		output.Documents = append(output.Documents, DocumentOutput{
			ID:       docs[i].ID,
			FilePath: docs[i].FilePath(),
			FileName: docs[i].FileName(),
			URL:      docs[i].URL(),
			Text:     docs[i].Text,
		})
	}
	output.Count = len(output.Documents)

	return nil, output, nil
}

// handleListLoaders handles the list_loaders tool invocation.
func (s *Server) handleListLoaders(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListLoadersInput,
) (*mcp.CallToolResult, ListLoadersOutput, error) {
	loaders, err := s.loaderTypes()
	if err != nil {
		return nil, ListLoadersOutput{}, err
	}
	return nil, ListLoadersOutput{Loaders: loaders}, nil
}

func (s *Server) loaderTypes() ([]domain.LoaderType, error) {
	types := s.ports.Loader.SupportedTypes()
	loaders := make([]domain.LoaderType, 0, len(types))
	for _, t := range types {
		info, err := s.ports.Loader.Describe(t)
		if err != nil {
			return nil, fmt.Errorf("describe loader %q: %w", t, err)
		}
		loaders = append(loaders, info)
	}
	return loaders, nil
}

// options converts the tool input into loader options.
func (in LoadGitHubRepositoryInput) options() (github.LoadOptions, error) {
	opts := github.LoadOptions{
		Owner: in.Owner,
		Repo:  in.Repo,
		Ref:   github.Ref{Branch: in.Branch, CommitSHA: in.CommitSHA},
	}
	if in.Repository != "" {
		owner, repo, err := github.ParseRepository(in.Repository)
		if err != nil {
			return github.LoadOptions{}, err
		}
		opts.Owner, opts.Repo = owner, repo
	}

	dirs, err := filter(in.FilterDirectories, in.FilterDirectoriesMode)
	if err != nil {
		return github.LoadOptions{}, err
	}
	exts, err := filter(in.FilterFileExtensions, in.FilterFileExtensionsMode)
	if err != nil {
		return github.LoadOptions{}, err
	}
	opts.FilterDirectories, opts.FilterFileExtensions = dirs, exts

	return opts, opts.Validate()
}

func filter(values []string, mode string) (*domain.Filter, error) {
	if len(values) == 0 {
		return nil, nil
	}
	m, err := domain.ParseFilterMode(mode)
	if err != nil {
		return nil, err
	}
	return domain.NewFilter(m, values...), nil
}
