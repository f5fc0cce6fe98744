package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for loaderhub resources.
const uriScheme = "loaderhub://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "loaders",
		Name:        "loaders",
		Description: "Descriptors of all available loader types",
		MIMEType:    "application/json",
	}, s.handleLoadersResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "loaders/{type}",
		Name:        "loader",
		Description: "Descriptor of one loader type, including its configuration keys",
		MIMEType:    "application/json",
	}, s.handleLoaderResource)
}

// handleLoadersResource returns every loader descriptor.
func (s *Server) handleLoadersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	loaders, err := s.loaderTypes()
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, loaders)
}

// handleLoaderResource returns the descriptor named in the URI.
func (s *Server) handleLoaderResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	loaderType := extractLoaderType(req.Params.URI)
	if loaderType == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, err := s.ports.Loader.Describe(loaderType)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLoaderType extracts the type from a URI like loaderhub://loaders/{type}.
func extractLoaderType(uri string) string {
	const prefix = uriScheme + "loaders/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	loaderType := strings.TrimPrefix(uri, prefix)
	if strings.Contains(loaderType, "/") {
		return ""
	}
	return loaderType
}
