// Package mcp provides an MCP (Model Context Protocol) server adapter for loaderhub.
// It lets AI assistants load repository files as documents.
package mcp

import "errors"

// ErrMissingLoaderService is returned when the loader service is not provided.
var ErrMissingLoaderService = errors.New("mcp: loader service is required")
