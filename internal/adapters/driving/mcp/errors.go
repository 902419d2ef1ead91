// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Replaca. It lets AI assistants search and rewrite the open book's
// documents through the find/replace engine.
package mcp

import "errors"

// ErrMissingSearcher is returned when the search service is not provided.
var ErrMissingSearcher = errors.New("mcp: searcher is required")
