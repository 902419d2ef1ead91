package mcp

import (
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs from the rest of
// the application. This provides a single injection point.
type Ports struct {
	// Searcher runs find, count and replace-all over the open book.
	Searcher driving.Searcher

	// Documents exposes the book's documents as MCP resources.
	// Optional; resources return empty results when nil.
	Documents driven.Container

	// Save persists batch changes back to the book container after a
	// replace-all that changed something. Optional; nil when the
	// container writes through.
	Save func() error
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Searcher == nil {
		return ErrMissingSearcher
	}
	return nil
}
