package driven

import (
	"context"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// Container is the persisted side of a book: raw document text keyed
// by name, in a stable display order. Workspaces read documents from a
// container until they are promoted to live editors, and write batch
// replacements back through it.
type Container interface {
	// List returns every document in display order.
	List(ctx context.Context) ([]domain.DocumentRef, error)

	// RawText reads a document's persisted text.
	RawText(ctx context.Context, name string) (string, error)

	// WriteRawText overwrites a document's persisted text.
	WriteRawText(ctx context.Context, name string, text string) error
}
