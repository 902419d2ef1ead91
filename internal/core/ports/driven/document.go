package driven

import (
	"context"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// LiveDocument is a document materialised with an editable cursor.
// The engine drives it for cursor-relative finds and single replaces;
// everything else goes through raw text.
//
// Implementations keep a "saved match" recording the occurrence the
// last successful Find selected; Replace consumes it.
type LiveDocument interface {
	// Name returns the document's unique name within the book.
	Name() string

	// Category returns the document's role tag.
	Category() domain.Category

	// Contains is a cheap containment probe that moves no cursor.
	Contains(p *domain.Pattern) bool

	// Find moves the cursor to the next match per the pattern's
	// direction and returns whether one was found.
	Find(p *domain.Pattern, opts domain.FindOptions) bool

	// Replace rewrites the occurrence the last Find established.
	// Returns false if there is no saved match or the selection no
	// longer matches the pattern.
	Replace(p *domain.Pattern, rw domain.Rewriter) bool

	// ReplaceAllInMarked rewrites every occurrence inside the marked
	// region and returns the occurrence count.
	ReplaceAllInMarked(p *domain.Pattern, rw domain.Rewriter) int

	// CountAllInMarked tallies occurrences inside the marked region.
	CountAllInMarked(p *domain.Pattern) int

	// RawText returns the live buffer contents.
	RawText() string

	// SetRawText replaces the live buffer contents wholesale.
	SetRawText(text string)
}

// Workspace is the open book as the engine sees it: which document is
// being edited, which documents are materialised as live editors, and
// raw access to everything else. It is the polymorphic seam between
// Live and Persisted document access.
type Workspace interface {
	// CurrentDocument returns the document being edited, or ok=false
	// when no document is open.
	CurrentDocument() (ed LiveDocument, name string, ok bool)

	// Editor returns the live editor for name if one is materialised.
	Editor(name string) (LiveDocument, bool)

	// OpenEditor promotes a persisted document to a live editor,
	// giving it focus. Idempotent for already-open documents.
	OpenEditor(ctx context.Context, name string) (LiveDocument, error)

	// ShowEditor gives focus to an already-open editor.
	ShowEditor(name string)

	// RawText reads a document's text: the live buffer when the
	// document is open, the persisted copy otherwise.
	RawText(ctx context.Context, name string) (string, error)

	// WriteRawText writes a document's text back: to the live buffer
	// when the document is open, to persisted storage otherwise.
	WriteRawText(ctx context.Context, name string, text string) error

	// HasMarkedText reports whether the current document has a
	// marked region.
	HasMarkedText() bool

	// SetModified flags the book as having unsaved changes.
	SetModified()
}
