package domain

import (
	"path"
	"strings"
)

// Category tags a document with its role in the book. The host
// collection owns the tagging; the engine only uses it to route
// group scopes and to re-open documents with the right editor.
type Category string

// Document categories.
const (
	// CategoryText is markup content (XHTML and friends).
	CategoryText Category = "text"

	// CategoryStyles is stylesheet content.
	CategoryStyles Category = "styles"

	// CategoryOther is anything else the container holds.
	CategoryOther Category = "other"
)

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// CategoryForName tags a document by its file extension: markup
// extensions are text, stylesheets are styles, the rest is other.
func CategoryForName(name string) Category {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm", ".xml", ".txt", ".md":
		return CategoryText
	case ".css":
		return CategoryStyles
	default:
		return CategoryOther
	}
}

// DocumentRef identifies one document in the host collection. The
// collection owns identity and order; the engine only borrows them.
type DocumentRef struct {
	// Name is the document's unique name within the book.
	Name string

	// Category is the document's role tag.
	Category Category
}

// Checkpoint is an opaque token for a pre-operation snapshot. It is
// created before a destructive batch and either kept (committed) or
// discarded (rewound) afterwards. The coordinator owns its meaning.
type Checkpoint struct {
	// ID uniquely identifies the snapshot.
	ID string

	// Label is the human-readable undo label.
	Label string
}
