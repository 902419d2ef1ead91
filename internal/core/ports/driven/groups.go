package driven

import (
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// GroupProvider exposes the host's named document groups. Members are
// returned in the host's stable display order; the scope resolver
// relies on that order being the same across calls within a session.
type GroupProvider interface {
	// MembersOf returns the ordered members of the group for a scope.
	// Non-group scopes return nil.
	MembersOf(where domain.Where) []domain.DocumentRef

	// IsSelected reports whether a document is part of the
	// file-browser selection.
	IsSelected(name string) bool
}
