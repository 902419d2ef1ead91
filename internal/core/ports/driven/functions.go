package driven

import (
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// ReplaceFunction is a registered replacement callable. Beyond
// rewriting matches it honours a small batch contract: Init runs once
// before the first substitution of an operation, SetContext once per
// document during a batch.
type ReplaceFunction interface {
	domain.Rewriter

	// Init prepares the function for a run. documentID is the current
	// document for single replaces and empty for batch runs.
	Init(documentID string)

	// SetContext names the document the following rewrites occur in.
	SetContext(documentID string)
}

// FunctionRegistry resolves replace function names. Resolution happens
// before any document is touched, so an unknown name aborts cleanly.
type FunctionRegistry interface {
	// Resolve returns the function registered under name, or a
	// domain.NoSuchFunctionError.
	Resolve(name string) (ReplaceFunction, error)

	// Names lists the registered function names, sorted.
	Names() []string
}
