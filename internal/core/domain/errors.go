package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent search failures and user-visible outcomes.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidRequest indicates a malformed search request.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrInvalidPattern indicates the find text failed to compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrNoSuchFunction indicates an unregistered replace function name.
	ErrNoSuchFunction = errors.New("no such replace function")

	// ErrNoMatch indicates a find exhausted its scope. Informational,
	// not a fault.
	ErrNoMatch = errors.New("no matches found")

	// ErrNothingToReplace indicates a replace with no active match.
	ErrNothingToReplace = errors.New("nothing to replace")

	// ErrEmptyScope indicates the scope has no documents to search.
	ErrEmptyScope = errors.New("empty search scope")

	// ErrEmptyQuery indicates no find text was supplied.
	ErrEmptyQuery = errors.New("no search query specified")

	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")
)

// InvalidPatternError reports a pattern that failed to compile,
// carrying the offending text verbatim for display.
type InvalidPatternError struct {
	// Raw is the pattern text as the user entered it.
	Raw string

	// Cause is the underlying engine error.
	Cause error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Raw, e.Cause)
}

func (e *InvalidPatternError) Unwrap() error { return e.Cause }

// Is reports equivalence to the ErrInvalidPattern sentinel.
func (e *InvalidPatternError) Is(target error) bool { return target == ErrInvalidPattern }

// NoSuchFunctionError reports a function-mode replacement that names
// an unregistered replace function.
type NoSuchFunctionError struct {
	// Name is the function name that failed to resolve.
	Name string
}

func (e *NoSuchFunctionError) Error() string {
	return fmt.Sprintf("no replace function with the name %q exists", e.Name)
}

// Is reports equivalence to the ErrNoSuchFunction sentinel.
func (e *NoSuchFunctionError) Is(target error) bool { return target == ErrNoSuchFunction }

// NoMatchError reports that a find exhausted every candidate document.
type NoMatchError struct {
	// Query is the find text, or a summary when several searches ran.
	Query string

	// WrapDisabled is true when wrapping was off, so not all text was
	// necessarily searched. Callers use it to hint at enabling wrap.
	WrapDisabled bool
}

func (e *NoMatchError) Error() string {
	msg := fmt.Sprintf("no matches were found for %s", e.Query)
	if e.WrapDisabled {
		msg += " (search wrapping is off, so not all text was searched)"
	}
	return msg
}

// Is reports equivalence to the ErrNoMatch sentinel.
func (e *NoMatchError) Is(target error) bool { return target == ErrNoMatch }

// NothingToReplaceError reports a replace attempted without an
// established current match.
type NothingToReplaceError struct {
	// SelectionMismatch is true when a document was active but its
	// selection no longer matches the search query.
	SelectionMismatch bool
}

func (e *NothingToReplaceError) Error() string {
	if e.SelectionMismatch {
		return "currently selected text does not match the search query"
	}
	return "you must first run find, before trying to replace"
}

// Is reports equivalence to the ErrNothingToReplace sentinel.
func (e *NothingToReplaceError) Is(target error) bool { return target == ErrNothingToReplace }

// EmptyScopeError reports a scope with nothing to search: no document
// being edited, no file-browser selection, or no marked text.
type EmptyScopeError struct {
	// Where is the requested scope.
	Where Where

	// Reason is the user-facing explanation.
	Reason string
}

func (e *EmptyScopeError) Error() string { return e.Reason }

// Is reports equivalence to the ErrEmptyScope sentinel.
func (e *EmptyScopeError) Is(target error) bool { return target == ErrEmptyScope }
