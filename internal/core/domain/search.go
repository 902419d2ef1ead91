package domain

import "fmt"

// Mode defines how the find text is interpreted.
type Mode string

// Available search modes.
const (
	// ModeLiteral matches the find text character for character.
	ModeLiteral Mode = "literal"

	// ModeRegex interprets the find text as a regular expression.
	ModeRegex Mode = "regex"

	// ModeFunction is regex matching with a registered replace
	// function producing the replacement text.
	ModeFunction Mode = "function"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModeLiteral, ModeRegex, ModeFunction:
		return true
	default:
		return false
	}
}

// IsRegex returns true if the find text carries regex syntax.
func (m Mode) IsRegex() bool {
	return m == ModeRegex || m == ModeFunction
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Direction defines which way a search scans from the cursor.
type Direction string

// Available search directions.
const (
	// DirectionDown searches forward, towards the end of the book.
	DirectionDown Direction = "down"

	// DirectionUp searches backward, towards the start of the book.
	DirectionUp Direction = "up"
)

// IsValid returns true if the direction is recognised.
func (d Direction) IsValid() bool {
	return d == DirectionDown || d == DirectionUp
}

// String returns the string representation.
func (d Direction) String() string {
	return string(d)
}

// Where defines the set of documents a search operates over.
type Where string

// Available search scopes.
const (
	// WhereCurrent searches only the document being edited.
	WhereCurrent Where = "current"

	// WhereText searches all text (markup) documents in the book.
	WhereText Where = "text"

	// WhereStyles searches all style documents in the book.
	WhereStyles Where = "styles"

	// WhereSelected searches the documents selected in the file browser.
	WhereSelected Where = "selected"

	// WhereMarked searches only the marked region of the current document.
	WhereMarked Where = "marked"
)

// IsValid returns true if the scope is recognised.
func (w Where) IsValid() bool {
	switch w {
	case WhereCurrent, WhereText, WhereStyles, WhereSelected, WhereMarked:
		return true
	default:
		return false
	}
}

// IsGroup returns true if the scope traverses a named document group.
func (w Where) IsGroup() bool {
	switch w {
	case WhereText, WhereStyles, WhereSelected:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (w Where) String() string {
	return string(w)
}

// Action identifies one of the engine operations.
type Action string

// Available actions.
const (
	// ActionFind locates the next occurrence and moves the cursor to it.
	ActionFind Action = "find"

	// ActionReplace replaces the occurrence a prior find established.
	ActionReplace Action = "replace"

	// ActionReplaceFind replaces, then finds the next occurrence.
	ActionReplaceFind Action = "replace-find"

	// ActionReplaceAll rewrites every occurrence in the scope.
	ActionReplaceAll Action = "replace-all"

	// ActionCount tallies occurrences without mutating anything.
	ActionCount Action = "count"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionFind, ActionReplace, ActionReplaceFind, ActionReplaceAll, ActionCount:
		return true
	default:
		return false
	}
}

// IsExhaustive returns true if the action must visit every candidate
// document regardless of the wrap setting.
func (a Action) IsExhaustive() bool {
	return a == ActionReplaceAll || a == ActionCount
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// SearchRequest is one find/replace query. It is a plain value with no
// hidden state; validation happens as pure functions over it.
type SearchRequest struct {
	// Find is the raw query text.
	Find string

	// Replace is the replacement template, or for ModeFunction the
	// name of a registered replace function.
	Replace string

	// Mode selects literal, regex or function interpretation.
	Mode Mode

	// CaseSensitive disables Unicode case folding.
	CaseSensitive bool

	// DotAll makes "." match newlines. Ignored for ModeLiteral.
	DotAll bool

	// Direction is the scan direction from the cursor.
	Direction Direction

	// Wrap continues the search past the end of the scope.
	Wrap bool

	// Where is the document scope to search.
	Where Where
}

// Validate checks that the request's enumerations are recognised and
// that a function-mode request names a replace function.
func (r SearchRequest) Validate() error {
	if !r.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, r.Mode)
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidRequest, r.Direction)
	}
	if !r.Where.IsValid() {
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidRequest, r.Where)
	}
	if r.Mode == ModeFunction && r.Replace == "" {
		return fmt.Errorf("%w: function mode requires a replace function name", ErrInvalidRequest)
	}
	return nil
}

// FindOptions modifies a single in-document find.
type FindOptions struct {
	// Wrap retries from the opposite end when the scan runs out.
	Wrap bool

	// MarkedOnly restricts the scan to the marked region.
	MarkedOnly bool

	// WholeDocument scans from the start (or end, searching up)
	// instead of from the cursor.
	WholeDocument bool
}

// MatchOutcome is the synchronous result of one engine operation.
type MatchOutcome struct {
	// Found reports whether any occurrence was located.
	Found bool `json:"found"`

	// Document names the document that now holds the match, if any.
	Document string `json:"document,omitempty"`

	// Occurrences is the total tally for replace-all and count.
	Occurrences int `json:"occurrences"`

	// Changed lists the documents a replace-all modified, so the
	// caller can offer to show a diff.
	Changed []string `json:"changed,omitempty"`
}
