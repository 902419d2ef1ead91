package domain

// Defaults are the engine-level defaults applied to request fields the
// caller leaves unset. They mirror the search panel's initial state.
type Defaults struct {
	// Mode is the default query interpretation.
	Mode Mode

	// Direction is the default scan direction.
	Direction Direction

	// Where is the default document scope.
	Where Where

	// CaseSensitive disables case folding by default.
	CaseSensitive bool

	// Wrap continues past the end of the scope by default.
	Wrap bool

	// DotAll makes "." match newlines by default.
	DotAll bool
}

// DefaultSettings returns the stock defaults: literal mode, downward
// search over the current document, wrapping on, case folding on.
func DefaultSettings() Defaults {
	return Defaults{
		Mode:      ModeLiteral,
		Direction: DirectionDown,
		Where:     WhereCurrent,
		Wrap:      true,
	}
}

// NewRequest builds a SearchRequest for find/replace text with every
// option taken from the defaults.
func (d Defaults) NewRequest(find, replace string) SearchRequest {
	return SearchRequest{
		Find:          find,
		Replace:       replace,
		Mode:          d.Mode,
		CaseSensitive: d.CaseSensitive,
		DotAll:        d.DotAll,
		Direction:     d.Direction,
		Wrap:          d.Wrap,
		Where:         d.Where,
	}
}
