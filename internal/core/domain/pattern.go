package domain

import (
	"regexp"
	"strings"
)

// PatternFlags fold the request options that affect compilation into a
// cache-key-friendly bit set. Multiline anchoring and Unicode case
// folding are engine defaults and not represented here.
type PatternFlags uint8

// Pattern flags.
const (
	// FlagIgnoreCase enables Unicode case-insensitive matching.
	FlagIgnoreCase PatternFlags = 1 << iota

	// FlagDotAll makes "." match newlines.
	FlagDotAll

	// FlagReverse scans for the previous match instead of the next.
	FlagReverse
)

// Has returns true if all the given flags are set.
func (f PatternFlags) Has(flags PatternFlags) bool {
	return f&flags == flags
}

// Pattern is a compiled, direction-aware matcher. Patterns are
// immutable once compiled and safe to share.
type Pattern struct {
	re    *regexp.Regexp
	raw   string
	flags PatternFlags
}

// NewPattern compiles raw with the given flags. The raw text must
// already be escaped for literal matching; flag prefixes are applied
// here so literal and regex searches share flag semantics.
func NewPattern(raw string, flags PatternFlags) (*Pattern, error) {
	var prefix strings.Builder
	prefix.WriteString("(?m")
	if flags.Has(FlagIgnoreCase) {
		prefix.WriteString("i")
	}
	if flags.Has(FlagDotAll) {
		prefix.WriteString("s")
	}
	prefix.WriteString(")")

	re, err := regexp.Compile(prefix.String() + raw)
	if err != nil {
		return nil, &InvalidPatternError{Raw: raw, Cause: err}
	}
	return &Pattern{re: re, raw: raw, flags: flags}, nil
}

// Raw returns the pattern text as compiled, without flag prefixes.
func (p *Pattern) Raw() string { return p.raw }

// Flags returns the compilation flags.
func (p *Pattern) Flags() PatternFlags { return p.flags }

// Reversed returns true if the pattern scans backward.
func (p *Pattern) Reversed() bool { return p.flags.Has(FlagReverse) }

// Matches is a cheap containment probe.
func (p *Pattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// Count tallies non-overlapping occurrences.
func (p *Pattern) Count(text string) int {
	return len(p.re.FindAllStringIndex(text, -1))
}

// Search locates the match nearest the cursor position from: the first
// match starting at or after from, or for a reversed pattern the last
// match ending at or before from. Matches are located against the full
// text so anchors and boundaries keep their meaning.
func (p *Pattern) Search(text string, from int) (start, end int, ok bool) {
	locs := p.re.FindAllStringIndex(text, -1)
	if p.Reversed() {
		for i := len(locs) - 1; i >= 0; i-- {
			if locs[i][1] <= from {
				return locs[i][0], locs[i][1], true
			}
		}
		return 0, 0, false
	}
	for _, loc := range locs {
		if loc[0] >= from {
			return loc[0], loc[1], true
		}
	}
	return 0, 0, false
}

// MatchesExactly reports whether text is, in its entirety, a single
// match of the pattern. Used to verify a selection before replacing it.
func (p *Pattern) MatchesExactly(text string) bool {
	loc := p.re.FindStringIndex(text)
	return loc != nil && loc[0] == 0 && loc[1] == len(text)
}

// Substitute rewrites every non-overlapping occurrence in text using
// the rewriter and returns the result with the occurrence count. The
// input is never modified; zero occurrences return text unchanged.
func (p *Pattern) Substitute(text string, rw Rewriter) (string, int) {
	locs := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		b.WriteString(rw.Rewrite(&Match{pattern: p, src: text, loc: loc}))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(locs)
}

// RewriteAt rewrites the single occurrence spanning exactly
// [start, end) and returns the new text with the replacement's end
// position. Returns ok=false when no match occupies that span, leaving
// the text unchanged.
func (p *Pattern) RewriteAt(text string, start, end int, rw Rewriter) (string, int, bool) {
	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] != start {
			continue
		}
		if loc[1] != end {
			return text, 0, false
		}
		repl := rw.Rewrite(&Match{pattern: p, src: text, loc: loc})
		return text[:start] + repl + text[end:], start + len(repl), true
	}
	return text, 0, false
}

// Match is one occurrence of a pattern, handed to rewriters.
type Match struct {
	pattern *Pattern
	src     string
	loc     []int
}

// Text returns the full matched text.
func (m *Match) Text() string {
	return m.src[m.loc[0]:m.loc[1]]
}

// Start returns the byte offset of the match in the source.
func (m *Match) Start() int { return m.loc[0] }

// End returns the byte offset just past the match.
func (m *Match) End() int { return m.loc[1] }

// GroupCount returns the number of capture groups.
func (m *Match) GroupCount() int { return len(m.loc)/2 - 1 }

// Group returns the text of capture group i; group 0 is the full
// match. Unmatched groups return the empty string.
func (m *Match) Group(i int) string {
	if i < 0 || 2*i+1 >= len(m.loc) || m.loc[2*i] < 0 {
		return ""
	}
	return m.src[m.loc[2*i]:m.loc[2*i+1]]
}

// Expand substitutes capture-group references ($1, ${name}) in the
// template with this match's groups.
func (m *Match) Expand(template string) string {
	return string(m.pattern.re.ExpandString(nil, template, m.src, m.loc))
}

// Rewriter produces replacement text for a match.
type Rewriter interface {
	// Rewrite returns the replacement text for one occurrence.
	Rewrite(m *Match) string
}

// Template is a literal replacement supporting capture-group
// back-references in regexp.Expand syntax.
type Template string

// Rewrite expands the template against the match.
func (t Template) Rewrite(m *Match) string {
	return m.Expand(string(t))
}
