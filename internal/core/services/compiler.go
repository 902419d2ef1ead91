package services

import (
	"regexp"
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/logger"
)

// patternKey identifies one compiled pattern variant. Direction is
// part of the key even though it does not change the compiled
// expression, so a reversed search never reuses a forward matcher.
type patternKey struct {
	flags domain.PatternFlags
	raw   string
}

// PatternCache memoises compiled patterns by (flags, raw text).
// Entries are immutable once inserted and never evicted; the cache is
// bounded by the distinct queries a user issues in a session. It is
// shared explicitly rather than held as package state, so tests and
// hosts control its lifetime.
type PatternCache struct {
	mu       sync.RWMutex
	patterns map[patternKey]*domain.Pattern
}

// NewPatternCache creates an empty pattern cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{
		patterns: make(map[patternKey]*domain.Pattern),
	}
}

// Compile returns the compiled pattern for the request's find text,
// inserting it into the cache on first use. Identical requests get the
// identical *Pattern back. Literal-mode text is escaped first so every
// metacharacter matches itself while sharing the engine's flag
// semantics. A failed compilation never mutates the cache.
func (c *PatternCache) Compile(req domain.SearchRequest) (*domain.Pattern, error) {
	raw := req.Find
	if !req.Mode.IsRegex() {
		raw = regexp.QuoteMeta(raw)
	}

	var flags domain.PatternFlags
	if !req.CaseSensitive {
		flags |= domain.FlagIgnoreCase
	}
	if req.DotAll && req.Mode.IsRegex() {
		flags |= domain.FlagDotAll
	}
	if req.Direction == domain.DirectionUp {
		flags |= domain.FlagReverse
	}

	key := patternKey{flags: flags, raw: raw}

	c.mu.RLock()
	p, ok := c.patterns[key]
	c.mu.RUnlock()
	if ok {
		logger.Debug("Pattern cache hit: %q", req.Find)
		return p, nil
	}

	p, err := domain.NewPattern(raw, flags)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.patterns[key]; ok {
		// Lost the race; the first insertion wins so cache hits
		// stay identity-stable.
		return existing, nil
	}
	c.patterns[key] = p
	logger.Debug("Compiled pattern %q (flags %#x)", req.Find, flags)
	return p, nil
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.patterns)
}
