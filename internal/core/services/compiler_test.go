package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

func literalRequest(find string) domain.SearchRequest {
	return domain.SearchRequest{
		Find:      find,
		Mode:      domain.ModeLiteral,
		Direction: domain.DirectionDown,
		Where:     domain.WhereCurrent,
	}
}

func TestPatternCache_Compile(t *testing.T) {
	t.Run("identical requests share the identical pattern", func(t *testing.T) {
		cache := NewPatternCache()
		req := literalRequest("foo")

		p1, err := cache.Compile(req)
		require.NoError(t, err)
		p2, err := cache.Compile(req)
		require.NoError(t, err)

		assert.Same(t, p1, p2)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("literal mode escapes metacharacters", func(t *testing.T) {
		cache := NewPatternCache()
		p, err := cache.Compile(literalRequest("a.b"))
		require.NoError(t, err)

		assert.True(t, p.Matches("a.b"))
		assert.False(t, p.Matches("axb"))
	})

	t.Run("regex mode keeps metacharacters live", func(t *testing.T) {
		cache := NewPatternCache()
		req := literalRequest("a.b")
		req.Mode = domain.ModeRegex

		p, err := cache.Compile(req)
		require.NoError(t, err)
		assert.True(t, p.Matches("axb"))
	})

	t.Run("case folding is on unless requested off", func(t *testing.T) {
		cache := NewPatternCache()

		p, err := cache.Compile(literalRequest("foo"))
		require.NoError(t, err)
		assert.True(t, p.Matches("FOO"))

		req := literalRequest("foo")
		req.CaseSensitive = true
		p, err = cache.Compile(req)
		require.NoError(t, err)
		assert.False(t, p.Matches("FOO"))

		assert.Equal(t, 2, cache.Len(), "case variants cache separately")
	})

	t.Run("dot-all only applies to regex modes", func(t *testing.T) {
		cache := NewPatternCache()
		req := literalRequest("a.b")
		req.DotAll = true

		p, err := cache.Compile(req)
		require.NoError(t, err)
		assert.False(t, p.Flags().Has(domain.FlagDotAll))

		req.Mode = domain.ModeRegex
		p, err = cache.Compile(req)
		require.NoError(t, err)
		assert.True(t, p.Flags().Has(domain.FlagDotAll))
	})

	t.Run("direction is part of the cache key", func(t *testing.T) {
		cache := NewPatternCache()

		down, err := cache.Compile(literalRequest("foo"))
		require.NoError(t, err)

		req := literalRequest("foo")
		req.Direction = domain.DirectionUp
		up, err := cache.Compile(req)
		require.NoError(t, err)

		assert.NotSame(t, down, up)
		assert.True(t, up.Reversed())
		assert.False(t, down.Reversed())
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("failed compilation never mutates the cache", func(t *testing.T) {
		cache := NewPatternCache()
		req := literalRequest("(unclosed")
		req.Mode = domain.ModeRegex

		_, err := cache.Compile(req)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPattern)
		assert.Zero(t, cache.Len())
	})
}
