package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

func TestServer_handleCount(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the tally", func(t *testing.T) {
		searcher := &mockSearcher{out: domain.MatchOutcome{Found: true, Occurrences: 7}}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, output, err := server.handleCount(ctx, nil, SearchInput{Query: "foo"})
		require.NoError(t, err)
		assert.True(t, output.Found)
		assert.Equal(t, 7, output.Occurrences)
		assert.Equal(t, domain.ActionCount, searcher.action)
	})

	t.Run("defaults are literal text scope with wrap on", func(t *testing.T) {
		searcher := &mockSearcher{}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, _, err = server.handleCount(ctx, nil, SearchInput{Query: "foo"})
		require.NoError(t, err)

		req := searcher.lastReq
		assert.Equal(t, domain.ModeLiteral, req.Mode)
		assert.Equal(t, domain.WhereText, req.Where)
		assert.Equal(t, domain.DirectionDown, req.Direction)
		assert.True(t, req.Wrap)
		assert.False(t, req.CaseSensitive)
	})

	t.Run("input overrides reach the request", func(t *testing.T) {
		searcher := &mockSearcher{}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, _, err = server.handleCount(ctx, nil, SearchInput{
			Query:         `\bfoo\b`,
			Mode:          "regex",
			Where:         "styles",
			CaseSensitive: true,
			DotAll:        true,
		})
		require.NoError(t, err)

		req := searcher.lastReq
		assert.Equal(t, domain.ModeRegex, req.Mode)
		assert.Equal(t, domain.WhereStyles, req.Where)
		assert.True(t, req.CaseSensitive)
		assert.True(t, req.DotAll)
	})

	t.Run("rejects bad enumerations before running", func(t *testing.T) {
		searcher := &mockSearcher{}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, _, err = server.handleCount(ctx, nil, SearchInput{Query: "foo", Mode: "fuzzy"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Empty(t, searcher.action)
	})
}

func TestServer_handleFind(t *testing.T) {
	ctx := context.Background()

	t.Run("reports the matching document", func(t *testing.T) {
		searcher := &mockSearcher{out: domain.MatchOutcome{Found: true, Document: "ch1.xhtml"}}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, output, err := server.handleFind(ctx, nil, SearchInput{Query: "foo"})
		require.NoError(t, err)
		assert.True(t, output.Found)
		assert.Equal(t, "ch1.xhtml", output.Document)
	})

	t.Run("no match is an outcome, not a failure", func(t *testing.T) {
		searcher := &mockSearcher{err: &domain.NoMatchError{Query: "foo"}}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, output, err := server.handleFind(ctx, nil, SearchInput{Query: "foo"})
		require.NoError(t, err)
		assert.False(t, output.Found)
		assert.Contains(t, output.Message, "no matches were found")
	})

	t.Run("other failures propagate", func(t *testing.T) {
		searcher := &mockSearcher{err: errors.New("boom")}
		server, err := NewServer(&Ports{Searcher: searcher})
		require.NoError(t, err)

		_, _, err = server.handleFind(ctx, nil, SearchInput{Query: "foo"})
		assert.Error(t, err)
	})
}

func TestServer_handleReplaceAll(t *testing.T) {
	ctx := context.Background()

	t.Run("saves the book after changes", func(t *testing.T) {
		searcher := &mockSearcher{out: domain.MatchOutcome{
			Found:       true,
			Occurrences: 3,
			Changed:     []string{"ch1.xhtml"},
		}}
		saved := false
		server, err := NewServer(&Ports{
			Searcher: searcher,
			Save:     func() error { saved = true; return nil },
		})
		require.NoError(t, err)

		_, output, err := server.handleReplaceAll(ctx, nil, SearchInput{Query: "foo", Replace: "bar"})
		require.NoError(t, err)
		assert.Equal(t, 3, output.Occurrences)
		assert.Equal(t, []string{"ch1.xhtml"}, output.Changed)
		assert.True(t, saved)
		assert.Equal(t, domain.ActionReplaceAll, searcher.action)
		assert.Equal(t, "bar", searcher.lastReq.Replace)
	})

	t.Run("no changes means no save", func(t *testing.T) {
		searcher := &mockSearcher{}
		saved := false
		server, err := NewServer(&Ports{
			Searcher: searcher,
			Save:     func() error { saved = true; return nil },
		})
		require.NoError(t, err)

		_, _, err = server.handleReplaceAll(ctx, nil, SearchInput{Query: "foo"})
		require.NoError(t, err)
		assert.False(t, saved)
	})

	t.Run("save failures propagate", func(t *testing.T) {
		searcher := &mockSearcher{out: domain.MatchOutcome{Found: true, Occurrences: 1}}
		server, err := NewServer(&Ports{
			Searcher: searcher,
			Save:     func() error { return errors.New("disk full") },
		})
		require.NoError(t, err)

		_, _, err = server.handleReplaceAll(ctx, nil, SearchInput{Query: "foo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
