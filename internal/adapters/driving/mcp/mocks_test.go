package mcp

import (
	"context"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// mockSearcher is a mock implementation of driving.Searcher.
type mockSearcher struct {
	out     domain.MatchOutcome
	err     error
	lastReq domain.SearchRequest
	action  domain.Action
}

func (m *mockSearcher) Run(_ context.Context, action domain.Action, requests []domain.SearchRequest) (domain.MatchOutcome, error) {
	m.action = action
	if len(requests) > 0 {
		m.lastReq = requests[0]
	}
	return m.out, m.err
}

func (m *mockSearcher) Find(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return m.Run(ctx, domain.ActionFind, []domain.SearchRequest{req})
}

func (m *mockSearcher) Replace(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return m.Run(ctx, domain.ActionReplace, []domain.SearchRequest{req})
}

func (m *mockSearcher) ReplaceAll(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return m.Run(ctx, domain.ActionReplaceAll, []domain.SearchRequest{req})
}

func (m *mockSearcher) Count(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return m.Run(ctx, domain.ActionCount, []domain.SearchRequest{req})
}

// mockContainer is a mock implementation of driven.Container.
type mockContainer struct {
	refs []domain.DocumentRef
	text map[string]string
	err  error
}

func (m *mockContainer) List(_ context.Context) ([]domain.DocumentRef, error) {
	return m.refs, m.err
}

func (m *mockContainer) RawText(_ context.Context, name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.text[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (m *mockContainer) WriteRawText(_ context.Context, _ string, _ string) error {
	return m.err
}
