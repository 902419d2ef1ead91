package driving

import (
	"context"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// Searcher runs find/replace operations over the open book. A call
// may carry several requests (multiple selected saved searches): find
// and replace take the first request that matches, replace-all and
// count apply every request.
//
// Operations are synchronous and run to completion; they never
// suspend partway.
type Searcher interface {
	// Run executes action over the requests and reports the outcome.
	Run(ctx context.Context, action domain.Action, requests []domain.SearchRequest) (domain.MatchOutcome, error)

	// Find locates the next occurrence of a single request.
	Find(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error)

	// Replace rewrites the occurrence a prior Find established.
	Replace(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error)

	// ReplaceAll rewrites every occurrence in the request's scope.
	ReplaceAll(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error)

	// Count tallies occurrences without mutating anything.
	Count(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error)
}
