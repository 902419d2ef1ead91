package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driving"
	"github.com/custodia-labs/replaca-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// checkpointLabel is the undo label for replace-all checkpoints.
const checkpointLabel = "Before: Replace all"

// compiledSearch pairs a compiled pattern with its resolved
// replacement: a literal template, or a replace function for
// function-mode requests.
type compiledSearch struct {
	pattern *domain.Pattern
	rw      domain.Rewriter
	fn      driven.ReplaceFunction
}

// SearchService runs find/replace operations over the open book.
// Operations are synchronous; a call runs to completion on the calling
// goroutine and no two operations run concurrently by design.
type SearchService struct {
	workspace   driven.Workspace
	groups      driven.GroupProvider
	checkpoints driven.CheckpointCoordinator
	functions   driven.FunctionRegistry
	cache       *PatternCache
}

// NewSearchService creates a new search service. The functions
// registry is optional (can be nil); without it function-mode requests
// fail with NoSuchFunction. A nil cache gets a fresh private one.
func NewSearchService(
	workspace driven.Workspace,
	groups driven.GroupProvider,
	checkpoints driven.CheckpointCoordinator,
	functions driven.FunctionRegistry,
	cache *PatternCache,
) *SearchService {
	if cache == nil {
		cache = NewPatternCache()
	}
	return &SearchService{
		workspace:   workspace,
		groups:      groups,
		checkpoints: checkpoints,
		functions:   functions,
		cache:       cache,
	}
}

// Find locates the next occurrence of a single request.
func (s *SearchService) Find(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return s.Run(ctx, domain.ActionFind, []domain.SearchRequest{req})
}

// Replace rewrites the occurrence a prior Find established.
func (s *SearchService) Replace(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return s.Run(ctx, domain.ActionReplace, []domain.SearchRequest{req})
}

// ReplaceAll rewrites every occurrence in the request's scope.
func (s *SearchService) ReplaceAll(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return s.Run(ctx, domain.ActionReplaceAll, []domain.SearchRequest{req})
}

// Count tallies occurrences without mutating anything.
func (s *SearchService) Count(ctx context.Context, req domain.SearchRequest) (domain.MatchOutcome, error) {
	return s.Run(ctx, domain.ActionCount, []domain.SearchRequest{req})
}

// Run executes action over the requests. The first request decides
// scope, direction and wrap; find and replace take the first request
// that matches, replace-all and count apply every request, each
// pattern seeing the output of the previous one.
func (s *SearchService) Run(ctx context.Context, action domain.Action, requests []domain.SearchRequest) (domain.MatchOutcome, error) {
	if !action.IsValid() {
		return domain.MatchOutcome{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidRequest, action)
	}
	if len(requests) == 0 {
		return domain.MatchOutcome{}, domain.ErrEmptyQuery
	}
	first := requests[0]

	logger.Section("Search Execution")
	logger.Debug("Action: %s, scope: %s, direction: %s, wrap: %t, searches: %d",
		action, first.Where, first.Direction, first.Wrap, len(requests))

	// Scope validation runs before compilation so the user gets the
	// cheapest, most relevant message.
	if err := validateRequest(first, s.workspace, s.groups); err != nil {
		return domain.MatchOutcome{}, err
	}
	sc := resolveScope(first, action, s.workspace, s.groups)

	searches, err := s.compileAll(requests)
	if err != nil {
		return domain.MatchOutcome{}, err
	}

	errfind := first.Find
	if len(requests) > 1 {
		errfind = "the selected searches"
	}

	switch action {
	case domain.ActionFind:
		return s.find(ctx, sc, searches, first.Wrap, errfind)
	case domain.ActionReplace:
		return s.replaceCurrent(sc, searches)
	case domain.ActionReplaceFind:
		out, err := s.replaceCurrent(sc, searches)
		if err != nil {
			return out, err
		}
		return s.find(ctx, sc, searches, first.Wrap, errfind)
	case domain.ActionReplaceAll:
		return s.replaceAll(ctx, sc, searches)
	default:
		return s.count(ctx, sc, searches)
	}
}

// compileAll compiles every request up front, resolving function-mode
// replacements against the registry. Any failure aborts before a
// document is touched.
func (s *SearchService) compileAll(requests []domain.SearchRequest) ([]compiledSearch, error) {
	searches := make([]compiledSearch, 0, len(requests))
	for _, req := range requests {
		if err := req.Validate(); err != nil {
			return nil, err
		}
		p, err := s.cache.Compile(req)
		if err != nil {
			return nil, err
		}
		cs := compiledSearch{pattern: p}
		if req.Mode == domain.ModeFunction {
			if s.functions == nil {
				return nil, &domain.NoSuchFunctionError{Name: req.Replace}
			}
			fn, err := s.functions.Resolve(req.Replace)
			if err != nil {
				return nil, err
			}
			cs.fn, cs.rw = fn, fn
		} else {
			cs.rw = domain.Template(req.Replace)
		}
		searches = append(searches, cs)
	}
	return searches, nil
}

// find implements the find-next traversal: the starting document from
// its cursor (with an in-document wrap retry when the scope is
// document-local), then every other candidate in scope order. Unloaded
// candidates are probed against their persisted text before being
// promoted to live editors, so non-matching documents never load;
// loaded candidates get the same probe before their cursor moves.
// First match anywhere wins.
func (s *SearchService) find(ctx context.Context, sc scope, searches []compiledSearch, wrap bool, errfind string) (domain.MatchOutcome, error) {
	for _, cs := range searches {
		p := cs.pattern
		if sc.editor != nil {
			if sc.editor.Find(p, domain.FindOptions{MarkedOnly: sc.marked}) {
				return domain.MatchOutcome{Found: true, Document: sc.editorName}, nil
			}
			if wrap && len(sc.rest) == 0 && sc.editor.Find(p, domain.FindOptions{Wrap: true, MarkedOnly: sc.marked}) {
				logger.Debug("Wrapped around inside %q", sc.editorName)
				return domain.MatchOutcome{Found: true, Document: sc.editorName}, nil
			}
		}
		for _, ref := range sc.rest {
			if ed, ok := s.workspace.Editor(ref.Name); ok {
				// Without wrap the starting document's tail slot is
				// skipped; its cursor-relative pass already ran.
				if !wrap && sc.editor != nil && ed == sc.editor {
					continue
				}
				if !ed.Contains(p) {
					continue
				}
				if ed.Find(p, domain.FindOptions{WholeDocument: true}) {
					s.workspace.ShowEditor(ref.Name)
					return domain.MatchOutcome{Found: true, Document: ref.Name}, nil
				}
				continue
			}
			raw, err := s.workspace.RawText(ctx, ref.Name)
			if err != nil {
				return domain.MatchOutcome{}, fmt.Errorf("reading %s: %w", ref.Name, err)
			}
			if !p.Matches(raw) {
				continue
			}
			ed, err := s.workspace.OpenEditor(ctx, ref.Name)
			if err != nil {
				return domain.MatchOutcome{}, fmt.Errorf("opening %s: %w", ref.Name, err)
			}
			if ed.Find(p, domain.FindOptions{WholeDocument: true}) {
				return domain.MatchOutcome{Found: true, Document: ref.Name}, nil
			}
		}
	}
	return domain.MatchOutcome{}, &domain.NoMatchError{Query: errfind, WrapDisabled: !wrap}
}

// replaceCurrent rewrites the occurrence the last find selected in the
// active document. The first search whose pattern still matches the
// selection wins; replace is never search-and-replace-first-found.
func (s *SearchService) replaceCurrent(sc scope, searches []compiledSearch) (domain.MatchOutcome, error) {
	if sc.editor == nil {
		return domain.MatchOutcome{}, &domain.NothingToReplaceError{}
	}
	for _, cs := range searches {
		if cs.fn != nil {
			cs.fn.Init(sc.editorName)
			cs.fn.SetContext(sc.editorName)
		}
		if sc.editor.Replace(cs.pattern, cs.rw) {
			return domain.MatchOutcome{Found: true, Document: sc.editorName, Occurrences: 1}, nil
		}
	}
	return domain.MatchOutcome{}, &domain.NothingToReplaceError{SelectionMismatch: true}
}

// replaceAll rewrites every occurrence in the scope. Marked scope is
// delegated to the live editor, which owns undo for its own buffer.
// Otherwise the operation runs as an explicit two-phase commit under a
// checkpoint: stage every substitution in memory, then either write
// the changed documents back and keep the checkpoint, or discard it
// when nothing matched.
func (s *SearchService) replaceAll(ctx context.Context, sc scope, searches []compiledSearch) (domain.MatchOutcome, error) {
	if sc.marked {
		total := 0
		for _, cs := range searches {
			if cs.fn != nil {
				cs.fn.Init("")
				cs.fn.SetContext(sc.editorName)
			}
			total += sc.editor.ReplaceAllInMarked(cs.pattern, cs.rw)
		}
		out := domain.MatchOutcome{Found: total > 0, Document: sc.editorName, Occurrences: total}
		if total > 0 {
			out.Changed = []string{sc.editorName}
		}
		return out, nil
	}

	cp, err := s.checkpoints.Begin(ctx, checkpointLabel)
	if err != nil {
		return domain.MatchOutcome{}, fmt.Errorf("creating checkpoint: %w", err)
	}

	staged, err := s.stage(ctx, sc, searches, true)
	if err != nil {
		// Nothing was written; the checkpoint has nothing to guard.
		if derr := s.checkpoints.Discard(ctx, cp); derr != nil {
			logger.Warn("Discarding checkpoint after failed staging: %v", derr)
		}
		return domain.MatchOutcome{}, err
	}

	if staged.count == 0 {
		logger.Debug("No occurrences; rewinding checkpoint")
		if err := s.checkpoints.Discard(ctx, cp); err != nil {
			return domain.MatchOutcome{}, fmt.Errorf("discarding checkpoint: %w", err)
		}
		return domain.MatchOutcome{Occurrences: 0}, nil
	}

	changed, err := s.commit(ctx, staged)
	if err != nil {
		// Writes may have landed; the checkpoint stays as the undo
		// path for the host.
		if kerr := s.checkpoints.Keep(ctx, cp); kerr != nil {
			logger.Warn("Keeping checkpoint after failed write: %v", kerr)
		}
		return domain.MatchOutcome{}, err
	}
	if err := s.checkpoints.Keep(ctx, cp); err != nil {
		return domain.MatchOutcome{}, fmt.Errorf("keeping checkpoint: %w", err)
	}
	s.workspace.SetModified()

	logger.Info("Replaced %d occurrences across %d documents", staged.count, len(changed))
	return domain.MatchOutcome{Found: true, Occurrences: staged.count, Changed: changed}, nil
}

// count shares the replace-all traversal without mutating anything; no
// checkpoint is touched and no document content changes.
func (s *SearchService) count(ctx context.Context, sc scope, searches []compiledSearch) (domain.MatchOutcome, error) {
	if sc.marked {
		total := 0
		for _, cs := range searches {
			total += sc.editor.CountAllInMarked(cs.pattern)
		}
		return domain.MatchOutcome{Found: total > 0, Document: sc.editorName, Occurrences: total}, nil
	}
	staged, err := s.stage(ctx, sc, searches, false)
	if err != nil {
		return domain.MatchOutcome{}, err
	}
	return domain.MatchOutcome{Found: staged.count > 0, Occurrences: staged.count}, nil
}

// workingSet is the staged state of a batch operation: every candidate
// document's text, substitutions applied in memory only.
type workingSet struct {
	order   []string
	text    map[string]string
	changed map[string]bool
	count   int
}

// stage materialises the full raw text of every candidate (live
// buffers for open documents, persisted text otherwise) and applies
// every pattern in request order, each pass operating on the result of
// the previous pattern's substitutions. Nothing is written back here.
func (s *SearchService) stage(ctx context.Context, sc scope, searches []compiledSearch, replace bool) (*workingSet, error) {
	candidates := sc.rest
	if len(candidates) == 0 {
		if sc.editor == nil {
			return &workingSet{}, nil
		}
		candidates = []domain.DocumentRef{{Name: sc.editorName, Category: sc.editor.Category()}}
	}

	ws := &workingSet{
		text:    make(map[string]string, len(candidates)),
		changed: make(map[string]bool),
	}
	for _, ref := range candidates {
		if _, ok := ws.text[ref.Name]; ok {
			continue
		}
		raw, err := s.workspace.RawText(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", ref.Name, err)
		}
		ws.order = append(ws.order, ref.Name)
		ws.text[ref.Name] = raw
	}

	for _, cs := range searches {
		if replace && cs.fn != nil {
			cs.fn.Init("")
		}
		for _, name := range ws.order {
			raw := ws.text[name]
			if !replace {
				ws.count += cs.pattern.Count(raw)
				continue
			}
			if cs.fn != nil {
				cs.fn.SetContext(name)
			}
			next, num := cs.pattern.Substitute(raw, cs.rw)
			if num > 0 {
				ws.text[name] = next
				ws.changed[name] = true
			}
			ws.count += num
		}
	}
	return ws, nil
}

// commit writes every changed document back, live buffers and
// persisted storage alike, and returns the changed names in traversal
// order.
func (s *SearchService) commit(ctx context.Context, ws *workingSet) ([]string, error) {
	var changed []string
	for _, name := range ws.order {
		if !ws.changed[name] {
			continue
		}
		if err := s.workspace.WriteRawText(ctx, name, ws.text[name]); err != nil {
			return changed, fmt.Errorf("writing %s: %w", name, err)
		}
		changed = append(changed, name)
	}
	return changed, nil
}
