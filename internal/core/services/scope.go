package services

import (
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
	"github.com/custodia-labs/replaca-cli/internal/logger"
)

// scope is the resolved traversal for one operation: the starting
// document (searched first, via its live buffer), the ordered rest of
// the candidates, and whether only marked text is in play.
type scope struct {
	editor     driven.LiveDocument
	editorName string
	rest       []domain.DocumentRef
	marked     bool
	exhaustive bool
}

// validateRequest applies the cheap scope checks that must run before
// any pattern compilation, so the user gets the most relevant message
// first. Query emptiness is checked after scope validity.
func validateRequest(req domain.SearchRequest, ws driven.Workspace, groups driven.GroupProvider) error {
	_, _, open := ws.CurrentDocument()

	if !open && (req.Where == domain.WhereCurrent || req.Where == domain.WhereMarked) {
		return &domain.EmptyScopeError{Where: req.Where, Reason: "no file is being edited"}
	}
	if req.Where == domain.WhereSelected && len(groups.MembersOf(domain.WhereSelected)) == 0 {
		return &domain.EmptyScopeError{Where: req.Where, Reason: "no files are selected in the file browser"}
	}
	if req.Where == domain.WhereMarked && !ws.HasMarkedText() {
		return &domain.EmptyScopeError{Where: req.Where, Reason: "no text is marked; select some text and mark it before searching"}
	}
	if req.Find == "" {
		return domain.ErrEmptyQuery
	}
	return nil
}

// resolveScope computes the deterministic traversal order for one
// request. When the current document belongs to the requested group it
// is searched first via its live buffer, the members after it follow,
// and an exhaustive traversal (wrap on, or a replace-all/count) tacks
// on the members before it and finally the current document again, so
// wraparound never re-examines the start twice. Searching upward uses
// the exact reverse order. Scopes are resolved fresh per request; the
// document set can change between searches.
func resolveScope(req domain.SearchRequest, action domain.Action, ws driven.Workspace, groups driven.GroupProvider) scope {
	ed, name, open := ws.CurrentDocument()
	sc := scope{exhaustive: req.Wrap || action.IsExhaustive()}

	switch {
	case req.Where == domain.WhereCurrent:
		if open {
			sc.editor, sc.editorName = ed, name
		}

	case req.Where.IsGroup():
		members := groups.MembersOf(req.Where)
		idx := -1
		if open {
			for i := range members {
				if members[i].Name == name {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			sc.rest = make([]domain.DocumentRef, len(members))
			copy(sc.rest, members)
			if req.Direction == domain.DirectionUp {
				reverse(sc.rest)
			}
			break
		}

		sc.editor, sc.editorName = ed, name
		current := members[idx]
		before := members[:idx]
		after := members[idx+1:]

		if req.Direction == domain.DirectionUp {
			sc.rest = appendReversed(sc.rest, before)
			if sc.exhaustive {
				sc.rest = appendReversed(sc.rest, after)
				sc.rest = append(sc.rest, current)
			}
		} else {
			sc.rest = append(sc.rest, after...)
			if sc.exhaustive {
				sc.rest = append(sc.rest, before...)
				sc.rest = append(sc.rest, current)
			}
		}

	default: // marked
		if open {
			sc.editor, sc.editorName = ed, name
		}
		sc.marked = true
	}

	logger.Debug("Resolved scope %s: start=%q rest=%d marked=%t exhaustive=%t",
		req.Where, sc.editorName, len(sc.rest), sc.marked, sc.exhaustive)
	return sc
}

func reverse(refs []domain.DocumentRef) {
	for i, j := 0, len(refs)-1; i < j; i, j = i+1, j-1 {
		refs[i], refs[j] = refs[j], refs[i]
	}
}

func appendReversed(dst, src []domain.DocumentRef) []domain.DocumentRef {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, src[i])
	}
	return dst
}
