package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Workspace implements the interfaces.
var (
	_ driven.Workspace     = (*Workspace)(nil)
	_ driven.GroupProvider = (*Workspace)(nil)
	_ driven.Container     = (*Workspace)(nil)
)

// Workspace is the in-memory host book: a container for persisted
// text, live editors for documents being edited, the current-document
// focus, and the file-browser selection. It implements both the
// workspace and group-provider ports.
type Workspace struct {
	mu        sync.RWMutex
	container driven.Container
	refs      []domain.DocumentRef
	editors   map[string]*Editor
	current   string
	selected  map[string]bool
	modified  bool
}

// NewWorkspace creates a workspace over a container and loads the
// document list.
func NewWorkspace(ctx context.Context, container driven.Container) (*Workspace, error) {
	ws := &Workspace{
		container: container,
		editors:   make(map[string]*Editor),
		selected:  make(map[string]bool),
	}
	if err := ws.Refresh(ctx); err != nil {
		return nil, err
	}
	return ws, nil
}

// Refresh reloads the document list from the container. Hosts call it
// when the document set changes between searches.
func (ws *Workspace) Refresh(ctx context.Context) error {
	refs, err := ws.container.List(ctx)
	if err != nil {
		return fmt.Errorf("listing container: %w", err)
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.refs = refs
	return nil
}

// List returns the book's documents in display order. Together with
// RawText and WriteRawText this makes the workspace itself a
// container, so hosts can layer raw document access over it without
// bypassing live editor buffers.
func (ws *Workspace) List(_ context.Context) ([]domain.DocumentRef, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	refs := make([]domain.DocumentRef, len(ws.refs))
	copy(refs, ws.refs)
	return refs, nil
}

// CurrentDocument returns the editor holding focus.
func (ws *Workspace) CurrentDocument() (driven.LiveDocument, string, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	ed, ok := ws.editors[ws.current]
	if !ok {
		return nil, "", false
	}
	return ed, ws.current, true
}

// Editor returns the live editor for name if one is materialised.
func (ws *Workspace) Editor(name string) (driven.LiveDocument, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	ed, ok := ws.editors[name]
	if !ok {
		return nil, false
	}
	return ed, true
}

// OpenEditor promotes a persisted document to a live editor and gives
// it focus. Opening an already-open document only moves focus.
func (ws *Workspace) OpenEditor(ctx context.Context, name string) (driven.LiveDocument, error) {
	ws.mu.RLock()
	ed, ok := ws.editors[name]
	ws.mu.RUnlock()
	if ok {
		ws.ShowEditor(name)
		return ed, nil
	}

	raw, err := ws.container.RawText(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ed = NewEditor(name, ws.categoryOf(name), raw)
	ws.editors[name] = ed
	ws.current = name
	return ed, nil
}

// ShowEditor gives focus to an already-open editor.
func (ws *Workspace) ShowEditor(name string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if _, ok := ws.editors[name]; ok {
		ws.current = name
	}
}

// RawText reads a document's text: the live buffer when the document
// is open, the persisted copy otherwise.
func (ws *Workspace) RawText(ctx context.Context, name string) (string, error) {
	ws.mu.RLock()
	ed, ok := ws.editors[name]
	ws.mu.RUnlock()
	if ok {
		return ed.RawText(), nil
	}
	return ws.container.RawText(ctx, name)
}

// WriteRawText writes a document's text back: to the live buffer when
// the document is open, to the container otherwise.
func (ws *Workspace) WriteRawText(ctx context.Context, name string, text string) error {
	ws.mu.RLock()
	ed, ok := ws.editors[name]
	ws.mu.RUnlock()
	if ok {
		ed.SetRawText(text)
		return nil
	}
	return ws.container.WriteRawText(ctx, name, text)
}

// Flush writes open editor buffers back to the container. Buffers
// matching the persisted copy are skipped, so a find-only session
// leaves the container byte-for-byte untouched. One-shot hosts call
// it before saving; edits held only in live editors do not survive
// the process otherwise.
func (ws *Workspace) Flush(ctx context.Context) error {
	ws.mu.RLock()
	editors := make([]*Editor, 0, len(ws.editors))
	for _, ref := range ws.refs {
		if ed, ok := ws.editors[ref.Name]; ok {
			editors = append(editors, ed)
		}
	}
	ws.mu.RUnlock()

	for _, ed := range editors {
		text := ed.RawText()
		persisted, err := ws.container.RawText(ctx, ed.Name())
		if err == nil && persisted == text {
			continue
		}
		if err := ws.container.WriteRawText(ctx, ed.Name(), text); err != nil {
			return fmt.Errorf("flushing %s: %w", ed.Name(), err)
		}
	}
	return nil
}

// HasMarkedText reports whether the current editor has a marked
// region.
func (ws *Workspace) HasMarkedText() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	ed, ok := ws.editors[ws.current]
	return ok && ed.HasMark()
}

// SetModified flags the book as having unsaved changes.
func (ws *Workspace) SetModified() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.modified = true
}

// Modified reports whether the book has unsaved changes.
func (ws *Workspace) Modified() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.modified
}

// MembersOf returns the ordered members of a group scope: text
// documents, style documents, or the file-browser selection.
func (ws *Workspace) MembersOf(where domain.Where) []domain.DocumentRef {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	var members []domain.DocumentRef
	for _, ref := range ws.refs {
		switch where {
		case domain.WhereText:
			if ref.Category == domain.CategoryText {
				members = append(members, ref)
			}
		case domain.WhereStyles:
			if ref.Category == domain.CategoryStyles {
				members = append(members, ref)
			}
		case domain.WhereSelected:
			if ws.selected[ref.Name] {
				members = append(members, ref)
			}
		}
	}
	return members
}

// IsSelected reports whether a document is in the file-browser
// selection.
func (ws *Workspace) IsSelected(name string) bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.selected[name]
}

// Select adds documents to the file-browser selection.
func (ws *Workspace) Select(names ...string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, name := range names {
		ws.selected[name] = true
	}
}

// ClearSelection empties the file-browser selection.
func (ws *Workspace) ClearSelection() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.selected = make(map[string]bool)
}

// Names returns every document name in display order.
func (ws *Workspace) Names() []string {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	names := make([]string, len(ws.refs))
	for i, ref := range ws.refs {
		names[i] = ref.Name
	}
	return names
}

// categoryOf looks a document's category up in the cached list.
// Callers hold ws.mu.
func (ws *Workspace) categoryOf(name string) domain.Category {
	for _, ref := range ws.refs {
		if ref.Name == name {
			return ref.Category
		}
	}
	return domain.CategoryOther
}
