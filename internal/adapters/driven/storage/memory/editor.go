package memory

import (
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Editor implements the interface.
var _ driven.LiveDocument = (*Editor)(nil)

// span is a half-open byte range within the buffer.
type span struct {
	start, end int
}

// Editor is an in-memory live document: a text buffer with a
// selection, the saved match the last find established, and an
// optional marked region.
type Editor struct {
	mu       sync.Mutex
	name     string
	category domain.Category
	text     string
	sel      span
	saved    *span
	mark     *span
}

// NewEditor creates a live editor over text with the cursor at the
// start.
func NewEditor(name string, category domain.Category, text string) *Editor {
	return &Editor{name: name, category: category, text: text}
}

// Name returns the document name.
func (ed *Editor) Name() string { return ed.name }

// Category returns the document's role tag.
func (ed *Editor) Category() domain.Category { return ed.category }

// Contains is a cheap containment probe; it moves no cursor.
func (ed *Editor) Contains(p *domain.Pattern) bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return p.Matches(ed.text)
}

// Find moves the selection to the next match per the pattern's
// direction and records it as the saved match.
func (ed *Editor) Find(p *domain.Pattern, opts domain.FindOptions) bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	rs, re := 0, len(ed.text)
	if opts.MarkedOnly && ed.mark != nil {
		rs, re = ed.mark.start, ed.mark.end
	}
	region := ed.text[rs:re]

	var from int
	switch {
	case opts.WholeDocument && p.Reversed():
		from = len(region)
	case opts.WholeDocument:
		from = 0
	case p.Reversed():
		from = clamp(ed.sel.start-rs, 0, len(region))
	default:
		from = clamp(ed.sel.end-rs, 0, len(region))
	}

	start, end, ok := p.Search(region, from)
	if !ok && opts.Wrap {
		if p.Reversed() {
			start, end, ok = p.Search(region, len(region))
		} else {
			start, end, ok = p.Search(region, 0)
		}
	}
	if !ok {
		return false
	}
	ed.sel = span{rs + start, rs + end}
	ed.saved = &span{rs + start, rs + end}
	return true
}

// Replace rewrites the occurrence the last Find established. It fails
// when there is no saved match, the selection has moved off it, or the
// pattern no longer matches that span.
func (ed *Editor) Replace(p *domain.Pattern, rw domain.Rewriter) bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	if ed.saved == nil || ed.sel != *ed.saved {
		return false
	}
	next, end, ok := p.RewriteAt(ed.text, ed.saved.start, ed.saved.end, rw)
	if !ok {
		return false
	}
	delta := len(next) - len(ed.text)
	ed.text = next
	ed.sel = span{ed.saved.start, end}
	ed.saved = nil
	ed.shiftMark(ed.sel.start, delta)
	return true
}

// ReplaceAllInMarked rewrites every occurrence inside the marked
// region and returns the occurrence count. Without a marked region it
// does nothing.
func (ed *Editor) ReplaceAllInMarked(p *domain.Pattern, rw domain.Rewriter) int {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	if ed.mark == nil {
		return 0
	}
	region := ed.text[ed.mark.start:ed.mark.end]
	next, num := p.Substitute(region, rw)
	if num == 0 {
		return 0
	}
	ed.text = ed.text[:ed.mark.start] + next + ed.text[ed.mark.end:]
	ed.mark.end = ed.mark.start + len(next)
	ed.sel = span{ed.mark.start, ed.mark.start}
	ed.saved = nil
	return num
}

// CountAllInMarked tallies occurrences inside the marked region.
func (ed *Editor) CountAllInMarked(p *domain.Pattern) int {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	if ed.mark == nil {
		return 0
	}
	return p.Count(ed.text[ed.mark.start:ed.mark.end])
}

// RawText returns the live buffer contents.
func (ed *Editor) RawText() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.text
}

// SetRawText replaces the buffer wholesale, resetting the cursor,
// the saved match and any marked region.
func (ed *Editor) SetRawText(text string) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.text = text
	ed.sel = span{}
	ed.saved = nil
	ed.mark = nil
}

// Select places the selection, clearing any saved match. Used by hosts
// to position the cursor before a find.
func (ed *Editor) Select(start, end int) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	start = clamp(start, 0, len(ed.text))
	end = clamp(end, start, len(ed.text))
	ed.sel = span{start, end}
	ed.saved = nil
}

// Selection returns the selected byte range.
func (ed *Editor) Selection() (start, end int) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.sel.start, ed.sel.end
}

// SelectedText returns the selected text.
func (ed *Editor) SelectedText() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.text[ed.sel.start:ed.sel.end]
}

// Mark designates [start, end) as the marked region.
func (ed *Editor) Mark(start, end int) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	start = clamp(start, 0, len(ed.text))
	end = clamp(end, start, len(ed.text))
	ed.mark = &span{start, end}
}

// ClearMark removes the marked region.
func (ed *Editor) ClearMark() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.mark = nil
}

// HasMark reports whether a marked region is set.
func (ed *Editor) HasMark() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.mark != nil
}

// MarkedText returns the marked region's text, or "" without a mark.
func (ed *Editor) MarkedText() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if ed.mark == nil {
		return ""
	}
	return ed.text[ed.mark.start:ed.mark.end]
}

// shiftMark keeps the marked region aligned after an edit of length
// delta at position pos. A mark containing the edit grows with it; a
// mark after the edit slides.
func (ed *Editor) shiftMark(pos, delta int) {
	if ed.mark == nil || delta == 0 {
		return
	}
	if pos < ed.mark.start {
		ed.mark.start += delta
		ed.mark.end += delta
	} else if pos < ed.mark.end {
		ed.mark.end += delta
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
