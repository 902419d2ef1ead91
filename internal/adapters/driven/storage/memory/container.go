package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Container implements the interface.
var _ driven.Container = (*Container)(nil)

// Container is an in-memory implementation of driven.Container.
type Container struct {
	mu    sync.RWMutex
	text  map[string]string
	refs  []domain.DocumentRef
	index map[string]int
}

// NewContainer creates an empty in-memory container.
func NewContainer() *Container {
	return &Container{
		text:  make(map[string]string),
		index: make(map[string]int),
	}
}

// Add appends a document to the container in display order, or
// overwrites its text if the name already exists.
func (c *Container) Add(name string, category domain.Category, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[name]; !ok {
		c.index[name] = len(c.refs)
		c.refs = append(c.refs, domain.DocumentRef{Name: name, Category: category})
	}
	c.text[name] = text
}

// List returns every document in display order.
func (c *Container) List(_ context.Context) ([]domain.DocumentRef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs := make([]domain.DocumentRef, len(c.refs))
	copy(refs, c.refs)
	return refs, nil
}

// RawText reads a document's text.
func (c *Container) RawText(_ context.Context, name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.text[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

// WriteRawText overwrites a document's text.
func (c *Container) WriteRawText(_ context.Context, name string, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.text[name]; !ok {
		return domain.ErrNotFound
	}
	c.text[name] = text
	return nil
}
