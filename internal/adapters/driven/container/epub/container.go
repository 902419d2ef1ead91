// Package epub provides a zip-backed book container. An EPUB (or any
// zip of documents) is loaded fully into memory, searched and
// rewritten there, and written back out on save. The mimetype member
// keeps its conventional first, uncompressed slot.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Container implements the interface.
var _ driven.Container = (*Container)(nil)

// Container is a zip-backed implementation of driven.Container.
type Container struct {
	mu       sync.RWMutex
	path     string
	refs     []domain.DocumentRef
	data     map[string][]byte
	modified bool
}

// Open loads a zip book from path.
func Open(path string) (*Container, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	c := &Container{
		path: path,
		data: make(map[string][]byte),
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading member %s: %w", f.Name, err)
		}
		c.data[f.Name] = data
		c.refs = append(c.refs, domain.DocumentRef{
			Name:     f.Name,
			Category: domain.CategoryForName(f.Name),
		})
	}
	return c, nil
}

// Path returns the book's file path.
func (c *Container) Path() string {
	return c.path
}

// Modified reports whether any member changed since open or save.
func (c *Container) Modified() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modified
}

// List returns every member in archive order.
func (c *Container) List(_ context.Context) ([]domain.DocumentRef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	refs := make([]domain.DocumentRef, len(c.refs))
	copy(refs, c.refs)
	return refs, nil
}

// RawText reads a member's text.
func (c *Container) RawText(_ context.Context, name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[name]
	if !ok {
		return "", fmt.Errorf("member %s: %w", name, domain.ErrNotFound)
	}
	return string(data), nil
}

// WriteRawText overwrites a member's text in memory.
func (c *Container) WriteRawText(_ context.Context, name string, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[name]; !ok {
		return fmt.Errorf("member %s: %w", name, domain.ErrNotFound)
	}
	c.data[name] = []byte(text)
	c.modified = true
	return nil
}

// Save writes the book back to its original path.
func (c *Container) Save() error {
	return c.SaveAs(c.path)
}

// SaveAs writes the book to path, preserving member order.
func (c *Container) SaveAs(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, ref := range c.refs {
		method := zip.Deflate
		if ref.Name == "mimetype" {
			method = zip.Store
		}
		mw, err := w.CreateHeader(&zip.FileHeader{Name: ref.Name, Method: method})
		if err != nil {
			return fmt.Errorf("creating member %s: %w", ref.Name, err)
		}
		if _, err := mw.Write(c.data[ref.Name]); err != nil {
			return fmt.Errorf("writing member %s: %w", ref.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing %s: %w", path, err)
	}
	c.modified = false
	return nil
}
