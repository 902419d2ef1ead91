// Package dir provides a directory-backed book container for books
// kept exploded on disk (one file per document). A filesystem watcher
// drops cached text when a file changes underneath the tool, so
// long-running sessions always search the on-disk state.
package dir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
	"github.com/custodia-labs/replaca-cli/internal/logger"
)

// Ensure Container implements the interface.
var _ driven.Container = (*Container)(nil)

// Container is a directory-backed implementation of driven.Container.
// Document names are slash-separated paths relative to the root.
type Container struct {
	root    string
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	cache map[string]string
	done  chan struct{}
}

// Open creates a container over the directory at root and starts
// watching it for external changes.
func Open(root string) (*Container, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening %s: not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	c := &Container{
		root:    root,
		watcher: watcher,
		cache:   make(map[string]string),
		done:    make(chan struct{}),
	}
	if err := c.watchTree(); err != nil {
		watcher.Close()
		return nil, err
	}
	go c.consumeEvents()
	return c, nil
}

// Close stops the watcher.
func (c *Container) Close() error {
	close(c.done)
	return c.watcher.Close()
}

// Root returns the book's directory.
func (c *Container) Root() string {
	return c.root
}

// List walks the directory fresh and returns every file in sorted
// path order. Hidden files and directories are skipped.
func (c *Container) List(_ context.Context) ([]domain.DocumentRef, error) {
	var names []string
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isHidden(d.Name()) && path != c.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", c.root, err)
	}
	sort.Strings(names)

	refs := make([]domain.DocumentRef, len(names))
	for i, name := range names {
		refs[i] = domain.DocumentRef{Name: name, Category: domain.CategoryForName(name)}
	}
	return refs, nil
}

// RawText reads a document's text, serving repeated reads from cache
// until the watcher sees the file change.
func (c *Container) RawText(_ context.Context, name string) (string, error) {
	c.mu.RLock()
	text, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return text, nil
	}

	data, err := os.ReadFile(c.abs(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("document %s: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	c.mu.Lock()
	c.cache[name] = string(data)
	c.mu.Unlock()
	return string(data), nil
}

// WriteRawText writes a document's text to disk and refreshes the
// cache entry.
func (c *Container) WriteRawText(_ context.Context, name string, text string) error {
	if err := os.WriteFile(c.abs(name), []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	c.mu.Lock()
	c.cache[name] = text
	c.mu.Unlock()
	return nil
}

// abs maps a document name back to its filesystem path.
func (c *Container) abs(name string) string {
	return filepath.Join(c.root, filepath.FromSlash(name))
}

// watchTree registers the root and every subdirectory with the
// watcher.
func (c *Container) watchTree() error {
	return filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(d.Name()) && path != c.root {
			return filepath.SkipDir
		}
		if err := c.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// consumeEvents invalidates cached text for files changed outside the
// tool. New directories get added to the watch set.
func (c *Container) consumeEvents() {
	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			c.handleEvent(event)
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (c *Container) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if event.Op&fsnotify.Create != 0 && !isHidden(filepath.Base(event.Name)) {
			if err := c.watcher.Add(event.Name); err != nil {
				logger.Warn("Watching %s: %v", event.Name, err)
			}
		}
		return
	}

	rel, err := filepath.Rel(c.root, event.Name)
	if err != nil {
		return
	}
	name := filepath.ToSlash(rel)

	c.mu.Lock()
	if _, ok := c.cache[name]; ok {
		logger.Debug("External change, dropping cached text: %s", name)
		delete(c.cache, name)
	}
	c.mu.Unlock()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
