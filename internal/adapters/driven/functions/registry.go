// Package functions provides the replace-function registry and the
// stock function set. The engine treats replace functions as opaque
// callables honouring a small init/context contract; this package
// supplies the registry those names resolve against.
package functions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.FunctionRegistry = (*Registry)(nil)

// Registry maps function names to replace functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]driven.ReplaceFunction
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]driven.ReplaceFunction),
	}
}

// NewBuiltinRegistry creates a registry pre-loaded with the stock
// case-mapping functions.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for name, fn := range builtins() {
		r.funcs[name] = fn
	}
	return r
}

// Register adds a function under name, replacing any previous one.
func (r *Registry) Register(name string, fn driven.ReplaceFunction) error {
	if name == "" {
		return fmt.Errorf("%w: empty function name", domain.ErrInvalidRequest)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Resolve returns the function registered under name.
func (r *Registry) Resolve(name string) (driven.ReplaceFunction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	if !ok {
		return nil, &domain.NoSuchFunctionError{Name: name}
	}
	return fn, nil
}

// Names lists the registered function names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Func adapts a rewrite closure into a driven.ReplaceFunction,
// tracking the batch context document for it.
type Func struct {
	mu      sync.Mutex
	context string
	rewrite func(m *domain.Match, documentID string) string
}

// New wraps a rewrite closure. The closure receives each match along
// with the name of the document it occurs in.
func New(rewrite func(m *domain.Match, documentID string) string) *Func {
	return &Func{rewrite: rewrite}
}

// Init prepares the function for a run.
func (f *Func) Init(documentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.context = documentID
}

// SetContext names the document the following rewrites occur in.
func (f *Func) SetContext(documentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.context = documentID
}

// Rewrite returns the replacement text for one occurrence.
func (f *Func) Rewrite(m *domain.Match) string {
	f.mu.Lock()
	ctx := f.context
	f.mu.Unlock()
	return f.rewrite(m, ctx)
}
