// Package registry implements the process-wide module registry: canonical filesystem path → Module AST root,
// plus the in-progress set the Import pass uses for cycle detection.
//
// Grounded on go-dws's internal/units.UnitRegistry (searchPaths,
// a units map, a loading set) generalized from DWScript's unit model to
// Jac's import model: entries key on canonical path rather than unit name,
// and re-entering an in-progress module is not an error, where go-dws's RegisterUnit rejects a duplicate outright.
package registry

import (
	"fmt"
	"sync"

	"github.com/jaclang-dev/jacc/internal/ast"
)

// Registry is the process-wide module cache. It must be guarded by a mutex
// if the host ever compiles concurrently; single-compilation
// correctness does not depend on locking, but this repo locks regardless
// since the cost is negligible and it removes a whole class of future bugs.
type Registry struct {
	mu         sync.Mutex
	modules    map[string]*ast.Module
	inProgress map[string]bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		modules:    make(map[string]*ast.Module),
		inProgress: make(map[string]bool),
	}
}

// Get returns the Module registered at path, if any.
func (r *Registry) Get(path string) (*ast.Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[path]
	return m, ok
}

// Register inserts m under path. An entry is inserted on first successful
// parse and reused by subsequent imports; registering
// the same path twice is a programmer error, not a recoverable one, since
// the Import pass always checks Get before parsing.
func (r *Registry) Register(path string, m *ast.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[path]; exists {
		return fmt.Errorf("registry: module %q already registered", path)
	}
	r.modules[path] = m
	return nil
}

// TryEnter marks path as in-progress and reports whether it was newly
// marked. A false return means the caller re-entered a module already
// being resolved (an import cycle); this must not be treated as an error — the caller should return whatever AST is
// currently registered for path (possibly still partially populated).
func (r *Registry) TryEnter(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inProgress[path] {
		return false
	}
	r.inProgress[path] = true
	return true
}

// Leave clears path's in-progress marker once its Import-pass-prefix
// schedule has completed.
func (r *Registry) Leave(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inProgress, path)
}

// Invalidate removes path's cache entry, forcing the next import to
// reparse it from scratch.
func (r *Registry) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, path)
}
