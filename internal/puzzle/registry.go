package puzzle

import (
	"fmt"
	"sort"
	"sync"
)

// ErrAlreadyRegistered is returned when a puzzle name is registered twice.
var ErrAlreadyRegistered = fmt.Errorf("puzzle already registered")

// Registry holds available puzzles and provides lookup by name.
// It is thread-safe and supports registration at runtime.
type Registry struct {
	mu      sync.RWMutex
	puzzles map[string]Puzzle
}

// NewRegistry creates a new empty puzzle registry.
func NewRegistry() *Registry {
	return &Registry{puzzles: make(map[string]Puzzle)}
}

// Register adds a puzzle to the registry.
// Returns an error if a puzzle with the same name already exists.
func (r *Registry) Register(p Puzzle) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("invalid puzzle: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.puzzles[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.puzzles[name] = p
	return nil
}

// MustRegister registers a puzzle and panics on error.
// Use this for static registration at init time.
func (r *Registry) MustRegister(p Puzzle) {
	if err := r.Register(p); err != nil {
		panic(fmt.Sprintf("failed to register puzzle %s: %v", p.Name(), err))
	}
}

// Get returns a puzzle by name, or nil if not found.
func (r *Registry) Get(name string) Puzzle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.puzzles[name]
}

// Has returns true if a puzzle with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.puzzles[name]
	return ok
}

// Names returns all registered puzzle names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.puzzles))
	for name := range r.puzzles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered puzzles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.puzzles)
}

// defaultRegistry carries the built-in expedition puzzles, registered by
// the init funcs in their own files.
var defaultRegistry = NewRegistry()

// Default returns the registry populated with the built-in puzzles.
func Default() *Registry {
	return defaultRegistry
}
