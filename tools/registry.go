package tools

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrEmptyName is returned when registering a tool without name
	ErrEmptyName = errors.New("tool name is empty")
	// ErrInvalidName is returned for names with leading or trailing spaces
	ErrInvalidName = errors.New("tool name has surrounding whitespace")
)

// Registry is a name keyed collection of tools kept in registration order.
// Registering an existing name replaces the entry in place.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]AnonymousTool
	order []string
}

// NewRegistry returns a Registry seeded with the given tools
func NewRegistry(list ...AnonymousTool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]AnonymousTool, len(list)),
	}
	for _, t := range list {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool keyed by its declared name
func (r *Registry) Register(t AnonymousTool) error {
	if t == nil {
		return errors.New("tool is nil")
	}
	name := t.Name()
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tools == nil {
		r.tools = make(map[string]AnonymousTool)
	}
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
	return nil
}

// Get returns the tool registered under name
func (r *Registry) Get(name string) (AnonymousTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools in registration order
func (r *Registry) All() []AnonymousTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]AnonymousTool, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, r.tools[name])
	}
	return ret
}

// Names returns the registered tool names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]string, len(r.order))
	copy(ret, r.order)
	return ret
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Select resolves names against the registry, unknown names are skipped
func (r *Registry) Select(names ...string) []AnonymousTool {
	ret := make([]AnonymousTool, 0, len(names))
	for _, name := range names {
		if t, ok := r.Get(name); ok {
			ret = append(ret, t)
		}
	}
	return ret
}
