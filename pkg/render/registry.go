package render

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownRenderer is returned by Get when no renderer carries the name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps output names ("vanilla", "tui") to the renderer that draws a
// job form in that format. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Renderer)}
}

// Register files renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := renderer.Name()
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byKey[key]; taken {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.byKey[key] = renderer
	return nil
}

// MustRegister is Register for wiring that cannot fail at runtime.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byKey[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// List reports the registered names in lexical order; the orchestrator falls
// back to the first one when no default is configured.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byKey))
}
