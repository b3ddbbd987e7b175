package form

import "github.com/goliatone/go-jobform/pkg/registry"

// Renderer draws the controls of the selected action into a State.
type Renderer struct {
	registry *registry.Registry
	state    *State
}

// NewRenderer binds a registry to a state. A nil state gets a fresh one.
func NewRenderer(reg *registry.Registry, state *State) *Renderer {
	if state == nil {
		state = NewState()
	}
	return &Renderer{registry: reg, state: state}
}

// State exposes the surface the renderer draws into.
func (r *Renderer) State() *State {
	return r.state
}

// Render clears the surface and, unless actionID is empty, draws one
// control per field in declaration order. An id the registry does not know
// panics: selectable actions are always registry keys.
func (r *Renderer) Render(actionID string) {
	r.state.Clear()
	if actionID == "" {
		return
	}
	r.state.Load(r.registry.MustLookup(actionID))
}
