package registry

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-jobform/pkg/model"
)

// ErrActionNotFound is returned by Lookup when the id is not in the table.
var ErrActionNotFound = errors.New("registry: action not found")

// Registry is a read-only action table preserving declaration order.
type Registry struct {
	order   []string
	actions map[string]model.Action
}

// New validates the supplied actions and freezes them into a Registry.
// Duplicate ids are rejected.
func New(actions ...model.Action) (*Registry, error) {
	r := &Registry{
		order:   make([]string, 0, len(actions)),
		actions: make(map[string]model.Action, len(actions)),
	}
	for _, action := range actions {
		if err := action.Validate(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, exists := r.actions[action.ID]; exists {
			return nil, fmt.Errorf("registry: action %q already registered", action.ID)
		}
		r.order = append(r.order, action.ID)
		r.actions[action.ID] = action.Clone()
	}
	return r, nil
}

// MustNew panics when New fails. Useful for package-level tables.
func MustNew(actions ...model.Action) *Registry {
	r, err := New(actions...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns a copy of the action registered under id.
func (r *Registry) Lookup(id string) (model.Action, error) {
	if r != nil {
		if action, ok := r.actions[id]; ok {
			return action.Clone(), nil
		}
	}
	return model.Action{}, fmt.Errorf("%w: %q", ErrActionNotFound, id)
}

// MustLookup panics when id is unknown. Selectable actions are always a
// subset of the registry keys, so a miss is a caller bug.
func (r *Registry) MustLookup(id string) model.Action {
	action, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return action
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.actions[id]
	return ok
}

// IDs lists action ids in declaration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Actions returns copies of every action in declaration order.
func (r *Registry) Actions() []model.Action {
	if r == nil {
		return nil
	}
	out := make([]model.Action, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.actions[id].Clone())
	}
	return out
}

// Len reports the number of registered actions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Merge returns a new Registry holding r's actions followed by extra's.
// Neither input is modified; duplicate ids are an error.
func Merge(registries ...*Registry) (*Registry, error) {
	var actions []model.Action
	for _, r := range registries {
		actions = append(actions, r.Actions()...)
	}
	return New(actions...)
}
