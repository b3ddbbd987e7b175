package testsupport

import (
	"testing"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/registry"
)

// LoadRegistry loads an action table fixture, failing the test on error.
func LoadRegistry(t *testing.T, path string) *registry.Registry {
	t.Helper()

	reg, err := registry.Load(path)
	if err != nil {
		t.Fatalf("load registry %s: %v", path, err)
	}
	return reg
}

// FilledState returns a form state for actionID from the built-in table with
// values applied.
func FilledState(t *testing.T, actionID string, values map[string]string) *form.State {
	t.Helper()

	state := form.NewState()
	if actionID == "" {
		return state
	}
	state.Load(registry.Default().MustLookup(actionID))
	if err := state.SetAll(values); err != nil {
		t.Fatalf("set values: %v", err)
	}
	return state
}
