package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-jobform/pkg/model"
)

var (
	// ErrUnknownControl is returned when setting a value no control owns.
	ErrUnknownControl = errors.New("form: unknown control")
	// ErrInvalidOption is returned when a select value is not a declared choice.
	ErrInvalidOption = errors.New("form: invalid option")
)

// State is the rendered control set for one action. The zero value is an
// empty form with no action selected.
type State struct {
	actionID string
	controls []Control
	index    map[string]int
}

// NewState returns an empty form.
func NewState() *State {
	return &State{}
}

// Load replaces every control with the fields of action, discarding values.
func (s *State) Load(action model.Action) {
	s.actionID = action.ID
	s.controls = make([]Control, 0, len(action.Fields))
	s.index = make(map[string]int, len(action.Fields))
	for _, field := range action.Fields {
		s.index[field.Name] = len(s.controls)
		s.controls = append(s.controls, NewControl(field))
	}
}

// Clear removes every control and forgets the action.
func (s *State) Clear() {
	s.actionID = ""
	s.controls = nil
	s.index = nil
}

// ActionID reports the action the controls belong to.
func (s *State) ActionID() string {
	return s.actionID
}

// Empty reports whether no controls are rendered.
func (s *State) Empty() bool {
	return len(s.controls) == 0
}

// Len reports the number of controls.
func (s *State) Len() int {
	return len(s.controls)
}

// Controls returns a copy of the controls in render order.
func (s *State) Controls() []Control {
	out := make([]Control, len(s.controls))
	for i, control := range s.controls {
		out[i] = cloneControl(control)
	}
	return out
}

// Control returns a copy of the control called name.
func (s *State) Control(name string) (Control, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Control{}, false
	}
	return cloneControl(s.controls[idx]), true
}

// Set updates a control value. Select controls only accept a declared
// choice or the empty value (back to the placeholder).
func (s *State) Set(name, value string) error {
	idx, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	control := &s.controls[idx]
	if control.IsSelect() && value != "" && !hasChoice(*control, value) {
		return fmt.Errorf("%w: %q is not a choice of %s", ErrInvalidOption, value, name)
	}
	control.Value = value
	return nil
}

// SetAll applies values in control order, stopping at the first error.
// Names the form does not own are rejected before anything is applied.
func (s *State) SetAll(values map[string]string) error {
	for name := range values {
		if _, ok := s.index[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownControl, name)
		}
	}
	for _, control := range s.controls {
		if value, ok := values[control.Name]; ok {
			if err := s.Set(control.Name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Value returns the current value of name.
func (s *State) Value(name string) string {
	if idx, ok := s.index[name]; ok {
		return s.controls[idx].Value
	}
	return ""
}

// Values snapshots the current values keyed by control name.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.controls))
	for _, control := range s.controls {
		out[control.Name] = control.Value
	}
	return out
}

func hasChoice(control Control, value string) bool {
	for _, option := range control.Options {
		if !option.Placeholder && option.Value == value {
			return true
		}
	}
	return false
}
