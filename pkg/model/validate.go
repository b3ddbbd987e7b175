package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAction marks descriptor tables that break an Action invariant.
	ErrInvalidAction = errors.New("model: invalid action")
	// ErrInvalidField marks descriptors that break a Field invariant.
	ErrInvalidField = errors.New("model: invalid field")
)

// Validate checks the per-field invariants: a non-empty name, a known kind,
// and options present exactly when the kind is select.
func (f Field) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: field %q has unsupported kind %q", ErrInvalidField, f.Name, f.Kind)
	}
	switch {
	case f.Kind == FieldKindSelect && len(f.Options) == 0:
		return fmt.Errorf("%w: select field %q declares no options", ErrInvalidField, f.Name)
	case f.Kind != FieldKindSelect && len(f.Options) > 0:
		return fmt.Errorf("%w: %s field %q must not declare options", ErrInvalidField, f.Kind, f.Name)
	}
	seen := make(map[string]struct{}, len(f.Options))
	for _, option := range f.Options {
		if option == "" {
			return fmt.Errorf("%w: select field %q declares an empty option", ErrInvalidField, f.Name)
		}
		if _, dup := seen[option]; dup {
			return fmt.Errorf("%w: select field %q repeats option %q", ErrInvalidField, f.Name, option)
		}
		seen[option] = struct{}{}
	}
	return nil
}

// Validate checks the action id and every field, and rejects duplicate names.
func (a Action) Validate() error {
	id := strings.TrimSpace(a.ID)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAction)
	}
	if id != a.ID || strings.ContainsAny(id, "/?#&= ") {
		return fmt.Errorf("%w: id %q contains reserved characters", ErrInvalidAction, a.ID)
	}
	names := make(map[string]struct{}, len(a.Fields))
	for _, field := range a.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("%w: action %q: %w", ErrInvalidAction, a.ID, err)
		}
		if _, dup := names[field.Name]; dup {
			return fmt.Errorf("%w: action %q repeats field %q", ErrInvalidAction, a.ID, field.Name)
		}
		names[field.Name] = struct{}{}
	}
	return nil
}
