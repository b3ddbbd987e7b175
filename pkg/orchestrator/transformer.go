package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Transformer adjusts an action descriptor before its form state is built.
// Implementations may relabel fields or rewrite placeholders; field names and
// order are part of the URL contract and must stay intact.
type Transformer interface {
	Transform(ctx context.Context, action *model.Action) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, action *model.Action) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, action *model.Action) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, action)
}

// PresetTransformer applies declarative label and placeholder overrides:
//
//	actions:
//	  change-email:
//	    description: Replace a login email
//	    fields:
//	      CASE_ID: {label: Case number, placeholder: "e.g., 1234"}
type PresetTransformer struct {
	preset preset
}

type preset struct {
	Actions map[string]actionPreset `json:"actions" yaml:"actions"`
}

type actionPreset struct {
	Description *string                `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      map[string]fieldPreset `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type fieldPreset struct {
	Label       *string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder *string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// NewPresetTransformer parses a JSON or YAML preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	var p preset
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("orchestrator: decode preset: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("orchestrator: decode preset: %w", err)
		}
	}
	return &PresetTransformer{preset: p}, nil
}

// LoadPresetTransformer reads a preset from fsys.
func LoadPresetTransformer(fsys fs.FS, name string) (*PresetTransformer, error) {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(name))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read preset %q: %w", name, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the overrides registered for action.ID. Overrides naming
// unknown fields are rejected.
func (p *PresetTransformer) Transform(_ context.Context, action *model.Action) error {
	if p == nil || action == nil {
		return nil
	}
	override, ok := p.preset.Actions[action.ID]
	if !ok {
		return nil
	}
	if override.Description != nil {
		action.Description = strings.TrimSpace(*override.Description)
	}
	for name, fp := range override.Fields {
		idx := -1
		for i := range action.Fields {
			if action.Fields[i].Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("orchestrator: preset for %q names unknown field %q", action.ID, name)
		}
		if fp.Label != nil {
			action.Fields[idx].Label = *fp.Label
		}
		if fp.Placeholder != nil {
			action.Fields[idx].Placeholder = *fp.Placeholder
		}
	}
	return nil
}
