package form

import "github.com/goliatone/go-jobform/pkg/model"

// Option is one entry of a select control.
type Option struct {
	Value    string `json:"value"`
	Caption  string `json:"caption"`
	Disabled bool   `json:"disabled,omitempty"`
	// Placeholder marks the leading "nothing selected" entry.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Control is one rendered, labelled input.
type Control struct {
	Name  string          `json:"name"`
	Label string          `json:"label"`
	Kind  model.FieldKind `json:"kind"`
	// InputType is the HTML input type for free-text kinds, empty for select.
	InputType   string   `json:"inputType,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Value       string   `json:"value"`
}

// IsSelect reports whether the control is a choice control.
func (c Control) IsSelect() bool {
	return c.Kind == model.FieldKindSelect
}

// Choices returns the selectable options, skipping the placeholder entry.
func (c Control) Choices() []Option {
	out := make([]Option, 0, len(c.Options))
	for _, option := range c.Options {
		if option.Placeholder {
			continue
		}
		out = append(out, option)
	}
	return out
}

// NewControl creates the control for a field descriptor. Select controls
// start with a disabled placeholder option (empty value, caption taken from
// the descriptor placeholder) followed by one option per choice.
func NewControl(field model.Field) Control {
	control := Control{
		Name:        field.Name,
		Label:       field.DisplayLabel(),
		Kind:        field.Kind,
		Placeholder: field.Placeholder,
	}

	if field.Kind == model.FieldKindSelect {
		control.Options = make([]Option, 0, len(field.Options)+1)
		control.Options = append(control.Options, Option{
			Value:       "",
			Caption:     field.Placeholder,
			Disabled:    true,
			Placeholder: true,
		})
		for _, choice := range field.Options {
			control.Options = append(control.Options, Option{Value: choice, Caption: choice})
		}
		return control
	}

	control.InputType = string(field.Kind)
	return control
}

func cloneControl(c Control) Control {
	if c.Options != nil {
		c.Options = append([]Option(nil), c.Options...)
	}
	return c
}
