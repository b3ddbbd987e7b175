package vanilla

import (
	"sort"
	"strings"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/render"
)

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	IsSelect    bool         `json:"is_select"`
	InputType   string       `json:"input_type,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Caption  string `json:"caption"`
	Disabled bool   `json:"disabled,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

type actionView struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
}

func buildFields(state *form.State, errors map[string][]string) []fieldView {
	controls := state.Controls()
	out := make([]fieldView, 0, len(controls))
	for _, control := range controls {
		view := fieldView{
			Name:        control.Name,
			Label:       control.Label,
			IsSelect:    control.IsSelect(),
			InputType:   control.InputType,
			Placeholder: control.Placeholder,
			Value:       control.Value,
			Errors:      render.MergeFormErrors(errors[control.Name]),
		}
		for _, option := range control.Options {
			view.Options = append(view.Options, optionView{
				Value:    option.Value,
				Caption:  option.Caption,
				Disabled: option.Disabled,
				Selected: option.Value == control.Value,
			})
		}
		out = append(out, view)
	}
	return out
}

func applyTheme(page map[string]any, options render.RenderOptions) {
	cfg := options.Theme
	if cfg == nil {
		return
	}
	page["theme_name"] = cfg.Theme
	page["theme_variant"] = cfg.Variant
	page["theme_style"] = cssVarsStyle(cfg.CSSVars)
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL("jobform.stylesheet"); href != "" {
			page["theme_stylesheet"] = href
		}
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" {
			continue
		}
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
