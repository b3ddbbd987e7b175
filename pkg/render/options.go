package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form state.
type RenderOptions struct {
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// URL is the generated job URL to display, if any.
	URL string
	// Theme carries resolved theme tokens and partial overrides. Renderers
	// that do not support theming ignore it.
	Theme *theme.RendererConfig
}

// HasErrors reports whether any field or form message is present.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0 || len(o.FormErrors) > 0
}
