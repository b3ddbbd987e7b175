package tui

import (
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatURL emits the generated job URL.
	OutputFormatURL OutputFormat = "url"
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
)

// ParseOutputFormat maps a flag value onto a known format.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatURL, OutputFormatJSON, OutputFormatFormURLEncoded:
		return OutputFormat(raw), true
	case "":
		return OutputFormatURL, true
	default:
		return "", false
	}
}

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithBuilder sets the URL builder used for the url and json formats.
func WithBuilder(builder *urlbuilder.Builder) Option {
	return func(r *Renderer) {
		if builder != nil {
			r.builder = builder
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
