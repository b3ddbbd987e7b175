// Package vanilla renders the job form as server-side HTML: a fields
// fragment for a single action and the full page with the action selector,
// result block and copy button.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/render"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
	"github.com/goliatone/go-jobform/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the fields fragment: one labelled control per declared
// field, in order. An empty state renders an empty fragment.
func (r *Renderer) Render(_ context.Context, state *form.State, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if state == nil || state.Empty() {
		return []byte{}, nil
	}

	result, err := r.templates.RenderTemplate("fields", map[string]any{
		"fields":      buildFields(state, options.Errors),
		"form_errors": render.MergeFormErrors(options.FormErrors),
		"url":         options.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(strings.TrimSpace(result) + "\n"), nil
}

// PageData drives the full page template.
type PageData struct {
	Title      string
	Actions    []ActionChoice
	State      *form.State
	Options    render.RenderOptions
	AssetsPath string
	// Endpoints used by the page script.
	FieldsEndpoint   string
	GenerateEndpoint string
}

// ActionChoice is one entry of the action selector.
type ActionChoice struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// RenderPage renders the complete operator page.
func (r *Renderer) RenderPage(_ context.Context, data PageData) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	selected := ""
	var fields []fieldView
	if data.State != nil && !data.State.Empty() {
		selected = data.State.ActionID()
		fields = buildFields(data.State, data.Options.Errors)
	}

	actions := make([]actionView, 0, len(data.Actions))
	for _, action := range data.Actions {
		actions = append(actions, actionView{
			ID:          action.ID,
			Description: action.Description,
			Selected:    action.ID == selected,
		})
	}

	assets := strings.TrimSuffix(defaultString(data.AssetsPath, "/assets"), "/")
	page := map[string]any{
		"title":             defaultString(data.Title, "Job URL Generator"),
		"actions":           actions,
		"selected":          selected,
		"fields":            fields,
		"form_errors":       render.MergeFormErrors(data.Options.FormErrors),
		"url":               data.Options.URL,
		"stylesheet":        assets + "/" + StylesheetName,
		"script":            assets + "/" + ScriptName,
		"fields_endpoint":   defaultString(data.FieldsEndpoint, "/fields"),
		"generate_endpoint": defaultString(data.GenerateEndpoint, "/generate"),
	}
	applyTheme(page, data.Options)

	result, err := r.templates.RenderTemplate("page", page)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
