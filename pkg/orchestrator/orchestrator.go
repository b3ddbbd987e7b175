package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the action registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.actions = reg
	}
}

// WithRenderers injects a renderer registry.
func WithRenderers(renderers *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers = renderers
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithBuilder injects the URL builder used when a request asks for a URL.
func WithBuilder(builder *urlbuilder.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithTheme passes a resolved theme configuration to every render call that
// does not carry its own.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithThemeManifest resolves manifest (and variant) into the renderer theme
// configuration. The manifest is registered with a go-theme registry first so
// invalid manifests surface as initialisation errors.
func WithThemeManifest(manifest *theme.Manifest, variant string) Option {
	return func(o *Orchestrator) {
		cfg, err := ResolveTheme(manifest, variant)
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.theme = cfg
	}
}

// WithTransformer registers a Transformer that adjusts action descriptors
// before the form state is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates registry lookup → form state → optional URL build
// → renderer. It applies defaults (built-in table, vanilla renderer) while
// remaining open to dependency injection.
type Orchestrator struct {
	actions         *registry.Registry
	renderers       *render.Registry
	builder         *urlbuilder.Builder
	defaultRenderer string
	theme           *theme.RendererConfig
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// ActionID selects the action. Empty renders the empty form.
	ActionID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Values pre-populate controls.
	Values map[string]string

	// Errors surfaces externally produced messages. Keys are control names or
	// paths ending in one ("/body/EMAIL", "params.CASE_ID"); anything else is
	// shown as a form-level error.
	Errors map[string][]string

	// URL is a previously generated URL to display.
	URL string

	// BuildURL asks the orchestrator to build the URL from Values. A missing
	// value is reported through the render errors instead of failing.
	BuildURL bool
}

// Generate renders req and returns the output bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	state, action, err := o.load(ctx, req.ActionID, req.Values)
	if err != nil {
		return nil, err
	}

	mapping := render.MapErrorPayload(state, req.Errors)
	opts := render.RenderOptions{
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
		URL:        req.URL,
		Theme:      o.theme,
	}
	if req.BuildURL && !state.Empty() {
		o.buildInto(action, state, &opts)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, state, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// State resolves actionID into a loaded form state with values applied.
func (o *Orchestrator) State(ctx context.Context, actionID string, values map[string]string) (*form.State, error) {
	state, _, err := o.load(ctx, actionID, values)
	return state, err
}

// load returns the state together with the transformed action it was built
// from, so URL building sees the same labels the form shows.
func (o *Orchestrator) load(ctx context.Context, actionID string, values map[string]string) (*form.State, model.Action, error) {
	state := form.NewState()
	if actionID == "" {
		return state, model.Action{}, nil
	}

	action, err := o.actions.Lookup(actionID)
	if err != nil {
		return nil, model.Action{}, fmt.Errorf("orchestrator: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &action); err != nil {
			return nil, model.Action{}, fmt.Errorf("orchestrator: transform action: %w", err)
		}
	}

	state.Load(action)
	if err := state.SetAll(values); err != nil {
		return nil, model.Action{}, fmt.Errorf("orchestrator: apply values: %w", err)
	}
	return state, action, nil
}

// Theme reports the resolved theme configuration, nil when unthemed.
func (o *Orchestrator) Theme() *theme.RendererConfig {
	return o.theme
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.renderers
}

func (o *Orchestrator) buildInto(action model.Action, state *form.State, opts *render.RenderOptions) {
	url, err := o.builder.Build(action, urlbuilder.Values(state.Values()))
	if err != nil {
		mapping := render.FieldErrors(err)
		opts.Errors = mergeFieldErrors(opts.Errors, mapping.Fields)
		opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
		opts.URL = ""
		return
	}
	opts.URL = url
}

func mergeFieldErrors(base, extra map[string][]string) map[string][]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string][]string, len(base)+len(extra))
	for key, messages := range base {
		out[key] = append([]string(nil), messages...)
	}
	for key, messages := range extra {
		out[key] = render.MergeFormErrors(out[key], messages...)
	}
	return out
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.renderers.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.renderers.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.renderers.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.actions == nil {
		o.actions = registry.Default()
	}
	if o.builder == nil {
		o.builder = urlbuilder.New()
	}
	if o.renderers == nil {
		o.renderers = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.renderers.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
