// Package session wires the registry, form surface, URL builder and copy
// button into one single-operator flow: select an action, fill its fields,
// generate the URL, copy it.
package session

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-jobform/pkg/clipboard"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// Mode is the implicit phase the surface is in.
type Mode int

const (
	ModeIdle Mode = iota
	ModeFilling
	ModeGenerated
)

func (m Mode) String() string {
	switch m {
	case ModeFilling:
		return "filling"
	case ModeGenerated:
		return "generated"
	default:
		return "idle"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry overrides the built-in action table.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Session) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithBuilder overrides the URL builder.
func WithBuilder(b *urlbuilder.Builder) Option {
	return func(s *Session) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithCopyButton overrides the copy affordance.
func WithCopyButton(b *clipboard.Button) Option {
	return func(s *Session) {
		if b != nil {
			s.button = b
		}
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is not safe for concurrent use; callers serialise events the way
// a UI event loop does.
type Session struct {
	registry *registry.Registry
	builder  *urlbuilder.Builder
	button   *clipboard.Button
	logger   *slog.Logger

	renderer *form.Renderer
	url      string
}

// New constructs a Session with the default registry, builder and a copy
// button on the system clipboard.
func New(options ...Option) *Session {
	s := &Session{
		registry: registry.Default(),
		builder:  urlbuilder.New(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.button == nil {
		s.button = clipboard.NewButton(clipboard.System(), clipboard.WithLogger(s.logger))
	}
	s.renderer = form.NewRenderer(s.registry, nil)
	return s
}

// Registry exposes the action table.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Form exposes the live form surface.
func (s *Session) Form() *form.State {
	return s.renderer.State()
}

// ActionID reports the selected action, empty when none is.
func (s *Session) ActionID() string {
	return s.renderer.State().ActionID()
}

// Select redraws the form for actionID, discarding entered values and any
// generated URL. An empty id clears the form.
func (s *Session) Select(actionID string) {
	s.renderer.Render(actionID)
	s.clearURL()
	s.logger.Debug("action selected", slog.String("action", actionID), slog.Int("fields", s.renderer.State().Len()))
}

// Set updates one control value.
func (s *Session) Set(name, value string) error {
	return s.renderer.State().Set(name, value)
}

// Generate builds the URL from the current values. With no action selected
// it does nothing. A missing value clears any previous URL and returns the
// *urlbuilder.MissingFieldError.
func (s *Session) Generate() (string, error) {
	actionID := s.ActionID()
	if actionID == "" {
		return "", nil
	}

	action := s.registry.MustLookup(actionID)
	url, err := s.builder.Build(action, urlbuilder.Values(s.renderer.State().Values()))
	if err != nil {
		s.clearURL()
		return "", err
	}
	s.url = url
	s.logger.Debug("url generated", slog.String("action", actionID))
	return url, nil
}

// URL reports the generated URL, empty until Generate succeeds.
func (s *Session) URL() string {
	return s.url
}

// Mode reports the implicit phase.
func (s *Session) Mode() Mode {
	switch {
	case s.url != "":
		return ModeGenerated
	case s.ActionID() != "":
		return ModeFilling
	default:
		return ModeIdle
	}
}

// CopyVisible reports whether the copy action should be offered.
func (s *Session) CopyVisible() bool {
	return s.url != ""
}

// CopyLabel reports the copy affordance label.
func (s *Session) CopyLabel() string {
	return s.button.Label()
}

// CopyButton exposes the copy affordance, e.g. for manual reverts.
func (s *Session) CopyButton() *clipboard.Button {
	return s.button
}

// Copier captures the current URL and returns a function that writes it to
// the clipboard. Without a URL the function is a no-op. Failures leave the URL
// untouched and return a *clipboard.CopyError. The function only touches the
// copy button, so it may run off the goroutine that owns the session.
func (s *Session) Copier() func(context.Context) (uint64, error) {
	url, button, logger := s.url, s.button, s.logger
	return func(ctx context.Context) (uint64, error) {
		if url == "" {
			return 0, nil
		}
		gen, err := button.Copy(ctx, url)
		if err != nil {
			logger.Warn("copy failed", slog.String("error", err.Error()))
			return 0, err
		}
		return gen, nil
	}
}

func (s *Session) clearURL() {
	if s.url == "" {
		return
	}
	s.url = ""
	s.button.Reset()
}
