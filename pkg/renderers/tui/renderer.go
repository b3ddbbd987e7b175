// Package tui collects job parameters through terminal prompts and
// serialises the result as a URL, JSON or form-encoded values.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	builder      *urlbuilder.Builder
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, URL output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatURL,
		builder:      urlbuilder.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// SelectAction prompts for one of the registry's actions.
func (r *Renderer) SelectAction(ctx context.Context, reg *registry.Registry) (string, error) {
	ids := reg.IDs()
	if len(ids) == 0 {
		return "", errors.New("tui: registry has no actions")
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Action",
		Options:      ids,
		DefaultIndex: -1,
		PageSize:     len(ids),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ids) {
		return "", fmt.Errorf("tui: invalid action selection %d", idx)
	}
	return ids[idx], nil
}

// Render prompts for every control of state in order, storing answers back
// into state, then serialises the result. Empty answers are rejected inline
// and the prompt is repeated.
func (r *Renderer) Render(ctx context.Context, state *form.State, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if state == nil || state.Empty() {
		return nil, ErrNoAction
	}

	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		_ = r.info(ctx, r.theme.ErrorPrefix, message)
	}

	for _, control := range state.Controls() {
		for _, message := range opts.Errors[control.Name] {
			_ = r.info(ctx, r.theme.ErrorPrefix, message)
		}
		value, err := r.promptControl(ctx, control)
		if err != nil {
			return nil, err
		}
		if err := state.Set(control.Name, value); err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
	}

	return r.serialize(state)
}

func (r *Renderer) promptControl(ctx context.Context, control form.Control) (string, error) {
	if control.IsSelect() {
		return r.promptSelect(ctx, control)
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: control.Label,
			Default: control.Value,
			Help:    control.Placeholder,
		})
		if err != nil {
			return "", err
		}
		if response == "" {
			_ = r.info(ctx, r.theme.ErrorPrefix, missingMessage(control))
			continue
		}
		return response, nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, control form.Control) (string, error) {
	choices := control.Choices()
	options := make([]string, 0, len(choices))
	for _, choice := range choices {
		options = append(options, choice.Value)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      control.Label,
			Options:      options,
			DefaultIndex: indexOf(options, control.Value),
			Help:         control.Placeholder,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.info(ctx, r.theme.ErrorPrefix, missingMessage(control))
			continue
		}
		return options[idx], nil
	}
}

func (r *Renderer) info(ctx context.Context, prefix, msg string) error {
	return r.driver.Info(ctx, prefix+msg)
}

func missingMessage(control form.Control) string {
	return (&urlbuilder.MissingFieldError{Name: control.Name, Label: control.Label}).Message()
}

func (r *Renderer) serialize(state *form.State) ([]byte, error) {
	action := actionFromState(state)
	values := state.Values()

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		parts := make([]string, 0, len(action.Fields)+1)
		parts = append(parts, "action="+urlbuilder.EncodeComponent(action.ID))
		for _, field := range action.Fields {
			parts = append(parts, field.Name+"="+urlbuilder.EncodeComponent(values[field.Name]))
		}
		return []byte(strings.Join(parts, "&")), nil
	case OutputFormatJSON:
		url, err := r.builder.Build(action, urlbuilder.Values(values))
		if err != nil {
			return nil, err
		}
		return jsonBytes(action, values, url)
	default:
		url, err := r.builder.Build(action, urlbuilder.Values(values))
		if err != nil {
			return nil, err
		}
		return []byte(url), nil
	}
}

func actionFromState(state *form.State) model.Action {
	controls := state.Controls()
	action := model.Action{ID: state.ActionID(), Fields: make([]model.Field, 0, len(controls))}
	for _, control := range controls {
		action.Fields = append(action.Fields, model.Field{
			Name:  control.Name,
			Label: control.Label,
			Kind:  control.Kind,
		})
	}
	return action
}

// jsonBytes writes values in declared field order, which encoding/json maps
// cannot preserve.
func jsonBytes(action model.Action, values map[string]string, url string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"action":`)
	if err := writeJSON(&buf, action.ID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"values":{`)
	for i, field := range action.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, field.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, values[field.Name]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"url":`)
	if err := writeJSON(&buf, url); err != nil {
		return nil, err
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, value string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
