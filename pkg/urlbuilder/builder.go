package urlbuilder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
)

const (
	// DefaultBaseURL is the automation server origin job URLs point at.
	DefaultBaseURL = "http://jenkins-ops.tools.ilabank.internal"
	// DefaultEnv is the value of the leading env query parameter.
	DefaultEnv = "prod"

	// FixedUnitAction always targets unit 1 and never asks for UNIT_ID.
	FixedUnitAction = "delete-ping-id"
	// FixedUnitParam is prepended to the query for FixedUnitAction.
	FixedUnitParam = "UNIT_ID=1"
)

// Values maps field names to the current control values.
type Values map[string]string

// Option configures a Builder.
type Option func(*Builder)

// WithBaseURL overrides the automation server origin. Trailing slashes are
// trimmed; blank values are ignored.
func WithBaseURL(base string) Option {
	return func(b *Builder) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			b.baseURL = trimmed
		}
	}
}

// WithEnv overrides the env query parameter. Blank values are ignored.
func WithEnv(env string) Option {
	return func(b *Builder) {
		if trimmed := strings.TrimSpace(env); trimmed != "" {
			b.env = trimmed
		}
	}
}

// Builder formats parameterised-build URLs for registry actions.
type Builder struct {
	baseURL string
	env     string
}

// New constructs a Builder with the default origin and env.
func New(options ...Option) *Builder {
	b := &Builder{
		baseURL: DefaultBaseURL,
		env:     DefaultEnv,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BaseURL reports the configured origin.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Env reports the configured env parameter.
func (b *Builder) Env() string {
	return b.env
}

// Build validates that every declared field has a value and returns
//
//	{base}/job/{action}/job/parambuild/?env={env}&{name}={value}&...
//
// Parameters follow field declaration order. The first empty field aborts
// the build with a *MissingFieldError and no URL. The action id is used
// verbatim in the path.
func (b *Builder) Build(action model.Action, values Values) (string, error) {
	params := make([]string, 0, len(action.Fields)+1)

	if action.ID == FixedUnitAction {
		params = append(params, FixedUnitParam)
	}

	for _, field := range action.Fields {
		value := values[field.Name]
		if value == "" {
			return "", &MissingFieldError{Name: field.Name, Label: field.DisplayLabel()}
		}
		params = append(params, field.Name+"="+EncodeComponent(value))
	}

	out := b.JobURL(action.ID) + "?env=" + EncodeComponent(b.env)
	if len(params) > 0 {
		out += "&" + strings.Join(params, "&")
	}
	return out, nil
}

// JobURL returns the parambuild endpoint for actionID without a query.
func (b *Builder) JobURL(actionID string) string {
	return b.baseURL + "/job/" + actionID + "/job/parambuild/"
}

// Param is one decoded query parameter.
type Param struct {
	Name  string
	Value string
}

// Parsed is a generated URL split back into its parts.
type Parsed struct {
	BaseURL  string
	ActionID string
	Params   []Param
}

// Get returns the first value for name.
func (p Parsed) Get(name string) (string, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Parse splits a URL produced by Build, keeping parameter order (url.Values
// loses it). It only accepts the /job/{action}/job/parambuild/ shape.
func Parse(raw string) (Parsed, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Parsed{}, fmt.Errorf("urlbuilder: parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Parsed{}, fmt.Errorf("urlbuilder: parse: %q is not absolute", raw)
	}

	const suffix = "/job/parambuild/"
	path := u.EscapedPath()
	if !strings.HasSuffix(path, suffix) {
		return Parsed{}, fmt.Errorf("urlbuilder: parse: %q is not a parambuild url", raw)
	}
	head := strings.TrimSuffix(path, suffix)
	idx := strings.LastIndex(head, "/job/")
	if idx < 0 {
		return Parsed{}, fmt.Errorf("urlbuilder: parse: %q has no job segment", raw)
	}

	parsed := Parsed{
		BaseURL:  u.Scheme + "://" + u.Host + head[:idx],
		ActionID: head[idx+len("/job/"):],
	}
	if parsed.ActionID == "" {
		return Parsed{}, fmt.Errorf("urlbuilder: parse: %q has an empty action", raw)
	}

	if u.RawQuery == "" {
		return parsed, nil
	}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			return Parsed{}, fmt.Errorf("urlbuilder: parse: param %q: %w", name, err)
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return Parsed{}, fmt.Errorf("urlbuilder: parse: param %q: %w", name, err)
		}
		parsed.Params = append(parsed.Params, Param{Name: decodedName, Value: decodedValue})
	}
	return parsed, nil
}
