// Package jobform renders operator forms for parameterised maintenance jobs
// and turns the entered values into parambuild URLs. The root package
// re-exports the common entry points; the pkg/ packages hold the pieces.
package jobform

import (
	"context"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// Action aliases the action descriptor.
type Action = model.Action

// RenderOptions describes per-request overrides (errors, generated URL,
// theme) renderers honour.
type RenderOptions = render.RenderOptions

// Request aliases the orchestrator request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the fields of actionID, prefilled with values, using
// the default renderer. It is the simplest entry point for callers that just
// want HTML output.
func GenerateHTML(ctx context.Context, actionID string, values map[string]string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		ActionID: actionID,
		Values:   values,
	})
}

// BuildURL looks actionID up in the built-in table and builds its job URL.
func BuildURL(actionID string, values map[string]string, options ...urlbuilder.Option) (string, error) {
	action, err := registry.Default().Lookup(actionID)
	if err != nil {
		return "", err
	}
	return urlbuilder.New(options...).Build(action, urlbuilder.Values(values))
}

// LoadRegistry reads a registry file or directory.
func LoadRegistry(path string) (*registry.Registry, error) {
	return registry.Load(path)
}

// ImportOpenAPI rebuilds a registry from a document produced by the openapi
// export.
func ImportOpenAPI(ctx context.Context, data []byte) (*registry.Registry, error) {
	return openapi.Import(ctx, data)
}
