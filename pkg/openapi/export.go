package openapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

const (
	// ExtOrder records the registry position of an action.
	ExtOrder = "x-jobform-order"
	// ExtFixed marks a parameter whose value is pinned by the builder.
	ExtFixed = "x-jobform-fixed"
	// ExtPlaceholder carries the input placeholder of a field.
	ExtPlaceholder = "x-jobform-placeholder"
	// ExtLabel carries the field label.
	ExtLabel = "x-jobform-label"
)

// ExportOptions tweak the document metadata.
type ExportOptions struct {
	Title   string
	Version string
}

// Export describes every action of reg as an operation against the builder's
// base URL and validates the resulting document.
func Export(ctx context.Context, reg *registry.Registry, builder *urlbuilder.Builder, options ...ExportOptions) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("openapi: registry is required")
	}
	if builder == nil {
		builder = urlbuilder.New()
	}

	meta := ExportOptions{Title: "Job trigger URLs", Version: "1.0.0"}
	for _, opt := range options {
		if opt.Title != "" {
			meta.Title = opt.Title
		}
		if opt.Version != "" {
			meta.Version = opt.Version
		}
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   meta.Title,
			Version: meta.Version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: builder.BaseURL()},
		},
		Paths: openapi3.NewPaths(),
	}

	for idx, action := range reg.Actions() {
		doc.Paths.Set(operationPath(action.ID), &openapi3.PathItem{
			Get: buildOperation(action, builder.Env(), idx),
		})
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

func operationPath(actionID string) string {
	return "/job/" + actionID + "/job/parambuild/"
}

func buildOperation(action model.Action, env string, order int) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = action.ID
	op.Summary = action.ID
	op.Description = action.Description
	op.Extensions = map[string]any{ExtOrder: order}

	envParam := openapi3.NewQueryParameter("env").
		WithRequired(true).
		WithSchema(openapi3.NewStringSchema().WithDefault(env))
	op.AddParameter(envParam)

	if action.ID == urlbuilder.FixedUnitAction {
		name, value, _ := strings.Cut(urlbuilder.FixedUnitParam, "=")
		fixed := openapi3.NewQueryParameter(name).
			WithRequired(true).
			WithSchema(openapi3.NewStringSchema().WithEnum(value))
		fixed.Extensions = map[string]any{ExtFixed: true}
		op.AddParameter(fixed)
	}

	for _, field := range action.Fields {
		op.AddParameter(fieldParameter(field))
	}

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Job build page"),
		}),
	)
	return op
}

func fieldParameter(field model.Field) *openapi3.Parameter {
	schema := openapi3.NewStringSchema()
	switch field.Kind {
	case model.FieldKindEmail:
		schema = schema.WithFormat("email")
	case model.FieldKindSelect:
		enum := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			enum = append(enum, option)
		}
		schema = schema.WithEnum(enum...)
	}

	param := openapi3.NewQueryParameter(field.Name).
		WithRequired(true).
		WithSchema(schema)
	param.Description = field.DisplayLabel()

	ext := map[string]any{}
	if field.Placeholder != "" {
		ext[ExtPlaceholder] = field.Placeholder
	}
	if field.Label != "" {
		ext[ExtLabel] = field.Label
	}
	if len(ext) > 0 {
		param.Extensions = ext
	}
	return param
}
