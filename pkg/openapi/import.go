package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
)

// Import reads an OpenAPI document (JSON or YAML) and rebuilds the action
// registry it describes. The env parameter and parameters marked fixed are
// builder concerns and do not become fields.
func Import(ctx context.Context, data []byte) (*registry.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, ErrNoOperations
	}

	type ordered struct {
		order  int
		path   string
		action model.Action
	}
	var collected []ordered
	for path, item := range doc.Paths.Map() {
		if item == nil || item.Get == nil {
			continue
		}
		actionID, ok := actionIDFromPath(path)
		if !ok {
			continue
		}
		order, hasOrder := intExtension(item.Get.Extensions, ExtOrder)
		if !hasOrder {
			order = int(^uint(0) >> 1)
		}
		collected = append(collected, ordered{
			order:  order,
			path:   path,
			action: actionFromOperation(actionID, item.Get),
		})
	}
	if len(collected) == 0 {
		return nil, ErrNoOperations
	}

	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].order != collected[j].order {
			return collected[i].order < collected[j].order
		}
		return collected[i].path < collected[j].path
	})

	actions := make([]model.Action, 0, len(collected))
	for _, entry := range collected {
		actions = append(actions, entry.action)
	}
	reg, err := registry.New(actions...)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return reg, nil
}

func actionIDFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/job/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/job/parambuild/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func actionFromOperation(actionID string, op *openapi3.Operation) model.Action {
	action := model.Action{ID: actionID, Description: op.Description}
	for _, ref := range op.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		param := ref.Value
		if param.In != openapi3.ParameterInQuery || param.Name == "env" {
			continue
		}
		if fixed, _ := boolExtension(param.Extensions, ExtFixed); fixed {
			continue
		}
		action.Fields = append(action.Fields, fieldFromParameter(param))
	}
	return action
}

func fieldFromParameter(param *openapi3.Parameter) model.Field {
	field := model.Field{Name: param.Name, Kind: model.FieldKindText}
	if label, ok := stringExtension(param.Extensions, ExtLabel); ok {
		field.Label = label
	}
	if placeholder, ok := stringExtension(param.Extensions, ExtPlaceholder); ok {
		field.Placeholder = placeholder
	}

	if param.Schema == nil || param.Schema.Value == nil {
		return field
	}
	schema := param.Schema.Value
	switch {
	case len(schema.Enum) > 0:
		field.Kind = model.FieldKindSelect
		for _, value := range schema.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
	case schema.Format == "email":
		field.Kind = model.FieldKindEmail
	}
	return field
}

// Extension values arrive either as decoded JSON values or raw messages
// depending on how the document was built, so decode through JSON.
func decodeExtension(ext map[string]any, key string, out any) bool {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return false
	}
	var payload []byte
	switch v := raw.(type) {
	case json.RawMessage:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return false
		}
		payload = encoded
	}
	return json.Unmarshal(payload, out) == nil
}

func intExtension(ext map[string]any, key string) (int, bool) {
	var out int
	ok := decodeExtension(ext, key, &out)
	return out, ok
}

func boolExtension(ext map[string]any, key string) (bool, bool) {
	var out bool
	ok := decodeExtension(ext, key, &out)
	return out, ok
}

func stringExtension(ext map[string]any, key string) (string, bool) {
	var out string
	ok := decodeExtension(ext, key, &out)
	return out, ok
}
