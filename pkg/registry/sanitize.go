package registry

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-jobform/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips every tag from operator-facing copy loaded from disk.
// Names and options are left alone; validation rejects anything odd there.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeAction(action model.Action) model.Action {
	action.ID = strings.TrimSpace(action.ID)
	action.Description = sanitizeText(action.Description)
	for i, field := range action.Fields {
		field.Name = strings.TrimSpace(field.Name)
		field.Kind = model.FieldKind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
		field.Label = sanitizeText(field.Label)
		field.Placeholder = sanitizeText(field.Placeholder)
		action.Fields[i] = field
	}
	return action
}
