package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-jobform/pkg/clipboard"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by control name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldErrors converts a build or copy failure into user-facing messages. A
// missing value is attached to its control; anything else is form-level.
func FieldErrors(err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}

	var missing *urlbuilder.MissingFieldError
	if errors.As(err, &missing) {
		mapping.Fields = map[string][]string{missing.Name: {missing.Message()}}
		return mapping
	}

	var copyErr *clipboard.CopyError
	if errors.As(err, &copyErr) {
		mapping.Form = []string{copyErr.Message()}
		return mapping
	}

	mapping.Form = normalizeMessages([]string{err.Error()})
	return mapping
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises externally supplied error payloads (JSON pointer
// or dotted paths such as "/body/EMAIL" or "params.CASE_ID") onto the
// controls of state. Unknown paths become form-level errors so messages are
// not lost.
func MapErrorPayload(state *form.State, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		name, ok := matchControl(state, rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchControl(state *form.State, raw string) (string, bool) {
	if state == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "$")
	segments := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '.'
	})
	if len(segments) == 0 {
		return "", false
	}

	last := strings.ReplaceAll(segments[len(segments)-1], "~1", "/")
	for _, control := range state.Controls() {
		if strings.EqualFold(control.Name, last) {
			return control.Name, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
