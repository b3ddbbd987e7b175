package template

import (
	"io"
)

// TemplateRenderer renders named templates or inline template strings with
// arbitrary data, optionally copying the output to extra writers.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
