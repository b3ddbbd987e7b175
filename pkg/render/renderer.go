package render

import (
	"context"

	"github.com/goliatone/go-jobform/pkg/form"
)

// Renderer converts the live form surface into a byte representation (HTML
// fragment, terminal prompt output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, state *form.State, options RenderOptions) ([]byte, error)
}
