package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
)

// Writer places text on a clipboard. Implementations may block; they must
// honour ctx cancellation.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function into a Writer.
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls the underlying function.
func (fn WriterFunc) WriteText(ctx context.Context, text string) error {
	return fn(ctx, text)
}

type systemWriter struct{}

// System returns a Writer backed by the platform clipboard utilities
// (pbcopy, xclip/xsel, wl-copy, or the Windows API).
func System() Writer {
	return systemWriter{}
}

func (systemWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}

	done := make(chan error, 1)
	go func() {
		done <- clipboard.WriteAll(text)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
