package clipboard

import (
	"errors"
	"fmt"
)

var (
	// ErrClipboardFailure matches every *CopyError via errors.Is.
	ErrClipboardFailure = errors.New("clipboard: copy failed")
	// ErrUnsupported is returned when no clipboard utility is available.
	ErrUnsupported = errors.New("clipboard: unsupported environment")
)

// CopyError wraps the writer failure behind a copy attempt.
type CopyError struct {
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("clipboard: copy failed: %v", e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrClipboardFailure) match.
func (e *CopyError) Is(target error) bool {
	return target == ErrClipboardFailure
}

// Message is the operator-facing alert text.
func (e *CopyError) Message() string {
	return "Failed to copy URL"
}
