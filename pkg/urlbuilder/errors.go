package urlbuilder

import (
	"errors"
	"fmt"
)

// ErrMissingField matches every *MissingFieldError via errors.Is.
var ErrMissingField = errors.New("urlbuilder: missing field")

// MissingFieldError reports the first declared field whose value was empty.
type MissingFieldError struct {
	Name  string
	Label string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("urlbuilder: %s is required", e.Label)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Message is the operator-facing prompt naming the missing field.
func (e *MissingFieldError) Message() string {
	return "Please fill in " + e.Label
}
