package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoAction is returned when rendering a state with no selected action.
	ErrNoAction = errors.New("tui: no action selected")
)
